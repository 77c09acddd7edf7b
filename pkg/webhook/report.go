package webhook

import (
	"time"

	"cssfilt/pkg/filter"
)

// Report is the JSON payload posted to webhook endpoints after a run.
type Report struct {
	Summary  Summary  `json:"summary"`
	Metadata Metadata `json:"metadata"`
}

// Summary carries the filter verdict.
type Summary struct {
	// Errors is the validator's reported error count.
	Errors int `json:"errors"`

	// Warnings is the validator's reported warning count.
	Warnings int `json:"warnings"`

	// Status is "clean" or "errors".
	Status string `json:"status"`
}

// Metadata provides context about the run.
type Metadata struct {
	// Source identifies what was checked (CSS file path or capture source).
	Source string `json:"source"`

	// CheckedAt is when the run completed.
	CheckedAt time.Time `json:"checked_at"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration"`
}

// NewReport builds a webhook payload from a filter result.
func NewReport(res *filter.Result, source string, started time.Time) *Report {
	status := "clean"
	if res.ErrorsFound {
		status = "errors"
	}
	now := time.Now()
	return &Report{
		Summary: Summary{
			Errors:   res.Errors,
			Warnings: res.Warnings,
			Status:   status,
		},
		Metadata: Metadata{
			Source:    source,
			CheckedAt: now,
			Duration:  now.Sub(started),
		},
	}
}

// HasIssues returns true if the run reported any errors or warnings.
func (r *Report) HasIssues() bool {
	return r.Summary.Errors > 0 || r.Summary.Warnings > 0
}
