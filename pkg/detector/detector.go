// Package detector identifies which output mode a validator capture was
// produced in. The filter only consumes text mode; when a capture is
// rejected, detection explains what the stream actually is.
package detector

import (
	"bufio"
	"context"
	"os"
	"sort"
	"strings"
)

// DetectionResult holds the result of analyzing a capture.
type DetectionResult struct {
	Matches      []ModeMatch // Modes that matched, sorted by confidence descending
	SampledLines int         // Number of lines sampled
}

// ModeMatch represents an output mode that matched with its confidence score.
type ModeMatch struct {
	Mode       *OutputMode
	Confidence float64 // 0.0 to 1.0 (fraction of sampled lines matched)
	MatchCount int     // Number of lines that matched
	SampleLine string  // Example line that matched
}

// Detector analyzes validator captures to identify their output mode.
type Detector struct {
	modes      []*OutputMode
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a new Detector with the default mode signatures.
func New(opts ...Option) *Detector {
	d := &Detector{
		modes:      DefaultModes(),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile analyzes a capture file and returns detected modes.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines analyzes a slice of capture lines.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{
		SampledLines: len(lines),
	}

	if len(lines) == 0 {
		return result
	}

	type modeStats struct {
		mode       *OutputMode
		matchCount int
		sampleLine string
	}

	stats := make(map[string]*modeStats)

	for _, line := range lines {
		for _, mode := range d.modes {
			if !matchesMode(mode, line) {
				continue
			}

			key := mode.Name
			if stats[key] == nil {
				stats[key] = &modeStats{
					mode:       mode,
					sampleLine: line,
				}
			}
			stats[key].matchCount++
		}
	}

	for _, s := range stats {
		result.Matches = append(result.Matches, ModeMatch{
			Mode:       s.mode,
			Confidence: float64(s.matchCount) / float64(len(lines)),
			MatchCount: s.matchCount,
			SampleLine: s.sampleLine,
		})
	}

	// Sort by confidence descending, then by name for determinism
	sort.Slice(result.Matches, func(i, j int) bool {
		if result.Matches[i].Confidence != result.Matches[j].Confidence {
			return result.Matches[i].Confidence > result.Matches[j].Confidence
		}
		return result.Matches[i].Mode.Name < result.Matches[j].Mode.Name
	})

	return result
}

func matchesMode(mode *OutputMode, line string) bool {
	for _, sig := range mode.Signatures {
		if sig.MatchString(line) {
			return true
		}
	}
	return false
}

// sampleFile reads up to sampleSize non-empty lines from a file.
func (d *Detector) sampleFile(_ context.Context, path string) ([]string, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() && len(lines) < d.sampleSize {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *ModeMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one mode matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
