// Package config provides configuration loading and validation for cssfilt.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Java is the java binary used to run the validator.
	Java string `yaml:"java"`

	// Jar is the path to the W3C CSS validator jar.
	Jar string `yaml:"jar"`

	// Validator selects the validator's fixed option set.
	Validator ValidatorConfig `yaml:"validator"`

	// Webhooks are optional endpoints notified after a check.
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// ValidatorConfig is the option set passed to the validator. The filter's
// grammar assumes text output; the output mode is not configurable.
type ValidatorConfig struct {
	// Profile selects the CSS profile to validate against.
	Profile string `yaml:"profile"`

	// Medium selects the media type.
	Medium string `yaml:"medium"`

	// Warning is the validator warning level. "0" reports the warning
	// count without itemized messages.
	Warning string `yaml:"warning"`

	// Lang selects the language of validator messages. The line patterns
	// assume English output.
	Lang string `yaml:"lang"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnIssues fires only when validation errors or
	// warnings were reported (default).
	WebhookTriggerOnIssues WebhookTrigger = "on_issues"
	// WebhookTriggerAlways fires after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending run reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_issues" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
