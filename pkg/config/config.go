package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads the given config file, or returns the defaults with
// environment overrides applied when no path is given.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnvironmentOverrides()
		return cfg, nil
	}
	return Load(ctx, path)
}

// validProfiles are the CSS profiles the validator accepts.
var validProfiles = map[string]bool{
	"css1": true, "css2": true, "css21": true, "css3": true,
	"svg": true, "svgbasic": true, "svgtiny": true, "none": true,
}

// validMedia are the media types the validator accepts.
var validMedia = map[string]bool{
	"all": true, "aural": true, "braille": true, "embossed": true,
	"handheld": true, "print": true, "projection": true,
	"screen": true, "tty": true, "tv": true,
}

// validWarnings are the warning levels the validator accepts.
// "0" reports counts only, which is what the filter's grammar expects.
var validWarnings = map[string]bool{
	"no": true, "-1": true, "0": true, "1": true, "2": true,
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if cfg.Java == "" {
		return errors.New("java: binary is required")
	}
	if cfg.Jar == "" {
		return errors.New("jar: validator jar path is required")
	}

	if err := validateValidator(&cfg.Validator); err != nil {
		return fmt.Errorf("validator: %w", err)
	}

	// Webhooks are optional, but validate if present
	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateValidator(v *ValidatorConfig) error {
	if !validProfiles[v.Profile] {
		return fmt.Errorf("invalid profile %q", v.Profile)
	}
	if !validMedia[v.Medium] {
		return fmt.Errorf("invalid medium %q", v.Medium)
	}
	if !validWarnings[v.Warning] {
		return fmt.Errorf("invalid warning level %q", v.Warning)
	}
	if v.Lang == "" {
		return errors.New("lang is required")
	}
	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("url is missing a host")
	}

	switch wh.Trigger {
	case "", WebhookTriggerOnIssues, WebhookTriggerAlways, WebhookTriggerNever:
	default:
		return fmt.Errorf("invalid trigger %q (must be on_issues, always, or never)", wh.Trigger)
	}

	if wh.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if wh.Timeout == 0 {
		wh.Timeout = DefaultWebhookTimeout
	}
	if wh.Trigger == "" {
		wh.Trigger = WebhookTriggerOnIssues
	}

	return nil
}

// Args returns the fixed argument list for invoking the validator against
// the given file URI.
func (c *Config) Args(uri string) []string {
	return []string{
		"-jar", c.Jar,
		"-output", "text",
		"-profile", c.Validator.Profile,
		"-medium", c.Validator.Medium,
		"-warning", c.Validator.Warning,
		"-lang", c.Validator.Lang,
		uri,
	}
}
