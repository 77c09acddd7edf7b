package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cssfilt/pkg/config"
)

func TestNewFilterCommand(t *testing.T) {
	cmd := NewFilterCommand()

	if cmd.Use != "filter [capture-file]" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	flags := []string{"config", "webhook-url", "webhook-token", "webhook-trigger"}
	for _, flag := range flags {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	if cmd.Use != "check <css-file>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	flags := []string{"config", "webhook-url", "webhook-token", "webhook-trigger"}
	for _, flag := range flags {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestNewDetectCommand(t *testing.T) {
	cmd := NewDetectCommand()

	if cmd.Use != "detect <capture-file>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	flags := []string{"output", "sample", "all"}
	for _, flag := range flags {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	if cmd.Use != "validate <config-file>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	if !strings.Contains(cmd.Long, "Validate") {
		t.Error("Missing description in Long")
	}
}

func TestNewDiagnoseCommand(t *testing.T) {
	cmd := NewDiagnoseCommand()

	if cmd.Use != "diagnose [config-file]" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()

	if cmd.Use != "version" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
}

func resetExitCode(t *testing.T) {
	t.Helper()
	ExitCode = 0
	t.Cleanup(func() { ExitCode = 0 })
}

func writeCapture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write capture: %v", err)
	}
	return path
}

func TestRunFilter_ErrorsSetExitCode(t *testing.T) {
	resetExitCode(t)

	capture := writeCapture(t, `Sorry! We found the following errors (1)
URI : file:/tmp/a.css
Line : 1
       Parse Error
Valid CSS information
`)

	cmd := NewFilterCommand()
	if err := runFilter(cmd, []string{capture}, &FilterOptions{}); err != nil {
		t.Fatalf("runFilter() error = %v", err)
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode)
	}
}

func TestRunFilter_CleanLeavesExitCode(t *testing.T) {
	resetExitCode(t)

	capture := writeCapture(t, `Congratulations! No Error Found.
Valid CSS information
`)

	cmd := NewFilterCommand()
	if err := runFilter(cmd, []string{capture}, &FilterOptions{}); err != nil {
		t.Fatalf("runFilter() error = %v", err)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}
}

// Warnings alone must not flip the exit status.
func TestRunFilter_WarningsOnlyLeavesExitCode(t *testing.T) {
	resetExitCode(t)

	capture := writeCapture(t, `Congratulations! No Error Found.
Warnings (2)
URI : file:/tmp/a.css
Line : 3 - Property is an unknown vendor extension
Valid CSS information
`)

	cmd := NewFilterCommand()
	if err := runFilter(cmd, []string{capture}, &FilterOptions{}); err != nil {
		t.Fatalf("runFilter() error = %v", err)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}
}

func TestRunFilter_MalformedReturnsError(t *testing.T) {
	resetExitCode(t)

	capture := writeCapture(t, "URI : file:/tmp/a.css\nURI : file:/tmp/b.css\n")

	cmd := NewFilterCommand()
	err := runFilter(cmd, []string{capture}, &FilterOptions{})
	if err == nil {
		t.Fatal("runFilter() succeeded, want grammar violation")
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0 (error path owns the status)", ExitCode)
	}
}

func TestRunFilter_MissingCapture(t *testing.T) {
	resetExitCode(t)

	cmd := NewFilterCommand()
	err := runFilter(cmd, []string{filepath.Join(t.TempDir(), "nope.txt")}, &FilterOptions{})
	if err == nil {
		t.Fatal("runFilter() succeeded, want error")
	}
}

func TestRunCheck_MissingCSSFile(t *testing.T) {
	resetExitCode(t)

	cmd := NewCheckCommand()
	err := runCheck(cmd, []string{filepath.Join(t.TempDir(), "nope.css")}, &CheckOptions{})
	if err == nil {
		t.Fatal("runCheck() succeeded, want error")
	}
	if !strings.Contains(err.Error(), "css file") {
		t.Errorf("error = %v, want css file error", err)
	}
}

func TestRunValidate_Success(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `java: java
jar: /srv/css-validator.jar
validator:
  profile: css3
  medium: all
  warning: "0"
  lang: en
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	cmd := NewValidateCommand()
	if err := runValidate(cmd, []string{configPath}); err != nil {
		t.Errorf("runValidate() error = %v", err)
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("validator:\n  profile: css9\n"), 0644); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	cmd := NewValidateCommand()
	if err := runValidate(cmd, []string{configPath}); err == nil {
		t.Error("runValidate() succeeded, want error")
	}
}

func TestCollectWebhooks(t *testing.T) {
	cfg := &config.Config{
		Webhooks: []config.WebhookConfig{
			{Name: "from-config", URL: "https://example.com/a"},
		},
	}
	opts := &WebhookOptions{URL: "https://example.com/b", Trigger: "always"}

	webhooks := collectWebhooks(cfg, opts)
	if len(webhooks) != 2 {
		t.Fatalf("got %d webhooks, want 2", len(webhooks))
	}
	if webhooks[0].Name != "from-config" {
		t.Errorf("webhooks[0].Name = %q", webhooks[0].Name)
	}
	if webhooks[1].Name != "cli" {
		t.Errorf("webhooks[1].Name = %q", webhooks[1].Name)
	}
	if webhooks[1].Trigger != config.WebhookTriggerAlways {
		t.Errorf("webhooks[1].Trigger = %q", webhooks[1].Trigger)
	}

	// Nil config with no CLI webhook yields nothing
	if got := collectWebhooks(nil, &WebhookOptions{}); len(got) != 0 {
		t.Errorf("got %d webhooks, want 0", len(got))
	}
}

func TestShouldFireWebhook(t *testing.T) {
	tests := []struct {
		trigger   config.WebhookTrigger
		hasIssues bool
		want      bool
	}{
		{config.WebhookTriggerAlways, false, true},
		{config.WebhookTriggerAlways, true, true},
		{config.WebhookTriggerNever, true, false},
		{config.WebhookTriggerOnIssues, false, false},
		{config.WebhookTriggerOnIssues, true, true},
		{config.WebhookTrigger(""), true, true},
		{config.WebhookTrigger(""), false, false},
	}

	for _, tt := range tests {
		if got := shouldFireWebhook(tt.trigger, tt.hasIssues); got != tt.want {
			t.Errorf("shouldFireWebhook(%q, %v) = %v, want %v", tt.trigger, tt.hasIssues, got, tt.want)
		}
	}
}
