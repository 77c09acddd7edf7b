package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cssfilt/pkg/config"
	"cssfilt/pkg/webhook"
)

// WebhookOptions holds the webhook flags shared by filter and check.
type WebhookOptions struct {
	URL     string
	Token   string
	Trigger string
}

// addWebhookFlags registers the shared webhook flags on a command.
func addWebhookFlags(cmd *cobra.Command, opts *WebhookOptions) {
	cmd.Flags().StringVar(&opts.URL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.Token, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.Trigger, "webhook-trigger", "on_issues", "When to fire webhook (on_issues|always|never)")
}

// notifyWebhooks loads the config (if given) and sends the report to all
// configured webhooks. Errors are logged to stderr but never affect the
// run's exit status.
func notifyWebhooks(ctx context.Context, configPath string, opts *WebhookOptions, rep *webhook.Report) {
	var cfg *config.Config
	if configPath != "" {
		loaded, err := config.Load(ctx, configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Webhook config: %v\n", err)
		} else {
			cfg = loaded
		}
	}
	sendWebhooks(ctx, cfg, opts, rep)
}

// sendWebhooks sends the report to all configured webhooks.
func sendWebhooks(ctx context.Context, cfg *config.Config, opts *WebhookOptions, rep *webhook.Report) {
	webhooks := collectWebhooks(cfg, opts)
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, rep.HasIssues()) {
			continue
		}

		resp := client.Send(ctx, rep, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			fmt.Fprintf(os.Stderr, "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			fmt.Fprintf(os.Stderr, "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *WebhookOptions) []config.WebhookConfig {
	var webhooks []config.WebhookConfig

	if cfg != nil {
		webhooks = append(webhooks, cfg.Webhooks...)
	}

	if opts.URL != "" {
		trigger := config.WebhookTrigger(opts.Trigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnIssues
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.URL,
			Token:   opts.Token,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire based on trigger and issues.
func shouldFireWebhook(trigger config.WebhookTrigger, hasIssues bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	case config.WebhookTriggerOnIssues:
		return hasIssues
	default:
		// Default to on_issues
		return hasIssues
	}
}
