package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"arrtag/internal/config"
)

const userAgent = "arrtag/0.1.0"

// BackendSummary reports one backend scan.
type BackendSummary struct {
	Name         string
	Listed       int
	Modified     int
	Updated      int
	Queued       int
	Failed       int
	LimitReached bool
	Err          string
}

// RunSummary reports a completed run.
type RunSummary struct {
	DryRun   bool
	Duration time.Duration
	Backends []BackendSummary
}

// Modified totals path modifications across backends.
func (s RunSummary) Modified() int {
	total := 0
	for _, b := range s.Backends {
		total += b.Modified
	}
	return total
}

// HasErrors reports whether any backend failed to scan or update.
func (s RunSummary) HasErrors() bool {
	for _, b := range s.Backends {
		if b.Err != "" || b.Failed > 0 {
			return true
		}
	}
	return false
}

// Service defines the notification surface used by the run coordinator.
type Service interface {
	NotifyRunCompleted(ctx context.Context, summary RunSummary) error
	NotifyRunFailed(ctx context.Context, err error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:      topic,
		client:        &http.Client{Timeout: timeout},
		onlyOnChanges: cfg.Notifications.OnlyOnChanges,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint      string
	client        *http.Client
	onlyOnChanges bool
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, summary RunSummary) error {
	if n.onlyOnChanges && summary.Modified() == 0 && !summary.HasErrors() {
		return nil
	}

	var builder strings.Builder
	for i, b := range summary.Backends {
		if i > 0 {
			builder.WriteByte('\n')
		}
		if b.Err != "" {
			fmt.Fprintf(&builder, "%s: scan failed: %s", b.Name, b.Err)
			continue
		}
		fmt.Fprintf(&builder, "%s: %d of %d modified", b.Name, b.Modified, b.Listed)
		if !summary.DryRun {
			fmt.Fprintf(&builder, " (%d updated, %d queued, %d failed)", b.Updated, b.Queued, b.Failed)
		}
		if b.LimitReached {
			builder.WriteString(", limit reached")
		}
	}
	if builder.Len() == 0 {
		builder.WriteString("No backends enabled")
	}
	fmt.Fprintf(&builder, "\nDuration: %s", formatDuration(summary.Duration))

	data := payload{
		title:   "arrtag - Run Complete",
		message: builder.String(),
		tags:    []string{"arrtag", "run", "completed"},
	}
	if summary.DryRun {
		data.title = "arrtag - Dry Run Complete"
		data.tags = append(data.tags, "dry-run")
	}
	if summary.HasErrors() {
		data.title += " (with errors)"
		data.priority = "high"
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunFailed(ctx context.Context, err error) error {
	message := "Run failed: unknown"
	if err != nil {
		message = "Run failed: " + strings.TrimSpace(err.Error())
	}
	data := payload{
		title:    "arrtag - Error",
		message:  message,
		tags:     []string{"arrtag", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "arrtag - Test",
		message:  "Notification system test",
		tags:     []string{"arrtag", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d <= 0 {
		return "0s"
	}
	return d.String()
}

type noopService struct{}

func (noopService) NotifyRunCompleted(context.Context, RunSummary) error { return nil }
func (noopService) NotifyRunFailed(context.Context, error) error         { return nil }
func (noopService) TestNotification(context.Context) error               { return nil }
