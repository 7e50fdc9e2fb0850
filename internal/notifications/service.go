package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"splice/internal/config"
)

const userAgent = "Splice-Go/0.1.0"

// Service defines the notification surface exposed to the daemon and session.
type Service interface {
	NotifyPlaybackStarted(ctx context.Context, projectName string, positionMS int64) error
	NotifyPlaybackPaused(ctx context.Context, projectName string, positionMS int64) error
	NotifyPlaybackStopped(ctx context.Context, projectName string) error
	NotifyProjectSaved(ctx context.Context, projectName string) error
	NotifyProjectDeleted(ctx context.Context, projectName string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
		playback: cfg.Notifications.Playback,
		projects: cfg.Notifications.Projects,
		errors:   cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	playback bool
	projects bool
	errors   bool
}

func (n *ntfyService) NotifyPlaybackStarted(ctx context.Context, projectName string, positionMS int64) error {
	if !n.playback {
		return nil
	}
	data := payload{
		title:   "Splice - Playback Started",
		message: fmt.Sprintf("Playing %s from %s", strings.TrimSpace(projectName), formatPosition(positionMS)),
		tags:    []string{"splice", "playback", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyPlaybackPaused(ctx context.Context, projectName string, positionMS int64) error {
	if !n.playback {
		return nil
	}
	data := payload{
		title:   "Splice - Playback Paused",
		message: fmt.Sprintf("Paused %s at %s", strings.TrimSpace(projectName), formatPosition(positionMS)),
		tags:    []string{"splice", "playback", "paused"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyPlaybackStopped(ctx context.Context, projectName string) error {
	if !n.playback {
		return nil
	}
	data := payload{
		title:   "Splice - Playback Stopped",
		message: fmt.Sprintf("Stopped %s", strings.TrimSpace(projectName)),
		tags:    []string{"splice", "playback", "stopped"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyProjectSaved(ctx context.Context, projectName string) error {
	if !n.projects {
		return nil
	}
	data := payload{
		title:   "Splice - Project Saved",
		message: fmt.Sprintf("Saved project: %s", strings.TrimSpace(projectName)),
		tags:    []string{"splice", "project", "saved"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyProjectDeleted(ctx context.Context, projectName string) error {
	if !n.projects {
		return nil
	}
	data := payload{
		title:   "Splice - Project Deleted",
		message: fmt.Sprintf("Deleted project: %s", strings.TrimSpace(projectName)),
		tags:    []string{"splice", "project", "deleted"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Splice - Error",
		message:  builder.String(),
		tags:     []string{"splice", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Splice - Test",
		message:  "Notification system test",
		tags:     []string{"splice", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func formatPosition(positionMS int64) string {
	if positionMS < 0 {
		positionMS = 0
	}
	d := time.Duration(positionMS) * time.Millisecond
	return d.Round(time.Second).String()
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

type noopService struct{}

func (noopService) NotifyPlaybackStarted(context.Context, string, int64) error { return nil }
func (noopService) NotifyPlaybackPaused(context.Context, string, int64) error  { return nil }
func (noopService) NotifyPlaybackStopped(context.Context, string) error        { return nil }
func (noopService) NotifyProjectSaved(context.Context, string) error           { return nil }
func (noopService) NotifyProjectDeleted(context.Context, string) error         { return nil }
func (noopService) NotifyError(context.Context, error, string) error           { return nil }
func (noopService) TestNotification(context.Context) error                     { return nil }
