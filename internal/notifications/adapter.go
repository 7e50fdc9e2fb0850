package notifications

import (
	"context"
	"log/slog"

	"splice/internal/logging"
)

// SessionNotifier bridges a Service to the session's lifecycle hooks. Send
// failures are logged rather than surfaced so notification trouble never
// interrupts playback.
type SessionNotifier struct {
	service Service
	logger  *slog.Logger
}

// NewSessionNotifier wraps a Service for use by session.Options.Notifier.
func NewSessionNotifier(service Service, logger *slog.Logger) *SessionNotifier {
	return &SessionNotifier{
		service: service,
		logger:  logging.NewComponentLogger(logger, "notifications"),
	}
}

func (a *SessionNotifier) PlaybackStarted(ctx context.Context, projectName string, positionMS int64) {
	if err := a.service.NotifyPlaybackStarted(ctx, projectName, positionMS); err != nil {
		a.logger.Warn("playback started notification failed", logging.Error(err))
	}
}

func (a *SessionNotifier) PlaybackPaused(ctx context.Context, projectName string, positionMS int64) {
	if err := a.service.NotifyPlaybackPaused(ctx, projectName, positionMS); err != nil {
		a.logger.Warn("playback paused notification failed", logging.Error(err))
	}
}

func (a *SessionNotifier) PlaybackStopped(ctx context.Context, projectName string) {
	if err := a.service.NotifyPlaybackStopped(ctx, projectName); err != nil {
		a.logger.Warn("playback stopped notification failed", logging.Error(err))
	}
}
