package playback

import (
	"context"
	"log/slog"

	"splice/internal/logging"
	"splice/internal/media"
	"splice/internal/timeline"
)

// ActiveEntry binds a materialized timeline item to its platform resource
// and the stacking order of its track. Entries are keyed by item id in the
// Tracker; at most one entry exists per item at any time.
type ActiveEntry struct {
	Item       timeline.MediaItem
	Resource   media.Resource
	TrackOrder int
}

// start begins advancement with the silent-degradation policy: a declined
// start is retried exactly once with the output muted, and a second refusal
// is dropped so the layer continues without advancing. Playback never halts
// over a single resource.
func (e *ActiveEntry) start(ctx context.Context, logger *slog.Logger) {
	if err := e.Resource.Start(ctx); err != nil {
		e.Resource.SetMuted(true)
		if retryErr := e.Resource.Start(ctx); retryErr != nil {
			if logger != nil {
				logger.Debug("resource start declined twice, continuing silently",
					logging.String(logging.FieldItemID, e.Item.ID),
					logging.Error(retryErr))
			}
		}
	}
}

// Visual reports whether this entry is eligible for compositing.
func (e *ActiveEntry) Visual() bool {
	return e.Item.Type.Visual()
}
