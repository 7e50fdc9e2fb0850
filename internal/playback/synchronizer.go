package playback

import (
	"context"
	"log/slog"
	"time"

	"splice/internal/logging"
	"splice/internal/timeline"
)

// DefaultDriftTolerance is how far a resource clock may diverge from the
// playhead before a forced reposition. It tolerates normal decode jitter
// without constant reseeking.
const DefaultDriftTolerance = 300 * time.Millisecond

// Synchronizer keeps the tracker's active set and every resource clock
// consistent with the playhead.
type Synchronizer struct {
	tracker        *Tracker
	driftTolerance time.Duration
	logger         *slog.Logger
}

// NewSynchronizer builds a synchronizer over the given tracker. A
// non-positive tolerance falls back to DefaultDriftTolerance.
func NewSynchronizer(tracker *Tracker, driftTolerance time.Duration, logger *slog.Logger) *Synchronizer {
	if driftTolerance <= 0 {
		driftTolerance = DefaultDriftTolerance
	}
	return &Synchronizer{
		tracker:        tracker,
		driftTolerance: driftTolerance,
		logger:         logging.NewComponentLogger(logger, "playback-sync"),
	}
}

// DesiredSet computes the items that should be active at the given playhead
// position: non-placeholder, url-bearing items whose half-open interval
// contains the position. Items within one track cannot overlap, so each
// track contributes at most one entry.
func DesiredSet(tracks []timeline.Track, playhead int64) map[string]Desired {
	desired := make(map[string]Desired)
	for _, track := range tracks {
		for _, item := range track.Items {
			if !item.Materializable() {
				continue
			}
			if !item.ActiveAt(playhead) {
				continue
			}
			desired[item.ID] = Desired{Item: item, TrackOrder: track.Order}
		}
	}
	return desired
}

// Synchronize recomputes the desired active set for the playhead, reconciles
// the tracker against it, positions newly created resources at their entry
// offset, and drift-corrects continuing ones. New resources are started only
// when playing: seeking into an item while paused positions it but must
// never advance it.
func (s *Synchronizer) Synchronize(ctx context.Context, tracks []timeline.Track, playhead int64, playing bool) {
	desired := DesiredSet(tracks, playhead)
	created, continuing := s.tracker.Reconcile(ctx, desired)

	for _, entry := range created {
		expected := time.Duration(entry.Item.SourceOffset(playhead)) * time.Millisecond
		entry.Resource.SeekTo(expected)
		if playing {
			entry.start(ctx, s.logger)
		}
	}

	for _, entry := range continuing {
		expected := time.Duration(entry.Item.SourceOffset(playhead)) * time.Millisecond
		actual := entry.Resource.Position()
		drift := expected - actual
		if drift < 0 {
			drift = -drift
		}
		if drift > s.driftTolerance {
			s.logger.Debug("drift corrected",
				logging.String(logging.FieldItemID, entry.Item.ID),
				logging.Duration("drift", drift))
			entry.Resource.SeekTo(expected)
		}
	}
}
