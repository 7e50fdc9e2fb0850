package playback

import (
	"context"
	"log/slog"

	"splice/internal/logging"
	"splice/internal/media"
	"splice/internal/timeline"
)

// Desired describes one item that should be active after a synchronization
// pass.
type Desired struct {
	Item       timeline.MediaItem
	TrackOrder int
}

// Tracker owns the mapping from item id to active entry. It is the only
// place resources are constructed or destroyed; nothing outside the engine
// may alias its map.
type Tracker struct {
	allocator media.Allocator
	logger    *slog.Logger
	entries   map[string]*ActiveEntry
}

// NewTracker builds an empty tracker over the given allocator.
func NewTracker(allocator media.Allocator, logger *slog.Logger) *Tracker {
	return &Tracker{
		allocator: allocator,
		logger:    logging.NewComponentLogger(logger, "playback-tracker"),
		entries:   make(map[string]*ActiveEntry),
	}
}

// Reconcile diffs the desired set against the current set. Departed entries
// are stopped and discarded, arrivals are allocated, and entries present in
// both are returned untouched; an item that is already active and still
// desired must never have its resource recreated or restarted.
func (t *Tracker) Reconcile(ctx context.Context, desired map[string]Desired) (created, continuing []*ActiveEntry) {
	for id, entry := range t.entries {
		if _, keep := desired[id]; keep {
			continue
		}
		entry.Resource.Stop()
		delete(t.entries, id)
		t.logger.Debug("entry destroyed", logging.String(logging.FieldItemID, id))
	}

	for id, want := range desired {
		if entry, exists := t.entries[id]; exists {
			entry.TrackOrder = want.TrackOrder
			continuing = append(continuing, entry)
			continue
		}
		resource, err := t.allocator.Allocate(ctx, want.Item.Type, want.Item.URL)
		if err != nil {
			// Allocation failures degrade silently: the layer is simply
			// absent until a later pass succeeds.
			t.logger.Warn("resource allocation failed",
				logging.String(logging.FieldItemID, id),
				logging.String("url", want.Item.URL),
				logging.Error(err))
			continue
		}
		entry := &ActiveEntry{Item: want.Item, Resource: resource, TrackOrder: want.TrackOrder}
		t.entries[id] = entry
		created = append(created, entry)
		t.logger.Debug("entry created",
			logging.String(logging.FieldItemID, id),
			logging.String("type", string(want.Item.Type)))
	}

	return created, continuing
}

// Entries returns a snapshot slice of the current active entries.
func (t *Tracker) Entries() []*ActiveEntry {
	snapshot := make([]*ActiveEntry, 0, len(t.entries))
	for _, entry := range t.entries {
		snapshot = append(snapshot, entry)
	}
	return snapshot
}

// Get returns the active entry for an item id, if present.
func (t *Tracker) Get(id string) (*ActiveEntry, bool) {
	entry, ok := t.entries[id]
	return entry, ok
}

// Len reports the number of active entries.
func (t *Tracker) Len() int {
	return len(t.entries)
}
