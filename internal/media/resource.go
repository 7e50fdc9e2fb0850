package media

import (
	"context"
	"image"
	"time"

	"splice/internal/timeline"
)

// Resource wraps one playable or drawable platform resource for one timeline
// item. A resource is single-use: after Stop it releases its backing data and
// must be discarded, never restarted.
type Resource interface {
	// Start begins active advancement of the resource clock. It is a no-op
	// for images. The platform may decline; callers own the retry policy.
	Start(ctx context.Context) error
	// Pause freezes advancement without releasing the resource; Start
	// resumes it.
	Pause()
	// Stop halts advancement and releases the backing resource.
	Stop()
	// SeekTo repositions the resource's internal clock.
	SeekTo(offset time.Duration)
	// Position reports the resource's current internal clock.
	Position() time.Duration
	// Ready reports whether the resource has enough decoded data to produce
	// output for the current frame.
	Ready() bool
	// Frame returns the current decoded frame, or nil for audio or when no
	// frame is available yet.
	Frame() image.Image
	// SetMuted silences or unsilences audio output.
	SetMuted(muted bool)
}

// Allocator constructs platform resources for timeline items. Allocation is
// the most expensive operation on the playback hot path; the engine
// guarantees at most one allocation per item per activation.
type Allocator interface {
	Allocate(ctx context.Context, mediaType timeline.MediaType, url string) (Resource, error)
}
