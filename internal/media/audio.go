package media

import (
	"context"
	"image"
	"sync"
	"time"

	"splice/internal/services"
)

// audioResource is a decode clock with no visual output.
type audioResource struct {
	path  string
	meta  Metadata
	clock *playClock

	mu       sync.Mutex
	released bool
	muted    bool
}

func newAudioResource(path string, meta Metadata) *audioResource {
	return &audioResource{path: path, meta: meta, clock: newPlayClock()}
}

func (a *audioResource) Start(ctx context.Context) error {
	a.mu.Lock()
	released := a.released
	a.mu.Unlock()
	if released {
		return services.Wrap(services.ErrValidation, "media", "start", "resource already released", nil)
	}
	a.clock.Start()
	return nil
}

func (a *audioResource) Pause() {
	a.clock.Pause()
}

func (a *audioResource) Stop() {
	a.clock.Pause()
	a.mu.Lock()
	a.released = true
	a.mu.Unlock()
}

func (a *audioResource) SeekTo(offset time.Duration) {
	a.clock.SeekTo(offset)
}

func (a *audioResource) Position() time.Duration {
	return a.clock.Position()
}

func (a *audioResource) Ready() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.released
}

// Frame always returns nil; audio never paints.
func (a *audioResource) Frame() image.Image {
	return nil
}

func (a *audioResource) SetMuted(muted bool) {
	a.mu.Lock()
	a.muted = muted
	a.mu.Unlock()
}
