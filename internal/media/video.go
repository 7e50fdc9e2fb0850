package media

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"time"

	"splice/internal/logging"
	"splice/internal/services"
)

// posterRefreshThreshold is how far the clock may move from the last
// extracted frame before a new still is fetched.
const posterRefreshThreshold = time.Second

// videoResource advances a decode clock against probed container metadata
// and keeps a poster frame near the current position for compositing.
type videoResource struct {
	path      string
	meta      Metadata
	clock     *playClock
	extractor FrameExtractor
	logger    *slog.Logger

	mu       sync.Mutex
	frame    image.Image
	frameAt  time.Duration
	fetching bool
	released bool
	muted    bool
}

func newVideoResource(path string, meta Metadata, extractor FrameExtractor, logger *slog.Logger) *videoResource {
	return &videoResource{
		path:      path,
		meta:      meta,
		clock:     newPlayClock(),
		extractor: extractor,
		logger:    logging.NewComponentLogger(logger, "media-video"),
	}
}

func (v *videoResource) Start(ctx context.Context) error {
	v.mu.Lock()
	released := v.released
	v.mu.Unlock()
	if released {
		return services.Wrap(services.ErrValidation, "media", "start", "resource already released", nil)
	}
	v.clock.Start()
	v.refreshFrame(ctx)
	return nil
}

func (v *videoResource) Pause() {
	v.clock.Pause()
}

func (v *videoResource) Stop() {
	v.clock.Pause()
	v.mu.Lock()
	v.released = true
	v.frame = nil
	v.mu.Unlock()
}

func (v *videoResource) SeekTo(offset time.Duration) {
	v.clock.SeekTo(offset)
	v.refreshFrame(context.Background())
}

func (v *videoResource) Position() time.Duration {
	return v.clock.Position()
}

func (v *videoResource) Ready() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.released && v.frame != nil
}

func (v *videoResource) Frame() image.Image {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.released {
		return nil
	}
	return v.frame
}

func (v *videoResource) SetMuted(muted bool) {
	v.mu.Lock()
	v.muted = muted
	v.mu.Unlock()
}

// refreshFrame fetches a still near the current clock position unless one is
// already in flight or close enough. Extraction failures leave the resource
// not-ready; the compositor simply skips it.
func (v *videoResource) refreshFrame(ctx context.Context) {
	if v.extractor == nil {
		return
	}
	target := v.clock.Position()

	v.mu.Lock()
	if v.released || v.fetching {
		v.mu.Unlock()
		return
	}
	if v.frame != nil && absDuration(target-v.frameAt) < posterRefreshThreshold {
		v.mu.Unlock()
		return
	}
	v.fetching = true
	v.mu.Unlock()

	go func() {
		frame, err := v.extractor.ExtractFrame(ctx, v.path, target)

		v.mu.Lock()
		defer v.mu.Unlock()
		v.fetching = false
		if v.released {
			return
		}
		if err != nil {
			v.logger.Debug("frame extraction failed",
				logging.String("path", v.path),
				logging.Duration("offset", target),
				logging.Error(err))
			return
		}
		v.frame = frame
		v.frameAt = target
	}()
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
