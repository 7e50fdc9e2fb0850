package media

import (
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"sync"
	"time"

	"splice/internal/logging"
)

// imageResource decodes a still image once and exposes it as a frozen frame.
// Start and SeekTo are no-ops; an image has no internal clock.
type imageResource struct {
	path   string
	logger *slog.Logger

	mu       sync.Mutex
	frame    image.Image
	decoded  bool
	released bool
}

func newImageResource(path string, logger *slog.Logger) *imageResource {
	r := &imageResource{path: path, logger: logging.NewComponentLogger(logger, "media-image")}
	go r.decode()
	return r
}

func (r *imageResource) decode() {
	file, err := os.Open(r.path)
	if err != nil {
		r.logger.Debug("image open failed", logging.String("path", r.path), logging.Error(err))
		return
	}
	defer file.Close()

	frame, _, err := image.Decode(file)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	if err != nil {
		r.logger.Debug("image decode failed", logging.String("path", r.path), logging.Error(err))
		return
	}
	r.frame = frame
	r.decoded = true
}

func (r *imageResource) Start(ctx context.Context) error { return nil }

func (r *imageResource) Pause() {}

func (r *imageResource) Stop() {
	r.mu.Lock()
	r.released = true
	r.frame = nil
	r.mu.Unlock()
}

func (r *imageResource) SeekTo(offset time.Duration) {}

func (r *imageResource) Position() time.Duration { return 0 }

func (r *imageResource) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.released && r.decoded
}

func (r *imageResource) Frame() image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return nil
	}
	return r.frame
}

func (r *imageResource) SetMuted(bool) {}
