package media

import (
	"context"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"splice/internal/config"
	"splice/internal/logging"
	"splice/internal/services"
	"splice/internal/timeline"
)

// PlatformAllocator builds resources backed by local media files: ffprobe
// for clock metadata, ffmpeg for video stills, stdlib decoders for images.
type PlatformAllocator struct {
	prober    Prober
	extractor FrameExtractor
	mediaDir  string
	logger    *slog.Logger
}

// NewAllocator constructs a production allocator from configuration.
func NewAllocator(cfg *config.Config, logger *slog.Logger) *PlatformAllocator {
	timeout := 30 * time.Second
	binary := "ffprobe"
	mediaDir := ""
	if cfg != nil {
		timeout = time.Duration(cfg.Media.ProbeTimeoutSeconds) * time.Second
		binary = cfg.Media.FFprobePath
		mediaDir = cfg.Paths.MediaDir
	}
	return &PlatformAllocator{
		prober:    &FFprober{Binary: binary, Timeout: timeout},
		extractor: &FFmpegExtractor{Timeout: timeout},
		mediaDir:  mediaDir,
		logger:    logging.NewComponentLogger(logger, "media"),
	}
}

// NewAllocatorWithTools constructs an allocator with explicit prober and
// extractor implementations (used in tests).
func NewAllocatorWithTools(prober Prober, extractor FrameExtractor, mediaDir string, logger *slog.Logger) *PlatformAllocator {
	return &PlatformAllocator{
		prober:    prober,
		extractor: extractor,
		mediaDir:  mediaDir,
		logger:    logging.NewComponentLogger(logger, "media"),
	}
}

// Allocate builds a resource for the given media type and url.
func (a *PlatformAllocator) Allocate(ctx context.Context, mediaType timeline.MediaType, rawURL string) (Resource, error) {
	path, err := a.resolvePath(rawURL)
	if err != nil {
		return nil, err
	}

	switch mediaType {
	case timeline.MediaImage:
		return newImageResource(path, a.logger), nil
	case timeline.MediaVideo:
		meta, err := a.prober.Probe(ctx, path)
		if err != nil {
			return nil, err
		}
		return newVideoResource(path, meta, a.extractor, a.logger), nil
	case timeline.MediaAudio:
		meta, err := a.prober.Probe(ctx, path)
		if err != nil {
			return nil, err
		}
		return newAudioResource(path, meta), nil
	default:
		return nil, services.Wrap(services.ErrValidation, "media", "allocate",
			"unknown media type "+string(mediaType), nil)
	}
}

// resolvePath maps an item url to a local file path. Bare relative paths are
// resolved against the configured media directory.
func (a *PlatformAllocator) resolvePath(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", services.Wrap(services.ErrValidation, "media", "allocate", "empty url", nil)
	}
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme == "file" {
		return parsed.Path, nil
	}
	if filepath.IsAbs(trimmed) {
		return trimmed, nil
	}
	if a.mediaDir != "" {
		return filepath.Join(a.mediaDir, trimmed), nil
	}
	return trimmed, nil
}
