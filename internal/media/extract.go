package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strings"
	"time"

	"splice/internal/services"
)

// FrameExtractor produces a still frame from a media file at a given offset.
type FrameExtractor interface {
	ExtractFrame(ctx context.Context, path string, offset time.Duration) (image.Image, error)
}

// FFmpegExtractor shells out to ffmpeg for single-frame extraction. One
// extraction happens per item activation, mirroring the cost profile of
// resource construction rather than the per-tick hot path.
type FFmpegExtractor struct {
	Binary  string
	Timeout time.Duration
}

// ExtractFrame decodes one PNG frame at the given offset.
func (e *FFmpegExtractor) ExtractFrame(ctx context.Context, path string, offset time.Duration) (image.Image, error) {
	binary := strings.TrimSpace(e.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	seconds := offset.Seconds()
	if seconds < 0 {
		seconds = 0
	}
	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-ss", fmt.Sprintf("%.3f", seconds),
		"-i", path,
		"-frames:v", "1",
		"-f", "image2",
		"-vcodec", "png",
		"pipe:1",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "media", "extract frame",
			strings.TrimSpace(stderr.String()), err)
	}

	frame, err := png.Decode(&stdout)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "media", "extract frame", "decode png", err)
	}
	return frame, nil
}
