package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"splice/internal/services"
)

// Metadata describes a probed media file.
type Metadata struct {
	Duration time.Duration
	Width    int
	Height   int
	HasVideo bool
	HasAudio bool
}

// Prober inspects media files for duration and dimensions.
type Prober interface {
	Probe(ctx context.Context, path string) (Metadata, error)
}

// FFprober shells out to ffprobe for container metadata.
type FFprober struct {
	Binary  string
	Timeout time.Duration
}

type probeResult struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecType string `json:"codec_type"`
	Duration  string `json:"duration"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

// Probe executes ffprobe against the provided path and decodes the JSON response.
func (p *FFprober) Probe(ctx context.Context, path string) (Metadata, error) {
	binary := strings.TrimSpace(p.Binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Metadata{}, services.Wrap(services.ErrValidation, "media", "probe", "empty path", nil)
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner",
		"-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		return Metadata{}, services.Wrap(services.ErrExternalTool, "media", "probe",
			fmt.Sprintf("%s: %s", path, detail), err)
	}

	var result probeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return Metadata{}, services.Wrap(services.ErrExternalTool, "media", "probe", "parse ffprobe output", err)
	}

	meta := Metadata{Duration: secondsToDuration(result.Format.Duration)}
	for _, stream := range result.Streams {
		switch strings.ToLower(stream.CodecType) {
		case "video":
			meta.HasVideo = true
			if meta.Width == 0 {
				meta.Width = stream.Width
				meta.Height = stream.Height
			}
		case "audio":
			meta.HasAudio = true
		}
		if meta.Duration == 0 {
			meta.Duration = secondsToDuration(stream.Duration)
		}
	}
	return meta, nil
}

func secondsToDuration(value string) time.Duration {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return time.Duration(parsed * float64(time.Second))
}
