package deps

import (
	"splice/internal/config"
)

// Default returns the external binary requirements for a configured daemon.
// ffprobe supplies media metadata; ffmpeg extracts video poster frames. Both
// are optional in the sense that placeholder items play without them.
func Default(cfg *config.Config) []Requirement {
	ffprobe := "ffprobe"
	if cfg != nil && cfg.Media.FFprobePath != "" {
		ffprobe = cfg.Media.FFprobePath
	}
	return []Requirement{
		{
			Name:        "FFprobe",
			Command:     ffprobe,
			Description: "Probes media files for duration and dimensions",
		},
		{
			Name:        "FFmpeg",
			Command:     "ffmpeg",
			Description: "Extracts video frames for compositing",
		},
	}
}
