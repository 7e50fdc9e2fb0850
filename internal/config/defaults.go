package config

const (
	defaultProjectDir          = "~/.local/share/splice/projects"
	defaultMediaDir            = "~/.local/share/splice/media"
	defaultLogDir              = "~/.local/share/splice/logs"
	defaultAPIBind             = "127.0.0.1:7519"
	defaultFrameRate           = 60
	defaultDriftToleranceMS    = 300
	defaultSurfaceWidth        = 1280
	defaultSurfaceHeight       = 720
	defaultBackground          = "#000000"
	defaultFFprobePath         = "ffprobe"
	defaultProbeTimeoutSeconds = 30
	defaultNtfyRequestTimeout  = 10
	defaultRateLimitPerSecond  = 20.0
	defaultRateLimitBurst      = 40
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ProjectDir: defaultProjectDir,
			MediaDir:   defaultMediaDir,
			LogDir:     defaultLogDir,
			APIBind:    defaultAPIBind,
		},
		Playback: Playback{
			FrameRate:        defaultFrameRate,
			DriftToleranceMS: defaultDriftToleranceMS,
		},
		Compositor: Compositor{
			SurfaceWidth:  defaultSurfaceWidth,
			SurfaceHeight: defaultSurfaceHeight,
			Background:    defaultBackground,
		},
		Media: Media{
			FFprobePath:         defaultFFprobePath,
			ProbeTimeoutSeconds: defaultProbeTimeoutSeconds,
		},
		API: API{
			RateLimitPerSecond: defaultRateLimitPerSecond,
			RateLimitBurst:     defaultRateLimitBurst,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyRequestTimeout,
			Playback:       true,
			Projects:       true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
