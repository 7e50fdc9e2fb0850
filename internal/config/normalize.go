package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePlayback()
	c.normalizeCompositor()
	c.normalizeMedia()
	c.normalizeAPI()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ProjectDir) == "" {
		c.Paths.ProjectDir = defaultProjectDir
	}
	if c.Paths.ProjectDir, err = ExpandPath(c.Paths.ProjectDir); err != nil {
		return fmt.Errorf("paths.project_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.MediaDir) == "" {
		c.Paths.MediaDir = defaultMediaDir
	}
	if c.Paths.MediaDir, err = ExpandPath(c.Paths.MediaDir); err != nil {
		return fmt.Errorf("paths.media_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

func (c *Config) normalizePlayback() {
	if c.Playback.FrameRate <= 0 {
		c.Playback.FrameRate = defaultFrameRate
	}
	if c.Playback.DriftToleranceMS <= 0 {
		c.Playback.DriftToleranceMS = defaultDriftToleranceMS
	}
}

func (c *Config) normalizeCompositor() {
	if c.Compositor.SurfaceWidth <= 0 {
		c.Compositor.SurfaceWidth = defaultSurfaceWidth
	}
	if c.Compositor.SurfaceHeight <= 0 {
		c.Compositor.SurfaceHeight = defaultSurfaceHeight
	}
	if strings.TrimSpace(c.Compositor.Background) == "" {
		c.Compositor.Background = defaultBackground
	}
}

func (c *Config) normalizeMedia() {
	if strings.TrimSpace(c.Media.FFprobePath) == "" {
		c.Media.FFprobePath = defaultFFprobePath
	}
	if c.Media.ProbeTimeoutSeconds <= 0 {
		c.Media.ProbeTimeoutSeconds = defaultProbeTimeoutSeconds
	}
}

func (c *Config) normalizeAPI() {
	if c.API.RateLimitPerSecond < 0 {
		c.API.RateLimitPerSecond = 0
	}
	if c.API.RateLimitPerSecond > 0 && c.API.RateLimitBurst <= 0 {
		c.API.RateLimitBurst = defaultRateLimitBurst
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
