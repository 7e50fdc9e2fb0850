package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePlayback(); err != nil {
		return err
	}
	if err := c.validateCompositor(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.APIBind) == "" {
		return errors.New("paths.api_bind must be set")
	}
	return nil
}

func (c *Config) validatePlayback() error {
	if c.Playback.FrameRate > 240 {
		return fmt.Errorf("playback.frame_rate %d exceeds the supported maximum of 240", c.Playback.FrameRate)
	}
	return nil
}

func (c *Config) validateCompositor() error {
	if c.Compositor.SurfaceWidth > 7680 || c.Compositor.SurfaceHeight > 4320 {
		return errors.New("compositor surface dimensions exceed 8K bounds")
	}
	if _, err := ParseBackground(c.Compositor.Background); err != nil {
		return fmt.Errorf("compositor.background: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
