package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	ProjectDir string `toml:"project_dir"`
	MediaDir   string `toml:"media_dir"`
	LogDir     string `toml:"log_dir"`
	APIBind    string `toml:"api_bind"`
	APIToken   string `toml:"api_token"`
}

// Playback contains configuration for the playback engine.
type Playback struct {
	// FrameRate is the target tick rate of the frame loop in frames per second.
	FrameRate int `toml:"frame_rate"`
	// DriftToleranceMS is the maximum divergence between a resource clock and
	// the playhead before a forced reposition, in milliseconds.
	DriftToleranceMS int64 `toml:"drift_tolerance_ms"`
}

// Compositor contains configuration for the output surface.
type Compositor struct {
	SurfaceWidth  int    `toml:"surface_width"`
	SurfaceHeight int    `toml:"surface_height"`
	Background    string `toml:"background"`
}

// Media contains configuration for media probing.
type Media struct {
	FFprobePath         string `toml:"ffprobe_path"`
	ProbeTimeoutSeconds int    `toml:"probe_timeout"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Playback       bool   `toml:"playback"`
	Projects       bool   `toml:"projects"`
	Errors         bool   `toml:"errors"`
}

// API contains configuration for the HTTP control surface.
type API struct {
	// RateLimitPerSecond bounds mutating requests; zero disables limiting.
	RateLimitPerSecond float64 `toml:"rate_limit_per_second"`
	RateLimitBurst     int     `toml:"rate_limit_burst"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Splice.
//
// Configuration sections by subsystem:
//   - Paths: directories, socket/bind addresses, API token
//   - Playback: frame loop rate and drift tolerance
//   - Compositor: output surface dimensions and background
//   - Media: ffprobe location and timeouts
//   - API: HTTP surface rate limiting
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Playback      Playback      `toml:"playback"`
	Compositor    Compositor    `toml:"compositor"`
	Media         Media         `toml:"media"`
	API           API           `toml:"api"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/splice/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a config file was found at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("splice.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// WriteSample writes the embedded sample configuration to the given path,
// refusing to overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// EnsureDirectories creates the directories the daemon needs at runtime.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.ProjectDir, c.Paths.MediaDir, c.Paths.LogDir}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// SocketPath returns the path of the daemon control socket.
func (c *Config) SocketPath() string {
	return filepath.Join(c.Paths.LogDir, "splice.sock")
}

// LockPath returns the path of the daemon instance lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "spliced.lock")
}

// DatabasePath returns the path of the project database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.ProjectDir, "projects.db")
}

// LogFilePath returns the path of the daemon log file.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, "splice.log")
}

// DriftTolerance returns the playback drift tolerance as a duration.
func (c *Config) DriftTolerance() time.Duration {
	return time.Duration(c.Playback.DriftToleranceMS) * time.Millisecond
}

// ProbeTimeout returns the ffprobe timeout as a duration.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Media.ProbeTimeoutSeconds) * time.Second
}

// ExpandPath resolves ~ prefixes and relative paths to absolute paths.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		trimmed = filepath.Join(home, trimmed[2:])
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}
	return abs, nil
}
