package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"splice/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Playback.FrameRate != 60 {
		t.Fatalf("frame rate = %d, want 60", cfg.Playback.FrameRate)
	}
	if cfg.Playback.DriftToleranceMS != 300 {
		t.Fatalf("drift tolerance = %d, want 300", cfg.Playback.DriftToleranceMS)
	}
	if cfg.Paths.APIBind == "" {
		t.Fatal("expected default api bind")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[paths]
log_dir = "` + filepath.Join(dir, "logs") + `"

[playback]
frame_rate = 30
drift_tolerance_ms = 150

[compositor]
surface_width = 640
surface_height = 360
background = "#101820"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Playback.FrameRate != 30 || cfg.Playback.DriftToleranceMS != 150 {
		t.Fatalf("playback = %+v", cfg.Playback)
	}
	if cfg.Compositor.SurfaceWidth != 640 || cfg.Compositor.SurfaceHeight != 360 {
		t.Fatalf("compositor = %+v", cfg.Compositor)
	}
}

func TestLoadRejectsBadBackground(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[compositor]\nbackground = \"red\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "compositor.background") {
		t.Fatalf("expected background error, got %v", err)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected log format error")
	}
}

func TestParseBackground(t *testing.T) {
	rgba, err := config.ParseBackground("#20A0FF")
	if err != nil {
		t.Fatalf("ParseBackground: %v", err)
	}
	if rgba.R != 0x20 || rgba.G != 0xa0 || rgba.B != 0xff || rgba.A != 0xff {
		t.Fatalf("rgba = %+v", rgba)
	}
	if _, err := config.ParseBackground("202020"); err == nil {
		t.Fatal("expected error for missing #")
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected overwrite refusal")
	}
}
