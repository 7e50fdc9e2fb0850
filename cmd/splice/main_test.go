package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"splice/internal/api"
)

func writeDocumentFile(t *testing.T, dir string, durationMS int64) string {
	t.Helper()
	doc := api.FromDocument(placeholderDocument(durationMS))
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	path := filepath.Join(dir, "demo.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	return path
}

func TestDaemonStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"daemon", "status"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("daemon status: %v", err)
	}
	requireContains(t, out, "== Daemon ==")
	requireContains(t, out, "Running")
	requireContains(t, out, "No open session")
}

func TestProjectAndPlaybackFlow(t *testing.T) {
	env := setupCLITestEnv(t)
	docPath := writeDocumentFile(t, t.TempDir(), 8000)

	out, _, err := runCLI(t, []string{"project", "save", "demo", docPath}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("project save: %v", err)
	}
	requireContains(t, out, "Saved project demo")

	out, _, err = runCLI(t, []string{"project", "list"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("project list: %v", err)
	}
	requireContains(t, out, "demo")
	requireContains(t, out, "0:08.000")

	out, _, err = runCLI(t, []string{"project", "show", "demo"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("project show: %v", err)
	}
	requireContains(t, out, `"name": "demo"`)

	out, _, err = runCLI(t, []string{"project", "open", "demo"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("project open: %v", err)
	}
	requireContains(t, out, "Opened demo")

	out, _, err = runCLI(t, []string{"play"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	requireContains(t, out, "demo: playing")

	out, _, err = runCLI(t, []string{"pause"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	requireContains(t, out, "demo: paused")

	out, _, err = runCLI(t, []string{"seek", "0:03"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("seek: %v", err)
	}
	requireContains(t, out, "demo: paused at 0:03.000 of 0:08.000")

	out, _, err = runCLI(t, []string{"stop"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	requireContains(t, out, "demo: stopped at 0:00.000 of 0:08.000")

	out, _, err = runCLI(t, []string{"session", "close"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("session close: %v", err)
	}
	requireContains(t, out, "Session closed")

	out, _, err = runCLI(t, []string{"project", "delete", "demo"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("project delete: %v", err)
	}
	requireContains(t, out, "Deleted project demo")
}

func TestPlaybackWithoutSessionFails(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"play"}, env.socketPath, env.configPath)
	if err == nil {
		t.Fatal("expected play without session to fail")
	}
	requireContains(t, err.Error(), "no open session")
}
