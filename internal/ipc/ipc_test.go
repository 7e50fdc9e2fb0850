package ipc_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"splice/internal/api"
	"splice/internal/daemon"
	"splice/internal/ipc"
	"splice/internal/testsupport"
	"splice/internal/timeline"
)

func placeholderDocument() timeline.Document {
	return timeline.Document{
		Name:     "demo",
		Duration: 8000,
		Tracks: []timeline.Track{
			{ID: "t0", Name: "Video", Order: 0, Items: []timeline.MediaItem{
				{ID: "a", Type: timeline.MediaVideo, StartTime: 0, Duration: 8000, TrackID: "t0", Placeholder: true},
			}},
		},
	}
}

func startServer(t *testing.T, shutdown func()) (*daemon.Daemon, *ipc.Client) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	d, err := daemon.New(cfg, store, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}

	socketPath := filepath.Join(t.TempDir(), "splice.sock")
	server, err := ipc.NewServer(context.Background(), socketPath, d, nil, shutdown)
	if err != nil {
		t.Fatalf("ipc.NewServer: %v", err)
	}
	server.Serve()
	t.Cleanup(server.Close)

	client, err := ipc.Dial(socketPath)
	if err != nil {
		t.Fatalf("ipc.Dial: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return d, client
}

func TestStatusRoundTrip(t *testing.T) {
	_, client := startServer(t, nil)

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Running {
		t.Fatal("daemon was not started, should report not running")
	}
	if status.DatabasePath == "" || status.LockPath == "" {
		t.Fatalf("paths missing: %+v", status)
	}
	if len(status.Dependencies) == 0 {
		t.Fatal("expected dependency report")
	}
}

func TestProjectAndPlaybackFlow(t *testing.T) {
	d, client := startServer(t, nil)
	ctx := context.Background()

	if _, err := d.SaveProject(ctx, "demo", placeholderDocument()); err != nil {
		t.Fatal(err)
	}

	list, err := client.ProjectList()
	if err != nil {
		t.Fatalf("ProjectList: %v", err)
	}
	if len(list.Projects) != 1 || list.Projects[0].Name != "demo" {
		t.Fatalf("projects = %+v", list.Projects)
	}

	shown, err := client.ProjectShow("demo")
	if err != nil {
		t.Fatalf("ProjectShow: %v", err)
	}
	if len(shown.Document.Tracks) != 1 {
		t.Fatalf("document = %+v", shown.Document)
	}

	opened, err := client.ProjectOpen("demo")
	if err != nil {
		t.Fatalf("ProjectOpen: %v", err)
	}
	if opened.Session.State != "stopped" {
		t.Fatalf("state = %q", opened.Session.State)
	}

	playing, err := client.Play()
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if playing.Session.State != "playing" {
		t.Fatalf("state after play = %q", playing.Session.State)
	}

	paused, err := client.Pause()
	if err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if paused.Session.State != "paused" {
		t.Fatalf("state after pause = %q", paused.Session.State)
	}

	sought, err := client.Seek(3000)
	if err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if sought.Session.PositionMS != 3000 {
		t.Fatalf("position = %d", sought.Session.PositionMS)
	}

	stopped, err := client.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if stopped.Session.State != "stopped" || stopped.Session.PositionMS != 0 {
		t.Fatalf("state after stop = %+v", stopped.Session)
	}

	closed, err := client.SessionClose()
	if err != nil {
		t.Fatalf("SessionClose: %v", err)
	}
	if !closed.Closed {
		t.Fatal("expected closed")
	}
}

func TestPlaybackCallsFailWithoutSession(t *testing.T) {
	_, client := startServer(t, nil)

	if _, err := client.Play(); err == nil || !strings.Contains(err.Error(), "no open session") {
		t.Fatalf("expected no-session error, got %v", err)
	}
}

func TestUndoErrorPropagates(t *testing.T) {
	d, client := startServer(t, nil)
	ctx := context.Background()

	if _, err := d.SaveProject(ctx, "demo", placeholderDocument()); err != nil {
		t.Fatal(err)
	}
	if _, err := client.ProjectOpen("demo"); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Undo(); err == nil {
		t.Fatal("expected error when nothing to undo")
	}
}

func TestProjectSave(t *testing.T) {
	_, client := startServer(t, nil)

	saved, err := client.ProjectSave("demo", api.FromDocument(placeholderDocument()))
	if err != nil {
		t.Fatalf("ProjectSave: %v", err)
	}
	if saved.Project.Name != "demo" || saved.Project.TrackCount != 1 {
		t.Fatalf("unexpected summary: %+v", saved.Project)
	}

	shown, err := client.ProjectShow("demo")
	if err != nil {
		t.Fatalf("ProjectShow: %v", err)
	}
	if shown.Document.Duration != 8000 {
		t.Fatalf("expected duration 8000, got %d", shown.Document.Duration)
	}

	bad := api.Document{Name: "bad", Tracks: []api.Track{
		{ID: "t0", Order: 0, Items: []api.MediaItem{
			{ID: "x", Type: "video", TrackID: "t0", Duration: 0, Placeholder: true},
		}},
	}}
	if _, err := client.ProjectSave("bad", bad); err == nil {
		t.Fatal("expected validation error for zero-duration item")
	}
}

func TestProjectDelete(t *testing.T) {
	d, client := startServer(t, nil)
	ctx := context.Background()

	if _, err := d.SaveProject(ctx, "demo", placeholderDocument()); err != nil {
		t.Fatal(err)
	}
	deleted, err := client.ProjectDelete("demo")
	if err != nil {
		t.Fatalf("ProjectDelete: %v", err)
	}
	if !deleted.Deleted {
		t.Fatal("expected deleted")
	}
	if _, err := client.ProjectShow("demo"); err == nil {
		t.Fatal("expected error for deleted project")
	}
}

func TestShutdownInvokesCallback(t *testing.T) {
	called := make(chan struct{})
	_, client := startServer(t, func() { close(called) })

	resp, err := client.Shutdown()
	if err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !resp.Stopping {
		t.Fatal("expected stopping")
	}
	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown callback not invoked")
	}
}
