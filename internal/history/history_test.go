package history_test

import (
	"errors"
	"fmt"
	"testing"

	"splice/internal/history"
	"splice/internal/services"
	"splice/internal/timeline"
)

func docNamed(name string) timeline.Document {
	return timeline.Document{Name: name, Duration: 1000}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	stack, err := history.NewStack(docNamed("v1"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := stack.Push(docNamed("v2")); err != nil {
		t.Fatal(err)
	}
	if err := stack.Push(docNamed("v3")); err != nil {
		t.Fatal(err)
	}

	doc, err := stack.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if doc.Name != "v2" {
		t.Fatalf("undo produced %q, want v2", doc.Name)
	}

	doc, err = stack.Redo()
	if err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if doc.Name != "v3" {
		t.Fatalf("redo produced %q, want v3", doc.Name)
	}
}

func TestPushDiscardsRedo(t *testing.T) {
	stack, err := history.NewStack(docNamed("v1"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := stack.Push(docNamed("v2")); err != nil {
		t.Fatal(err)
	}
	if _, err := stack.Undo(); err != nil {
		t.Fatal(err)
	}
	if err := stack.Push(docNamed("v2b")); err != nil {
		t.Fatal(err)
	}

	if stack.CanRedo() {
		t.Fatal("redo should be empty after a push")
	}
	if _, err := stack.Redo(); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUndoOnEmptyStack(t *testing.T) {
	stack, err := history.NewStack(docNamed("v1"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := stack.Undo(); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLimitDropsOldest(t *testing.T) {
	stack, err := history.NewStack(docNamed("v0"), 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 5; i++ {
		if err := stack.Push(docNamed(fmt.Sprintf("v%d", i))); err != nil {
			t.Fatal(err)
		}
	}

	undoDepth, _ := stack.Depths()
	if undoDepth != 3 {
		t.Fatalf("undo depth = %d, want 3", undoDepth)
	}

	var last timeline.Document
	for stack.CanUndo() {
		last, err = stack.Undo()
		if err != nil {
			t.Fatal(err)
		}
	}
	if last.Name != "v2" {
		t.Fatalf("oldest reachable = %q, want v2", last.Name)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	doc := timeline.Document{
		Name:     "live",
		Duration: 1000,
		Tracks: []timeline.Track{
			{ID: "t0", Order: 0, Items: []timeline.MediaItem{
				{ID: "a", Type: timeline.MediaImage, Duration: 1000, TrackID: "t0", URL: "a.png"},
			}},
		},
	}
	stack, err := history.NewStack(doc, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's document must not rewrite history.
	doc.Tracks[0].Items[0].URL = "changed.png"

	current, err := stack.Current()
	if err != nil {
		t.Fatal(err)
	}
	if current.Tracks[0].Items[0].URL != "a.png" {
		t.Fatalf("snapshot leaked mutation: %q", current.Tracks[0].Items[0].URL)
	}
}
