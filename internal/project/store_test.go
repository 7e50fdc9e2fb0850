package project_test

import (
	"context"
	"errors"
	"testing"

	"splice/internal/project"
	"splice/internal/services"
	"splice/internal/testsupport"
	"splice/internal/timeline"
)

func sampleDocument() timeline.Document {
	return timeline.Document{
		Name:     "demo",
		Duration: 10000,
		Tracks: []timeline.Track{
			{ID: "t0", Name: "Video", Order: 0, Items: []timeline.MediaItem{
				{ID: "a", Type: timeline.MediaVideo, StartTime: 0, Duration: 5000, TrackID: "t0", URL: "a.mp4"},
			}},
		},
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	saved, err := store.Save(context.Background(), "demo", sampleDocument())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("expected assigned id")
	}

	got, err := store.Get(context.Background(), "demo")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Document.Tracks) != 1 || got.Document.Tracks[0].Items[0].ID != "a" {
		t.Fatalf("document = %+v", got.Document)
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if _, err := store.Save(ctx, "demo", sampleDocument()); err != nil {
		t.Fatal(err)
	}
	doc := sampleDocument()
	doc.Duration = 20000
	if _, err := store.Save(ctx, "demo", doc); err != nil {
		t.Fatal(err)
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("projects = %d, want 1", len(records))
	}
	if records[0].Document.Duration != 20000 {
		t.Fatalf("duration = %d", records[0].Document.Duration)
	}
}

func TestSaveRejectsInvalidDocument(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	doc := sampleDocument()
	doc.Tracks[0].Items[0].Duration = 0
	_, err := store.Save(context.Background(), "demo", doc)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetMissingProject(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	_, err := store.Get(context.Background(), "absent")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteProject(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if _, err := store.Save(ctx, "demo", sampleDocument()); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "demo"); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "demo"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestAssetUpsertAndList(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	asset, err := store.UpsertAsset(ctx, project.Asset{
		URL:        "clips/beach_day-final.mp4",
		MediaType:  timeline.MediaVideo,
		DurationMS: 42000,
		Width:      1920,
		Height:     1080,
	})
	if err != nil {
		t.Fatalf("UpsertAsset: %v", err)
	}
	if asset.DisplayTitle != "Beach Day Final" {
		t.Fatalf("display title = %q", asset.DisplayTitle)
	}

	// Second upsert refreshes rather than duplicating.
	if _, err := store.UpsertAsset(ctx, project.Asset{
		URL:       "clips/beach_day-final.mp4",
		MediaType: timeline.MediaVideo,
		Width:     1280,
	}); err != nil {
		t.Fatal(err)
	}

	assets, err := store.ListAssets(ctx, timeline.MediaVideo)
	if err != nil {
		t.Fatal(err)
	}
	if len(assets) != 1 {
		t.Fatalf("assets = %d, want 1", len(assets))
	}
	if assets[0].Width != 1280 {
		t.Fatalf("width = %d, want refreshed 1280", assets[0].Width)
	}
}

func TestDisplayTitleFromURL(t *testing.T) {
	cases := map[string]string{
		"clips/sunset_over-water.mp4": "Sunset Over Water",
		"a.png":                       "A",
		"":                            "Untitled",
	}
	for input, want := range cases {
		if got := project.DisplayTitleFromURL(input); got != want {
			t.Errorf("DisplayTitleFromURL(%q) = %q, want %q", input, got, want)
		}
	}
}
