package api_test

import (
	"reflect"
	"testing"
	"time"

	"splice/internal/api"
	"splice/internal/project"
	"splice/internal/timeline"
)

func internalDocument() timeline.Document {
	return timeline.Document{
		Name:     "demo",
		Duration: 10000,
		Tracks: []timeline.Track{
			{ID: "t0", Name: "Video", Order: 0, Items: []timeline.MediaItem{
				{ID: "a", Type: timeline.MediaVideo, StartTime: 0, Duration: 5000, TrackID: "t0", URL: "a.mp4", MediaStartTime: 1500},
			}},
			{ID: "t1", Name: "Overlay", Order: 1, Items: []timeline.MediaItem{
				{ID: "b", Type: timeline.MediaImage, StartTime: 2000, Duration: 3000, TrackID: "t1", URL: "logo.png", Placeholder: true},
			}},
		},
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	original := internalDocument()
	restored := api.ToDocument(api.FromDocument(original))
	if !reflect.DeepEqual(original, restored) {
		t.Fatalf("round trip diverged:\noriginal %+v\nrestored %+v", original, restored)
	}
}

func TestFromDocumentExposesLowercaseTypes(t *testing.T) {
	dto := api.FromDocument(internalDocument())
	if dto.Tracks[0].Items[0].Type != "video" {
		t.Fatalf("type = %q", dto.Tracks[0].Items[0].Type)
	}
	if dto.Tracks[1].Items[0].Type != "image" {
		t.Fatalf("type = %q", dto.Tracks[1].Items[0].Type)
	}
}

func TestFromRecordSummarizes(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	record := &project.Record{
		ID:        7,
		Name:      "demo",
		Document:  internalDocument(),
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
	}

	summary := api.FromRecord(record)
	if summary.ID != 7 || summary.Name != "demo" {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.TrackCount != 2 {
		t.Fatalf("track count = %d", summary.TrackCount)
	}
	if summary.DurationMS != 10000 {
		t.Fatalf("duration = %d", summary.DurationMS)
	}
	if summary.CreatedAt != "2026-08-01T10:00:00.000Z" {
		t.Fatalf("created = %q", summary.CreatedAt)
	}
}

func TestFromRecordNil(t *testing.T) {
	if got := api.FromRecord(nil); got != (api.ProjectSummary{}) {
		t.Fatalf("expected zero summary, got %+v", got)
	}
}

func TestFromAssetOmitsZeroProbeTime(t *testing.T) {
	asset := api.FromAsset(&project.Asset{ID: 1, URL: "a.mp4", MediaType: timeline.MediaVideo})
	if asset.ProbedAt != "" {
		t.Fatalf("probedAt = %q, want empty", asset.ProbedAt)
	}
}
