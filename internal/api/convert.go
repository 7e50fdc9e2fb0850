package api

import (
	"time"

	"splice/internal/project"
	"splice/internal/session"
	"splice/internal/timeline"
)

// FromDocument converts an internal timeline document to its DTO.
func FromDocument(doc timeline.Document) Document {
	tracks := make([]Track, 0, len(doc.Tracks))
	for _, track := range doc.Tracks {
		items := make([]MediaItem, 0, len(track.Items))
		for _, item := range track.Items {
			items = append(items, MediaItem{
				ID:             item.ID,
				Type:           string(item.Type),
				StartTime:      item.StartTime,
				Duration:       item.Duration,
				TrackID:        item.TrackID,
				URL:            item.URL,
				MediaStartTime: item.MediaStartTime,
				Placeholder:    item.Placeholder,
			})
		}
		tracks = append(tracks, Track{
			ID:    track.ID,
			Name:  track.Name,
			Order: track.Order,
			Items: items,
		})
	}
	return Document{
		Name:     doc.Name,
		Duration: doc.Duration,
		Tracks:   tracks,
	}
}

// ToDocument converts a DTO back to the internal timeline representation.
// The result still needs Validate before it reaches the engine.
func ToDocument(doc Document) timeline.Document {
	tracks := make([]timeline.Track, 0, len(doc.Tracks))
	for _, track := range doc.Tracks {
		items := make([]timeline.MediaItem, 0, len(track.Items))
		for _, item := range track.Items {
			items = append(items, timeline.MediaItem{
				ID:             item.ID,
				Type:           timeline.MediaType(item.Type),
				StartTime:      item.StartTime,
				Duration:       item.Duration,
				TrackID:        item.TrackID,
				URL:            item.URL,
				MediaStartTime: item.MediaStartTime,
				Placeholder:    item.Placeholder,
			})
		}
		tracks = append(tracks, timeline.Track{
			ID:    track.ID,
			Name:  track.Name,
			Order: track.Order,
			Items: items,
		})
	}
	return timeline.Document{
		Name:     doc.Name,
		Duration: doc.Duration,
		Tracks:   tracks,
	}
}

// FromRecord converts a stored project into a summary DTO.
func FromRecord(record *project.Record) ProjectSummary {
	if record == nil {
		return ProjectSummary{}
	}
	return ProjectSummary{
		ID:         record.ID,
		Name:       record.Name,
		TrackCount: len(record.Document.Tracks),
		DurationMS: record.Document.TotalDuration(),
		CreatedAt:  formatTimestamp(record.CreatedAt),
		UpdatedAt:  formatTimestamp(record.UpdatedAt),
	}
}

// FromRecords converts stored projects into summary DTOs.
func FromRecords(records []project.Record) []ProjectSummary {
	summaries := make([]ProjectSummary, 0, len(records))
	for i := range records {
		summaries = append(summaries, FromRecord(&records[i]))
	}
	return summaries
}

// FromAsset converts a catalogued asset into its DTO.
func FromAsset(asset *project.Asset) Asset {
	if asset == nil {
		return Asset{}
	}
	return Asset{
		ID:           asset.ID,
		URL:          asset.URL,
		MediaType:    string(asset.MediaType),
		DisplayTitle: asset.DisplayTitle,
		DurationMS:   asset.DurationMS,
		Width:        asset.Width,
		Height:       asset.Height,
		ProbedAt:     formatTimestamp(asset.ProbedAt),
	}
}

// FromAssets converts catalogued assets into DTOs.
func FromAssets(assets []project.Asset) []Asset {
	out := make([]Asset, 0, len(assets))
	for i := range assets {
		out = append(out, FromAsset(&assets[i]))
	}
	return out
}

// FromSessionStatus converts a session snapshot into its DTO.
func FromSessionStatus(status session.Status) SessionStatus {
	return SessionStatus{
		SessionID:   status.SessionID,
		ProjectName: status.ProjectName,
		State:       status.State,
		PositionMS:  status.PositionMS,
		DurationMS:  status.DurationMS,
		ActiveItems: status.ActiveItems,
		CanUndo:     status.CanUndo,
		CanRedo:     status.CanRedo,
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeFormat)
}
