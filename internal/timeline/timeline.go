package timeline

import (
	"sort"
	"strings"
)

// MediaType identifies what kind of resource a timeline item references.
type MediaType string

const (
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
	MediaImage MediaType = "image"
)

// Visual reports whether the media type produces frames for the compositor.
func (t MediaType) Visual() bool {
	return t == MediaVideo || t == MediaImage
}

// Valid reports whether the media type is one of the known variants.
func (t MediaType) Valid() bool {
	switch t {
	case MediaVideo, MediaAudio, MediaImage:
		return true
	}
	return false
}

// MediaItem is a time-positioned piece of media on a track. Times are
// timeline milliseconds. The active interval is half-open:
// [StartTime, StartTime+Duration).
type MediaItem struct {
	ID             string    `json:"id"`
	Type           MediaType `json:"type"`
	StartTime      int64     `json:"start_time"`
	Duration       int64     `json:"duration"`
	TrackID        string    `json:"track_id"`
	URL            string    `json:"url,omitempty"`
	MediaStartTime int64     `json:"media_start_time,omitempty"`
	Placeholder    bool      `json:"placeholder,omitempty"`
}

// EndTime returns the exclusive end of the item's active interval.
func (m MediaItem) EndTime() int64 {
	return m.StartTime + m.Duration
}

// ActiveAt reports whether the playhead position falls inside the item's
// half-open active interval. An item deactivates exactly at its end
// timestamp.
func (m MediaItem) ActiveAt(position int64) bool {
	return position >= m.StartTime && position < m.EndTime()
}

// Materializable reports whether the item can be backed by a platform
// resource. Placeholders and items without a URL are never materialized.
func (m MediaItem) Materializable() bool {
	return !m.Placeholder && strings.TrimSpace(m.URL) != ""
}

// SourceOffset returns the position within the underlying media that
// corresponds to the given playhead position, in timeline milliseconds.
func (m MediaItem) SourceOffset(position int64) int64 {
	return m.MediaStartTime + (position - m.StartTime)
}

// Track is an ordered lane of non-overlapping media items. Lower Order means
// closer to the viewer when compositing.
type Track struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Order int         `json:"order"`
	Items []MediaItem `json:"items"`
}

// ItemAt returns the item active at the given position, if any. Items within
// one track do not overlap, so at most one can match.
func (t Track) ItemAt(position int64) (MediaItem, bool) {
	for _, item := range t.Items {
		if item.ActiveAt(position) {
			return item, true
		}
	}
	return MediaItem{}, false
}

// Document is a complete timeline project as exchanged with the API and the
// project store.
type Document struct {
	Name     string  `json:"name"`
	Duration int64   `json:"duration"`
	Tracks   []Track `json:"tracks"`
}

// TotalDuration returns the explicit document duration, or the latest item
// end across all tracks when unset.
func (d Document) TotalDuration() int64 {
	if d.Duration > 0 {
		return d.Duration
	}
	var max int64
	for _, track := range d.Tracks {
		for _, item := range track.Items {
			if end := item.EndTime(); end > max {
				max = end
			}
		}
	}
	return max
}

// SortTracks returns the tracks sorted by ascending Order. Ties keep their
// relative input order; tie-breaking between equal orders is undefined by
// the model and callers must not rely on it.
func SortTracks(tracks []Track) []Track {
	sorted := make([]Track, len(tracks))
	copy(sorted, tracks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}
