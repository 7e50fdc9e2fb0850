package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"splice/internal/services"
	"splice/internal/timeline"
)

// Asset is a catalogued media file with probed metadata.
type Asset struct {
	ID           int64
	URL          string
	MediaType    timeline.MediaType
	DisplayTitle string
	DurationMS   int64
	Width        int
	Height       int
	ProbedAt     time.Time
}

var titleCaser = cases.Title(language.English)

// DisplayTitleFromURL derives a human-readable title from a media url:
// the base name without extension, separators spaced, title-cased.
func DisplayTitleFromURL(url string) string {
	base := path.Base(strings.TrimSpace(url))
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Untitled"
	}
	return titleCaser.String(base)
}

// UpsertAsset inserts or refreshes a catalog entry keyed by url.
func (s *Store) UpsertAsset(ctx context.Context, asset Asset) (*Asset, error) {
	url := strings.TrimSpace(asset.URL)
	if url == "" {
		return nil, services.Wrap(services.ErrValidation, "project", "upsert asset", "empty url", nil)
	}
	if !asset.MediaType.Valid() {
		return nil, services.Wrap(services.ErrValidation, "project", "upsert asset",
			fmt.Sprintf("unknown media type %q", asset.MediaType), nil)
	}
	title := strings.TrimSpace(asset.DisplayTitle)
	if title == "" {
		title = DisplayTitleFromURL(url)
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assets (url, media_type, display_title, duration_ms, width, height, probed_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(url) DO UPDATE SET
             media_type = excluded.media_type,
             display_title = excluded.display_title,
             duration_ms = excluded.duration_ms,
             width = excluded.width,
             height = excluded.height,
             probed_at = excluded.probed_at`,
		url, string(asset.MediaType), title, asset.DurationMS, asset.Width, asset.Height, timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert asset: %w", err)
	}
	return s.GetAsset(ctx, url)
}

// GetAsset returns the catalog entry for a url.
func (s *Store) GetAsset(ctx context.Context, url string) (*Asset, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, url, media_type, display_title, duration_ms, width, height, probed_at
         FROM assets WHERE url = ?`, strings.TrimSpace(url))
	asset, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "project", "get asset", url, nil)
	}
	return asset, err
}

// ListAssets returns the catalog, optionally filtered by media type.
func (s *Store) ListAssets(ctx context.Context, mediaType timeline.MediaType) ([]Asset, error) {
	query := `SELECT id, url, media_type, display_title, duration_ms, width, height, probed_at
              FROM assets`
	args := []any{}
	if mediaType != "" {
		query += ` WHERE media_type = ?`
		args = append(args, string(mediaType))
	}
	query += ` ORDER BY display_title`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *asset)
	}
	return assets, rows.Err()
}

func scanAsset(row rowScanner) (*Asset, error) {
	var asset Asset
	var mediaType, probedAt string
	if err := row.Scan(&asset.ID, &asset.URL, &mediaType, &asset.DisplayTitle,
		&asset.DurationMS, &asset.Width, &asset.Height, &probedAt); err != nil {
		return nil, err
	}
	asset.MediaType = timeline.MediaType(mediaType)
	asset.ProbedAt = parseTimestamp(probedAt)
	return &asset, nil
}
