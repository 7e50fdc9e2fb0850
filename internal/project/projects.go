package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"splice/internal/services"
	"splice/internal/timeline"
)

// Record is a stored project row.
type Record struct {
	ID        int64
	Name      string
	Document  timeline.Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Save inserts or replaces the named project with the given document.
func (s *Store) Save(ctx context.Context, name string, doc timeline.Document) (*Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, services.Wrap(services.ErrValidation, "project", "save", "empty project name", nil)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO projects (name, document_json, created_at, updated_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(name) DO UPDATE SET document_json = excluded.document_json, updated_at = excluded.updated_at`,
		name, string(payload), timestamp, timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}

	return s.Get(ctx, name)
}

// Get returns the named project.
func (s *Store) Get(ctx context.Context, name string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, document_json, created_at, updated_at FROM projects WHERE name = ?`,
		strings.TrimSpace(name),
	)
	record, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "project", "get", name, nil)
	}
	return record, err
}

// List returns all projects ordered by most recent update.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, document_json, created_at, updated_at FROM projects ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// Delete removes the named project.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "project", "delete", name, nil)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*Record, error) {
	var record Record
	var payload, createdAt, updatedAt string
	if err := row.Scan(&record.ID, &record.Name, &payload, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &record.Document); err != nil {
		return nil, fmt.Errorf("decode document for %s: %w", record.Name, err)
	}
	record.CreatedAt = parseTimestamp(createdAt)
	record.UpdatedAt = parseTimestamp(updatedAt)
	return &record, nil
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
