package api

import (
	"context"

	"splice/internal/project"
	"splice/internal/timeline"
)

// ProjectReader abstracts project persistence interactions needed for API queries.
type ProjectReader interface {
	List(ctx context.Context) ([]project.Record, error)
	Get(ctx context.Context, name string) (*project.Record, error)
	ListAssets(ctx context.Context, mediaType timeline.MediaType) ([]project.Asset, error)
}

// ProjectService exposes read-only project operations returning API DTOs.
type ProjectService struct {
	store ProjectReader
}

// NewProjectService constructs a ProjectService around the provided reader.
func NewProjectService(store ProjectReader) *ProjectService {
	if store == nil {
		return nil
	}
	return &ProjectService{store: store}
}

// List returns summaries of all stored projects.
func (s *ProjectService) List(ctx context.Context) ([]ProjectSummary, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return FromRecords(records), nil
}

// Describe fetches a single project with its full document.
func (s *ProjectService) Describe(ctx context.Context, name string) (*ProjectResponse, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	record, err := s.store.Get(ctx, name)
	if err != nil || record == nil {
		return nil, err
	}
	return &ProjectResponse{
		Project:  FromRecord(record),
		Document: FromDocument(record.Document),
	}, nil
}

// Assets returns the media catalog, optionally filtered by type.
func (s *ProjectService) Assets(ctx context.Context, mediaType timeline.MediaType) ([]Asset, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	assets, err := s.store.ListAssets(ctx, mediaType)
	if err != nil {
		return nil, err
	}
	return FromAssets(assets), nil
}
