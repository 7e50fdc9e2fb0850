package testsupport

import (
	"context"
	"testing"

	"splice/internal/config"
	"splice/internal/project"
	"splice/internal/timeline"
)

// MustOpenStore opens a project.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *project.Store {
	t.Helper()

	store, err := project.Open(cfg)
	if err != nil {
		t.Fatalf("project.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SaveProject stores a document under the given name for tests.
func SaveProject(t testing.TB, store *project.Store, name string, doc timeline.Document) *project.Record {
	t.Helper()

	record, err := store.Save(context.Background(), name, doc)
	if err != nil {
		t.Fatalf("store.Save: %v", err)
	}
	return record
}
