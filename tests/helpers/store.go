// Package helpers provides shared test fixtures.
package helpers

import (
	"testing"

	"github.com/hanjelito/hackatonNasa2025/store"
)

// NewTestSQLiteStore returns an in-memory store that is closed when the
// test finishes.
func NewTestSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}
