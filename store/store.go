// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/hanjelito/hackatonNasa2025/domain"
)

// Store defines the interface for data persistence. Session lookups are
// always scoped by (token, paper_id): tokens are globally unique, but the
// composite key prevents cross-paper reuse by a buggy client.
type Store interface {
	// Session operations
	FindSession(ctx context.Context, token, paperID string) (*domain.Session, error)
	LatestSession(ctx context.Context, paperID string) (*domain.Session, error)
	InsertSession(ctx context.Context, session *domain.Session) error
	SaveSession(ctx context.Context, session *domain.Session) error

	// Paper operations
	GetPaper(ctx context.Context, paperID string) (*domain.Paper, error)
	SearchPapers(ctx context.Context, req *domain.SearchRequest) ([]domain.Paper, error)
	InsertPaper(ctx context.Context, paper *domain.Paper) error

	// Lifecycle
	Close() error
}
