// Package storage provides the session storage interface and SQLite
// implementation.
package storage

import (
	"context"
	"errors"

	"github.com/aaronsb/think-strategies/internal/model"
)

// ErrNotFound is returned when a session id has no stored row.
var ErrNotFound = errors.New("session not found")

// ListParams holds filters for listing sessions.
type ListParams struct {
	Strategy  string
	Completed *bool
	Limit     int
}

// Store defines the durable session storage contract. Saves are atomic:
// a partially written session is never readable as valid.
type Store interface {
	// SaveSession writes the full session state, inserting or updating.
	SaveSession(ctx context.Context, s *model.Session) error

	// LoadSession reads a session by id. Returns ErrNotFound when absent.
	LoadSession(ctx context.Context, id string) (*model.Session, error)

	// ListSessions lists stored sessions, newest first.
	ListSessions(ctx context.Context, p ListParams) ([]model.SessionSummary, error)

	// SessionMetrics computes the derived quality numbers for a session.
	SessionMetrics(ctx context.Context, id string) (*model.SessionMetrics, error)

	// SetEnhancements attaches a purpose string and quality rating.
	SetEnhancements(ctx context.Context, id, purpose string, quality map[string]int) error

	// Close closes the store.
	Close() error
}
