// Package storage defines the persistence interfaces for charted matches and
// their point rows. Implementations live in the sqlite and memory
// subpackages.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/LavinLeo/tennis-data/internal/bulk"
)

// ErrNotFound is returned when a match does not exist.
var ErrNotFound = errors.New("match not found")

// Match is one registered charted match.
type Match struct {
	ID         string    `json:"id"`
	P1         string    `json:"p1"`
	P2         string    `json:"p2"`
	Winner     string    `json:"winner"`
	Date       time.Time `json:"date"`
	Tournament string    `json:"tournament"`
	Surface    string    `json:"surface,omitempty"`
	Round      int       `json:"round"`
	Score      string    `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}

// MatchStore persists matches and their charted point rows.
type MatchStore interface {
	// CreateMatch registers a match. The ID must be unique.
	CreateMatch(ctx context.Context, m *Match) error

	// GetMatch returns a match by ID, or ErrNotFound.
	GetMatch(ctx context.Context, id string) (*Match, error)

	// AddPoints appends charted point rows to a match.
	AddPoints(ctx context.Context, matchID string, rows []bulk.PointRow) error

	// ListPoints returns a match's point rows in point order.
	ListPoints(ctx context.Context, matchID string) ([]bulk.PointRow, error)

	// Close releases the store's resources.
	Close() error
}
