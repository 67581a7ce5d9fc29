package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/LavinLeo/tennis-data/internal/bulk"
	"github.com/LavinLeo/tennis-data/internal/storage"
)

// Store is an in-memory implementation of MatchStore, used in tests and for
// running without persistence.
type Store struct {
	mu      sync.RWMutex
	matches map[string]*storage.Match
	points  map[string][]bulk.PointRow
}

var _ storage.MatchStore = (*Store)(nil)

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		matches: make(map[string]*storage.Match),
		points:  make(map[string][]bulk.PointRow),
	}
}

func (s *Store) CreateMatch(ctx context.Context, m *storage.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.matches[m.ID]; exists {
		return fmt.Errorf("match %s already exists", m.ID)
	}

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	copied := *m
	s.matches[m.ID] = &copied
	return nil
}

func (s *Store) GetMatch(ctx context.Context, id string) (*storage.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, exists := s.matches[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copied := *m
	return &copied, nil
}

func (s *Store) AddPoints(ctx context.Context, matchID string, rows []bulk.PointRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.matches[matchID]; !exists {
		return storage.ErrNotFound
	}

	// Point numbers are unique per match, like the sqlite primary key.
	seen := make(map[int]bool, len(s.points[matchID])+len(rows))
	for _, p := range s.points[matchID] {
		seen[p.Number] = true
	}
	for _, r := range rows {
		if seen[r.Number] {
			return fmt.Errorf("point %d already exists for match %s", r.Number, matchID)
		}
		seen[r.Number] = true
	}

	s.points[matchID] = append(s.points[matchID], rows...)
	return nil
}

func (s *Store) ListPoints(ctx context.Context, matchID string) ([]bulk.PointRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points := make([]bulk.PointRow, len(s.points[matchID]))
	copy(points, s.points[matchID])
	sort.Slice(points, func(i, j int) bool { return points[i].Number < points[j].Number })
	return points, nil
}

func (s *Store) Close() error {
	return nil
}
