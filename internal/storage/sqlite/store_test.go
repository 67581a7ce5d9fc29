package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/LavinLeo/tennis-data/internal/bulk"
	"github.com/LavinLeo/tennis-data/internal/storage"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testMatch(id string) *storage.Match {
	return &storage.Match{
		ID:         id,
		P1:         "Federer",
		P2:         "Nadal",
		Winner:     "Nadal",
		Date:       time.Date(2008, time.July, 6, 0, 0, 0, 0, time.UTC),
		Tournament: "Wimbledon",
		Surface:    "Grass",
		Round:      7,
		Score:      "6-4 6-4 6-7(5) 6-7(8) 9-7",
	}
}

func TestMatchRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.CreateMatch(ctx, testMatch("m1")); err != nil {
		t.Fatalf("CreateMatch() error = %v", err)
	}

	got, err := s.GetMatch(ctx, "m1")
	if err != nil {
		t.Fatalf("GetMatch() error = %v", err)
	}
	if got.P1 != "Federer" || got.P2 != "Nadal" {
		t.Errorf("players = %q, %q, want Federer, Nadal", got.P1, got.P2)
	}
	if got.Surface != "Grass" {
		t.Errorf("Surface = %q, want %q", got.Surface, "Grass")
	}
	if got.Score != "6-4 6-4 6-7(5) 6-7(8) 9-7" {
		t.Errorf("Score = %q", got.Score)
	}
}

func TestGetMatchNotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.GetMatch(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetMatch() error = %v, want ErrNotFound", err)
	}
}

func TestPointsRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.CreateMatch(ctx, testMatch("m1")); err != nil {
		t.Fatalf("CreateMatch() error = %v", err)
	}

	rows := []bulk.PointRow{
		{MatchID: "m1", Number: 1, Server: "Federer", Returner: "Nadal", ServerWon: true, FirstCode: "6*"},
		{MatchID: "m1", Number: 2, Server: "Federer", Returner: "Nadal", FirstCode: "6d", SecondCode: "4b2fn@"},
		{MatchID: "m1", Number: 3, Server: "Nadal", Returner: "Federer", ServerWon: true, FirstCode: "S"},
	}
	if err := s.AddPoints(ctx, "m1", rows); err != nil {
		t.Fatalf("AddPoints() error = %v", err)
	}

	points, err := s.ListPoints(ctx, "m1")
	if err != nil {
		t.Fatalf("ListPoints() error = %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("ListPoints() = %d rows, want 3", len(points))
	}
	if points[1].SecondCode != "4b2fn@" {
		t.Errorf("points[1].SecondCode = %q, want %q", points[1].SecondCode, "4b2fn@")
	}
	if !points[2].ServerWon {
		t.Error("points[2].ServerWon = false, want true")
	}
}

func TestAddPointsDuplicateNumber(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.CreateMatch(ctx, testMatch("m1")); err != nil {
		t.Fatalf("CreateMatch() error = %v", err)
	}

	rows := []bulk.PointRow{{MatchID: "m1", Number: 1, Server: "A", Returner: "B", FirstCode: "6*"}}
	if err := s.AddPoints(ctx, "m1", rows); err != nil {
		t.Fatalf("AddPoints() error = %v", err)
	}
	if err := s.AddPoints(ctx, "m1", rows); err == nil {
		t.Fatal("AddPoints() with duplicate point number expected error, got nil")
	}
}

func TestAddPointsUnknownMatch(t *testing.T) {
	s := testStore(t)

	rows := []bulk.PointRow{{Number: 1, Server: "A", Returner: "B", FirstCode: "6*"}}
	err := s.AddPoints(context.Background(), "no-such-match", rows)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("AddPoints() error = %v, want ErrNotFound", err)
	}
}

func TestListPointsEmpty(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.CreateMatch(ctx, testMatch("m1")); err != nil {
		t.Fatalf("CreateMatch() error = %v", err)
	}

	points, err := s.ListPoints(ctx, "m1")
	if err != nil {
		t.Fatalf("ListPoints() error = %v", err)
	}
	if len(points) != 0 {
		t.Errorf("ListPoints() = %d rows, want 0", len(points))
	}
}
