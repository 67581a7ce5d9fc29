package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/LavinLeo/tennis-data/internal/bulk"
	"github.com/LavinLeo/tennis-data/internal/storage"
)

// Store is a SQLite implementation of MatchStore.
type Store struct {
	db *sql.DB
}

var _ storage.MatchStore = (*Store)(nil)

// New opens (or creates) the database at dbPath and initializes the schema.
// Pragmas ride on the DSN so every pooled connection gets them, not just the
// one that happened to run a setup statement.
func New(dbPath string) (*Store, error) {
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}

	// Initialize schema
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS matches (
			id TEXT PRIMARY KEY,
			p1 TEXT NOT NULL,
			p2 TEXT NOT NULL,
			winner TEXT NOT NULL,
			date TIMESTAMP NOT NULL,
			tournament TEXT NOT NULL,
			surface TEXT,
			round INTEGER NOT NULL DEFAULT 0,
			score TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS points (
			match_id TEXT NOT NULL,
			number INTEGER NOT NULL,
			server TEXT NOT NULL,
			returner TEXT NOT NULL,
			server_won INTEGER NOT NULL DEFAULT 0,
			first_code TEXT NOT NULL,
			second_code TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (match_id, number),
			FOREIGN KEY (match_id) REFERENCES matches(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_tournament ON matches(tournament)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_date ON matches(date)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	return nil
}

func (s *Store) CreateMatch(ctx context.Context, m *storage.Match) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO matches (id, p1, p2, winner, date, tournament, surface, round, score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.P1, m.P2, m.Winner, m.Date, m.Tournament, m.Surface, m.Round, m.Score, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create match %s: %w", m.ID, err)
	}
	return nil
}

func (s *Store) GetMatch(ctx context.Context, id string) (*storage.Match, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, p1, p2, winner, date, tournament, surface, round, score, created_at
		 FROM matches WHERE id = ?`, id)

	var m storage.Match
	var surface sql.NullString
	err := row.Scan(&m.ID, &m.P1, &m.P2, &m.Winner, &m.Date, &m.Tournament, &surface, &m.Round, &m.Score, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	m.Surface = surface.String

	return &m, nil
}

func (s *Store) AddPoints(ctx context.Context, matchID string, rows []bulk.PointRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Unknown matches surface as ErrNotFound, matching the memory store,
	// rather than as a foreign-key failure.
	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM matches WHERE id = ?`, matchID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check match %s: %w", matchID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO points (match_id, number, server, returner, server_won, first_code, second_code)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		serverWon := 0
		if r.ServerWon {
			serverWon = 1
		}
		if _, err := stmt.ExecContext(ctx, matchID, r.Number, r.Server, r.Returner, serverWon, r.FirstCode, r.SecondCode); err != nil {
			return fmt.Errorf("failed to insert point %d: %w", r.Number, err)
		}
	}

	return tx.Commit()
}

func (s *Store) ListPoints(ctx context.Context, matchID string) ([]bulk.PointRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT match_id, number, server, returner, server_won, first_code, second_code
		 FROM points WHERE match_id = ? ORDER BY number`, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list points for %s: %w", matchID, err)
	}
	defer rows.Close()

	var points []bulk.PointRow
	for rows.Next() {
		var p bulk.PointRow
		var serverWon int
		if err := rows.Scan(&p.MatchID, &p.Number, &p.Server, &p.Returner, &serverWon, &p.FirstCode, &p.SecondCode); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		p.ServerWon = serverWon != 0
		points = append(points, p)
	}

	return points, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
