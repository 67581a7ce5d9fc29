// Package match holds the match-level objects exchanged with the tabular
// layer: CompletedMatch records built from already-parsed rows, the
// per-match aggregate stat rows that layer supplies, and the charting
// summary computed from decoded shot sequences.
package match

import (
	"fmt"
	"time"

	"github.com/LavinLeo/tennis-data/internal/scores"
)

// Stats is one player's aggregate serve statistics for a match, as supplied
// by the tabular layer.
type Stats struct {
	Player            string  `json:"player"`
	ServePointsPlayed int     `json:"serve_points_played"`
	ServePointsWonPct float64 `json:"serve_points_won_pct"`
	ReturnPointsWon   int     `json:"return_points_won,omitempty"`
}

// CompletedMatch is one finished match with its validated score.
type CompletedMatch struct {
	P1     string `json:"p1"`
	P2     string `json:"p2"`
	Winner string `json:"winner"`

	Date           time.Time `json:"date"`
	TournamentName string    `json:"tournament_name"`
	Surface        string    `json:"surface,omitempty"`
	Round          int       `json:"round"`

	Score *scores.Score    `json:"score"`
	Stats map[string]Stats `json:"stats,omitempty"`
}

// NewCompletedMatch builds a CompletedMatch from an already-parsed row,
// validating the score string. Matches with fewer than two parsed sets are
// rejected; the bulk loader skips such rows. A retirement mid-set still
// counts its partial set, so "6-4 3-2 RET" is accepted.
func NewCompletedMatch(p1, p2, winner string, date time.Time, tournament, surface string, round int, rawScore string, stats map[string]Stats) (*CompletedMatch, error) {
	if winner != p1 && winner != p2 {
		return nil, fmt.Errorf("winner %q is neither %q nor %q", winner, p1, p2)
	}

	loser := p1
	if winner == p1 {
		loser = p2
	}

	score, err := scores.Parse(rawScore, winner, loser)
	if err != nil {
		return nil, err
	}
	if len(score.Sets) < 2 {
		return nil, fmt.Errorf("match %s vs %s has fewer than two sets", p1, p2)
	}

	return &CompletedMatch{
		P1:             p1,
		P2:             p2,
		Winner:         winner,
		Date:           date,
		TournamentName: tournament,
		Surface:        surface,
		Round:          round,
		Score:          score,
		Stats:          stats,
	}, nil
}

// Loser returns the identity of the losing player.
func (m *CompletedMatch) Loser() string {
	if m.Winner == m.P1 {
		return m.P2
	}
	return m.P1
}
