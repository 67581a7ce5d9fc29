package match

import (
	"testing"
	"time"

	"github.com/LavinLeo/tennis-data/internal/charting"
)

func decode(t *testing.T, server, returner string, serverWon bool, first, second string) *charting.ShotSequence {
	t.Helper()
	seq, err := charting.FromCode(server, returner, serverWon, first, second)
	if err != nil {
		t.Fatalf("FromCode(%q, %q) error = %v", first, second, err)
	}
	return seq
}

func TestSummarize(t *testing.T) {
	sequences := []*charting.ShotSequence{
		// Ace.
		decode(t, "Federer", "Nadal", true, "6*", ""),
		// Double fault.
		decode(t, "Federer", "Nadal", false, "6d", "5w"),
		// Second-serve rally, netted forehand by Federer.
		decode(t, "Federer", "Nadal", false, "4n", "5b2fn@"),
		// First-serve rally, backhand winner by Nadal.
		decode(t, "Federer", "Nadal", false, "4f8b3*", ""),
		// Not coded.
		decode(t, "Federer", "Nadal", true, "S", ""),
	}

	summary := Summarize(sequences)

	if summary.Points != 5 {
		t.Errorf("Points = %d, want 5", summary.Points)
	}
	if summary.CodedPoints != 4 {
		t.Errorf("CodedPoints = %d, want 4", summary.CodedPoints)
	}

	server := summary.Players["Federer"]
	if server == nil {
		t.Fatal("no summary for the server")
	}
	if server.ServePoints != 5 {
		t.Errorf("ServePoints = %d, want 5", server.ServePoints)
	}
	if server.ServePointsWon != 2 {
		t.Errorf("ServePointsWon = %d, want 2", server.ServePointsWon)
	}
	if server.Aces != 1 {
		t.Errorf("Aces = %d, want 1", server.Aces)
	}
	if server.DoubleFaults != 1 {
		t.Errorf("DoubleFaults = %d, want 1", server.DoubleFaults)
	}
	if server.FirstServesIn != 2 {
		t.Errorf("FirstServesIn = %d, want 2", server.FirstServesIn)
	}
	if server.Errors != 1 {
		t.Errorf("server Errors = %d, want 1", server.Errors)
	}

	returner := summary.Players["Nadal"]
	if returner == nil {
		t.Fatal("no summary for the returner")
	}
	if returner.Winners != 1 {
		t.Errorf("returner Winners = %d, want 1", returner.Winners)
	}
	if returner.ShotCounts[charting.ShotBackhand] != 2 {
		t.Errorf("returner backhands = %d, want 2", returner.ShotCounts[charting.ShotBackhand])
	}

	if summary.RallyLengths[2] != 2 {
		t.Errorf("RallyLengths[2] = %d, want 2", summary.RallyLengths[2])
	}
}

func TestNewCompletedMatch(t *testing.T) {
	date := time.Date(2008, time.June, 8, 0, 0, 0, 0, time.UTC)

	m, err := NewCompletedMatch("Federer", "Nadal", "Nadal", date, "Roland Garros", "Clay", 7, "6-4 6-4 6-4", nil)
	if err != nil {
		t.Fatalf("NewCompletedMatch() error = %v", err)
	}
	if m.Loser() != "Federer" {
		t.Errorf("Loser() = %q, want %q", m.Loser(), "Federer")
	}
	if len(m.Score.Sets) != 3 {
		t.Errorf("Sets = %d, want 3", len(m.Score.Sets))
	}
}

func TestNewCompletedMatchRetirement(t *testing.T) {
	date := time.Date(2008, time.June, 8, 0, 0, 0, 0, time.UTC)

	// A mid-set retirement still counts its partial set toward the
	// two-set minimum.
	m, err := NewCompletedMatch("Federer", "Nadal", "Nadal", date, "Roland Garros", "Clay", 7, "6-4 3-2 RET", nil)
	if err != nil {
		t.Fatalf("NewCompletedMatch() error = %v", err)
	}
	if !m.Score.Retirement {
		t.Error("Retirement = false, want true")
	}
	if len(m.Score.Sets) != 2 {
		t.Errorf("Sets = %d, want 2", len(m.Score.Sets))
	}
	if m.Score.CompleteSets() != 1 {
		t.Errorf("CompleteSets() = %d, want 1", m.Score.CompleteSets())
	}
}

func TestNewCompletedMatchRejects(t *testing.T) {
	date := time.Date(2008, time.June, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		winner string
		score  string
	}{
		{name: "winner not a player", winner: "Djokovic", score: "6-4 6-4"},
		{name: "malformed score", winner: "Nadal", score: "six four"},
		{name: "single-set retirement", winner: "Nadal", score: "3-2 RET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCompletedMatch("Federer", "Nadal", tt.winner, date, "Roland Garros", "Clay", 7, tt.score, nil)
			if err == nil {
				t.Fatalf("NewCompletedMatch() expected error, got nil")
			}
		})
	}
}
