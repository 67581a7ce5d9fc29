package match

import (
	"github.com/LavinLeo/tennis-data/internal/charting"
)

// PlayerSummary aggregates one player's serve and shot counts over a set of
// decoded points.
type PlayerSummary struct {
	Player string `json:"player"`

	ServePoints    int `json:"serve_points"`
	ServePointsWon int `json:"serve_points_won"`

	FirstServesIn int `json:"first_serves_in"`
	Aces          int `json:"aces"`
	Unreturnable  int `json:"unreturnable"`
	DoubleFaults  int `json:"double_faults"`

	ShotCounts map[charting.ShotType]int `json:"shot_counts,omitempty"`
	Winners    int                       `json:"winners"`
	Errors     int                       `json:"errors"`
}

// Summary aggregates the shot-level counts of a match's decoded sequences.
// It is the demonstration consumer of the decoder's structural accessors:
// everything here is derived through WasFault, HadRally, and the shot
// outcomes, never by re-reading notation.
type Summary struct {
	Points      int `json:"points"`
	CodedPoints int `json:"coded_points"`

	// RallyLengths counts rallies by shot count
	RallyLengths map[int]int `json:"rally_lengths,omitempty"`

	Players map[string]*PlayerSummary `json:"players"`
}

// Summarize computes aggregate counts over decoded sequences. Uncharted
// shapes (not coded, outright win/loss) contribute to point totals only.
func Summarize(sequences []*charting.ShotSequence) *Summary {
	summary := &Summary{
		RallyLengths: make(map[int]int),
		Players:      make(map[string]*PlayerSummary),
	}

	for _, seq := range sequences {
		if seq == nil {
			continue
		}
		summary.Points++

		server := summary.player(seq.Server)
		summary.player(seq.Returner)

		server.ServePoints++
		if seq.ServerWon {
			server.ServePointsWon++
		}

		if !seq.FullyCoded() {
			continue
		}
		summary.CodedPoints++

		if !seq.FirstServe.WasFault() {
			server.FirstServesIn++
		}

		terminating := seq.TerminatingServe()
		switch terminating.Classification() {
		case charting.ServeAce:
			server.Aces++
		case charting.ServeUnreturnable:
			server.Unreturnable++
		case charting.ServeFault:
			// A terminating fault is by definition the second serve.
			server.DoubleFaults++
		}

		if seq.Rally != nil {
			summary.RallyLengths[seq.Rally.Len()]++
			for _, shot := range seq.Rally.Shots {
				hitter := summary.player(shot.Player)
				if hitter.ShotCounts == nil {
					hitter.ShotCounts = make(map[charting.ShotType]int)
				}
				hitter.ShotCounts[shot.Type]++

				switch shot.Outcome {
				case charting.OutcomeWinner:
					hitter.Winners++
				case charting.OutcomeForcedError, charting.OutcomeUnforcedError, charting.OutcomeError:
					hitter.Errors++
				}
			}
		}
	}

	return summary
}

func (s *Summary) player(name string) *PlayerSummary {
	if p, ok := s.Players[name]; ok {
		return p
	}
	p := &PlayerSummary{Player: name}
	s.Players[name] = p
	return p
}
