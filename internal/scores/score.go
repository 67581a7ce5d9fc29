// Package scores parses match-level set-score strings such as
// "6-4 3-6 7-6(5)" and validates their set and game structure. It is the
// score-notation collaborator of the charting decoder: consumers are
// expected to skip rows whose score fails to parse rather than abort a
// whole match list.
package scores

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// BadFormatError reports a score string whose set or game structure is
// malformed.
type BadFormatError struct {
	// Raw is the offending score string
	Raw string

	// Reason is the human-readable cause
	Reason string
}

// Error implements the error interface.
func (e *BadFormatError) Error() string {
	return fmt.Sprintf("bad score format %q: %s", e.Raw, e.Reason)
}

// IsBadFormat reports whether err is a BadFormatError.
func IsBadFormat(err error) bool {
	var bfe *BadFormatError
	return errors.As(err, &bfe)
}

// Set is one completed or abandoned set, games counted from the match
// winner's side.
type Set struct {
	// WinnerGames and LoserGames are games won by the match winner and
	// loser respectively
	WinnerGames int `json:"winner_games"`
	LoserGames  int `json:"loser_games"`

	// Tiebreak is set when the set was decided by a tiebreak;
	// TiebreakLoserPoints is the loser's tiebreak score when recorded
	Tiebreak            bool `json:"tiebreak,omitempty"`
	TiebreakLoserPoints int  `json:"tiebreak_loser_points,omitempty"`

	// Complete is false only for the final set of a retirement
	Complete bool `json:"complete"`
}

// Score is a parsed and validated match score.
type Score struct {
	// Raw is the original score string
	Raw string `json:"raw"`

	// Winner and Loser are the player identities the games are oriented by
	Winner string `json:"winner"`
	Loser  string `json:"loser"`

	// Sets in match order
	Sets []Set `json:"sets"`

	// Retirement is set when the match ended with a retirement
	Retirement bool `json:"retirement,omitempty"`
}

// CompleteSets counts the sets that were played to completion.
func (s *Score) CompleteSets() int {
	n := 0
	for _, set := range s.Sets {
		if set.Complete {
			n++
		}
	}
	return n
}

// SetsWon returns the completed sets won by the winner and loser.
func (s *Score) SetsWon() (winner, loser int) {
	for _, set := range s.Sets {
		if !set.Complete {
			continue
		}
		if set.WinnerGames > set.LoserGames {
			winner++
		} else {
			loser++
		}
	}
	return winner, loser
}

// retirementMarkers are the trailing annotations a charted corpus uses for
// matches that did not run to completion.
var retirementMarkers = map[string]bool{
	"RET":  true,
	"RET.": true,
	"W/O":  true,
	"DEF":  true,
	"ABD":  true,
}

// Parse parses and validates a score string. Games are oriented from the
// match winner's perspective, which is how charted corpora record scores.
func Parse(raw, winner, loser string) (*Score, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &BadFormatError{Raw: raw, Reason: "empty score"}
	}

	score := &Score{Raw: raw, Winner: winner, Loser: loser}

	for _, token := range strings.Fields(trimmed) {
		if retirementMarkers[strings.ToUpper(token)] {
			score.Retirement = true
			continue
		}
		if score.Retirement {
			return nil, &BadFormatError{Raw: raw, Reason: "set score after a retirement marker"}
		}

		set, err := parseSet(raw, token)
		if err != nil {
			return nil, err
		}
		score.Sets = append(score.Sets, set)
	}

	if len(score.Sets) == 0 {
		return nil, &BadFormatError{Raw: raw, Reason: "no sets"}
	}

	// An incomplete set is only legal as the last set of a retirement.
	for i, set := range score.Sets {
		if set.Complete {
			continue
		}
		if !score.Retirement || i != len(score.Sets)-1 {
			return nil, &BadFormatError{Raw: raw, Reason: "incomplete set in a completed match"}
		}
	}

	if !score.Retirement {
		won, lost := score.SetsWon()
		if won <= lost {
			return nil, &BadFormatError{Raw: raw, Reason: "winner did not win a majority of sets"}
		}
	}

	return score, nil
}

func parseSet(raw, token string) (Set, error) {
	games := token
	tiebreakPoints := -1

	// Tiebreak sets carry the loser's points in parentheses: 7-6(5).
	if open := strings.IndexByte(token, '('); open >= 0 {
		if !strings.HasSuffix(token, ")") {
			return Set{}, &BadFormatError{Raw: raw, Reason: fmt.Sprintf("unterminated tiebreak score in %q", token)}
		}
		points, err := strconv.Atoi(token[open+1 : len(token)-1])
		if err != nil || points < 0 {
			return Set{}, &BadFormatError{Raw: raw, Reason: fmt.Sprintf("invalid tiebreak score in %q", token)}
		}
		tiebreakPoints = points
		games = token[:open]
	}

	w, l, ok := strings.Cut(games, "-")
	if !ok {
		return Set{}, &BadFormatError{Raw: raw, Reason: fmt.Sprintf("set %q is not of the form games-games", token)}
	}
	winnerGames, err := strconv.Atoi(w)
	if err != nil || winnerGames < 0 {
		return Set{}, &BadFormatError{Raw: raw, Reason: fmt.Sprintf("invalid game count in %q", token)}
	}
	loserGames, err := strconv.Atoi(l)
	if err != nil || loserGames < 0 {
		return Set{}, &BadFormatError{Raw: raw, Reason: fmt.Sprintf("invalid game count in %q", token)}
	}

	set := Set{
		WinnerGames: winnerGames,
		LoserGames:  loserGames,
		Complete:    setComplete(winnerGames, loserGames),
	}
	if tiebreakPoints >= 0 {
		if !set.Complete || !isTiebreakSet(winnerGames, loserGames) {
			return Set{}, &BadFormatError{Raw: raw, Reason: fmt.Sprintf("tiebreak score on a non-tiebreak set %q", token)}
		}
		set.Tiebreak = true
		set.TiebreakLoserPoints = tiebreakPoints
	} else if isTiebreakSet(winnerGames, loserGames) {
		set.Tiebreak = true
	}
	return set, nil
}

// setComplete reports whether the game counts form a finished set: 6 games
// with a margin of two, 7-5, a 7-6 tiebreak, or a long deciding set won by
// two games.
func setComplete(a, b int) bool {
	hi, lo := a, b
	if hi < lo {
		hi, lo = lo, hi
	}
	switch {
	case hi == 6 && hi-lo >= 2:
		return true
	case hi == 7 && (lo == 5 || lo == 6):
		return true
	case hi > 7 && hi-lo == 2:
		// Deciding sets without a tiebreak run long: 9-7, 70-68.
		return true
	}
	return false
}

func isTiebreakSet(a, b int) bool {
	return (a == 7 && b == 6) || (a == 6 && b == 7)
}
