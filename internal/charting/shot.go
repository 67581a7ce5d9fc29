package charting

import "fmt"

// Shot is one hit in a rally. Shots are immutable values; only the final
// shot of a rally may carry a terminal outcome, every earlier shot is
// implicitly in play.
type Shot struct {
	// Player is the identity of the player who hit the shot
	Player string `json:"player"`

	// Type is the stroke used
	Type ShotType `json:"type"`

	// Direction is the court zone the shot was hit to
	Direction Direction `json:"direction"`

	// Depth is how deep the shot landed
	Depth Depth `json:"depth"`

	// Outcome is how the shot ended the point, or OutcomeInPlay
	Outcome Outcome `json:"outcome"`

	// ErrorKind classifies the miss for error outcomes
	ErrorKind FaultKind `json:"error_kind,omitempty"`
}

// IsTerminal reports whether the shot ended the point.
func (s Shot) IsTerminal() bool {
	return s.Outcome != OutcomeInPlay
}

// String renders the shot for debug output.
func (s Shot) String() string {
	desc := fmt.Sprintf("%s: %s, direction %s, depth %s", s.Player, s.Type, s.Direction, s.Depth)
	if !s.IsTerminal() {
		return desc
	}
	if s.ErrorKind != FaultNone {
		return fmt.Sprintf("%s (%s, %s)", desc, s.Outcome, s.ErrorKind)
	}
	return fmt.Sprintf("%s (%s)", desc, s.Outcome)
}
