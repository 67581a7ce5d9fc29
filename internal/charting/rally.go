package charting

// Rally is the ordered sequence of shots exchanged after a serve was
// returned into play. Shot order is chronological and players alternate
// starting with the returner.
type Rally struct {
	Shots []Shot `json:"shots"`
}

// Len returns the number of shots in the rally.
func (r *Rally) Len() int {
	return len(r.Shots)
}

// FinalShot returns the last shot of the rally.
func (r *Rally) FinalShot() Shot {
	return r.Shots[len(r.Shots)-1]
}

// DecodeRally decodes a rally substring into its shots. The substring must
// consist entirely of shot tokens: a shot-type character followed by zero or
// more modifier characters (direction, depth, position, ending). Decoding is
// a pure function of its input; the same substring always yields the same
// shots.
//
// A terminal ending marker is only legal on the final shot. An unrecognized
// token is reported as an unknown-code failure carrying the unparsable
// remainder.
func DecodeRally(code, server, returner string) (*Rally, error) {
	if code == "" {
		return nil, NewParseError(ErrorTypeMalformedSequence, "rally code is empty").
			WithInput(code)
	}

	var shots []Shot

	// The returner hits the first rally shot; the serve itself is not a
	// rally shot.
	hitter, opponent := returner, server

	i := 0
	for i < len(code) {
		shotType, ok := shotTypes[code[i]]
		if !ok {
			return nil, NewParseError(ErrorTypeUnknownCode, "unrecognized shot token").
				WithOffending(code[i:]).
				WithInput(code)
		}
		i++

		shot := Shot{
			Player:    hitter,
			Type:      shotType,
			Direction: DirectionUnknown,
			Depth:     DepthUnknown,
			Outcome:   OutcomeInPlay,
		}

	modifiers:
		for i < len(code) {
			c := code[i]
			switch {
			case rallyDirections[c] != "":
				shot.Direction = rallyDirections[c]
			case rallyDepths[c] != "":
				shot.Depth = rallyDepths[c]
			case positionModifiers[c]:
				// Court-position annotation, not modeled.
			case errorKinds[c] != "":
				shot.ErrorKind = errorKinds[c]
			case c == '*':
				shot.Outcome = OutcomeWinner
			case c == '@':
				shot.Outcome = OutcomeUnforcedError
			case c == '#':
				shot.Outcome = OutcomeForcedError
			default:
				break modifiers
			}
			i++
		}

		// An error-kind letter with no force marker is still an error
		// ending; the charter just did not record forced vs unforced.
		if shot.ErrorKind != FaultNone && shot.Outcome == OutcomeInPlay {
			shot.Outcome = OutcomeError
		}

		if shot.IsTerminal() && i < len(code) {
			return nil, NewParseError(ErrorTypeMalformedSequence, "point-ending marker before the final shot").
				WithOffending(code[i:]).
				WithInput(code)
		}

		shots = append(shots, shot)
		hitter, opponent = opponent, hitter
	}

	return &Rally{Shots: shots}, nil
}
