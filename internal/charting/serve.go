package charting

import (
	"fmt"
	"strings"
)

// ServeAttempt is the capability surface a decoded serve exposes to the
// point-level orchestration and to downstream statistics consumers. Branch
// on these predicates rather than on nil fields.
type ServeAttempt interface {
	// WasFault reports whether the serve missed and did not start the point.
	WasFault() bool

	// HadRally reports whether the serve was put in play by a means that
	// allows further shots. Aces and unreturnable serves are in play in the
	// classification sense but the point is already over.
	HadRally() bool

	// Classification returns the serve outcome.
	Classification() ServeOutcome
}

// Serve is one serve attempt, first or second.
type Serve struct {
	// Raw is the serve's portion of the notation, retained for diagnostics
	Raw string `json:"raw"`

	// Server is the identity of the serving player
	Server string `json:"server"`

	// IsFirst distinguishes the first attempt from the second
	IsFirst bool `json:"is_first"`

	// Direction is the placement of the serve
	Direction ServeDirection `json:"direction"`

	// Fault classifies the miss; FaultNone unless Outcome is ServeFault
	Fault FaultKind `json:"fault,omitempty"`

	// Outcome is the serve classification
	Outcome ServeOutcome `json:"outcome"`
}

var _ ServeAttempt = (*Serve)(nil)

// WasFault reports whether the serve was a fault.
func (s *Serve) WasFault() bool {
	return s.Fault != FaultNone
}

// HadRally reports whether shots could follow the serve.
func (s *Serve) HadRally() bool {
	return s.Outcome == ServeInPlay
}

// Classification returns the serve outcome.
func (s *Serve) Classification() ServeOutcome {
	return s.Outcome
}

// String renders the serve for debug output.
func (s *Serve) String() string {
	attempt := "first serve"
	if !s.IsFirst {
		attempt = "second serve"
	}
	if s.WasFault() {
		return fmt.Sprintf("%s: %s fault (%s), direction %s", s.Server, attempt, s.Fault, s.Direction)
	}
	return fmt.Sprintf("%s: %s %s, direction %s", s.Server, attempt, s.Outcome, s.Direction)
}

// DecodeServe decodes the serve's portion of a point code and returns the
// unconsumed remainder, which is rally input when the serve was put in play.
//
// The leading character is the serve direction digit. A code that starts
// with a bare fault-kind letter instead is read as an unknown-direction
// fault rather than rejected; abbreviated real-world transcriptions drop the
// direction digit on faults.
func DecodeServe(code, server string, isFirst bool) (*Serve, string, error) {
	code = strings.TrimSpace(code)

	if code == "" {
		if isFirst {
			return nil, "", NewParseError(ErrorTypeMissingRequiredServe, "no first-serve code supplied").
				WithInput(code)
		}
		return nil, "", NewParseError(ErrorTypeMalformedSequence, "first serve faulted but no second-serve code supplied").
			WithInput(code)
	}

	serve := &Serve{
		Raw:       code,
		Server:    server,
		IsFirst:   isFirst,
		Direction: ServeDirectionUnknown,
	}

	// Bare fault letter: direction was never recorded.
	if kind, ok := faultKinds[code[0]]; ok {
		if len(code) > 1 {
			return nil, "", NewParseError(ErrorTypeMalformedSequence, "trailing characters after a fault").
				WithOffending(code[1:]).
				WithInput(code)
		}
		serve.Fault = kind
		serve.Outcome = ServeFault
		return serve, "", nil
	}

	direction, ok := serveDirections[code[0]]
	if !ok {
		return nil, "", NewParseError(ErrorTypeUnknownCode, "unrecognized serve direction").
			WithOffending(code[:1]).
			WithInput(code)
	}
	serve.Direction = direction

	rest := code[1:]
	if rest == "" {
		// Direction alone says nothing about how the serve landed; the
		// enclosing sequence decides whether that is tolerable.
		serve.Outcome = ServeInPlay
		return serve, "", nil
	}

	if kind, ok := faultKinds[rest[0]]; ok {
		if len(rest) > 1 {
			return nil, "", NewParseError(ErrorTypeMalformedSequence, "trailing characters after a fault").
				WithOffending(rest[1:]).
				WithInput(code)
		}
		serve.Fault = kind
		serve.Outcome = ServeFault
		return serve, "", nil
	}

	switch rest[0] {
	case '*':
		serve.Outcome = ServeAce
	case '#':
		serve.Outcome = ServeUnreturnable
	default:
		serve.Outcome = ServeInPlay
		return serve, rest, nil
	}

	if len(rest) > 1 {
		return nil, "", NewParseError(ErrorTypeMalformedSequence, "trailing characters after a point-ending serve").
			WithOffending(rest[1:]).
			WithInput(code)
	}
	return serve, "", nil
}
