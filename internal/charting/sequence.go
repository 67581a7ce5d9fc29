package charting

import (
	"strings"
)

// ShotSequence is the point-level narrative decoded from one notation code
// pair: who served, the serve attempt(s), and the rally that followed. A
// sequence takes exactly one of four shapes: not coded, server lost
// outright, server won outright, or fully coded. Sequences are immutable
// once constructed and carry no shared state, so decoding may run across any
// number of goroutines with no coordination.
type ShotSequence struct {
	// Server and Returner are the identities of the two players
	Server   string `json:"server"`
	Returner string `json:"returner"`

	// ServerWon reports whether the serving player won the point
	ServerWon bool `json:"server_won"`

	// NotCoded is set when the point outcome is known but shot-level detail
	// was never recorded
	NotCoded bool `json:"not_coded,omitempty"`

	// ServerLostOutright and ServerWonOutright are the uncharted points
	// whose serve outcome is trivially known
	ServerLostOutright bool `json:"server_lost_outright,omitempty"`
	ServerWonOutright  bool `json:"server_won_outright,omitempty"`

	// FirstServe is present on every fully coded point
	FirstServe *Serve `json:"first_serve,omitempty"`

	// SecondServe is present iff the first serve faulted
	SecondServe *Serve `json:"second_serve,omitempty"`

	// Rally is present iff the terminating serve was returned in play
	Rally *Rally `json:"rally,omitempty"`
}

// NewNotCoded constructs the sequence for a point whose outcome is known but
// whose shots were never charted.
func NewNotCoded(server, returner string, serverWon bool) *ShotSequence {
	return &ShotSequence{Server: server, Returner: returner, ServerWon: serverWon, NotCoded: true}
}

// NewServerLostOutright constructs the sequence for an uncharted point the
// server lost outright.
func NewServerLostOutright(server, returner string, serverWon bool) *ShotSequence {
	return &ShotSequence{Server: server, Returner: returner, ServerWon: serverWon, ServerLostOutright: true}
}

// NewServerWonOutright constructs the sequence for an uncharted point the
// server won outright.
func NewServerWonOutright(server, returner string, serverWon bool) *ShotSequence {
	return &ShotSequence{Server: server, Returner: returner, ServerWon: serverWon, ServerWonOutright: true}
}

// NewCoded constructs a fully coded sequence, enforcing its structural
// invariants: a first serve must be present, a second serve exists iff the
// first serve faulted, and a non-empty rally exists iff the terminating
// serve was returned in play.
func NewCoded(server, returner string, serverWon bool, first, second *Serve, rally *Rally) (*ShotSequence, error) {
	if first == nil {
		return nil, NewParseError(ErrorTypeMissingRequiredServe, "fully coded point has no first serve")
	}
	if first.WasFault() && second == nil {
		return nil, NewParseError(ErrorTypeMalformedSequence, "first serve faulted but no second serve present").
			WithInput(first.Raw)
	}
	if !first.WasFault() && second != nil {
		return nil, NewParseError(ErrorTypeMalformedSequence, "second serve present but the first serve did not fault").
			WithInput(first.Raw)
	}

	terminating := first
	if second != nil {
		terminating = second
	}
	if terminating.HadRally() && (rally == nil || rally.Len() == 0) {
		return nil, NewParseError(ErrorTypeMalformedSequence, "serve was returned in play but no rally is present").
			WithInput(terminating.Raw)
	}
	if !terminating.HadRally() && rally != nil {
		return nil, NewParseError(ErrorTypeMalformedSequence, "rally present but the terminating serve ended the point").
			WithInput(terminating.Raw)
	}

	return &ShotSequence{
		Server:      server,
		Returner:    returner,
		ServerWon:   serverWon,
		FirstServe:  first,
		SecondServe: second,
		Rally:       rally,
	}, nil
}

// FromCode decodes one point's notation into a ShotSequence. firstCode is
// the first-serve code; secondCode is consulted only when the first serve
// faulted. Decoding is deterministic: the same code pair always yields a
// structurally equal sequence or the same failure.
func FromCode(server, returner string, serverWon bool, firstCode, secondCode string) (*ShotSequence, error) {
	firstCode = strings.TrimSpace(firstCode)

	// Single-character codes are either whole-point shortcuts or a fault
	// whose direction was never recorded. Anything else is unknown.
	if len(firstCode) == 1 {
		switch firstCode[0] {
		case codeNotCodedServe, codeNotCodedReturn:
			return NewNotCoded(server, returner, serverWon), nil
		case codeServerLostOutright:
			return NewServerLostOutright(server, returner, serverWon), nil
		case codeServerWonOutright:
			return NewServerWonOutright(server, returner, serverWon), nil
		}
		if _, ok := faultKinds[firstCode[0]]; ok {
			firstCode = "0" + firstCode
		} else {
			return nil, NewParseError(ErrorTypeUnknownCode, "unknown single-character code").
				WithOffending(firstCode).
				WithInput(firstCode)
		}
	}

	first, remainder, err := DecodeServe(firstCode, server, true)
	if err != nil {
		return nil, err
	}

	var second *Serve
	var rally *Rally

	if first.WasFault() {
		second, remainder, err = DecodeServe(secondCode, server, false)
		if err != nil {
			return nil, err
		}
		if second.HadRally() {
			rally, err = decodeRallyRemainder(remainder, second, server, returner)
			if err != nil {
				return nil, err
			}
		}
	} else {
		if strings.TrimSpace(secondCode) != "" {
			return nil, NewParseError(ErrorTypeMalformedSequence, "second-serve code supplied but the first serve did not fault").
				WithOffending(secondCode).
				WithInput(firstCode)
		}
		if first.HadRally() {
			rally, err = decodeRallyRemainder(remainder, first, server, returner)
			if err != nil {
				return nil, err
			}
		}
	}

	return NewCoded(server, returner, serverWon, first, second, rally)
}

// decodeRallyRemainder decodes the characters left over after an in-play
// serve. A serve put in play with nothing recorded after it is a structural
// violation, not an empty rally.
func decodeRallyRemainder(remainder string, serve *Serve, server, returner string) (*Rally, error) {
	if remainder == "" {
		return nil, NewParseError(ErrorTypeMalformedSequence, "serve put in play but no return was recorded").
			WithInput(serve.Raw)
	}
	rally, err := DecodeRally(remainder, server, returner)
	if err != nil {
		if perr, ok := AsParseError(err); ok && perr.Input == remainder {
			perr.Input = serve.Raw
		}
		return nil, err
	}
	return rally, nil
}

// TerminatingServe returns the serve attempt the point ran off: the second
// serve when the first faulted, the first otherwise. Nil for the uncharted
// shapes.
func (s *ShotSequence) TerminatingServe() *Serve {
	if s.SecondServe != nil {
		return s.SecondServe
	}
	return s.FirstServe
}

// FullyCoded reports whether the point carries shot-level detail.
func (s *ShotSequence) FullyCoded() bool {
	return s.FirstServe != nil
}

// Describe renders the sequence for debug output: serves first, then rally
// shots, in chronological order.
func (s *ShotSequence) Describe() string {
	switch {
	case s.NotCoded:
		return "point not coded"
	case s.ServerLostOutright:
		return "server lost point outright"
	case s.ServerWonOutright:
		return "server won point outright"
	}

	var lines []string
	lines = append(lines, s.FirstServe.String())
	if s.SecondServe != nil {
		lines = append(lines, s.SecondServe.String())
	}
	if s.Rally != nil {
		for _, shot := range s.Rally.Shots {
			lines = append(lines, shot.String())
		}
	}
	return strings.Join(lines, "\n")
}
