// Package charting decodes the Match Charting Project shot-by-shot notation
// into a structured object model. One point's notation (a first-serve code
// and, when the first serve faulted, a second-serve code) decodes into a
// ShotSequence holding the Serve attempt(s) and the Rally that followed.
//
// The single-character tables in this file are a compatibility contract with
// the charted corpus, not a design choice: every character keeps the meaning
// documented by the Match Charting Project so existing datasets decode
// unchanged. Decoding fails closed on unrecognized characters, with one
// documented leniency (a bare fault letter means "fault, direction unknown").
package charting

// ShotType identifies the stroke used for one hit in a rally.
type ShotType string

const (
	ShotForehand               ShotType = "forehand"
	ShotBackhand               ShotType = "backhand"
	ShotForehandSlice          ShotType = "forehand_slice"
	ShotBackhandSlice          ShotType = "backhand_slice"
	ShotForehandVolley         ShotType = "forehand_volley"
	ShotBackhandVolley         ShotType = "backhand_volley"
	ShotSmash                  ShotType = "smash"
	ShotBackhandSmash          ShotType = "backhand_smash"
	ShotForehandDropShot       ShotType = "forehand_drop_shot"
	ShotBackhandDropShot       ShotType = "backhand_drop_shot"
	ShotForehandLob            ShotType = "forehand_lob"
	ShotBackhandLob            ShotType = "backhand_lob"
	ShotForehandHalfVolley     ShotType = "forehand_half_volley"
	ShotBackhandHalfVolley     ShotType = "backhand_half_volley"
	ShotForehandSwingingVolley ShotType = "forehand_swinging_volley"
	ShotBackhandSwingingVolley ShotType = "backhand_swinging_volley"
	ShotTrick                  ShotType = "trick"
	ShotUnknown                ShotType = "unknown"
)

// shotTypes maps the rally shot-type alphabet to its meaning.
var shotTypes = map[byte]ShotType{
	'f': ShotForehand,
	'b': ShotBackhand,
	'r': ShotForehandSlice,
	's': ShotBackhandSlice,
	'v': ShotForehandVolley,
	'z': ShotBackhandVolley,
	'o': ShotSmash,
	'p': ShotBackhandSmash,
	'u': ShotForehandDropShot,
	'y': ShotBackhandDropShot,
	'l': ShotForehandLob,
	'm': ShotBackhandLob,
	'h': ShotForehandHalfVolley,
	'i': ShotBackhandHalfVolley,
	'j': ShotForehandSwingingVolley,
	'k': ShotBackhandSwingingVolley,
	't': ShotTrick,
	'q': ShotUnknown,
}

// Direction is the court zone a rally shot was hit to. Zones 1-3 are labeled
// relative to a right-handed opponent.
type Direction string

const (
	DirectionUnknown      Direction = "unknown"
	DirectionForehandSide Direction = "forehand_side" // 1
	DirectionMiddle       Direction = "middle"        // 2
	DirectionBackhandSide Direction = "backhand_side" // 3
)

var rallyDirections = map[byte]Direction{
	'1': DirectionForehandSide,
	'2': DirectionMiddle,
	'3': DirectionBackhandSide,
}

// Depth is how deep in the court a rally shot landed.
type Depth string

const (
	DepthUnknown Depth = "unknown"
	DepthShort   Depth = "short" // 7: inside the service boxes
	DepthMid     Depth = "mid"   // 8
	DepthDeep    Depth = "deep"  // 9: close to the baseline
)

var rallyDepths = map[byte]Depth{
	'7': DepthShort,
	'8': DepthMid,
	'9': DepthDeep,
}

// ServeDirection is the placement of a serve in the service box.
type ServeDirection string

const (
	ServeDirectionUnknown ServeDirection = "unknown" // 0
	ServeDirectionWide    ServeDirection = "wide"    // 4
	ServeDirectionBody    ServeDirection = "body"    // 5
	ServeDirectionT       ServeDirection = "t"       // 6
)

var serveDirections = map[byte]ServeDirection{
	'0': ServeDirectionUnknown,
	'4': ServeDirectionWide,
	'5': ServeDirectionBody,
	'6': ServeDirectionT,
}

// FaultKind classifies how a serve missed, or how an erroring rally shot
// missed. FaultNone means the serve was not a fault.
type FaultKind string

const (
	FaultNone        FaultKind = ""
	FaultNet         FaultKind = "net"           // n
	FaultWide        FaultKind = "wide"          // w
	FaultDeep        FaultKind = "deep"          // d
	FaultWideAndDeep FaultKind = "wide_and_deep" // x
	FaultFootFault   FaultKind = "foot_fault"    // g
	FaultShank       FaultKind = "shank"         // !
	FaultUnknown     FaultKind = "unknown"       // e
)

var faultKinds = map[byte]FaultKind{
	'n': FaultNet,
	'w': FaultWide,
	'd': FaultDeep,
	'x': FaultWideAndDeep,
	'g': FaultFootFault,
	'!': FaultShank,
	'e': FaultUnknown,
}

// errorKinds is the subset of the fault alphabet legal on rally shots; a foot
// fault can only happen on a serve.
var errorKinds = map[byte]FaultKind{
	'n': FaultNet,
	'w': FaultWide,
	'd': FaultDeep,
	'x': FaultWideAndDeep,
	'!': FaultShank,
	'e': FaultUnknown,
}

// Outcome is how a rally shot ended, if it ended the point.
type Outcome string

const (
	OutcomeInPlay        Outcome = "in_play"
	OutcomeWinner        Outcome = "winner"         // *
	OutcomeForcedError   Outcome = "forced_error"   // #
	OutcomeUnforcedError Outcome = "unforced_error" // @
	// OutcomeError is an error ending whose forced/unforced classification
	// was not recorded (an error-kind letter with no trailing @ or #).
	OutcomeError Outcome = "error"
)

// ServeOutcome classifies one serve attempt.
type ServeOutcome string

const (
	ServeFault        ServeOutcome = "fault"
	ServeAce          ServeOutcome = "ace"          // *
	ServeUnreturnable ServeOutcome = "unreturnable" // #
	ServeInPlay       ServeOutcome = "in_play"
)

// Whole-point shortcut codes: points whose shot-level detail was never
// charted but whose outcome is known.
const (
	codeNotCodedServe      = 'S'
	codeNotCodedReturn     = 'R'
	codeServerLostOutright = 'P'
	codeServerWonOutright  = 'Q'
)

// positionModifiers are court-position and let annotations carried by the
// notation but not modeled here; they are consumed and discarded.
var positionModifiers = map[byte]bool{
	'+': true, // approach shot
	'-': true, // at the net
	'=': true, // at the baseline
	';': true, // net cord
}
