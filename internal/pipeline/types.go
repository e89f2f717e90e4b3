package pipeline

import "time"

// Cue represents one timed subtitle entry from the source track.
type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// TokenKind classifies a wrapping token.
type TokenKind int

const (
	TokenWord  TokenKind = iota // run of narrow, non-space runes
	TokenCJK                    // single wide rune
	TokenSpace                  // single space
)

func (k TokenKind) String() string {
	switch k {
	case TokenWord:
		return "word"
	case TokenCJK:
		return "cjk"
	case TokenSpace:
		return "space"
	}
	return "unknown"
}

// Token is an atomic unit of the text wrapper.
type Token struct {
	Text  string
	Width int
	Kind  TokenKind
}

// Point is an absolute pixel position on the canvas.
type Point struct {
	X int
	Y int
}

// Event is one positioned, wrapped cue ready for output.
type Event struct {
	Start     time.Duration
	End       time.Duration
	Lines     []string
	Alignment int
	Anchor    Point
}
