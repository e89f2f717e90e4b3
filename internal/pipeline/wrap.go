package pipeline

import (
	"strings"
)

// Punctuation-priority lookahead tuning.
const (
	punctuationFillRatio = 0.7
	punctuationWindow    = 10
)

// wrapState is a transition of the wrapping state machine.
type wrapState int

const (
	stateAccumulating wrapState = iota
	stateBreakAtBoundary
	stateBreakAtPunctuation
	stateForceMerge
)

// tokenize splits text into words, single wide runes and single spaces.
func tokenize(text string) []Token {
	var (
		tokens    []Token
		word      strings.Builder
		wordWidth int
	)

	flush := func() {
		if word.Len() == 0 {
			return
		}
		tokens = append(tokens, Token{Text: word.String(), Width: wordWidth, Kind: TokenWord})
		word.Reset()
		wordWidth = 0
	}

	for _, r := range text {
		switch {
		case r == ' ':
			flush()
			tokens = append(tokens, Token{Text: " ", Width: 1, Kind: TokenSpace})
		case isWide(r):
			flush()
			tokens = append(tokens, Token{Text: string(r), Width: 2, Kind: TokenCJK})
		default:
			word.WriteRune(r)
			wordWidth++
		}
	}
	flush()

	return tokens
}

// wrapper walks an immutable token slice with an index cursor. The pending
// line holds token indices so a break can rewind the cursor to any of them.
type wrapper struct {
	tokens []Token
	limit  int
	pos    int
	line   []int
	width  int
	lines  []string
}

// SmartWrap breaks text into display lines no wider than limit units. Wide
// runes cost two units and may break anywhere; Latin words break at spaces.
// A line never starts with a Kinsoku-prohibited rune unless the only
// alternative is an empty line, in which case the offending tokens are
// merged onto one over-limit line. Once a line is more than 70% full, a break
// after recent clause punctuation is preferred over the greedy boundary.
//
// limit must be positive; callers validate it.
func SmartWrap(text string, limit int) []string {
	if text == "" {
		return nil
	}

	w := &wrapper{tokens: tokenize(text), limit: limit}
	for w.pos < len(w.tokens) {
		state, cut := w.decide()
		switch state {
		case stateAccumulating:
			w.accumulate()
		case stateBreakAtBoundary, stateBreakAtPunctuation:
			w.breakAt(cut)
		case stateForceMerge:
			w.forceMerge()
		}
	}
	w.closeLine()

	return w.lines
}

// decide picks the transition for the token under the cursor. cut is the
// number of pending tokens kept on the line when the transition closes it.
func (w *wrapper) decide() (wrapState, int) {
	tok := w.tokens[w.pos]
	if len(w.line) == 0 || w.width+tok.Width <= w.limit {
		return stateAccumulating, 0
	}

	if tok.Kind == TokenSpace {
		// The space is dropped; what matters is the word after it.
		if !w.unbreakableBefore(w.pos) {
			return stateBreakAtBoundary, len(w.line)
		}
	} else if !startsProhibited(tok.Text) {
		if cut := w.punctuationCut(); cut > 0 {
			return stateBreakAtPunctuation, cut
		}
		return stateBreakAtBoundary, len(w.line)
	}

	// Kinsoku: pull the last word down with the prohibited token, along with
	// any prohibited tokens it would otherwise leave at the line start.
	cut := len(w.line) - 1
	for cut > 0 && w.unbreakableBefore(w.line[cut]) {
		cut--
	}
	if cut > 0 {
		return stateBreakAtBoundary, cut
	}
	return stateForceMerge, len(w.line)
}

// punctuationCut returns the line length that ends at the most recent clause
// punctuation within the lookahead window, or -1.
func (w *wrapper) punctuationCut() int {
	if float64(w.width) <= punctuationFillRatio*float64(w.limit) {
		return -1
	}
	lo := max(0, len(w.line)-punctuationWindow)
	for i := len(w.line) - 1; i >= lo; i-- {
		if !endsWithBreakPunctuation(w.tokens[w.line[i]].Text) {
			continue
		}
		if i+1 < len(w.line) && w.unbreakableBefore(w.line[i+1]) {
			continue
		}
		return i + 1
	}
	return -1
}

// unbreakableBefore reports whether a line may not start at token idx: it
// is a space, or it or the first word after it is Kinsoku-prohibited.
func (w *wrapper) unbreakableBefore(idx int) bool {
	for ; idx < len(w.tokens); idx++ {
		if tok := w.tokens[idx]; tok.Kind != TokenSpace {
			return startsProhibited(tok.Text)
		}
	}
	return false
}

func (w *wrapper) accumulate() {
	tok := w.tokens[w.pos]
	w.pos++
	if tok.Kind == TokenSpace && len(w.line) == 0 {
		return
	}
	w.line = append(w.line, w.pos-1)
	w.width += tok.Width
}

// breakAt closes the line after cut tokens and rewinds the cursor to the
// first token not kept.
func (w *wrapper) breakAt(cut int) {
	if cut < len(w.line) {
		w.pos = w.line[cut]
		w.line = w.line[:cut]
	}
	w.closeLine()
}

// forceMerge places the prohibited token, and any prohibited tokens directly
// following it, on the current line regardless of width.
func (w *wrapper) forceMerge() {
	end := w.pos
	for end+1 < len(w.tokens) && w.tokens[end].Kind == TokenSpace {
		end++
	}
	for end+1 < len(w.tokens) &&
		w.tokens[end+1].Kind != TokenSpace &&
		startsProhibited(w.tokens[end+1].Text) {
		end++
	}

	for i := w.pos; i <= end; i++ {
		w.line = append(w.line, i)
		w.width += w.tokens[i].Width
	}
	w.pos = end + 1
	w.closeLine()
}

// closeLine emits the pending line without leading or trailing spaces.
func (w *wrapper) closeLine() {
	lo, hi := 0, len(w.line)
	for lo < hi && w.tokens[w.line[lo]].Kind == TokenSpace {
		lo++
	}
	for hi > lo && w.tokens[w.line[hi-1]].Kind == TokenSpace {
		hi--
	}

	if lo < hi {
		var b strings.Builder
		for _, idx := range w.line[lo:hi] {
			b.WriteString(w.tokens[idx].Text)
		}
		w.lines = append(w.lines, b.String())
	}

	w.line = w.line[:0]
	w.width = 0
}
