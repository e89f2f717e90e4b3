package pipeline

import (
	"unicode/utf8"
)

// prohibitedLineStart is the Kinsoku Shori set: runes that may not begin a
// display line.
var prohibitedLineStart = map[rune]struct{}{
	'!': {}, '%': {}, ')': {}, ',': {}, '.': {}, ':': {}, ';': {}, '?': {},
	']': {}, '}': {}, '\'': {}, '"': {},
	'\u00a2': {}, '\u00b0': {}, '\u2020': {}, '\u2021': {}, '\u2103': {}, // ¢ ° † ‡ ℃
	'\u3001': {}, '\u3002': {}, // 、。
	'\u3009': {}, '\u300b': {}, '\u300d': {}, '\u300f': {}, '\u3011': {}, // 〉》」』】
	'\u3015': {}, '\u3017': {}, '\u3019': {}, '\u301b': {}, // 〕〗〙〛
	'\uff01': {}, '\uff09': {}, '\uff0c': {}, '\uff0e': {}, // ！），．
	'\uff1a': {}, '\uff1b': {}, '\uff1f': {}, '\uff3d': {}, '\uff5d': {}, // ：；？］｝
}

// breakPunctuation marks clause and sentence ends preferred as break points.
var breakPunctuation = map[rune]struct{}{
	'.': {}, ',': {}, ';': {}, ':': {}, '!': {}, '?': {},
}

// isProhibitedLineStart reports whether r may not start a line.
func isProhibitedLineStart(r rune) bool {
	_, ok := prohibitedLineStart[r]
	return ok
}

// startsProhibited reports whether the first rune of text may not start a line.
func startsProhibited(text string) bool {
	if text == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text)
	return isProhibitedLineStart(r)
}

// endsWithBreakPunctuation reports whether text ends with a preferred break mark.
func endsWithBreakPunctuation(text string) bool {
	if text == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text)
	_, ok := breakPunctuation[r]
	return ok
}
