package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	blankLineRe = regexp.MustCompile(`\n[ \t]*\n`)
	timingRe    = regexp.MustCompile(`(\d+):(\d{1,2}):(\d{1,2})[,.](\d{1,3})\s*-->\s*(\d+):(\d{1,2}):(\d{1,2})[,.](\d{1,3})`)
	markupRe    = regexp.MustCompile(`<[^>]*>|\{\\[^}]*\}`)
)

// ParseSRT parses SubRip text into cues. Parsing is lenient: blocks without
// a timing line, with unreadable timestamps, or ending before they start
// are dropped and counted in skipped.
func ParseSRT(text string) (cues []Cue, skipped int) {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	for _, block := range blankLineRe.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		cue, ok := parseBlock(strings.Split(block, "\n"))
		if !ok {
			skipped++
			continue
		}
		if cue.Index <= 0 {
			cue.Index = len(cues) + 1
		}
		cues = append(cues, cue)
	}

	return cues, skipped
}

// parseBlock reads one block. The timing line must be the first or second
// line; a leading index line is optional.
func parseBlock(lines []string) (Cue, bool) {
	arrow := -1
	for i := 0; i < len(lines) && i < 2; i++ {
		if strings.Contains(lines[i], "-->") {
			arrow = i
			break
		}
	}
	if arrow < 0 {
		return Cue{}, false
	}

	start, end, ok := parseTimingLine(lines[arrow])
	if !ok || end <= start {
		return Cue{}, false
	}

	var cue Cue
	if arrow == 1 {
		if n, err := strconv.Atoi(strings.TrimSpace(lines[0])); err == nil {
			cue.Index = n
		}
	}

	body := make([]string, 0, len(lines)-arrow-1)
	for _, l := range lines[arrow+1:] {
		body = append(body, strings.TrimRight(l, " \t"))
	}

	cue.Start = start
	cue.End = end
	cue.Text = StripMarkup(strings.Join(body, "\n"))
	return cue, true
}

func parseTimingLine(line string) (start, end time.Duration, ok bool) {
	m := timingRe.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	start, ok = timestamp(m[1], m[2], m[3], m[4])
	if !ok {
		return 0, 0, false
	}
	end, ok = timestamp(m[5], m[6], m[7], m[8])
	return start, end, ok
}

// timestamp assembles a duration. A short fraction is read as a decimal
// fraction, so "1,5" is 1.5 seconds.
func timestamp(h, m, s, frac string) (time.Duration, bool) {
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes > 59 {
		return 0, false
	}
	seconds, err := strconv.Atoi(s)
	if err != nil || seconds > 59 {
		return 0, false
	}
	for len(frac) < 3 {
		frac += "0"
	}
	millis, err := strconv.Atoi(frac)
	if err != nil {
		return 0, false
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, true
}

// StripMarkup removes inline <...> tags and {\...} override blocks.
func StripMarkup(text string) string {
	return markupRe.ReplaceAllString(text, "")
}
