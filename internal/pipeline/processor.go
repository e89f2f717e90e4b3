package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLimit is returned when the requested wrap limit is not positive.
var ErrInvalidLimit = errors.New("wrap limit must be positive")

// Options controls how cue text is laid out.
type Options struct {
	// Limit is the requested wrap limit in display-width units.
	Limit int
	// Reformat collapses each cue to one line before wrapping. When false
	// the source line breaks are kept and no wrapping happens.
	Reformat bool
}

// Process wraps and positions cues against spec and returns the document.
// Cues left without text produce no event.
func Process(cues []Cue, spec StyleSpec, opts Options) (*Document, error) {
	if opts.Limit <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, opts.Limit)
	}

	limit := max(spec.EffectiveLimit(opts.Limit), MinWrapLimit)
	anchor := spec.Anchor()
	code := spec.Alignment.Code()

	doc := &Document{
		Style:  spec,
		Events: make([]Event, 0, len(cues)),
	}

	for _, cue := range cues {
		lines := layoutLines(cue.Text, limit, opts.Reformat)
		if len(lines) == 0 {
			continue
		}
		doc.Events = append(doc.Events, Event{
			Start:     cue.Start,
			End:       cue.End,
			Lines:     lines,
			Alignment: code,
			Anchor:    anchor,
		})
	}

	return doc, nil
}

func layoutLines(text string, limit int, reformat bool) []string {
	if reformat {
		return SmartWrap(strings.Join(strings.Fields(text), " "), limit)
	}

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
