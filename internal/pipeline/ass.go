package pipeline

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

const (
	assStyleName = "Default"
	assLineBreak = `\N`
)

// Document is a styled subtitle document ready for the ass renderer.
type Document struct {
	Style  StyleSpec
	Events []Event
}

// assFlag renders a style boolean as ASS expects it.
func assFlag(b bool) int {
	if b {
		return -1
	}
	return 0
}

// assNumber trims trailing zeros from a style number.
func assNumber(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}

// escapeASSText neutralizes characters that would open override blocks or
// escape sequences. ASS has no escape for a literal backslash, so it is
// swapped for U+29F5.
func escapeASSText(s string) string {
	s = strings.ReplaceAll(s, "\\", "⧵")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return s
}

func (d *Document) writeHeader(b *strings.Builder) {
	s := d.Style
	b.WriteString("[Script Info]\n")
	b.WriteString("ScriptType: v4.00+\n")
	fmt.Fprintf(b, "PlayResX: %d\n", s.CanvasWidth)
	fmt.Fprintf(b, "PlayResY: %d\n", s.CanvasHeight)
	// Lines are pre-wrapped; 2 disables renderer wrapping.
	b.WriteString("WrapStyle: 2\n")
	b.WriteString("ScaledBorderAndShadow: yes\n")
	b.WriteString("\n")

	shadowDepth := math.Max(math.Abs(s.ShadowOffsetX), math.Abs(s.ShadowOffsetY))

	b.WriteString("[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	fmt.Fprintf(b, "Style: %s,%s,%d,%s,%s,%s,%s,%d,%d,%d,0,100,100,0,0,1,%s,%s,%d,%d,%d,%d,1\n",
		assStyleName,
		s.FontName,
		s.FontSize,
		assColor(s.FillColor, s.FillAlpha),
		assColor(s.FillColor, s.FillAlpha),
		assColor(s.OutlineColor, s.OutlineAlpha),
		assColor(s.ShadowColor, s.ShadowAlpha),
		assFlag(s.Bold),
		assFlag(s.Italic),
		assFlag(s.Underline),
		assNumber(s.OutlineWidth),
		assNumber(shadowDepth),
		s.Alignment.Code(),
		s.MarginLeft,
		s.MarginRight,
		s.MarginV,
	)
	b.WriteString("\n")
}

// overrideTags builds the per-event override block.
func (d *Document) overrideTags(ev Event) string {
	s := d.Style
	return fmt.Sprintf(`{\an%d\pos(%d,%d)\1a&H%02X&\3a&H%02X&\4a&H%02X&\xshad%s\yshad%s\blur%s}`,
		ev.Alignment,
		ev.Anchor.X, ev.Anchor.Y,
		assAlpha(s.FillAlpha),
		assAlpha(s.OutlineAlpha),
		assAlpha(s.ShadowAlpha),
		assNumber(s.ShadowOffsetX),
		assNumber(s.ShadowOffsetY),
		assNumber(s.ShadowBlur),
	)
}

// String renders the full ASS document.
func (d *Document) String() string {
	var b strings.Builder
	d.writeHeader(&b)

	b.WriteString("[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, ev := range d.Events {
		lines := make([]string, len(ev.Lines))
		for i, l := range ev.Lines {
			lines[i] = escapeASSText(l)
		}
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,%s,,0,0,0,,%s%s\n",
			formatASSTime(ev.Start),
			formatASSTime(ev.End),
			assStyleName,
			d.overrideTags(ev),
			strings.Join(lines, assLineBreak),
		)
	}
	return b.String()
}

// WriteTo writes the ASS document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

// WriteFile writes the ASS document to path. Removing the file is the
// caller's job.
func (d *Document) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(d.String()), 0644); err != nil {
		return fmt.Errorf("write ass document: %w", err)
	}
	return nil
}

// SRT renders the wrapped events as SubRip.
func (d *Document) SRT() string {
	return generateSRT(d.Events)
}
