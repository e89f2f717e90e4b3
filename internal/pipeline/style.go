package pipeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"subburn/internal/config"
)

// Geometry limits. A geometry-derived wrap limit must exceed
// minLimitCandidate to be used; narrower canvases fall back to the requested
// limit. MinWrapLimit is the floor applied before wrapping.
const (
	minLimitCandidate = 5
	MinWrapLimit      = 6
)

// Alignment selects where subtitles are anchored on the canvas.
type Alignment string

const (
	AlignTop    Alignment = "top"
	AlignMiddle Alignment = "middle"
	AlignBottom Alignment = "bottom"
	AlignSeam   Alignment = "seam"
)

// Code returns the ASS numpad alignment for a.
func (a Alignment) Code() int {
	switch a {
	case AlignTop:
		return 8
	case AlignMiddle, AlignSeam:
		return 5
	}
	return 2
}

func parseAlignment(s string) (Alignment, error) {
	switch a := Alignment(strings.ToLower(strings.TrimSpace(s))); a {
	case AlignTop, AlignMiddle, AlignBottom, AlignSeam:
		return a, nil
	case "":
		return AlignBottom, nil
	}
	return "", fmt.Errorf("unknown alignment %q", s)
}

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// ParseColor reads "#RRGGBB" (the leading '#' is optional).
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// assAlpha converts an opacity in [0, 1] to the ASS alpha byte, where 0x00
// is opaque and 0xFF transparent.
func assAlpha(opacity float64) uint8 {
	opacity = math.Max(0, math.Min(1, opacity))
	return uint8(math.Round((1 - opacity) * 255))
}

// assColor renders c with opacity in &HAABBGGRR order.
func assColor(c Color, opacity float64) string {
	return fmt.Sprintf("&H%02X%02X%02X%02X", assAlpha(opacity), c.B, c.G, c.R)
}

// StyleSpec is the resolved presentation of one burn job. Alphas are
// opacities in [0, 1].
type StyleSpec struct {
	FontName  string
	FontSize  int
	Bold      bool
	Italic    bool
	Underline bool

	FillColor     Color
	FillAlpha     float64
	OutlineColor  Color
	OutlineAlpha  float64
	OutlineWidth  float64
	ShadowColor   Color
	ShadowAlpha   float64
	ShadowOffsetX float64
	ShadowOffsetY float64
	ShadowBlur    float64

	Alignment Alignment
	// Seam is the absolute anchor used by AlignSeam.
	Seam Point

	MarginLeft  int
	MarginRight int
	MarginV     int

	CanvasWidth  int
	CanvasHeight int
}

// NewStyleSpec resolves user settings against a canvas size.
func NewStyleSpec(settings *config.StyleSettings, canvasWidth, canvasHeight int) (StyleSpec, error) {
	if canvasWidth <= 0 || canvasHeight <= 0 {
		return StyleSpec{}, fmt.Errorf("invalid canvas %dx%d", canvasWidth, canvasHeight)
	}
	if settings.FontSize <= 0 {
		return StyleSpec{}, fmt.Errorf("invalid font_size %d", settings.FontSize)
	}

	align, err := parseAlignment(settings.Alignment)
	if err != nil {
		return StyleSpec{}, err
	}

	spec := StyleSpec{
		FontName:      settings.FontName,
		FontSize:      settings.FontSize,
		Bold:          settings.Bold,
		Italic:        settings.Italic,
		Underline:     settings.Underline,
		FillAlpha:     settings.FillAlpha,
		OutlineAlpha:  settings.OutlineAlpha,
		OutlineWidth:  settings.OutlineWidth,
		ShadowAlpha:   settings.ShadowAlpha,
		ShadowOffsetX: settings.ShadowOffsetX,
		ShadowOffsetY: settings.ShadowOffsetY,
		ShadowBlur:    settings.ShadowBlur,
		Alignment:     align,
		MarginLeft:    settings.MarginLeft,
		MarginRight:   settings.MarginRight,
		MarginV:       settings.MarginV,
		CanvasWidth:   canvasWidth,
		CanvasHeight:  canvasHeight,
	}
	if spec.FontName == "" {
		spec.FontName = "Arial"
	}

	colors := []struct {
		field string
		value string
		dst   *Color
	}{
		{"fill_color", settings.FillColor, &spec.FillColor},
		{"outline_color", settings.OutlineColor, &spec.OutlineColor},
		{"shadow_color", settings.ShadowColor, &spec.ShadowColor},
	}
	for _, c := range colors {
		parsed, err := ParseColor(c.value)
		if err != nil {
			return StyleSpec{}, fmt.Errorf("%s: %w", c.field, err)
		}
		*c.dst = parsed
	}

	alphas := []struct {
		field string
		value float64
	}{
		{"fill_alpha", spec.FillAlpha},
		{"outline_alpha", spec.OutlineAlpha},
		{"shadow_alpha", spec.ShadowAlpha},
	}
	for _, a := range alphas {
		if a.value < 0 || a.value > 1 {
			return StyleSpec{}, fmt.Errorf("%s %v out of range [0,1]", a.field, a.value)
		}
	}

	if align == AlignSeam {
		if settings.SeamY <= 0 {
			return StyleSpec{}, fmt.Errorf("seam alignment requires seam_y")
		}
		spec.Seam = Point{X: settings.SeamX, Y: settings.SeamY}
		if spec.Seam.X <= 0 {
			spec.Seam.X = spec.horizontalCenter()
		}
	}

	return spec, nil
}

// StackedSeam returns the seam point between two vertically stacked video
// regions, where the upper region is topHeight pixels tall.
func StackedSeam(canvasWidth, topHeight int) Point {
	return Point{X: canvasWidth / 2, Y: topHeight}
}

func (s StyleSpec) horizontalCenter() int {
	return (s.MarginLeft + s.CanvasWidth - s.MarginRight) / 2
}

// Anchor returns the absolute position subtitles are pinned to.
func (s StyleSpec) Anchor() Point {
	cx := s.horizontalCenter()
	switch s.Alignment {
	case AlignTop:
		return Point{X: cx, Y: s.MarginV}
	case AlignMiddle:
		return Point{X: cx, Y: s.CanvasHeight/2 + s.MarginV}
	case AlignSeam:
		return s.Seam
	}
	return Point{X: cx, Y: s.CanvasHeight - s.MarginV}
}

// GeometryLimit is the number of half-em units that fit between the
// horizontal margins.
func (s StyleSpec) GeometryLimit() int {
	available := float64(s.CanvasWidth - s.MarginLeft - s.MarginRight)
	unit := math.Max(float64(s.FontSize)*0.5, 1)
	return int(math.Floor(available / unit))
}

// EffectiveLimit returns the smaller of the requested and geometry limits,
// considering only candidates above minLimitCandidate. When neither
// qualifies the requested limit is returned unchanged.
func (s StyleSpec) EffectiveLimit(requested int) int {
	limit := 0
	for _, c := range []int{requested, s.GeometryLimit()} {
		if c <= minLimitCandidate {
			continue
		}
		if limit == 0 || c < limit {
			limit = c
		}
	}
	if limit == 0 {
		return requested
	}
	return limit
}
