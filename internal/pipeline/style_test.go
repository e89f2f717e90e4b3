package pipeline

import (
	"strings"
	"testing"

	"subburn/internal/config"
)

func defaultSpec(t *testing.T) StyleSpec {
	t.Helper()
	spec, err := NewStyleSpec(&config.Default().Style, 1920, 1080)
	if err != nil {
		t.Fatalf("NewStyleSpec: %v", err)
	}
	return spec
}

func TestNewStyleSpec_Defaults(t *testing.T) {
	spec := defaultSpec(t)

	if spec.Alignment != AlignBottom {
		t.Errorf("Alignment = %q, want bottom", spec.Alignment)
	}
	if spec.FillColor != (Color{R: 0xFF, G: 0xFF, B: 0xFF}) {
		t.Errorf("FillColor = %+v, want white", spec.FillColor)
	}
	if spec.CanvasWidth != 1920 || spec.CanvasHeight != 1080 {
		t.Errorf("canvas = %dx%d", spec.CanvasWidth, spec.CanvasHeight)
	}
}

func TestNewStyleSpec_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *config.StyleSettings)
		width  int
		height int
		errHas string
	}{
		{"zero canvas", func(s *config.StyleSettings) {}, 0, 1080, "canvas"},
		{"negative height", func(s *config.StyleSettings) {}, 1920, -1, "canvas"},
		{"zero font", func(s *config.StyleSettings) { s.FontSize = 0 }, 1920, 1080, "font_size"},
		{"bad alignment", func(s *config.StyleSettings) { s.Alignment = "left" }, 1920, 1080, "alignment"},
		{"bad color", func(s *config.StyleSettings) { s.OutlineColor = "#12345" }, 1920, 1080, "outline_color"},
		{"bad hex", func(s *config.StyleSettings) { s.FillColor = "#GGGGGG" }, 1920, 1080, "fill_color"},
		{"alpha range", func(s *config.StyleSettings) { s.ShadowAlpha = 1.5 }, 1920, 1080, "shadow_alpha"},
		{"seam without row", func(s *config.StyleSettings) { s.Alignment = "seam" }, 1920, 1080, "seam_y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := config.Default().Style
			tt.mutate(&settings)
			_, err := NewStyleSpec(&settings, tt.width, tt.height)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errHas) {
				t.Errorf("error %q does not mention %q", err, tt.errHas)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#FFFFFF", Color{255, 255, 255}},
		{"000000", Color{0, 0, 0}},
		{"#ff8000", Color{R: 0xFF, G: 0x80, B: 0x00}},
		{" #102030 ", Color{R: 0x10, G: 0x20, B: 0x30}},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestAssColor(t *testing.T) {
	tests := []struct {
		c       Color
		opacity float64
		want    string
	}{
		{Color{R: 0xFF, G: 0x80, B: 0x00}, 1, "&H000080FF"},
		{Color{}, 0, "&HFF000000"},
		{Color{R: 0x11, G: 0x22, B: 0x33}, 0.5, "&H80332211"},
	}

	for _, tt := range tests {
		if got := assColor(tt.c, tt.opacity); got != tt.want {
			t.Errorf("assColor(%+v, %v) = %q, want %q", tt.c, tt.opacity, got, tt.want)
		}
	}
}

func TestAlignmentCode(t *testing.T) {
	tests := []struct {
		a    Alignment
		want int
	}{
		{AlignTop, 8},
		{AlignMiddle, 5},
		{AlignBottom, 2},
		{AlignSeam, 5},
	}

	for _, tt := range tests {
		if got := tt.a.Code(); got != tt.want {
			t.Errorf("%s.Code() = %d, want %d", tt.a, got, tt.want)
		}
	}
}

func TestAnchor(t *testing.T) {
	base := StyleSpec{
		MarginLeft:   100,
		MarginRight:  300,
		MarginV:      40,
		CanvasWidth:  1920,
		CanvasHeight: 1080,
	}
	// Horizontal center of [100, 1620].
	cx := 860

	tests := []struct {
		align Alignment
		want  Point
	}{
		{AlignTop, Point{cx, 40}},
		{AlignMiddle, Point{cx, 580}},
		{AlignBottom, Point{cx, 1040}},
	}

	for _, tt := range tests {
		spec := base
		spec.Alignment = tt.align
		if got := spec.Anchor(); got != tt.want {
			t.Errorf("Anchor(%s) = %+v, want %+v", tt.align, got, tt.want)
		}
	}

	seam := base
	seam.Alignment = AlignSeam
	seam.Seam = Point{X: 700, Y: 960}
	if got := seam.Anchor(); got != seam.Seam {
		t.Errorf("Anchor(seam) = %+v, want %+v", got, seam.Seam)
	}
}

func TestNewStyleSpec_Seam(t *testing.T) {
	settings := config.Default().Style
	settings.Alignment = "seam"
	settings.SeamY = 960

	spec, err := NewStyleSpec(&settings, 1080, 1920)
	if err != nil {
		t.Fatalf("NewStyleSpec: %v", err)
	}
	// SeamX defaults to the horizontal center.
	want := Point{X: 540, Y: 960}
	if spec.Anchor() != want {
		t.Errorf("Anchor = %+v, want %+v", spec.Anchor(), want)
	}
	if got := StackedSeam(1080, 960); got != want {
		t.Errorf("StackedSeam = %+v, want %+v", got, want)
	}
}

func TestEffectiveLimit(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		left      int
		right     int
		fontSize  int
		requested int
		want      int
	}{
		{"geometry wins when narrower", 1920, 40, 40, 48, 100, 76},
		{"requested wins when narrower", 1920, 40, 40, 48, 42, 42},
		{"degenerate geometry falls back", 100, 40, 40, 50, 42, 42},
		{"geometry at threshold discarded", 130, 0, 0, 50, 42, 42},
		{"geometry just above threshold", 150, 0, 0, 50, 42, 6},
		{"tiny font clamps unit to one", 50, 0, 0, 1, 60, 50},
		{"small requested ignored", 1920, 40, 40, 48, 3, 76},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := StyleSpec{
				CanvasWidth:  tt.width,
				CanvasHeight: 1080,
				MarginLeft:   tt.left,
				MarginRight:  tt.right,
				FontSize:     tt.fontSize,
			}
			if got := spec.EffectiveLimit(tt.requested); got != tt.want {
				t.Errorf("EffectiveLimit(%d) = %d, want %d (geometry %d)",
					tt.requested, got, tt.want, spec.GeometryLimit())
			}
		})
	}
}
