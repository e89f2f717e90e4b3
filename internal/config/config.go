package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
)

// StyleSettings holds the user-facing presentation parameters. Colors are
// "#RRGGBB" strings and alphas are opacities in [0, 1].
type StyleSettings struct {
	FontName  string `toml:"font_name"`
	FontSize  int    `toml:"font_size"`
	Bold      bool   `toml:"bold"`
	Italic    bool   `toml:"italic"`
	Underline bool   `toml:"underline"`

	FillColor     string  `toml:"fill_color"`
	FillAlpha     float64 `toml:"fill_alpha"`
	OutlineColor  string  `toml:"outline_color"`
	OutlineAlpha  float64 `toml:"outline_alpha"`
	OutlineWidth  float64 `toml:"outline_width"`
	ShadowColor   string  `toml:"shadow_color"`
	ShadowAlpha   float64 `toml:"shadow_alpha"`
	ShadowOffsetX float64 `toml:"shadow_offset_x"`
	ShadowOffsetY float64 `toml:"shadow_offset_y"`
	ShadowBlur    float64 `toml:"shadow_blur"`

	// Alignment is one of "top", "middle", "bottom" or "seam".
	Alignment string `toml:"alignment"`
	SeamX     int    `toml:"seam_x"`
	SeamY     int    `toml:"seam_y"`

	MarginLeft  int `toml:"margin_left"`
	MarginRight int `toml:"margin_right"`
	MarginV     int `toml:"margin_v"`
}

// WrapSettings controls line wrapping.
type WrapSettings struct {
	Limit    int  `toml:"limit"`
	Reformat bool `toml:"reformat"`
}

// CanvasSettings is the render resolution used when it cannot be probed.
type CanvasSettings struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// BatchSettings controls multi-file processing.
type BatchSettings struct {
	MaxConcurrent int `toml:"max_concurrent"`
	JobsPerMin    int `toml:"jobs_per_min"`
}

// ToolSettings names the external binaries.
type ToolSettings struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Config holds the full application configuration.
type Config struct {
	Style  StyleSettings  `toml:"style"`
	Wrap   WrapSettings   `toml:"wrap"`
	Canvas CanvasSettings `toml:"canvas"`
	Batch  BatchSettings  `toml:"batch"`
	Tools  ToolSettings   `toml:"tools"`
}

// Default returns a Config with hardcoded defaults.
func Default() *Config {
	return &Config{
		Style: StyleSettings{
			FontName:      "Arial",
			FontSize:      48,
			FillColor:     "#FFFFFF",
			FillAlpha:     1,
			OutlineColor:  "#000000",
			OutlineAlpha:  1,
			OutlineWidth:  2,
			ShadowColor:   "#000000",
			ShadowAlpha:   0.5,
			ShadowOffsetX: 2,
			ShadowOffsetY: 2,
			Alignment:     "bottom",
			MarginLeft:    40,
			MarginRight:   40,
			MarginV:       50,
		},
		Wrap: WrapSettings{
			Limit:    LatinWrapLimit,
			Reformat: true,
		},
		Canvas: CanvasSettings{
			Width:  1920,
			Height: 1080,
		},
		Batch: BatchSettings{
			MaxConcurrent: 2,
		},
		Tools: ToolSettings{
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
		},
	}
}

// Load returns the defaults overlaid with the TOML file at path. An empty
// path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		slog.Warn("unknown config keys ignored", "path", path, "keys", strings.Join(keys, ","))
	}

	return cfg, nil
}
