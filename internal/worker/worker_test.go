package worker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subburn/internal/config"
)

const sampleSRT = "1\n00:00:01,000 --> 00:00:03,000\nThe quick, brown fox jumps over the lazy dog.\n\n" +
	"2\n00:00:04,000 --> 00:00:05,000\n<i>Second</i>\n"

func writeSRT(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(sampleSRT), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_RendersASS(t *testing.T) {
	dir := t.TempDir()
	input := writeSRT(t, dir, "episode.srt")

	cfg := config.Default()
	cfg.Wrap.Limit = 20

	if err := Run(context.Background(), Options{InputPath: input, Config: cfg}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "episode.ass"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"PlayResX: 1920",
		"PlayResY: 1080",
		`The quick, brown fox\Njumps over the lazy\Ndog.`,
		"}Second",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if n := strings.Count(out, "Dialogue:"); n != 2 {
		t.Errorf("expected 2 Dialogue lines, got %d", n)
	}
}

func TestRun_CanvasOverride(t *testing.T) {
	dir := t.TempDir()
	input := writeSRT(t, dir, "clip.srt")
	output := filepath.Join(dir, "custom.ass")

	err := Run(context.Background(), Options{InputPath: input, OutputPath: output, Width: 1280, Height: 720})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "PlayResX: 1280") || !strings.Contains(string(data), `\pos(640,670)`) {
		t.Errorf("canvas override not applied:\n%s", data)
	}
}

func TestRun_SRTFormat(t *testing.T) {
	dir := t.TempDir()
	input := writeSRT(t, dir, "clip.srt")
	output := filepath.Join(dir, "wrapped.srt")

	cfg := config.Default()
	cfg.Wrap.Limit = 20

	err := Run(context.Background(), Options{InputPath: input, OutputPath: output, Format: FormatSRT, Config: cfg})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	want := "1\n00:00:01,000 --> 00:00:03,000\nThe quick, brown fox\njumps over the lazy\ndog.\n\n" +
		"2\n00:00:04,000 --> 00:00:05,000\nSecond\n"
	if string(data) != want {
		t.Errorf("SRT output =\n%s\nwant\n%s", data, want)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.srt")
	if err := os.WriteFile(empty, []byte("\n\n"), 0644); err != nil {
		t.Fatal(err)
	}

	badStyle := config.Default()
	badStyle.Style.FillColor = "white"

	badLimit := config.Default()
	badLimit.Wrap.Limit = 0

	tests := []struct {
		name   string
		opts   Options
		errHas string
	}{
		{"missing input", Options{InputPath: filepath.Join(dir, "none.srt")}, "load cues"},
		{"no cues", Options{InputPath: empty}, "no cues"},
		{"bad style", Options{InputPath: writeSRT(t, dir, "a.srt"), Config: badStyle}, "fill_color"},
		{"bad limit", Options{InputPath: writeSRT(t, dir, "b.srt"), Config: badLimit}, "wrap limit"},
		{"bad format", Options{InputPath: writeSRT(t, dir, "c.srt"), Format: "vtt"}, "unsupported output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Run(context.Background(), tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errHas) {
				t.Errorf("error %q does not mention %q", err, tt.errHas)
			}
		})
	}
}

func TestRunBatch(t *testing.T) {
	for _, sequential := range []bool{true, false} {
		dir := t.TempDir()
		var jobs []Options
		for _, name := range []string{"a.srt", "b.srt", "c.srt"} {
			jobs = append(jobs, Options{InputPath: writeSRT(t, dir, name)})
		}

		err := RunBatch(context.Background(), jobs, BatchOptions{Sequential: sequential, MaxConcurrent: 2})
		if err != nil {
			t.Fatalf("RunBatch(sequential=%v): %v", sequential, err)
		}

		for _, name := range []string{"a.ass", "b.ass", "c.ass"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
				t.Errorf("sequential=%v: missing %s: %v", sequential, name, err)
			}
		}
	}
}

func TestRunBatch_Failure(t *testing.T) {
	dir := t.TempDir()
	jobs := []Options{
		{InputPath: writeSRT(t, dir, "good.srt")},
		{InputPath: filepath.Join(dir, "bad.srt")},
	}

	err := RunBatch(context.Background(), jobs, BatchOptions{MaxConcurrent: 2, JobsPerMin: 600})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "bad.srt") {
		t.Errorf("error %q does not name the failing input", err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		suffix string
		want   string
	}{
		{"/v/movie.mkv", ".ass", "/v/movie.ass"},
		{"/v/movie.mkv", ".subbed.mkv", "/v/movie.subbed.mkv"},
		{"noext", ".srt", "noext.srt"},
	}

	for _, tt := range tests {
		if got := OutputPath(tt.input, tt.suffix); got != tt.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
		}
	}
}
