package ffmpeg

import (
	"reflect"
	"testing"
)

func TestEscapeFilterPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/tmp/subs.ass", `'/tmp/subs.ass'`},
		{"/tmp/it's.ass", `'/tmp/it\'s.ass'`},
		{"C:/work/subs.ass", `'C\:/work/subs.ass'`},
	}

	for _, tt := range tests {
		if got := escapeFilterPath(tt.in); got != tt.want {
			t.Errorf("escapeFilterPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBurnArgs(t *testing.T) {
	got := burnArgs(BurnOptions{Input: "in.mp4", Subtitles: "/tmp/a.ass", Output: "out.mp4"})
	want := []string{"-v", "error", "-i", "in.mp4", "-vf", "ass='/tmp/a.ass'", "-c:a", "copy", "-y", "out.mp4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("burnArgs = %q, want %q", got, want)
	}

	got = burnArgs(BurnOptions{Input: "in.mp4", Subtitles: "a.ass", Output: "out.mp4", VideoCodec: "libx264"})
	if got[6] != "-c:v" || got[7] != "libx264" {
		t.Errorf("burnArgs with codec = %q", got)
	}
}

func TestParseProbe(t *testing.T) {
	out := []byte(`{
		"streams": [
			{"codec_type": "audio"},
			{"codec_type": "video", "width": 1280, "height": 720},
			{"codec_type": "subtitle"},
			{"codec_type": "subtitle"}
		],
		"format": {"duration": "93.5"}
	}`)

	info, err := parseProbe(out)
	if err != nil {
		t.Fatalf("parseProbe: %v", err)
	}
	if info.Width != 1280 || info.Height != 720 {
		t.Errorf("resolution = %dx%d, want 1280x720", info.Width, info.Height)
	}
	if info.Duration != 93.5 {
		t.Errorf("Duration = %v, want 93.5", info.Duration)
	}
	if info.SubtitleStreams != 2 {
		t.Errorf("SubtitleStreams = %d, want 2", info.SubtitleStreams)
	}
}

func TestParseProbe_NoVideo(t *testing.T) {
	if _, err := parseProbe([]byte(`{"streams": [{"codec_type": "audio"}], "format": {}}`)); err == nil {
		t.Error("expected error for audio-only input")
	}
	if _, err := parseProbe([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestIsVideoExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{".mp4", true},
		{".MKV", true},
		{".webm", true},
		{".srt", false},
		{".ass", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsVideoExtension(tt.ext); got != tt.want {
			t.Errorf("IsVideoExtension(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}
