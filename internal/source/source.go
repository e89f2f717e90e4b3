// Package source reads subtitle cues from subtitle files and video containers.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"subburn/internal/ffmpeg"
	"subburn/internal/pipeline"

	"github.com/asticode/go-astisub"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// Request describes where cues come from.
type Request struct {
	// Path is a subtitle file or a video container.
	Path string
	// Subtitles is an external subtitle file used instead of a container track.
	Subtitles string
	// Track selects the container subtitle stream, 0-based.
	Track int
	// Encoding forces a charset label for SRT input ("" detects).
	Encoding string
}

// Result holds the loaded cues and the number of malformed blocks dropped.
type Result struct {
	Cues    []pipeline.Cue
	Skipped int
	Origin  string
}

// Load reads cues for the request.
func Load(ctx context.Context, req Request) (*Result, error) {
	if req.Subtitles != "" {
		return loadFile(req.Subtitles, req.Encoding)
	}

	ext := strings.ToLower(filepath.Ext(req.Path))
	if !ffmpeg.IsVideoExtension(ext) {
		return loadFile(req.Path, req.Encoding)
	}

	data, err := ffmpeg.ExtractSubtitles(ctx, req.Path, req.Track)
	if err != nil {
		return nil, fmt.Errorf("extract track %d: %w", req.Track, err)
	}
	cues, skipped := pipeline.ParseSRT(string(data))
	return &Result{
		Cues:    cues,
		Skipped: skipped,
		Origin:  fmt.Sprintf("%s#%d", filepath.Base(req.Path), req.Track),
	}, nil
}

func loadFile(path, encoding string) (*Result, error) {
	if strings.EqualFold(filepath.Ext(path), ".srt") {
		return loadSRT(path, encoding)
	}

	subs, err := astisub.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open subtitles: %w", err)
	}

	res := &Result{Origin: filepath.Base(path)}
	for i, item := range subs.Items {
		lines := make([]string, 0, len(item.Lines))
		for _, line := range item.Lines {
			lines = append(lines, line.String())
		}

		index := item.Index
		if index <= 0 {
			index = i + 1
		}
		if item.EndAt <= item.StartAt {
			res.Skipped++
			continue
		}
		res.Cues = append(res.Cues, pipeline.Cue{
			Index: index,
			Start: item.StartAt,
			End:   item.EndAt,
			Text:  pipeline.StripMarkup(strings.Join(lines, "\n")),
		})
	}
	return res, nil
}

func loadSRT(path, encoding string) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitles: %w", err)
	}

	text, err := DecodeText(raw, encoding)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	cues, skipped := pipeline.ParseSRT(text)
	return &Result{Cues: cues, Skipped: skipped, Origin: filepath.Base(path)}, nil
}

// DecodeText converts raw subtitle bytes to UTF-8. An empty label detects
// the encoding from BOMs and content, falling back to windows-1252 for
// input that is not valid UTF-8.
func DecodeText(raw []byte, label string) (string, error) {
	if label != "" {
		enc, name := charset.Lookup(label)
		if enc == nil {
			return "", fmt.Errorf("unknown encoding %q", label)
		}
		out, _, err := transform.Bytes(enc.NewDecoder(), raw)
		if err != nil {
			return "", fmt.Errorf("decode as %s: %w", name, err)
		}
		return string(out), nil
	}

	enc, name, _ := charset.DetermineEncoding(raw, "text/plain")
	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("decode as %s: %w", name, err)
	}
	slog.Debug("detected subtitle encoding", "charset", name)
	return string(out), nil
}
