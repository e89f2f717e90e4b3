package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Binary paths. Overridden from config or environment by the CLI.
var (
	FFmpegPath  = "ffmpeg"
	FFprobePath = "ffprobe"
)

// VideoInfo holds resolution, duration and subtitle track count from ffprobe.
type VideoInfo struct {
	Width           int
	Height          int
	Duration        float64
	SubtitleStreams int
}

// Available returns true if ffmpeg is on the PATH.
func Available() bool {
	_, err := exec.LookPath(FFmpegPath)
	return err == nil
}

// probeOutput mirrors ffprobe JSON structure.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// ProbeVideo uses ffprobe to get the first video stream's resolution, the
// container duration and the number of subtitle streams.
func ProbeVideo(ctx context.Context, path string) (*VideoInfo, error) {
	if _, err := exec.LookPath(FFprobePath); err != nil {
		return nil, fmt.Errorf("ffprobe not found: %w", err)
	}

	cmd := exec.CommandContext(ctx,
		FFprobePath,
		"-v", "error",
		"-show_entries", "stream=codec_type,width,height:format=duration",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseProbe(out)
}

func parseProbe(out []byte) (*VideoInfo, error) {
	var probe probeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("ffprobe JSON parse error: %w", err)
	}

	info := &VideoInfo{}
	info.Duration, _ = strconv.ParseFloat(probe.Format.Duration, 64)

	for _, s := range probe.Streams {
		switch s.CodecType {
		case "video":
			if info.Width == 0 && s.Width > 0 && s.Height > 0 {
				info.Width = s.Width
				info.Height = s.Height
			}
		case "subtitle":
			info.SubtitleStreams++
		}
	}

	if info.Width == 0 {
		return nil, fmt.Errorf("no video stream found")
	}
	return info, nil
}

// ExtractSubtitles demuxes subtitle track (0-based among subtitle streams)
// from a container and returns it converted to SRT text.
func ExtractSubtitles(ctx context.Context, videoPath string, track int) ([]byte, error) {
	slog.Info("extracting subtitles", "input", filepath.Base(videoPath), "track", track)

	cmd := exec.CommandContext(ctx,
		FFmpegPath,
		"-v", "error",
		"-i", videoPath,
		"-map", fmt.Sprintf("0:s:%d", track),
		"-f", "srt",
		"-",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg extract subtitles failed: %w\n%s", err, stderr.String())
	}
	return out, nil
}

// BurnOptions configures one subtitle burn.
type BurnOptions struct {
	Input     string
	Subtitles string
	Output    string
	// VideoCodec is passed to -c:v when set; ffmpeg picks its default otherwise.
	VideoCodec string
}

// BurnSubtitles renders an ASS document onto the video with the ass filter.
// Audio is copied.
func BurnSubtitles(ctx context.Context, opts BurnOptions) error {
	slog.Info("burning subtitles",
		"input", filepath.Base(opts.Input),
		"output", filepath.Base(opts.Output))

	args := burnArgs(opts)
	cmd := exec.CommandContext(ctx, FFmpegPath, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg burn failed: %w\n%s", err, string(out))
	}
	return nil
}

func burnArgs(opts BurnOptions) []string {
	args := []string{
		"-v", "error",
		"-i", opts.Input,
		"-vf", "ass=" + escapeFilterPath(opts.Subtitles),
	}
	if opts.VideoCodec != "" {
		args = append(args, "-c:v", opts.VideoCodec)
	}
	return append(args, "-c:a", "copy", "-y", opts.Output)
}

// escapeFilterPath quotes a path for use as a filtergraph option value.
func escapeFilterPath(path string) string {
	p := filepath.ToSlash(path)
	p = strings.ReplaceAll(p, `\`, `\\`)
	p = strings.ReplaceAll(p, ":", `\:`)
	p = strings.ReplaceAll(p, "'", `\'`)
	return "'" + p + "'"
}

// IsVideoExtension returns true for common video file extensions.
func IsVideoExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mp4", ".mkv", ".mov", ".avi", ".flv", ".webm", ".m4v", ".ts":
		return true
	}
	return false
}

// LogVideoInfo logs file size and video information.
func LogVideoInfo(ctx context.Context, path string) *VideoInfo {
	stat, err := os.Stat(path)
	if err != nil {
		slog.Warn("cannot stat file", "path", path, "err", err)
		return nil
	}

	sizeMB := float64(stat.Size()) / (1024 * 1024)
	msg := fmt.Sprintf("file size: %.2f MB", sizeMB)

	info, err := ProbeVideo(ctx, path)
	if err != nil {
		slog.Warn("probe failed", "path", filepath.Base(path), "err", err)
	} else {
		minutes := int(info.Duration) / 60
		seconds := int(info.Duration) % 60
		msg += fmt.Sprintf(" | %dx%d | duration: %02d:%02d | subtitle tracks: %d",
			info.Width, info.Height, minutes, seconds, info.SubtitleStreams)
	}

	slog.Info(msg)
	return info
}
