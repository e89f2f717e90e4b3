package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"subburn/internal/config"
	"subburn/internal/ffmpeg"
	"subburn/internal/pipeline"
	"subburn/internal/source"

	"github.com/google/uuid"
)

// Output formats for render jobs.
const (
	FormatASS = "ass"
	FormatSRT = "srt"
)

// Options configures one subtitle job.
type Options struct {
	InputPath     string
	SubtitlesPath string
	Track         int
	OutputPath    string
	Encoding      string

	// Burn renders the document onto the input video instead of writing it.
	Burn       bool
	Format     string
	VideoCodec string
	KeepTemp   bool

	// Canvas overrides; zero means probe the video or use the config canvas.
	Width  int
	Height int

	Config *config.Config
}

// Run is the top-level orchestrator for one job.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	jobID := uuid.NewString()[:8]
	log := slog.With("job", jobID)

	log.Info("processing file", "input", filepath.Base(opts.InputPath))

	res, err := source.Load(ctx, source.Request{
		Path:      opts.InputPath,
		Subtitles: opts.SubtitlesPath,
		Track:     opts.Track,
		Encoding:  opts.Encoding,
	})
	if err != nil {
		return fmt.Errorf("load cues: %w", err)
	}
	if res.Skipped > 0 {
		log.Warn("skipped malformed subtitle blocks", "source", res.Origin, "count", res.Skipped)
	}
	if len(res.Cues) == 0 {
		return fmt.Errorf("no cues found in %s", res.Origin)
	}
	log.Info("cues loaded", "source", res.Origin, "count", len(res.Cues))

	width, height := resolveCanvas(ctx, opts, cfg)
	spec, err := pipeline.NewStyleSpec(&cfg.Style, width, height)
	if err != nil {
		return fmt.Errorf("resolve style: %w", err)
	}

	doc, err := pipeline.Process(res.Cues, spec, pipeline.Options{
		Limit:    cfg.Wrap.Limit,
		Reformat: cfg.Wrap.Reformat,
	})
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	log.Debug("layout complete",
		"events", len(doc.Events),
		"canvas", fmt.Sprintf("%dx%d", width, height),
		"limit", spec.EffectiveLimit(cfg.Wrap.Limit))

	if opts.Burn {
		return burn(ctx, log, doc, opts)
	}
	return write(log, doc, opts)
}

// resolveCanvas picks explicit sizes first, then the probed video, then config.
func resolveCanvas(ctx context.Context, opts Options, cfg *config.Config) (int, int) {
	if opts.Width > 0 && opts.Height > 0 {
		return opts.Width, opts.Height
	}
	if ffmpeg.IsVideoExtension(filepath.Ext(opts.InputPath)) {
		if info := ffmpeg.LogVideoInfo(ctx, opts.InputPath); info != nil {
			return info.Width, info.Height
		}
	}
	return cfg.Canvas.Width, cfg.Canvas.Height
}

func write(log *slog.Logger, doc *pipeline.Document, opts Options) error {
	format := opts.Format
	if format == "" {
		format = FormatASS
	}

	out := opts.OutputPath
	if out == "" {
		out = OutputPath(opts.InputPath, "."+format)
	}

	switch format {
	case FormatASS:
		if err := doc.WriteFile(out); err != nil {
			return err
		}
	case FormatSRT:
		if err := os.WriteFile(out, []byte(doc.SRT()), 0644); err != nil {
			return fmt.Errorf("write SRT file: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}

	log.Info("document written", "path", out, "events", len(doc.Events))
	return nil
}

func burn(ctx context.Context, log *slog.Logger, doc *pipeline.Document, opts Options) error {
	if !ffmpeg.Available() {
		return fmt.Errorf("ffmpeg not found: %s", ffmpeg.FFmpegPath)
	}

	tempASS := filepath.Join(os.TempDir(), "subburn-"+uuid.NewString()+".ass")
	if err := doc.WriteFile(tempASS); err != nil {
		return err
	}
	if opts.KeepTemp {
		log.Info("keeping temp document", "path", tempASS)
	} else {
		defer func() {
			if err := os.Remove(tempASS); err != nil && !os.IsNotExist(err) {
				log.Debug("cleanup temp document", "file", tempASS, "err", err)
			}
		}()
	}

	out := opts.OutputPath
	if out == "" {
		out = OutputPath(opts.InputPath, ".subbed"+filepath.Ext(opts.InputPath))
	}

	if err := ffmpeg.BurnSubtitles(ctx, ffmpeg.BurnOptions{
		Input:      opts.InputPath,
		Subtitles:  tempASS,
		Output:     out,
		VideoCodec: opts.VideoCodec,
	}); err != nil {
		return err
	}

	log.Info("video written", "path", out)
	return nil
}

// OutputPath replaces the input extension with suffix.
func OutputPath(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}
