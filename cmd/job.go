package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"subburn/internal/config"
	"subburn/internal/worker"

	"github.com/spf13/cobra"
)

// jobFlags are shared by render and burn.
type jobFlags struct {
	subs     string
	track    int
	output   string
	encoding string

	// Layout flags.
	limit      int
	lang       string
	noReformat bool
	width      int
	height     int

	// Style flags.
	fontName  string
	fontSize  int
	alignment string
	seamX     int
	seamY     int
	marginV   int

	// Batch flags.
	noAsync       bool
	maxConcurrent int
	jobsPerMin    int
}

func (f *jobFlags) register(cmd *cobra.Command) {
	defaults := config.Default()

	cmd.Flags().StringVarP(&f.subs, "subs", "s", "", "external subtitle file (default: read from input)")
	cmd.Flags().IntVarP(&f.track, "track", "t", 0, "subtitle stream index when reading from a video")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output path (single input only)")
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "SRT charset label, e.g. shift_jis (default: detect)")

	cmd.Flags().IntVarP(&f.limit, "limit", "l", defaults.Wrap.Limit, "wrap limit in display-width units")
	cmd.Flags().StringVar(&f.lang, "lang", "", "language code; picks the default wrap limit (ja, zh, ko, en...)")
	cmd.Flags().BoolVar(&f.noReformat, "no-reformat", false, "keep source line breaks instead of re-wrapping")
	cmd.Flags().IntVar(&f.width, "width", 0, "canvas width (default: probe video, else config)")
	cmd.Flags().IntVar(&f.height, "height", 0, "canvas height (default: probe video, else config)")

	cmd.Flags().StringVar(&f.fontName, "font", defaults.Style.FontName, "font name")
	cmd.Flags().IntVar(&f.fontSize, "font-size", defaults.Style.FontSize, "font size in pixels")
	cmd.Flags().StringVarP(&f.alignment, "align", "a", defaults.Style.Alignment, "alignment: top, middle, bottom, seam")
	cmd.Flags().IntVar(&f.seamX, "seam-x", 0, "seam anchor x (default: horizontal center)")
	cmd.Flags().IntVar(&f.seamY, "seam-y", 0, "seam anchor y, required for --align seam")
	cmd.Flags().IntVar(&f.marginV, "margin-v", defaults.Style.MarginV, "vertical margin in pixels")

	cmd.Flags().BoolVar(&f.noAsync, "no-async", false, "process inputs one at a time")
	cmd.Flags().IntVarP(&f.maxConcurrent, "max-concurrent", "j", defaults.Batch.MaxConcurrent, "max concurrent jobs")
	cmd.Flags().IntVar(&f.jobsPerMin, "jobs-per-min", defaults.Batch.JobsPerMin, "job start rate limit (0: unlimited)")
}

// apply overlays flags the user set explicitly onto the loaded config.
func (f *jobFlags) apply(cmd *cobra.Command, c *config.Config) {
	changed := cmd.Flags().Changed

	if changed("lang") && !changed("limit") {
		c.Wrap.Limit = config.LimitForLang(f.lang)
	}
	if changed("limit") {
		c.Wrap.Limit = f.limit
	}
	if changed("no-reformat") {
		c.Wrap.Reformat = !f.noReformat
	}
	if changed("font") {
		c.Style.FontName = f.fontName
	}
	if changed("font-size") {
		c.Style.FontSize = f.fontSize
	}
	if changed("align") {
		c.Style.Alignment = f.alignment
	}
	if changed("seam-x") {
		c.Style.SeamX = f.seamX
	}
	if changed("seam-y") {
		c.Style.SeamY = f.seamY
	}
	if changed("margin-v") {
		c.Style.MarginV = f.marginV
	}
	if changed("max-concurrent") {
		c.Batch.MaxConcurrent = f.maxConcurrent
	}
	if changed("jobs-per-min") {
		c.Batch.JobsPerMin = f.jobsPerMin
	}
}

// jobs validates the inputs and builds one worker job per input.
func (f *jobFlags) jobs(args []string, base worker.Options) ([]worker.Options, error) {
	if len(args) > 1 && f.output != "" {
		return nil, fmt.Errorf("--output requires a single input, got %d", len(args))
	}
	if len(args) > 1 && f.subs != "" {
		return nil, fmt.Errorf("--subs requires a single input, got %d", len(args))
	}

	jobs := make([]worker.Options, 0, len(args))
	for _, arg := range args {
		absPath, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolve path: %w", err)
		}
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", arg)
		}

		job := base
		job.InputPath = absPath
		job.SubtitlesPath = f.subs
		job.Track = f.track
		job.OutputPath = f.output
		job.Encoding = f.encoding
		job.Width = f.width
		job.Height = f.height
		job.Config = cfg
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (f *jobFlags) batch() worker.BatchOptions {
	return worker.BatchOptions{
		Sequential:    f.noAsync,
		MaxConcurrent: cfg.Batch.MaxConcurrent,
		JobsPerMin:    cfg.Batch.JobsPerMin,
	}
}
