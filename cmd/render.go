package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"subburn/internal/worker"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <input>...",
	Short: "Render subtitles into positioned ASS (or re-wrapped SRT)",
	Long: `Render reads cues from subtitle files or video containers, wraps them to the
canvas, and writes an ASS document next to each input. Video inputs are
probed for their resolution.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

var (
	renderFlags  jobFlags
	renderFormat string
)

func init() {
	renderFlags.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", worker.FormatASS, "output format: ass, srt")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderFormat != worker.FormatASS && renderFormat != worker.FormatSRT {
		return fmt.Errorf("unsupported format: %s", renderFormat)
	}
	renderFlags.apply(cmd, cfg)

	jobs, err := renderFlags.jobs(args, worker.Options{Format: renderFormat})
	if err != nil {
		return err
	}

	// Setup signal handling for graceful cancellation.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := worker.RunBatch(ctx, jobs, renderFlags.batch()); err != nil {
		return err
	}

	if !quiet {
		slog.Info("done", "files", len(jobs))
	}
	return nil
}
