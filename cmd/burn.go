package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"

	"subburn/internal/ffmpeg"
	"subburn/internal/worker"

	"github.com/spf13/cobra"
)

var burnCmd = &cobra.Command{
	Use:   "burn <video>...",
	Short: "Burn subtitles into video with ffmpeg",
	Long: `Burn lays out the subtitles of each video (an embedded track or --subs),
writes a temporary ASS document and renders it onto the picture with the
ffmpeg ass filter. Audio is copied unchanged.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBurn,
}

var (
	burnFlags  jobFlags
	videoCodec string
	keepTemp   bool
)

func init() {
	burnFlags.register(burnCmd)
	burnCmd.Flags().StringVar(&videoCodec, "vcodec", "", "ffmpeg video encoder (default: ffmpeg's choice)")
	burnCmd.Flags().BoolVar(&keepTemp, "keep-temp", false, "keep the temporary ASS document")

	rootCmd.AddCommand(burnCmd)
}

func runBurn(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		if ext := filepath.Ext(arg); !ffmpeg.IsVideoExtension(ext) {
			return fmt.Errorf("unsupported video type: %s", ext)
		}
	}
	if !ffmpeg.Available() {
		return fmt.Errorf("ffmpeg not found: %s", ffmpeg.FFmpegPath)
	}
	burnFlags.apply(cmd, cfg)

	jobs, err := burnFlags.jobs(args, worker.Options{
		Burn:       true,
		VideoCodec: videoCodec,
		KeepTemp:   keepTemp,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := worker.RunBatch(ctx, jobs, burnFlags.batch()); err != nil {
		return err
	}

	if !quiet {
		slog.Info("done", "files", len(jobs))
	}
	return nil
}
