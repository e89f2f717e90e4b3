package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"subburn/internal/config"
	"subburn/internal/ffmpeg"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	configPath string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "subburn",
	Short: "Lay out subtitles and burn them into video",
	Long: `Subburn turns SRT (and other subtitle formats) into positioned ASS documents
with display-width aware wrapping and CJK line-breaking rules, and can burn
the result into a video with ffmpeg.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		return loadConfig()
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func loadConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "err", err)
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = loaded

	if v := os.Getenv("SUBBURN_FFMPEG"); v != "" {
		cfg.Tools.FFmpeg = v
	}
	if v := os.Getenv("SUBBURN_FFPROBE"); v != "" {
		cfg.Tools.FFprobe = v
	}
	ffmpeg.FFmpegPath = cfg.Tools.FFmpeg
	ffmpeg.FFprobePath = cfg.Tools.FFprobe

	slog.Debug("config loaded", "path", configPath, "ffmpeg", ffmpeg.FFmpegPath)
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")
}
