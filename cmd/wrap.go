package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"subburn/internal/config"
	"subburn/internal/pipeline"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var wrapCmd = &cobra.Command{
	Use:   "wrap [text]",
	Short: "Preview how text wraps at a given limit",
	Long: `Wrap prints the lines the layout engine produces for the given text (or
stdin), each followed by its display width.`,
	RunE: runWrap,
}

var (
	wrapLimit int
	wrapLang  string
)

func init() {
	wrapCmd.Flags().IntVarP(&wrapLimit, "limit", "l", config.LatinWrapLimit, "wrap limit in display-width units")
	wrapCmd.Flags().StringVar(&wrapLang, "lang", "", "language code; picks the default wrap limit")

	rootCmd.AddCommand(wrapCmd)
}

func runWrap(cmd *cobra.Command, args []string) error {
	limit := wrapLimit
	if cmd.Flags().Changed("lang") && !cmd.Flags().Changed("limit") {
		limit = config.LimitForLang(wrapLang)
	}
	if limit <= 0 {
		return fmt.Errorf("%w: got %d", pipeline.ErrInvalidLimit, limit)
	}

	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	lines := pipeline.SmartWrap(strings.Join(strings.Fields(text), " "), limit)
	printWrapped(cmd.OutOrStdout(), lines, limit)
	return nil
}

// printWrapped pads each line to the limit so the width column lines up.
// Ambiguous-width runes are padded as wide, matching the layout engine.
func printWrapped(w io.Writer, lines []string, limit int) {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = true
	for _, line := range lines {
		fmt.Fprintf(w, "%s | %d\n", cond.FillRight(line, limit), pipeline.DisplayWidth(line))
	}
}
