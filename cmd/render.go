package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/itsmostafa/weave/internal/cli"
	"github.com/itsmostafa/weave/internal/document"
	"github.com/spf13/cobra"
)

var outPath string
var figDir string

var renderCmd = &cobra.Command{
	Use:   "render <document.md>",
	Short: "Render a literate markdown document",
	Long: `Render executes every js chunk of the document in order against one shared
session and writes the document with chunk output spliced in. A chunk failure
aborts the build unless the chunk sets error=capture.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		out := outPath
		if out == "" {
			out = strings.TrimSuffix(args[0], ".md") + ".out.md"
		}

		runner := document.NewRunner(figDir)
		res, err := runner.Render(cmd.Context(), src)
		if res != nil {
			cli.FormatDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)
		}
		if err != nil {
			return err
		}

		if err := os.WriteFile(out, res.Markdown, 0644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		cli.FormatRenderSummary(cmd.OutOrStdout(), out, res.Chunks, len(res.Diagnostics))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: <input>.out.md)")

	// Figure directory flag with env var fallback
	defaultFigDir := "figure"
	if envDir := os.Getenv("WEAVE_FIG_DIR"); envDir != "" {
		defaultFigDir = envDir
	}
	renderCmd.Flags().StringVar(&figDir, "fig-dir", defaultFigDir, "Directory for rendered figures")

	rootCmd.AddCommand(renderCmd)
}
