package cmd

import (
	"io"
	"os"

	"github.com/itsmostafa/weave/internal/cli"
	"github.com/itsmostafa/weave/internal/engine"
	"github.com/itsmostafa/weave/internal/graphics"
	"github.com/itsmostafa/weave/internal/interp"
	"github.com/spf13/cobra"
)

var execResults string
var execNoEcho bool
var execFigDir string

var execCmd = &cobra.Command{
	Use:   "exec [file.js]",
	Short: "Execute one chunk of JavaScript interactively",
	Long: `Exec runs a single chunk from a file or stdin outside a document build.
Failures are captured as inline error records instead of killing the session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var src []byte
		var err error
		if len(args) == 1 {
			src, err = os.ReadFile(args[0])
		} else {
			src, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return err
		}

		eng := engine.New(engine.Config{
			Parser:   interp.SourceParser{},
			Provider: interp.NewRegistry(),
			Backend:  graphics.NewFileBackend(execFigDir),
		})

		raw := engine.RawOptions{"results": execResults}
		if execNoEcho {
			raw["echo"] = false
		}

		res, runErr := eng.RunChunk(cmd.Context(), string(src), raw, nil)
		if res != nil {
			cli.FormatDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)
			cli.FormatItems(cmd.OutOrStdout(), res.Outputs)
		}
		return runErr
	},
}

func init() {
	execCmd.Flags().StringVar(&execResults, "results", "sequential", "Results mode (sequential, hold)")
	execCmd.Flags().BoolVar(&execNoEcho, "no-echo", false, "Suppress source echo")

	defaultFigDir := "figure"
	if envDir := os.Getenv("WEAVE_FIG_DIR"); envDir != "" {
		defaultFigDir = envDir
	}
	execCmd.Flags().StringVar(&execFigDir, "fig-dir", defaultFigDir, "Directory for rendered figures")

	rootCmd.AddCommand(execCmd)
}
