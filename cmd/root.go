package cmd

import (
	"fmt"
	"os"

	"github.com/itsmostafa/weave/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "weave",
	Short: "Execute literate markdown documents with a persistent JavaScript session",
	Long: `Weave renders markdown documents whose fenced js code blocks are executed
incrementally against one persistent interpreter session. Each chunk's source,
text output and figures are spliced back into the document in the order a live
session would show them.`,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("weave %s\n", version.String()))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
