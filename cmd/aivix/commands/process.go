// ABOUTME: CLI command to run one utterance through the pipeline
// ABOUTME: Prints the resulting action payload as JSON
package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewProcessCmd creates the process command
func NewProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <text>",
		Short: "Classify an utterance and print the resulting action",
		Long: `Classify an utterance and print the resulting action.

Words are joined with spaces, so quoting is optional.

Examples:
  aivix process "покажи блок HTTP Request"
  aivix process open block Set-Variable
  aivix process запусти процесс`,
		Args: cobra.MinimumNArgs(1),
		RunE: runProcess,
	}

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	action, err := a.pipeline.ProcessUtterance(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), action)
}
