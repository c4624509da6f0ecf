// ABOUTME: CLI command asking the advisor which blocks fit a goal
// ABOUTME: Shows the chosen blocks in order with the suggested process
package commands

import (
	"fmt"
	"strings"

	"github.com/aivix/bench/internal/models"
	"github.com/spf13/cobra"
)

// NewSuggestCmd creates the suggest command
func NewSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Suggest catalog blocks for an automation goal",
		Long: `Suggest catalog blocks for an automation goal.

Requires OPENAI_API_KEY. Without it, or when the model cannot answer,
the suggestion is empty.

Examples:
  aivix suggest "присылать погоду в телеграм каждое утро"
  aivix suggest fetch orders and post to slack --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSuggest,
	}

	return cmd
}

func runSuggest(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	suggestion, err := a.advisor.SuggestBlocks(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), suggestion)
	}

	out := cmd.OutOrStdout()
	if len(suggestion.RelevantBlockIDs) == 0 {
		if !quiet {
			fmt.Fprintf(out, "No suggestion available\n")
		}
		return nil
	}

	names := make(map[string]models.BlockSummary, len(suggestion.Blocks))
	for _, b := range suggestion.Blocks {
		names[b.BlockID] = b
	}
	for i, id := range suggestion.RelevantBlockIDs {
		fmt.Fprintf(out, "%d. %s (%s)\n", i+1, names[id].Name, id)
	}
	if suggestion.ProcessDescription != "" {
		fmt.Fprintf(out, "\n%s\n", suggestion.ProcessDescription)
	}

	return nil
}
