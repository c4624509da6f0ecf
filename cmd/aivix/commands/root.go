// ABOUTME: Root command and global flags for the aivix CLI
// ABOUTME: Wires every subcommand and validates --verbose/--quiet/--format
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
 █████╗ ██╗██╗   ██╗██╗██╗  ██╗
██╔══██╗██║██║   ██║██║╚██╗██╔╝
███████║██║██║   ██║██║ ╚███╔╝
██╔══██║██║╚██╗ ██╔╝██║ ██╔██╗
██║  ██║██║ ╚████╔╝ ██║██╔╝ ██╗
╚═╝  ╚═╝╚═╝  ╚═══╝  ╚═╝╚═╝  ╚═╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aivix",
		Short: "Voice and text command router for an automation block catalog",
		Long: banner + `

Classifies utterances as commands or plain text and turns them into
UI actions over a catalog of automation blocks: open a block's details,
open the blocks panel, acknowledge a command, or reply as text.

Short keyword commands are recognized locally; everything else is
classified by an OpenAI-compatible model when OPENAI_API_KEY is set.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case "auto", "json", "table":
				return nil
			}
			return fmt.Errorf("invalid --format %q (want auto, json or table)", outputFormat)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors and suppress informational output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, json, table")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewProcessCmd(),
		NewBlocksCmd(),
		NewBlockCmd(),
		NewBlockAddCmd(),
		NewMetadataCmd(),
		NewSuggestCmd(),
		NewExportCmd(),
		NewImportCmd(),
		NewLoadN8nCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
