// ABOUTME: CLI commands to browse the block catalog
// ABOUTME: blocks lists with filters, block shows one entry with its schemas
package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aivix/bench/internal/models"
	"github.com/spf13/cobra"
)

var (
	blocksCategory string
	blocksSearch   string
)

// NewBlocksCmd creates the blocks command
func NewBlocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List catalog blocks",
		Long: `List catalog blocks in catalog order.

Filters match case-insensitive substrings.

Examples:
  aivix blocks
  aivix blocks --category core
  aivix blocks --search http --format json`,
		Args: cobra.NoArgs,
		RunE: runBlocks,
	}

	cmd.Flags().StringVar(&blocksCategory, "category", "", "Only blocks whose category contains this text")
	cmd.Flags().StringVar(&blocksSearch, "search", "", "Only blocks whose name contains this text")

	return cmd
}

func runBlocks(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	blocks, categories, err := a.store.ListBlocks(cmd.Context(), models.BlockFilter{
		Category: blocksCategory,
		Search:   blocksSearch,
	})
	if err != nil {
		return fmt.Errorf("listing blocks: %w", err)
	}

	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"blocks":     blocks,
			"categories": categories,
		})
	}

	if len(blocks) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No blocks found\n")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tCATEGORY\tTAGS\tBLOCK ID\n")
	fmt.Fprintf(w, "----\t--------\t----\t--------\n")
	for _, b := range blocks {
		category := b.Category
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			truncate(b.Name, 30),
			truncate(category, 20),
			truncate(strings.Join(b.Tags, ","), 25),
			b.BlockID)
	}
	_ = w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d block(s), categories: %s\n",
			len(blocks), strings.Join(categories, ", "))
	}

	return nil
}

// NewBlockCmd creates the block command
func NewBlockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block <block_id>",
		Short: "Show one catalog block",
		Long: `Show one catalog block, including its input and output schemas.

Examples:
  aivix block n8n-nodes-base.httpRequest
  aivix block n8n-nodes-base.httpRequest --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runBlock,
	}

	return cmd
}

func runBlock(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	block, err := a.store.GetBlock(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("getting block: %w", err)
	}
	if block == nil {
		return fmt.Errorf("block %q not found", args[0])
	}

	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), block)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", block.Name, block.BlockID)
	if block.Category != "" {
		fmt.Fprintf(out, "Category:    %s\n", block.Category)
	}
	if block.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", block.Description)
	}
	if block.CustomDescription != "" {
		fmt.Fprintf(out, "Custom:      %s\n", block.CustomDescription)
	}
	if len(block.Tags) > 0 {
		fmt.Fprintf(out, "Tags:        %s\n", strings.Join(block.Tags, ", "))
	}
	if block.UserID != nil {
		fmt.Fprintf(out, "User:        %d\n", *block.UserID)
	}
	fmt.Fprintf(out, "Inputs:      %d field(s)\n", len(block.InputSchema))
	fmt.Fprintf(out, "Outputs:     %d field(s)\n", len(block.OutputSchema))

	return nil
}
