// ABOUTME: CLI commands that write to the block catalog
// ABOUTME: block-add upserts an entry, metadata edits the user-owned fields
package commands

import (
	"errors"
	"fmt"

	"github.com/aivix/bench/internal/models"
	"github.com/aivix/bench/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

var (
	addID           string
	addName         string
	addCategory     string
	addDescription  string
	addTags         string
	addInputSchema  string
	addOutputSchema string

	metaDescription string
	metaTags        string
	metaUserID      int64
)

// NewBlockAddCmd creates the block-add command
func NewBlockAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block-add",
		Short: "Add or replace a catalog block",
		Long: `Add or replace a catalog block.

An existing block with the same --id is replaced and keeps its
position in the catalog.

Examples:
  aivix block-add --id n8n-nodes-base.httpRequest --name "HTTP Request" --category Core
  aivix block-add --id custom.weather --name Weather --tags api,weather \
    --input-schema '{"city":"string"}'`,
		Args: cobra.NoArgs,
		RunE: runBlockAdd,
	}

	cmd.Flags().StringVar(&addID, "id", "", "Block ID (required)")
	cmd.Flags().StringVar(&addName, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&addCategory, "category", "", "Category")
	cmd.Flags().StringVar(&addDescription, "description", "", "Description")
	cmd.Flags().StringVar(&addTags, "tags", "", "Comma separated tags")
	cmd.Flags().StringVar(&addInputSchema, "input-schema", "", "Input schema as a JSON object")
	cmd.Flags().StringVar(&addOutputSchema, "output-schema", "", "Output schema as a JSON object")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runBlockAdd(cmd *cobra.Command, args []string) error {
	input, err := parseSchema("input-schema", addInputSchema)
	if err != nil {
		return err
	}
	output, err := parseSchema("output-schema", addOutputSchema)
	if err != nil {
		return err
	}

	block := &models.BlockDetails{
		BlockSummary: models.BlockSummary{
			BlockID:     addID,
			Name:        addName,
			Category:    addCategory,
			Description: addDescription,
			Tags:        parseTags(addTags),
		},
		InputSchema:  input,
		OutputSchema: output,
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.SaveBlock(cmd.Context(), block); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved block %s (%s)\n", block.Name, block.BlockID)
	}
	return nil
}

// NewMetadataCmd creates the metadata command
func NewMetadataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata <block_id>",
		Short: "Update a block's custom description, tags or owner",
		Long: `Update a block's custom description, tags or owner.

Only the flags you pass are changed. The block must already exist.

Examples:
  aivix metadata n8n-nodes-base.httpRequest --description "Calls our API"
  aivix metadata n8n-nodes-base.httpRequest --tags api,internal --user-id 7`,
		Args: cobra.ExactArgs(1),
		RunE: runMetadata,
	}

	cmd.Flags().StringVar(&metaDescription, "description", "", "Custom description")
	cmd.Flags().StringVar(&metaTags, "tags", "", "Comma separated tags (replaces existing)")
	cmd.Flags().Int64Var(&metaUserID, "user-id", 0, "Owning user ID")

	return cmd
}

func runMetadata(cmd *cobra.Command, args []string) error {
	in := models.BlockMetadataInput{BlockID: args[0]}
	if cmd.Flags().Changed("description") {
		desc := metaDescription
		in.CustomDescription = &desc
	}
	if cmd.Flags().Changed("tags") {
		in.Tags = parseTags(metaTags)
	}
	if cmd.Flags().Changed("user-id") {
		id := metaUserID
		in.UserID = &id
	}
	if in.CustomDescription == nil && in.Tags == nil && in.UserID == nil {
		return errors.New("nothing to update: pass --description, --tags or --user-id")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	updated, err := a.store.UpdateMetadata(cmd.Context(), in)
	if errors.Is(err, sqlite.ErrBlockNotFound) {
		return fmt.Errorf("block %q not found", in.BlockID)
	}
	if err != nil {
		return fmt.Errorf("updating metadata: %w", err)
	}

	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), updated)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated %s\n", updated.BlockID)
	}
	return nil
}
