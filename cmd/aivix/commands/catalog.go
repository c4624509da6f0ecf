// ABOUTME: CLI commands that move the catalog in and out of files
// ABOUTME: export, import and load-n8n for seeding from n8n node definitions
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export the block catalog to a file",
		Long: `Export the block catalog to a file.

The format follows the extension: .json for JSON, .md for a
readable Markdown overview, anything else for YAML.

Examples:
  aivix export catalog.yaml
  aivix export backup/catalog.json
  aivix export CATALOG.md`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.ExportToFile(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("exporting catalog: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported catalog to %s\n", args[0])
	}
	return nil
}

// NewImportCmd creates the import command
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import blocks from a YAML or JSON export",
		Long: `Import blocks from a YAML or JSON export.

Blocks with an existing ID are replaced.

Examples:
  aivix import catalog.yaml
  aivix import backup/catalog.json`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.store.ImportFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("importing catalog (%d saved): %w", n, err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d block(s)\n", n)
	}
	return nil
}

// NewLoadN8nCmd creates the load-n8n command
func NewLoadN8nCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load-n8n <nodes_dir>",
		Short: "Seed the catalog from n8n node definitions",
		Long: `Seed the catalog from n8n node definitions.

Reads <nodes_dir>/*/*.node.json (for example
n8n/packages/nodes-base/nodes) and adds every node that is not in the
catalog yet. Existing blocks keep their metadata.

Examples:
  aivix load-n8n ../n8n/packages/nodes-base/nodes`,
		Args: cobra.ExactArgs(1),
		RunE: runLoadN8n,
	}

	return cmd
}

func runLoadN8n(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.store.LoadN8nNodes(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading n8n nodes (%d added): %w", n, err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Loaded %d new block(s)\n", n)
	}
	return nil
}
