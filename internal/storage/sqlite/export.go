// ABOUTME: Catalog export and import for the block store
// ABOUTME: YAML/JSON/Markdown dumps, file imports and n8n node definition loading
package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/aivix/bench/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData is the complete exportable catalog
type ExportData struct {
	Version    string        `yaml:"version" json:"version"`
	ExportedAt string        `yaml:"exported_at" json:"exported_at"`
	Tool       string        `yaml:"tool" json:"tool"`
	Categories []string      `yaml:"categories" json:"categories"`
	Blocks     []ExportBlock `yaml:"blocks" json:"blocks"`
}

// ExportBlock is one catalog entry in an export file
type ExportBlock struct {
	BlockID           string         `yaml:"block_id" json:"block_id"`
	Name              string         `yaml:"name" json:"name"`
	Category          string         `yaml:"category,omitempty" json:"category,omitempty"`
	Description       string         `yaml:"description,omitempty" json:"description,omitempty"`
	CustomDescription string         `yaml:"custom_description,omitempty" json:"custom_description,omitempty"`
	Tags              []string       `yaml:"tags,omitempty" json:"tags,omitempty"`
	UserID            *int64         `yaml:"user_id,omitempty" json:"user_id,omitempty"`
	InputSchema       map[string]any `yaml:"input_schema,omitempty" json:"input_schema,omitempty"`
	OutputSchema      map[string]any `yaml:"output_schema,omitempty" json:"output_schema,omitempty"`
}

func exportBlock(b models.BlockDetails) ExportBlock {
	return ExportBlock{
		BlockID:           b.BlockID,
		Name:              b.Name,
		Category:          b.Category,
		Description:       b.Description,
		CustomDescription: b.CustomDescription,
		Tags:              b.Tags,
		UserID:            b.UserID,
		InputSchema:       b.InputSchema,
		OutputSchema:      b.OutputSchema,
	}
}

func (e ExportBlock) details() models.BlockDetails {
	return models.BlockDetails{
		BlockSummary: models.BlockSummary{
			BlockID:           e.BlockID,
			Name:              e.Name,
			Category:          e.Category,
			Description:       e.Description,
			CustomDescription: e.CustomDescription,
			Tags:              e.Tags,
			UserID:            e.UserID,
		},
		InputSchema:  e.InputSchema,
		OutputSchema: e.OutputSchema,
	}
}

// Export collects the whole catalog, schemas included, in catalog order
func (s *Storage) Export(ctx context.Context) (*ExportData, error) {
	summaries, categories, err := s.blocks.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}

	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "aivix",
		Categories: categories,
		Blocks:     make([]ExportBlock, 0, len(summaries)),
	}

	for _, summary := range summaries {
		block, err := s.blocks.GetDetails(ctx, summary.BlockID)
		if err != nil {
			return nil, err
		}
		if block == nil {
			// deleted between the list and the fetch
			continue
		}
		data.Blocks = append(data.Blocks, exportBlock(*block))
	}

	return data, nil
}

// ExportToFile writes the catalog to outputPath. A .json extension selects
// JSON, .md selects Markdown, anything else YAML.
func (s *Storage) ExportToFile(ctx context.Context, outputPath string) error {
	data, err := s.Export(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	return writeExport(file, filepath.Ext(outputPath), data)
}

// writeExport encodes data in the format ext selects and closes w. A close
// failure is reported, since it can mean the file was never fully written.
func writeExport(w io.WriteCloser, ext string, data *ExportData) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	switch strings.ToLower(ext) {
	case ".json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case ".md":
		writeMarkdown(w, data)
	default:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to flush YAML: %w", err)
		}
	}

	return nil
}

func writeMarkdown(file io.Writer, data *ExportData) {
	_, _ = fmt.Fprintf(file, "# Block Catalog - %s\n\n", time.Now().Format("2006-01-02"))
	_, _ = fmt.Fprintf(file, "Generated: %s\n\n", data.ExportedAt)

	byCategory := map[string][]ExportBlock{}
	for _, b := range data.Blocks {
		byCategory[b.Category] = append(byCategory[b.Category], b)
	}
	names := make([]string, 0, len(byCategory))
	for c := range byCategory {
		names = append(names, c)
	}
	sort.Strings(names)

	for _, c := range names {
		heading := c
		if heading == "" {
			heading = "Uncategorized"
		}
		_, _ = fmt.Fprintf(file, "## %s\n\n", heading)
		for _, b := range byCategory[c] {
			_, _ = fmt.Fprintf(file, "### %s\n\n", b.Name)
			_, _ = fmt.Fprintf(file, "`%s`\n\n", b.BlockID)
			if b.Description != "" {
				_, _ = fmt.Fprintf(file, "%s\n\n", b.Description)
			}
			if b.CustomDescription != "" {
				_, _ = fmt.Fprintf(file, "> %s\n\n", b.CustomDescription)
			}
			if len(b.Tags) > 0 {
				_, _ = fmt.Fprintf(file, "*Tags: %s*\n\n", strings.Join(b.Tags, ", "))
			}
		}
	}
}

// ImportFile upserts every block in a YAML or JSON export file and
// returns how many were saved
func (s *Storage) ImportFile(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return 0, fmt.Errorf("failed to read import file: %w", err)
	}

	// YAML is a superset of JSON, one decoder covers both
	var data ExportData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return 0, fmt.Errorf("failed to parse import file: %w", err)
	}

	saved := 0
	for _, b := range data.Blocks {
		block := b.details()
		if err := s.SaveBlock(ctx, &block); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

// n8nNode is the part of a *.node.json definition the catalog uses
type n8nNode struct {
	Node        string   `json:"node"`
	Categories  []string `json:"categories"`
	Description string   `json:"description"`
	Alias       []string `json:"alias"`
}

// LoadN8nNodes adds every <dir>/*/*.node.json definition that is not in the
// catalog yet. Existing blocks, and any metadata users added, are left alone.
func (s *Storage) LoadN8nNodes(ctx context.Context, dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*", "*.node.json"))
	if err != nil {
		return 0, fmt.Errorf("failed to scan node definitions: %w", err)
	}
	sort.Strings(paths)

	added := 0
	for _, path := range paths {
		raw, err := os.ReadFile(path) // #nosec G304
		if err != nil {
			return added, fmt.Errorf("failed to read %s: %w", path, err)
		}

		var node n8nNode
		if err := json.Unmarshal(raw, &node); err != nil {
			return added, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		blockID := node.Node
		if blockID == "" {
			blockID = strings.TrimSuffix(filepath.Base(path), ".node.json")
		}

		existing, err := s.blocks.FindByID(ctx, blockID)
		if err != nil {
			return added, err
		}
		if existing != nil {
			continue
		}

		block := &models.BlockDetails{
			BlockSummary: models.BlockSummary{
				BlockID:     blockID,
				Name:        nodeDisplayName(blockID),
				Description: node.Description,
				Tags:        node.Alias,
			},
		}
		if len(node.Categories) > 0 {
			block.Category = node.Categories[0]
		}

		if err := s.SaveBlock(ctx, block); err != nil {
			return added, err
		}
		added++
	}

	return added, nil
}

// nodeDisplayName turns "n8n-nodes-base.httpRequest" into "Httprequest":
// the last dotted segment with only its first letter upper-cased
func nodeDisplayName(blockID string) string {
	segment := blockID[strings.LastIndex(blockID, ".")+1:]
	if segment == "" {
		return blockID
	}
	first, size := utf8.DecodeRuneInString(segment)
	return string(unicode.ToUpper(first)) + strings.ToLower(segment[size:])
}
