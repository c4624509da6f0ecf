// ABOUTME: Block represents an automation node entry in the catalog
// ABOUTME: Summary, details (with IO schemas) and metadata update payloads
package models

import (
	"errors"
	"strings"
)

// BlockSummary is the catalog record shown in panels and lookups
type BlockSummary struct {
	BlockID           string   `json:"block_id"`
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Description       string   `json:"description"`
	CustomDescription string   `json:"custom_description"`
	Tags              []string `json:"tags"`
	UserID            *int64   `json:"user_id"`
}

// BlockDetails is a BlockSummary plus the input/output schemas attached to it.
// Schema maps are never nil once returned by the store.
type BlockDetails struct {
	BlockSummary
	InputSchema  map[string]any `json:"inputSchema"`
	OutputSchema map[string]any `json:"outputSchema"`
}

// BlockMetadataInput carries the user-editable fields of a block
type BlockMetadataInput struct {
	BlockID           string   `json:"block_id"`
	CustomDescription *string  `json:"custom_description,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	UserID            *int64   `json:"user_id,omitempty"`
}

// BlockFilter narrows a catalog listing. Empty fields match everything.
type BlockFilter struct {
	Category string
	Search   string
}

// Validate checks a block has the fields the store requires
func (b *BlockSummary) Validate() error {
	if strings.TrimSpace(b.BlockID) == "" {
		return errors.New("block ID cannot be empty")
	}
	if strings.TrimSpace(b.Name) == "" {
		return errors.New("block name cannot be empty")
	}
	return nil
}

// Validate checks the metadata payload targets a block
func (m *BlockMetadataInput) Validate() error {
	if strings.TrimSpace(m.BlockID) == "" {
		return errors.New("block ID cannot be empty")
	}
	return nil
}

// Normalize replaces nil collections with empty ones so JSON renders [] and {}
func (d *BlockDetails) Normalize() {
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if d.InputSchema == nil {
		d.InputSchema = map[string]any{}
	}
	if d.OutputSchema == nil {
		d.OutputSchema = map[string]any{}
	}
}
