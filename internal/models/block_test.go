// ABOUTME: Tests for block models
// ABOUTME: Verifies validation and empty-default normalization

package models

import "testing"

func TestBlockSummary_Validate(t *testing.T) {
	tests := []struct {
		name    string
		block   BlockSummary
		wantErr bool
	}{
		{"valid", BlockSummary{BlockID: "n8n-nodes-base.set", Name: "Set"}, false},
		{"missing id", BlockSummary{Name: "Set"}, true},
		{"blank id", BlockSummary{BlockID: "  ", Name: "Set"}, true},
		{"missing name", BlockSummary{BlockID: "n8n-nodes-base.set"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.block.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBlockMetadataInput_Validate(t *testing.T) {
	in := BlockMetadataInput{}
	if err := in.Validate(); err == nil {
		t.Error("Validate() expected error for empty block ID")
	}

	in.BlockID = "n8n-nodes-base.set"
	if err := in.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestBlockDetails_Normalize(t *testing.T) {
	d := BlockDetails{
		InputSchema: map[string]any{"url": "string"},
	}
	d.Normalize()

	if d.Tags == nil {
		t.Error("Tags should be non-nil after Normalize")
	}
	if d.OutputSchema == nil {
		t.Error("OutputSchema should be non-nil after Normalize")
	}
	if d.InputSchema["url"] != "string" {
		t.Error("Normalize should keep existing schema entries")
	}
}

func TestIntent_Constructors(t *testing.T) {
	cmd := NewCommandIntent("Создай блок")
	if !cmd.IsCommand() || cmd.Command != "Создай блок" {
		t.Errorf("NewCommandIntent() = %+v", cmd)
	}

	txt := NewTextIntent("привет")
	if txt.IsCommand() || txt.Text != "привет" {
		t.Errorf("NewTextIntent() = %+v", txt)
	}
}
