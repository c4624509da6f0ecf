// ABOUTME: Action is the terminal artifact of the utterance pipeline
// ABOUTME: Serializes 1:1 to the response payload the UI consumes
package models

import (
	"encoding/json"
	"fmt"
)

// ActionKind tags an Action
type ActionKind string

const (
	// ActionShowBlockDetails - a named block was found, open its details
	ActionShowBlockDetails ActionKind = "show_block_details"

	// ActionBlockNotFound - a named block was requested but nothing matched
	ActionBlockNotFound ActionKind = "block_not_found"

	// ActionShowBlocksPanel - open the catalog panel with every block
	ActionShowBlocksPanel ActionKind = "show_blocks_panel"

	// ActionGenericCommand - classified as a command, no specific handler
	ActionGenericCommand ActionKind = "generic_command"

	// ActionPlainResponse - conversational text, not a command
	ActionPlainResponse ActionKind = "plain_response"
)

// IsValid reports whether k is one of the known action kinds
func (k ActionKind) IsValid() bool {
	switch k {
	case ActionShowBlockDetails, ActionBlockNotFound, ActionShowBlocksPanel,
		ActionGenericCommand, ActionPlainResponse:
		return true
	}
	return false
}

const (
	genericCommandPlaceholderBlock = "example_block_1"
	genericCommandFollowUp         = "Что дальше?"
	plainResponseMessage           = "Не распознано как команда"
)

// Action is exactly one response variant. Only the fields of Kind are meaningful.
type Action struct {
	Kind        ActionKind
	Block       *BlockDetails
	BlockName   string
	Blocks      []BlockSummary
	Categories  []string
	CommandText string
	Text        string
}

// ShowBlockDetails builds the details action for a found block
func ShowBlockDetails(block BlockDetails) Action {
	block.Normalize()
	return Action{Kind: ActionShowBlockDetails, Block: &block}
}

// BlockNotFound builds the lookup-miss action
func BlockNotFound(name string) Action {
	return Action{Kind: ActionBlockNotFound, BlockName: name}
}

// ShowBlocksPanel builds the catalog panel action
func ShowBlocksPanel(blocks []BlockSummary, categories []string) Action {
	if blocks == nil {
		blocks = []BlockSummary{}
	}
	if categories == nil {
		categories = []string{}
	}
	return Action{Kind: ActionShowBlocksPanel, Blocks: blocks, Categories: categories}
}

// GenericCommand builds the catch-all command acknowledgement
func GenericCommand(text string) Action {
	return Action{Kind: ActionGenericCommand, CommandText: text}
}

// PlainResponse builds the conversational fallback
func PlainResponse(text string) Action {
	return Action{Kind: ActionPlainResponse, Text: text}
}

// MarshalJSON renders the variant payload. Block actions use an "action"
// discriminator; command/text acknowledgements use "type".
func (a Action) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case ActionShowBlockDetails:
		if a.Block == nil {
			return nil, fmt.Errorf("action %s has no block", a.Kind)
		}
		return json.Marshal(struct {
			Action ActionKind    `json:"action"`
			Block  *BlockDetails `json:"block"`
		}{a.Kind, a.Block})

	case ActionBlockNotFound:
		return json.Marshal(struct {
			Action    ActionKind `json:"action"`
			BlockName string     `json:"block_name"`
		}{a.Kind, a.BlockName})

	case ActionShowBlocksPanel:
		return json.Marshal(struct {
			Action     ActionKind     `json:"action"`
			Blocks     []BlockSummary `json:"blocks"`
			Categories []string       `json:"categories"`
		}{a.Kind, a.Blocks, a.Categories})

	case ActionGenericCommand:
		return json.Marshal(struct {
			Type      IntentKind `json:"type"`
			Command   string     `json:"command"`
			Blocks    []string   `json:"blocks"`
			Questions []string   `json:"questions"`
		}{IntentCommand, a.CommandText, []string{genericCommandPlaceholderBlock}, []string{genericCommandFollowUp}})

	case ActionPlainResponse:
		return json.Marshal(struct {
			Type    IntentKind `json:"type"`
			Text    string     `json:"text"`
			Message string     `json:"message"`
		}{IntentText, a.Text, plainResponseMessage})
	}

	return nil, fmt.Errorf("unknown action kind %q", a.Kind)
}
