// ABOUTME: Intent is the classified meaning of an utterance
// ABOUTME: Either a command for the automation backend or plain conversational text
package models

// IntentKind tags an Intent
type IntentKind string

const (
	// IntentCommand - utterance asks the system to do something
	IntentCommand IntentKind = "command"

	// IntentText - utterance is ordinary conversation
	IntentText IntentKind = "text"
)

// Intent is produced once per utterance and never mutated.
// Command is set for IntentCommand, Text for IntentText.
type Intent struct {
	Kind    IntentKind `json:"type"`
	Command string     `json:"command,omitempty"`
	Text    string     `json:"text,omitempty"`
}

// NewCommandIntent returns a command intent carrying the raw command text
func NewCommandIntent(raw string) Intent {
	return Intent{Kind: IntentCommand, Command: raw}
}

// NewTextIntent returns a plain text intent
func NewTextIntent(text string) Intent {
	return Intent{Kind: IntentText, Text: text}
}

// IsCommand reports whether the intent is a command
func (i Intent) IsCommand() bool {
	return i.Kind == IntentCommand
}

// ExtractedParameter is the block reference pulled out of a command.
// A nil *ExtractedParameter means no phrase pattern matched.
type ExtractedParameter struct {
	BlockName string `json:"block_name"`
}
