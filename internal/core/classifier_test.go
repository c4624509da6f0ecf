// ABOUTME: Tests for the keyword classifier
// ABOUTME: Whole-word matching, casing preservation and oracle delegation

package core

import (
	"context"
	"testing"

	"github.com/aivix/bench/internal/models"
)

func TestMatchKeyword(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		wantKw    string
		wantOK    bool
	}{
		{"russian start", "Запусти процесс", "запусти", true},
		{"russian create", "создай новый блок", "создай", true},
		{"english run", "please run the build", "run", true},
		{"keyword alone", "delete", "delete", true},
		{"surrounding whitespace", "  open  ", "open", true},
		{"priority order", "create and start", "start", true},
		{"substring only", "the engine started", "", false},
		{"prefix of larger word", "открыто", "", false},
		{"greeting", "Привет, как дела?", "", false},
		{"empty", "", "", false},
		{"whitespace only", " \t\n ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kw, ok := MatchKeyword(tt.utterance)
			if ok != tt.wantOK {
				t.Fatalf("MatchKeyword(%q) ok = %v, want %v", tt.utterance, ok, tt.wantOK)
			}
			if kw != tt.wantKw {
				t.Errorf("MatchKeyword(%q) = %q, want %q", tt.utterance, kw, tt.wantKw)
			}
		})
	}
}

func TestKeywordClassifier_CommandKeepsOriginalText(t *testing.T) {
	oracle := fixedOracle(`{"type": "text", "text": "unused"}`)
	c := NewKeywordClassifier(NewOracleAdapter(oracle, nil, nil))

	intent := c.Classify(context.Background(), "Запусти Процесс СЕЙЧАС")

	if intent.Kind != models.IntentCommand {
		t.Fatalf("Kind = %v, want command", intent.Kind)
	}
	if intent.Command != "Запусти Процесс СЕЙЧАС" {
		t.Errorf("Command = %q, want original text", intent.Command)
	}
	if oracle.calls() != 0 {
		t.Errorf("oracle called %d times, want 0", oracle.calls())
	}
}

func TestKeywordClassifier_SubstringFallsThroughToOracle(t *testing.T) {
	oracle := fixedOracle(`{"type": "text", "text": "the engine started"}`)
	c := NewKeywordClassifier(NewOracleAdapter(oracle, nil, nil))

	intent := c.Classify(context.Background(), "the engine started")

	if oracle.calls() != 1 {
		t.Fatalf("oracle called %d times, want 1", oracle.calls())
	}
	if intent != models.NewTextIntent("the engine started") {
		t.Errorf("intent = %+v, want text", intent)
	}
}

func TestKeywordClassifier_WhitespaceGoesToOracle(t *testing.T) {
	oracle := fixedOracle(`{"type": "text", "text": "   "}`)
	c := NewKeywordClassifier(NewOracleAdapter(oracle, nil, nil))

	intent := c.Classify(context.Background(), "   ")

	if oracle.calls() != 1 {
		t.Fatalf("oracle called %d times, want 1", oracle.calls())
	}
	if intent.Kind != models.IntentText {
		t.Errorf("Kind = %v, want plain text", intent.Kind)
	}
}

func TestKeywordClassifier_OracleCommand(t *testing.T) {
	oracle := fixedOracle(`{"type": "command", "command": "покажи блоки"}`)
	c := NewKeywordClassifier(NewOracleAdapter(oracle, nil, nil))

	intent := c.Classify(context.Background(), "покажи блоки")

	if intent != models.NewCommandIntent("покажи блоки") {
		t.Errorf("intent = %+v, want command", intent)
	}
}

func TestKeywordClassifier_NilFallback(t *testing.T) {
	c := NewKeywordClassifier(nil)

	intent := c.Classify(context.Background(), "hello")

	if intent != models.NewTextIntent("hello") {
		t.Errorf("intent = %+v, want text", intent)
	}
}
