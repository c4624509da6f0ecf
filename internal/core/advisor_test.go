// ABOUTME: Tests for the block advisor
// ABOUTME: Prompt content, id filtering, retries and graceful degradation

package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aivix/bench/internal/config"
	"github.com/google/go-cmp/cmp"
)

func advisorConfig(retries int) *config.Config {
	cfg := config.Default()
	cfg.AdvisorMaxRetries = retries
	cfg.AdvisorRetryDelay = time.Millisecond
	return cfg
}

func TestBuildSuggestionPrompt(t *testing.T) {
	catalog := testCatalog()
	blocks, _, _ := catalog.ListAll(context.Background())

	prompt, err := BuildSuggestionPrompt(blocks, "отправить погоду в телеграм")
	if err != nil {
		t.Fatalf("BuildSuggestionPrompt() error = %v", err)
	}

	for _, want := range []string{
		`"block_id":"n8n-nodes-base.telegram"`,
		`"name":"HTTP Request"`,
		"'отправить погоду в телеграм'",
		`"process_description"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSuggestBlocks(t *testing.T) {
	oracle := fixedOracle(`{"block_ids": ["n8n-nodes-base.httpRequest", "made-up", "n8n-nodes-base.telegram", "n8n-nodes-base.httpRequest"], "process_description": "Fetch then send"}`)
	a := NewAdvisor(testCatalog(), oracle, advisorConfig(2), nil)

	got, err := a.SuggestBlocks(context.Background(), "погода в телеграм")
	if err != nil {
		t.Fatalf("SuggestBlocks() error = %v", err)
	}

	wantIDs := []string{"n8n-nodes-base.httpRequest", "n8n-nodes-base.telegram"}
	if diff := cmp.Diff(wantIDs, got.RelevantBlockIDs); diff != "" {
		t.Errorf("RelevantBlockIDs mismatch (-want +got):\n%s", diff)
	}
	if got.ProcessDescription != "Fetch then send" {
		t.Errorf("ProcessDescription = %q", got.ProcessDescription)
	}
	if len(got.Blocks) != 3 {
		t.Errorf("len(Blocks) = %d, want full catalog", len(got.Blocks))
	}
	if oracle.calls() != 1 {
		t.Errorf("oracle called %d times, want 1", oracle.calls())
	}
}

func TestSuggestBlocks_RetriesThenSucceeds(t *testing.T) {
	attempt := 0
	oracle := &stubOracle{respond: func(context.Context, string) (string, error) {
		attempt++
		if attempt < 3 {
			return "not json yet", nil
		}
		return `{"block_ids": ["n8n-nodes-base.set"], "process_description": "Set it"}`, nil
	}}
	a := NewAdvisor(testCatalog(), oracle, advisorConfig(3), nil)

	got, err := a.SuggestBlocks(context.Background(), "set a value")
	if err != nil {
		t.Fatalf("SuggestBlocks() error = %v", err)
	}

	if oracle.calls() != 3 {
		t.Errorf("oracle called %d times, want 3", oracle.calls())
	}
	if diff := cmp.Diff([]string{"n8n-nodes-base.set"}, got.RelevantBlockIDs); diff != "" {
		t.Errorf("RelevantBlockIDs mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggestBlocks_FailedAttemptLeavesNoIDs(t *testing.T) {
	attempt := 0
	oracle := &stubOracle{respond: func(context.Context, string) (string, error) {
		attempt++
		if attempt == 1 {
			// block_ids decodes before process_description fails
			return `{"block_ids": ["n8n-nodes-base.set"], "process_description": 5}`, nil
		}
		return `{"process_description": "second"}`, nil
	}}
	a := NewAdvisor(testCatalog(), oracle, advisorConfig(2), nil)

	got, err := a.SuggestBlocks(context.Background(), "set a value")
	if err != nil {
		t.Fatalf("SuggestBlocks() error = %v", err)
	}

	if oracle.calls() != 2 {
		t.Errorf("oracle called %d times, want 2", oracle.calls())
	}
	if len(got.RelevantBlockIDs) != 0 {
		t.Errorf("RelevantBlockIDs = %v, want none from the failed attempt", got.RelevantBlockIDs)
	}
	if got.ProcessDescription != "second" {
		t.Errorf("ProcessDescription = %q, want %q", got.ProcessDescription, "second")
	}
}

func TestSuggestBlocks_DegradesOnOracleFailure(t *testing.T) {
	oracle := failingOracle(errors.New("rate limited"))
	a := NewAdvisor(testCatalog(), oracle, advisorConfig(2), nil)

	got, err := a.SuggestBlocks(context.Background(), "anything")
	if err != nil {
		t.Fatalf("SuggestBlocks() error = %v", err)
	}

	if oracle.calls() != 3 {
		t.Errorf("oracle called %d times, want 3", oracle.calls())
	}
	if got.RelevantBlockIDs == nil || len(got.RelevantBlockIDs) != 0 {
		t.Errorf("RelevantBlockIDs = %v, want empty", got.RelevantBlockIDs)
	}
	if got.ProcessDescription != "" {
		t.Errorf("ProcessDescription = %q, want empty", got.ProcessDescription)
	}
	if len(got.Blocks) != 3 {
		t.Errorf("catalog should still be returned, got %d blocks", len(got.Blocks))
	}
}

func TestSuggestBlocks_NoOracle(t *testing.T) {
	a := NewAdvisor(testCatalog(), nil, nil, nil)

	got, err := a.SuggestBlocks(context.Background(), "anything")
	if err != nil {
		t.Fatalf("SuggestBlocks() error = %v", err)
	}
	if len(got.RelevantBlockIDs) != 0 || len(got.Blocks) != 3 {
		t.Errorf("got %+v, want empty suggestion over full catalog", got)
	}
}

func TestSuggestBlocks_CatalogError(t *testing.T) {
	a := NewAdvisor(&memCatalog{err: errStore}, fixedOracle("{}"), nil, nil)

	if _, err := a.SuggestBlocks(context.Background(), "anything"); !errors.Is(err, errStore) {
		t.Errorf("error = %v, want store error", err)
	}
}

func TestSuggestBlocks_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	oracle := &stubOracle{respond: func(context.Context, string) (string, error) {
		cancel()
		return "", errors.New("unavailable")
	}}
	cfg := advisorConfig(5)
	cfg.AdvisorRetryDelay = time.Second
	a := NewAdvisor(testCatalog(), oracle, cfg, nil)

	start := time.Now()
	got, err := a.SuggestBlocks(ctx, "anything")
	if err != nil {
		t.Fatalf("SuggestBlocks() error = %v", err)
	}

	if oracle.calls() != 1 {
		t.Errorf("oracle called %d times, want 1", oracle.calls())
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("cancellation should stop the retry wait")
	}
	if len(got.RelevantBlockIDs) != 0 {
		t.Errorf("RelevantBlockIDs = %v, want empty", got.RelevantBlockIDs)
	}
}
