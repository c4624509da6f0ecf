// ABOUTME: Block advisor asks the oracle which catalog blocks serve a stated goal
// ABOUTME: Retries with backoff, drops unknown ids, degrades to an empty suggestion
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aivix/bench/internal/config"
	"github.com/aivix/bench/internal/llm"
	"github.com/aivix/bench/internal/models"
	"github.com/aivix/bench/internal/util"
	"go.uber.org/zap"
)

// BlockLister is the part of the catalog the advisor reads
type BlockLister interface {
	ListAll(ctx context.Context) ([]models.BlockSummary, []string, error)
}

// Advisor suggests an ordered set of blocks for a free-form goal
type Advisor struct {
	catalog     BlockLister
	oracle      Oracle
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	maxRetries  int
	retryDelay  time.Duration
	logger      *zap.Logger
}

// NewAdvisor creates an Advisor. A nil oracle always yields an empty suggestion.
func NewAdvisor(catalog BlockLister, oracle Oracle, cfg *config.Config, logger *zap.Logger) *Advisor {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{
		catalog:     catalog,
		oracle:      oracle,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
		maxRetries:  cfg.AdvisorMaxRetries,
		retryDelay:  cfg.AdvisorRetryDelay,
		logger:      logger,
	}
}

// promptBlock is the subset of a block shown to the model
type promptBlock struct {
	BlockID           string   `json:"block_id"`
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Description       string   `json:"description"`
	CustomDescription string   `json:"custom_description"`
	Tags              []string `json:"tags"`
}

// BuildSuggestionPrompt lists the catalog and the user's goal
func BuildSuggestionPrompt(blocks []models.BlockSummary, query string) (string, error) {
	listed := make([]promptBlock, 0, len(blocks))
	for _, b := range blocks {
		listed = append(listed, promptBlock{
			BlockID:           b.BlockID,
			Name:              b.Name,
			Category:          b.Category,
			Description:       b.Description,
			CustomDescription: b.CustomDescription,
			Tags:              b.Tags,
		})
	}
	data, err := json.Marshal(listed)
	if err != nil {
		return "", fmt.Errorf("failed to marshal block list: %w", err)
	}

	return "Вот список блоков n8n (каждый с block_id, name, description, category, tags):\n" +
		string(data) + "\n" +
		"Пользователь хочет: '" + query + "'.\n" +
		`Выбери подходящие блоки, опиши порядок их использования, верни JSON строго в формате: {"block_ids": [block_id, ...], "process_description": "..."}.`, nil
}

// SuggestBlocks returns the oracle's pick from the catalog. Only catalog
// failures are errors; oracle failures give empty ids and description.
func (a *Advisor) SuggestBlocks(ctx context.Context, query string) (models.Suggestion, error) {
	blocks, _, err := a.catalog.ListAll(ctx)
	if err != nil {
		return models.Suggestion{}, fmt.Errorf("failed to list blocks: %w", err)
	}

	suggestion := models.Suggestion{
		RelevantBlockIDs: []string{},
		Blocks:           blocks,
	}

	if a.oracle == nil {
		a.logger.Info("no oracle configured, returning empty suggestion")
		return suggestion, nil
	}

	prompt, err := BuildSuggestionPrompt(blocks, query)
	if err != nil {
		return suggestion, err
	}
	a.logger.Debug("advisor request", zap.String("prompt", prompt))

	var answer suggestionAnswer
	err = util.Do(ctx, a.maxRetries, a.retryDelay, func(ctx context.Context) error {
		callCtx := ctx
		if a.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, a.timeout)
			defer cancel()
		}

		raw, err := a.oracle.Complete(callCtx, llm.CompletionRequest{
			Prompt:      prompt,
			Model:       a.model,
			Temperature: a.temperature,
			MaxTokens:   a.maxTokens,
		})
		if err != nil {
			return err
		}
		a.logger.Debug("advisor response", zap.String("answer", raw))

		// decode into a fresh value so a failed attempt leaves nothing behind
		var decoded suggestionAnswer
		if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &decoded); err != nil {
			return err
		}
		answer = decoded
		return nil
	})
	if err != nil {
		a.logger.Warn("advisor oracle failed, returning empty suggestion", zap.Error(err))
		return suggestion, nil
	}

	suggestion.RelevantBlockIDs = knownIDs(answer.BlockIDs, blocks, a.logger)
	suggestion.ProcessDescription = answer.ProcessDescription
	return suggestion, nil
}

type suggestionAnswer struct {
	BlockIDs           []string `json:"block_ids"`
	ProcessDescription string   `json:"process_description"`
}

// knownIDs keeps the ids that exist in blocks, preserving order and dropping duplicates
func knownIDs(ids []string, blocks []models.BlockSummary, logger *zap.Logger) []string {
	known := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		known[b.BlockID] = true
	}

	out := []string{}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !known[id] {
			logger.Debug("dropping unknown block id from suggestion", zap.String("block_id", id))
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
