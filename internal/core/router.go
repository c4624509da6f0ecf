// ABOUTME: Action router turns a classified intent into exactly one Action
// ABOUTME: Block lookup, catalog panel, generic command or plain response, in that order
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/aivix/bench/internal/models"
	"go.uber.org/zap"
)

// CatalogStore is the read side of the block catalog the router depends on
type CatalogStore interface {
	FindByNameSubstring(ctx context.Context, text string) (*models.BlockDetails, error)
	FindByID(ctx context.Context, blockID string) (*models.BlockSummary, error)
	ListAll(ctx context.Context) ([]models.BlockSummary, []string, error)
}

var (
	revealVerbs = []string{"покажи", "открой", "show", "open"}
	blockNouns  = []string{"блок", "block", "боковок", "меню"}
)

// Router decides which Action an intent produces
type Router struct {
	catalog CatalogStore
	logger  *zap.Logger
}

// NewRouter creates a Router reading from catalog
func NewRouter(catalog CatalogStore, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		catalog: catalog,
		logger:  logger,
	}
}

// Route evaluates the rules top to bottom; the first applicable one wins.
// Returned errors come only from the catalog store.
func (r *Router) Route(ctx context.Context, intent models.Intent, extracted *models.ExtractedParameter) (models.Action, error) {
	if !intent.IsCommand() {
		return models.PlainResponse(intent.Text), nil
	}

	// Rule 1: a named block
	if extracted != nil {
		r.logger.Debug("looking up block by name", zap.String("block_name", extracted.BlockName))
		block, err := r.catalog.FindByNameSubstring(ctx, extracted.BlockName)
		if err != nil {
			return models.Action{}, fmt.Errorf("failed to find block %q: %w", extracted.BlockName, err)
		}
		if block == nil {
			return models.BlockNotFound(extracted.BlockName), nil
		}
		return models.ShowBlockDetails(*block), nil
	}

	// Rule 2: "show/open" + "block/menu" opens the catalog panel
	if wantsBlocksPanel(intent.Command) {
		r.logger.Debug("fetching catalog for blocks panel")
		blocks, categories, err := r.catalog.ListAll(ctx)
		if err != nil {
			return models.Action{}, fmt.Errorf("failed to list blocks: %w", err)
		}
		return models.ShowBlocksPanel(blocks, categories), nil
	}

	// Rule 3: any other command
	return models.GenericCommand(intent.Command), nil
}

// wantsBlocksPanel checks for a reveal verb and a block noun anywhere in the text
func wantsBlocksPanel(command string) bool {
	lowered := strings.ToLower(command)
	return containsAny(lowered, revealVerbs) && containsAny(lowered, blockNouns)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
