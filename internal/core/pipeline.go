// ABOUTME: Pipeline is the single entry point from raw utterance to Action
// ABOUTME: classify → extract block reference → route; holds no per-request state
package core

import (
	"context"

	"github.com/aivix/bench/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pipeline wires the classifier, extractor and router together
type Pipeline struct {
	classifier *KeywordClassifier
	router     *Router
	logger     *zap.Logger
}

// NewPipeline creates a pipeline over catalog, classifying ambiguous text with adapter
func NewPipeline(catalog CatalogStore, adapter *OracleAdapter, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if adapter == nil {
		adapter = NewOracleAdapter(nil, nil, logger)
	}
	return &Pipeline{
		classifier: NewKeywordClassifier(adapter),
		router:     NewRouter(catalog, logger),
		logger:     logger,
	}
}

// ProcessUtterance runs one utterance through the pipeline.
// Oracle failures are absorbed; a returned error means the catalog store failed.
func (p *Pipeline) ProcessUtterance(ctx context.Context, text string) (models.Action, error) {
	log := p.logger.With(zap.String("request_id", uuid.New().String()[:8]))
	log.Info("processing utterance", zap.String("text", text))

	intent := p.classifier.Classify(ctx, text)

	var extracted *models.ExtractedParameter
	if intent.IsCommand() {
		log.Info("classified as command", zap.String("command", intent.Command))
		extracted = ExtractBlockReference(intent.Command)
	} else {
		log.Info("classified as text", zap.String("text", intent.Text))
	}

	action, err := p.router.Route(ctx, intent, extracted)
	if err != nil {
		log.Error("routing failed", zap.Error(err))
		return models.Action{}, err
	}

	log.Info("routed", zap.String("action", string(action.Kind)))
	return action, nil
}
