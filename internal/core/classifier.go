// ABOUTME: Keyword classifier is the deterministic first pass over an utterance
// ABOUTME: Whole-word command verbs mark a command; everything else goes to the oracle
package core

import (
	"context"
	"strings"

	"github.com/aivix/bench/internal/models"
)

// commandKeywords is a priority order: the first keyword found wins.
// Russian creation/start/add/delete/open/build forms first, then English verbs.
var commandKeywords = []string{
	"команда", "запусти", "запустить", "запуск", "создай", "создать", "создан", "созданию", "создаём", "создавать",
	"начать", "начни", "начнём", "добавь", "добавить", "добавляем", "добавление",
	"удали", "удалить", "удаляем", "удаление", "открой", "открыть", "включи", "выключи",
	"собери", "собрать", "сборка", "построй", "построить", "сделай", "сделать", "сделаем",
	"start", "run", "create", "add", "delete", "open", "enable", "disable", "build",
}

// IntentFallback classifies text the keyword pass could not
type IntentFallback interface {
	ClassifyOrFallback(ctx context.Context, text string) models.Intent
}

// KeywordClassifier decides command vs. everything else without any I/O
type KeywordClassifier struct {
	fallback IntentFallback
}

// NewKeywordClassifier creates a classifier that delegates unmatched text to fallback
func NewKeywordClassifier(fallback IntentFallback) *KeywordClassifier {
	return &KeywordClassifier{fallback: fallback}
}

// MatchKeyword returns the first command keyword that occurs as a whole word in utterance
func MatchKeyword(utterance string) (string, bool) {
	padded := " " + strings.ToLower(strings.TrimSpace(utterance)) + " "
	for _, kw := range commandKeywords {
		if strings.Contains(padded, " "+kw+" ") {
			return kw, true
		}
	}
	return "", false
}

// Classify returns a Command carrying the original utterance when a keyword matches,
// otherwise the fallback's intent unchanged
func (c *KeywordClassifier) Classify(ctx context.Context, utterance string) models.Intent {
	if _, ok := MatchKeyword(utterance); ok {
		return models.NewCommandIntent(utterance)
	}
	if c.fallback == nil {
		return models.NewTextIntent(utterance)
	}
	return c.fallback.ClassifyOrFallback(ctx, utterance)
}
