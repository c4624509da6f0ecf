// ABOUTME: Intent oracle adapter: asks a remote model whether text is a command
// ABOUTME: Returns typed OracleErrors internally and fails open to plain text for callers
package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aivix/bench/internal/config"
	"github.com/aivix/bench/internal/llm"
	"github.com/aivix/bench/internal/models"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
)

// Oracle is the remote completion call behind intent classification
type Oracle interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
}

// OracleErrorKind says which stage of the oracle call failed
type OracleErrorKind string

const (
	// OracleUnavailable - no oracle configured (e.g. missing API key)
	OracleUnavailable OracleErrorKind = "unavailable"

	// OracleTransport - the call itself failed or timed out
	OracleTransport OracleErrorKind = "transport"

	// OracleMalformed - the answer is not a JSON object
	OracleMalformed OracleErrorKind = "malformed"

	// OracleSchema - the answer is JSON but not the instructed shape
	OracleSchema OracleErrorKind = "schema"
)

// ErrNoOracle is wrapped by OracleUnavailable errors
var ErrNoOracle = errors.New("intent oracle not configured")

// OracleError is a failed classification. It never reaches end users.
type OracleError struct {
	Kind   OracleErrorKind
	Answer string
	Err    error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle %s: %v", e.Kind, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

// intentAnswerSchema is the two-field object the prompt asks for
const intentAnswerSchema = `{
	"type": "object",
	"required": ["type"],
	"properties": {
		"type": {"enum": ["command", "text"]}
	},
	"oneOf": [
		{
			"properties": {"type": {"const": "command"}, "command": {"type": "string"}},
			"required": ["command"]
		},
		{
			"properties": {"type": {"const": "text"}, "text": {"type": "string"}},
			"required": ["text"]
		}
	]
}`

var intentAnswer = jsonschema.MustCompileString("intent_answer.json", intentAnswerSchema)

// BuildIntentPrompt returns the instruction prompt for one phrase
func BuildIntentPrompt(text string) string {
	return "Ты ассистент, который определяет, является ли фраза командой для автоматизации " +
		"(например, 'создай блок', 'запусти процесс') или обычным текстом для общения. " +
		`Ответь строго в формате JSON: {"type": "command", "command": "..."} или {"type": "text", "text": "..."}.` + "\n" +
		"Фраза: " + text
}

// OracleAdapter wraps an Oracle with prompt building, answer validation and fallback
type OracleAdapter struct {
	oracle      Oracle
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	logger      *zap.Logger
}

// NewOracleAdapter creates an adapter. A nil oracle makes every call fail as unavailable.
func NewOracleAdapter(oracle Oracle, cfg *config.Config, logger *zap.Logger) *OracleAdapter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OracleAdapter{
		oracle:      oracle,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
		logger:      logger,
	}
}

// ClassifyViaOracle makes exactly one oracle call and maps the answer to an Intent.
// Every failure is returned as *OracleError.
func (a *OracleAdapter) ClassifyViaOracle(ctx context.Context, text string) (models.Intent, error) {
	if a.oracle == nil {
		return models.Intent{}, &OracleError{Kind: OracleUnavailable, Err: ErrNoOracle}
	}

	prompt := BuildIntentPrompt(text)
	a.logger.Debug("oracle request", zap.String("model", a.model), zap.String("prompt", prompt))

	callCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	answer, err := a.oracle.Complete(callCtx, llm.CompletionRequest{
		Prompt:      prompt,
		Model:       a.model,
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	})
	if err != nil {
		a.logger.Warn("oracle error", zap.Error(err))
		return models.Intent{}, &OracleError{Kind: OracleTransport, Err: err}
	}
	a.logger.Debug("oracle response", zap.String("answer", answer))

	return parseIntentAnswer(answer)
}

// ClassifyOrFallback classifies via the oracle and degrades to PlainText{text} on any failure
func (a *OracleAdapter) ClassifyOrFallback(ctx context.Context, text string) models.Intent {
	intent, err := a.ClassifyViaOracle(ctx, text)
	if err != nil {
		var oerr *OracleError
		kind := OracleErrorKind("unknown")
		if errors.As(err, &oerr) {
			kind = oerr.Kind
		}
		a.logger.Info("oracle classification failed, treating as text",
			zap.String("kind", string(kind)), zap.Error(err))
		return models.NewTextIntent(text)
	}
	return intent
}

// parseIntentAnswer decodes and validates the oracle's JSON answer
func parseIntentAnswer(answer string) (models.Intent, error) {
	raw := strings.TrimSpace(answer)

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return models.Intent{}, &OracleError{Kind: OracleMalformed, Answer: answer, Err: err}
	}
	if err := intentAnswer.Validate(doc); err != nil {
		return models.Intent{}, &OracleError{Kind: OracleSchema, Answer: answer, Err: err}
	}

	var parsed struct {
		Type    models.IntentKind `json:"type"`
		Command string            `json:"command"`
		Text    string            `json:"text"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return models.Intent{}, &OracleError{Kind: OracleMalformed, Answer: answer, Err: err}
	}

	if parsed.Type == models.IntentCommand {
		return models.NewCommandIntent(parsed.Command), nil
	}
	return models.NewTextIntent(parsed.Text), nil
}
