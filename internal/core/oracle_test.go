// ABOUTME: Tests for the intent oracle adapter
// ABOUTME: Answer parsing, typed errors, timeout, fail-open fallback and logging

package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aivix/bench/internal/config"
	"github.com/aivix/bench/internal/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildIntentPrompt(t *testing.T) {
	prompt := BuildIntentPrompt("покажи блоки")

	if !strings.HasSuffix(prompt, "\nФраза: покажи блоки") {
		t.Errorf("prompt should end with the phrase, got %q", prompt)
	}
	if !strings.Contains(prompt, `{"type": "command", "command": "..."}`) {
		t.Error("prompt should describe the command answer shape")
	}
}

func TestClassifyViaOracle_Answers(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		want     models.Intent
		wantKind OracleErrorKind
	}{
		{
			name:   "command",
			answer: `{"type": "command", "command": "X"}`,
			want:   models.NewCommandIntent("X"),
		},
		{
			name:   "text",
			answer: `{"type": "text", "text": "просто привет"}`,
			want:   models.NewTextIntent("просто привет"),
		},
		{
			name:   "surrounding whitespace",
			answer: "\n  {\"type\": \"command\", \"command\": \"run it\"}  \n",
			want:   models.NewCommandIntent("run it"),
		},
		{
			name:     "not json",
			answer:   "Sure! This is a command.",
			wantKind: OracleMalformed,
		},
		{
			name:     "fenced json",
			answer:   "```json\n{\"type\": \"command\", \"command\": \"X\"}\n```",
			wantKind: OracleMalformed,
		},
		{
			name:     "empty answer",
			answer:   "",
			wantKind: OracleMalformed,
		},
		{
			name:     "array",
			answer:   `["command"]`,
			wantKind: OracleSchema,
		},
		{
			name:     "unknown type",
			answer:   `{"type": "question", "text": "?"}`,
			wantKind: OracleSchema,
		},
		{
			name:     "command without command field",
			answer:   `{"type": "command"}`,
			wantKind: OracleSchema,
		},
		{
			name:     "text with numeric text",
			answer:   `{"type": "text", "text": 42}`,
			wantKind: OracleSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := NewOracleAdapter(fixedOracle(tt.answer), nil, nil)

			got, err := adapter.ClassifyViaOracle(context.Background(), "input")

			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("ClassifyViaOracle() error = %v", err)
				}
				if got != tt.want {
					t.Errorf("ClassifyViaOracle() = %+v, want %+v", got, tt.want)
				}
				return
			}

			var oerr *OracleError
			if !errors.As(err, &oerr) {
				t.Fatalf("error = %v, want *OracleError", err)
			}
			if oerr.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", oerr.Kind, tt.wantKind)
			}
			if oerr.Answer != tt.answer {
				t.Errorf("Answer = %q, want %q", oerr.Answer, tt.answer)
			}
		})
	}
}

func TestClassifyViaOracle_Transport(t *testing.T) {
	boom := errors.New("connection refused")
	adapter := NewOracleAdapter(failingOracle(boom), nil, nil)

	_, err := adapter.ClassifyViaOracle(context.Background(), "input")

	var oerr *OracleError
	if !errors.As(err, &oerr) || oerr.Kind != OracleTransport {
		t.Fatalf("error = %v, want transport OracleError", err)
	}
	if !errors.Is(err, boom) {
		t.Error("transport error should wrap the cause")
	}
}

func TestClassifyViaOracle_Unavailable(t *testing.T) {
	adapter := NewOracleAdapter(nil, nil, nil)

	_, err := adapter.ClassifyViaOracle(context.Background(), "input")

	if !errors.Is(err, ErrNoOracle) {
		t.Fatalf("error = %v, want ErrNoOracle", err)
	}
}

func TestClassifyViaOracle_Timeout(t *testing.T) {
	hanging := &stubOracle{respond: func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	cfg := config.Default()
	cfg.Timeout = 10 * time.Millisecond
	adapter := NewOracleAdapter(hanging, cfg, nil)

	start := time.Now()
	_, err := adapter.ClassifyViaOracle(context.Background(), "input")

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want deadline exceeded", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("call took %v, timeout not applied", elapsed)
	}
}

func TestClassifyViaOracle_RequestUsesConfig(t *testing.T) {
	oracle := fixedOracle(`{"type": "text", "text": "hi"}`)
	cfg := config.Default()
	cfg.Model = "gpt-4o-mini"
	cfg.MaxTokens = 64
	cfg.Temperature = 0

	adapter := NewOracleAdapter(oracle, cfg, nil)
	if _, err := adapter.ClassifyViaOracle(context.Background(), "hi"); err != nil {
		t.Fatalf("ClassifyViaOracle() error = %v", err)
	}

	req := oracle.requests[0]
	if req.Model != "gpt-4o-mini" || req.MaxTokens != 64 || req.Temperature != 0 {
		t.Errorf("request = %+v, want config values", req)
	}
	if req.Prompt != BuildIntentPrompt("hi") {
		t.Errorf("Prompt = %q", req.Prompt)
	}
}

func TestClassifyOrFallback_NeverFails(t *testing.T) {
	oracles := map[string]Oracle{
		"malformed": fixedOracle("garbage"),
		"schema":    fixedOracle(`{"type": "command"}`),
		"transport": failingOracle(errors.New("503")),
		"missing":   nil,
	}

	for name, oracle := range oracles {
		t.Run(name, func(t *testing.T) {
			adapter := NewOracleAdapter(oracle, nil, nil)

			got := adapter.ClassifyOrFallback(context.Background(), "Привет!")

			if got != models.NewTextIntent("Привет!") {
				t.Errorf("ClassifyOrFallback() = %+v, want text with original input", got)
			}
		})
	}
}

func TestOracleAdapter_LogsPromptAndAnswer(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	adapter := NewOracleAdapter(fixedOracle(`{"type": "text", "text": "hi"}`), nil, zap.New(obs))

	adapter.ClassifyOrFallback(context.Background(), "hi")

	if n := logs.FilterMessage("oracle request").Len(); n != 1 {
		t.Errorf("oracle request logged %d times, want 1", n)
	}
	responses := logs.FilterMessage("oracle response").All()
	if len(responses) != 1 {
		t.Fatalf("oracle response logged %d times, want 1", len(responses))
	}
	if got := responses[0].ContextMap()["answer"]; got != `{"type": "text", "text": "hi"}` {
		t.Errorf("logged answer = %v", got)
	}
}

func TestOracleAdapter_LogsFallbackKind(t *testing.T) {
	obs, logs := observer.New(zapcore.InfoLevel)
	adapter := NewOracleAdapter(fixedOracle("nope"), nil, zap.New(obs))

	adapter.ClassifyOrFallback(context.Background(), "hi")

	entries := logs.FilterMessage("oracle classification failed, treating as text").All()
	if len(entries) != 1 {
		t.Fatalf("fallback logged %d times, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["kind"]; got != string(OracleMalformed) {
		t.Errorf("logged kind = %v, want malformed", got)
	}
}
