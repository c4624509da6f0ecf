// ABOUTME: Shared setup and output helpers for CLI commands
// ABOUTME: Builds config, logger, catalog, oracle, pipeline and advisor once per run
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aivix/bench/internal/config"
	"github.com/aivix/bench/internal/core"
	"github.com/aivix/bench/internal/llm"
	"github.com/aivix/bench/internal/storage/sqlite"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app holds everything a command needs for one invocation
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *sqlite.Storage
	pipeline *core.Pipeline
	advisor  *core.Advisor
}

// newApp loads .env and configuration, opens the catalog and wires the core
func newApp() (*app, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	oracle := newOracle(cfg, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		pipeline: core.NewPipeline(store, core.NewOracleAdapter(oracle, cfg, logger), logger),
		advisor:  core.NewAdvisor(store, oracle, cfg, logger),
	}, nil
}

// Close releases the catalog and flushes logs
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("error closing storage", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func openStore(cfg *config.Config) (*sqlite.Storage, error) {
	if cfg.DBPath != "" {
		return sqlite.NewStorageWithPath(cfg.DBPath)
	}
	return sqlite.NewStorage()
}

// newOracle returns nil when no API key is configured so the pipeline
// runs keyword-only
func newOracle(cfg *config.Config, logger *zap.Logger) core.Oracle {
	if cfg.OpenAIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, only keyword commands will be recognized")
		return nil
	}

	client, err := llm.NewOpenAIClientWithConfig(llm.ConfigFromApp(cfg))
	if err != nil {
		logger.Warn("failed to initialize OpenAI client", zap.Error(err))
		return nil
	}
	logger.Debug("OpenAI client initialized", zap.String("model", cfg.Model))
	return client
}

// newLogger builds a production logger on stderr at the level the global flags select
func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(logLevel())
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}

func logLevel() zapcore.Level {
	switch {
	case verbose:
		return zapcore.DebugLevel
	case quiet:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// wantJSON reports whether output should be JSON rather than a table
func wantJSON() bool {
	return outputFormat == "json"
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// parseTags splits a comma separated list, dropping blanks
func parseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parseSchema decodes an optional JSON object flag
func parseSchema(name, s string) (map[string]any, error) {
	if strings.TrimSpace(s) == "" {
		return map[string]any{}, nil
	}
	var schema map[string]any
	if err := json.Unmarshal([]byte(s), &schema); err != nil {
		return nil, fmt.Errorf("--%s must be a JSON object: %w", name, err)
	}
	return schema, nil
}
