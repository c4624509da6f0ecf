// ABOUTME: Test runner for routing benchmarks - executes scenarios and collects results
// ABOUTME: Runs labeled utterances through the pipeline over a seeded in-memory catalog

package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aivix/bench/internal/config"
	"github.com/aivix/bench/internal/core"
	"github.com/aivix/bench/internal/models"
	"github.com/aivix/bench/internal/storage/sqlite"
	"go.uber.org/zap"
)

// ScenarioResult is the scored outcome of one scenario
type ScenarioResult struct {
	TestID    string                                          `json:"test_id"`
	TestName  string                                          `json:"test_name"`
	Skipped   bool                                            `json:"skipped,omitempty"`
	Accuracy  float64                                         `json:"accuracy"`
	Status    string                                          `json:"status"`
	Duration  string                                          `json:"duration"`
	Cases     []CaseResult                                    `json:"cases"`
	Confusion map[models.ActionKind]map[models.ActionKind]int `json:"confusion"`
}

// BenchmarkRunner executes routing benchmark scenarios
type BenchmarkRunner struct {
	storage    *sqlite.Storage
	pipeline   *core.Pipeline
	withOracle bool
	verbose    bool
}

// NewBenchmarkRunner seeds a fresh in-memory catalog and wires the pipeline.
// A nil oracle runs keyword-only and skips scenarios that need the model.
func NewBenchmarkRunner(oracle core.Oracle, cfg *config.Config, logger *zap.Logger, verbose bool) (*BenchmarkRunner, error) {
	store, err := sqlite.NewStorageInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	ctx := context.Background()
	for _, block := range SeedCatalog() {
		b := block
		if err := store.SaveBlock(ctx, &b); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	return &BenchmarkRunner{
		storage:    store,
		pipeline:   core.NewPipeline(store, core.NewOracleAdapter(oracle, cfg, logger), logger),
		withOracle: oracle != nil,
		verbose:    verbose,
	}, nil
}

// Close cleans up benchmark runner resources
func (r *BenchmarkRunner) Close() {
	if r.storage != nil {
		_ = r.storage.Close()
	}
}

// RunTest executes a single scenario
func (r *BenchmarkRunner) RunTest(ctx context.Context, scenario TestScenario) (ScenarioResult, error) {
	result := ScenarioResult{TestID: scenario.ID, TestName: scenario.Name}

	if scenario.NeedsOracle && !r.withOracle {
		result.Skipped = true
		result.Status = "SKIP"
		result.Cases = []CaseResult{}
		return result, nil
	}

	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("RUNNING: %s\n", scenario.Name)
		fmt.Printf("========================================\n")
		fmt.Printf("Description: %s\n\n", scenario.Description)
	}

	start := time.Now()
	for _, tc := range scenario.Cases {
		action, err := r.pipeline.ProcessUtterance(ctx, tc.Utterance)
		if err != nil {
			return result, fmt.Errorf("utterance %q: %w", tc.Utterance, err)
		}

		scored := ScoreCase(tc, action)
		result.Cases = append(result.Cases, scored)

		if r.verbose {
			mark := "✓"
			if !scored.Passed {
				mark = "✗"
			}
			fmt.Printf("  %s %-45s %s\n", mark, tc.Utterance, scored.Got)
		}
	}

	result.Duration = time.Since(start).Round(time.Millisecond).String()
	result.Accuracy = Accuracy(result.Cases)
	result.Confusion = Confusion(result.Cases)
	result.Status = "FAIL"
	if result.Accuracy >= PassThreshold {
		result.Status = "PASS"
	}

	return result, nil
}

// RunAllTests executes every scenario in order
func (r *BenchmarkRunner) RunAllTests(ctx context.Context) ([]ScenarioResult, error) {
	results := make([]ScenarioResult, 0, len(AllScenarios()))
	for _, scenario := range AllScenarios() {
		result, err := r.RunTest(ctx, scenario)
		if err != nil {
			return results, fmt.Errorf("scenario %s: %w", scenario.ID, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// ExportResults exports scenario results to JSON
func (r *BenchmarkRunner) ExportResults(results []ScenarioResult, outputPath string) error {
	passed, failed, skipped := Tally(results)
	summary := map[string]interface{}{
		"timestamp":   time.Now().Format(time.RFC3339),
		"with_oracle": r.withOracle,
		"total_tests": len(results),
		"passed":      passed,
		"failed":      failed,
		"skipped":     skipped,
		"results":     results,
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	return nil
}

// Tally counts scenario statuses
func Tally(results []ScenarioResult) (passed, failed, skipped int) {
	for _, r := range results {
		switch r.Status {
		case "PASS":
			passed++
		case "SKIP":
			skipped++
		default:
			failed++
		}
	}
	return passed, failed, skipped
}
