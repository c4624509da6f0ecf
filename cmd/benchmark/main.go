// ABOUTME: Command-line benchmark runner for utterance routing
// ABOUTME: Executes labeled scenarios and outputs JSON results

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aivix/bench/benchmarks/routing"
	"github.com/aivix/bench/internal/config"
	"github.com/aivix/bench/internal/core"
	"github.com/aivix/bench/internal/llm"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	testID := flag.String("test", "", "Run specific scenario (kw, oracle, text). If empty, runs all scenarios.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	keywordOnly := flag.Bool("keyword-only", false, "Do not call the oracle even if OPENAI_API_KEY is set")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (continuing anyway): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := zap.NewNop()
	if *verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
	}
	defer func() { _ = logger.Sync() }()

	var oracle core.Oracle
	if !*keywordOnly && cfg.OpenAIKey != "" {
		client, err := llm.NewOpenAIClientWithConfig(llm.ConfigFromApp(cfg))
		if err != nil {
			log.Fatalf("Failed to create OpenAI client: %v", err)
		}
		oracle = client
	}

	fmt.Println("========================================")
	fmt.Println("aivix Routing Benchmarks")
	fmt.Println("========================================")
	if oracle == nil {
		fmt.Println("Mode: keyword-only (oracle scenarios skipped)")
	} else {
		fmt.Printf("Mode: oracle (%s)\n", cfg.Model)
	}
	fmt.Println()

	runner, err := routing.NewBenchmarkRunner(oracle, cfg, logger, *verbose)
	if err != nil {
		log.Fatalf("Failed to create benchmark runner: %v", err)
	}
	defer runner.Close()

	ctx := context.Background()
	var results []routing.ScenarioResult

	if *testID == "" {
		results, err = runner.RunAllTests(ctx)
		if err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
	} else {
		scenario, ok := routing.ScenarioByID(*testID)
		if !ok {
			log.Fatalf("Unknown test ID: %s (valid options: kw, oracle, text)", *testID)
		}

		result, err := runner.RunTest(ctx, scenario)
		if err != nil {
			log.Fatalf("Test failed: %v", err)
		}
		results = []routing.ScenarioResult{result}
	}

	fmt.Println("\n========================================")
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println("========================================")

	for _, result := range results {
		fmt.Printf("\n%s: %s\n", result.TestID, result.TestName)
		if !result.Skipped {
			fmt.Printf("  Accuracy: %.2f (%d cases)\n", result.Accuracy, len(result.Cases))
			for _, c := range result.Cases {
				if !c.Passed {
					fmt.Printf("  ✗ %q: %s\n", c.Utterance, c.Reason)
				}
			}
		}
		fmt.Printf("  Status: %s\n", result.Status)
	}

	passed, failed, skipped := routing.Tally(results)
	fmt.Println("\n========================================")
	fmt.Printf("Total Scenarios: %d\n", len(results))
	fmt.Printf("Passed: %d\n", passed)
	fmt.Printf("Failed: %d\n", failed)
	fmt.Printf("Skipped: %d\n", skipped)
	fmt.Println("========================================")

	if err := runner.ExportResults(results, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}
	fmt.Printf("✓ Results exported to: %s\n", *outputPath)

	if failed > 0 {
		os.Exit(1)
	}
}
