// ABOUTME: Scoring for routing benchmarks
// ABOUTME: Per-case pass/fail plus accuracy and a confusion count per action kind

package routing

import (
	"fmt"
	"strings"

	"github.com/aivix/bench/internal/models"
)

// PassThreshold is the accuracy a scenario needs to PASS
const PassThreshold = 0.9

// CaseResult is the outcome of one utterance
type CaseResult struct {
	Utterance string            `json:"utterance"`
	Want      models.ActionKind `json:"want"`
	Got       models.ActionKind `json:"got"`
	Passed    bool              `json:"passed"`
	Reason    string            `json:"reason,omitempty"`
}

// ScoreCase compares an action against the expected outcome
func ScoreCase(tc TestCase, got models.Action) CaseResult {
	result := CaseResult{Utterance: tc.Utterance, Want: tc.Want, Got: got.Kind}

	if got.Kind != tc.Want {
		result.Reason = fmt.Sprintf("want %s, got %s", tc.Want, got.Kind)
		return result
	}

	if tc.WantBlock != "" {
		var name string
		switch got.Kind {
		case models.ActionShowBlockDetails:
			if got.Block != nil {
				name = got.Block.Name
			}
		case models.ActionBlockNotFound:
			name = got.BlockName
		}
		if !strings.EqualFold(name, tc.WantBlock) {
			result.Reason = fmt.Sprintf("want block %q, got %q", tc.WantBlock, name)
			return result
		}
	}

	result.Passed = true
	return result
}

// Accuracy is the share of passed cases, 0 for none
func Accuracy(results []CaseResult) float64 {
	if len(results) == 0 {
		return 0
	}
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	return float64(passed) / float64(len(results))
}

// Confusion counts got-kinds per want-kind
func Confusion(results []CaseResult) map[models.ActionKind]map[models.ActionKind]int {
	out := map[models.ActionKind]map[models.ActionKind]int{}
	for _, r := range results {
		if out[r.Want] == nil {
			out[r.Want] = map[models.ActionKind]int{}
		}
		out[r.Want][r.Got]++
	}
	return out
}
