// ABOUTME: Labeled utterances and the seed catalog for routing benchmarks
// ABOUTME: Each scenario groups utterances with the action they must produce

package routing

import "github.com/aivix/bench/internal/models"

// TestScenario is a named group of labeled utterances
type TestScenario struct {
	ID          string
	Name        string
	Description string
	// NeedsOracle marks scenarios that cannot pass keyword-only
	NeedsOracle bool
	Cases       []TestCase
}

// TestCase is one utterance and its expected outcome
type TestCase struct {
	Utterance string
	Want      models.ActionKind
	// WantBlock is the block name (details) or the requested name (not found)
	WantBlock string
}

// SeedCatalog is the catalog every scenario runs against
func SeedCatalog() []models.BlockDetails {
	return []models.BlockDetails{
		{BlockSummary: models.BlockSummary{BlockID: "n8n-nodes-base.httpRequest", Name: "HTTP Request", Category: "Core Nodes", Description: "Makes an HTTP request and returns the response data"}},
		{BlockSummary: models.BlockSummary{BlockID: "n8n-nodes-base.set", Name: "Set-Variable", Category: "Core Nodes", Description: "Sets values on items"}},
		{BlockSummary: models.BlockSummary{BlockID: "n8n-nodes-base.telegram", Name: "Telegram", Category: "Communication", Description: "Sends data to Telegram"}},
		{BlockSummary: models.BlockSummary{BlockID: "n8n-nodes-base.googleSheets", Name: "Google Sheets", Category: "Productivity", Description: "Read, update and write data to Google Sheets"}},
		{BlockSummary: models.BlockSummary{BlockID: "n8n-nodes-base.cron", Name: "Cron", Category: "Core Nodes", Description: "Triggers the workflow at a specific time"}},
	}
}

// GetKeywordScenario covers utterances the keyword pass decides alone
func GetKeywordScenario() TestScenario {
	return TestScenario{
		ID:          "kw",
		Name:        "Keyword commands",
		Description: "Whole-word command verbs route without the oracle",
		Cases: []TestCase{
			{Utterance: "открой блок HTTP Request", Want: models.ActionShowBlockDetails, WantBlock: "HTTP Request"},
			{Utterance: "открой настройки блока Telegram", Want: models.ActionShowBlockDetails, WantBlock: "Telegram"},
			{Utterance: "open block Set-Variable", Want: models.ActionShowBlockDetails, WantBlock: "Set-Variable"},
			{Utterance: "open block google sheets", Want: models.ActionShowBlockDetails, WantBlock: "Google Sheets"},
			{Utterance: "открой блок Jira", Want: models.ActionBlockNotFound, WantBlock: "Jira"},
			{Utterance: "открой меню", Want: models.ActionShowBlocksPanel},
			{Utterance: "open the blocks menu", Want: models.ActionShowBlocksPanel},
			{Utterance: "запусти процесс", Want: models.ActionGenericCommand},
			{Utterance: "создай новый сценарий", Want: models.ActionGenericCommand},
			{Utterance: "run the workflow", Want: models.ActionGenericCommand},
			{Utterance: "удали последний шаг", Want: models.ActionGenericCommand},
		},
	}
}

// GetOracleScenario covers phrasings only the oracle can classify as commands
func GetOracleScenario() TestScenario {
	return TestScenario{
		ID:          "oracle",
		Name:        "Oracle commands",
		Description: "No keyword present; the model must recognize the command",
		NeedsOracle: true,
		Cases: []TestCase{
			{Utterance: "покажи блок Cron", Want: models.ActionShowBlockDetails, WantBlock: "Cron"},
			{Utterance: "покажи описание блока HTTP Request", Want: models.ActionShowBlockDetails, WantBlock: "HTTP Request"},
			{Utterance: "show block Telegram", Want: models.ActionShowBlockDetails, WantBlock: "Telegram"},
			{Utterance: "покажи блоки", Want: models.ActionShowBlocksPanel},
		},
	}
}

// GetConversationScenario covers small talk that must stay plain text
func GetConversationScenario() TestScenario {
	return TestScenario{
		ID:          "text",
		Name:        "Conversation",
		Description: "Greetings and questions are answered as text",
		Cases: []TestCase{
			{Utterance: "Привет, как дела?", Want: models.ActionPlainResponse},
			{Utterance: "спасибо, было полезно", Want: models.ActionPlainResponse},
			{Utterance: "what a nice day", Want: models.ActionPlainResponse},
		},
	}
}

// AllScenarios returns every scenario in run order
func AllScenarios() []TestScenario {
	return []TestScenario{GetKeywordScenario(), GetOracleScenario(), GetConversationScenario()}
}

// ScenarioByID finds a scenario, reporting whether it exists
func ScenarioByID(id string) (TestScenario, bool) {
	for _, s := range AllScenarios() {
		if s.ID == id {
			return s, true
		}
	}
	return TestScenario{}, false
}
