// ABOUTME: Command parameter extractor pulls a block name out of a command
// ABOUTME: Ordered, data-driven phrase patterns in Russian and English; first match wins
package core

import (
	"regexp"
	"strings"

	"github.com/aivix/bench/internal/models"
)

// blockNameClass is a run of letters (with combining marks), digits,
// underscores, hyphens and spaces
const blockNameClass = `[\p{L}\p{M}\p{N}_\- ]+`

// blockPhrase describes "<verb> [<qualifier>] <noun> <name>"
type blockPhrase struct {
	Language   string
	Verb       string
	Qualifiers []string
	// Noun is a regexp fragment so inflected forms can be expressed
	Noun string
}

var (
	ruQualifiers = []string{"настройки", "описание", "входные данные", "выходные данные"}
	enQualifiers = []string{"settings", "description", "input", "output"}
)

// blockPhrases is tried in order
var blockPhrases = []blockPhrase{
	{Language: "ru", Verb: "покажи", Qualifiers: ruQualifiers, Noun: "блок[а]?"},
	{Language: "ru", Verb: "открой", Qualifiers: ruQualifiers, Noun: "блок[а]?"},
	{Language: "en", Verb: "show", Qualifiers: enQualifiers, Noun: "block"},
	{Language: "en", Verb: "open", Qualifiers: enQualifiers, Noun: "block"},
}

// compiledPhrase pairs a phrase with its case-insensitive pattern
type compiledPhrase struct {
	blockPhrase
	re *regexp.Regexp
}

var blockPatterns = compilePhrases(blockPhrases)

// compile builds `(?i)<verb> (?:<q1> |<q2> |...|)?<noun> (<name>)`
func (p blockPhrase) compile() *regexp.Regexp {
	alternatives := make([]string, 0, len(p.Qualifiers)+1)
	for _, q := range p.Qualifiers {
		alternatives = append(alternatives, regexp.QuoteMeta(q)+" ")
	}
	alternatives = append(alternatives, "")

	expr := "(?i)" + regexp.QuoteMeta(p.Verb) + " (?:" + strings.Join(alternatives, "|") + ")?" +
		p.Noun + " (" + blockNameClass + ")"
	return regexp.MustCompile(expr)
}

func compilePhrases(phrases []blockPhrase) []compiledPhrase {
	out := make([]compiledPhrase, 0, len(phrases))
	for _, p := range phrases {
		out = append(out, compiledPhrase{blockPhrase: p, re: p.compile()})
	}
	return out
}

// ExtractBlockReference returns the block named in commandText, or nil when no
// pattern yields a non-empty name. Matching ignores case; the name keeps the
// caller's casing.
func ExtractBlockReference(commandText string) *models.ExtractedParameter {
	for _, p := range blockPatterns {
		for _, m := range p.re.FindAllStringSubmatch(commandText, -1) {
			if name := strings.TrimSpace(m[1]); name != "" {
				return &models.ExtractedParameter{BlockName: name}
			}
		}
	}
	return nil
}
