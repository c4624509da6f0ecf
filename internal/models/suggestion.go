// ABOUTME: Suggestion is the block advisor's answer for a free-form goal
package models

// Suggestion lists the blocks the oracle picked for a goal, in order of use.
// Blocks is the full catalog the choice was made from.
type Suggestion struct {
	RelevantBlockIDs   []string       `json:"relevantBlockIds"`
	ProcessDescription string         `json:"processDescription"`
	Blocks             []BlockSummary `json:"blocks"`
}
