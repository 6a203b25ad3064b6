package windowing

import (
	"unicode/utf8"

	"github.com/petasbytes/toolloop/memory"
)

// TokenCounter estimates input-token cost for messages or groups.
type TokenCounter interface {
	CountMessage(m memory.Message) int
	CountGroup(g Group, all []memory.Message) int
}

// HeuristicCounter is the default deterministic estimator.
// Rules:
//   - every message costs its content rune count plus a fixed overhead
//   - every tool call adds the runes of its name and arguments plus the same overhead
type HeuristicCounter struct{}

// Fixed per-item overhead for deterministic counts; changing this requires updating the tests.
const blockOverhead = 4

func (HeuristicCounter) CountMessage(m memory.Message) int {
	total := utf8.RuneCountInString(m.Content) + blockOverhead
	for _, c := range m.ToolCalls {
		total += utf8.RuneCountInString(c.Name) + utf8.RuneCountInString(c.Arguments) + blockOverhead
	}
	return total
}

func (h HeuristicCounter) CountGroup(g Group, all []memory.Message) int {
	total := 0
	for i := g.Start; i < g.End && i < len(all); i++ {
		total += h.CountMessage(all[i])
	}
	return total
}
