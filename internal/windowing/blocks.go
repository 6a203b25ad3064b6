// Package windowing selects the newest slice of a conversation that fits a
// token budget without separating tool calls from their results.
package windowing

import (
	"log/slog"

	"github.com/petasbytes/toolloop/memory"
)

// GroupKind denotes the atomic unit type when preparing a send window.
type GroupKind int

const (
	GroupSingleton GroupKind = iota
	GroupPair
)

// Group describes a contiguous span of messages [Start, End) in the original slice.
// Kind indicates whether it is a singleton or a validated tool-call pair.
type Group struct {
	Kind  GroupKind
	Start int // inclusive index into msgs
	End   int // exclusive index into msgs
}

// GroupBlocks groups messages into atomic units that preserve tool-call pairs.
// Invariants:
//   - A pair is an assistant message with N tool calls followed immediately by
//     N tool messages answering those calls in the same order.
//   - Tool messages with IsError set are treated the same for grouping.
//   - Anything that does not form a complete pair falls back to singletons.
func GroupBlocks(msgs []memory.Message) []Group {
	groups := make([]Group, 0, len(msgs))
	for i := 0; i < len(msgs); {
		m := msgs[i]
		if m.Role == memory.RoleAssistant && m.HasToolCalls() {
			reason := pairingProblem(m.ToolCalls, msgs[i+1:])
			if reason == "" {
				end := i + 1 + len(m.ToolCalls)
				groups = append(groups, Group{Kind: GroupPair, Start: i, End: end})
				i = end
				continue
			}
			slog.Debug("windowing: exclude pair", "reason", reason, "idx", i)
		}
		groups = append(groups, Group{Kind: GroupSingleton, Start: i, End: i + 1})
		i++
	}
	return groups
}

// pairingProblem returns "" when rest starts with one tool message per call,
// in call order, or a reason code otherwise.
func pairingProblem(calls []memory.ToolCall, rest []memory.Message) string {
	for k, c := range calls {
		if k >= len(rest) {
			return "missing_results"
		}
		r := rest[k]
		if r.Role != memory.RoleTool {
			return "not_followed_by_tool"
		}
		if r.ToolCallID != c.ID {
			return "result_id_mismatch"
		}
	}
	return ""
}
