package telemetry

import (
	"context"

	"github.com/petasbytes/toolloop/internal/metrics"
	"github.com/petasbytes/toolloop/memory"
)

// EmitLocalFeatures records size features of the user prompt.
func EmitLocalFeatures(ctx context.Context, prompt string) {
	if !ObserveEnabled() {
		return
	}
	turnID, _ := TurnIDFromContext(ctx)
	f := metrics.CountFeatures(prompt)
	Emit("local_features", map[string]any{
		"turn_id":          turnID,
		"features_version": "1",
		"user": map[string]any{
			"bytes": f.Bytes,
			"runes": f.Runes,
			"words": f.Words,
			"lines": f.Lines,
		},
	})
}

// EmitLoopDone records the shape of a finished conversation and how the loop ended.
func EmitLoopDone(ctx context.Context, rounds int, msgs []memory.Message, outcome string) {
	if !ObserveEnabled() {
		return
	}
	turnID, _ := TurnIDFromContext(ctx)
	c := metrics.CountConversation(msgs)
	Emit("loop_done", map[string]any{
		"turn_id":            turnID,
		"rounds":             rounds,
		"outcome":            outcome,
		"messages":           c.Messages,
		"user_messages":      c.User,
		"assistant_messages": c.Assistant,
		"tool_messages":      c.Tool,
		"tool_calls":         c.ToolCalls,
		"tool_errors":        c.ToolErrors,
	})
}
