package telemetry_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/petasbytes/toolloop/internal/metrics"
	"github.com/petasbytes/toolloop/internal/telemetry"
	"github.com/petasbytes/toolloop/memory"
)

func TestEmitLocalFeatures_HappyPath(t *testing.T) {
	dir := observeInto(t, telemetry.Settings{Observe: true})

	ctx := telemetry.WithTurnID(context.Background(), "turn-xyz")
	user := "hello  world\nthis is\tgo"
	want := metrics.CountFeatures(user)

	telemetry.EmitLocalFeatures(ctx, user)

	events := readEvents(t, dir)
	m := events[len(events)-1]
	if m["event"] != "local_features" {
		t.Fatalf("event mismatch: %v", m["event"])
	}
	if m["turn_id"] != "turn-xyz" {
		t.Fatalf("turn_id mismatch: %v", m["turn_id"])
	}
	if m["features_version"] != "1" {
		t.Fatalf("features_version mismatch: %v", m["features_version"])
	}
	userMap, ok := m["user"].(map[string]any)
	if !ok {
		t.Fatalf("user field missing or wrong type: %T", m["user"])
	}
	if userMap["bytes"] != float64(want.Bytes) ||
		userMap["runes"] != float64(want.Runes) ||
		userMap["words"] != float64(want.Words) ||
		userMap["lines"] != float64(want.Lines) {
		t.Fatalf("feature mismatch: %#v vs %+v", userMap, want)
	}
}

func TestEmitLocalFeatures_GatingOff(t *testing.T) {
	dir := t.TempDir()
	telemetry.Configure(telemetry.Settings{Dir: dir})
	t.Cleanup(func() { telemetry.Configure(telemetry.Settings{}) })

	telemetry.EmitLocalFeatures(context.Background(), "hello")

	if _, err := os.Stat(filepath.Join(dir, "events.jsonl")); !os.IsNotExist(err) {
		t.Fatalf("expected no events file, got err=%v", err)
	}
}

func TestEmitLoopDone_Counts(t *testing.T) {
	dir := observeInto(t, telemetry.Settings{Observe: true})

	msgs := []memory.Message{
		memory.NewUserMessage("go"),
		{Role: memory.RoleAssistant, ToolCalls: []memory.ToolCall{{ID: "a"}, {ID: "b"}}},
		memory.NewToolMessage("a", "ok", false),
		memory.NewToolMessage("b", "{}", true),
		{Role: memory.RoleAssistant, Content: "done"},
	}
	telemetry.EmitLoopDone(telemetry.WithTurnID(context.Background(), "t-9"), 2, msgs, "done")

	events := readEvents(t, dir)
	m := events[len(events)-1]
	checks := map[string]any{
		"event":              "loop_done",
		"turn_id":            "t-9",
		"outcome":            "done",
		"rounds":             float64(2),
		"messages":           float64(5),
		"assistant_messages": float64(2),
		"tool_messages":      float64(2),
		"tool_calls":         float64(2),
		"tool_errors":        float64(1),
	}
	for k, want := range checks {
		if m[k] != want {
			t.Errorf("%s: got %v want %v", k, m[k], want)
		}
	}
}
