// Package telemetry writes machine-readable run events and payload dumps.
package telemetry

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Emit writes a single JSON line to <Dir>/events.jsonl when observation is on.
// It augments fields with RFC3339Nano time and the event name. Failures are
// logged and otherwise ignored.
func Emit(name string, fields map[string]any) {
	if !ObserveEnabled() {
		return
	}

	// Make a shallow copy so callers' maps aren't mutated.
	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		slog.Warn("telemetry: marshal", "event", name, "err", err)
		return
	}

	path := eventsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		slog.Warn("telemetry: mkdir", "dir", filepath.Dir(path), "err", err)
		return
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Warn("telemetry: open", "path", path, "err", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		slog.Warn("telemetry: write", "path", path, "err", err)
	}
}
