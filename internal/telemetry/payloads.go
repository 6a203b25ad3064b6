package telemetry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// PersistPayload writes v as indented JSON to <Dir>/payloads/<turnID>-<round>-<kind>.json
// when payload persistence is on. It returns the written path, or "" when
// disabled or on failure.
func PersistPayload(turnID string, round int, kind string, v any) string {
	if !PersistPayloadsEnabled() {
		return ""
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		slog.Warn("telemetry: marshal payload", "kind", kind, "err", err)
		return ""
	}
	dir := filepath.Join(Dir(), "payloads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Warn("telemetry: mkdir", "dir", dir, "err", err)
		return ""
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%03d-%s.json", turnID, round, kind))
	if err := os.WriteFile(path, b, 0o644); err != nil {
		slog.Warn("telemetry: write payload", "path", path, "err", err)
		return ""
	}
	return path
}
