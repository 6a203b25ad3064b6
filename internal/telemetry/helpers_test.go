package telemetry_test

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petasbytes/toolloop/internal/telemetry"
)

// observeInto enables emission into a fresh directory and restores the
// disabled default when the test ends.
func observeInto(t *testing.T, s telemetry.Settings) string {
	t.Helper()
	if s.Dir == "" {
		s.Dir = t.TempDir()
	}
	telemetry.Configure(s)
	t.Cleanup(func() { telemetry.Configure(telemetry.Settings{}) })
	return s.Dir
}

// readEvents returns every JSON object in dir/events.jsonl.
func readEvents(t *testing.T, dir string) []map[string]any {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, "events.jsonl"))
	if err != nil {
		t.Fatalf("open events: %v", err)
	}
	defer f.Close()

	var out []map[string]any
	s := bufio.NewScanner(f)
	for s.Scan() {
		txt := strings.TrimSpace(s.Text())
		if txt == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(txt), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", txt, err)
		}
		out = append(out, m)
	}
	if err := s.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	return out
}
