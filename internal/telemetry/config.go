package telemetry

import (
	"path/filepath"
	"sync"
)

// Settings controls what telemetry writes and where.
type Settings struct {
	// Observe enables JSONL event emission to <Dir>/events.jsonl.
	Observe bool
	// PersistPayloads enables request/response dumps under <Dir>/payloads/.
	PersistPayloads bool
	// Dir is the artifacts directory; empty means ".agent".
	Dir string
}

const defaultDir = ".agent"

var (
	mu       sync.RWMutex
	settings Settings
)

// Configure replaces the active settings. It is called once at startup;
// telemetry is off until then.
func Configure(s Settings) {
	if s.Dir == "" {
		s.Dir = defaultDir
	}
	mu.Lock()
	settings = s
	mu.Unlock()
}

func current() Settings {
	mu.RLock()
	defer mu.RUnlock()
	return settings
}

// ObserveEnabled reports whether JSONL emission is on.
func ObserveEnabled() bool { return current().Observe }

// PersistPayloadsEnabled reports whether request and response payload persistence is on.
func PersistPayloadsEnabled() bool { return current().PersistPayloads }

// Dir returns the artifacts directory.
func Dir() string {
	if d := current().Dir; d != "" {
		return d
	}
	return defaultDir
}

func eventsPath() string { return filepath.Join(Dir(), "events.jsonl") }
