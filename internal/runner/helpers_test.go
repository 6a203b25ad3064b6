package runner_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/petasbytes/toolloop/internal/fsops"
	"github.com/petasbytes/toolloop/internal/provider"
	"github.com/petasbytes/toolloop/internal/shell"
	"github.com/petasbytes/toolloop/internal/telemetry"
	"github.com/petasbytes/toolloop/memory"
	"github.com/petasbytes/toolloop/tools"
)

// scripted is an Endpoint replaying canned responses in order and recording
// every request it receives.
type scripted struct {
	mu        sync.Mutex
	responses []*provider.Response
	err       error
	requests  []provider.Request
}

func (s *scripted) Complete(_ context.Context, req provider.Request) (*provider.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return &provider.Response{Choices: []provider.Choice{{
			Message:      memory.Message{Role: memory.RoleAssistant, Content: "script exhausted"},
			FinishReason: provider.FinishReasonStop,
		}}}, nil
	}
	r := s.responses[0]
	s.responses = s.responses[1:]
	return r, nil
}

func text(content string) *provider.Response {
	return &provider.Response{Choices: []provider.Choice{{
		Message:      memory.Message{Role: memory.RoleAssistant, Content: content},
		FinishReason: provider.FinishReasonStop,
	}}}
}

func calls(cs ...memory.ToolCall) *provider.Response {
	return &provider.Response{Choices: []provider.Choice{{
		Message:      memory.Message{Role: memory.RoleAssistant, ToolCalls: cs},
		FinishReason: provider.FinishReasonToolCalls,
	}}}
}

func call(id, name, args string) memory.ToolCall {
	return memory.ToolCall{ID: id, Name: name, Arguments: args}
}

// newRegistry wires the built-in tools against a fresh temp directory.
func newRegistry(t *testing.T) (*tools.Registry, string) {
	t.Helper()
	dir := t.TempDir()
	f, err := fsops.New(dir)
	if err != nil {
		t.Fatalf("fsops.New: %v", err)
	}
	reg, err := tools.NewDefault(f, &shell.Runner{Dir: dir}, tools.BashOutputLossy)
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	return reg, dir
}

// observe enables telemetry into a temp dir for the duration of the test.
func observe(t *testing.T, s telemetry.Settings) string {
	t.Helper()
	if s.Dir == "" {
		s.Dir = t.TempDir()
	}
	telemetry.Configure(s)
	t.Cleanup(func() { telemetry.Configure(telemetry.Settings{}) })
	return s.Dir
}

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
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line: %v", err)
		}
		out = append(out, m)
	}
	return out
}

func eventsNamed(events []map[string]any, name string) []map[string]any {
	var out []map[string]any
	for _, e := range events {
		if e["event"] == name {
			out = append(out, e)
		}
	}
	return out
}

// queueTransport serves one canned HTTP body per request, in order.
type queueTransport struct {
	mu     sync.Mutex
	bodies []string
	seen   [][]byte
}

func (q *queueTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	b, _ := io.ReadAll(req.Body)
	_ = req.Body.Close()

	q.mu.Lock()
	defer q.mu.Unlock()
	q.seen = append(q.seen, b)
	body := `{"choices":[]}`
	if len(q.bodies) > 0 {
		body, q.bodies = q.bodies[0], q.bodies[1:]
	}
	resp := &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
		Request:    req,
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp, nil
}
