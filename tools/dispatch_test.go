package tools_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/petasbytes/toolloop/internal/safety"
	"github.com/petasbytes/toolloop/memory"
	"github.com/petasbytes/toolloop/tools"
)

func memoryCall(id, name, args string) memory.ToolCall {
	return memory.ToolCall{ID: id, Name: name, Arguments: args}
}

// toolErrorOf decodes the ToolError body carried by a failed tool message.
func toolErrorOf(t *testing.T, m memory.Message) safety.ToolError {
	t.Helper()
	var te safety.ToolError
	if err := json.Unmarshal([]byte(m.Content), &te); err != nil {
		t.Fatalf("tool message is not a ToolError body: %q", m.Content)
	}
	return te
}

func TestDispatch_UnknownToolStillAnswers(t *testing.T) {
	reg := newRegistry(t)
	msg, err := reg.Dispatch(context.Background(), memoryCall("u1", "Teleport", `{}`))
	if !errors.Is(err, tools.ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
	if msg.Role != memory.RoleTool || msg.ToolCallID != "u1" || !msg.IsError {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if te := toolErrorOf(t, msg); te.Code != safety.CodeUnknownTool {
		t.Fatalf("code: got %s", te.Code)
	}
}

func TestDispatch_InvalidArguments(t *testing.T) {
	reg := newRegistry(t)
	cases := []struct {
		name string
		tool string
		args string
		want string
	}{
		{"malformed json", "Read", `{"file_path": `, "not valid JSON"},
		{"not an object", "Read", `["x"]`, "must be a JSON object"},
		{"missing required", "Write", `{"file_path":"x"}`, `"content"`},
		{"empty payload", "Bash", ``, `"command"`},
		{"wrong type", "Read", `{"file_path": 42}`, "invalid arguments"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := reg.Dispatch(context.Background(), memoryCall("c-"+tc.name, tc.tool, tc.args))
			if !errors.Is(err, tools.ErrInvalidArguments) {
				t.Fatalf("expected ErrInvalidArguments, got %v", err)
			}
			if msg.ToolCallID != "c-"+tc.name || !msg.IsError {
				t.Fatalf("unexpected message: %+v", msg)
			}
			te := toolErrorOf(t, msg)
			if te.Code != safety.CodeInvalidArguments {
				t.Fatalf("code: got %s", te.Code)
			}
			if !strings.Contains(te.Message, tc.want) {
				t.Fatalf("message %q does not mention %q", te.Message, tc.want)
			}
		})
	}
}

func TestDispatch_HandlerErrorWrapped(t *testing.T) {
	boom := tools.ToolDefinition{
		Name:        "Boom",
		InputSchema: tools.GenerateSchema[struct{}](),
		Function: func(context.Context, json.RawMessage) (string, error) {
			return "", fmt.Errorf("boom")
		},
	}
	reg, err := tools.NewRegistry(boom)
	if err != nil {
		t.Fatal(err)
	}
	msg, err := reg.Dispatch(context.Background(), memoryCall("b1", "Boom", `{}`))
	if !errors.Is(err, tools.ErrToolExecution) {
		t.Fatalf("expected ErrToolExecution, got %v", err)
	}
	te := toolErrorOf(t, msg)
	if te.Code != safety.CodeToolExecution || te.Message != "boom" {
		t.Fatalf("unexpected body: %+v", te)
	}
}

func TestDispatch_ReadNotFound(t *testing.T) {
	reg := newRegistry(t)
	msg, err := reg.Dispatch(context.Background(), memoryCall("r1", "Read", `{"file_path":"nope/missing.txt"}`))
	if !errors.Is(err, tools.ErrToolExecution) {
		t.Fatalf("expected ErrToolExecution, got %v", err)
	}
	if te := toolErrorOf(t, msg); te.Code != safety.CodeNotFound {
		t.Fatalf("code: got %s", te.Code)
	}
}

func TestDispatch_SuccessCarriesCallID(t *testing.T) {
	requireBash(t)
	reg := newRegistry(t)
	msg, err := reg.Dispatch(context.Background(), memoryCall("ok1", "Bash", `{"command":"echo hi"}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if msg.Role != memory.RoleTool || msg.ToolCallID != "ok1" || msg.IsError || msg.Content != "hi\n" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}
