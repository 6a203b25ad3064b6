package windowing_test

import (
	"github.com/petasbytes/toolloop/internal/windowing"
	"github.com/petasbytes/toolloop/memory"
)

// User message constructor
func User(text string) memory.Message { return memory.NewUserMessage(text) }

// Assistant text message constructor
func Text(text string) memory.Message {
	return memory.Message{Role: memory.RoleAssistant, Content: text}
}

// Assistant message requesting tool calls with the given IDs (empty name and arguments)
func Calls(ids ...string) memory.Message {
	m := memory.Message{Role: memory.RoleAssistant}
	for _, id := range ids {
		m.ToolCalls = append(m.ToolCalls, memory.ToolCall{ID: id})
	}
	return m
}

// Tool result constructor
func Result(id, content string, isErr bool) memory.Message {
	return memory.NewToolMessage(id, content, isErr)
}

func groupsEqual(a, b []windowing.Group) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
