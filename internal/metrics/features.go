// Package metrics derives size and shape counts used by telemetry.
package metrics

import (
	"strings"
	"unicode/utf8"

	"github.com/petasbytes/toolloop/memory"
)

// Features holds basic local text features derived from an input string.
type Features struct {
	Bytes int
	Runes int
	Words int
	Lines int
}

// CountFeatures computes and returns byte, rune, word, and line counts for the input string.
func CountFeatures(s string) Features {
	return Features{
		Bytes: len(s),
		Runes: utf8.RuneCountInString(s),
		Words: len(strings.Fields(s)),
		Lines: countLines(s),
	}
}

// countLines returns 0 for empty strings; otherwise 1 plus the number of '\n' runes.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return 1 + strings.Count(s, "\n")
}

// Conversation summarizes a message history by role and tool activity.
type Conversation struct {
	Messages   int
	User       int
	Assistant  int
	Tool       int
	ToolCalls  int
	ToolErrors int
}

// CountConversation tallies msgs.
func CountConversation(msgs []memory.Message) Conversation {
	c := Conversation{Messages: len(msgs)}
	for _, m := range msgs {
		switch m.Role {
		case memory.RoleUser:
			c.User++
		case memory.RoleAssistant:
			c.Assistant++
			c.ToolCalls += len(m.ToolCalls)
		case memory.RoleTool:
			c.Tool++
			if m.IsError {
				c.ToolErrors++
			}
		}
	}
	return c
}
