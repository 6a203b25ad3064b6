package memory

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a model-issued request to invoke a named tool.
// Arguments holds the raw JSON payload exactly as the endpoint sent it.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message is one entry of the conversation.
// Content is empty for assistant messages that only carry tool calls.
// ToolCallID is set only on tool messages; IsError marks tool messages
// reporting a failed call.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	IsError    bool       `json:"is_error,omitempty"`
}

// HasToolCalls reports whether m requests at least one tool invocation.
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// NewUserMessage returns a user message with the given text.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// NewToolMessage returns a tool message answering the call with the given ID.
func NewToolMessage(callID, content string, isError bool) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: callID, IsError: isError}
}

// Conversation is the append-only message history of a single run.
// It has a single writer and is not safe for concurrent use.
type Conversation struct {
	msgs []Message
}

// NewConversation returns a conversation seeded with the given messages.
func NewConversation(seed ...Message) *Conversation {
	c := &Conversation{msgs: make([]Message, 0, len(seed)+8)}
	c.msgs = append(c.msgs, seed...)
	return c
}

// Append adds messages to the end of the history.
func (c *Conversation) Append(msgs ...Message) {
	c.msgs = append(c.msgs, msgs...)
}

// Messages returns a copy of the history, oldest first.
// Callers may not mutate past entries through it.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.msgs))
	copy(out, c.msgs)
	return out
}

// Len returns the number of messages appended so far.
func (c *Conversation) Len() int { return len(c.msgs) }

// Last returns the newest message, if any.
func (c *Conversation) Last() (Message, bool) {
	if len(c.msgs) == 0 {
		return Message{}, false
	}
	return c.msgs[len(c.msgs)-1], true
}
