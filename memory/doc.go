// Package memory holds the in-process conversation state for one agent run.
//
// Model:
//   - Messages are kept oldest→newest and only ever appended.
//   - Assistant messages may carry tool calls; each tool call is answered by
//     exactly one tool message referencing its ID.
//   - Nothing here is persisted; the state lives for a single invocation.
package memory
