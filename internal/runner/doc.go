// Package runner drives the agent loop: it sends the conversation to the
// model endpoint and dispatches the tool calls the model requests.
//
// States:
//
//	REQUEST  -> send history + tool specs; FATAL when no choice comes back
//	DISPATCH -> run every tool call of the newest assistant message in order
//	DONE     -> the response carried no tool calls; its content is the result
//	FATAL    -> endpoint error, empty response, round cap or cancellation
//
// Invariant:
//   - an assistant message with N tool calls is followed by exactly N tool
//     messages in call order, including for unknown tools and failed calls.
//
// Flow:
//
//	user(text) -> assistant(tool_calls) -> tool(result)... -> assistant(text)
package runner
