package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/petasbytes/toolloop/internal/provider"
	"github.com/petasbytes/toolloop/internal/telemetry"
	"github.com/petasbytes/toolloop/internal/windowing"
	"github.com/petasbytes/toolloop/memory"
	"github.com/petasbytes/toolloop/tools"
	"github.com/tidwall/gjson"
)

var (
	// ErrNoChoices means the endpoint answered without any candidate message.
	ErrNoChoices = errors.New("endpoint returned no choices")
	// ErrMaxRounds means the model was still requesting tools when the round cap was hit.
	ErrMaxRounds = errors.New("round limit reached")
	// ErrWindowOverBudget means the newest message group alone exceeds the token budget.
	ErrWindowOverBudget = errors.New("newest message group exceeds token budget")
)

// Loop outcomes reported in the loop_done event.
const (
	OutcomeDone      = "done"
	OutcomeNoChoices = "no_choices"
	OutcomeMaxRounds = "max_rounds"
	OutcomeCanceled  = "canceled"
	OutcomeError     = "error"
)

// Options tune a Runner. Zero MaxRounds and TokenBudget disable the round cap
// and the send window respectively.
type Options struct {
	Model       string
	MaxTokens   int
	MaxRounds   int
	TokenBudget int
}

type Runner struct {
	Endpoint provider.Endpoint
	Tools    *tools.Registry
	Options  Options
	Counter  windowing.TokenCounter
	Logger   *slog.Logger
}

func New(ep provider.Endpoint, reg *tools.Registry, opts Options) *Runner {
	return &Runner{
		Endpoint: ep,
		Tools:    reg,
		Options:  opts,
		Counter:  windowing.HeuristicCounter{},
		Logger:   slog.Default(),
	}
}

// Run starts a conversation from prompt and loops until the model stops
// requesting tools. It returns the content of the final assistant message.
func (r *Runner) Run(ctx context.Context, prompt string) (string, error) {
	ctx, _ = telemetry.EnsureTurnID(ctx)
	telemetry.EmitLocalFeatures(ctx, prompt)
	conv := memory.NewConversation(memory.NewUserMessage(prompt))
	return r.Loop(ctx, conv)
}

// Loop runs REQUEST/DISPATCH rounds over conv, appending every assistant and
// tool message to it. Tool failures are reported to the model and never end
// the loop; endpoint failures, an empty response, the round cap and context
// cancellation do.
func (r *Runner) Loop(ctx context.Context, conv *memory.Conversation) (string, error) {
	ctx, _ = telemetry.EnsureTurnID(ctx)
	rounds := 0
	finish := func(outcome string) {
		telemetry.EmitLoopDone(ctx, rounds, conv.Messages(), outcome)
	}

	for {
		if err := ctx.Err(); err != nil {
			finish(OutcomeCanceled)
			return "", err
		}

		rounds++
		choice, err := r.RunOneStep(ctx, rounds, conv.Messages())
		if err != nil {
			if errors.Is(err, ErrNoChoices) {
				finish(OutcomeNoChoices)
			} else if ctx.Err() != nil {
				finish(OutcomeCanceled)
			} else {
				finish(OutcomeError)
			}
			return "", err
		}

		msg := choice.Message
		msg.Role = memory.RoleAssistant
		conv.Append(msg)

		if !msg.HasToolCalls() {
			if choice.FinishReason != provider.FinishReasonStop {
				r.logger().Warn("runner: final message without stop finish reason", "finish_reason", choice.FinishReason, "round", rounds)
			}
			finish(OutcomeDone)
			return msg.Content, nil
		}

		r.logger().Debug("runner: dispatch", "round", rounds, "calls", len(msg.ToolCalls))
		for _, call := range msg.ToolCalls {
			conv.Append(r.dispatch(ctx, call))
		}

		if r.Options.MaxRounds > 0 && rounds >= r.Options.MaxRounds {
			finish(OutcomeMaxRounds)
			return "", fmt.Errorf("%w: %d", ErrMaxRounds, r.Options.MaxRounds)
		}
	}
}

// RunOneStep performs a single REQUEST: it prepares the send window, calls
// the endpoint and returns the first choice.
func (r *Runner) RunOneStep(ctx context.Context, round int, history []memory.Message) (provider.Choice, error) {
	turnID, _ := telemetry.TurnIDFromContext(ctx)

	window := history
	if budget := r.Options.TokenBudget; budget > 0 {
		var stats windowing.Stats
		window, stats = windowing.PrepareSendWindow(history, budget, r.counter())

		telemetry.Emit("window_prepared", map[string]any{
			"turn_id":            turnID,
			"round":              round,
			"model":              r.Options.Model,
			"budget":             stats.Budget,
			"total_estimated":    stats.Total,
			"included_groups":    stats.IncludedGroups,
			"skipped_groups":     stats.SkippedGroups,
			"over_budget_newest": stats.OverBudgetNewest,
		})
		r.logger().Debug("runner: window", "budget", stats.Budget, "est_total", stats.Total,
			"groups_in", stats.IncludedGroups, "groups_skip", stats.SkippedGroups)

		if stats.OverBudgetNewest {
			return provider.Choice{}, fmt.Errorf("%w (budget %d)", ErrWindowOverBudget, budget)
		}
	}

	req := provider.Request{
		Model:     r.Options.Model,
		MaxTokens: r.Options.MaxTokens,
		Messages:  window,
		Tools:     r.Tools.Specs(),
	}
	telemetry.PersistPayload(turnID, round, "request", req)

	resp, err := r.Endpoint.Complete(ctx, req)
	if err != nil {
		return provider.Choice{}, fmt.Errorf("endpoint: %w", err)
	}
	telemetry.PersistPayload(turnID, round, "response", resp)

	if resp == nil || len(resp.Choices) == 0 {
		return provider.Choice{}, ErrNoChoices
	}
	return resp.Choices[0], nil
}

// dispatch runs one tool call and records a tool_exec event. Only sizes and
// the error code are recorded, never the payloads.
func (r *Runner) dispatch(ctx context.Context, call memory.ToolCall) memory.Message {
	turnID, _ := telemetry.TurnIDFromContext(ctx)
	start := time.Now()

	msg, err := r.Tools.Dispatch(ctx, call)

	var code any
	if msg.IsError {
		code = gjson.Get(msg.Content, "code").String()
	}
	telemetry.Emit("tool_exec", map[string]any{
		"tool_name":   call.Name,
		"duration_ms": time.Since(start).Milliseconds(),
		"input_size":  len(call.Arguments),
		"output_size": len(msg.Content),
		"error":       code,
		"turn_id":     turnID,
	})
	if err != nil {
		r.logger().Debug("runner: tool failed", "tool", call.Name, "id", call.ID, "err", err)
	} else {
		r.logger().Debug("runner: tool ok", "tool", call.Name, "id", call.ID)
	}
	return msg
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Runner) counter() windowing.TokenCounter {
	if r.Counter != nil {
		return r.Counter
	}
	return windowing.HeuristicCounter{}
}
