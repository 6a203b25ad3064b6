package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/petasbytes/toolloop/internal/config"
	"github.com/petasbytes/toolloop/internal/fsops"
	"github.com/petasbytes/toolloop/internal/provider"
	"github.com/petasbytes/toolloop/internal/runner"
	"github.com/petasbytes/toolloop/internal/shell"
	"github.com/petasbytes/toolloop/internal/telemetry"
	"github.com/petasbytes/toolloop/tools"
)

const diagnosticLine = "Logs from your program will appear here!"

func main() {
	// Ctrl-C (SIGINT) / SIGTERM cancel the loop and any running command.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], config.Load, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one agent invocation and returns the process exit code.
func run(ctx context.Context, args []string, load func() (config.Config, error), stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("agent", flag.ContinueOnError)
	fs.SetOutput(stderr)
	prompt := fs.String("p", "", "prompt to send to the model")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	// An empty prompt would go out as a user message without content.
	if *prompt == "" {
		fmt.Fprintln(stderr, "error: -p <prompt> is required")
		fs.Usage()
		return 2
	}

	cfg, err := load()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	telemetry.Configure(telemetry.Settings{
		Observe:         cfg.Observe,
		PersistPayloads: cfg.PersistPayloads,
		Dir:             cfg.TelemetryDir,
	})

	fmt.Fprintln(stderr, diagnosticLine)

	files, err := fsops.New(cfg.WorkDir)
	if err != nil {
		fmt.Fprintf(stderr, "error: workdir: %v\n", err)
		return 1
	}
	sh := &shell.Runner{Dir: files.Root, Timeout: cfg.ToolTimeout}
	reg, err := tools.NewDefault(files, sh, tools.BashOutput(cfg.BashOutput))
	if err != nil {
		fmt.Fprintf(stderr, "error: tools: %v\n", err)
		return 1
	}

	r := runner.New(newEndpoint(cfg), reg, runner.Options{
		Model:       cfg.EffectiveModel(),
		MaxTokens:   cfg.MaxTokens,
		MaxRounds:   cfg.MaxRounds,
		TokenBudget: cfg.TokenBudget,
	})
	r.Logger = logger

	out, err := r.Run(ctx, *prompt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(stderr, "\nExiting...")
		} else {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	fmt.Fprintln(stdout, out)
	return 0
}

func newEndpoint(cfg config.Config) provider.Endpoint {
	if cfg.Provider == config.ProviderAnthropic {
		return provider.NewAnthropic(provider.AnthropicConfig{
			APIKey:  cfg.AnthropicAPIKey,
			BaseURL: cfg.AnthropicBaseURL,
		})
	}
	return provider.NewOpenAI(provider.OpenAIConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
	})
}
