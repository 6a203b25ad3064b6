// Package shell runs tool commands through bash and captures their output.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Result holds the captured outcome of one command.
type Result struct {
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	ExitCode   int    `json:"exit_code"`
	TimedOut   bool   `json:"timed_out"`
	DurationMs int64  `json:"duration_ms"`
}

// Lossy returns stderr when the command exited non-zero and stdout otherwise.
// A failing command that wrote nothing to stderr yields "" even if stdout has
// content, and warnings on stderr are dropped for successful commands.
func (r Result) Lossy() string {
	if r.ExitCode != 0 {
		return r.Stderr
	}
	return r.Stdout
}

// Combined returns stdout followed by stderr, separated by a newline when both are present.
func (r Result) Combined() string {
	if r.Stderr == "" {
		return r.Stdout
	}
	if r.Stdout == "" {
		return r.Stderr
	}
	return r.Stdout + "\n" + r.Stderr
}

// Runner executes commands with `bash -c` in Dir.
// A zero Timeout means the command may run until it exits or ctx is cancelled.
type Runner struct {
	Shell   string
	Dir     string
	Timeout time.Duration
}

// Run executes command and blocks until it finishes.
// A non-zero exit status is not an error; it is reported in Result.ExitCode.
// Errors are returned only when the process cannot be started or when ctx
// itself is cancelled. Output pipes still held by background children are
// closed WaitDelay after the shell exits.
func (r *Runner) Run(ctx context.Context, command string) (*Result, error) {
	runCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	sh := r.Shell
	if sh == "" {
		sh = "bash"
	}

	cmd := exec.CommandContext(runCtx, sh, "-c", command)
	cmd.Dir = r.Dir
	setProcessGroup(cmd)
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	res := &Result{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err == nil {
		return res, nil
	}

	// Parent cancellation wins over the per-command deadline.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	// The shell exited but a background child kept the output pipes open
	// past WaitDelay; the run itself is complete.
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
		return res, nil
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		res.TimedOut = true
		res.ExitCode = -1
		return res, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return nil, fmt.Errorf("exec %s: %w", sh, err)
}
