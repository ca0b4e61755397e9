package gitcmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Runner executes git commands with shared logging and output handling.
type Runner struct {
	Verbose bool
	Dir     string
	Env     []string
	// Echo receives "Running: git ..." lines when Verbose is set.
	Echo   io.Writer
	Logger *slog.Logger
}

// Result contains captured stdout/stderr for a git command.
type Result struct {
	Stdout []byte
	Stderr []byte
}

func (r Result) StdoutString(trim bool) string {
	output := string(r.Stdout)
	if trim {
		return strings.TrimSpace(output)
	}
	return output
}

func (r Runner) withDefaults() Runner {
	if r.Echo == nil {
		r.Echo = os.Stderr
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.DiscardHandler)
	}
	return r
}

func (r Runner) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	return cmd
}

func (r Runner) echo(args []string) {
	if !r.Verbose {
		return
	}
	fmt.Fprintf(r.Echo, "Running: git %s\n", strings.Join(args, " "))
}

// Run executes a git command and captures stdout/stderr.
func (r Runner) Run(ctx context.Context, args ...string) (Result, error) {
	return r.run(ctx, args, false)
}

// RunLogged executes a git command, echoes it when verbose, and captures stdout/stderr.
func (r Runner) RunLogged(ctx context.Context, args ...string) (Result, error) {
	return r.run(ctx, args, true)
}

// RunWithWriters executes a git command, optionally echoes it, and uses provided writers.
func (r Runner) RunWithWriters(ctx context.Context, echo bool, stdout, stderr io.Writer, args ...string) error {
	r = r.withDefaults()
	if echo {
		r.echo(args)
	}
	cmd := r.command(ctx, args...)
	if stdout != nil {
		cmd.Stdout = stdout
	}
	if stderr != nil {
		cmd.Stderr = stderr
	}

	start := time.Now()
	err := cmd.Run()
	r.record(ctx, args, start, err)
	return err
}

func (r Runner) run(ctx context.Context, args []string, echo bool) (Result, error) {
	r = r.withDefaults()
	if echo {
		r.echo(args)
	}
	cmd := r.command(ctx, args...)
	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	start := time.Now()
	err := cmd.Run()
	r.record(ctx, args, start, err)
	return Result{Stdout: outBuf.Bytes(), Stderr: errBuf.Bytes()}, err
}

func (r Runner) record(ctx context.Context, args []string, start time.Time, err error) {
	attrs := []any{
		slog.String("args", strings.Join(args, " ")),
		slog.Duration("elapsed", time.Since(start)),
	}
	if r.Dir != "" {
		attrs = append(attrs, slog.String("dir", r.Dir))
	}
	if err != nil {
		r.Logger.DebugContext(ctx, "git command failed", append(attrs, slog.Any("error", err))...)
		return
	}
	r.Logger.DebugContext(ctx, "git command", attrs...)
}
