// Package git implements the version-control backend on top of the git CLI.
package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/samzong/gitpilot/internal/gitcmd"
	"github.com/samzong/gitpilot/internal/gitutil"
	"github.com/samzong/gitpilot/internal/stringsutil"
)

var ErrConfigKeyNotFound = errors.New("config key not found")

type Options struct {
	Verbose bool
	Dir     string
	Env     []string
	Echo    io.Writer
	Logger  *slog.Logger
}

type Client struct {
	runner gitcmd.Runner
	dir    string
	echo   io.Writer
}

func NewClient(opts Options) *Client {
	echo := opts.Echo
	if echo == nil {
		echo = os.Stderr
	}
	return &Client{
		runner: gitcmd.Runner{
			Verbose: opts.Verbose,
			Dir:     opts.Dir,
			Env:     opts.Env,
			Echo:    opts.Echo,
			Logger:  opts.Logger,
		},
		dir:  opts.Dir,
		echo: echo,
	}
}

func (c *Client) IsGitRepository(ctx context.Context) bool {
	result, err := c.runner.Run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && result.StdoutString(true) == "true"
}

func (c *Client) CheckGitRepository(ctx context.Context) error {
	if !c.IsGitRepository(ctx) {
		return errors.New("not a git repository (or any of the parent directories)")
	}
	return nil
}

// Status runs one porcelain status query.
func (c *Client) Status(ctx context.Context) (Status, error) {
	result, err := c.runner.Run(ctx, "status", "--porcelain=v1", "-z", "--untracked-files=all")
	if err != nil {
		return Status{}, gitutil.WrapGitError("git status", result, err)
	}

	st, err := ParsePorcelain(result.Stdout)
	if err != nil {
		return Status{}, &gitutil.BackendError{Op: "git status", Err: err}
	}
	return st, nil
}

// StageAll stages every change in the working tree, including deletions.
func (c *Client) StageAll(ctx context.Context) error {
	result, err := c.runner.RunLogged(ctx, "add", "-A")
	if err != nil {
		return gitutil.WrapGitError("git add -A", result, err)
	}
	return nil
}

// StagePaths stages paths as reported by Status, which are relative to the
// repository root whatever the working directory.
func (c *Client) StagePaths(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := make([]string, 0, len(paths)+2)
	args = append(args, "add", "--")
	for _, p := range paths {
		args = append(args, topLiteral(p))
	}
	result, err := c.runner.RunLogged(ctx, args...)
	if err != nil {
		return gitutil.WrapGitError("git add", result, err)
	}
	return nil
}

// topLiteral anchors p at the repository root and disables glob matching.
func topLiteral(p string) string {
	return ":(top,literal)" + p
}

// Commit submits one commit; date and amend travel as arguments of the same call.
func (c *Client) Commit(ctx context.Context, opts CommitOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	result, err := c.runner.RunLogged(ctx, opts.Args()...)
	if err != nil {
		return gitutil.WrapGitError("git commit", result, err)
	}
	return nil
}

func (c *Client) Push(ctx context.Context, remote, branch string) error {
	return c.transfer(ctx, "git push", "push", remote, branch)
}

func (c *Client) Pull(ctx context.Context, remote, branch string) error {
	return c.transfer(ctx, "git pull", "pull", remote, branch)
}

// transfer runs a network command. Verbose mode streams git's own progress
// instead of capturing it.
func (c *Client) transfer(ctx context.Context, op string, args ...string) error {
	if c.runner.Verbose {
		if err := c.runner.RunWithWriters(ctx, true, c.echo, c.echo, args...); err != nil {
			return &gitutil.BackendError{Op: op, Err: err}
		}
		return nil
	}
	result, err := c.runner.RunLogged(ctx, args...)
	if err != nil {
		return gitutil.WrapGitError(op, result, err)
	}
	return nil
}

// CreateBranch creates branch and switches to it.
func (c *Client) CreateBranch(ctx context.Context, branch string) error {
	if err := gitutil.ValidateBranchName(branch); err != nil {
		return err
	}
	result, err := c.runner.RunLogged(ctx, "checkout", "-b", branch)
	if err != nil {
		return gitutil.WrapGitError("git checkout -b", result, err)
	}
	return nil
}

func (c *Client) DeleteBranch(ctx context.Context, branch string) error {
	if err := gitutil.ValidateBranchName(branch); err != nil {
		return err
	}
	result, err := c.runner.RunLogged(ctx, "branch", "-d", branch)
	if err != nil {
		return gitutil.WrapGitError("git branch -d", result, err)
	}
	return nil
}

// CreateTag creates an annotated tag on HEAD.
func (c *Client) CreateTag(ctx context.Context, name, message string) error {
	if err := gitutil.ValidateTagName(name); err != nil {
		return err
	}
	if strings.TrimSpace(message) == "" {
		return errors.New("tag message cannot be empty")
	}
	result, err := c.runner.RunLogged(ctx, "tag", "-a", name, "-m", message)
	if err != nil {
		return gitutil.WrapGitError("git tag", result, err)
	}
	return nil
}

func (c *Client) StashSave(ctx context.Context) error {
	result, err := c.runner.RunLogged(ctx, "stash", "push")
	if err != nil {
		return gitutil.WrapGitError("git stash push", result, err)
	}
	return nil
}

func (c *Client) StashApply(ctx context.Context, index int) error {
	if index < 0 {
		return fmt.Errorf("invalid stash index %d", index)
	}
	result, err := c.runner.RunLogged(ctx, "stash", "apply", fmt.Sprintf("stash@{%d}", index))
	if err != nil {
		return gitutil.WrapGitError("git stash apply", result, err)
	}
	return nil
}

// StashList returns one line per stash entry, newest first.
func (c *Client) StashList(ctx context.Context) ([]string, error) {
	result, err := c.runner.Run(ctx, "stash", "list")
	if err != nil {
		return nil, gitutil.WrapGitError("git stash list", result, err)
	}
	return stringsutil.SplitNonEmpty(result.StdoutString(true), "\n"), nil
}

// GetConfig reads a git config value; ErrConfigKeyNotFound when it is unset.
func (c *Client) GetConfig(ctx context.Context, key string) (string, error) {
	result, err := c.runner.Run(ctx, "config", "--get", key)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", fmt.Errorf("%w: %s", ErrConfigKeyNotFound, key)
		}
		return "", gitutil.WrapGitError("git config --get", result, err)
	}
	return result.StdoutString(true), nil
}

func (c *Client) SetConfig(ctx context.Context, key, value string, global bool) error {
	args := []string{"config"}
	if global {
		args = append(args, "--global")
	}
	args = append(args, key, value)
	result, err := c.runner.RunLogged(ctx, args...)
	if err != nil {
		return gitutil.WrapGitError("git config", result, err)
	}
	return nil
}

func (c *Client) CherryPick(ctx context.Context, hash string) error {
	if strings.TrimSpace(hash) == "" || strings.HasPrefix(hash, "-") {
		return fmt.Errorf("invalid commit hash %q", hash)
	}
	result, err := c.runner.RunLogged(ctx, "cherry-pick", hash)
	if err != nil {
		return gitutil.WrapGitError("git cherry-pick", result, err)
	}
	return nil
}

// UndoLastCommit soft-resets HEAD by one commit, keeping its changes staged.
func (c *Client) UndoLastCommit(ctx context.Context) error {
	result, err := c.runner.RunLogged(ctx, "reset", "--soft", "HEAD~1")
	if err != nil {
		return gitutil.WrapGitError("git reset --soft", result, err)
	}
	return nil
}

func (c *Client) Unstage(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return errors.New("no files to unstage")
	}
	args := append([]string{"restore", "--staged", "--"}, paths...)
	result, err := c.runner.RunLogged(ctx, args...)
	if err != nil {
		return gitutil.WrapGitError("git restore --staged", result, err)
	}
	return nil
}
