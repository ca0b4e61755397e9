package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/samzong/gitpilot/internal/git"
	"github.com/samzong/gitpilot/internal/workflow"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type call struct {
	name string
	args []string
}

type fakeBackend struct {
	status    git.Status
	branches  []git.Branch
	tags      []string
	stashes   []string
	config    map[string]string
	err       error
	commitErr error
	current   string
	notRepo   bool

	calls   []call
	commits []git.CommitOptions
}

func (b *fakeBackend) record(name string, args ...string) error {
	b.calls = append(b.calls, call{name: name, args: args})
	return b.err
}

func (b *fakeBackend) Status(context.Context) (git.Status, error) {
	return b.status, b.record("Status")
}

func (b *fakeBackend) StageAll(context.Context) error { return b.record("StageAll") }

func (b *fakeBackend) StagePaths(_ context.Context, paths []string) error {
	return b.record("StagePaths", paths...)
}

func (b *fakeBackend) Commit(_ context.Context, opts git.CommitOptions) error {
	b.commits = append(b.commits, opts)
	if err := b.record("Commit", opts.Message); err != nil {
		return err
	}
	return b.commitErr
}

func (b *fakeBackend) Push(_ context.Context, remote, branch string) error {
	return b.record("Push", remote, branch)
}

func (b *fakeBackend) Pull(_ context.Context, remote, branch string) error {
	return b.record("Pull", remote, branch)
}

func (b *fakeBackend) CreateBranch(_ context.Context, branch string) error {
	return b.record("CreateBranch", branch)
}

func (b *fakeBackend) ListBranches(context.Context) ([]git.Branch, error) {
	return b.branches, b.record("ListBranches")
}

func (b *fakeBackend) DeleteBranch(_ context.Context, branch string) error {
	return b.record("DeleteBranch", branch)
}

func (b *fakeBackend) CreateTag(_ context.Context, name, message string) error {
	return b.record("CreateTag", name, message)
}

func (b *fakeBackend) ListTags(context.Context) ([]string, error) {
	return b.tags, b.record("ListTags")
}

func (b *fakeBackend) StashSave(context.Context) error { return b.record("StashSave") }

func (b *fakeBackend) StashApply(_ context.Context, index int) error {
	return b.record("StashApply", strconv.Itoa(index))
}

func (b *fakeBackend) StashList(context.Context) ([]string, error) {
	return b.stashes, b.record("StashList")
}

func (b *fakeBackend) GetConfig(_ context.Context, key string) (string, error) {
	if err := b.record("GetConfig", key); err != nil {
		return "", err
	}
	value, ok := b.config[key]
	if !ok {
		return "", git.ErrConfigKeyNotFound
	}
	return value, nil
}

func (b *fakeBackend) SetConfig(_ context.Context, key, value string, global bool) error {
	scope := "local"
	if global {
		scope = "global"
	}
	return b.record("SetConfig", key, value, scope)
}

func (b *fakeBackend) CherryPick(_ context.Context, hash string) error {
	return b.record("CherryPick", hash)
}

func (b *fakeBackend) UndoLastCommit(context.Context) error { return b.record("UndoLastCommit") }

func (b *fakeBackend) Unstage(_ context.Context, paths []string) error {
	return b.record("Unstage", paths...)
}

func (b *fakeBackend) CheckGitRepository(context.Context) error {
	if b.notRepo {
		return errors.New("not a git repository (or any of the parent directories)")
	}
	return nil
}

func (b *fakeBackend) CurrentBranch(context.Context) (string, error) {
	return b.current, nil
}

func (b *fakeBackend) called(name string) []call {
	var out []call
	for _, c := range b.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

type scriptedSurface struct {
	selection workflow.Selection
	calls     int
	mode      workflow.SelectionMode
}

func (s *scriptedSurface) Select(_ context.Context, _ string, _ []workflow.Choice, mode workflow.SelectionMode) (workflow.Selection, error) {
	s.calls++
	s.mode = mode
	return s.selection, nil
}

type runResult struct {
	stdout string
	stderr string
	config string
}

// execute runs the root command against backend with a fresh config file.
// Extra config file content may be given in configYAML.
func execute(t *testing.T, backend workflow.Backend, surface workflow.SelectionSurface, configYAML string, args ...string) (runResult, error) {
	t.Helper()

	viper.Reset()
	cfgFile, verbose, dryRun, configErr = "", false, false, nil
	remoteName, currentBranch, setConfigGlobal = "", false, false

	origBackend, origSurface := newBackend, newSurface
	newBackend = func(git.Options) workflow.Backend { return backend }
	if surface != nil {
		newSurface = func(*cobra.Command) workflow.SelectionSurface { return surface }
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		newBackend, newSurface = origBackend, origSurface
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		viper.Reset()
	})

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if configYAML != "" {
		writeConfig(t, configPath, configYAML)
	}

	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return runResult{stdout: out.String(), stderr: errOut.String(), config: configPath}, err
}
