package workflow

import (
	"context"
	"errors"

	"github.com/samzong/gitpilot/internal/git"
)

type fakeBackend struct {
	status    git.Status
	statusErr error
	stageErr  error
	commitErr error

	statusCalls   int
	stageAllCalls int
	stagedPaths   [][]string
	commits       []git.CommitOptions
}

func (b *fakeBackend) Status(context.Context) (git.Status, error) {
	b.statusCalls++
	return b.status, b.statusErr
}

func (b *fakeBackend) StageAll(context.Context) error {
	b.stageAllCalls++
	return b.stageErr
}

func (b *fakeBackend) StagePaths(_ context.Context, paths []string) error {
	b.stagedPaths = append(b.stagedPaths, append([]string(nil), paths...))
	return b.stageErr
}

func (b *fakeBackend) Commit(_ context.Context, opts git.CommitOptions) error {
	b.commits = append(b.commits, opts)
	return b.commitErr
}

func (b *fakeBackend) stagingCalls() int {
	return b.stageAllCalls + len(b.stagedPaths)
}

type fakeSurface struct {
	selection Selection
	err       error

	calls   int
	choices []Choice
	mode    SelectionMode
}

func (s *fakeSurface) Select(_ context.Context, _ string, choices []Choice, mode SelectionMode) (Selection, error) {
	s.calls++
	s.choices = choices
	s.mode = mode
	return s.selection, s.err
}

func picks(values ...string) *fakeSurface {
	return &fakeSurface{selection: Selection{Values: values}}
}

var errBoom = errors.New("boom")
