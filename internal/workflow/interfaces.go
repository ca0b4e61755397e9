// Package workflow provides the commit workflow orchestration logic.
package workflow

import (
	"context"

	"github.com/samzong/gitpilot/internal/git"
)

// StatusReader produces repository status snapshots.
type StatusReader interface {
	Status(ctx context.Context) (git.Status, error)
}

// CommitBackend is the part of the backend the commit path needs.
type CommitBackend interface {
	StatusReader
	StageAll(ctx context.Context) error
	StagePaths(ctx context.Context, paths []string) error
	Commit(ctx context.Context, opts git.CommitOptions) error
}

// Backend is the full version-control capability consumed by the CLI.
type Backend interface {
	CommitBackend
	Push(ctx context.Context, remote, branch string) error
	Pull(ctx context.Context, remote, branch string) error
	CreateBranch(ctx context.Context, branch string) error
	ListBranches(ctx context.Context) ([]git.Branch, error)
	DeleteBranch(ctx context.Context, branch string) error
	CreateTag(ctx context.Context, name, message string) error
	ListTags(ctx context.Context) ([]string, error)
	StashSave(ctx context.Context) error
	StashApply(ctx context.Context, index int) error
	StashList(ctx context.Context) ([]string, error)
	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string, global bool) error
	CherryPick(ctx context.Context, hash string) error
	UndoLastCommit(ctx context.Context) error
	Unstage(ctx context.Context, paths []string) error
}

// SelectionSurface asks the user to pick among choices.
type SelectionSurface interface {
	Select(ctx context.Context, title string, choices []Choice, mode SelectionMode) (Selection, error)
}
