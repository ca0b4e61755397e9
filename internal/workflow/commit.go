package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/samzong/gitpilot/internal/git"
)

type State int

const (
	StateCheckStaged State = iota
	StateDirectCommit
	StateAwaitSelection
	StateStaging
	StateCommitting
	StateDone
	StateAborted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCheckStaged:
		return "CheckStaged"
	case StateDirectCommit:
		return "DirectCommit"
	case StateAwaitSelection:
		return "AwaitSelection"
	case StateStaging:
		return "Staging"
	case StateCommitting:
		return "Committing"
	case StateDone:
		return "Done"
	case StateAborted:
		return "Aborted"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result describes how a run ended.
type Result struct {
	State State
	// Trail lists every state entered, in order.
	Trail    []State
	StageAll bool
	// Committed holds the paths included in the commit, or that would be in a dry run.
	Committed []string
}

type CommitFlowOptions struct {
	DryRun    bool
	ErrWriter io.Writer
	Logger    *slog.Logger
}

// CommitFlow drives status inspection, selection, staging and commit.
type CommitFlow struct {
	backend  CommitBackend
	status   *StatusGateway
	selector *ChangeSetSelector
	opts     CommitFlowOptions
}

func NewCommitFlow(backend CommitBackend, surface SelectionSurface, mode SelectionMode, opts CommitFlowOptions) *CommitFlow {
	if opts.ErrWriter == nil {
		opts.ErrWriter = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &CommitFlow{
		backend:  backend,
		status:   NewStatusGateway(backend),
		selector: NewChangeSetSelector(surface, mode),
		opts:     opts,
	}
}

type run struct {
	flow   *CommitFlow
	result Result
}

func (r *run) enter(s State) {
	r.result.State = s
	r.result.Trail = append(r.result.Trail, s)
	r.flow.opts.Logger.Debug("commit flow state", slog.String("state", s.String()))
}

func (r *run) fail(err error) (Result, error) {
	r.enter(StateFailed)
	return r.result, err
}

// Run executes one orchestration attempt. Abort outcomes come back as
// ErrNothingToCommit or ErrUserAbort with State set to StateAborted.
func (f *CommitFlow) Run(ctx context.Context, opts git.CommitOptions) (Result, error) {
	r := &run{flow: f}

	if err := opts.Validate(); err != nil {
		return r.fail(err)
	}

	r.enter(StateCheckStaged)
	st, err := f.status.GetStatus(ctx)
	if err != nil {
		return r.fail(err)
	}

	if st.HasStaged() {
		r.enter(StateDirectCommit)
		r.result.Committed = append([]string(nil), st.Staged...)
		return f.commit(ctx, r, opts)
	}

	r.enter(StateAwaitSelection)
	set, err := f.selector.Resolve(ctx, st)
	if err != nil {
		return r.fail(err)
	}
	if set.Abort != nil {
		r.enter(StateAborted)
		return r.result, set.Abort
	}

	r.result.StageAll = set.StageAll
	if set.StageAll {
		r.result.Committed = st.ChangedPaths()
	} else {
		r.result.Committed = set.Paths
	}

	if f.opts.DryRun {
		return f.dryRun(r, opts)
	}

	r.enter(StateStaging)
	if err := f.stage(ctx, set); err != nil {
		return r.fail(err)
	}

	r.enter(StateCommitting)
	return f.commit(ctx, r, opts)
}

func (f *CommitFlow) stage(ctx context.Context, set ChangeSet) error {
	if set.StageAll {
		if err := f.backend.StageAll(ctx); err != nil {
			return fmt.Errorf("git add failed: %w", err)
		}
		fmt.Fprintln(f.opts.ErrWriter, "All changes have been added to the staging area.")
		return nil
	}

	if err := f.backend.StagePaths(ctx, set.Paths); err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}
	fmt.Fprintf(f.opts.ErrWriter, "Staged files: %s\n", strings.Join(set.Paths, ", "))
	return nil
}

func (f *CommitFlow) commit(ctx context.Context, r *run, opts git.CommitOptions) (Result, error) {
	if f.opts.DryRun {
		return f.dryRun(r, opts)
	}

	if err := f.backend.Commit(ctx, opts); err != nil {
		// Staged state is left in place so the caller can retry.
		return r.fail(fmt.Errorf("failed to commit changes: %w", err))
	}

	r.enter(StateDone)
	f.opts.Logger.Info("commit created",
		slog.Int("files", len(r.result.Committed)),
		slog.Bool("amend", opts.Amend),
		slog.String("date", opts.Date),
	)
	return r.result, nil
}

func (f *CommitFlow) dryRun(r *run, opts git.CommitOptions) (Result, error) {
	fmt.Fprintln(f.opts.ErrWriter, "Dry run mode, no actual commit")
	if r.result.StageAll {
		fmt.Fprintln(f.opts.ErrWriter, "Would stage all changes")
	}
	fmt.Fprintf(f.opts.ErrWriter, "Would commit files: %s\n", strings.Join(r.result.Committed, ", "))
	fmt.Fprintf(f.opts.ErrWriter, "Commit arguments: git %s\n", strings.Join(opts.Args(), " "))
	r.enter(StateDone)
	return r.result, nil
}
