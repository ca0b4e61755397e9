package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samzong/gitpilot/internal/git"
)

var (
	ErrNothingToCommit = errors.New("nothing to commit")
	ErrUserAbort       = errors.New("no files selected, commit aborted")
)

// IsAbort reports whether err is an informational outcome rather than a failure.
func IsAbort(err error) bool {
	return errors.Is(err, ErrNothingToCommit) || errors.Is(err, ErrUserAbort)
}

// AllChanges is the sentinel choice value meaning "stage everything".
// Git paths never contain NUL, so it cannot collide with a path.
const AllChanges = "\x00all-changes"

type SelectionMode int

const (
	MultiSelect SelectionMode = iota
	SingleSelect
)

func (m SelectionMode) String() string {
	if m == SingleSelect {
		return "single"
	}
	return "multi"
}

// ParseSelectionMode maps a configuration value onto a SelectionMode.
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "multi", "multiple":
		return MultiSelect, nil
	case "single":
		return SingleSelect, nil
	default:
		return MultiSelect, fmt.Errorf("unknown selection mode %q (want single or multi)", s)
	}
}

type Choice struct {
	Label string
	Value string
}

// Selection is what the surface returned. Cancelled means the user backed out.
type Selection struct {
	Values    []string
	Cancelled bool
}

// ChangeSet is the resolved set to stage. A non-nil Abort means stop.
type ChangeSet struct {
	Abort    error
	StageAll bool
	Paths    []string
}

// ChangeSetSelector turns a status snapshot into a set of paths to stage.
type ChangeSetSelector struct {
	surface SelectionSurface
	mode    SelectionMode
}

func NewChangeSetSelector(surface SelectionSurface, mode SelectionMode) *ChangeSetSelector {
	return &ChangeSetSelector{surface: surface, mode: mode}
}

// Selectable returns the changes that may be offered: modified or untracked
// and not already staged.
func Selectable(st git.Status) []git.FileChange {
	var out []git.FileChange
	for _, c := range st.Changes {
		if c.Kind != git.ChangeModified && c.Kind != git.ChangeUntracked {
			continue
		}
		if st.IsStaged(c.Path) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// BuildChoices puts the sentinel first, then one choice per change.
func BuildChoices(changes []git.FileChange) []Choice {
	choices := make([]Choice, 0, len(changes)+1)
	choices = append(choices, Choice{Label: "All changes", Value: AllChanges})
	for _, c := range changes {
		label := c.Path
		if c.Kind == git.ChangeUntracked {
			label += " (New)"
		}
		choices = append(choices, Choice{Label: label, Value: c.Path})
	}
	return choices
}

func (s *ChangeSetSelector) Resolve(ctx context.Context, st git.Status) (ChangeSet, error) {
	changes := Selectable(st)
	if len(changes) == 0 {
		return ChangeSet{Abort: ErrNothingToCommit}, nil
	}

	sel, err := s.surface.Select(ctx, "Select files to commit", BuildChoices(changes), s.mode)
	if err != nil {
		return ChangeSet{}, fmt.Errorf("file selection failed: %w", err)
	}

	return resolveSelection(sel, changes), nil
}

func resolveSelection(sel Selection, changes []git.FileChange) ChangeSet {
	if sel.Cancelled {
		return ChangeSet{Abort: ErrUserAbort}
	}

	picked := make(map[string]bool, len(sel.Values))
	for _, v := range sel.Values {
		if v == AllChanges {
			return ChangeSet{StageAll: true}
		}
		picked[v] = true
	}

	// Walking changes keeps presentation order, drops anything never offered
	// and yields each path once, since status reports a path only once.
	var paths []string
	for _, c := range changes {
		if picked[c.Path] {
			paths = append(paths, c.Path)
		}
	}
	if len(paths) == 0 {
		return ChangeSet{Abort: ErrUserAbort}
	}
	return ChangeSet{Paths: paths}
}
