package git

import (
	"errors"
	"strings"
)

// ChangeKind classifies a working-directory change.
type ChangeKind int

const (
	ChangeOther ChangeKind = iota
	ChangeModified
	ChangeUntracked
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeModified:
		return "modified"
	case ChangeUntracked:
		return "untracked"
	default:
		return "other"
	}
}

// FileChange is one unstaged entry of the working tree.
type FileChange struct {
	Path string
	Kind ChangeKind
}

// Status is a snapshot of one status query. Slices keep the order git reported.
type Status struct {
	Staged     []string
	Changes    []FileChange
	Conflicted []string
}

// HasStaged reports whether anything is already staged for commit.
func (s Status) HasStaged() bool {
	return len(s.Staged) > 0
}

// IsStaged reports whether path is in the staged set.
func (s Status) IsStaged(path string) bool {
	for _, p := range s.Staged {
		if p == path {
			return true
		}
	}
	return false
}

// ChangedPaths returns the path of every reported change.
func (s Status) ChangedPaths() []string {
	paths := make([]string, 0, len(s.Changes))
	for _, c := range s.Changes {
		paths = append(paths, c.Path)
	}
	return paths
}

// CommitOptions are the parameters of a single commit call.
type CommitOptions struct {
	Message string
	// Date is an ISO 8601 author date handed to git unmodified.
	Date  string
	Amend bool
}

var ErrEmptyMessage = errors.New("commit message cannot be empty")

// Validate rejects options git would refuse.
func (o CommitOptions) Validate() error {
	if strings.TrimSpace(o.Message) == "" {
		return ErrEmptyMessage
	}
	return nil
}

// Args builds the git commit argument list for o.
func (o CommitOptions) Args() []string {
	args := []string{"commit", "-m", o.Message}
	if o.Date != "" {
		args = append(args, "--date="+o.Date)
	}
	if o.Amend {
		args = append(args, "--amend")
	}
	return args
}

// Branch is a local branch reference.
type Branch struct {
	Name    string
	Current bool
}
