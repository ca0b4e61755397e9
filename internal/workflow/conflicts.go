package workflow

import "github.com/samzong/gitpilot/internal/git"

// ConflictInspector surfaces conflicted paths. It never resolves anything.
type ConflictInspector struct{}

// Inspect returns the conflicted paths of st; the result is never nil.
func (ConflictInspector) Inspect(st git.Status) []string {
	paths := make([]string, len(st.Conflicted))
	copy(paths, st.Conflicted)
	return paths
}
