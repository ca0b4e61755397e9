package workflow

import "github.com/samzong/gitpilot/internal/git"

var (
	_ Backend          = (*git.Client)(nil)
	_ SelectionSurface = (*TerminalSurface)(nil)
)
