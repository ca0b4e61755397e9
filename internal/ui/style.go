package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle  = lipgloss.NewStyle().Bold(true)
	currentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	conflictStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func Heading(s string) string { return headingStyle.Render(s) }

func Success(s string) string { return successStyle.Render(s) }

func Muted(s string) string { return mutedStyle.Render(s) }

func Conflict(path string) string { return conflictStyle.Render(path) }

// BranchLine renders one row of a branch listing, marking the checked-out branch.
func BranchLine(name string, current bool) string {
	if current {
		return currentStyle.Render("* " + name)
	}
	return "  " + name
}
