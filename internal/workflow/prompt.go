package workflow

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

var ErrNotTerminal = errors.New("stdin is not a terminal, stage files with git add before running commit")

// TerminalSurface presents choices as an interactive huh form.
type TerminalSurface struct {
	Stdin  io.Reader
	Stdout io.Writer
}

func (s *TerminalSurface) Select(ctx context.Context, title string, choices []Choice, mode SelectionMode) (Selection, error) {
	stdin := s.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	if f, ok := stdin.(*os.File); ok {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			return Selection{}, ErrNotTerminal
		}
	}

	options := make([]huh.Option[string], 0, len(choices))
	for _, c := range choices {
		options = append(options, huh.NewOption(c.Label, c.Value))
	}

	var (
		field  huh.Field
		values []string
		single string
	)
	if mode == SingleSelect {
		field = huh.NewSelect[string]().Title(title).Options(options...).Value(&single)
	} else {
		field = huh.NewMultiSelect[string]().Title(title).Options(options...).Value(&values)
	}

	form := huh.NewForm(huh.NewGroup(field)).WithInput(stdin)
	if s.Stdout != nil {
		form = form.WithOutput(s.Stdout)
	}

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return Selection{Cancelled: true}, nil
		}
		return Selection{}, err
	}

	if mode == SingleSelect {
		if single == "" {
			return Selection{}, nil
		}
		values = []string{single}
	}
	return Selection{Values: values}, nil
}
