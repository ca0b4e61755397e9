package cmd

import (
	"context"
	"fmt"

	"github.com/samzong/gitpilot/internal/git"
	"github.com/samzong/gitpilot/internal/gitutil"
	"github.com/samzong/gitpilot/internal/stringsutil"
	"github.com/samzong/gitpilot/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	commitCmd = &cobra.Command{
		Use:   "commit <message>",
		Short: "Commit staged changes, or choose files to stage first",
		Long: `Commit with the given message.

If files are already staged they are committed directly. Otherwise the
modified and untracked files are listed for selection; choose "All changes"
to stage everything.

Examples:
  gitpilot commit "fix: handle empty input"
  gitpilot commit "docs: update readme" --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleErrors(runCommitFlow(cmd, git.CommitOptions{Message: args[0]}))
		},
	}

	backdateCmd = &cobra.Command{
		Use:   "backdate <message> <date>",
		Short: "Commit with an explicit author date",
		Long: `Commit like "commit" but record the given ISO 8601 date.

Examples:
  gitpilot backdate "chore: import history" 2021-01-01T00:00:00Z
  gitpilot backdate "chore: import history" 2021-01-01`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := gitutil.ValidateISODate(args[1]); err != nil {
				return err
			}
			return handleErrors(runCommitFlow(cmd, git.CommitOptions{Message: args[0], Date: args[1]}))
		},
	}

	amendCmd = &cobra.Command{
		Use:   "amend-commit <message>",
		Short: "Amend the last commit with a new message and the chosen changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleErrors(runCommitFlow(cmd, git.CommitOptions{Message: args[0], Amend: true}))
		},
	}
)

func init() {
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(backdateCmd)
	rootCmd.AddCommand(amendCmd)
}

func runCommitFlow(cmd *cobra.Command, opts git.CommitOptions) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		mode, err := workflow.ParseSelectionMode(s.cfg.SelectionMode)
		if err != nil {
			return err
		}

		flow := workflow.NewCommitFlow(s.backend, newSurface(cmd), mode, workflow.CommitFlowOptions{
			DryRun:    s.dryRun(),
			ErrWriter: errWriter(),
			Logger:    s.logger.Logger,
		})

		result, err := flow.Run(ctx, opts)
		if err != nil {
			return err
		}
		if s.dryRun() {
			return nil
		}

		files := stringsutil.Count(len(result.Committed), "file", "files")
		if opts.Amend {
			fmt.Fprintf(outWriter(), "Successfully amended the last commit (%s)!\n", files)
		} else {
			fmt.Fprintf(outWriter(), "Successfully committed changes (%s)!\n", files)
		}
		return nil
	})
}
