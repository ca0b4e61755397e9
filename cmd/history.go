package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/samzong/gitpilot/internal/stringsutil"
	"github.com/spf13/cobra"
)

var (
	undoLastCommitCmd = &cobra.Command{
		Use:   "undo-last-commit",
		Short: "Undo the last commit and keep its changes staged",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.backend.UndoLastCommit(ctx); err != nil {
					return fmt.Errorf("failed to undo last commit: %w", err)
				}
				fmt.Fprintln(outWriter(), "Undid the last commit, changes are still staged")
				return nil
			})
		},
	}

	unstageCmd = &cobra.Command{
		Use:   "unstage <files...>",
		Short: "Remove files from the staging area",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.backend.Unstage(ctx, args); err != nil {
					return fmt.Errorf("failed to unstage files: %w", err)
				}
				fmt.Fprintf(outWriter(), "Unstaged files: %s\n", strings.Join(args, ", "))
				return nil
			})
		},
	}

	cherryPickCmd = &cobra.Command{
		Use:   "cherry-pick <hash>",
		Short: "Apply the change introduced by an existing commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.backend.CherryPick(ctx, args[0]); err != nil {
					return fmt.Errorf("failed to cherry-pick: %w", err)
				}
				fmt.Fprintf(outWriter(), "Cherry-picked %s\n", stringsutil.ShortHash(args[0], 7, args[0]))
				return nil
			})
		},
	}
)

func init() {
	rootCmd.AddCommand(undoLastCommitCmd)
	rootCmd.AddCommand(unstageCmd)
	rootCmd.AddCommand(cherryPickCmd)
}
