package cmd

import (
	"context"
	"fmt"

	"github.com/samzong/gitpilot/internal/gitutil"
	"github.com/samzong/gitpilot/internal/ui"
	"github.com/spf13/cobra"
)

var (
	createBranchCmd = &cobra.Command{
		Use:   "create-branch <name>",
		Short: "Create a branch and switch to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := gitutil.ValidateBranchName(args[0]); err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.backend.CreateBranch(ctx, args[0]); err != nil {
					return fmt.Errorf("failed to create branch: %w", err)
				}
				fmt.Fprintf(outWriter(), "Created and switched to branch %s\n", args[0])
				return nil
			})
		},
	}

	listBranchesCmd = &cobra.Command{
		Use:     "list-branches",
		Aliases: []string{"branches"},
		Short:   "List local branches",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				branches, err := s.backend.ListBranches(ctx)
				if err != nil {
					return fmt.Errorf("failed to list branches: %w", err)
				}
				if len(branches) == 0 {
					fmt.Fprintln(outWriter(), ui.Muted("No branches yet"))
					return nil
				}
				for _, b := range branches {
					fmt.Fprintln(outWriter(), ui.BranchLine(b.Name, b.Current))
				}
				return nil
			})
		},
	}

	deleteBranchCmd = &cobra.Command{
		Use:   "delete-branch <name>",
		Short: "Delete a merged local branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.backend.DeleteBranch(ctx, args[0]); err != nil {
					return fmt.Errorf("failed to delete branch: %w", err)
				}
				fmt.Fprintf(outWriter(), "Deleted branch %s\n", args[0])
				return nil
			})
		},
	}
)

func init() {
	rootCmd.AddCommand(createBranchCmd)
	rootCmd.AddCommand(listBranchesCmd)
	rootCmd.AddCommand(deleteBranchCmd)
}
