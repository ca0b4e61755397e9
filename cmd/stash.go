package cmd

import (
	"context"
	"fmt"

	"github.com/samzong/gitpilot/internal/gitutil"
	"github.com/samzong/gitpilot/internal/ui"
	"github.com/spf13/cobra"
)

var (
	stashCmd = &cobra.Command{
		Use:   "stash",
		Short: "Stash uncommitted changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.backend.StashSave(ctx); err != nil {
					return fmt.Errorf("failed to stash changes: %w", err)
				}
				fmt.Fprintln(outWriter(), "Stashed changes")
				return nil
			})
		},
	}

	applyStashCmd = &cobra.Command{
		Use:   "apply-stash [index]",
		Short: "Apply a stash entry (default 0) without dropping it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			index, err := gitutil.ParseStashIndex(arg)
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.backend.StashApply(ctx, index); err != nil {
					return fmt.Errorf("failed to apply stash: %w", err)
				}
				fmt.Fprintf(outWriter(), "Applied stash@{%d}\n", index)
				return nil
			})
		},
	}

	listStashesCmd = &cobra.Command{
		Use:     "list-stashes",
		Aliases: []string{"stashes"},
		Short:   "List stash entries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				entries, err := s.backend.StashList(ctx)
				if err != nil {
					return fmt.Errorf("failed to list stashes: %w", err)
				}
				if len(entries) == 0 {
					fmt.Fprintln(outWriter(), ui.Muted("No stash entries"))
					return nil
				}
				for _, e := range entries {
					fmt.Fprintln(outWriter(), e)
				}
				return nil
			})
		},
	}
)

func init() {
	rootCmd.AddCommand(stashCmd)
	rootCmd.AddCommand(applyStashCmd)
	rootCmd.AddCommand(listStashesCmd)
}
