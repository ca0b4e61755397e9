package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/samzong/gitpilot/internal/git"
	"github.com/spf13/cobra"
)

var (
	setConfigGlobal bool

	setConfigCmd = &cobra.Command{
		Use:   "set-config <key> <value> [global]",
		Short: "Set a git configuration value",
		Long: `Set a git configuration value in the repository, or globally.

Examples:
  gitpilot set-config user.name "Jane Doe"
  gitpilot set-config user.email jane@example.com global`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			global := setConfigGlobal
			if len(args) == 3 {
				if args[2] != "global" {
					return fmt.Errorf("unexpected argument %q, only \"global\" is accepted", args[2])
				}
				global = true
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.backend.SetConfig(ctx, args[0], args[1], global); err != nil {
					return fmt.Errorf("failed to set config: %w", err)
				}
				scope := "local"
				if global {
					scope = "global"
				}
				fmt.Fprintf(outWriter(), "Set %s = %s (%s)\n", args[0], args[1], scope)
				return nil
			})
		},
	}

	getConfigCmd = &cobra.Command{
		Use:   "get-config <key>",
		Short: "Print a git configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				value, err := s.backend.GetConfig(ctx, args[0])
				if errors.Is(err, git.ErrConfigKeyNotFound) {
					return fmt.Errorf("%s is not set: %w", args[0], err)
				}
				if err != nil {
					return fmt.Errorf("failed to get config: %w", err)
				}
				fmt.Fprintln(outWriter(), value)
				return nil
			})
		},
	}
)

func init() {
	setConfigCmd.Flags().BoolVar(&setConfigGlobal, "global", false, "Write to the global git configuration")
	rootCmd.AddCommand(setConfigCmd)
	rootCmd.AddCommand(getConfigCmd)
}
