package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/samzong/gitpilot/internal/ui"
	"github.com/spf13/cobra"
)

var (
	remoteName    string
	currentBranch bool

	pushCmd = &cobra.Command{
		Use:   "push [branch]",
		Short: "Push a branch to the remote (default_branch when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				remote, branch, err := remoteTarget(ctx, s, args)
				if err != nil {
					return err
				}
				return runWithSpinner(fmt.Sprintf("Pushing %s to %s...", branch, remote), func() error {
					return s.backend.Push(ctx, remote, branch)
				}, fmt.Sprintf("Pushed %s to %s", branch, remote))
			})
		},
	}

	pullCmd = &cobra.Command{
		Use:   "pull [branch]",
		Short: "Pull a branch from the remote (default_branch when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				remote, branch, err := remoteTarget(ctx, s, args)
				if err != nil {
					return err
				}
				return runWithSpinner(fmt.Sprintf("Pulling %s from %s...", branch, remote), func() error {
					return s.backend.Pull(ctx, remote, branch)
				}, fmt.Sprintf("Pulled %s from %s", branch, remote))
			})
		},
	}
)

func init() {
	for _, c := range []*cobra.Command{pushCmd, pullCmd} {
		c.Flags().StringVarP(&remoteName, "remote", "r", "", "Remote to use (default from configuration)")
		c.Flags().BoolVarP(&currentBranch, "current", "c", false, "Use the checked-out branch")
		rootCmd.AddCommand(c)
	}
}

type branchReader interface {
	CurrentBranch(ctx context.Context) (string, error)
}

func remoteTarget(ctx context.Context, s *session, args []string) (string, string, error) {
	remote := s.cfg.Remote
	if remoteName != "" {
		remote = remoteName
	}

	switch {
	case len(args) == 1 && currentBranch:
		return "", "", errors.New("--current cannot be combined with a branch argument")
	case len(args) == 1:
		return remote, args[0], nil
	case currentBranch:
		reader, ok := s.backend.(branchReader)
		if !ok {
			return "", "", errors.New("current branch is not available")
		}
		branch, err := reader.CurrentBranch(ctx)
		if err != nil {
			return "", "", fmt.Errorf("failed to resolve current branch: %w", err)
		}
		if branch == "" {
			return "", "", errors.New("HEAD is detached or has no commits, pass a branch name")
		}
		return remote, branch, nil
	default:
		return remote, s.cfg.DefaultBranch, nil
	}
}

// runWithSpinner shows a spinner while fn runs. Verbose mode skips it so the
// echoed git commands stay readable.
func runWithSpinner(message string, fn func() error, done string) error {
	sp := ui.NewSpinner(errWriter(), message)
	if !verbose {
		sp.Start()
	}
	err := fn()
	sp.Stop()
	if err != nil {
		return err
	}
	fmt.Fprintln(outWriter(), ui.Success(done))
	return nil
}
