package cmd

import (
	"context"
	"fmt"

	"github.com/samzong/gitpilot/internal/gitutil"
	"github.com/samzong/gitpilot/internal/ui"
	"github.com/spf13/cobra"
)

var (
	createTagCmd = &cobra.Command{
		Use:   "create-tag <name> <message>",
		Short: "Create an annotated tag on HEAD",
		Long: `Create an annotated tag on HEAD.

Examples:
  gitpilot create-tag v1.2.0 "Release 1.2.0"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := gitutil.ValidateTagName(args[0]); err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.backend.CreateTag(ctx, args[0], args[1]); err != nil {
					return fmt.Errorf("failed to create tag: %w", err)
				}
				fmt.Fprintf(outWriter(), "Created tag %s\n", args[0])
				return nil
			})
		},
	}

	listTagsCmd = &cobra.Command{
		Use:     "list-tags",
		Aliases: []string{"tags"},
		Short:   "List tags",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				tags, err := s.backend.ListTags(ctx)
				if err != nil {
					return fmt.Errorf("failed to list tags: %w", err)
				}
				if len(tags) == 0 {
					fmt.Fprintln(outWriter(), ui.Muted("No tags yet"))
					return nil
				}
				for _, tag := range tags {
					fmt.Fprintln(outWriter(), tag)
				}
				return nil
			})
		},
	}
)

func init() {
	rootCmd.AddCommand(createTagCmd)
	rootCmd.AddCommand(listTagsCmd)
}
