package cmd

import (
	"context"
	"fmt"

	"github.com/samzong/gitpilot/internal/stringsutil"
	"github.com/samzong/gitpilot/internal/ui"
	"github.com/samzong/gitpilot/internal/workflow"
	"github.com/spf13/cobra"
)

var resolveConflictsCmd = &cobra.Command{
	Use:   "resolve-conflicts",
	Short: "List files with unresolved merge conflicts",
	Long: `List files with unresolved merge conflicts.

Nothing is modified. Edit the listed files, stage them, then commit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			st, err := workflow.NewStatusGateway(s.backend).GetStatus(ctx)
			if err != nil {
				return err
			}

			paths := workflow.ConflictInspector{}.Inspect(st)
			if len(paths) == 0 {
				fmt.Fprintln(outWriter(), "No merge conflicts found.")
				return nil
			}

			fmt.Fprintln(outWriter(), ui.Heading(fmt.Sprintf("Conflicts in %s:", stringsutil.Count(len(paths), "file", "files"))))
			for _, p := range paths {
				fmt.Fprintln(outWriter(), "  "+ui.Conflict(p))
			}
			fmt.Fprintln(errWriter(), "Resolve the markers, stage the files, then run gitpilot commit.")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(resolveConflictsCmd)
}
