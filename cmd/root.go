package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/samzong/gitpilot/internal/config"
	"github.com/samzong/gitpilot/internal/git"
	"github.com/samzong/gitpilot/internal/logging"
	"github.com/samzong/gitpilot/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	dryRun    bool
	configErr error
	rootCtx   = context.Background()
	rootCmd   = &cobra.Command{
		Use:   "gitpilot",
		Short: "gitpilot - interactive git commit assistant",
		Long: `gitpilot stages and commits changes interactively and wraps everyday ` +
			`git operations behind short commands.

Run "gitpilot commit <message>" with nothing staged to pick the files to commit.`,
		Version:       fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// Swapped in tests.
var (
	newBackend = func(opts git.Options) workflow.Backend {
		return git.NewClient(opts)
	}
	newSurface = func(cmd *cobra.Command) workflow.SelectionSurface {
		return &workflow.TerminalSurface{Stdin: cmd.InOrStdin(), Stdout: errWriter()}
	}
)

func RootCmd() *cobra.Command {
	return rootCmd
}

// SetContext sets the context used by Execute.
func SetContext(ctx context.Context) {
	rootCtx = ctx
}

func Execute() error {
	return rootCmd.ExecuteContext(rootCtx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Configuration file path (default is $XDG_CONFIG_HOME/gitpilot/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Show git commands and debug logs")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false,
		"Show what a commit would include without staging or committing")
}

func initConfig() {
	configErr = config.InitConfig(cfgFile)
}

func outWriter() io.Writer {
	return rootCmd.OutOrStdout()
}

func errWriter() io.Writer {
	return rootCmd.ErrOrStderr()
}

// handleErrors turns informational outcomes into a message and a nil error.
func handleErrors(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, workflow.ErrNothingToCommit):
		fmt.Fprintln(errWriter(), "No changes to commit.")
		return nil
	case errors.Is(err, workflow.ErrUserAbort):
		fmt.Fprintln(errWriter(), "No files selected. Commit aborted.")
		return nil
	}
	return err
}

// session holds what a command needs for one invocation.
type session struct {
	cfg     *config.Config
	logger  *logging.Logger
	backend workflow.Backend
}

func newSession() (*session, error) {
	if configErr != nil {
		return nil, fmt.Errorf("configuration error: %w", configErr)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Verbose: verbose, Stderr: errWriter()})
	if err != nil {
		return nil, err
	}

	backend := newBackend(git.Options{
		Verbose: verbose,
		Echo:    errWriter(),
		Logger:  logger.Logger,
	})
	return &session{cfg: cfg, logger: logger, backend: backend}, nil
}

func (s *session) Close() {
	_ = s.logger.Close()
}

func (s *session) dryRun() bool {
	return dryRun || s.cfg.DryRun
}

type repositoryChecker interface {
	CheckGitRepository(ctx context.Context) error
}

// withSession runs fn with a fresh session and the command's context. Backends
// that can tell whether the working directory is a repository are asked first.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if checker, ok := s.backend.(repositoryChecker); ok {
		if err := checker.CheckGitRepository(ctx); err != nil {
			return err
		}
	}
	return fn(ctx, s)
}
