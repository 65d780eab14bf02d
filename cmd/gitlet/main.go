package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/odvcencio/gitlet/pkg/logger"
	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/odvcencio/gitlet/pkg/repo"
)

const version = "gitlet 0.1.0-dev"

// errIncorrectOperands is printed when a command's operands do not fit any
// of its forms.
var errIncorrectOperands = errors.New("Incorrect operands.")

type globalFlags struct {
	verbose bool
	json    bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "gitlet",
		Short:         "A minimal content-addressed version-control system",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if flags.verbose {
				level = slog.LevelDebug
			}
			l := logger.New(level, flags.json, cmd.ErrOrStderr())
			cmd.SetContext(logger.WithContext(cmd.Context(), l))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log debug events to stderr")
	root.PersistentFlags().BoolVar(&flags.json, "json", false, "log in JSON")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newAddCmd())
	root.AddCommand(newCommitCmd())
	root.AddCommand(newRmCmd())
	root.AddCommand(newLogCmd())
	root.AddCommand(newGlobalLogCmd())
	root.AddCommand(newFindCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newCheckoutCmd())
	root.AddCommand(newBranchCmd())
	root.AddCommand(newRmBranchCmd())
	root.AddCommand(newResetCmd())
	root.AddCommand(newMergeCmd())
	root.AddCommand(newReflogCmd())
	root.AddCommand(newArchiveCmd())
	root.AddCommand(newGcCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// openRepo opens the repository containing the working directory. Unless
// --verbose or --json was given, logging follows the repository config.
func openRepo(cmd *cobra.Command) (*repo.Repo, error) {
	r, err := repo.Open(".")
	if err != nil {
		return nil, err
	}
	l := logger.FromContext(cmd.Context())
	if !flagChanged(cmd, "verbose") && !flagChanged(cmd, "json") {
		level, err := logger.ParseLevel(r.Config.Log.Level)
		if err != nil {
			return nil, err
		}
		l = logger.New(level, r.Config.Log.Format == "json", cmd.ErrOrStderr())
	}
	r.SetLogger(l)
	return r, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// absArg turns a path operand given relative to the working directory into
// an absolute path the repository can resolve against its root.
func absArg(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("%w: %q", object.ErrInvalidPath, p)
	}
	return abs, nil
}
