package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/gitlet/pkg/repo"
)

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <branch>",
		Short: "Merge a branch into the current branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			report, err := r.Merge(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case report.Outcome == repo.AlreadyUpToDate:
				fmt.Fprintln(out, "Given branch is an ancestor of the current branch.")
			case report.Outcome == repo.FastForward:
				fmt.Fprintln(out, "Current branch fast-forwarded.")
			case report.HasConflicts:
				fmt.Fprintln(out, "Encountered a merge conflict.")
			}
			return nil
		},
	}
}
