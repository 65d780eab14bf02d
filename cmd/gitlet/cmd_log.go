package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/odvcencio/gitlet/pkg/repo"
)

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show first-parent history from HEAD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			entries, err := r.Log()
			if err != nil {
				return err
			}
			printLog(cmd.OutOrStdout(), entries)
			return nil
		},
	}
}

func newGlobalLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "global-log",
		Short: "Show every commit ever made",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			entries, err := r.GlobalLog()
			if err != nil {
				return err
			}
			printLog(cmd.OutOrStdout(), entries)
			return nil
		},
	}
}

func newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <message>",
		Short: "Print the ids of commits with the given message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			ids, err := r.Find(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range ids {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
}

func printLog(out io.Writer, entries []repo.LogEntry) {
	for _, e := range entries {
		c := e.Commit
		fmt.Fprintln(out, "===")
		fmt.Fprintf(out, "commit %s\n", e.ID)
		if c.IsMerge() {
			fmt.Fprintf(out, "Merge: %s %s\n", c.Parents[0].Short(7), c.Parents[1].Short(7))
		}
		fmt.Fprintf(out, "Date: %s\n", c.Timestamp)
		fmt.Fprintln(out, c.Message)
		fmt.Fprintln(out)
	}
}
