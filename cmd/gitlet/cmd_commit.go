package main

import (
	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit <message>",
		Short: "Record the staged changes as a new commit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			msg := ""
			if len(args) == 1 {
				msg = args[0]
			}
			_, err = r.Commit(msg)
			return err
		},
	}
}
