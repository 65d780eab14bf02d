package main

import (
	"github.com/spf13/cobra"

	"github.com/odvcencio/gitlet/pkg/logger"
	"github.com/odvcencio/gitlet/pkg/repo"
)

func newInitCmd() *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty repository in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := repo.DefaultConfig()
			cfg.Core.DefaultBranch = branch
			_, err := repo.Init(".",
				repo.WithLogger(logger.FromContext(cmd.Context())),
				repo.WithConfig(cfg),
			)
			return err
		},
	}
	cmd.Flags().StringVarP(&branch, "branch", "b", repo.DefaultBranch, "name of the initial branch")
	return cmd
}
