package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gc",
		Short: "Delete blobs no commit or staged file refers to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			summary, err := r.GC()
			if err != nil {
				return err
			}
			if summary.BlobsPruned == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to prune")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pruned %d blobs, kept %d\n", summary.BlobsPruned, summary.BlobsKept)
			return nil
		},
	}
}
