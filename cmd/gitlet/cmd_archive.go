package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <commit> <out.tar.zst|->",
		Short: "Export a commit's files as a zstd-compressed tarball",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if args[1] != "-" {
				f, cerr := os.Create(args[1])
				if cerr != nil {
					return fmt.Errorf("archive: %w", cerr)
				}
				defer func() {
					if cerr := f.Close(); err == nil && cerr != nil {
						err = fmt.Errorf("archive: close: %w", cerr)
					}
				}()
				w = f
			}
			_, err = r.Archive(args[0], w)
			return err
		},
	}
}
