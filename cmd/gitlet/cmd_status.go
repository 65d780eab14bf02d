package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show branches, staged changes and working-tree changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			st, err := r.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "=== Branches ===")
			for _, b := range st.Branches {
				if b == st.Current {
					fmt.Fprintf(out, "*%s\n", b)
				} else {
					fmt.Fprintln(out, b)
				}
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, "=== Staged Files ===")
			for _, p := range st.Staged {
				fmt.Fprintln(out, p)
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, "=== Removed Files ===")
			for _, p := range st.Removed {
				fmt.Fprintln(out, p)
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, "=== Modifications Not Staged For Commit ===")
			for _, m := range st.Modified {
				fmt.Fprintf(out, "%s (%s)\n", m.Path, m.Kind)
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, "=== Untracked Files ===")
			for _, p := range st.Untracked {
				fmt.Fprintln(out, p)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
