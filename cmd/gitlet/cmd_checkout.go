package main

import (
	"github.com/spf13/cobra"
)

// newCheckoutCmd handles the three checkout forms:
//
//	checkout -- <file>
//	checkout <commit> -- <file>
//	checkout <branch>
func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout [<commit>] -- <file> | checkout <branch>",
		Short: "Restore a file or switch branches",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := cmd.ArgsLenAtDash()
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}

			switch {
			case dash == 0 && len(args) == 1:
				p, err := absArg(args[0])
				if err != nil {
					return err
				}
				return r.CheckoutFile(p)
			case dash == 1 && len(args) == 2:
				p, err := absArg(args[1])
				if err != nil {
					return err
				}
				return r.CheckoutFileAt(args[0], p)
			case dash == -1 && len(args) == 1:
				return r.CheckoutBranch(args[0])
			default:
				return errIncorrectOperands
			}
		},
	}
}
