package cli

import (
	"github.com/on-the-ground/rvm_ive_go/programs"
	"github.com/spf13/cobra"
)

func demoCommand(opts *rootOptions, d programs.Demo) *cobra.Command {
	var n int64
	cmd := &cobra.Command{
		Use:   d.Name,
		Short: d.Summary,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := opts.runtime(cmd)
			if err != nil {
				return err
			}
			_, err = d.Run(rt, n)
			return err
		},
	}
	cmd.Flags().Int64Var(&n, "n", d.DefaultN, "argument passed to the demo's main function")
	return cmd
}

func allCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run every demo with its default argument on one runtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := opts.runtime(cmd)
			if err != nil {
				return err
			}
			for _, d := range programs.All() {
				if _, err := d.Run(rt, d.DefaultN); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
