package main

import (
	"fmt"

	"github.com/npillmayer/tinyq/format"
	"github.com/spf13/cobra"
)

func newExpandCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expand <file>",
		Short: "Expand shorthand notation to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readFile(args[0])
			if err != nil {
				return err
			}
			out, err := format.Expand(src)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
