package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s", cmd.Root().Name(), version)
			if commit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " (%s", commit)
				if date != "" {
					fmt.Fprintf(cmd.OutOrStdout(), ", %s", date)
				}
				fmt.Fprint(cmd.OutOrStdout(), ")")
			}
			fmt.Fprintln(cmd.OutOrStdout())
		},
	}
}
