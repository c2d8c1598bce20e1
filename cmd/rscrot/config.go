package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or persist the effective configuration",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration in rc format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if r.loadErr != nil {
				return r.loadErr
			}
			fmt.Fprint(cmd.OutOrStdout(), r.config.String())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Write the effective configuration to the rc file",
		Long: `Write the effective configuration, flags included, to the rc file that was
loaded, or to ~/.config/rscrot/config.rc when there is none yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if r.loadErr != nil {
				return r.loadErr
			}
			path, err := r.env.loader.Save(r.config)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Configuration saved to %s\n", path)
			return nil
		},
	})
	return cmd
}
