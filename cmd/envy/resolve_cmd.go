package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/isdmx/envy/envy"
	"github.com/isdmx/envy/mcpserver"
)

func newResolveCmd(v *viper.Viper) *cobra.Command {
	var (
		env    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the merged configuration",
		Long:  "Merge the common fragment with the fragment of the selected environment and print the result.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(v, func(r *envy.Resolver) error {
				var supplied any
				if env != "" {
					supplied = env
				}

				cfg, err := r.Resolve(supplied)
				if err != nil {
					return err
				}

				text, err := mcpserver.Encode(cfg, format)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "environment id, used when none is configured")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}
