package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/isdmx/envy/config"
	"github.com/isdmx/envy/scaffold"
)

func newCreateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the configuration file structure",
		Long:  "Copy the files of a bundled preset into the destination directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(v, func(cfg *config.Config, s *scaffold.Scaffolder) error {
				written, err := s.Create(cfg.Scaffold.Preset, cfg.Scaffold.Dest)
				if err != nil {
					return err
				}
				for _, path := range written {
					fmt.Fprintln(cmd.OutOrStdout(), path)
				}
				return nil
			})
		},
	}

	cmd.Flags().String("preset", "", "which preset to use for the structure")
	cmd.Flags().String("dest", "", "destination directory")
	bindFlags(v, cmd.Flags(), map[string]string{
		"scaffold.preset": "preset",
		"scaffold.dest":   "dest",
	})
	return cmd
}

func newPresetsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the bundled presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(v, func(s *scaffold.Scaffolder) error {
				names, err := s.Presets()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
}
