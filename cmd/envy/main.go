package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "envy:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	root := &cobra.Command{
		Use:           "envy",
		Short:         "Resolve environment-specific build configuration",
		Long:          "Merge a common configuration fragment with the fragment of the selected environment.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if configFile != "" {
				v.SetConfigFile(configFile)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "path to envy.yaml")
	flags.String("root", "", "base directory for the fragment path (default: working directory)")
	flags.String("path", "", "fragment directory relative to root")
	flags.String("filename", "", "fragment filename template containing [env]")
	flags.Bool("verbose", false, "log the resolved environment")
	flags.String("log-level", "", "log level")
	flags.String("log-mode", "", "log mode: production or development")

	bindFlags(v, flags, map[string]string{
		"resolver.root":     "root",
		"resolver.path":     "path",
		"resolver.filename": "filename",
		"resolver.verbose":  "verbose",
		"logging.level":     "log-level",
		"logging.mode":      "log-mode",
	})

	root.AddCommand(
		newResolveCmd(v),
		newCreateCmd(v),
		newPresetsCmd(v),
		newServeCmd(v),
	)
	return root
}
