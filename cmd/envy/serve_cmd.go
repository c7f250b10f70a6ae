package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/isdmx/envy/config"
	"github.com/isdmx/envy/envy"
	"github.com/isdmx/envy/mcpserver"
	"github.com/isdmx/envy/scaffold"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve configuration resolution over MCP",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			app := fx.New(
				appOptions(v),
				fx.Provide(
					func(r *envy.Resolver) mcpserver.ConfigResolver { return r },
					func(s *scaffold.Scaffolder) mcpserver.PresetLister { return s },

					// MCP Server
					mcpserver.New,
				),

				// Start the appropriate transport based on config
				fx.Invoke(
					func(cfg *config.Config, server *mcpserver.MCPServer, shutdowner fx.Shutdowner) {
						serve := server.ServeStdio
						if cfg.Server.Transport == "http" {
							serve = server.ServeHTTP
						}
						go func() {
							err := serve()
							_ = shutdowner.Shutdown(fx.ExitCode(exitCode(err)))
						}()
					},
				),
			)
			if err := app.Err(); err != nil {
				return err
			}

			app.Run()
			return nil
		},
	}

	cmd.Flags().String("transport", "", "transport: stdio or http")
	cmd.Flags().Int("port", 0, "HTTP port")
	bindFlags(v, cmd.Flags(), map[string]string{
		"server.transport": "transport",
		"server.http_port": "port",
	})
	return cmd
}

func exitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}
