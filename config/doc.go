// Package config provides envy's own configuration management.
//
// The config package loads the tool settings from an optional envy.yaml
// file, ENVY_* environment variables and bound command-line flags. It covers
// where fragments live and how they are named, logging, the MCP server
// transport and the scaffold defaults.
//
// Usage:
//
//	cfg, err := config.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := envy.New(cfg.Settings(), envy.WithAmbientEnv(cfg.AmbientEnv))
package config
