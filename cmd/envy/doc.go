// Package main is the entry point for the envy command.
//
// envy resolves a build tool's configuration by merging a shared fragment
// with an environment-specific one. The command can print the resolved
// configuration, scaffold a starter fragment layout from a bundled preset,
// and serve resolution over the Model Context Protocol.
//
// The application uses Uber's fx framework for dependency wiring, cobra for
// the command tree, zap for structured logging and viper for configuration.
package main
