// Package mcpserver provides the Model Context Protocol (MCP) server implementation.
//
// The mcpserver package exposes envy's resolver to MCP clients. It uses the
// mark3labs/mcp-go library for the protocol and registers the
// resolve_config, fragment_paths and list_presets tools.
package mcpserver
