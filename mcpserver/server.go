package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/isdmx/envy/config"
	"github.com/isdmx/envy/envy"
)

// ConfigResolver resolves merged configurations
type ConfigResolver interface {
	Resolve(env any) (any, error)
	FragmentPaths(id string) (common, env envy.FragmentRef)
}

// PresetLister lists scaffold presets
type PresetLister interface {
	Presets() ([]string, error)
}

// MCPServer represents the MCP server
type MCPServer struct {
	config    *config.Config
	logger    *zap.Logger
	resolver  ConfigResolver
	presets   PresetLister
	mcpServer *server.MCPServer
}

// New creates a new MCPServer
func New(cfg *config.Config, logger *zap.Logger, resolver ConfigResolver, presets PresetLister) (*MCPServer, error) {
	s := &MCPServer{
		config:   cfg,
		logger:   logger,
		resolver: resolver,
		presets:  presets,
	}

	logger.Info("configuration loaded",
		zap.String("server.transport", cfg.Server.Transport),
		zap.Int("server.http_port", cfg.Server.HTTPPort),
		zap.String("resolver.path", cfg.Resolver.Path),
		zap.String("resolver.filename", cfg.Resolver.Filename),
		zap.String("resolver.common_env_id", cfg.Resolver.CommonEnvID),
		zap.String("resolver.env_var", cfg.Resolver.EnvVar),
	)

	s.mcpServer = server.NewMCPServer("envy", "Environment-aware build configuration resolver")

	s.registerResolveConfigTool()
	s.registerFragmentPathsTool()
	s.registerListPresetsTool()

	return s, nil
}

func (s *MCPServer) registerResolveConfigTool() {
	tool := mcp.Tool{
		Name:        "resolve_config",
		Description: "Resolve the merged build configuration for an environment",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"env": map[string]any{
					"type":        "string",
					"description": "Environment id, used when none is configured (optional)",
				},
				"format": map[string]any{
					"type":        "string",
					"description": "Output format",
					"enum":        []string{"json", "yaml"},
				},
			},
		},
	}

	s.mcpServer.AddTool(tool, s.handleResolveConfig)
}

func (s *MCPServer) registerFragmentPathsTool() {
	tool := mcp.Tool{
		Name:        "fragment_paths",
		Description: "Show the common and environment fragment paths for an environment",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"env": map[string]any{
					"type":        "string",
					"description": "Environment id",
				},
			},
			Required: []string{"env"},
		},
	}

	s.mcpServer.AddTool(tool, s.handleFragmentPaths)
}

func (s *MCPServer) registerListPresetsTool() {
	tool := mcp.Tool{
		Name:        "list_presets",
		Description: "List the bundled scaffold presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}

	s.mcpServer.AddTool(tool, s.handleListPresets)
}

// handleResolveConfig handles the resolve_config tool
func (s *MCPServer) handleResolveConfig(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := request.GetString("format", "json")
	if format != "json" && format != "yaml" {
		return nil, fmt.Errorf("invalid format: %s, must be one of: json, yaml", format)
	}

	var env any
	if id := request.GetString("env", ""); id != "" {
		env = id
	}

	s.logger.Info("configuration resolution requested", zap.Any("env", env))

	cfg, err := s.resolver.Resolve(env)
	if err != nil {
		s.logger.Error("configuration resolution failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("Resolution failed: %v", err)), nil
	}

	text, err := Encode(cfg, format)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

// handleFragmentPaths handles the fragment_paths tool
func (s *MCPServer) handleFragmentPaths(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("env")
	if err != nil {
		return nil, fmt.Errorf("env parameter is required: %w", err)
	}

	common, env := s.resolver.FragmentPaths(id)
	text, err := Encode(map[string]envy.FragmentRef{"common": common, "env": env}, "json")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

// handleListPresets handles the list_presets tool
func (s *MCPServer) handleListPresets(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.presets.Presets()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := Encode(names, "json")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

// Encode renders v as indented JSON or as YAML.
func Encode(v any, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("error encoding json: %w", err)
		}
		return string(data), nil
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("error encoding yaml: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// ServeStdio starts the server on stdio
func (s *MCPServer) ServeStdio() error {
	s.logger.Info("starting MCP server on stdio")
	return server.ServeStdio(s.mcpServer)
}

// ServeHTTP starts the server on HTTP
func (s *MCPServer) ServeHTTP() error {
	port := s.config.Server.HTTPPort
	s.logger.Info("starting MCP server on HTTP", zap.Int("port", port))

	httpServer := server.NewStreamableHTTPServer(s.mcpServer)
	return httpServer.Start(fmt.Sprintf(":%d", port))
}
