package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/isdmx/envy/config"
	"github.com/isdmx/envy/envy"
)

// MockResolver implements ConfigResolver for testing
type MockResolver struct {
	result  any
	err     error
	lastEnv any
}

func (m *MockResolver) Resolve(env any) (any, error) {
	m.lastEnv = env
	return m.result, m.err
}

func (m *MockResolver) FragmentPaths(id string) (common, env envy.FragmentRef) {
	return envy.FragmentRef{Name: "webpack.common.yaml", Path: "/app/config/webpack.common.yaml"},
		envy.FragmentRef{Name: "webpack." + id + ".yaml", Path: "/app/config/webpack." + id + ".yaml"}
}

type staticPresets []string

func (p staticPresets) Presets() ([]string, error) {
	return p, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Transport: "stdio", HTTPPort: 8080},
		Resolver: config.ResolverConfig{Path: "./config", Filename: "webpack.[env].yaml", CommonEnvID: "common", EnvVar: "NODE_ENV"},
		Logging:  config.LoggingConfig{Mode: "production", Level: "info"},
	}
}

func newRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestNewMCPServer(t *testing.T) {
	logger := zaptest.NewLogger(t)
	cfg := testConfig()
	resolver := &MockResolver{}
	presets := staticPresets{"empty"}

	server, err := New(cfg, logger, resolver, presets)
	require.NoError(t, err)
	require.NotNil(t, server)
	assert.Equal(t, cfg, server.config)
	assert.Equal(t, logger, server.logger)
	assert.Equal(t, resolver, server.resolver)
	assert.NotNil(t, server.mcpServer)
}

func TestHandleResolveConfig(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		resolver := &MockResolver{result: map[string]any{"mode": "production"}}
		server, err := New(testConfig(), zaptest.NewLogger(t), resolver, staticPresets{})
		require.NoError(t, err)

		res, err := server.handleResolveConfig(context.Background(), newRequest(map[string]any{"env": "production"}))
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Equal(t, "production", resolver.lastEnv)

		var out map[string]any
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
		assert.Equal(t, "production", out["mode"])
	})

	t.Run("YAMLWithoutEnv", func(t *testing.T) {
		resolver := &MockResolver{result: map[string]any{"mode": "development"}}
		server, err := New(testConfig(), zaptest.NewLogger(t), resolver, staticPresets{})
		require.NoError(t, err)

		res, err := server.handleResolveConfig(context.Background(), newRequest(map[string]any{"format": "yaml"}))
		require.NoError(t, err)
		assert.Nil(t, resolver.lastEnv)
		assert.Equal(t, "mode: development\n", resultText(t, res))
	})

	t.Run("InvalidFormat", func(t *testing.T) {
		server, err := New(testConfig(), zaptest.NewLogger(t), &MockResolver{}, staticPresets{})
		require.NoError(t, err)

		_, err = server.handleResolveConfig(context.Background(), newRequest(map[string]any{"format": "xml"}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})

	t.Run("ResolutionFailure", func(t *testing.T) {
		resolver := &MockResolver{err: errors.New("load fragment /app/config/webpack.qa.yaml: fragment not found")}
		server, err := New(testConfig(), zaptest.NewLogger(t), resolver, staticPresets{})
		require.NoError(t, err)

		res, err := server.handleResolveConfig(context.Background(), newRequest(nil))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "fragment not found")
	})
}

func TestHandleFragmentPaths(t *testing.T) {
	server, err := New(testConfig(), zaptest.NewLogger(t), &MockResolver{}, staticPresets{})
	require.NoError(t, err)

	t.Run("Paths", func(t *testing.T) {
		res, err := server.handleFragmentPaths(context.Background(), newRequest(map[string]any{"env": "production"}))
		require.NoError(t, err)

		var out map[string]envy.FragmentRef
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
		assert.Equal(t, "/app/config/webpack.common.yaml", out["common"].Path)
		assert.Equal(t, "/app/config/webpack.production.yaml", out["env"].Path)
	})

	t.Run("MissingEnv", func(t *testing.T) {
		_, err := server.handleFragmentPaths(context.Background(), newRequest(map[string]any{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "env parameter is required")
	})
}

func TestHandleListPresets(t *testing.T) {
	server, err := New(testConfig(), zaptest.NewLogger(t), &MockResolver{}, staticPresets{"empty", "react"})
	require.NoError(t, err)

	res, err := server.handleListPresets(context.Background(), newRequest(nil))
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &names))
	assert.Equal(t, []string{"empty", "react"}, names)
}

func TestEncode(t *testing.T) {
	_, err := Encode(map[string]any{}, "xml")
	assert.Error(t, err)

	text, err := Encode([]any{"a"}, "json")
	require.NoError(t, err)
	assert.JSONEq(t, `["a"]`, text)
}
