package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/isdmx/envy/envy"
)

// Config represents the envy tool configuration
type Config struct {
	Resolver ResolverConfig `mapstructure:"resolver"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Server   ServerConfig   `mapstructure:"server"`
	Scaffold ScaffoldConfig `mapstructure:"scaffold"`

	// AmbientEnv is the value of the Resolver.EnvVar variable, read once
	// when the configuration is loaded.
	AmbientEnv string `mapstructure:"-"`
}

// ResolverConfig holds the fragment resolution settings. Env is either an
// environment id or an object with an "id" key.
type ResolverConfig struct {
	Path        string         `mapstructure:"path"`
	Filename    string         `mapstructure:"filename"`
	CommonEnvID string         `mapstructure:"common_env_id"`
	Env         any            `mapstructure:"env"`
	EnvVar      string         `mapstructure:"env_var"`
	Root        string         `mapstructure:"root"`
	Verbose     bool           `mapstructure:"verbose"`
	Vars        map[string]any `mapstructure:"vars"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

// ServerConfig holds MCP server configuration
type ServerConfig struct {
	Transport string `mapstructure:"transport"`
	HTTPPort  int    `mapstructure:"http_port"`
}

// ScaffoldConfig holds defaults for the create command
type ScaffoldConfig struct {
	Preset string `mapstructure:"preset"`
	Dest   string `mapstructure:"dest"`
}

// New loads and validates the configuration using a fresh viper instance
func New() (*Config, error) {
	return Load(viper.New())
}

// Load reads the configuration through v. Flags bound to v beforehand take
// precedence over the config file and environment.
func Load(v *viper.Viper) (*Config, error) {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("envy")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ENVY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// If config file not found, continue with defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	// The ambient environment variable is named by the config itself, so it
	// is bound only once the name is known.
	if err := v.BindEnv("ambient_env", config.Resolver.EnvVar); err != nil {
		return nil, fmt.Errorf("error binding %s: %w", config.Resolver.EnvVar, err)
	}
	config.AmbientEnv = v.GetString("ambient_env")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	defaults := envy.DefaultSettings()

	v.SetDefault("resolver.path", defaults.Path)
	v.SetDefault("resolver.filename", "webpack."+envy.Placeholder+".yaml")
	v.SetDefault("resolver.common_env_id", defaults.CommonEnvID)
	v.SetDefault("resolver.env", "")
	v.SetDefault("resolver.env_var", "NODE_ENV")
	v.SetDefault("resolver.root", "")
	v.SetDefault("resolver.verbose", false)

	v.SetDefault("logging.mode", "production")
	v.SetDefault("logging.level", "info")

	v.SetDefault("server.transport", "stdio")
	v.SetDefault("server.http_port", 8080)

	v.SetDefault("scaffold.preset", "empty")
	v.SetDefault("scaffold.dest", ".")
}

// validate ensures the configuration is valid
func (c *Config) validate() error {
	if !strings.Contains(c.Resolver.Filename, envy.Placeholder) {
		return fmt.Errorf("resolver.filename must contain %s, got: %s", envy.Placeholder, c.Resolver.Filename)
	}

	if c.Resolver.CommonEnvID == "" {
		return fmt.Errorf("resolver.common_env_id must not be empty")
	}

	if c.Resolver.EnvVar == "" {
		return fmt.Errorf("resolver.env_var must not be empty")
	}

	if c.Logging.Mode != "production" && c.Logging.Mode != "development" {
		return fmt.Errorf("invalid logging.mode: %s, must be 'production' or 'development'", c.Logging.Mode)
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}

	if c.Server.Transport != "stdio" && c.Server.Transport != "http" {
		return fmt.Errorf("invalid server.transport: %s, must be 'stdio' or 'http'", c.Server.Transport)
	}

	if c.Server.Transport == "http" && (c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535) {
		return fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort)
	}

	return nil
}

// Settings converts the resolver section into resolver overrides
func (c *Config) Settings() envy.Settings {
	s := envy.Settings{
		Path:        c.Resolver.Path,
		Filename:    c.Resolver.Filename,
		CommonEnvID: c.Resolver.CommonEnvID,
		Root:        c.Resolver.Root,
		Verbose:     c.Resolver.Verbose,
		Vars:        c.Resolver.Vars,
	}
	if env, ok := c.Resolver.Env.(string); !ok || env != "" {
		s.Env = c.Resolver.Env
	}
	return s
}
