package envy

import (
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/mohae/deepcopy"
)

// Placeholder is the token replaced by an environment id in Settings.Filename.
const Placeholder = "[env]"

// DefaultEnvID is used when neither the settings nor the ambient environment
// name an environment.
const DefaultEnvID = "development"

// Settings describes where configuration fragments live and how they are
// named. Zero-valued fields take the package defaults.
type Settings struct {
	// Path is the fragment directory, relative to Root unless absolute.
	Path string `mapstructure:"path"`
	// Filename is the fragment name template containing Placeholder.
	Filename string `mapstructure:"filename"`
	// CommonEnvID is substituted into Filename for the shared fragment.
	CommonEnvID string `mapstructure:"common_env_id"`
	// Env selects the environment: nil, a string id, an Env, a *Env or a
	// map[string]any with an "id" key.
	Env any `mapstructure:"env"`
	// Root is the base directory for Path. Defaults to the working directory.
	Root string `mapstructure:"root"`
	// Verbose logs the resolved environment id.
	Verbose bool `mapstructure:"verbose"`
	// Vars are free-form values handed to the fragments.
	Vars map[string]any `mapstructure:"vars"`
}

// DefaultSettings returns the built-in defaults. Root is left empty and
// resolved to the working directory by New.
func DefaultSettings() Settings {
	return Settings{
		Path:        "./config",
		Filename:    "webpack." + Placeholder + ".js",
		CommonEnvID: "common",
	}
}

// Effective is the normalized, read-only view of the settings passed to
// fragments on every resolution.
type Effective struct {
	Path        string
	Filename    string
	CommonEnvID string
	Root        string
	ConfigDir   string
	Env         Env
	Verbose     bool
	Vars        map[string]any
}

// mergeSettings layers overrides on top of the defaults. The caller's Vars
// are copied so later mutation of the override value cannot leak in.
func mergeSettings(overrides Settings) (Settings, error) {
	s := overrides
	s.Vars = copyVars(overrides.Vars)

	if err := mergo.Merge(&s, DefaultSettings()); err != nil {
		return Settings{}, fmt.Errorf("error merging settings: %w", err)
	}

	if s.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Settings{}, fmt.Errorf("error resolving working directory: %w", err)
		}
		s.Root = wd
	}

	root, err := filepath.Abs(s.Root)
	if err != nil {
		return Settings{}, fmt.Errorf("error resolving root %q: %w", s.Root, err)
	}
	s.Root = root

	return s, nil
}

// resolveDir resolves path against root the way a shell would resolve a
// relative directory from root.
func resolveDir(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

func copyVars(vars map[string]any) map[string]any {
	if vars == nil {
		return nil
	}
	return deepcopy.Copy(vars).(map[string]any)
}
