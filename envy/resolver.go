package envy

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Resolver resolves the merged configuration for an environment. It holds no
// mutable state after construction, so Resolve may be called repeatedly and
// concurrently.
type Resolver struct {
	settings   Settings
	configDir  string
	ambientEnv string
	loader     Loader
	logger     *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithAmbientEnv sets the default environment id used when neither the
// settings nor the Resolve argument select one. Callers typically pass the
// value of an environment variable read once at startup.
func WithAmbientEnv(id string) Option {
	return func(r *Resolver) {
		r.ambientEnv = id
	}
}

// WithLoader sets the fragment loader. See New for the default.
func WithLoader(l Loader) Option {
	return func(r *Resolver) {
		r.loader = l
	}
}

// WithLogger sets the logger used for verbose and debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver from the defaults overlaid with overrides.
//
// Without WithLoader, fragments are read as template files from the OS
// filesystem when the filename extension is .yaml, .yml, .json or .toml.
// For any other extension, including the default webpack.[env].js, an empty
// Registry is used, so resolution fails with a FragmentLoadError naming the
// missing compiled fragment until a loader is supplied.
func New(overrides Settings, opts ...Option) (*Resolver, error) {
	settings, err := mergeSettings(overrides)
	if err != nil {
		return nil, err
	}

	r := &Resolver{
		settings:  settings,
		configDir: resolveDir(settings.Root, settings.Path),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.loader == nil {
		r.loader = defaultLoader(settings.Filename)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	return r, nil
}

// Settings returns a copy of the effective settings.
func (r *Resolver) Settings() Settings {
	s := r.settings
	s.Vars = copyVars(r.settings.Vars)
	return s
}

// ConfigDir returns the absolute fragment directory.
func (r *Resolver) ConfigDir() string {
	return r.configDir
}

// FragmentPaths returns the references of the common fragment and of the
// fragment for environment id.
func (r *Resolver) FragmentPaths(id string) (common, env FragmentRef) {
	return r.fragmentRef(r.settings.CommonEnvID), r.fragmentRef(id)
}

func (r *Resolver) fragmentRef(id string) FragmentRef {
	name := ExpandFilename(r.settings.Filename, id)
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.configDir, name)
	}
	return FragmentRef{Name: name, Path: path}
}

// Resolve loads the common and environment fragments, invokes them and
// returns their merged output. env is the environment supplied by the
// caller at resolution time; it is only consulted when the settings do not
// select an environment themselves.
func (r *Resolver) Resolve(env any) (any, error) {
	eff, err := r.effective(env)
	if err != nil {
		return nil, err
	}

	if eff.Verbose {
		r.logger.Info("running for environment", zap.String("env", eff.Env.ID))
	}

	commonRef, envRef := r.FragmentPaths(eff.Env.ID)
	r.logger.Debug("resolving fragments",
		zap.String("common", commonRef.Path),
		zap.String("env", envRef.Path))

	commonFragment, err := r.loader.Load(commonRef)
	if err != nil {
		return nil, err
	}
	envFragment, err := r.loader.Load(envRef)
	if err != nil {
		return nil, err
	}

	commonOut, err := invoke(commonFragment, commonRef, eff)
	if err != nil {
		return nil, err
	}
	envOut, err := invoke(envFragment, envRef, eff)
	if err != nil {
		return nil, err
	}

	merged, err := Merge(commonOut, envOut)
	if err != nil {
		return nil, fmt.Errorf("error merging %s into %s: %w", envRef.Name, commonRef.Name, err)
	}
	return merged, nil
}

func defaultLoader(filename string) Loader {
	if _, ok := decoders[strings.ToLower(filepath.Ext(filename))]; ok {
		return NewFileLoader(afero.NewOsFs())
	}
	return NewRegistry()
}

// effective builds the per-resolution settings value handed to fragments.
func (r *Resolver) effective(supplied any) (Effective, error) {
	env, err := NormalizeEnv(r.settings.Env, supplied, r.ambientEnv)
	if err != nil {
		return Effective{}, err
	}

	return Effective{
		Path:        r.settings.Path,
		Filename:    r.settings.Filename,
		CommonEnvID: r.settings.CommonEnvID,
		Root:        r.settings.Root,
		ConfigDir:   r.configDir,
		Env:         env,
		Verbose:     r.settings.Verbose,
		Vars:        copyVars(r.settings.Vars),
	}, nil
}

func invoke(f Fragment, ref FragmentRef, eff Effective) (any, error) {
	eff.Vars = copyVars(eff.Vars)
	out, err := f(eff)
	if err != nil {
		return nil, &FragmentExecutionError{Path: ref.Path, Err: err}
	}
	return out, nil
}
