package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DefaultPreset is used when no preset name is given.
const DefaultPreset = "empty"

// ErrPresetNotFound is returned for unknown preset names.
var ErrPresetNotFound = errors.New("preset not found")

//go:embed all:presets
var bundled embed.FS

// Scaffolder copies presets into a destination filesystem.
type Scaffolder struct {
	fs      afero.Fs
	presets fs.FS
	logger  *zap.Logger
}

// New creates a Scaffolder writing to dst from the bundled presets.
func New(dst afero.Fs, logger *zap.Logger) *Scaffolder {
	presets, err := fs.Sub(bundled, "presets")
	if err != nil {
		// presets is a literal embedded directory
		panic(err)
	}
	return NewWithPresets(dst, presets, logger)
}

// NewWithPresets creates a Scaffolder reading presets from the top-level
// directories of presets.
func NewWithPresets(dst afero.Fs, presets fs.FS, logger *zap.Logger) *Scaffolder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scaffolder{fs: dst, presets: presets, logger: logger}
}

// Presets returns the available preset names in sorted order.
func (s *Scaffolder) Presets() ([]string, error) {
	entries, err := fs.ReadDir(s.presets, ".")
	if err != nil {
		return nil, fmt.Errorf("error listing presets: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// Create copies the named preset into dest, overwriting existing files, and
// returns the written paths. Nothing is written for an unknown preset.
func (s *Scaffolder) Create(preset, dest string) ([]string, error) {
	if preset == "" {
		preset = DefaultPreset
	}

	if !fs.ValidPath(preset) {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, preset)
	}
	info, err := fs.Stat(s.presets, preset)
	if err != nil || !info.IsDir() {
		s.logger.Error("preset not found", zap.String("preset", preset))
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, preset)
	}

	s.logger.Info("copying files", zap.String("preset", preset), zap.String("dest", dest))

	var written []string
	err = fs.WalkDir(s.presets, preset, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel := path.Clean(p[len(preset):])
		target := filepath.Join(dest, filepath.FromSlash(rel))

		if d.IsDir() {
			return s.fs.MkdirAll(target, 0o755)
		}

		data, err := fs.ReadFile(s.presets, p)
		if err != nil {
			return err
		}
		if err := afero.WriteFile(s.fs, target, data, 0o644); err != nil {
			return err
		}
		written = append(written, target)
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("error copying preset %q: %w", preset, err)
	}

	s.logger.Info("configuration structure created", zap.Int("files", len(written)))
	return written, nil
}
