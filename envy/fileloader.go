package envy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type decodeFunc func(data []byte) (any, error)

var decoders = map[string]decodeFunc{
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".json": decodeJSON,
	".toml": decodeTOML,
}

// FileLoader loads fragments from template files. A fragment file is a
// text/template rendered with the Effective settings and decoded according to
// its extension (.yaml, .yml, .json or .toml).
type FileLoader struct {
	fs afero.Fs
}

// NewFileLoader returns a FileLoader reading from fsys.
func NewFileLoader(fsys afero.Fs) *FileLoader {
	return &FileLoader{fs: fsys}
}

// Load reads and parses the fragment template at ref.Path.
func (l *FileLoader) Load(ref FragmentRef) (Fragment, error) {
	data, err := afero.ReadFile(l.fs, ref.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %w", ErrFragmentNotFound, err)
		}
		return nil, &FragmentLoadError{Path: ref.Path, Err: err}
	}

	ext := strings.ToLower(filepath.Ext(ref.Path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, &FragmentLoadError{Path: ref.Path, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)}
	}

	tmpl, err := template.New(filepath.Base(ref.Path)).
		Funcs(templateFuncs).
		Option("missingkey=error").
		Parse(string(data))
	if err != nil {
		return nil, &FragmentLoadError{Path: ref.Path, Err: err}
	}

	return func(s Effective) (any, error) {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, s); err != nil {
			return nil, fmt.Errorf("error rendering template: %w", err)
		}
		out, err := decode(buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", strings.TrimPrefix(ext, "."), err)
		}
		return out, nil
	}, nil
}

var templateFuncs = template.FuncMap{
	"join": func(elem ...string) string {
		return filepath.Join(elem...)
	},
	"default": func(def, v any) any {
		if v == nil {
			return def
		}
		if s, ok := v.(string); ok && s == "" {
			return def
		}
		return v
	},
}

func decodeYAML(data []byte) (any, error) {
	var out any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeJSON(data []byte) (any, error) {
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeTOML(data []byte) (any, error) {
	var out map[string]any
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
