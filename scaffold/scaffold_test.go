package scaffold

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func countFiles(t *testing.T, fsys afero.Fs) int {
	t.Helper()
	n := 0
	err := afero.Walk(fsys, "/", func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}

func TestBundledPresets(t *testing.T) {
	s := New(afero.NewMemMapFs(), zaptest.NewLogger(t))

	names, err := s.Presets()
	require.NoError(t, err)
	assert.Contains(t, names, DefaultPreset)
}

func TestCreate(t *testing.T) {
	presets := fstest.MapFS{
		"react/config/webpack.common.yaml":     {Data: []byte("entry: {}\n")},
		"react/config/webpack.production.yaml": {Data: []byte("mode: production\n")},
		"react/.babelrc":                       {Data: []byte("{}")},
		"empty/config/webpack.common.yaml":     {Data: []byte("output: {}\n")},
	}

	t.Run("CopiesTree", func(t *testing.T) {
		dst := afero.NewMemMapFs()
		s := NewWithPresets(dst, presets, zaptest.NewLogger(t))

		written, err := s.Create("react", "/work")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			"/work/.babelrc",
			"/work/config/webpack.common.yaml",
			"/work/config/webpack.production.yaml",
		}, written)

		data, err := afero.ReadFile(dst, "/work/config/webpack.production.yaml")
		require.NoError(t, err)
		assert.Equal(t, "mode: production\n", string(data))
	})

	t.Run("DefaultPreset", func(t *testing.T) {
		dst := afero.NewMemMapFs()
		s := NewWithPresets(dst, presets, nil)

		written, err := s.Create("", "/work")
		require.NoError(t, err)
		assert.Equal(t, []string{"/work/config/webpack.common.yaml"}, written)
	})

	t.Run("OverwritesExisting", func(t *testing.T) {
		dst := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(dst, "/work/config/webpack.common.yaml", []byte("old"), 0o644))
		s := NewWithPresets(dst, presets, nil)

		_, err := s.Create("empty", "/work")
		require.NoError(t, err)

		data, err := afero.ReadFile(dst, "/work/config/webpack.common.yaml")
		require.NoError(t, err)
		assert.Equal(t, "output: {}\n", string(data))
	})

	t.Run("UnknownPresetWritesNothing", func(t *testing.T) {
		dst := afero.NewMemMapFs()
		s := NewWithPresets(dst, presets, zaptest.NewLogger(t))

		written, err := s.Create("vue", "/work")
		require.ErrorIs(t, err, ErrPresetNotFound)
		assert.Empty(t, written)
		assert.Zero(t, countFiles(t, dst))
	})

	t.Run("RejectsTraversal", func(t *testing.T) {
		dst := afero.NewMemMapFs()
		s := NewWithPresets(dst, presets, nil)

		_, err := s.Create("../react", "/work")
		assert.ErrorIs(t, err, ErrPresetNotFound)
	})

	t.Run("FileIsNotAPreset", func(t *testing.T) {
		s := NewWithPresets(afero.NewMemMapFs(), presets, nil)

		_, err := s.Create("react/.babelrc", "/work")
		assert.ErrorIs(t, err, ErrPresetNotFound)
	})
}
