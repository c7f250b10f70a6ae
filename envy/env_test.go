package envy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEnv(t *testing.T) {
	t.Run("UnsetWithoutAmbient", func(t *testing.T) {
		env, err := NormalizeEnv(nil, nil, "")
		require.NoError(t, err)
		assert.Equal(t, Env{ID: "development"}, env)
	})

	t.Run("UnsetUsesAmbient", func(t *testing.T) {
		env, err := NormalizeEnv(nil, nil, "production")
		require.NoError(t, err)
		assert.Equal(t, "production", env.ID)
	})

	t.Run("UnsetUsesSupplied", func(t *testing.T) {
		env, err := NormalizeEnv(nil, "test", "production")
		require.NoError(t, err)
		assert.Equal(t, "test", env.ID)
	})

	t.Run("EmptyStringIsUnset", func(t *testing.T) {
		env, err := NormalizeEnv("", "", "qa")
		require.NoError(t, err)
		assert.Equal(t, "qa", env.ID)
	})

	t.Run("ConfiguredWinsOverSupplied", func(t *testing.T) {
		env, err := NormalizeEnv("staging", "test", "")
		require.NoError(t, err)
		assert.Equal(t, "staging", env.ID)
	})

	t.Run("StringIsWrapped", func(t *testing.T) {
		env, err := NormalizeEnv("staging", nil, "")
		require.NoError(t, err)
		assert.Equal(t, Env{ID: "staging"}, env)
	})

	t.Run("ObjectWithoutID", func(t *testing.T) {
		env, err := NormalizeEnv(map[string]any{"foo": 1}, nil, "")
		require.NoError(t, err)
		assert.Equal(t, "development", env.ID)
		assert.Equal(t, map[string]any{"foo": 1}, env.Attrs)

		env, err = NormalizeEnv(map[string]any{"foo": 1}, nil, "production")
		require.NoError(t, err)
		assert.Equal(t, "production", env.ID)
	})

	t.Run("ObjectWithID", func(t *testing.T) {
		env, err := NormalizeEnv(map[string]any{"id": "production", "analyze": true}, nil, "")
		require.NoError(t, err)
		assert.Equal(t, "production", env.ID)
		assert.Equal(t, map[string]any{"analyze": true}, env.Attrs)
	})

	t.Run("SuppliedObject", func(t *testing.T) {
		env, err := NormalizeEnv(nil, map[string]string{"id": "ci"}, "")
		require.NoError(t, err)
		assert.Equal(t, "ci", env.ID)
	})

	t.Run("EnvValue", func(t *testing.T) {
		env, err := NormalizeEnv(Env{Attrs: map[string]any{"x": 1}}, nil, "")
		require.NoError(t, err)
		assert.Equal(t, "development", env.ID)
		assert.Equal(t, 1, env.Attrs["x"])

		env, err = NormalizeEnv(&Env{ID: "production"}, nil, "")
		require.NoError(t, err)
		assert.Equal(t, "production", env.ID)
	})

	t.Run("NilEnvPointerIsUnset", func(t *testing.T) {
		var e *Env
		env, err := NormalizeEnv(e, "test", "")
		require.NoError(t, err)
		assert.Equal(t, "test", env.ID)
	})

	t.Run("InvalidType", func(t *testing.T) {
		_, err := NormalizeEnv(42, nil, "")
		require.ErrorIs(t, err, ErrInvalidEnv)
		assert.Contains(t, err.Error(), "invalid env option")
	})

	t.Run("InvalidSuppliedType", func(t *testing.T) {
		_, err := NormalizeEnv(nil, true, "")
		assert.ErrorIs(t, err, ErrInvalidEnv)
	})

	t.Run("NonStringID", func(t *testing.T) {
		_, err := NormalizeEnv(map[string]any{"id": 5}, nil, "")
		require.ErrorIs(t, err, ErrInvalidEnv)
		assert.Contains(t, err.Error(), "id must be a string")
	})

	t.Run("AttrsAreCopied", func(t *testing.T) {
		attrs := map[string]any{"x": 1}
		env, err := NormalizeEnv(Env{ID: "a", Attrs: attrs}, nil, "")
		require.NoError(t, err)
		env.Attrs["x"] = 2
		assert.Equal(t, 1, attrs["x"])
	})
}
