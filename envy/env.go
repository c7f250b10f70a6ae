package envy

import (
	"fmt"
	"maps"
)

// Env is a normalized environment selector.
type Env struct {
	ID string
	// Attrs holds the remaining keys of an object-form selector.
	Attrs map[string]any
}

// NormalizeEnv turns a configured selector into an Env.
//
// When configured is unset, supplied (the environment handed to Resolve by
// the build tool) is used instead; when that is unset too, the id falls back
// to ambient and then to DefaultEnvID. Object selectors without an id get the
// same fallback. Any other shape fails with ErrInvalidEnv.
func NormalizeEnv(configured, supplied any, ambient string) (Env, error) {
	raw := configured
	if isUnsetEnv(raw) {
		raw = supplied
	}
	if isUnsetEnv(raw) {
		return Env{ID: fallbackEnvID(ambient)}, nil
	}

	switch v := raw.(type) {
	case string:
		return Env{ID: v}, nil
	case Env:
		return withFallbackID(v.ID, v.Attrs, ambient), nil
	case *Env:
		return withFallbackID(v.ID, v.Attrs, ambient), nil
	case map[string]string:
		obj := make(map[string]any, len(v))
		for k, s := range v {
			obj[k] = s
		}
		return envFromObject(obj, ambient)
	case map[string]any:
		return envFromObject(v, ambient)
	default:
		return Env{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidEnv, raw)
	}
}

func envFromObject(obj map[string]any, ambient string) (Env, error) {
	var attrs map[string]any
	for k, v := range obj {
		if k == "id" {
			continue
		}
		if attrs == nil {
			attrs = make(map[string]any, len(obj))
		}
		attrs[k] = v
	}

	switch id := obj["id"].(type) {
	case nil:
		return withFallbackID("", attrs, ambient), nil
	case string:
		return withFallbackID(id, attrs, ambient), nil
	default:
		return Env{}, fmt.Errorf("%w: id must be a string, got %T", ErrInvalidEnv, id)
	}
}

func withFallbackID(id string, attrs map[string]any, ambient string) Env {
	if id == "" {
		id = fallbackEnvID(ambient)
	}
	return Env{ID: id, Attrs: maps.Clone(attrs)}
}

func fallbackEnvID(ambient string) string {
	if ambient != "" {
		return ambient
	}
	return DefaultEnvID
}

func isUnsetEnv(v any) bool {
	switch e := v.(type) {
	case nil:
		return true
	case string:
		return e == ""
	case *Env:
		return e == nil
	default:
		return false
	}
}
