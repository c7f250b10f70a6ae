package envy

import (
	"fmt"
	"reflect"

	"dario.cat/mergo"
	"github.com/mohae/deepcopy"
)

// Merge deep-merges the output of the environment fragment into the output
// of the common fragment. Environment values win on scalars, nested objects
// merge recursively and arrays are concatenated, common elements first.
// Neither input is modified.
func Merge(common, env any) (any, error) {
	switch c := common.(type) {
	case map[string]any:
		e, ok := env.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: object and %T", ErrUnmergeable, env)
		}
		return mergeObjects(c, e)
	case []any:
		e, ok := env.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: array and %T", ErrUnmergeable, env)
		}
		merged := make([]any, 0, len(c)+len(e))
		merged = append(merged, deepcopy.Copy(c).([]any)...)
		merged = append(merged, deepcopy.Copy(e).([]any)...)
		return merged, nil
	default:
		return nil, fmt.Errorf("%w: %T and %T", ErrUnmergeable, common, env)
	}
}

func mergeObjects(common, env map[string]any) (map[string]any, error) {
	dst := make(map[string]any, len(common))
	if common != nil {
		dst = deepcopy.Copy(common).(map[string]any)
	}
	if env == nil {
		return dst, nil
	}
	src := deepcopy.Copy(env).(map[string]any)
	alignShapes(dst, src)

	if err := mergo.Merge(&dst, src, mergo.WithOverride, mergo.WithAppendSlice); err != nil {
		return nil, fmt.Errorf("error merging fragments: %w", err)
	}
	return dst, nil
}

// alignShapes prepares dst and src for mergo. Keys whose values differ in
// shape are dropped from dst so the src value replaces them, and slice pairs
// are converted to []any so they can be appended.
func alignShapes(dst, src map[string]any) {
	for key, sv := range src {
		dv, ok := dst[key]
		if !ok {
			continue
		}

		dm, dIsMap := dv.(map[string]any)
		sm, sIsMap := sv.(map[string]any)
		dIsSlice, sIsSlice := isSlice(dv), isSlice(sv)

		switch {
		case dIsMap && sIsMap:
			alignShapes(dm, sm)
		case dIsSlice && sIsSlice:
			dst[key] = toAnySlice(dv)
			src[key] = toAnySlice(sv)
		case dIsSlice || sIsSlice || isMap(dv) || isMap(sv):
			delete(dst, key)
		}
	}
}

func isSlice(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Slice
}

func isMap(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Map
}

func toAnySlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
