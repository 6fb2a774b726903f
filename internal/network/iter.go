package network

import "reflect"

// EnsureIterable normalizes a scalar or a slice into a slice of values,
// e.g. EnsureIterable(3) == []any{3}. A nil input yields an empty slice.
func EnsureIterable(v any) []any {
	if v == nil {
		return nil
	}
	switch s := v.(type) {
	case []any:
		return s
	case []int:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	case []float64:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{v}
}

// AsFloats coerces a scalar or numeric slice into a []float64, so that
// AsFloats(0) == []float64{0}. Non-numeric input yields nil.
func AsFloats(v any) []float64 {
	switch n := v.(type) {
	case float64:
		return []float64{n}
	case int:
		return []float64{float64(n)}
	case []float64:
		out := make([]float64, len(n))
		copy(out, n)
		return out
	case []int:
		out := make([]float64, len(n))
		for i, e := range n {
			out[i] = float64(e)
		}
		return out
	case []any:
		out := make([]float64, 0, len(n))
		for _, e := range n {
			f, ok := asFloat(e)
			if !ok {
				return nil
			}
			out = append(out, f)
		}
		return out
	}
	if f, ok := asFloat(v); ok {
		return []float64{f}
	}
	return nil
}
