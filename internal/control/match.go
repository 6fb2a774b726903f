package control

import (
	"reflect"

	"github.com/san-kum/gridsim/internal/network"
)

// matchValues compares a controller attribute against a requested
// parameter. The comparison variant is chosen from the shapes of the
// two values:
//
//   - scalar vs scalar: equality
//   - scalar vs sequence (either side): every element equals the scalar
//   - sequences of equal length: element-wise equality
//   - sequences of differing length: non-empty intersection
func matchValues(got, want any) bool {
	gs, gotSeq := asSequence(got)
	ws, wantSeq := asSequence(want)

	switch {
	case !gotSeq && !wantSeq:
		return network.ValueEqual(got, want)
	case gotSeq != wantSeq:
		seq, scalar := gs, want
		if wantSeq {
			seq, scalar = ws, got
		}
		if len(seq) == 0 {
			return false
		}
		for _, e := range seq {
			if !network.ValueEqual(e, scalar) {
				return false
			}
		}
		return true
	case len(gs) == len(ws):
		for i := range gs {
			if !network.ValueEqual(gs[i], ws[i]) {
				return false
			}
		}
		return true
	default:
		return len(intersect(gs, ws)) > 0
	}
}

// matchesAttributes reports whether the controller's attributes satisfy
// every requested parameter. A key missing from the controller's
// attribute set is a query miss, logged at debug level. The
// element_index key is tracked apart from the rest: when all other keys
// match but element_index does not, the element overlap is reported at
// info level without changing the false result.
func matchesAttributes(c Controller, parameters map[string]any) bool {
	attrs := c.Attributes()

	completeMatch := true
	elementIndexMatch := true
	for key, want := range parameters {
		got, ok := attrs[key]
		if !ok {
			logger.Debug("%s is no attribute of controller object %v", key, c)
			return false
		}
		match := matchValues(got, want)
		if key == "element_index" {
			elementIndexMatch = match
		} else {
			completeMatch = completeMatch && match
		}
	}

	if completeMatch && !elementIndexMatch {
		overlap := intersect(
			network.EnsureIterable(attrs["element_index"]),
			network.EnsureIterable(parameters["element_index"]),
		)
		if len(overlap) > 0 {
			logger.Info("'element_index' has an intersection of %v with controller %d",
				overlap, c.Index())
		}
	}

	return completeMatch && elementIndexMatch
}

// asSequence reports whether v is slice-shaped and, if so, its elements.
func asSequence(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	return network.EnsureIterable(v), true
}

// intersect returns the elements of a that equal some element of b,
// preserving a's order.
func intersect(a, b []any) []any {
	var out []any
	for _, e := range a {
		for _, f := range b {
			if network.ValueEqual(e, f) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
