package control

import (
	"strings"

	"github.com/san-kum/gridsim/internal/network"
)

// TypeSelector narrows controllers by type: either by Name, compared
// against the first whitespace-delimited token of the controller's
// display name (case-insensitive unless CaseSensitive is set), or by an
// arbitrary Match predicate when the caller holds the type itself.
// Match wins when both are given.
type TypeSelector struct {
	Name          string
	CaseSensitive bool
	Match         func(Controller) bool
}

func (ts TypeSelector) empty() bool {
	return ts.Name == "" && ts.Match == nil
}

// Query describes a controller search: an optional type selector, an
// optional parameter mapping whose keys are either controller-table
// columns or controller attributes, and an optional index subset.
type Query struct {
	Type       TypeSelector
	Parameters map[string]any
	Index      []int
}

// IndexByType returns the indices (within idx, or the whole table when
// idx is empty) whose controller object is a T.
func IndexByType[T any](net *network.Net, idx []int) []int {
	if len(idx) == 0 {
		idx = net.Controller().Index()
	}
	var out []int
	for _, i := range idx {
		c, ok := controllerAt(net, i)
		if !ok {
			continue
		}
		if _, ok := any(c).(T); ok {
			out = append(out, i)
		}
	}
	return out
}

// IndexByTypeName returns the indices whose controller's type name
// matches typename.
func IndexByTypeName(net *network.Net, typename string, idx []int, caseSensitive bool) []int {
	if len(idx) == 0 {
		idx = net.Controller().Index()
	}
	var out []int
	for _, i := range idx {
		c, ok := controllerAt(net, i)
		if !ok {
			continue
		}
		token := typeToken(c)
		if caseSensitive && token == typename ||
			!caseSensitive && strings.EqualFold(token, typename) {
			out = append(out, i)
		}
	}
	return out
}

// FindControllers returns the indices of controllers satisfying the
// query, in controller-table order.
func FindControllers(net *network.Net, q Query) []int {
	idx := q.Index
	if len(idx) == 0 {
		idx = net.Controller().Index()
	}

	switch {
	case q.Type.Match != nil:
		var narrowed []int
		for _, i := range idx {
			if c, ok := controllerAt(net, i); ok && q.Type.Match(c) {
				narrowed = append(narrowed, i)
			}
		}
		idx = narrowed
	case q.Type.Name != "":
		idx = IndexByTypeName(net, q.Type.Name, idx, q.Type.CaseSensitive)
	}

	if q.Parameters == nil {
		return idx
	}

	ctrl := net.Controller()
	attributeParams := make(map[string]any)
	for key, want := range q.Parameters {
		if ctrl.HasColumn(key) {
			idx = intersectIndex(idx, ctrl.Where(key, want))
		} else {
			attributeParams[key] = want
		}
	}

	var out []int
	for _, i := range idx {
		c, ok := controllerAt(net, i)
		if !ok {
			continue
		}
		if matchesAttributes(c, attributeParams) {
			out = append(out, i)
		}
	}
	return out
}

// typeToken is the first whitespace-delimited token of the display name.
func typeToken(c Controller) string {
	fields := strings.Fields(c.String())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// intersectIndex keeps the elements of idx present in other, preserving
// idx order.
func intersectIndex(idx, other []int) []int {
	in := make(map[int]bool, len(other))
	for _, i := range other {
		in[i] = true
	}
	var out []int
	for _, i := range idx {
		if in[i] {
			out = append(out, i)
		}
	}
	return out
}
