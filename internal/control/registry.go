package control

import (
	"fmt"
	"sort"

	"github.com/san-kum/gridsim/internal/network"
)

// Factory builds a controller variant from loosely-typed parameters,
// as read from a config file.
type Factory func(params map[string]any) (Controller, error)

// Registry maps controller type names to factories.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	r.factories["const"] = func(params map[string]any) (Controller, error) {
		element, _ := params["element"].(string)
		variable, _ := params["variable"].(string)
		if element == "" || variable == "" {
			return nil, fmt.Errorf("gridsim: const controller needs element and variable")
		}
		return NewConstControl(element, variable,
			paramInts(params["element_index"]),
			network.AsFloats(params["values"])), nil
	}

	r.factories["tap"] = func(params map[string]any) (Controller, error) {
		trafotable, _ := params["trafotable"].(string)
		if trafotable == "" {
			trafotable = network.TableTrafo
		}
		side, _ := params["side"].(string)
		tids := paramInts(params["element_index"])
		if len(tids) != 1 {
			return nil, fmt.Errorf("gridsim: tap controller needs exactly one element_index")
		}
		target := paramInts(params["target_pos"])
		pos := 0
		if len(target) > 0 {
			pos = target[0]
		}
		return NewTapController(trafotable, tids[0], side, pos), nil
	}

	return r
}

func (r *Registry) Get(name string, params map[string]any) (Controller, error) {
	fn, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("gridsim: unknown controller: %s", name)
	}
	return fn(params)
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func paramInts(v any) []int {
	var out []int
	for _, e := range network.EnsureIterable(v) {
		switch n := e.(type) {
		case int:
			out = append(out, n)
		case int64:
			out = append(out, int(n))
		case float64:
			out = append(out, int(n))
		}
	}
	return out
}
