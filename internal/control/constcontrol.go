package control

import (
	"fmt"

	"github.com/san-kum/gridsim/internal/network"
)

// ConstControl writes fixed values into one column of an element table,
// one value per controlled element.
type ConstControl struct {
	basicController
	Element      string
	Variable     string
	ElementIndex []int
	Values       []float64

	applied bool
}

func NewConstControl(element, variable string, elementIndex []int, values []float64) *ConstControl {
	return &ConstControl{
		Element:      element,
		Variable:     variable,
		ElementIndex: elementIndex,
		Values:       values,
	}
}

func (c *ConstControl) String() string {
	return fmt.Sprintf("ConstControl of %s.%s", c.Element, c.Variable)
}

func (c *ConstControl) Attributes() map[string]any {
	return map[string]any{
		"element":       c.Element,
		"variable":      c.Variable,
		"element_index": c.ElementIndex,
		"values":        c.Values,
	}
}

func (c *ConstControl) ControlStep(net *network.Net) error {
	tab, ok := net.Table(c.Element)
	if !ok {
		return fmt.Errorf("gridsim: const control targets unknown table %q", c.Element)
	}
	for i, id := range c.ElementIndex {
		if i >= len(c.Values) {
			break
		}
		if err := tab.SetAt(id, c.Variable, c.Values[i]); err != nil {
			return err
		}
	}
	c.applied = true
	return nil
}

func (c *ConstControl) IsConverged(net *network.Net) bool {
	return c.applied
}
