package control

import (
	"fmt"

	"github.com/san-kum/gridsim/internal/network"
)

// TapController steps a transformer's tap changer one position per
// control step toward a target position.
type TapController struct {
	basicController
	Trafotable   string
	ElementIndex int
	Side         string
	TargetPos    int
}

func NewTapController(trafotable string, tid int, side string, targetPos int) *TapController {
	return &TapController{
		Trafotable:   trafotable,
		ElementIndex: tid,
		Side:         side,
		TargetPos:    targetPos,
	}
}

func (c *TapController) String() string {
	return fmt.Sprintf("TapController of %s %d", c.Trafotable, c.ElementIndex)
}

func (c *TapController) Attributes() map[string]any {
	return map[string]any{
		"trafotable":    c.Trafotable,
		"element_index": c.ElementIndex,
		"side":          c.Side,
		"target_pos":    c.TargetPos,
	}
}

func (c *TapController) ControlStep(net *network.Net) error {
	tab, ok := net.Table(c.Trafotable)
	if !ok {
		return fmt.Errorf("gridsim: tap controller targets unknown table %q", c.Trafotable)
	}
	pos := c.currentPos(tab)
	switch {
	case pos < c.TargetPos:
		pos++
	case pos > c.TargetPos:
		pos--
	default:
		return nil
	}
	return tab.SetAt(c.ElementIndex, "tap_pos", pos)
}

func (c *TapController) IsConverged(net *network.Net) bool {
	tab, ok := net.Table(c.Trafotable)
	if !ok {
		return false
	}
	return c.currentPos(tab) == c.TargetPos
}

func (c *TapController) currentPos(tab *network.Table) int {
	v, ok := tab.At(c.ElementIndex, "tap_pos")
	if !ok || v == nil {
		return 0
	}
	if p, ok := v.(int); ok {
		return p
	}
	return 0
}
