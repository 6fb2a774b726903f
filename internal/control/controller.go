package control

import (
	"fmt"

	"github.com/san-kum/gridsim/internal/network"
	"github.com/san-kum/gridsim/internal/plog"
)

var logger = plog.New(plog.LevelInfo, nil)

// SetLogger swaps the package logger, mainly for tests.
func SetLogger(l *plog.Logger) { logger = l }

// Controller is a runtime object governing a control action on the net.
// The first whitespace-delimited token of its String form is its type
// name for query purposes. Attributes exposes the matchable state as a
// name->value mapping of scalars and slices.
type Controller interface {
	fmt.Stringer
	Index() int
	Attributes() map[string]any
	ControlStep(net *network.Net) error
	IsConverged(net *network.Net) bool
}

// basicController carries the bookkeeping every variant shares. The
// index is assigned at registration time.
type basicController struct {
	index int
}

func (b *basicController) Index() int     { return b.index }
func (b *basicController) setIndex(i int) { b.index = i }

// Register appends the controller to the net's controller table and
// returns the assigned index.
func Register(net *network.Net, c Controller, inService bool, order float64, level int) int {
	id := net.Controller().Append(map[string]any{
		"object":     c,
		"in_service": inService,
		"order":      order,
		"level":      level,
	})
	if s, ok := c.(interface{ setIndex(int) }); ok {
		s.setIndex(id)
	}
	return id
}

// controllerAt fetches the live controller object stored at a row.
func controllerAt(net *network.Net, id int) (Controller, bool) {
	obj, ok := net.Controller().At(id, "object")
	if !ok {
		return nil, false
	}
	c, ok := obj.(Controller)
	return c, ok
}
