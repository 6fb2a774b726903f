package control

import (
	"testing"

	"github.com/san-kum/gridsim/internal/network"
)

func TestRegisterAssignsIndex(t *testing.T) {
	net := network.New("test")
	c := NewConstControl("trafo", "tap_pos", []int{0}, []float64{1})

	id := Register(net, c, true, 0, 0)
	if c.Index() != id {
		t.Errorf("controller index %d, registered as %d", c.Index(), id)
	}
	if v, _ := net.Controller().At(id, "in_service"); v != true {
		t.Error("in_service cell not written")
	}
}

func TestConstControlWritesValues(t *testing.T) {
	net := network.New("test")
	a := net.Trafo().Append(nil)
	b := net.Trafo().Append(nil)

	c := NewConstControl("trafo", "tap_pos", []int{a, b}, []float64{2, 3})
	if c.IsConverged(net) {
		t.Error("converged before any step")
	}
	if err := c.ControlStep(net); err != nil {
		t.Fatal(err)
	}
	if v, _ := net.Trafo().At(a, "tap_pos"); v != 2.0 {
		t.Errorf("expected 2, got %v", v)
	}
	if v, _ := net.Trafo().At(b, "tap_pos"); v != 3.0 {
		t.Errorf("expected 3, got %v", v)
	}
	if !c.IsConverged(net) {
		t.Error("expected convergence after the step")
	}
}

func TestTapControllerStepsTowardTarget(t *testing.T) {
	net := network.New("test")
	tid := net.Trafo().Append(map[string]any{"tap_pos": 0})

	c := NewTapController("trafo", tid, "hv", 2)
	for i := 0; i < 2; i++ {
		if c.IsConverged(net) {
			t.Fatalf("converged after %d steps", i)
		}
		if err := c.ControlStep(net); err != nil {
			t.Fatal(err)
		}
	}
	if v, _ := net.Trafo().At(tid, "tap_pos"); v != 2 {
		t.Errorf("expected tap_pos 2, got %v", v)
	}
	if !c.IsConverged(net) {
		t.Error("expected convergence at the target position")
	}
}

func TestRegistryBuildsControllers(t *testing.T) {
	r := NewRegistry()

	c, err := r.Get("const", map[string]any{
		"element":       "trafo",
		"variable":      "tap_pos",
		"element_index": []int{0, 1},
		"values":        []float64{1, 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*ConstControl); !ok {
		t.Errorf("expected *ConstControl, got %T", c)
	}

	c, err = r.Get("tap", map[string]any{
		"element_index": 3,
		"side":          "hv",
		"target_pos":    -1,
	})
	if err != nil {
		t.Fatal(err)
	}
	tap, ok := c.(*TapController)
	if !ok {
		t.Fatalf("expected *TapController, got %T", c)
	}
	if tap.ElementIndex != 3 || tap.TargetPos != -1 {
		t.Errorf("factory dropped parameters: %+v", tap)
	}

	if _, err := r.Get("nope", nil); err == nil {
		t.Error("expected error for unknown controller name")
	}
}
