package control

import (
	"reflect"
	"strings"
	"testing"
)

func TestDropSameTypeRemovesMatches(t *testing.T) {
	captureLogs(t)
	net, ids := fixtureNet(t)

	DropSameTypeExistingControllers(net, TypeSelector{Name: "ConstControl"}, 99,
		map[string]any{"variable": "tap_pos"})

	idx := net.Controller().Index()
	want := []int{ids[1], ids[2]}
	if !reflect.DeepEqual(idx, want) {
		t.Errorf("expected surviving rows %v, got %v", want, idx)
	}
}

func TestDropSameTypeWithoutParamsRemovesNothing(t *testing.T) {
	buf := captureLogs(t)
	net, _ := fixtureNet(t)
	before := net.Controller().Len()

	DropSameTypeExistingControllers(net, TypeSelector{Name: "ConstControl"}, 99, nil)

	if net.Controller().Len() != before {
		t.Error("no rows may be removed without matching params")
	}
	if !strings.Contains(buf.String(), "Creating controller 99") {
		t.Errorf("expected creation log, got %q", buf.String())
	}
}

func TestLogSameTypeLeavesControllersUntouched(t *testing.T) {
	buf := captureLogs(t)
	net, ids := fixtureNet(t)

	LogSameTypeExistingControllers(net, TypeSelector{Name: "ConstControl"}, 99,
		map[string]any{"element": "trafo"})

	if net.Controller().Len() != 3 {
		t.Error("logging variant must not mutate the controller table")
	}
	out := buf.String()
	if !strings.Contains(out, "Controller 99 has same type and matching parameters") {
		t.Errorf("expected collision log, got %q", out)
	}
	for _, id := range ids[:2] {
		if !net.Controller().HasRow(id) {
			t.Errorf("row %d went missing", id)
		}
	}
}

func TestLogSameTypeNoMatchesNoCollisionLog(t *testing.T) {
	buf := captureLogs(t)
	net, _ := fixtureNet(t)

	LogSameTypeExistingControllers(net, TypeSelector{Name: "ConstControl"}, 99,
		map[string]any{"variable": "no_such_variable"})

	if strings.Contains(buf.String(), "has same type") {
		t.Error("no collision log expected without matches")
	}
}

func TestDedupToleratesExtraOptions(t *testing.T) {
	captureLogs(t)
	net, _ := fixtureNet(t)

	// callers may pass a superset of recognized options
	LogSameTypeExistingControllers(net, TypeSelector{Name: "ConstControl"}, 99, nil,
		"initial_run", true)
	DropSameTypeExistingControllers(net, TypeSelector{Name: "ConstControl"}, 99, nil,
		"recycle", false)

	if net.Controller().Len() != 3 {
		t.Error("extra options must be ignored")
	}
}
