package control

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/gridsim/internal/characteristic"
	"github.com/san-kum/gridsim/internal/network"
)

func trafoNet(t *testing.T, rows int) *network.Net {
	t.Helper()
	net := network.New("test")
	for i := 0; i < rows; i++ {
		net.Trafo().Append(map[string]any{"vk_percent": 6.0, "vkr_percent": 1.4})
	}
	return net
}

func TestCreateTrafoCharacteristics(t *testing.T) {
	net := trafoNet(t, 8)

	err := CreateTrafoCharacteristics(net, network.TableTrafo, []int{3, 7}, "vk_percent",
		[][]float64{{0, 1, 2}, {0, 1, 2}},
		[][]float64{{5, 5.2, 5.5}, {4, 4.1, 4.3}})
	if err != nil {
		t.Fatal(err)
	}

	trafo := net.Trafo()
	for _, tid := range []int{3, 7} {
		if v, _ := trafo.At(tid, "tap_dependent_impedance"); v != true {
			t.Errorf("trafo %d: tap_dependent_impedance not set", tid)
		}
	}
	if v, _ := trafo.At(0, "tap_dependent_impedance"); v != false {
		t.Error("untouched rows must default to false")
	}

	ref3, _ := trafo.At(3, "vk_percent_characteristic")
	ref7, _ := trafo.At(7, "vk_percent_characteristic")
	if ref3 == nil || ref7 == nil || ref3 == ref7 {
		t.Fatalf("expected two distinct registry ids, got %v and %v", ref3, ref7)
	}
	if net.Characteristic().Len() != 2 {
		t.Errorf("expected 2 registry rows, got %d", net.Characteristic().Len())
	}
}

func TestCreateTrafoCharacteristicsRoundTrip(t *testing.T) {
	net := trafoNet(t, 1)
	xs := []float64{-2, 0, 2}
	ys := []float64{5.8, 6.0, 6.4}

	if err := CreateTrafoCharacteristics(net, network.TableTrafo, []int{0}, "vk_percent",
		[][]float64{xs}, [][]float64{ys}); err != nil {
		t.Fatal(err)
	}

	ref, _ := net.Trafo().At(0, "vk_percent_characteristic")
	obj, ok := net.Characteristic().At(ref.(int), "object")
	if !ok {
		t.Fatal("written-back id does not resolve in the registry")
	}
	s := obj.(*characteristic.SplineCharacteristic)
	for i := range xs {
		if math.Abs(s.At(xs[i])-ys[i]) > 1e-9 {
			t.Errorf("registry entry does not reproduce sample (%v, %v)", xs[i], ys[i])
		}
	}
}

func TestCreateTrafoCharacteristicsLengthMismatch(t *testing.T) {
	net := trafoNet(t, 2)

	err := CreateTrafoCharacteristics(net, network.TableTrafo, []int{0, 1}, "vk_percent",
		[][]float64{{0, 1}}, [][]float64{{5, 6}, {5, 6}})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}

	// the failed call must not have touched the table
	if net.Trafo().HasColumn("tap_dependent_impedance") {
		t.Error("validation failure mutated the trafo table")
	}
	if net.Characteristic().Len() != 0 {
		t.Error("validation failure appended to the registry")
	}
}

func TestCreateTrafoCharacteristicsBadSamplesNoPartialWrite(t *testing.T) {
	net := trafoNet(t, 2)

	err := CreateTrafoCharacteristics(net, network.TableTrafo, []int{0, 1}, "vk_percent",
		[][]float64{{0, 1}, {0, 1}}, [][]float64{{5, 6}, {5}})
	if err == nil {
		t.Fatal("expected sample mismatch error")
	}
	if net.Trafo().HasColumn("tap_dependent_impedance") || net.Characteristic().Len() != 0 {
		t.Error("failed call left partial writes behind")
	}
}

func TestCreateTrafoCharacteristicsCoercesExistingColumn(t *testing.T) {
	net := trafoNet(t, 1)
	net.Trafo().AddColumn("vk_percent_characteristic", network.KindInt, nil)
	net.Trafo().SetAt(0, "vk_percent_characteristic", 42)

	// a second trafo keeps its pre-existing value across the coercion
	tid := net.Trafo().Append(nil)
	err := CreateTrafoCharacteristics(net, network.TableTrafo, []int{tid}, "vk_percent",
		[][]float64{{0, 1}}, [][]float64{{5, 6}})
	if err != nil {
		t.Fatal(err)
	}

	kind, _ := net.Trafo().ColumnKind("vk_percent_characteristic")
	if kind != network.KindObject {
		t.Error("existing column not coerced to object kind")
	}
	if v, _ := net.Trafo().At(0, "vk_percent_characteristic"); v != 42 {
		t.Error("coercion dropped a pre-existing value")
	}
}

func TestDiagnosticEmptyTables(t *testing.T) {
	buf := captureLogs(t)
	net := network.New("test")

	TrafoCharacteristicsDiagnostic(net)

	out := buf.String()
	if !strings.Contains(out, "No trafo with tap-dependent impedance found.") ||
		!strings.Contains(out, "No trafo3w with tap-dependent impedance found.") {
		t.Errorf("expected the no-tap-dependent message per table, got %q", out)
	}
}

func TestDiagnosticAllFalse(t *testing.T) {
	buf := captureLogs(t)
	net := trafoNet(t, 2)
	net.Trafo().AddColumn("tap_dependent_impedance", network.KindBool, false)

	TrafoCharacteristicsDiagnostic(net)

	if !strings.Contains(buf.String(), "No trafo with tap-dependent impedance found.") {
		t.Errorf("all-false flag column must be skipped, got %q", buf.String())
	}
}

func TestDiagnosticReportsPerColumn(t *testing.T) {
	buf := captureLogs(t)
	net := trafoNet(t, 3)

	err := CreateTrafoCharacteristics(net, network.TableTrafo, []int{0, 1}, "vk_percent",
		[][]float64{{0, 1}, {0, 1}}, [][]float64{{5, 6}, {5, 6}})
	if err != nil {
		t.Fatal(err)
	}

	TrafoCharacteristicsDiagnostic(net)
	out := buf.String()

	if !strings.Contains(out, "trafo: found 2 trafos with tap-dependent impedance") {
		t.Errorf("expected tap-dependent count, got %q", out)
	}
	if !strings.Contains(out, "vk_percent_characteristic has 2 characteristics") {
		t.Errorf("expected success line for vk, got %q", out)
	}
	if !strings.Contains(out, "vkr_percent_characteristic is missing") {
		t.Errorf("expected missing-column line for vkr, got %q", out)
	}
}

func TestDiagnosticNullAndDanglingEntries(t *testing.T) {
	buf := captureLogs(t)
	net := trafoNet(t, 2)

	err := CreateTrafoCharacteristics(net, network.TableTrafo, []int{0, 1}, "vk_percent",
		[][]float64{{0, 1}, {0, 1}}, [][]float64{{5, 6}, {5, 6}})
	if err != nil {
		t.Fatal(err)
	}

	// null among tap-dependent rows
	net.Trafo().SetAt(1, "vk_percent_characteristic", nil)
	TrafoCharacteristicsDiagnostic(net)
	if !strings.Contains(buf.String(), "vk_percent_characteristic is missing for some trafos") {
		t.Errorf("expected null-entry line, got %q", buf.String())
	}

	// dangling registry reference
	buf.Reset()
	net.Trafo().SetAt(1, "vk_percent_characteristic", 12345)
	TrafoCharacteristicsDiagnostic(net)
	if !strings.Contains(buf.String(), "vk_percent_characteristic contains invalid characteristics indices") {
		t.Errorf("expected invalid-indices line, got %q", buf.String())
	}
}

func TestDiagnosticNeverMutates(t *testing.T) {
	captureLogs(t)
	net := trafoNet(t, 2)
	if err := CreateTrafoCharacteristics(net, network.TableTrafo, []int{0}, "vk_percent",
		[][]float64{{0, 1}}, [][]float64{{5, 6}}); err != nil {
		t.Fatal(err)
	}

	before := net.Characteristic().Len()
	TrafoCharacteristicsDiagnostic(net)

	if net.Characteristic().Len() != before {
		t.Error("diagnostic mutated the registry")
	}
	if v, _ := net.Trafo().At(0, "tap_dependent_impedance"); v != true {
		t.Error("diagnostic mutated the trafo table")
	}
}
