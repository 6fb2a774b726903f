package control

import (
	"errors"
	"fmt"

	"github.com/san-kum/gridsim/internal/characteristic"
	"github.com/san-kum/gridsim/internal/network"
)

var ErrLengthMismatch = errors.New("gridsim: the lengths of the trafo index and points do not match")

// CreateTrafoCharacteristics marks the given transformers as having
// tap-dependent impedance and attaches one spline characteristic per
// transformer for the given variable. The characteristic is registered
// in the net's characteristic table and its id written into the
// <variable>_characteristic column. Validation failures abort before
// any mutation.
func CreateTrafoCharacteristics(net *network.Net, trafotable string, trafoIndex []int,
	variable string, xPoints, yPoints [][]float64) error {
	tab, ok := net.Table(trafotable)
	if !ok {
		return fmt.Errorf("gridsim: unknown trafo table %q", trafotable)
	}
	if len(trafoIndex) != len(xPoints) || len(trafoIndex) != len(yPoints) {
		return ErrLengthMismatch
	}

	// build everything fallible up front so the table is never left
	// half-written
	splines := make([]*characteristic.SplineCharacteristic, len(trafoIndex))
	for i, tid := range trafoIndex {
		if !tab.HasRow(tid) {
			return fmt.Errorf("gridsim: %s has no row %d: %w", trafotable, tid, network.ErrNoSuchRow)
		}
		s, err := characteristic.NewSpline(xPoints[i], yPoints[i])
		if err != nil {
			return fmt.Errorf("gridsim: characteristic for %s %d: %w", trafotable, tid, err)
		}
		splines[i] = s
	}

	tab.AddColumn("tap_dependent_impedance", network.KindBool, false)
	for _, tid := range trafoIndex {
		tab.SetAt(tid, "tap_dependent_impedance", true)
	}

	col := variable + "_characteristic"
	if !tab.HasColumn(col) {
		tab.AddColumn(col, network.KindObject, nil)
	} else if kind, _ := tab.ColumnKind(col); kind != network.KindObject {
		tab.CoerceObject(col)
	}

	for i, tid := range trafoIndex {
		id := splines[i].AddToNet(net, network.TableCharacteristic)
		tab.SetAt(tid, col, id)
	}
	return nil
}

// TrafoCharacteristicsDiagnostic scans both transformer tables for
// missing, mistyped, incomplete, or dangling characteristic columns.
// It only logs; it never mutates the net and never fails.
func TrafoCharacteristicsDiagnostic(net *network.Net) {
	logger.Info("Checking trafo characteristics")

	cols2w := []string{"vk_percent_characteristic", "vkr_percent_characteristic"}
	var cols3w []string
	for _, side := range []string{"hv", "mv", "lv"} {
		cols3w = append(cols3w,
			"vk_"+side+"_percent_characteristic",
			"vkr_"+side+"_percent_characteristic")
	}

	tables := []struct {
		name string
		cols []string
	}{
		{network.TableTrafo, cols2w},
		{network.TableTrafo3W, cols3w},
	}

	for _, entry := range tables {
		tab, ok := net.Table(entry.name)
		if !ok || tab.Len() == 0 ||
			!tab.HasColumn("tap_dependent_impedance") ||
			!tab.AnyTrue("tap_dependent_impedance") {
			logger.Info("No %s with tap-dependent impedance found.", entry.name)
			continue
		}

		tapRows := tab.TrueIndex("tap_dependent_impedance")
		logger.Info("%s: found %d trafos with tap-dependent impedance", entry.name, len(tapRows))

		for _, col := range entry.cols {
			kind, hasCol := tab.ColumnKind(col)
			switch {
			case !hasCol:
				logger.Info("%s: %s is missing", entry.name, col)
			case kind != network.KindObject:
				logger.Info("%s: %s is not of type object", entry.name, col)
			case anyNull(tab, tapRows, col):
				logger.Info("%s: %s is missing for some trafos", entry.name, col)
			case len(danglingIDs(net, tab, tapRows, col)) > 0:
				logger.Info("%s: %s contains invalid characteristics indices", entry.name, col)
			default:
				logger.Info("%s: %s has %d characteristics", entry.name, col, countNonNull(tab, col))
			}
		}
	}
}

func anyNull(tab *network.Table, rows []int, col string) bool {
	for _, id := range rows {
		if tab.IsNull(id, col) {
			return true
		}
	}
	return false
}

// danglingIDs returns the characteristic ids referenced by the rows
// that do not resolve in the net's characteristic registry.
func danglingIDs(net *network.Net, tab *network.Table, rows []int, col string) []int {
	registry := make(map[int]bool)
	for _, id := range net.Characteristic().Index() {
		registry[id] = true
	}
	var dangling []int
	for _, row := range rows {
		v, _ := tab.At(row, col)
		ref, ok := v.(int)
		if !ok || !registry[ref] {
			dangling = append(dangling, row)
		}
	}
	return dangling
}

func countNonNull(tab *network.Table, col string) int {
	n := 0
	for _, id := range tab.Index() {
		if !tab.IsNull(id, col) {
			n++
		}
	}
	return n
}
