package network

import (
	"errors"
	"reflect"
	"sort"
)

// Column kinds. Object columns hold arbitrary values, including live
// controller and characteristic instances.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindObject
)

var (
	ErrNoSuchRow    = errors.New("gridsim: no such row")
	ErrNoSuchColumn = errors.New("gridsim: no such column")
)

type column struct {
	kind  Kind
	cells map[int]any
}

// Table is an ordered collection of rows identified by stable integer
// ids, with named nullable columns.
type Table struct {
	name    string
	index   []int
	next    int
	columns map[string]*column
}

func NewTable(name string) *Table {
	return &Table{
		name:    name,
		columns: make(map[string]*column),
	}
}

func (t *Table) Name() string { return t.name }
func (t *Table) Len() int     { return len(t.index) }

// Index returns the row ids in insertion order.
func (t *Table) Index() []int {
	out := make([]int, len(t.index))
	copy(out, t.index)
	return out
}

func (t *Table) HasRow(id int) bool {
	for _, i := range t.index {
		if i == id {
			return true
		}
	}
	return false
}

// Columns returns the column names in sorted order.
func (t *Table) Columns() []string {
	out := make([]string, 0, len(t.columns))
	for name := range t.columns {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

func (t *Table) ColumnKind(name string) (Kind, bool) {
	c, ok := t.columns[name]
	if !ok {
		return 0, false
	}
	return c.kind, true
}

// AddColumn creates a column filled with def for every existing row.
// A nil def leaves the cells null. Adding an existing column is a no-op.
func (t *Table) AddColumn(name string, kind Kind, def any) {
	if _, ok := t.columns[name]; ok {
		return
	}
	c := &column{kind: kind, cells: make(map[int]any)}
	if def != nil {
		for _, id := range t.index {
			c.cells[id] = def
		}
	}
	t.columns[name] = c
}

// CoerceObject widens a column to kind Object. Existing non-null cell
// values are preserved.
func (t *Table) CoerceObject(name string) error {
	c, ok := t.columns[name]
	if !ok {
		return ErrNoSuchColumn
	}
	c.kind = KindObject
	return nil
}

// Append adds a row with the given cells and returns its id. Cells for
// unknown columns create Object columns on the fly; omitted cells are
// null.
func (t *Table) Append(cells map[string]any) int {
	id := t.next
	t.next++
	t.index = append(t.index, id)
	for name, v := range cells {
		c, ok := t.columns[name]
		if !ok {
			c = &column{kind: KindObject, cells: make(map[int]any)}
			t.columns[name] = c
		}
		if v != nil {
			c.cells[id] = v
		}
	}
	return id
}

// At returns the cell value, or nil for a null cell. The bool reports
// whether the row and column both exist.
func (t *Table) At(id int, col string) (any, bool) {
	c, ok := t.columns[col]
	if !ok || !t.HasRow(id) {
		return nil, false
	}
	return c.cells[id], true
}

func (t *Table) SetAt(id int, col string, v any) error {
	c, ok := t.columns[col]
	if !ok {
		return ErrNoSuchColumn
	}
	if !t.HasRow(id) {
		return ErrNoSuchRow
	}
	if v == nil {
		delete(c.cells, id)
	} else {
		c.cells[id] = v
	}
	return nil
}

func (t *Table) IsNull(id int, col string) bool {
	c, ok := t.columns[col]
	if !ok {
		return true
	}
	_, set := c.cells[id]
	return !set
}

// Where returns the ids of rows whose cell in col equals v, in row
// order. Null cells never match.
func (t *Table) Where(col string, v any) []int {
	c, ok := t.columns[col]
	if !ok {
		return nil
	}
	var out []int
	for _, id := range t.index {
		cell, set := c.cells[id]
		if set && ValueEqual(cell, v) {
			out = append(out, id)
		}
	}
	return out
}

// TrueIndex returns the ids of rows whose boolean cell in col is true.
func (t *Table) TrueIndex(col string) []int {
	c, ok := t.columns[col]
	if !ok {
		return nil
	}
	var out []int
	for _, id := range t.index {
		if b, ok := c.cells[id].(bool); ok && b {
			out = append(out, id)
		}
	}
	return out
}

// AnyTrue reports whether any row has a true boolean cell in col.
func (t *Table) AnyTrue(col string) bool {
	return len(t.TrueIndex(col)) > 0
}

// DropRows deletes the given rows and their cells. Unknown ids are
// ignored; surviving rows keep their ids.
func (t *Table) DropRows(ids []int) {
	drop := make(map[int]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := t.index[:0]
	for _, id := range t.index {
		if drop[id] {
			for _, c := range t.columns {
				delete(c.cells, id)
			}
			continue
		}
		kept = append(kept, id)
	}
	t.index = kept
}

// ValueEqual compares two scalar cell values, normalizing the numeric
// types that reach tables from Go literals and YAML alike. Values of
// uncomparable or differing types never match.
func ValueEqual(a, b any) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
