package network

// Standard table names.
const (
	TableController     = "controller"
	TableTrafo          = "trafo"
	TableTrafo3W        = "trafo3w"
	TableCharacteristic = "characteristic"
)

// Net is the network model: a set of named element tables sharing one
// session. It is process-local mutable state with no locking; callers
// must not mutate the same Net from multiple goroutines.
type Net struct {
	Name   string
	tables map[string]*Table
}

func New(name string) *Net {
	n := &Net{
		Name:   name,
		tables: make(map[string]*Table),
	}

	ctrl := NewTable(TableController)
	ctrl.AddColumn("object", KindObject, nil)
	ctrl.AddColumn("in_service", KindBool, nil)
	ctrl.AddColumn("order", KindFloat, nil)
	ctrl.AddColumn("level", KindInt, nil)
	n.tables[TableController] = ctrl

	trafo := NewTable(TableTrafo)
	trafo.AddColumn("name", KindString, nil)
	for _, col := range []string{"hv_bus", "lv_bus", "tap_pos", "tap_neutral"} {
		trafo.AddColumn(col, KindInt, nil)
	}
	for _, col := range []string{"sn_mva", "vk_percent", "vkr_percent", "tap_step_percent"} {
		trafo.AddColumn(col, KindFloat, nil)
	}
	n.tables[TableTrafo] = trafo

	trafo3w := NewTable(TableTrafo3W)
	trafo3w.AddColumn("name", KindString, nil)
	for _, col := range []string{"hv_bus", "mv_bus", "lv_bus", "tap_pos", "tap_neutral"} {
		trafo3w.AddColumn(col, KindInt, nil)
	}
	for _, side := range []string{"hv", "mv", "lv"} {
		trafo3w.AddColumn("sn_"+side+"_mva", KindFloat, nil)
		trafo3w.AddColumn("vk_"+side+"_percent", KindFloat, nil)
		trafo3w.AddColumn("vkr_"+side+"_percent", KindFloat, nil)
	}
	n.tables[TableTrafo3W] = trafo3w

	char := NewTable(TableCharacteristic)
	char.AddColumn("object", KindObject, nil)
	n.tables[TableCharacteristic] = char

	return n
}

func (n *Net) Table(name string) (*Table, bool) {
	t, ok := n.tables[name]
	return t, ok
}

func (n *Net) Controller() *Table     { return n.tables[TableController] }
func (n *Net) Trafo() *Table          { return n.tables[TableTrafo] }
func (n *Net) Trafo3W() *Table        { return n.tables[TableTrafo3W] }
func (n *Net) Characteristic() *Table { return n.tables[TableCharacteristic] }

// TableNames returns the standard table names in a fixed order.
func (n *Net) TableNames() []string {
	return []string{TableTrafo, TableTrafo3W, TableController, TableCharacteristic}
}
