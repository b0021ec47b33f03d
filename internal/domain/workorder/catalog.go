package workorder

// Option is one entry of a fixed allow-list
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Catalog is an immutable, ordered set of value-label pairs.
// The zero value is an empty catalog.
type Catalog struct {
	name    string
	options []Option
	index   map[string]int
}

// NewCatalog builds a catalog from the given options, keeping their order.
// Later duplicates of a value are ignored.
func NewCatalog(name string, options ...Option) Catalog {
	c := Catalog{
		name:    name,
		options: make([]Option, 0, len(options)),
		index:   make(map[string]int, len(options)),
	}
	for _, o := range options {
		if _, dup := c.index[o.Value]; dup {
			continue
		}
		c.index[o.Value] = len(c.options)
		c.options = append(c.options, o)
	}
	return c
}

// Name returns the catalog name
func (c Catalog) Name() string {
	return c.name
}

// Contains reports whether value is a member of the catalog
func (c Catalog) Contains(value string) bool {
	_, ok := c.index[value]
	return ok
}

// Label returns the display label for value
func (c Catalog) Label(value string) (string, bool) {
	i, ok := c.index[value]
	if !ok {
		return "", false
	}
	return c.options[i].Label, true
}

// Options returns a copy of the catalog entries in order
func (c Catalog) Options() []Option {
	out := make([]Option, len(c.options))
	copy(out, c.options)
	return out
}

// Values returns the catalog values in order
func (c Catalog) Values() []string {
	out := make([]string, len(c.options))
	for i, o := range c.options {
		out[i] = o.Value
	}
	return out
}

// Len returns the number of entries
func (c Catalog) Len() int {
	return len(c.options)
}

// Units of measure accepted for materials
const (
	UnitEach   = "unit"
	UnitMeters = "meters"
)

// Maintenance types
const (
	MaintenancePreventive = "preventive"
	MaintenanceCorrective = "corrective"
	MaintenanceNewWorks   = "new_works"
)

// Priorities
const (
	PriorityNormal = "normal"
	PriorityUrgent = "urgent"
)

var (
	// Vehicles lists the fleet units a crew may travel in
	Vehicles = NewCatalog("vehicles",
		Option{Value: "MOV-01", Label: "Mobile 01 - Ford Ranger"},
		Option{Value: "MOV-02", Label: "Mobile 02 - Toyota Hilux"},
		Option{Value: "MOV-03", Label: "Mobile 03 - Iveco Daily (bucket truck)"},
		Option{Value: "MOV-04", Label: "Mobile 04 - Renault Kangoo"},
		Option{Value: "MOV-05", Label: "Mobile 05 - Mercedes Sprinter"},
	)

	// Boards lists the distribution boards maintenance can be booked against
	Boards = NewCatalog("boards",
		Option{Value: "TG 1", Label: "TG 1 - Main board"},
		Option{Value: "TI 100", Label: "TI 100 - Lighting, north sector"},
		Option{Value: "TI 200", Label: "TI 200 - Lighting, south sector"},
		Option{Value: "TS 10", Label: "TS 10 - Pumping station"},
		Option{Value: "TS 20", Label: "TS 20 - Workshop"},
		Option{Value: "TC 01", Label: "TC 01 - Control room"},
	)

	// Units lists the units of measure for materials
	Units = NewCatalog("units",
		Option{Value: UnitEach, Label: "Unit"},
		Option{Value: UnitMeters, Label: "Meters"},
	)

	// MaintenanceTypes lists the kinds of maintenance job
	MaintenanceTypes = NewCatalog("maintenance_types",
		Option{Value: MaintenancePreventive, Label: "Preventive"},
		Option{Value: MaintenanceCorrective, Label: "Corrective"},
		Option{Value: MaintenanceNewWorks, Label: "New works"},
	)

	// Priorities lists the job priorities
	Priorities = NewCatalog("priorities",
		Option{Value: PriorityNormal, Label: "Normal"},
		Option{Value: PriorityUrgent, Label: "Urgent"},
	)
)

// AllCatalogs returns every allow-list in a stable order
func AllCatalogs() []Catalog {
	return []Catalog{Vehicles, Boards, Units, MaintenanceTypes, Priorities}
}

// CatalogByName looks up an allow-list by its name
func CatalogByName(name string) (Catalog, bool) {
	for _, c := range AllCatalogs() {
		if c.name == name {
			return c, true
		}
	}
	return Catalog{}, false
}
