package workorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	c := NewCatalog("colors",
		Option{Value: "r", Label: "Red"},
		Option{Value: "g", Label: "Green"},
		Option{Value: "r", Label: "Duplicate red"},
	)

	assert.Equal(t, "colors", c.Name())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"r", "g"}, c.Values())
	assert.True(t, c.Contains("g"))
	assert.False(t, c.Contains("b"))

	label, ok := c.Label("r")
	assert.True(t, ok)
	assert.Equal(t, "Red", label)

	_, ok = c.Label("b")
	assert.False(t, ok)
}

func TestCatalog_OptionsIsACopy(t *testing.T) {
	opts := Units.Options()
	require.NotEmpty(t, opts)
	opts[0].Label = "tampered"

	label, _ := Units.Label(opts[0].Value)
	assert.NotEqual(t, "tampered", label)
}

func TestCatalog_ZeroValue(t *testing.T) {
	var c Catalog
	assert.False(t, c.Contains("anything"))
	assert.Empty(t, c.Options())
}

func TestStaticCatalogs(t *testing.T) {
	assert.True(t, Boards.Contains("TI 100"))
	assert.True(t, Vehicles.Contains("MOV-01"))
	assert.Equal(t, []string{UnitEach, UnitMeters}, Units.Values())
	assert.Equal(t, []string{MaintenancePreventive, MaintenanceCorrective, MaintenanceNewWorks}, MaintenanceTypes.Values())
	assert.Equal(t, []string{PriorityNormal, PriorityUrgent}, Priorities.Values())
}

func TestCatalogByName(t *testing.T) {
	tests := []struct {
		name  string
		found bool
	}{
		{"vehicles", true},
		{"boards", true},
		{"units", true},
		{"maintenance_types", true},
		{"priorities", true},
		{"locations", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := CatalogByName(tt.name)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.name, c.Name())
			}
		})
	}
}
