package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderJSON = `{
	"date": "2025-03-05",
	"location": "Av. Costanera 1200",
	"board_id": "TI 100",
	"circuit_id": "A  B",
	"vehicle_id": "MOV-02",
	"odometer_start": 15230.5,
	"odometer_end": 15262,
	"maintenance_type": "corrective",
	"priority": "urgent",
	"start_time": "08:15",
	"end_time": "11:40",
	"cost_center": "CC-310",
	"technicians": [{"employee_id": 1021, "name": "Ana Torres"}],
	"task_requested": "Replace burnt luminaires.",
	"task_completed": "Replaced 5 luminaires.",
	"materials": [{"name": "LED luminaire 100W", "quantity": 5, "unit": "unit"}]
}`

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRender_FromFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "order.json")
	require.NoError(t, os.WriteFile(input, []byte(orderJSON), 0o600))
	outDir := filepath.Join(dir, "out")

	stdout, _, err := execute(t, "", "render", "-i", input, "-o", outDir)
	require.NoError(t, err)

	path := filepath.Join(outDir, "WO_TI_100_A_B_20250305.pdf")
	assert.Contains(t, stdout, path)
	assert.Contains(t, stdout, "1 page(s)")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}

func TestRender_FromStdin(t *testing.T) {
	outDir := t.TempDir()

	_, _, err := execute(t, orderJSON, "render", "-i", "-", "-o", outDir)
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "WO_TI_100_A_B_20250305.pdf", entries[0].Name())
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name       string
		stdin      string
		args       []string
		wantErr    string
		wantStderr string
	}{
		{
			name:    "input flag is required",
			args:    []string{"render"},
			wantErr: `required flag(s) "input" not set`,
		},
		{
			name:    "missing file",
			args:    []string{"render", "-i", "does-not-exist.json"},
			wantErr: "failed to open input",
		},
		{
			name:    "not json",
			stdin:   "plain text",
			args:    []string{"render", "-i", "-"},
			wantErr: "input is not a JSON object",
		},
		{
			name:       "invalid order",
			stdin:      `{"location": "Depot"}`,
			args:       []string{"render", "-i", "-"},
			wantErr:    "work order is invalid",
			wantStderr: "date: This field is required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "-o", t.TempDir())
			_, stderr, err := execute(t, tt.stdin, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.wantStderr != "" {
				assert.Contains(t, stderr, tt.wantStderr)
			}
		})
	}
}

func TestCatalogs(t *testing.T) {
	t.Run("all as text", func(t *testing.T) {
		stdout, _, err := execute(t, "", "catalogs")
		require.NoError(t, err)
		for _, name := range []string{"vehicles", "boards", "units", "maintenance_types", "priorities"} {
			assert.Contains(t, stdout, name)
		}
		assert.Contains(t, stdout, "TI 100 - Lighting, north sector")
	})

	t.Run("single as json", func(t *testing.T) {
		stdout, _, err := execute(t, "", "catalogs", "priorities", "--json")
		require.NoError(t, err)

		var got map[string][]map[string]string
		require.NoError(t, json.Unmarshal([]byte(stdout), &got))
		require.Len(t, got, 1)
		assert.Equal(t, []map[string]string{
			{"value": "normal", "label": "Normal"},
			{"value": "urgent", "label": "Urgent"},
		}, got["priorities"])
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := execute(t, "", "catalogs", "colors")
		assert.EqualError(t, err, `unknown catalog "colors"`)
	})
}
