/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/pivot"
	"github.com/suparena/pivot/entities"
	"github.com/suparena/pivot/errors"
	"github.com/suparena/pivot/registry"
	"github.com/suparena/pivot/table"
)

func testCatalog(calls *[]registry.Params) Catalog {
	return Catalog{
		"echo": func(ctx context.Context, p registry.Params) (*table.Table, error) {
			if calls != nil {
				*calls = append(*calls, p)
			}
			values, _ := p["ip_address"].([]any)
			if values == nil {
				values, _ = p["host_name"].([]any)
			}
			return table.FromValues(values...), nil
		},
		"kql": func(ctx context.Context, p registry.Params) (*table.Table, error) {
			if calls != nil {
				*calls = append(*calls, p)
			}
			return table.FromValues(p["table"]), nil
		},
	}
}

func assertSample(t *testing.T, m *Manifest) {
	t.Helper()

	assert.Equal(t, "soc", m.Provider)
	require.Len(t, m.Pivots, 2)

	lookup := m.Pivots[0]
	assert.Equal(t, "lookup", lookup.Name)
	assert.Equal(t, "echo", lookup.Function)
	assert.True(t, lookup.Batch())
	assert.Equal(t, map[string]string{"qry_value": "Value"}, lookup.Schema)
	assert.Equal(t, BindingSpec{Param: "ip_address"}, lookup.Entities["IpAddress"])
	assert.Equal(t, BindingSpec{Param: "host_name"}, lookup.Entities["Host"])

	alerts := m.Pivots[1]
	assert.False(t, alerts.Batch())
	assert.Equal(t, map[string]any{"table": "SecurityAlert", "limit": 5}, alerts.Entities["Alert"].Params)
}

func TestLoadYAML(t *testing.T) {
	m, err := Load(filepath.Join("testdata", "pivots.yaml"))
	require.NoError(t, err)
	assertSample(t, m)
}

func TestLoadHCL(t *testing.T) {
	m, err := Load(filepath.Join("testdata", "pivots.hcl"))
	require.NoError(t, err)
	assertSample(t, m)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("pivots.json")
	assert.True(t, errors.IsValidationError(err))

	_, err = Load(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Parse([]byte("provider: x"), Format("toml"), "x.toml")
	assert.True(t, errors.IsValidationError(err))
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.yaml", FormatYAML},
		{"a.YML", FormatYAML},
		{"dir/a.hcl", FormatHCL},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(error) bool
	}{
		{
			name:  "unknown field",
			input: "provider: p\nsurprise: true\npivots: []\n",
		},
		{
			name:  "binding is a list",
			input: "provider: p\npivots:\n  - name: f\n    function: f\n    entities:\n      Host: [a, b]\n",
		},
		{
			name:  "missing provider",
			input: "pivots:\n  - name: f\n    function: f\n    entities:\n      Host: h\n",
			check: errors.IsValidationError,
		},
		{
			name:  "no pivots",
			input: "provider: p\npivots: []\n",
			check: errors.IsValidationError,
		},
		{
			name:  "no entities",
			input: "provider: p\npivots:\n  - name: f\n    function: f\n",
			check: errors.IsValidationError,
		},
		{
			name:  "empty binding",
			input: "provider: p\npivots:\n  - name: f\n    function: f\n    entities:\n      Host: \"\"\n",
			check: errors.IsValidationError,
		},
		{
			name:  "duplicate pivot",
			input: "provider: p\npivots:\n  - {name: f, function: f, entities: {Host: h}}\n  - {name: f, function: g, entities: {Url: u}}\n",
			check: errors.IsAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), FormatYAML, "test.yaml")
			require.Error(t, err)
			if tt.check != nil {
				assert.True(t, tt.check(err), err.Error())
			}
		})
	}
}

func TestParseHCLErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", `provider = `},
		{"missing function", "provider = \"p\"\npivot \"f\" {\n  entity \"Host\" {\n    param = \"h\"\n  }\n}\n"},
		{"duplicate entity", "provider = \"p\"\npivot \"f\" {\n  function = \"f\"\n  entity \"Host\" {\n    param = \"h\"\n  }\n  entity \"Host\" {\n    param = \"x\"\n  }\n}\n"},
		{"params not an object", "provider = \"p\"\npivot \"f\" {\n  function = \"f\"\n  entity \"Host\" {\n    params = \"h\"\n  }\n}\n"},
		{"both param and params", "provider = \"p\"\npivot \"f\" {\n  function = \"f\"\n  entity \"Host\" {\n    param  = \"h\"\n    params = { a = 1 }\n  }\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), FormatHCL, "test.hcl")
			assert.Error(t, err)
		})
	}
}

func TestCtyConversion(t *testing.T) {
	input := "provider = \"p\"\npivot \"f\" {\n  function = \"f\"\n  entity \"Host\" {\n    params = {\n      n = 2\n      ratio = 0.5\n      on = true\n      tags = [\"a\", \"b\"]\n      nested = { k = \"v\" }\n    }\n  }\n}\n"
	m, err := Parse([]byte(input), FormatHCL, "test.hcl")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"n":      2,
		"ratio":  0.5,
		"on":     true,
		"tags":   []any{"a", "b"},
		"nested": map[string]any{"k": "v"},
	}, m.Pivots[0].Entities["Host"].Params)
}

func TestFunctions(t *testing.T) {
	m, err := Load(filepath.Join("testdata", "pivots.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "kql"}, m.Functions())
}

func TestRegistrationsUnknownFunction(t *testing.T) {
	m, err := Load(filepath.Join("testdata", "pivots.yaml"))
	require.NoError(t, err)

	_, err = m.Registrations(Catalog{"echo": testCatalog(nil)["echo"]})
	assert.True(t, errors.IsNotFound(err))
}

func TestProviderEndToEnd(t *testing.T) {
	m, err := Load(filepath.Join("testdata", "pivots.hcl"))
	require.NoError(t, err)

	var calls []registry.Params
	prov, err := NewProvider(m, testCatalog(&calls))
	require.NoError(t, err)
	assert.Equal(t, "soc", prov.Name())
	assert.Len(t, prov.Pivots(), 2)

	env := pivot.New(entities.Default())
	report, err := env.AddProvider(prov)
	require.NoError(t, err)
	assert.Len(t, report.Attached(), 3)
	assert.Empty(t, report.Failed())

	res, err := env.Call(context.Background(), entities.IpAddress, "lookup", []string{"10.0.0.1", "10.0.0.2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Len())

	res, err = env.Call(context.Background(), entities.Alert, "alerts", "ignored", registry.Params{"table": "Other"})
	require.NoError(t, err)
	col, _ := res.Column(table.ValueColumn)
	assert.Equal(t, []any{"SecurityAlert"}, col)

	require.Len(t, calls, 2)
	assert.Equal(t, []any{"10.0.0.1", "10.0.0.2"}, calls[0]["ip_address"])
	assert.Equal(t, 5, calls[1]["limit"])
}
