/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package table

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/pivot/errors"
)

func TestAppendRow(t *testing.T) {
	tbl := New("Ip", "Asn")
	require.NoError(t, tbl.AppendRow("1.1.1.1", "CLOUDFLARENET"))

	err := tbl.AppendRow("8.8.8.8")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, []string{"Ip", "Asn"}, tbl.Columns())
	assert.Equal(t, [][]any{{"1.1.1.1", "CLOUDFLARENET"}}, tbl.Rows())
}

func TestNewCollapsesDuplicateColumns(t *testing.T) {
	tbl := New("a", "b", "a")
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
}

func TestAppendRecordAddsColumns(t *testing.T) {
	tbl := New("Ip")
	require.NoError(t, tbl.AppendRow("1.1.1.1"))
	tbl.AppendRecord(map[string]any{"Ip": "8.8.8.8", "Asn": "GOOGLE"})

	assert.Equal(t, []string{"Ip", "Asn"}, tbl.Columns())
	assert.Equal(t, [][]any{{"1.1.1.1", nil}, {"8.8.8.8", "GOOGLE"}}, tbl.Rows())
}

func TestFromValues(t *testing.T) {
	tbl := FromValues("a", 2, 3.5)
	assert.Equal(t, []string{ValueColumn}, tbl.Columns())
	col, ok := tbl.Column(ValueColumn)
	require.True(t, ok)
	assert.Equal(t, []any{"a", 2, 3.5}, col)
}

func TestConcat(t *testing.T) {
	t.Run("keeps row order", func(t *testing.T) {
		a := FromValues("a")
		b := FromValues("b", "c")

		out := Concat(a, b)
		col, _ := out.Column(ValueColumn)
		assert.Equal(t, []any{"a", "b", "c"}, col)
	})

	t.Run("unions columns in first-seen order", func(t *testing.T) {
		a := New("Ip", "Asn")
		require.NoError(t, a.AppendRow("1.1.1.1", "CLOUDFLARENET"))
		b := New("Ip", "Country")
		require.NoError(t, b.AppendRow("8.8.8.8", "US"))

		out := Concat(a, b)
		assert.Equal(t, []string{"Ip", "Asn", "Country"}, out.Columns())
		assert.Equal(t, [][]any{
			{"1.1.1.1", "CLOUDFLARENET", nil},
			{"8.8.8.8", nil, "US"},
		}, out.Rows())
	})

	t.Run("skips nil and handles empty", func(t *testing.T) {
		out := Concat(nil, New("x"), nil)
		assert.Equal(t, []string{"x"}, out.Columns())
		assert.Equal(t, 0, out.Len())

		empty := Concat()
		assert.Equal(t, 0, empty.Len())
		assert.Empty(t, empty.Columns())
	})

	t.Run("single input equals input", func(t *testing.T) {
		a := New("Ip", "Asn")
		require.NoError(t, a.AppendRow("1.1.1.1", "CLOUDFLARENET"))
		assert.True(t, Concat(a).Equal(a))
	})

	t.Run("does not alias inputs", func(t *testing.T) {
		a := FromValues("a")
		out := Concat(a)
		require.NoError(t, out.AppendRow("z"))
		assert.Equal(t, 1, a.Len())
	})
}

func TestMarshalJSON(t *testing.T) {
	tbl := New("Ip", "Asn")
	require.NoError(t, tbl.AppendRow("1.1.1.1", "CLOUDFLARENET"))

	data, err := json.Marshal(tbl)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"Ip":"1.1.1.1","Asn":"CLOUDFLARENET"}]`, string(data))

	data, err = json.Marshal(New("Ip"))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestNilTable(t *testing.T) {
	var tbl *Table
	assert.Equal(t, 0, tbl.Len())
	assert.Nil(t, tbl.Columns())
	_, ok := tbl.Column("x")
	assert.False(t, ok)
}
