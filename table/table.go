/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package table

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/suparena/pivot/errors"
)

// ValueColumn is the column name used by FromValues.
const ValueColumn = "qry_value"

// Table is an ordered set of named columns and rows of cells.
// A zero Table is empty and usable.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// New creates an empty table with the given columns.
// Duplicate column names are collapsed to their first occurrence.
func New(columns ...string) *Table {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		t.addColumn(c)
	}
	return t
}

// FromValues builds a single-column table with one row per value.
func FromValues(values ...any) *Table {
	t := New(ValueColumn)
	for _, v := range values {
		t.rows = append(t.rows, []any{v})
	}
	return t
}

func (t *Table) addColumn(name string) int {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[name]; ok {
		return i
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	return len(t.columns) - 1
}

// AppendRow adds a row. The number of values must match the number of columns.
func (t *Table) AppendRow(values ...any) error {
	if len(values) != len(t.columns) {
		return errors.NewValidationError("row", fmt.Sprintf("expected %d values, got %d", len(t.columns), len(values)))
	}
	row := make([]any, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// AppendRecord adds a row from a column->value map. Unknown columns are
// added to the table; cells of existing rows for them stay nil.
func (t *Table) AppendRecord(rec map[string]any) {
	for _, name := range sortedKeys(rec) {
		t.addColumn(name)
	}
	row := make([]any, len(t.columns))
	for name, v := range rec {
		row[t.index[name]] = v
	}
	t.rows = append(t.rows, row)
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Rows returns the rows, padded to the current column count.
func (t *Table) Rows() [][]any {
	if t == nil {
		return nil
	}
	out := make([][]any, len(t.rows))
	for i, r := range t.rows {
		out[i] = t.pad(r)
	}
	return out
}

// Column returns the cells of a column.
func (t *Table) Column(name string) ([]any, bool) {
	if t == nil {
		return nil, false
	}
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	out := make([]any, len(t.rows))
	for r, row := range t.rows {
		if i < len(row) {
			out[r] = row[i]
		}
	}
	return out, true
}

// Records returns the rows as column->value maps.
func (t *Table) Records() []map[string]any {
	if t == nil {
		return nil
	}
	out := make([]map[string]any, len(t.rows))
	for r, row := range t.rows {
		rec := make(map[string]any, len(t.columns))
		for i, c := range t.columns {
			if i < len(row) {
				rec[c] = row[i]
			} else {
				rec[c] = nil
			}
		}
		out[r] = rec
	}
	return out
}

// Equal reports whether both tables have the same columns and cells.
func (t *Table) Equal(other *Table) bool {
	return reflect.DeepEqual(t.Columns(), other.Columns()) && reflect.DeepEqual(t.Rows(), other.Rows())
}

// MarshalJSON encodes the table as an array of records.
func (t *Table) MarshalJSON() ([]byte, error) {
	recs := t.Records()
	if recs == nil {
		recs = []map[string]any{}
	}
	return json.Marshal(recs)
}

func (t *Table) pad(row []any) []any {
	out := make([]any, len(t.columns))
	copy(out, row)
	return out
}

// Concat appends the rows of tables in order into a new table.
// Columns are the union of all input columns in first-seen order; a cell is
// nil where its source table did not have the column. Nil tables are skipped.
func Concat(tables ...*Table) *Table {
	out := New()
	for _, t := range tables {
		if t == nil {
			continue
		}
		pos := make([]int, len(t.columns))
		for i, c := range t.columns {
			pos[i] = out.addColumn(c)
		}
		for _, row := range t.rows {
			dst := make([]any, len(out.columns))
			for i, v := range row {
				if i < len(pos) {
					dst[pos[i]] = v
				}
			}
			out.rows = append(out.rows, dst)
		}
	}
	// rows appended before later columns appeared are shorter; normalize them
	for i, r := range out.rows {
		if len(r) < len(out.columns) {
			out.rows[i] = out.pad(r)
		}
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
