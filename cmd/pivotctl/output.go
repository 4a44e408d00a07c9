/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/suparena/pivot"
	"github.com/suparena/pivot/table"
)

const (
	ruleWidth = 80
	maxCell   = 40
)

type entityRow struct {
	Entity       string   `json:"entity"`
	AccessPoints []string `json:"accessPoints"`
}

type resolveResult struct {
	Name        string   `json:"name"`
	Entity      string   `json:"entity,omitempty"`
	Error       string   `json:"error,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type checkLine struct {
	Pivot  string `json:"pivot"`
	Entity string `json:"entity"`
	Error  string `json:"error,omitempty"`
}

type checkSummary struct {
	Provider string      `json:"provider"`
	Attached []checkLine `json:"attached"`
	Replaced []checkLine `json:"replaced"`
	Failed   []checkLine `json:"failed"`
}

func newCheckSummary(r pivot.Report) checkSummary {
	s := checkSummary{
		Provider: r.Provider,
		Attached: []checkLine{},
		Replaced: []checkLine{},
		Failed:   []checkLine{},
	}
	for _, o := range r.Outcomes {
		for _, a := range o.Attached {
			line := checkLine{Pivot: o.Name, Entity: a.Entity}
			if a.Replaced {
				s.Replaced = append(s.Replaced, line)
				continue
			}
			s.Attached = append(s.Attached, line)
		}
		for _, f := range o.Failed {
			s.Failed = append(s.Failed, checkLine{Pivot: o.Name, Entity: f.Entity, Error: f.Err.Error()})
		}
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func renderEntities(w io.Writer, rows []entityRow) {
	headerColor.Fprintln(w, "ENTITIES")
	headerColor.Fprintln(w, strings.Repeat("=", ruleWidth))
	fmt.Fprintf(w, "%-22s %s\n", "Entity", "Access points")
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
	for _, r := range rows {
		points := strings.Join(r.AccessPoints, ", ")
		if points == "" {
			points = "-"
		}
		fmt.Fprintf(w, "%-22s %s\n", r.Entity, points)
	}
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
}

func renderResolve(w io.Writer, results []resolveResult) {
	for _, r := range results {
		if r.Error == "" {
			successColor.Fprintf(w, "✓ %s", r.Name)
			fmt.Fprintf(w, " -> %s\n", r.Entity)
			continue
		}
		errorColor.Fprintf(w, "✗ %s", r.Name)
		fmt.Fprintf(w, ": %s\n", r.Error)
	}
}

func renderCheck(w io.Writer, s checkSummary) {
	headerColor.Fprintf(w, "Provider %s\n", s.Provider)
	for _, l := range s.Attached {
		successColor.Fprint(w, "  attached ")
		fmt.Fprintf(w, "%s.%s\n", l.Entity, l.Pivot)
	}
	for _, l := range s.Replaced {
		warningColor.Fprint(w, "  replaced ")
		fmt.Fprintf(w, "%s.%s\n", l.Entity, l.Pivot)
	}
	for _, l := range s.Failed {
		errorColor.Fprint(w, "  failed   ")
		fmt.Fprintf(w, "%s (%s): %s\n", l.Entity, l.Pivot, l.Error)
	}
	fmt.Fprintf(w, "%d attached, %d replaced, %d failed\n", len(s.Attached), len(s.Replaced), len(s.Failed))
}

func renderTable(w io.Writer, t *table.Table) {
	if t == nil || t.Len() == 0 {
		warningColor.Fprintln(w, "No results")
		return
	}
	cols := t.Columns()
	widths := make([]int, len(cols))
	cells := make([][]string, t.Len())
	for i, c := range cols {
		widths[i] = len(c)
	}
	for r, row := range t.Rows() {
		cells[r] = make([]string, len(cols))
		for i, v := range row {
			s := "-"
			if v != nil {
				s = truncate(fmt.Sprint(v), maxCell)
			}
			cells[r][i] = s
			if len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
	}

	for i, c := range cols {
		headerColor.Fprintf(w, "%-*s ", widths[i], c)
	}
	fmt.Fprintln(w)
	for _, row := range cells {
		for i, s := range row {
			fmt.Fprintf(w, "%-*s ", widths[i], s)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "(%d rows)\n", t.Len())
}
