// Package qc reads and writes QC spreadsheets (XLSX, CSV, TSV).
//
// A Table is one header row plus data rows whose cells are aligned to it.
// Several files are concatenated by column name, so the files need not list
// their columns in the same order.
package qc

import (
	"errors"
	"fmt"
	"strings"
)

// Default column names of the lab export. The quality column keeps the
// export's spelling.
const (
	ColTemplate      = "TemplateName"
	ColCRL           = "CRL"
	ColQuality       = "QualitySCore"
	ColChainCategory = "Chain Category"
	ColPairCategory  = "Pair Category"
	ColDNAName       = "DNAName"
	ColClone         = "Clone#"
)

// ErrMissingColumn is wrapped by MissingColumnError.
var ErrMissingColumn = errors.New("required column missing")

// MissingColumnError names the file and the column it lacks.
type MissingColumnError struct {
	Source string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: required column %q not found in header", e.Source, e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// Row is one data row.
type Row struct {
	Source string // file the row came from
	Line   int    // 1-based row number in that file, header is 1
	Cells  []string
}

// Table is a header plus rows.
type Table struct {
	Source string
	Header []string
	Rows   []Row
}

// Col returns the index of column name, or -1.
func (t *Table) Col(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Require fails with a *MissingColumnError for the first absent column.
func (t *Table) Require(cols ...string) error {
	for _, c := range cols {
		if t.Col(c) < 0 {
			return &MissingColumnError{Source: t.Source, Column: c}
		}
	}
	return nil
}

// Cell returns column i of row r, "" when out of range.
func (t *Table) Cell(r, i int) string {
	if i < 0 || r < 0 || r >= len(t.Rows) {
		return ""
	}
	cells := t.Rows[r].Cells
	if i >= len(cells) {
		return ""
	}
	return cells[i]
}

// SetColumn writes values into column name, adding it at the end when the
// header lacks it. values is indexed by row; missing entries become "".
func (t *Table) SetColumn(name string, values []string) {
	col := t.Col(name)
	if col < 0 {
		t.Header = append(t.Header, name)
		col = len(t.Header) - 1
	}
	for r := range t.Rows {
		cells := t.Rows[r].Cells
		for len(cells) < len(t.Header) {
			cells = append(cells, "")
		}
		v := ""
		if r < len(values) {
			v = values[r]
		}
		cells[col] = v
		t.Rows[r].Cells = cells
	}
}

// Concat merges tables by column name. The header is the first table's
// header followed by columns first seen in later tables.
func Concat(tables ...*Table) *Table {
	out := &Table{}
	if len(tables) == 0 {
		return out
	}
	out.Source = tables[0].Source
	index := map[string]int{}
	for _, t := range tables {
		for _, h := range t.Header {
			if _, ok := index[h]; !ok {
				index[h] = len(out.Header)
				out.Header = append(out.Header, h)
			}
		}
	}
	for _, t := range tables {
		for _, r := range t.Rows {
			cells := make([]string, len(out.Header))
			for i, h := range t.Header {
				if i < len(r.Cells) {
					cells[index[h]] = r.Cells[i]
				}
			}
			out.Rows = append(out.Rows, Row{Source: r.Source, Line: r.Line, Cells: cells})
		}
	}
	return out
}

// normalizeHeader trims cells and drops a UTF-8 BOM.
func normalizeHeader(h []string) []string {
	out := make([]string, len(h))
	for i, c := range h {
		if i == 0 {
			c = strings.TrimPrefix(c, "\ufeff")
		}
		out[i] = strings.TrimSpace(c)
	}
	return out
}

// newRows aligns raw records to width and skips blank ones.
func newRows(source string, records [][]string, width int) []Row {
	var rows []Row
	for i, rec := range records {
		blank := true
		cells := make([]string, width)
		for j := 0; j < len(rec) && j < width; j++ {
			cells[j] = strings.TrimSpace(rec[j])
			if cells[j] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, Row{Source: source, Line: i + 2, Cells: cells})
	}
	return rows
}
