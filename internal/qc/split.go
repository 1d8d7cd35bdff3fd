// internal/qc/split.go
package qc

import (
	"fmt"
	"path/filepath"
	"strconv"

	"qctriage/internal/category"
)

// SplitName is the file name of the QC split for category c.
func SplitName(c category.Category, ext string) string {
	return fmt.Sprintf("Category_%d_QC%s", int(c), ext)
}

// SplitByCategory groups rows by the integer in column col. Rows whose cell is
// blank or not a valid category go to Unclassified. Every result table shares
// t's header.
func SplitByCategory(t *Table, col string) [len(category.All)]*Table {
	var out [len(category.All)]*Table
	for i := range out {
		out[i] = &Table{Source: t.Source, Header: append([]string(nil), t.Header...)}
	}
	idx := t.Col(col)
	for r, row := range t.Rows {
		c := category.Unclassified
		if n, err := strconv.Atoi(t.Cell(r, idx)); err == nil {
			if v, err := category.FromInt(n); err == nil {
				c = v
			}
		}
		out[c.Index()].Rows = append(out[c.Index()].Rows, row)
	}
	return out
}

// SaveSplits writes all seven split tables into dir with extension ext. Empty
// categories produce header-only files.
func SaveSplits(dir, ext string, splits [len(category.All)]*Table) ([]string, error) {
	paths := make([]string, 0, len(splits))
	for i, st := range splits {
		p := filepath.Join(dir, SplitName(category.All[i], ext))
		if err := Save(p, st); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
