// internal/qc/save.go
package qc

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// Augment writes the chain and pair category columns. Existing columns of the
// same name are overwritten in place, so re-running never duplicates them.
func (t *Table) Augment(chain, pair []string) {
	t.SetColumn(ColChainCategory, chain)
	t.SetColumn(ColPairCategory, pair)
}

// Save writes t to path; the format follows the extension.
func Save(path string, t *Table) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return saveXLSX(path, t)
	case ".csv":
		return saveDelimited(path, t, ',')
	case ".tsv", ".txt":
		return saveDelimited(path, t, '\t')
	default:
		return eris.Errorf("%s: unsupported QC output type %q", path, ext)
	}
}

func saveXLSX(path string, t *Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	write := func(row int, cells []string) error {
		addr, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		vals := make([]interface{}, len(cells))
		for i, c := range cells {
			vals[i] = cellValue(c)
		}
		return f.SetSheetRow(sheetName, addr, &vals)
	}

	if err := write(1, t.Header); err != nil {
		return eris.Wrapf(err, "write header to %s", path)
	}
	for i, r := range t.Rows {
		if err := write(i+2, r.Cells); err != nil {
			return eris.Wrapf(err, "write row %d to %s", i+2, path)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return eris.Wrapf(err, "save %s", path)
	}
	return nil
}

// cellValue keeps numbers numeric in the workbook when the text round-trips
// exactly, so identifiers such as "007" stay text.
func cellValue(s string) interface{} {
	if n, err := strconv.Atoi(s); err == nil && strconv.Itoa(n) == s {
		return n
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && strconv.FormatFloat(v, 'f', -1, 64) == s {
		return v
	}
	return s
}

func saveDelimited(path string, t *Table, comma rune) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := fh.Close(); err == nil && cerr != nil {
			err = eris.Wrapf(cerr, "close %s", path)
		}
	}()

	w := csv.NewWriter(fh)
	w.Comma = comma
	if err := w.Write(t.Header); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	for _, r := range t.Rows {
		cells := r.Cells
		for len(cells) < len(t.Header) {
			cells = append(cells, "")
		}
		if err := w.Write(cells); err != nil {
			return eris.Wrapf(err, "write %s", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "flush %s", path)
	}
	return nil
}
