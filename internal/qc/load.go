// internal/qc/load.go
package qc

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// Extensions recognized when a directory is given.
var Extensions = []string{".xlsx", ".csv", ".tsv", ".txt"}

// Load reads one QC file. XLSX files use the active sheet.
func Load(path string) (*Table, error) {
	var (
		records [][]string
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		records, err = readXLSX(path)
	case ".csv":
		records, err = readDelimited(path, ',')
	case ".tsv", ".txt":
		records, err = readDelimited(path, '\t')
	default:
		return nil, eris.Errorf("%s: unsupported QC file type %q", path, ext)
	}
	if err != nil {
		return nil, err
	}
	t := &Table{Source: path}
	if len(records) == 0 {
		return t, nil
	}
	t.Header = normalizeHeader(records[0])
	t.Rows = newRows(path, records[1:], len(t.Header))
	return t, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open workbook %s", path)
	}
	defer func() { _ = f.Close() }()

	// Raw values: a CRL of 1234 formatted "#,##0" must not come back as "1,234".
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, eris.Wrapf(err, "read sheet %q of %s", sheet, path)
	}
	return rows, nil
}

func readDelimited(path string, comma rune) ([][]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer fh.Close()
	records, err := parseDelimited(fh, comma)
	if err != nil {
		return nil, eris.Wrapf(err, "parse %s", path)
	}
	return records, nil
}

func parseDelimited(r io.Reader, comma rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}

// Expand replaces directories in paths by the QC files they contain, in
// natural order. Excel lock files ("~$...") are skipped.
func Expand(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil {
			return nil, eris.Wrapf(err, "stat %s", p)
		}
		if !st.IsDir() {
			out = append(out, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, eris.Wrapf(err, "read dir %s", p)
		}
		var found []string
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || strings.HasPrefix(name, "~$") || !hasExt(name, Extensions) {
				continue
			}
			found = append(found, filepath.Join(p, name))
		}
		sort.Slice(found, func(i, j int) bool { return natural.Less(found[i], found[j]) })
		out = append(out, found...)
	}
	return out, nil
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// ErrNoFiles is returned by LoadAll when the paths hold no QC files.
var ErrNoFiles = errors.New("no QC files found")

// LoadAll expands paths, loads every file concurrently, checks that each one
// carries the required columns, and concatenates them in argument order.
func LoadAll(ctx context.Context, paths []string, required ...string) (*Table, error) {
	files, err := Expand(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, eris.Wrapf(ErrNoFiles, "%v", paths)
	}

	tables := make([]*Table, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, fn := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := Load(fn)
			if err != nil {
				return err
			}
			if err := t.Require(required...); err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Concat(tables...), nil
}
