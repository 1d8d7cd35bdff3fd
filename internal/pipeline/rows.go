// internal/pipeline/rows.go
package pipeline

import (
	"fmt"

	"qctriage/internal/category"
	"qctriage/internal/qc"
)

// Row is one QC measurement as the pipeline sees it.
type Row struct {
	Label   string // where the row came from, for logs
	Name    string
	CRL     category.Metric
	Quality category.Metric
}

// Columns names the QC columns a table is read from.
type Columns struct {
	Template string `mapstructure:"template" yaml:"template"`
	CRL      string `mapstructure:"crl" yaml:"crl"`
	Quality  string `mapstructure:"quality" yaml:"quality"`
}

// DefaultColumns are the lab export's column names.
var DefaultColumns = Columns{Template: qc.ColTemplate, CRL: qc.ColCRL, Quality: qc.ColQuality}

// Required lists the columns in the order they are checked.
func (c Columns) Required() []string { return []string{c.Template, c.CRL, c.Quality} }

// RowsFromTable converts t into pipeline rows, one per table row.
func RowsFromTable(t *qc.Table, cols Columns) ([]Row, error) {
	if err := t.Require(cols.Required()...); err != nil {
		return nil, err
	}
	ti, ci, qi := t.Col(cols.Template), t.Col(cols.CRL), t.Col(cols.Quality)
	rows := make([]Row, len(t.Rows))
	for r, tr := range t.Rows {
		rows[r] = Row{
			Label:   fmt.Sprintf("%s:%d", tr.Source, tr.Line),
			Name:    t.Cell(r, ti),
			CRL:     category.ParseMetric(t.Cell(r, ci)),
			Quality: category.ParseMetric(t.Cell(r, qi)),
		}
	}
	return rows, nil
}
