// internal/qc/clone.go
package qc

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// CloneColumns locates the three columns of a clone mapping sheet. A column is
// named by its header text or by "#N" for the N-th column (1-based), which is
// needed when the mapping sheet leaves those headers blank.
type CloneColumns struct {
	Light string `mapstructure:"light" yaml:"light"`
	Heavy string `mapstructure:"heavy" yaml:"heavy"`
	Clone string `mapstructure:"clone" yaml:"clone"`
}

// DefaultCloneColumns matches the hybridoma tracking sheet layout.
var DefaultCloneColumns = CloneColumns{
	Light: "Azenta sequence ID",
	Heavy: "#7",
	Clone: "#4",
}

// CloneMap maps a sequencing name to its clone number. Light-chain names are
// consulted before heavy-chain names.
type CloneMap struct {
	light map[string]string
	heavy map[string]string
}

// Lookup returns the clone for name, trimmed.
func (m *CloneMap) Lookup(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if v, ok := m.light[name]; ok {
		return v, true
	}
	v, ok := m.heavy[name]
	return v, ok
}

// Len is the number of distinct names known.
func (m *CloneMap) Len() int { return len(m.light) + len(m.heavy) }

func (t *Table) resolveColumn(ref string) (int, error) {
	if i := t.Col(ref); i >= 0 {
		return i, nil
	}
	if strings.HasPrefix(ref, "#") {
		n, err := strconv.Atoi(ref[1:])
		if err == nil && n >= 1 && n <= len(t.Header) {
			return n - 1, nil
		}
	}
	return -1, &MissingColumnError{Source: t.Source, Column: ref}
}

// NewCloneMap builds a CloneMap from a loaded mapping table.
func NewCloneMap(t *Table, cols CloneColumns) (*CloneMap, error) {
	li, err := t.resolveColumn(cols.Light)
	if err != nil {
		return nil, err
	}
	hi, err := t.resolveColumn(cols.Heavy)
	if err != nil {
		return nil, err
	}
	ci, err := t.resolveColumn(cols.Clone)
	if err != nil {
		return nil, err
	}
	m := &CloneMap{light: map[string]string{}, heavy: map[string]string{}}
	for r := range t.Rows {
		clone := t.Cell(r, ci)
		if clone == "" {
			continue
		}
		if k := t.Cell(r, li); k != "" {
			m.light[k] = clone
		}
		if k := t.Cell(r, hi); k != "" {
			m.heavy[k] = clone
		}
	}
	return m, nil
}

// LoadCloneMap loads a mapping sheet from path.
func LoadCloneMap(path string, cols CloneColumns) (*CloneMap, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	m, err := NewCloneMap(t, cols)
	if err != nil {
		return nil, eris.Wrap(err, "clone map")
	}
	return m, nil
}

// AnnotateClones fills the Clone# column from m, keyed by the DNAName column
// or TemplateName when DNAName is absent. It returns how many rows matched.
func AnnotateClones(t *Table, m *CloneMap) int {
	key := t.Col(ColDNAName)
	if key < 0 {
		key = t.Col(ColTemplate)
	}
	vals := make([]string, len(t.Rows))
	matched := 0
	for r := range t.Rows {
		if v, ok := m.Lookup(t.Cell(r, key)); ok {
			vals[r] = v
			matched++
		}
	}
	t.SetColumn(ColClone, vals)
	return matched
}
