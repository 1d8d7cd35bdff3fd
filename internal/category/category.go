// Package category assigns QC quality tiers.
//
// Tiers 1..6 come from two metrics, CRL and quality score; tier 7 means the
// read could not be classified (missing metric, missing counterpart, or an
// unparsable identifier). Lower is better.
package category

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Category is a quality tier in [Best, Unclassified].
type Category uint8

const (
	Best         Category = 1
	Unclassified Category = 7
)

// All lists every tier in ascending order.
var All = [...]Category{1, 2, 3, 4, 5, 6, 7}

// Valid reports whether c is in [1,7].
func (c Category) Valid() bool { return c >= Best && c <= Unclassified }

func (c Category) String() string { return strconv.Itoa(int(c)) }

// Index returns c-1 for use with [7]T arrays.
func (c Category) Index() int { return int(c) - 1 }

// Min returns the better of a and b.
func Min(a, b Category) Category {
	if a < b {
		return a
	}
	return b
}

// Max returns the worse of a and b.
func Max(a, b Category) Category {
	if a > b {
		return a
	}
	return b
}

// FromInt converts an integer tier, rejecting anything outside [1,7].
func FromInt(n int) (Category, error) {
	if n < int(Best) || n > int(Unclassified) {
		return 0, fmt.Errorf("category %d out of range 1..7", n)
	}
	return Category(n), nil
}

// Metric is one numeric QC value that may be absent.
type Metric struct {
	Value   float64
	Present bool
}

// Absent is the missing metric.
var Absent = Metric{}

// Of returns a present metric.
func Of(v float64) Metric { return Metric{Value: v, Present: true} }

// ParseMetric reads a spreadsheet cell. Blank, non-numeric and non-finite
// text is absent.
func ParseMetric(s string) Metric {
	s = strings.TrimSpace(s)
	if s == "" {
		return Absent
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Of(float64(n))
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Absent
	}
	return Of(f)
}

func (m Metric) String() string {
	if !m.Present {
		return "NA"
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}
