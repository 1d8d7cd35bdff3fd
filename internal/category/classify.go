// internal/category/classify.go
package category

import (
	"errors"
	"fmt"
	"math"
)

// Thresholds are the cut points of the classification table.
//
//	CRL >= MinCRL, QS >= HighQuality               -> 1
//	CRL >= MinCRL, LowQuality <= QS <= HighQuality-1 -> 2
//	CRL >= MinCRL, QS < LowQuality                 -> 3
//	CRL <  MinCRL  (same QS bands)                 -> 4, 5, 6
type Thresholds struct {
	MinCRL      float64 `mapstructure:"min-crl" json:"min_crl" yaml:"min_crl"`
	HighQuality float64 `mapstructure:"high-quality" json:"high_quality" yaml:"high_quality"`
	LowQuality  float64 `mapstructure:"low-quality" json:"low_quality" yaml:"low_quality"`
}

// DefaultThresholds reproduces the lab table (500 / 40 / 25).
var DefaultThresholds = Thresholds{MinCRL: 500, HighQuality: 40, LowQuality: 25}

// Validate rejects orderings that would make bands overlap.
func (t Thresholds) Validate() error {
	for _, v := range []float64{t.MinCRL, t.HighQuality, t.LowQuality} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("threshold %v must be a finite non-negative number", v)
		}
	}
	if t.LowQuality >= t.HighQuality {
		return errors.New("low-quality threshold must be below high-quality threshold")
	}
	return nil
}

// Classify uses DefaultThresholds.
func Classify(crl, qs Metric) Category { return DefaultThresholds.Classify(crl, qs) }

// Classify maps a pair of metrics to a tier. It is pure.
func (t Thresholds) Classify(crl, qs Metric) Category {
	if !crl.Present || !qs.Present || crl.Value < 0 || qs.Value < 0 {
		return Unclassified
	}
	band, ok := t.qualityBand(qs.Value)
	if !ok {
		return Unclassified
	}
	if crl.Value >= t.MinCRL {
		return Category(1 + band)
	}
	return Category(4 + band)
}

// qualityBand returns 0 (high), 1 (mid) or 2 (low). The mid band is closed on
// integers, so a non-integral score between HighQuality-1 and HighQuality
// falls through and is reported as unclassifiable.
func (t Thresholds) qualityBand(q float64) (int, bool) {
	switch {
	case q >= t.HighQuality:
		return 0, true
	case q >= t.LowQuality && q <= t.HighQuality-1:
		return 1, true
	case q < t.LowQuality:
		return 2, true
	}
	return 0, false
}
