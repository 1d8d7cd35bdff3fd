package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTable(t *testing.T) {
	cases := []struct {
		crl, qs float64
		want    Category
	}{
		{500, 40, 1}, {10000, 99, 1},
		{500, 39, 2}, {600, 25, 2},
		{500, 24, 3}, {700, 0, 3},
		{499, 40, 4}, {0, 60, 4},
		{499, 39, 5}, {300, 25, 5},
		{499, 24, 6}, {300, 10, 6},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(Of(c.crl), Of(c.qs)), "crl=%v qs=%v", c.crl, c.qs)
	}
}

func TestClassifyGrid(t *testing.T) {
	for crl := 0; crl <= 1000; crl += 50 {
		for qs := 0; qs <= 60; qs++ {
			got := Classify(Of(float64(crl)), Of(float64(qs)))
			var want Category
			switch {
			case crl >= 500 && qs >= 40:
				want = 1
			case crl >= 500 && qs >= 25:
				want = 2
			case crl >= 500:
				want = 3
			case qs >= 40:
				want = 4
			case qs >= 25:
				want = 5
			default:
				want = 6
			}
			if got != want {
				t.Fatalf("crl=%d qs=%d: got %d want %d", crl, qs, got, want)
			}
		}
	}
}

func TestClassifyUnclassifiable(t *testing.T) {
	assert.Equal(t, Unclassified, Classify(Absent, Of(45)))
	assert.Equal(t, Unclassified, Classify(Of(600), Absent))
	assert.Equal(t, Unclassified, Classify(Absent, Absent))
	assert.Equal(t, Unclassified, Classify(Of(-1), Of(45)))
	assert.Equal(t, Unclassified, Classify(Of(600), Of(-3)))
	// between the integer bands 25..39 and >=40
	assert.Equal(t, Unclassified, Classify(Of(600), Of(39.5)))
	assert.Equal(t, Category(2), Classify(Of(600), Of(30.5)))
}

func TestParseMetric(t *testing.T) {
	assert.Equal(t, Of(600), ParseMetric(" 600 "))
	assert.Equal(t, Of(39.5), ParseMetric("39.5"))
	for _, s := range []string{"", "  ", "n/a", "NaN", "Inf", "-", "12abc"} {
		assert.False(t, ParseMetric(s).Present, "%q should be absent", s)
	}
	assert.Equal(t, Unclassified, Classify(ParseMetric("abc"), ParseMetric("40")))
}

func TestThresholds(t *testing.T) {
	th := Thresholds{MinCRL: 300, HighQuality: 30, LowQuality: 20}
	require.NoError(t, th.Validate())
	assert.Equal(t, Category(1), th.Classify(Of(300), Of(30)))
	assert.Equal(t, Category(5), th.Classify(Of(299), Of(20)))
	assert.Equal(t, Category(6), th.Classify(Of(299), Of(19)))

	require.Error(t, Thresholds{MinCRL: 500, HighQuality: 25, LowQuality: 25}.Validate())
	require.Error(t, Thresholds{MinCRL: -1, HighQuality: 40, LowQuality: 25}.Validate())
}

func TestMinMaxFromInt(t *testing.T) {
	assert.Equal(t, Category(2), Min(2, 5))
	assert.Equal(t, Category(5), Max(2, 5))
	_, err := FromInt(0)
	require.Error(t, err)
	_, err = FromInt(8)
	require.Error(t, err)
	c, err := FromInt(7)
	require.NoError(t, err)
	assert.Equal(t, Unclassified, c)
	assert.True(t, c.Valid())
	assert.False(t, Category(0).Valid())
	assert.Equal(t, 6, c.Index())
}
