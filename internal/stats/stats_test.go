package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qctriage/internal/category"
	"qctriage/internal/pairs"
	"qctriage/internal/partition"
)

func TestPercentZeroTotal(t *testing.T) {
	assert.Equal(t, 0.0, Percent(0, 0))
	assert.Equal(t, 0.0, Percent(5, 0))
	assert.InDelta(t, 25.0, Percent(1, 4), 1e-9)
}

func TestBuildEmpty(t *testing.T) {
	s := Build(Input{Vocabulary: "HL"})
	require.Len(t, s.SequencesByTier, 7)
	require.Len(t, s.PairsByTier, 7)
	for i, tr := range s.SequencesByTier {
		assert.Equal(t, category.Category(i+1), tr.Category)
		assert.Zero(t, tr.Count)
		assert.Zero(t, tr.Percent)
	}
	assert.Zero(t, s.TotalSequences)
	assert.NotEmpty(t, s.RunID)
}

func TestBuildCounts(t *testing.T) {
	var b partition.Buckets
	b[0] = []partition.Record{{ID: "a"}}
	b[5] = []partition.Record{{ID: "b"}, {ID: "c"}}
	b[6] = []partition.Record{{ID: "d"}}

	s := Build(Input{
		Buckets: &b,
		Resolutions: []pairs.Resolution{
			{Base: "x", Pair: 6}, {Base: "y", Pair: 7},
		},
		Inconsistencies: []pairs.Inconsistency{
			{Kind: pairs.MissingSequence, Full: "P10-L1"},
			{Kind: pairs.MissingSequence, Full: "P2-L1"},
			{Kind: pairs.MissingQC, Full: "Q-H1"},
			{Kind: pairs.Unparsable, Name: "junk"},
		},
		UnparsableQC: []string{"bad row"},
	})

	assert.Equal(t, 4, s.TotalSequences)
	assert.Equal(t, 2, s.SequencesByTier[5].Count)
	assert.InDelta(t, 50.0, s.SequencesByTier[5].Percent, 1e-9)
	assert.Equal(t, 2, s.TotalPairs)
	assert.Equal(t, 1, s.PairsByTier[6].Count)
	assert.Equal(t, []string{"P2-L1", "P10-L1"}, s.Anomalies.QCMissingSequence)
	assert.Equal(t, []string{"Q-H1"}, s.Anomalies.SequenceMissingQC)
	assert.Equal(t, []string{"junk"}, s.Anomalies.UnparsableNames)
	assert.Equal(t, []string{"bad row"}, s.Anomalies.UnparsableQC)
}
