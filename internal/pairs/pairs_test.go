package pairs

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qctriage/internal/category"
	"qctriage/internal/chainid"
)

var parser = chainid.NewParser(chainid.Letters)

func mustID(t *testing.T, name string) chainid.ID {
	t.Helper()
	id, err := parser.Parse(name)
	require.NoError(t, err, name)
	return id
}

func TestReducerMinimumWinsAnyOrder(t *testing.T) {
	orders := [][]category.Category{{2, 4, 7}, {7, 4, 2}, {4, 2, 7}, {7, 2, 4}}
	for _, ord := range orders {
		r := NewReducer()
		var red Reduction
		for _, c := range ord {
			red = r.Observe("P1-H1", c)
		}
		assert.Equal(t, category.Category(2), red.Best, "order %v", ord)
		assert.Equal(t, 1, r.Len())
	}
}

func TestReducerReportsImprovement(t *testing.T) {
	r := NewReducer()
	red := r.Observe("X-L1", 5)
	assert.True(t, red.First)
	assert.True(t, red.Improved)

	red = r.Observe("X-L1", 6)
	assert.False(t, red.Improved)
	assert.Equal(t, category.Category(5), red.Best)

	red = r.Observe("X-L1", 3)
	assert.True(t, red.Improved)
	assert.Equal(t, category.Category(5), red.Prev)
	assert.Equal(t, category.Category(3), red.Best)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryUpsertMonotonic(t *testing.T) {
	reg := NewRegistry()
	h := mustID(t, "P1-H1")

	e := reg.Upsert(h, 4)
	assert.Equal(t, category.Category(4), e.Heavy)
	assert.Equal(t, category.Unclassified, e.Light)
	assert.True(t, e.HeavySeen)
	assert.False(t, e.LightSeen)

	e = reg.Upsert(h, 6) // never raised
	assert.Equal(t, category.Category(4), e.Heavy)
	e = reg.Upsert(h, 1)
	assert.Equal(t, category.Category(1), e.Heavy)

	require.True(t, reg.Demote("P1-1", chainid.Heavy))
	got, ok := reg.Get("P1-1")
	require.True(t, ok)
	assert.Equal(t, category.Unclassified, got.Heavy)
	assert.True(t, got.HeavyDemoted)
	assert.False(t, reg.Demote("missing", chainid.Light))
}

func TestRegistryEntriesNaturalOrder(t *testing.T) {
	reg := NewRegistry()
	for _, n := range []string{"P10-H1", "P2-H1", "P1-L3", "P1-H2"} {
		reg.Upsert(mustID(t, n), 1)
	}
	var bases []string
	for _, e := range reg.Entries() {
		bases = append(bases, e.Base)
	}
	assert.Equal(t, []string{"P1-2", "P1-3", "P2-1", "P10-1"}, bases)
	assert.Equal(t, 4, reg.Len())
}

func TestRegistryConcurrentUpserts(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id, _ := parser.Parse(fmt.Sprintf("C%d-H1", i%10))
				reg.Upsert(id, category.Category(1+(i+w)%7))
			}
		}(w)
	}
	wg.Wait()
	for _, e := range reg.Entries() {
		assert.Equal(t, category.Best, e.Heavy, e.Base)
	}
}

func TestResolveWorseSide(t *testing.T) {
	r := Resolve(Entry{Base: "b", Heavy: 2, Light: 5})
	assert.Equal(t, category.Category(5), r.Pair)
	assert.Equal(t, chainid.Light, r.DeterminedBy)

	r = Resolve(Entry{Base: "b", Heavy: 7, Light: 7})
	assert.Equal(t, category.Unclassified, r.Pair)
	assert.Equal(t, chainid.Heavy, r.DeterminedBy)

	tbl := NewTable([]Resolution{r})
	assert.Equal(t, category.Unclassified, tbl.Category("b"))
	assert.Equal(t, category.Unclassified, tbl.Category("unknown"))
}

func TestCheckBothPresent(t *testing.T) {
	reg := NewRegistry()
	reg.Upsert(mustID(t, "P1-H1"), 2)
	reg.Upsert(mustID(t, "P1-L1"), 5)
	idx := IndexSequences(parser, []string{"P1-H1", "P1-L1"})

	assert.Empty(t, Check(reg, parser, idx))
	e, _ := reg.Get("P1-1")
	assert.Equal(t, category.Category(5), Resolve(e).Pair)
}

func TestCheckHeavyOnly(t *testing.T) {
	reg := NewRegistry()
	reg.Upsert(mustID(t, "P2-H1"), 1)
	idx := IndexSequences(parser, []string{"P2-H1"})

	incs := Check(reg, parser, idx)
	require.Len(t, incs, 1)
	assert.Equal(t, MissingSequence, incs[0].Kind)
	assert.Equal(t, "P2-L1", incs[0].Full)
	assert.False(t, incs[0].QCSeen)

	e, _ := reg.Get("P2-1")
	assert.Equal(t, category.Category(1), e.Heavy)
	assert.Equal(t, category.Unclassified, Resolve(e).Pair)
}

func TestCheckDemotesClassifiedSideWithoutSequence(t *testing.T) {
	reg := NewRegistry()
	reg.Upsert(mustID(t, "P3-H1"), 1)
	reg.Upsert(mustID(t, "P3-L1"), 2)
	idx := IndexSequences(parser, []string{"P3-H1"})

	incs := Check(reg, parser, idx)
	require.Len(t, incs, 1)
	assert.Equal(t, MissingSequence, incs[0].Kind)
	assert.True(t, incs[0].QCSeen)

	e, _ := reg.Get("P3-1")
	assert.Equal(t, category.Unclassified, e.Light)
	assert.True(t, e.LightDemoted)

	res := Resolve(e)
	assert.Equal(t, category.Unclassified, res.Pair)
	assert.True(t, res.LightDemoted)
	assert.False(t, res.HeavyDemoted)
}

func TestCheckSequenceWithoutQC(t *testing.T) {
	reg := NewRegistry()
	reg.Upsert(mustID(t, "P4-H1"), 1)
	idx := IndexSequences(parser, []string{"P4-H1", "P4-L1", "P5-H2", "P5-L2", "P5-L2", "junk"})

	incs := Check(reg, parser, idx)
	kinds := map[Kind][]string{}
	for _, in := range incs {
		kinds[in.Kind] = append(kinds[in.Kind], in.Full+in.Name)
	}
	assert.Equal(t, []string{"P4-L1", "P5-H2", "P5-L2"}, kinds[MissingQC])
	assert.Equal(t, []string{"junk"}, kinds[Unparsable])
	assert.Empty(t, kinds[MissingSequence])

	e, ok := reg.Get("P5-2")
	require.True(t, ok)
	assert.Equal(t, category.Unclassified, e.Heavy)
	assert.Equal(t, category.Unclassified, e.Light)
	assert.False(t, e.HeavySeen || e.LightSeen)
}

func TestShardOfStable(t *testing.T) {
	assert.Equal(t, 0, ShardOf("anything", 1))
	assert.Equal(t, 0, ShardOf("anything", 0))
	a := ShardOf("P1-1", 8)
	assert.Equal(t, a, ShardOf("P1-1", 8))
	assert.True(t, a >= 0 && a < 8)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "qc_missing_sequence", MissingSequence.String())
	assert.Equal(t, "sequence_missing_qc", MissingQC.String())
	assert.Equal(t, "unparsable_sequence_name", Unparsable.String())
}
