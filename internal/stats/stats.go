// Package stats summarizes a triage run: how many sequences and pairs ended up
// in each tier, and what went wrong along the way.
package stats

import (
	"sort"

	"github.com/google/uuid"
	"github.com/maruel/natural"

	"qctriage/internal/category"
	"qctriage/internal/pairs"
	"qctriage/internal/partition"
)

// Tier is the count for one category.
type Tier struct {
	Category category.Category
	Count    int
	Percent  float64
}

// Anomalies lists the identifiers behind each inconsistency kind, in natural order.
type Anomalies struct {
	QCMissingSequence []string
	SequenceMissingQC []string
	UnparsableNames   []string
	UnparsableQC      []string
}

// Summary is the closing report of a run.
type Summary struct {
	RunID      string
	Vocabulary string

	QCRows          int
	QCRowsParsed    int
	Chains          int // distinct full ids with QC reads
	TotalSequences  int
	TotalPairs      int
	SequencesByTier []Tier
	PairsByTier     []Tier

	Anomalies Anomalies
}

// Percent returns 100*n/total, or 0 when total is 0.
func Percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

// Tiers turns seven counts into Tier rows.
func Tiers(counts [len(category.All)]int) ([]Tier, int) {
	total := 0
	for _, n := range counts {
		total += n
	}
	out := make([]Tier, len(category.All))
	for i, c := range category.All {
		out[i] = Tier{Category: c, Count: counts[i], Percent: Percent(counts[i], total)}
	}
	return out, total
}

// Input gathers what Build needs from the pipeline stages.
type Input struct {
	Vocabulary      string
	QCRows          int
	QCRowsParsed    int
	UnparsableQC    []string
	Chains          int
	Buckets         *partition.Buckets
	Resolutions     []pairs.Resolution
	Inconsistencies []pairs.Inconsistency
}

// Build computes the summary.
func Build(in Input) Summary {
	s := Summary{
		RunID:        uuid.NewString(),
		Vocabulary:   in.Vocabulary,
		QCRows:       in.QCRows,
		QCRowsParsed: in.QCRowsParsed,
		Chains:       in.Chains,
	}

	var seqCounts [len(category.All)]int
	if in.Buckets != nil {
		seqCounts = in.Buckets.Counts()
	}
	s.SequencesByTier, s.TotalSequences = Tiers(seqCounts)

	var pairCounts [len(category.All)]int
	for _, r := range in.Resolutions {
		pairCounts[r.Pair.Index()]++
	}
	s.PairsByTier, s.TotalPairs = Tiers(pairCounts)

	for _, inc := range in.Inconsistencies {
		switch inc.Kind {
		case pairs.MissingSequence:
			s.Anomalies.QCMissingSequence = append(s.Anomalies.QCMissingSequence, inc.Full)
		case pairs.MissingQC:
			s.Anomalies.SequenceMissingQC = append(s.Anomalies.SequenceMissingQC, inc.Full)
		case pairs.Unparsable:
			s.Anomalies.UnparsableNames = append(s.Anomalies.UnparsableNames, inc.Name)
		}
	}
	s.Anomalies.UnparsableQC = append([]string(nil), in.UnparsableQC...)

	for _, l := range [][]string{
		s.Anomalies.QCMissingSequence, s.Anomalies.SequenceMissingQC,
		s.Anomalies.UnparsableNames, s.Anomalies.UnparsableQC,
	} {
		sortNatural(l)
	}
	return s
}

func sortNatural(l []string) {
	sort.SliceStable(l, func(i, j int) bool { return natural.Less(l[i], l[j]) })
}
