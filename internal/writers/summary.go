// internal/writers/summary.go
package writers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"qctriage/internal/stats"
	"qctriage/pkg/api"
)

func init() {
	RegisterSummary("text", writeSummaryText)
	RegisterSummary("json", writeSummaryJSON)
	RegisterSummary("yaml", writeSummaryYAML)
}

// ToAPISummary converts a summary to its wire form. outputs lists the files
// the run wrote.
func ToAPISummary(s stats.Summary, outputs []string) api.SummaryV1 {
	return api.SummaryV1{
		Schema:         api.SummarySchema,
		RunID:          s.RunID,
		Vocabulary:     s.Vocabulary,
		QCRows:         s.QCRows,
		QCRowsParsed:   s.QCRowsParsed,
		Chains:         s.Chains,
		TotalSequences: s.TotalSequences,
		TotalPairs:     s.TotalPairs,
		Sequences:      toAPITiers(s.SequencesByTier),
		Pairs:          toAPITiers(s.PairsByTier),
		Anomalies: api.AnomaliesV1{
			QCMissingSequence: nonNil(s.Anomalies.QCMissingSequence),
			SequenceMissingQC: nonNil(s.Anomalies.SequenceMissingQC),
			UnparsableNames:   nonNil(s.Anomalies.UnparsableNames),
			UnparsableQC:      nonNil(s.Anomalies.UnparsableQC),
		},
		Outputs: outputs,
	}
}

func toAPITiers(ts []stats.Tier) []api.TierV1 {
	out := make([]api.TierV1, len(ts))
	for i, t := range ts {
		out[i] = api.TierV1{Category: int(t.Category), Count: t.Count, Percent: t.Percent}
	}
	return out
}

// nonNil keeps empty lists as [] in JSON.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func writeSummaryJSON(w io.Writer, s api.SummaryV1) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func writeSummaryYAML(w io.Writer, s api.SummaryV1) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

func writeSummaryText(w io.Writer, s api.SummaryV1) error {
	// tabwriter buffers until Flush, so write errors on w surface there.
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "vocabulary\t%s\n", s.Vocabulary)
	fmt.Fprintf(tw, "qc rows\t%d (%d parsed)\n", s.QCRows, s.QCRowsParsed)
	fmt.Fprintf(tw, "chains with QC\t%d\n", s.Chains)
	fmt.Fprintf(tw, "sequences\t%d\n", s.TotalSequences)
	fmt.Fprintf(tw, "pairs\t%d\n", s.TotalPairs)
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "category\tsequences\t%%\tpairs\t%%\n")
	for i, t := range s.Sequences {
		var p api.TierV1
		if i < len(s.Pairs) {
			p = s.Pairs[i]
		}
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%d\t%.2f\n", t.Category, t.Count, t.Percent, p.Count, p.Percent)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	var b strings.Builder
	listAnomaly(&b, "QC chains without sequence", s.Anomalies.QCMissingSequence)
	listAnomaly(&b, "sequences without QC", s.Anomalies.SequenceMissingQC)
	listAnomaly(&b, "unparsable sequence names", s.Anomalies.UnparsableNames)
	listAnomaly(&b, "unparsable QC names", s.Anomalies.UnparsableQC)
	if len(s.Outputs) > 0 {
		b.WriteString("\nwrote:\n")
		for _, o := range s.Outputs {
			b.WriteString("  " + o + "\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func listAnomaly(b *strings.Builder, title string, ids []string) {
	if len(ids) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s (%d):\n", title, len(ids))
	for _, id := range ids {
		b.WriteString("  " + id + "\n")
	}
}
