// internal/pairs/consistency.go
package pairs

import (
	"fmt"

	"qctriage/internal/chainid"
)

// Kind classifies an Inconsistency.
type Kind uint8

const (
	// MissingSequence: a pair side has no sequence record (QC missing sequence).
	MissingSequence Kind = iota + 1
	// MissingQC: a sequence record has no QC read for its chain.
	MissingQC
	// Unparsable: a sequence name carries no chain identifier.
	Unparsable
)

func (k Kind) String() string {
	switch k {
	case MissingSequence:
		return "qc_missing_sequence"
	case MissingQC:
		return "sequence_missing_qc"
	case Unparsable:
		return "unparsable_sequence_name"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Inconsistency is one anomaly found while cross-referencing.
type Inconsistency struct {
	Kind  Kind
	Base  string
	Full  string
	Chain chainid.Chain
	Name  string // raw sequence name, Unparsable only

	// QCSeen is set for MissingSequence when the side had QC reads, so the
	// demotion discarded a real classification.
	QCSeen bool
}

// SequenceIndex is the parsed view of the sequence record names.
type SequenceIndex struct {
	IDs    []chainid.ID // parsed names, input order
	Failed []string     // names that did not parse, input order
	full   map[string]struct{}
}

// IndexSequences parses every name with p.
func IndexSequences(p *chainid.Parser, names []string) *SequenceIndex {
	idx := &SequenceIndex{full: make(map[string]struct{}, len(names))}
	for _, n := range names {
		id, err := p.Parse(n)
		if err != nil {
			idx.Failed = append(idx.Failed, n)
			continue
		}
		idx.IDs = append(idx.IDs, id)
		idx.full[id.Full] = struct{}{}
	}
	return idx
}

// Has reports whether a sequence record with this full id exists.
func (x *SequenceIndex) Has(full string) bool {
	_, ok := x.full[full]
	return ok
}

// Check cross-references reg with the sequence index. It must run after all
// QC reads are in reg and before any pair is resolved.
//
// Pass 1 demotes every registry side whose full id has no sequence record.
// Pass 2 creates {7,7} entries for sequences whose base id has no QC data.
func Check(reg *Registry, p *chainid.Parser, idx *SequenceIndex) []Inconsistency {
	var out []Inconsistency

	for _, e := range reg.Entries() {
		for _, c := range [...]chainid.Chain{chainid.Heavy, chainid.Light} {
			full := p.FullID(e.Prefix, c, e.Number)
			if idx.Has(full) {
				continue
			}
			reg.Demote(e.Base, c)
			out = append(out, Inconsistency{
				Kind: MissingSequence, Base: e.Base, Full: full, Chain: c, QCSeen: e.Seen(c),
			})
		}
	}

	reported := make(map[string]struct{})
	for _, id := range idx.IDs {
		e, _ := reg.Ensure(id)
		if e.Seen(id.Chain) {
			continue
		}
		if _, dup := reported[id.Full]; dup {
			continue
		}
		reported[id.Full] = struct{}{}
		out = append(out, Inconsistency{Kind: MissingQC, Base: id.Base, Full: id.Full, Chain: id.Chain})
	}

	for _, n := range idx.Failed {
		out = append(out, Inconsistency{Kind: Unparsable, Name: n})
	}
	return out
}
