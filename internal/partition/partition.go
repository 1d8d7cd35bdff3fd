// Package partition sorts sequence records into the seven category buckets.
package partition

import (
	"qctriage/internal/category"
	"qctriage/internal/chainid"
	"qctriage/internal/pairs"
)

// Record is one sequence record. The sequence is never inspected.
type Record struct {
	ID       string
	Sequence string
}

// Reason explains why a record landed in its bucket.
type Reason uint8

const (
	// Resolved: the record's base id had a resolved pair tier.
	Resolved Reason = iota
	// NoEntry: the base id parsed but has no registry entry.
	NoEntry
	// Unparsed: the record name carries no chain identifier.
	Unparsed
)

func (r Reason) String() string {
	switch r {
	case Resolved:
		return "resolved"
	case NoEntry:
		return "no_entry"
	case Unparsed:
		return "unparsable"
	}
	return "unknown"
}

// Assignment is the placement of one record.
type Assignment struct {
	Index    int // position in the input
	Record   Record
	Base     string
	Full     string
	Category category.Category
	Reason   Reason
}

// Buckets maps each tier to its records in input order.
type Buckets [len(category.All)][]Record

// Get returns the records of tier c.
func (b *Buckets) Get(c category.Category) []Record { return b[c.Index()] }

// Total is the number of records over all buckets.
func (b *Buckets) Total() int {
	n := 0
	for i := range b {
		n += len(b[i])
	}
	return n
}

// Counts returns the bucket sizes indexed by Category.Index.
func (b *Buckets) Counts() [len(category.All)]int {
	var out [len(category.All)]int
	for i := range b {
		out[i] = len(b[i])
	}
	return out
}

// Partition places every record in exactly one bucket. Records whose name
// does not parse, or whose base id is not in tbl, go to Unclassified.
func Partition(p *chainid.Parser, tbl pairs.Table, recs []Record) (Buckets, []Assignment) {
	var b Buckets
	asg := make([]Assignment, 0, len(recs))
	for i, r := range recs {
		a := Assignment{Index: i, Record: r, Category: category.Unclassified}
		id, err := p.Parse(r.ID)
		switch {
		case err != nil:
			a.Reason = Unparsed
		default:
			a.Base, a.Full = id.Base, id.Full
			if res, ok := tbl[id.Base]; ok {
				a.Category = res.Pair
				a.Reason = Resolved
			} else {
				a.Reason = NoEntry
			}
		}
		b[a.Category.Index()] = append(b[a.Category.Index()], r)
		asg = append(asg, a)
	}
	return b, asg
}
