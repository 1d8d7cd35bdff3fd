// internal/pairs/resolve.go
package pairs

import (
	"qctriage/internal/category"
	"qctriage/internal/chainid"
)

// Resolution is the final tier of one pair.
type Resolution struct {
	Base  string
	Heavy category.Category
	Light category.Category
	Pair  category.Category
	// DeterminedBy is the side whose tier equals Pair; Heavy on ties.
	DeterminedBy chainid.Chain
	// Sides forced to 7 for lack of a sequence record.
	HeavyDemoted bool
	LightDemoted bool
}

// Resolve returns max(heavy, light).
func Resolve(e Entry) Resolution {
	r := Resolution{
		Base:         e.Base,
		Heavy:        e.Heavy,
		Light:        e.Light,
		Pair:         category.Max(e.Heavy, e.Light),
		HeavyDemoted: e.HeavyDemoted,
		LightDemoted: e.LightDemoted,
	}
	if e.Heavy != r.Pair {
		r.DeterminedBy = chainid.Light
	}
	return r
}

// ResolveAll resolves every entry of reg, in natural order of base id.
func ResolveAll(reg *Registry) []Resolution {
	entries := reg.Entries()
	out := make([]Resolution, len(entries))
	for i, e := range entries {
		out[i] = Resolve(e)
	}
	return out
}

// Table indexes resolutions by base id.
type Table map[string]Resolution

// NewTable builds a Table from rs.
func NewTable(rs []Resolution) Table {
	t := make(Table, len(rs))
	for _, r := range rs {
		t[r.Base] = r
	}
	return t
}

// Category returns the pair tier for base, Unclassified when unknown.
func (t Table) Category(base string) category.Category {
	if r, ok := t[base]; ok {
		return r.Pair
	}
	return category.Unclassified
}
