// internal/pairs/registry.go
package pairs

import (
	"sort"
	"sync"

	"qctriage/internal/category"
	"qctriage/internal/chainid"
)

// Entry is the state of one heavy/light pair.
type Entry struct {
	Base   string
	Prefix string
	Number string

	Heavy category.Category
	Light category.Category

	// HeavySeen/LightSeen record whether any QC read named that side.
	HeavySeen bool
	LightSeen bool

	// Demoted sides were forced to Unclassified because no sequence
	// record exists for them.
	HeavyDemoted bool
	LightDemoted bool
}

// Seen reports whether chain c was observed in QC data.
func (e Entry) Seen(c chainid.Chain) bool {
	if c == chainid.Light {
		return e.LightSeen
	}
	return e.HeavySeen
}

// Registry maps base ids to Entries. Sides start at Unclassified, are only
// lowered by Upsert and only raised by Demote.
type Registry struct {
	stripes [nStripes]registryStripe
}

type registryStripe struct {
	mu sync.Mutex
	m  map[string]*Entry
}

func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.stripes {
		r.stripes[i].m = make(map[string]*Entry)
	}
	return r
}

func (r *Registry) stripe(base string) *registryStripe {
	return &r.stripes[ShardOf(base, nStripes)]
}

// lookup returns the entry for id, creating it at {7,7} when absent.
// Caller holds s.mu.
func (s *registryStripe) lookup(id chainid.ID) (*Entry, bool) {
	if e, ok := s.m[id.Base]; ok {
		return e, false
	}
	e := &Entry{
		Base:   id.Base,
		Prefix: id.Prefix,
		Number: id.Number,
		Heavy:  category.Unclassified,
		Light:  category.Unclassified,
	}
	s.m[id.Base] = e
	return e, true
}

// Upsert records a QC classification of id's chain. The side becomes
// min(current, c) and is marked as seen. It returns the updated entry.
func (r *Registry) Upsert(id chainid.ID, c category.Category) Entry {
	s := r.stripe(id.Base)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lookup(id)
	switch id.Chain {
	case chainid.Light:
		e.Light = category.Min(e.Light, c)
		e.LightSeen = true
	default:
		e.Heavy = category.Min(e.Heavy, c)
		e.HeavySeen = true
	}
	return *e
}

// Ensure creates an entry for id without observing anything. It reports
// whether the entry was created.
func (r *Registry) Ensure(id chainid.ID) (Entry, bool) {
	s := r.stripe(id.Base)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, created := s.lookup(id)
	return *e, created
}

// Demote forces chain c of base to Unclassified. It reports false when base
// is unknown.
func (r *Registry) Demote(base string, c chainid.Chain) bool {
	s := r.stripe(base)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[base]
	if !ok {
		return false
	}
	if c == chainid.Light {
		e.Light = category.Unclassified
		e.LightDemoted = true
	} else {
		e.Heavy = category.Unclassified
		e.HeavyDemoted = true
	}
	return true
}

// Get returns a copy of the entry for base.
func (r *Registry) Get(base string) (Entry, bool) {
	s := r.stripe(base)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[base]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Len is the number of pairs.
func (r *Registry) Len() int {
	n := 0
	for i := range r.stripes {
		s := &r.stripes[i]
		s.mu.Lock()
		n += len(s.m)
		s.mu.Unlock()
	}
	return n
}

// Entries returns copies of all entries in natural order of base id.
func (r *Registry) Entries() []Entry {
	var out []Entry
	for i := range r.stripes {
		s := &r.stripes[i]
		s.mu.Lock()
		for _, e := range s.m {
			out = append(out, *e)
		}
		s.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return naturalLess(out[i].Base, out[j].Base) })
	return out
}
