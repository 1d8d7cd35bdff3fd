// internal/pairs/reducer.go
package pairs

import (
	"sync"

	"qctriage/internal/category"
)

// Reduction describes the effect of one observation.
type Reduction struct {
	Best     category.Category // stored value after the observation
	Prev     category.Category // stored value before; 0 on first sighting
	First    bool
	Improved bool // First, or the observation lowered the stored value
}

// Reducer collapses repeated reads of one chain to the best tier.
type Reducer struct {
	stripes [nStripes]reducerStripe
}

type reducerStripe struct {
	mu sync.Mutex
	m  map[string]category.Category
}

func NewReducer() *Reducer {
	r := &Reducer{}
	for i := range r.stripes {
		r.stripes[i].m = make(map[string]category.Category)
	}
	return r
}

// Observe records one read of full with tier c. The stored value only ever
// goes down.
func (r *Reducer) Observe(full string, c category.Category) Reduction {
	s := &r.stripes[ShardOf(full, nStripes)]
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.m[full]
	if !ok {
		s.m[full] = c
		return Reduction{Best: c, First: true, Improved: true}
	}
	if c < prev {
		s.m[full] = c
		return Reduction{Best: c, Prev: prev, Improved: true}
	}
	return Reduction{Best: prev, Prev: prev}
}

// Len is the number of distinct full ids seen.
func (r *Reducer) Len() int {
	n := 0
	for i := range r.stripes {
		s := &r.stripes[i]
		s.mu.Lock()
		n += len(s.m)
		s.mu.Unlock()
	}
	return n
}
