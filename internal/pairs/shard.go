// internal/pairs/shard.go
package pairs

import (
	"hash/fnv"

	"github.com/maruel/natural"
)

const nStripes = 64

// ShardOf maps key to [0,n). n<1 is treated as 1.
func ShardOf(key string, n int) int {
	if n <= 1 {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(n))
}

// naturalLess orders ids the way people read them ("P2" before "P10") and
// falls back to byte order when natural order sees them as equal.
func naturalLess(a, b string) bool {
	if natural.Less(a, b) {
		return true
	}
	if natural.Less(b, a) {
		return false
	}
	return a < b
}
