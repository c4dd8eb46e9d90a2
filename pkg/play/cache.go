package play

import (
	"sync"
	"sync/atomic"
)

const (
	// DefaultCacheSize is entries; a node holds two.
	DefaultCacheSize = 1 << 18
	cacheHit         = ^uint32(0)
)

// stateKey packs a State into ten words: eight for the four remaining hands
// and two for the trick in progress and counters. Two states with equal keys
// evaluate identically.
type stateKey [10]uint32

func keyOf(s State) stateKey {
	var k stateKey
	for i := 0; i < 4; i++ {
		h := s.Hands[i]
		k[i*2] = uint32(h[0]) | uint32(h[1])<<16
		k[i*2+1] = uint32(h[2]) | uint32(h[3])<<16
	}

	trick := uint32(0)
	for i := 0; i < s.played; i++ {
		c := s.Trick[i].Card
		trick |= (uint32(c.Suit)*13 + uint32(c.Rank)) << (6 * i)
	}
	k[8] = trick

	k[9] = uint32(s.Leader) |
		uint32(s.played)<<2 |
		uint32(s.Won[0])<<5 |
		uint32(s.Won[1])<<9 |
		uint32(s.Trump())<<13 |
		uint32(s.Contract.Declarer)<<16
	return k
}

type cacheEntry struct {
	key   stateKey
	value int32
}

type cacheNode struct {
	primary   cacheEntry
	secondary cacheEntry
}

// EvalCache is a thread-safe evaluation cache: two-way associative with
// MurmurHash3-style index mixing. Values are stored from the North-South
// view; Evaluate's antisymmetry recovers the other side. The counters are
// atomic: lookups share the read lock, so they may not write through it.
type EvalCache struct {
	entries  []cacheNode
	hashMask uint32

	lookups atomic.Uint64
	hits    atomic.Uint64
	adds    atomic.Uint64

	mu sync.RWMutex
}

// NewEvalCache creates a cache of about the given entry count, rounded up
// to a power of two.
func NewEvalCache(size uint32) *EvalCache {
	p := uint32(1)
	for p < size {
		p <<= 1
	}
	c := &EvalCache{
		entries:  make([]cacheNode, p/2),
		hashMask: (p / 2) - 1,
	}
	c.Flush()
	return c
}

// Flush clears all entries and statistics.
func (c *EvalCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// No legal state has all four hand words zero with a nonzero marker.
	invalid := stateKey{0, 0, 0, 0, 0, 0, 0, 0, ^uint32(0), ^uint32(0)}
	for i := range c.entries {
		c.entries[i].primary.key = invalid
		c.entries[i].secondary.key = invalid
	}
	c.lookups.Store(0)
	c.hits.Store(0)
	c.adds.Store(0)
}

// hash mixes the key MurmurHash3-style down to a node index.
func (c *EvalCache) hash(key stateKey) uint32 {
	const c1 = 0xcc9e2d51
	const c2 = 0x1b873593

	h := uint32(0)
	for _, k := range key {
		k *= c1
		k = (k << 15) | (k >> 17)
		k *= c2

		h ^= k
		h = (h << 13) | (h >> 19)
		h = h*5 + 0xe6546b64
	}

	h ^= 40
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16

	return h & c.hashMask
}

// Lookup returns the cached value and cacheHit on a hit; on a miss the
// returned slot feeds a later Add.
func (c *EvalCache) Lookup(key stateKey) (int32, uint32) {
	slot := c.hash(key)

	c.lookups.Add(1)

	c.mu.RLock()
	defer c.mu.RUnlock()

	node := &c.entries[slot]
	if node.primary.key == key {
		c.hits.Add(1)
		return node.primary.value, cacheHit
	}
	if node.secondary.key == key {
		c.hits.Add(1)
		return node.secondary.value, cacheHit
	}
	return 0, slot
}

// Add stores a value in the slot returned by a missing Lookup. The previous
// primary entry is demoted, the oldest dropped.
func (c *EvalCache) Add(key stateKey, value int32, slot uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &c.entries[slot]
	node.secondary = node.primary
	node.primary = cacheEntry{key: key, value: value}
	c.adds.Add(1)
}

// Stats returns lookup, hit, and add counts.
func (c *EvalCache) Stats() (lookups, hits, adds uint64) {
	return c.lookups.Load(), c.hits.Load(), c.adds.Load()
}

// HitRate returns the hit rate as a percentage.
func (c *EvalCache) HitRate() float64 {
	lookups := c.lookups.Load()
	if lookups == 0 {
		return 0
	}
	return float64(c.hits.Load()) / float64(lookups) * 100
}
