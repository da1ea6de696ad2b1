package main

import (
	"math/rand/v2"
)

// generateTrace builds n keys drawn from [0, keyspace).
//
// rand draws every key uniformly. freq draws even positions from the lower
// half of the keyspace only, so that half is hit twice as often. scan walks
// the keyspace in order and wraps, the worst case for an LRU smaller than
// the keyspace.
func generateTrace(dist string, n, keyspace int64, seed uint64) []int64 {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	trace := make([]int64, n)
	for i := range trace {
		switch dist {
		case distFreq:
			if i%2 == 0 {
				trace[i] = r.Int64N(max(keyspace/2, 1))
			} else {
				trace[i] = r.Int64N(keyspace)
			}
		case distScan:
			trace[i] = int64(i) % keyspace
		default:
			trace[i] = r.Int64N(keyspace)
		}
	}
	return trace
}
