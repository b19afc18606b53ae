// This file provides pooled scratch buffers for multiplication to reduce GC
// pressure on large operands.

package bigint

import (
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Word Slice Pools
// ─────────────────────────────────────────────────────────────────────────────

// wordSlicePools pools []uint64 scratch slices by size class.
// Size classes are powers of 4 from 64 to 1M words.
var wordSlicePools = [...]sync.Pool{
	{New: func() any { return make([]uint64, 64) }},
	{New: func() any { return make([]uint64, 256) }},
	{New: func() any { return make([]uint64, 1024) }},
	{New: func() any { return make([]uint64, 4096) }},
	{New: func() any { return make([]uint64, 16384) }},
	{New: func() any { return make([]uint64, 65536) }},
	{New: func() any { return make([]uint64, 262144) }},
	{New: func() any { return make([]uint64, 1048576) }}, // 1M words = 8MB
}

// wordSliceSizes defines the size classes for word slice pools.
var wordSliceSizes = [...]int{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576}

// poolIndex returns the pool index for a given size, or -1 if the size is
// too large for pooling.
//
// Index i holds slices of 4^(i+3) words, so bits.Len(size-1) maps directly
// to the index.
func poolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > wordSliceSizes[len(wordSliceSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// acquireWords returns a zeroed scratch slice of exactly size words.
// Slices from acquireWords must never end up inside an Int; release them
// with releaseWords once the computation is done:
//
//	s := acquireWords(n)
//	defer releaseWords(s)
func acquireWords(size int) []uint64 {
	idx := poolIndex(size)
	if idx < 0 {
		return make([]uint64, size)
	}
	s := wordSlicePools[idx].Get().([]uint64)
	clear(s)
	return s[:size]
}

// releaseWords returns a slice obtained from acquireWords to its pool.
// Safe to call with nil.
func releaseWords(s []uint64) {
	if s == nil {
		return
	}
	c := cap(s)
	idx := poolIndex(c)
	if idx >= 0 && wordSliceSizes[idx] == c {
		wordSlicePools[idx].Put(s[:c])
	}
}
