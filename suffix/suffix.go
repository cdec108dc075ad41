// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package suffix implements a circular suffix array.
//
// A circular suffix (or rotation) of a block of n bytes is the cyclic shift
// of the block by some offset i, whose k-th symbol is block[(i+k) mod n].
// The circular suffix array lists the offsets of all n rotations in
// ascending lexicographical order. Rotations are never materialized; they are
// compared by walking the original block with modular indexing.
//
// Rotations that compare equal, which only happens when the block is
// periodic, are ordered by ascending offset.
package suffix

import (
	"fmt"
	"sort"

	"github.com/dsnet/bwmtf/internal/errors"
)

// Blocks at most this long are sorted directly with the cyclic comparator.
// Longer blocks use prefix doubling, which bounds the work per rotation even
// when most rotations share long common prefixes.
const insertionCutoff = 32

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "suffix", Msg: fmt.Sprintf(f, a...)}
}

// Array is the sorted order of all circular suffixes of a block.
type Array struct {
	sa []int
}

// New computes the circular suffix array of block.
// The block is only read and is not retained.
func New(block []byte) (*Array, error) {
	if len(block) == 0 {
		return nil, errorf(errors.Invalid, "empty block")
	}
	sa := make([]int, len(block))
	Compute(block, sa)
	return &Array{sa: sa}, nil
}

// Len reports the length of the block.
func (a *Array) Len() int { return len(a.sa) }

// Index reports the offset of the rotation ranked i-th in sorted order.
func (a *Array) Index(i int) (int, error) {
	if i < 0 || i >= len(a.sa) {
		return 0, errorf(errors.Invalid, "index %d out of range [0, %d)", i, len(a.sa))
	}
	return a.sa[i], nil
}

// Compute sorts the circular suffixes of block and places their offsets in sa.
// Both block and sa must be the same length.
func Compute(block []byte, sa []int) {
	if len(sa) != len(block) {
		panic("mismatching sizes")
	}
	for i := range sa {
		sa[i] = i
	}
	if len(block) <= insertionCutoff {
		sortInsertion(block, sa)
	} else {
		sortDoubling(block, sa)
	}
}

// compare compares the rotations starting at offsets a and b.
// At most n symbols are inspected since a rotation repeats after that.
func compare(block []byte, a, b int) int {
	n := len(block)
	if a == b {
		return 0
	}
	for k := 0; k < n; k++ {
		ca, cb := block[a], block[b]
		if ca != cb {
			if ca < cb {
				return -1
			}
			return +1
		}
		if a++; a == n {
			a = 0
		}
		if b++; b == n {
			b = 0
		}
	}
	return 0
}

// sortInsertion is a stable sort over the rotations in sa. Since sa starts
// in ascending offset order, equal rotations keep that order.
func sortInsertion(block []byte, sa []int) {
	for i := 1; i < len(sa); i++ {
		for j := i; j > 0 && compare(block, sa[j-1], sa[j]) > 0; j-- {
			sa[j-1], sa[j] = sa[j], sa[j-1]
		}
	}
}

// sortDoubling sorts the rotations by prefix doubling. After the round with
// step k, rank[i] orders the rotations at i by their first 2k symbols. The
// rotations at i and i+k together cover the first 2k symbols of rotation i,
// so each round only needs to sort pairs of ranks from the previous round.
// Once 2k >= n, ranks order complete rotations.
func sortDoubling(block []byte, sa []int) {
	n := len(block)
	rank := make([]int, n)
	next := make([]int, n)
	for i, c := range block {
		rank[i] = int(c)
	}

	for k := 1; ; k <<= 1 {
		second := func(i int) int {
			if i += k; i >= n {
				i %= n
			}
			return rank[i]
		}
		sort.Slice(sa, func(x, y int) bool {
			a, b := sa[x], sa[y]
			if rank[a] != rank[b] {
				return rank[a] < rank[b]
			}
			if ra, rb := second(a), second(b); ra != rb {
				return ra < rb
			}
			return a < b
		})

		next[sa[0]] = 0
		for i := 1; i < n; i++ {
			a, b := sa[i-1], sa[i]
			next[b] = next[a]
			if rank[a] != rank[b] || second(a) != second(b) {
				next[b]++
			}
		}
		rank, next = next, rank

		if rank[sa[n-1]] == n-1 || 2*k >= n {
			break
		}
	}
}
