// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bwt implements the Burrows-Wheeler Transform.
//
// The forward transform sorts all circular suffixes of a block and outputs
// the last column of the sorted rotation matrix together with the origin
// pointer, which is the rank of the rotation starting at offset 0.
//
// The inverse transform never needs the suffix order. Counting the symbols in
// the last column gives, for every symbol, the row at which it starts in the
// (never materialized) sorted first column. Scanning the last column from left
// to right then assigns rows to equal symbols in the order they appear, which
// is the same relative order the forward sort gave rotations sharing a leading
// symbol. That correspondence links every row to the row of its successor, and
// walking those links from the origin pointer rebuilds the block in O(n).
//
// References:
//	http://www.hpl.hp.com/techreports/Compaq-DEC/SRC-RR-124.pdf
//	https://www.quora.com/How-can-I-optimize-burrows-wheeler-transform-and-inverse-transform-to-work-in-O-n-time-O-n-space
package bwt

import (
	"fmt"

	"github.com/dsnet/bwmtf/internal"
	"github.com/dsnet/bwmtf/internal/errors"
	"github.com/dsnet/bwmtf/suffix"
)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "bwt", Msg: fmt.Sprintf(f, a...)}
}

// Forward applies the Burrows-Wheeler Transform to block.
// It returns the origin pointer and the last column; block is not modified.
func Forward(block []byte) (first int, last []byte, err error) {
	if uint64(len(block)) > internal.MaxBlockSize {
		return 0, nil, errorf(errors.Invalid, "block size %d exceeds %d", len(block), uint64(internal.MaxBlockSize))
	}
	sa, err := suffix.New(block)
	if err != nil {
		return 0, nil, err
	}

	n := sa.Len()
	last = make([]byte, n)
	for k := 0; k < n; k++ {
		o, err := sa.Index(k)
		if err != nil {
			return 0, nil, err
		}
		if o == 0 {
			first = k
			o = n
		}
		last[k] = block[o-1]
	}
	return first, last, nil
}

// Inverse reverts the Burrows-Wheeler Transform.
// It returns the original block; last is not modified.
func Inverse(first int, last []byte) ([]byte, error) {
	if len(last) == 0 {
		return nil, errorf(errors.Invalid, "inverse transform of empty block")
	}
	if first < 0 || first >= len(last) {
		return nil, errorf(errors.Invalid, "origin pointer %d out of range [0, %d)", first, len(last))
	}
	var bwt Transform
	next := bwt.link(last)
	block := make([]byte, len(last))
	row := first
	for i := range block {
		row = int(next[row])
		block[i] = last[row]
	}
	return block, nil
}

// Transform computes the Burrows-Wheeler Transform in place.
// The zero value is ready to use; the buffers it allocates are reused by
// subsequent calls. A Transform is not safe for concurrent use.
type Transform struct {
	sa   []int
	next []uint32
	buf  []byte
}

// Encode replaces buf with its last column and returns the origin pointer.
// It returns -1 if buf is empty.
func (bwt *Transform) Encode(buf []byte) (ptr int) {
	n := len(buf)
	if n == 0 {
		return -1
	}

	// Step 1: Sort the circular suffixes. The suffix sort only reads the input,
	// so a copy of it is kept aside while the output is written into buf.
	if cap(bwt.sa) < n {
		bwt.sa = make([]int, n)
	}
	sa := bwt.sa[:n]
	suffix.Compute(buf, sa)
	bwt.buf = append(bwt.buf[:0], buf...)
	t := bwt.buf

	// Step 2: The last column holds the symbol preceding each sorted rotation.
	for k, o := range sa {
		if o == 0 {
			ptr = k
			o = n
		}
		buf[k] = t[o-1]
	}
	return ptr
}

// Decode reverts Encode in place, given the origin pointer ptr.
// The caller must ensure that 0 <= ptr < len(buf).
func (bwt *Transform) Decode(buf []byte, ptr int) {
	if len(buf) == 0 {
		return
	}

	next := bwt.link(buf)
	bwt.buf = append(bwt.buf[:0], buf...)
	last := bwt.buf
	row := ptr
	for i := range buf {
		row = int(next[row])
		buf[i] = last[row]
	}
}

// link computes next, where next[d] is the position in last of the symbol
// that occupies row d of the sorted first column. Following next from the
// origin pointer visits the symbols of the original block in order.
func (bwt *Transform) link(last []byte) []uint32 {
	// Step 1: Count the occurrences of each symbol and convert them into
	// starting rows, where start[c] is the number of symbols less than c.
	var start [internal.NumSymbols]int
	for _, c := range last {
		start[c]++
	}
	var sum int
	for c, cnt := range start {
		start[c] = sum
		sum += cnt
	}

	// Step 2: Assign rows to equal symbols in order of appearance.
	if cap(bwt.next) < len(last) {
		bwt.next = make([]uint32, len(last))
	}
	next := bwt.next[:len(last)]
	for i, c := range last {
		next[start[c]] = uint32(i)
		start[c]++
	}
	return next
}
