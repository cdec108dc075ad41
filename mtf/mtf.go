// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package mtf implements move-to-front coding over the byte alphabet.
//
// Each symbol is replaced by its current rank in a table that starts as the
// identity permutation. After every symbol, that symbol is moved to the front
// of the table and the symbols ahead of it shift back by one. Recently seen
// symbols thus get small ranks, so the runs of equal symbols produced by the
// Burrows-Wheeler Transform become runs of zeros.
//
// For example, with the table starting as the identity:
//	vals:  "ABRACADABRA!"
//	codes: []uint8{0x41, 0x42, 0x52, 0x02, 0x44, 0x01, 0x45, 0x01, 0x04, 0x04, 0x02, 0x26}
package mtf

import "github.com/dsnet/bwmtf/internal"

// Coder holds the move-to-front table for a single encode or decode run.
// The zero value is not ready to use; call NewCoder or Reset.
// A Coder is not safe for concurrent use.
type Coder struct {
	table [internal.NumSymbols]uint8
}

// NewCoder returns a Coder with the table set to the identity.
func NewCoder() *Coder {
	m := new(Coder)
	m.Reset()
	return m
}

// Reset sets the table back to the identity permutation.
func (m *Coder) Reset() {
	m.table = internal.IdentityLUT
}

// Table returns a copy of the current table.
func (m *Coder) Table() [internal.NumSymbols]byte {
	return m.table
}

// EncodeByte returns the rank of val and moves it to the front.
func (m *Coder) EncodeByte(val byte) uint8 {
	var idx int // Reverse lookup idx in table
	for i, v := range m.table {
		if v == val {
			idx = i
			break
		}
	}
	copy(m.table[1:], m.table[:idx])
	m.table[0] = val
	return uint8(idx)
}

// DecodeByte returns the symbol with rank idx and moves it to the front.
func (m *Coder) DecodeByte(idx uint8) byte {
	val := m.table[idx] // Forward lookup val in table
	copy(m.table[1:], m.table[:idx])
	m.table[0] = val
	return val
}

// Encode returns the ranks of vals.
// The table carries over from previous calls.
func (m *Coder) Encode(vals []byte) (idxs []uint8) {
	idxs = make([]uint8, len(vals))
	for i, val := range vals {
		idxs[i] = m.EncodeByte(val)
	}
	return idxs
}

// Decode returns the symbols for idxs.
// The table carries over from previous calls.
func (m *Coder) Decode(idxs []uint8) (vals []byte) {
	vals = make([]byte, len(idxs))
	for i, idx := range idxs {
		vals[i] = m.DecodeByte(idx)
	}
	return vals
}

// Encode returns the move-to-front codes of vals using a fresh table.
func Encode(vals []byte) []uint8 {
	return NewCoder().Encode(vals)
}

// Decode returns the symbols for the move-to-front codes idxs using a fresh
// table.
func Decode(idxs []uint8) []byte {
	return NewCoder().Decode(idxs)
}
