// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal is a collection of definitions shared by the codec stages.
//
// For performance reasons, the helpers here lack strong error checking and
// require that the caller ensure that strict invariants are kept.
package internal

import "encoding/binary"

const (
	// NumSymbols is the size of the alphabet; every symbol is one byte.
	NumSymbols = 256

	// HeaderSize is the size of the big-endian origin pointer that prefixes
	// both the BWT container and the pipeline container.
	HeaderSize = 4

	// MaxBlockSize is the largest block whose origin pointer fits the header.
	MaxBlockSize = 1<<32 - 1
)

// IdentityLUT returns the input key itself.
var IdentityLUT [NumSymbols]byte

func init() {
	for i := range IdentityLUT {
		IdentityLUT[i] = uint8(i)
	}
}

// PutHeader writes the origin pointer ptr into the first HeaderSize bytes
// of b.
func PutHeader(b []byte, ptr int) {
	binary.BigEndian.PutUint32(b[:HeaderSize], uint32(ptr))
}

// Header reads the origin pointer from the first HeaderSize bytes of b.
func Header(b []byte) int {
	return int(binary.BigEndian.Uint32(b[:HeaderSize]))
}
