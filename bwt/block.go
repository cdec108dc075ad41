// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"io"
	"io/ioutil"

	"github.com/dsnet/bwmtf/internal"
	"github.com/dsnet/bwmtf/internal/errors"
)

// Block is the output of the forward transform.
//
// Its binary form is the origin pointer as a 32-bit big-endian integer
// followed by the last column, one byte per symbol:
//	[First: 4 bytes][Last: n bytes]
type Block struct {
	First int    // Rank of the rotation starting at offset 0
	Last  []byte // Last column of the sorted rotation matrix
}

// Encode applies the forward transform to data and returns the Block.
func Encode(data []byte) (Block, error) {
	first, last, err := Forward(data)
	if err != nil {
		return Block{}, err
	}
	return Block{First: first, Last: last}, nil
}

// Decode applies the inverse transform to b.
func (b Block) Decode() ([]byte, error) {
	return Inverse(b.First, b.Last)
}

// MarshalBinary encodes b in the binary container format.
func (b Block) MarshalBinary() ([]byte, error) {
	if len(b.Last) == 0 {
		return nil, errorf(errors.Invalid, "empty last column")
	}
	if b.First < 0 || b.First >= len(b.Last) {
		return nil, errorf(errors.Invalid, "origin pointer %d out of range [0, %d)", b.First, len(b.Last))
	}
	data := make([]byte, internal.HeaderSize+len(b.Last))
	internal.PutHeader(data, b.First)
	copy(data[internal.HeaderSize:], b.Last)
	return data, nil
}

// UnmarshalBinary decodes the binary container format into b.
// The origin pointer is checked against the last column by Decode.
func (b *Block) UnmarshalBinary(data []byte) error {
	if len(data) < internal.HeaderSize {
		return errorf(errors.Corrupted, "container of %d bytes is shorter than its header", len(data))
	}
	b.First = internal.Header(data)
	b.Last = append(b.Last[:0], data[internal.HeaderSize:]...)
	return nil
}

// WriteTo writes b in the binary container format.
func (b Block) WriteTo(w io.Writer) (int64, error) {
	data, err := b.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadBlock reads a Block in the binary container format from r until io.EOF.
// A stream that ends inside the header is corrupted.
func ReadBlock(r io.Reader) (Block, error) {
	var hdr [internal.HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Block{}, errorf(errors.Corrupted, "truncated header")
		}
		return Block{}, err
	}
	last, err := ioutil.ReadAll(r)
	if err != nil {
		return Block{}, err
	}
	return Block{First: internal.Header(hdr[:]), Last: last}, nil
}
