// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwmtf

import (
	"github.com/dsnet/bwmtf/bwt"
	"github.com/dsnet/bwmtf/internal"
	"github.com/dsnet/bwmtf/internal/errors"
	"github.com/dsnet/bwmtf/mtf"
)

// Encode applies the Burrows-Wheeler Transform to data and move-to-front
// codes the last column. Data must not be empty.
func Encode(data []byte) ([]byte, error) {
	var p pipeline
	return p.encode(nil, data)
}

// Decode reverts Encode. A container shorter than its header is corrupted;
// a header with no codes, or an origin pointer past the end of the codes,
// is invalid.
func Decode(data []byte) ([]byte, error) {
	var p pipeline
	return p.decode(nil, data)
}

// pipeline holds the reusable state of both stages.
type pipeline struct {
	bwt bwt.Transform
	mtf mtf.Coder
}

// encode appends the pipeline container for data to dst.
func (p *pipeline) encode(dst, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return dst, errorf(errors.Invalid, "empty block")
	}
	if uint64(len(data)) > internal.MaxBlockSize {
		return dst, errorf(errors.Invalid, "block size %d exceeds %d", len(data), uint64(internal.MaxBlockSize))
	}

	hdr := len(dst)
	dst = append(dst, make([]byte, internal.HeaderSize)...)
	dst = append(dst, data...)
	buf := dst[hdr+internal.HeaderSize:]

	ptr := p.bwt.Encode(buf)
	internal.PutHeader(dst[hdr:], ptr)
	p.mtf.Reset()
	for i, c := range buf {
		buf[i] = p.mtf.EncodeByte(c)
	}
	return dst, nil
}

// decode appends the block decoded from the pipeline container data to dst.
func (p *pipeline) decode(dst, data []byte) ([]byte, error) {
	if len(data) < internal.HeaderSize {
		return dst, errorf(errors.Corrupted, "container of %d bytes is shorter than its header", len(data))
	}
	ptr := internal.Header(data)
	codes := data[internal.HeaderSize:]
	if len(codes) == 0 {
		return dst, errorf(errors.Invalid, "empty block")
	}
	if ptr < 0 || ptr >= len(codes) {
		return dst, errorf(errors.Invalid, "origin pointer %d out of range [0, %d)", ptr, len(codes))
	}

	n := len(dst)
	dst = append(dst, codes...)
	buf := dst[n:]
	p.mtf.Reset()
	for i, idx := range buf {
		buf[i] = p.mtf.DecodeByte(idx)
	}
	p.bwt.Decode(buf, ptr)
	return dst, nil
}
