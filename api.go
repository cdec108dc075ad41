// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bwmtf implements a block codec made of the Burrows-Wheeler
// Transform followed by move-to-front coding.
//
// Encode and Decode operate on the bare pipeline container:
//	[origin pointer: 4 bytes, big-endian][move-to-front codes: n bytes]
//
// Writer and Reader wrap the same pipeline in a self-describing stream with
// an optional Huffman stage and checksum. The whole input is a single block
// held in memory; there is no incremental compression.
package bwmtf

import "github.com/dsnet/bwmtf/internal/errors"

// The Error interface identifies all errors reported by this module.
// Any error value that does not satisfy it came from an underlying
// io.Reader or io.Writer.
type Error interface {
	error
	CompressError()

	// IsInvalid reports whether the API was misused, such as transforming an
	// empty block or passing an origin pointer outside the block.
	IsInvalid() bool

	// IsCorrupted reports whether the input stream was malformed or truncated.
	IsCorrupted() bool

	// IsClosed reports whether a closed Reader or Writer was used.
	IsClosed() bool
}

var _ Error = errors.Error{}

func errorf(c int, f string, a ...interface{}) error {
	return errors.New("bwmtf", c, f, a...)
}
