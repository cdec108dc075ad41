// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package entropy implements the optional Huffman stage that follows
// move-to-front coding in the framed stream.
//
// The input is split into chunks of at most huff0.BlockSizeMax bytes. Each
// chunk is stored as:
//	[mode: 1 byte][raw length: uvarint][payload length: uvarint][payload]
//
// where mode selects how the payload is interpreted:
//	modeRaw:  payload is the chunk itself
//	modeRLE:  payload is the single byte the chunk repeats
//	modeHuff: payload is a huff0 1X stream, table included
package entropy

import (
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/huff0"

	"github.com/dsnet/bwmtf/internal/errors"
)

const (
	modeRaw = iota
	modeRLE
	modeHuff
)

// MaxChunkSize is the largest number of input bytes held by one chunk.
const MaxChunkSize = huff0.BlockSizeMax

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "entropy", Msg: fmt.Sprintf(f, a...)}
}

// Encoder compresses data with a huff0 table per chunk.
// The zero value is ready to use. An Encoder is not safe for concurrent use.
type Encoder struct {
	s huff0.Scratch
}

// Encode appends the entropy coded form of src to dst.
func (e *Encoder) Encode(dst, src []byte) ([]byte, error) {
	e.s.Reuse = huff0.ReusePolicyNone
	for len(src) > 0 {
		n := len(src)
		if n > MaxChunkSize {
			n = MaxChunkSize
		}
		chunk := src[:n]
		src = src[n:]

		out, _, err := huff0.Compress1X(chunk, &e.s)
		switch err {
		case nil:
			if len(out) < n {
				dst = appendChunk(dst, modeHuff, n, out)
				continue
			}
			dst = appendChunk(dst, modeRaw, n, chunk)
		case huff0.ErrUseRLE:
			dst = appendChunk(dst, modeRLE, n, chunk[:1])
		case huff0.ErrIncompressible:
			dst = appendChunk(dst, modeRaw, n, chunk)
		default:
			return dst, errorf(errors.Internal, "huff0: %v", err)
		}
	}
	return dst, nil
}

func appendChunk(dst []byte, mode byte, rawLen int, payload []byte) []byte {
	var buf [2*binary.MaxVarintLen64 + 1]byte
	buf[0] = mode
	n := 1
	n += binary.PutUvarint(buf[n:], uint64(rawLen))
	n += binary.PutUvarint(buf[n:], uint64(len(payload)))
	dst = append(dst, buf[:n]...)
	return append(dst, payload...)
}

// Decoder reverts Encoder. The zero value is ready to use.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	// MaxSize is the largest number of bytes Decode may produce.
	// Zero means no limit.
	MaxSize uint64

	s *huff0.Scratch
}

// Decode appends the data decoded from src to dst.
// Any structural violation of the chunk format is reported as corrupted.
func (d *Decoder) Decode(dst, src []byte) (out []byte, err error) {
	defer errors.Recover(&err)
	out = dst
	var total uint64
	for len(src) > 0 {
		mode := src[0]
		src = src[1:]
		rawLen := readLength(&src)
		payLen := readLength(&src)
		if rawLen == 0 || rawLen > MaxChunkSize {
			errors.Panic(errorf(errors.Corrupted, "invalid chunk size %d", rawLen))
		}
		if total += rawLen; d.MaxSize > 0 && total > d.MaxSize {
			errors.Panic(errorf(errors.Corrupted, "decoded size exceeds %d", d.MaxSize))
		}
		if payLen > uint64(len(src)) {
			errors.Panic(errorf(errors.Corrupted, "truncated chunk"))
		}
		payload := src[:payLen]
		src = src[payLen:]

		switch mode {
		case modeRaw:
			if payLen != rawLen {
				errors.Panic(errorf(errors.Corrupted, "raw chunk length mismatch"))
			}
			out = append(out, payload...)
		case modeRLE:
			if payLen != 1 {
				errors.Panic(errorf(errors.Corrupted, "rle chunk length mismatch"))
			}
			for i := uint64(0); i < rawLen; i++ {
				out = append(out, payload[0])
			}
		case modeHuff:
			out = append(out, d.decodeHuff(payload, int(rawLen))...)
		default:
			errors.Panic(errorf(errors.Corrupted, "unknown chunk mode %d", mode))
		}
	}
	return out, nil
}

func (d *Decoder) decodeHuff(payload []byte, rawLen int) []byte {
	s, remain, err := huff0.ReadTable(payload, d.s)
	if err != nil {
		errors.Panic(errorf(errors.Corrupted, "huff0 table: %v", err))
	}
	d.s = s
	buf, err := s.Decoder().Decompress1X(make([]byte, 0, rawLen), remain)
	if err != nil {
		errors.Panic(errorf(errors.Corrupted, "huff0 data: %v", err))
	}
	if len(buf) != rawLen {
		errors.Panic(errorf(errors.Corrupted, "huff0 chunk length mismatch"))
	}
	return buf
}

func readLength(src *[]byte) uint64 {
	v, n := binary.Uvarint(*src)
	if n <= 0 {
		errors.Panic(errorf(errors.Corrupted, "invalid chunk header"))
	}
	*src = (*src)[n:]
	return v
}
