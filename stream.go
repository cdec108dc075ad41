// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwmtf

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/npillmayer/schuko/tracing"

	"github.com/dsnet/bwmtf/internal"
	"github.com/dsnet/bwmtf/internal/entropy"
	"github.com/dsnet/bwmtf/internal/errors"
)

// The framed stream is laid out as:
//	[magic: 4 bytes][flags: 1 byte][body][checksum: 8 bytes, big-endian]
//
// The body is the pipeline container produced by Encode, passed through the
// entropy stage if flagEntropy is set. The checksum is the xxhash64 of the
// uncompressed data and is only present if flagChecksum is set.
// An empty input has an empty body.
const (
	magic        = "BWMF"
	headerSize   = len(magic) + 1
	checksumSize = 8

	flagEntropy  = 1 << 0
	flagChecksum = 1 << 1
	flagMask     = flagEntropy | flagChecksum
)

var (
	errClosed  = errorf(errors.Closed, "stream is closed")
	errCorrupt = errorf(errors.Corrupted, "stream is corrupted")
)

// maxBodySize is the largest pipeline container the entropy stage may
// expand to.
var maxBodySize uint64 = internal.HeaderSize + internal.MaxBlockSize

// tracer writes to trace with key 'bwmtf'
func tracer() tracing.Trace {
	return tracing.Select("bwmtf")
}

type WriterConfig struct {
	Entropy  bool // Entropy code the body with per-chunk Huffman tables
	Checksum bool // Append the xxhash64 of the uncompressed data

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// defaultWriterConfig is used when NewWriter is given a nil config.
var defaultWriterConfig = WriterConfig{Checksum: true}

// Writer buffers everything written to it and emits a single framed block
// on Close.
type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr   io.Writer
	conf WriterConfig
	err  error // Persistent error

	buf  []byte // Uncompressed data
	body []byte // Pipeline container, before the entropy stage
	out  []byte // Framed output
	pipe pipeline
	enc  entropy.Encoder
}

func NewWriter(w io.Writer, conf *WriterConfig) (*Writer, error) {
	zw := new(Writer)
	zw.conf = defaultWriterConfig
	if conf != nil {
		zw.conf = *conf
	}
	zw.Reset(w)
	return zw, nil
}

func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}
	zw.buf = append(zw.buf, buf...)
	zw.InputOffset += int64(len(buf))
	return len(buf), nil
}

// Close encodes the buffered data and writes the framed stream.
// It does not close the underlying io.Writer.
func (zw *Writer) Close() error {
	if zw.err == errClosed {
		return nil
	}
	if zw.err != nil {
		return zw.err
	}

	var flags byte
	if zw.conf.Entropy {
		flags |= flagEntropy
	}
	if zw.conf.Checksum {
		flags |= flagChecksum
	}
	zw.out = append(append(zw.out[:0], magic...), flags)

	if len(zw.buf) > 0 {
		var err error
		if zw.conf.Entropy {
			zw.body, err = zw.pipe.encode(zw.body[:0], zw.buf)
			if err == nil {
				zw.out, err = zw.enc.Encode(zw.out, zw.body)
			}
		} else {
			zw.out, err = zw.pipe.encode(zw.out, zw.buf)
		}
		if err != nil {
			zw.err = err
			return err
		}
	}
	if zw.conf.Checksum {
		var sum [checksumSize]byte
		binary.BigEndian.PutUint64(sum[:], xxhash.Sum64(zw.buf))
		zw.out = append(zw.out, sum[:]...)
	}
	tracer().Debugf("writing block of %d bytes as %d bytes (flags %#02x)",
		len(zw.buf), len(zw.out), flags)

	n, err := zw.wr.Write(zw.out)
	zw.OutputOffset += int64(n)
	if err != nil {
		zw.err = err
		return err
	}
	zw.err = errClosed
	return nil
}

// Reset discards the Writer's state and makes it equivalent to the result
// of NewWriter with the same config, but writing to w instead.
func (zw *Writer) Reset(w io.Writer) error {
	*zw = Writer{
		wr:   w,
		conf: zw.conf,
		buf:  zw.buf[:0],
		body: zw.body[:0],
		out:  zw.out[:0],
		pipe: zw.pipe,
		enc:  zw.enc,
	}
	return nil
}

type ReaderConfig struct {
	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Reader decodes a framed block. The whole stream is consumed from the
// underlying io.Reader by the first call to Read.
type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd     io.Reader
	toRead []byte // Uncompressed data ready to be emitted from Read
	done   bool   // The stream has been decoded
	err    error  // Persistent error

	buf  []byte
	body []byte
	pipe pipeline
	dec  entropy.Decoder
}

func NewReader(r io.Reader, conf *ReaderConfig) (*Reader, error) {
	zr := new(Reader)
	zr.Reset(r)
	return zr, nil
}

func (zr *Reader) Read(buf []byte) (int, error) {
	for {
		if len(zr.toRead) > 0 {
			cnt := copy(buf, zr.toRead)
			zr.toRead = zr.toRead[cnt:]
			zr.OutputOffset += int64(cnt)
			return cnt, nil
		}
		if zr.err != nil {
			return 0, zr.err
		}
		if zr.done {
			zr.err = io.EOF
			continue
		}
		zr.done = true
		zr.toRead, zr.err = zr.decode()
		if zr.err != nil {
			zr.toRead = nil
			tracer().Errorf("%v", zr.err)
		}
	}
}

// decode reads and decodes the entire stream.
func (zr *Reader) decode() ([]byte, error) {
	bb := bytes.NewBuffer(zr.buf[:0])
	_, err := bb.ReadFrom(zr.rd)
	zr.buf = bb.Bytes()
	zr.InputOffset += int64(len(zr.buf))
	if err != nil {
		return nil, err
	}

	flags, body, sum, err := parseFrame(zr.buf)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("reading block of %d bytes (flags %#02x)", len(zr.buf), flags)

	if flags&flagEntropy != 0 && len(body) > 0 {
		zr.dec.MaxSize = maxBodySize
		if zr.body, err = zr.dec.Decode(zr.body[:0], body); err != nil {
			return nil, err
		}
		body = zr.body
	}
	var out []byte
	if len(body) > 0 {
		if out, err = zr.pipe.decode(nil, body); err != nil {
			if errors.IsInvalid(err) {
				err = errorf(errors.Corrupted, "invalid block: %v", err)
			}
			return nil, err
		}
	}
	if flags&flagChecksum != 0 && xxhash.Sum64(out) != sum {
		return nil, errorf(errors.Corrupted, "checksum mismatch")
	}
	return out, nil
}

// parseFrame splits a framed stream into its flags, body, and checksum.
func parseFrame(buf []byte) (flags byte, body []byte, sum uint64, err error) {
	defer errors.Recover(&err)
	assert(len(buf) >= headerSize)
	assert(string(buf[:len(magic)]) == magic) // Magic must appear
	flags = buf[len(magic)]
	assert(flags&^flagMask == 0) // Reserved bits must be zero
	body = buf[headerSize:]
	if flags&flagChecksum != 0 {
		assert(len(body) >= checksumSize)
		sum = binary.BigEndian.Uint64(body[len(body)-checksumSize:])
		body = body[:len(body)-checksumSize]
	}
	return flags, body, sum, nil
}

// assert panics with errCorrupt if cond is false.
func assert(cond bool) {
	if !cond {
		errors.Panic(errCorrupt)
	}
}

// Close ends the stream. Subsequent calls to Read report a closed error.
func (zr *Reader) Close() error {
	if zr.err == nil || zr.err == io.EOF || zr.err == errClosed {
		zr.toRead = nil
		zr.err = errClosed
		return nil
	}
	return zr.err // Return the persistent error
}

// Reset discards the Reader's state and makes it equivalent to the result
// of NewReader, but reading from r instead.
func (zr *Reader) Reset(r io.Reader) error {
	*zr = Reader{
		rd:   r,
		buf:  zr.buf[:0],
		body: zr.body[:0],
		pipe: zr.pipe,
		dec:  zr.dec,
	}
	return nil
}
