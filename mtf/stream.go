// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package mtf

import "io"

// Writer is an io.Writer that move-to-front encodes every byte written to it
// before passing it on to the underlying io.Writer.
type Writer struct {
	wr  io.Writer
	mtf Coder
	buf []byte
}

// NewWriter creates a new Writer writing codes to w.
func NewWriter(w io.Writer) *Writer {
	mw := new(Writer)
	mw.Reset(w)
	return mw
}

// Write encodes buf and writes the codes to the underlying io.Writer.
// Since the table is updated as soon as a symbol is encoded, a short write
// leaves the stream out of sync; the caller should Reset after any error.
func (mw *Writer) Write(buf []byte) (int, error) {
	mw.buf = mw.buf[:0]
	for _, b := range buf {
		mw.buf = append(mw.buf, mw.mtf.EncodeByte(b))
	}
	return mw.wr.Write(mw.buf)
}

// Table returns a copy of the current move-to-front table.
func (mw *Writer) Table() [256]byte { return mw.mtf.Table() }

// Reset discards the Writer's state and makes it equivalent to the result
// of a call to NewWriter, but writing to w instead.
func (mw *Writer) Reset(w io.Writer) {
	mw.wr = w
	mw.mtf.Reset()
}

// Reader is an io.Reader that move-to-front decodes the codes read from the
// underlying io.Reader.
type Reader struct {
	rd  io.Reader
	mtf Coder
}

// NewReader creates a new Reader reading codes from r.
func NewReader(r io.Reader) *Reader {
	mr := new(Reader)
	mr.Reset(r)
	return mr
}

// Read reads codes into buf and decodes them in place.
func (mr *Reader) Read(buf []byte) (int, error) {
	n, err := mr.rd.Read(buf)
	for i, idx := range buf[:n] {
		buf[i] = mr.mtf.DecodeByte(idx)
	}
	return n, err
}

// Table returns a copy of the current move-to-front table.
func (mr *Reader) Table() [256]byte { return mr.mtf.Table() }

// Reset discards the Reader's state and makes it equivalent to the result
// of a call to NewReader, but reading from r instead.
func (mr *Reader) Reset(r io.Reader) {
	mr.rd = r
	mr.mtf.Reset()
}
