// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build cgo && cgo_zstd
// +build cgo,cgo_zstd

package bench

import (
	"io"

	"github.com/valyala/gozstd"
)

// zstdWriter releases the C encoder once the stream is closed.
type zstdWriter struct{ *gozstd.Writer }

func (zw zstdWriter) Close() error {
	defer zw.Release()
	return zw.Writer.Close()
}

// zstdReader releases the C decoder on Close.
type zstdReader struct{ *gozstd.Reader }

func (zr zstdReader) Close() error {
	zr.Release()
	return nil
}

func init() {
	RegisterEncoder(FormatZstd, "cgo",
		func(w io.Writer, lvl int) io.WriteCloser {
			return zstdWriter{gozstd.NewWriterLevel(w, lvl)}
		})
	RegisterDecoder(FormatZstd, "cgo",
		func(r io.Reader) io.ReadCloser {
			return zstdReader{gozstd.NewReader(r)}
		})
}
