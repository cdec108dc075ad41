// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_kp_lib
// +build !no_kp_lib

package bench

import (
	"io"
	"io/ioutil"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

func init() {
	RegisterEncoder(FormatFlate, "kp",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := flate.NewWriter(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder(FormatFlate, "kp",
		func(r io.Reader) io.ReadCloser {
			return flate.NewReader(r)
		})

	RegisterEncoder(FormatZstd, "kp",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := zstd.NewWriter(w,
				zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(lvl)),
				zstd.WithEncoderConcurrency(1),
			)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder(FormatZstd, "kp",
		func(r io.Reader) io.ReadCloser {
			zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
			if err != nil {
				panic(err)
			}
			return zr.IOReadCloser()
		})

	RegisterEncoder(FormatS2, "kp",
		func(w io.Writer, lvl int) io.WriteCloser {
			var opts []s2.WriterOption
			switch {
			case lvl >= 9:
				opts = append(opts, s2.WriterBestCompression())
			case lvl >= 6:
				opts = append(opts, s2.WriterBetterCompression())
			}
			return s2.NewWriter(w, append(opts, s2.WriterConcurrency(1))...)
		})
	RegisterDecoder(FormatS2, "kp",
		func(r io.Reader) io.ReadCloser {
			return ioutil.NopCloser(s2.NewReader(r))
		})
}
