// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_ds_lib
// +build !no_ds_lib

package bench

import (
	"io"

	"github.com/dsnet/bwmtf"
)

// The block codec has no compression levels. Levels of 6 and above enable
// the entropy stage.
const entropyLevel = 6

func init() {
	RegisterEncoder(FormatBWM, "ds",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := bwmtf.NewWriter(w, &bwmtf.WriterConfig{
				Entropy:  lvl >= entropyLevel,
				Checksum: true,
			})
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder(FormatBWM, "ds",
		func(r io.Reader) io.ReadCloser {
			zr, err := bwmtf.NewReader(r, nil)
			if err != nil {
				panic(err)
			}
			return zr
		})
}
