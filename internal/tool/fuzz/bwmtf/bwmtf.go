// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

package bwmtf

import (
	"bytes"
	"io/ioutil"

	"github.com/dsnet/bwmtf"
)

func Fuzz(data []byte) int {
	ok := testDecoders(data)
	testPipeline(data)
	for _, conf := range []bwmtf.WriterConfig{
		{},
		{Checksum: true},
		{Entropy: true, Checksum: true},
	} {
		testStream(data, conf)
	}
	if ok {
		return 1 // Favor valid inputs
	}
	return 0
}

// testDecoders tests that arbitrary input is either decoded or rejected with
// an error from this module. A framed stream without a checksum and the
// bare container must then agree on the decoded data.
func testDecoders(data []byte) bool {
	zr, err := bwmtf.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		panic(err)
	}
	out, err := ioutil.ReadAll(zr)
	if err != nil {
		if _, ok := err.(bwmtf.Error); !ok {
			panic(err)
		}
	}
	// A stream with no flags wraps the bare container as is.
	if len(data) > 0 {
		framed := append([]byte("BWMF\x00"), data...)
		fb, ferr := ioutil.ReadAll(mustReader(framed))
		pb, perr := bwmtf.Decode(data)
		if perr != nil {
			if _, ok := perr.(bwmtf.Error); !ok {
				panic(perr)
			}
		}
		if (ferr == nil) != (perr == nil) {
			panic("framed and bare decoders disagree")
		}
		if ferr == nil && !bytes.Equal(fb, pb) {
			panic("mismatching bytes")
		}
	}
	return err == nil && len(out) > 0
}

func mustReader(data []byte) *bwmtf.Reader {
	zr, err := bwmtf.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		panic(err)
	}
	return zr
}

// testPipeline checks that the bare container round trips.
func testPipeline(data []byte) {
	if len(data) == 0 {
		return
	}
	enc, err := bwmtf.Encode(data)
	if err != nil {
		panic(err)
	}
	dec, err := bwmtf.Decode(enc)
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(dec, data) {
		panic("mismatching bytes")
	}
}

// testStream checks that the framed stream round trips with the given config.
func testStream(data []byte, conf bwmtf.WriterConfig) {
	bb := new(bytes.Buffer)
	zw, err := bwmtf.NewWriter(bb, &conf)
	if err != nil {
		panic(err)
	}
	n, err := zw.Write(data)
	if n != len(data) || err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}

	b, err := ioutil.ReadAll(mustReader(bb.Bytes()))
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(b, data) {
		panic("mismatching bytes")
	}
}
