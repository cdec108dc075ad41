// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command bwmtf encodes or decodes standard input to standard output.
//
// Example usage:
//	$ bwmtf - < input.txt > input.bwm    # Encode
//	$ bwmtf + < input.bwm > output.txt   # Decode
//
// By default the bare container is used:
//	[origin pointer: 4 bytes, big-endian][move-to-front codes]
//
// The -framed flag selects the self-describing stream instead, which also
// carries a checksum and accepts empty input. The -entropy flag enables the
// Huffman stage of the framed stream.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/npillmayer/schuko/tracing"

	"github.com/dsnet/bwmtf"
)

// tracer writes to trace with key 'bwmtf.cmd'
func tracer() tracing.Trace {
	return tracing.Select("bwmtf.cmd")
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] -|+\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\t-  encode standard input\n")
	fmt.Fprintf(os.Stderr, "\t+  decode standard input\n")
	flag.PrintDefaults()
}

func main() {
	framed := flag.Bool("framed", false, "Use the framed stream format")
	entropy := flag.Bool("entropy", false, "Entropy code the framed stream (implies -framed)")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	var err error
	bw := bufio.NewWriter(os.Stdout)
	switch mode := flag.Arg(0); {
	case mode == "-" && (*framed || *entropy):
		err = encodeFramed(bw, os.Stdin, *entropy)
	case mode == "-":
		err = encode(bw, os.Stdin)
	case mode == "+" && (*framed || *entropy):
		err = decodeFramed(bw, os.Stdin)
	case mode == "+":
		err = decode(bw, os.Stdin)
	default:
		usage()
		os.Exit(2)
	}
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		tracer().Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "bwmtf: %v\n", err)
		os.Exit(1)
	}
}

func encode(w io.Writer, r io.Reader) error {
	input, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	output, err := bwmtf.Encode(input)
	if err != nil {
		return err
	}
	tracer().Debugf("encoded %d bytes", len(input))
	_, err = w.Write(output)
	return err
}

func decode(w io.Writer, r io.Reader) error {
	input, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	output, err := bwmtf.Decode(input)
	if err != nil {
		return err
	}
	tracer().Debugf("decoded %d bytes", len(output))
	_, err = w.Write(output)
	return err
}

func encodeFramed(w io.Writer, r io.Reader, entropy bool) error {
	zw, err := bwmtf.NewWriter(w, &bwmtf.WriterConfig{Entropy: entropy, Checksum: true})
	if err != nil {
		return err
	}
	if _, err := io.Copy(zw, r); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	tracer().Debugf("encoded %d bytes as %d bytes", zw.InputOffset, zw.OutputOffset)
	return nil
}

func decodeFramed(w io.Writer, r io.Reader) error {
	zr, err := bwmtf.NewReader(r, nil)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, zr); err != nil {
		return err
	}
	if err := zr.Close(); err != nil {
		return err
	}
	tracer().Debugf("decoded %d bytes from %d bytes", zr.OutputOffset, zr.InputOffset)
	return nil
}
