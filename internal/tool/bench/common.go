// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the performance of the block codec against other
// compression implementations with respect to encode speed, decode speed,
// and ratio.
//
// Implementations register themselves by format and codec name from files
// that can be excluded with build tags:
//	ds:  this module (no_ds_lib)
//	std: the standard library (no_std_lib)
//	kp:  github.com/klauspost/compress (no_kp_lib)
//	uk:  github.com/ulikunitz/xz (no_xz_lib)
//	pc:  github.com/pierrec/lz4 (no_lz4_lib)
//	cgo: github.com/valyala/gozstd (cgo_zstd)
package bench

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/dsnet/golib/unitconv"

	"github.com/dsnet/bwmtf/internal/testutil"
)

type Format int

const (
	FormatBWM Format = iota
	FormatFlate
	FormatXZ
	FormatZstd
	FormatS2
	FormatLZ4
)

var formatNames = map[Format]string{
	FormatBWM:   "bwm",
	FormatFlate: "fl",
	FormatXZ:    "xz",
	FormatZstd:  "zstd",
	FormatS2:    "s2",
	FormatLZ4:   "lz4",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat returns the Format with the given short name.
func ParseFormat(s string) (Format, bool) {
	for f, n := range formatNames {
		if n == s {
			return f, true
		}
	}
	return 0, false
}

const (
	TestEncodeRate = iota
	TestDecodeRate
	TestCompressRatio
)

type Encoder func(io.Writer, int) io.WriteCloser
type Decoder func(io.Reader) io.ReadCloser

var (
	Encoders map[Format]map[string]Encoder
	Decoders map[Format]map[string]Decoder

	// List of search paths for test files.
	Paths []string
)

func RegisterEncoder(format Format, name string, enc Encoder) {
	if Encoders == nil {
		Encoders = make(map[Format]map[string]Encoder)
	}
	if Encoders[format] == nil {
		Encoders[format] = make(map[string]Encoder)
	}
	Encoders[format][name] = enc
}

func RegisterDecoder(format Format, name string, dec Decoder) {
	if Decoders == nil {
		Decoders = make(map[Format]map[string]Decoder)
	}
	if Decoders[format] == nil {
		Decoders[format] = make(map[string]Decoder)
	}
	Decoders[format][name] = dec
}

// Compress encodes input with enc at the given level.
func Compress(enc Encoder, input []byte, lvl int) ([]byte, error) {
	buf := new(bytes.Buffer)
	wr := enc(buf, lvl)
	if _, err := io.Copy(wr, bytes.NewReader(input)); err != nil {
		wr.Close()
		return nil, err
	}
	if err := wr.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress decodes input with dec.
func Decompress(dec Decoder, input []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	rd := dec(bytes.NewReader(input))
	if _, err := io.Copy(buf, rd); err != nil {
		rd.Close()
		return nil, err
	}
	if err := rd.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BenchmarkEncoder benchmarks a single encoder on the given input data using
// the selected compression level and reports the result.
func BenchmarkEncoder(input []byte, enc Encoder, lvl int) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if enc == nil {
			b.Fatalf("unexpected error: nil Encoder")
		}
		runtime.GC()
		b.SetBytes(int64(len(input)))
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			wr := enc(ioutil.Discard, lvl)
			_, err := io.Copy(wr, bytes.NewReader(input))
			if err := wr.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
		}
	})
}

// BenchmarkDecoder benchmarks a single decoder on the given pre-compressed
// input data and reports the result.
func BenchmarkDecoder(input []byte, dec Decoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if dec == nil {
			b.Fatalf("unexpected error: nil Decoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			rd := dec(bufio.NewReader(bytes.NewReader(input)))
			cnt, err := io.Copy(ioutil.Discard, rd)
			if err := rd.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(cnt)
		}
	})
}

type Result struct {
	R float64 // Rate (MB/s) or ratio (rawSize/compSize)
	D float64 // Delta ratio relative to primary benchmark
}

// rate converts a benchmark result to MB/s.
func rate(result testing.BenchmarkResult) Result {
	if result.N == 0 {
		return Result{}
	}
	us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
	return Result{R: float64(result.Bytes) / us}
}

// The suites below run a benchmark across all codec implementations, files,
// levels, and sizes. The values returned have the following structure:
//	results: [len(files)*len(levels)*len(sizes)][len(codecs)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string

// BenchmarkEncoderSuite measures the encode rate of each encoder.
func BenchmarkEncoderSuite(format Format, encs, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(encs, files, levels, sizes, tick,
		func(input []byte, enc string, lvl int) Result {
			return rate(BenchmarkEncoder(input, Encoders[format][enc], lvl))
		})
}

// BenchmarkDecoderSuite measures the decode rate of each decoder. The input
// is pre-compressed with ref so that every decoder sees the same data.
func BenchmarkDecoderSuite(format Format, decs, files []string, levels, sizes []int, ref Encoder, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(decs, files, levels, sizes, tick,
		func(input []byte, dec string, lvl int) Result {
			output, err := Compress(ref, input, lvl)
			if err != nil {
				return Result{}
			}
			return rate(BenchmarkDecoder(output, Decoders[format][dec]))
		})
}

// BenchmarkRatioSuite measures the compression ratio of each encoder.
func BenchmarkRatioSuite(format Format, encs, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(encs, files, levels, sizes, tick,
		func(input []byte, enc string, lvl int) Result {
			output, err := Compress(Encoders[format][enc], input, lvl)
			if err != nil || len(output) == 0 {
				return Result{}
			}
			return Result{R: float64(len(input)) / float64(len(output))}
		})
}

type benchFunc func(input []byte, codec string, level int) Result

func benchmarkSuite(codecs, files []string, levels, sizes []int, tick func(), run benchFunc) ([][]Result, []string) {
	// Allocate buffers for the result.
	d0 := len(files) * len(levels) * len(sizes)
	d1 := len(codecs)
	results := make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, d1)
	}
	names := make([]string, d0)

	// Run the benchmark for every codec, file, level, and size.
	var i int
	for _, f := range files {
		for _, l := range levels {
			for _, n := range sizes {
				b, err := testutil.LoadFile(getPath(f), n)
				name := getName(f, l, len(b))
				for j, c := range codecs {
					if tick != nil {
						tick()
					}
					names[i] = name
					if err == nil {
						results[i][j] = run(b, c, l)
					}
					results[i][j].D = results[i][j].R / results[i][0].R
				}
				i++
			}
		}
	}
	return results, names
}

func getPath(file string) string {
	if path.IsAbs(file) {
		return file
	}
	for _, p := range Paths {
		p = path.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

var expRegex = regexp.MustCompile(`\.0*e\+0*`)

// getName formats a benchmark name as "file:level:size".
func getName(f string, l, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12:
		s := fmt.Sprintf("%e", float64(n))
		sn = expRegex.ReplaceAllString(s, "e")
	default:
		s := unitconv.FormatPrefix(float64(n), unitconv.IEC, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%d:%s", path.Base(f), l, sn)
}
