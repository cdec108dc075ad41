// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command bwmbench measures the block-sorting codec next to the general
// purpose compressors registered in internal/tool/bench.
//
// Example usage:
//	$ bwmbench -formats bwm,zstd -tests ratio -files digits.txt -sizes 1e4,64Ki
//
// Every table row is one (file, level, size) triple. The delta column is the
// ratio against the first codec listed for that format.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dsnet/golib/unitconv"
	"github.com/npillmayer/schuko/tracing"

	"github.com/dsnet/bwmtf/internal/tool/bench"
)

var testNames = []string{
	bench.TestEncodeRate:    "encRate",
	bench.TestDecodeRate:    "decRate",
	bench.TestCompressRatio: "ratio",
}

// refCodecs lists, by preference, the codec that pre-compresses the input
// of the decode rate test.
var refCodecs = []string{"std", "ds", "kp", "cgo"}

// tracer writes to trace with key 'bwmtf.bench'
func tracer() tracing.Trace {
	return tracing.Select("bwmtf.bench")
}

type options struct {
	formats []bench.Format
	tests   []int
	codecs  []string
	files   []string
	levels  []int
	sizes   []int
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err == flag.ErrHelp {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "bwmbench: %v\n", err)
		os.Exit(2)
	}
	start := time.Now()
	run(os.Stdout, opts)
	fmt.Printf("RUNTIME: %v\n", time.Since(start))
}

func parseOptions(args []string) (opts options, err error) {
	fs := flag.NewFlagSet("bwmbench", flag.ContinueOnError)
	formats := fs.String("formats", strings.Join(formatNames(), ","), "Formats to benchmark")
	tests := fs.String("tests", strings.Join(testNames, ","), "Benchmark tests to run")
	codecs := fs.String("codecs", strings.Join(codecNames(), ","), "Codecs to benchmark")
	paths := fs.String("paths", "testdata", "Directories searched for input files")
	files := fs.String("files", "", "Input files (default: every file in the first path)")
	levels := fs.String("levels", "1,6,9", "Compression levels")
	sizes := fs.String("sizes", "1e4,1e5", "Input sizes, SI or IEC prefixes allowed")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	for _, s := range splitList(*formats) {
		f, ok := bench.ParseFormat(s)
		if !ok {
			return opts, fmt.Errorf("invalid format: %q", s)
		}
		opts.formats = append(opts.formats, f)
	}
	for _, s := range splitList(*tests) {
		t := indexOf(testNames, s)
		if t < 0 {
			return opts, fmt.Errorf("invalid test: %q", s)
		}
		opts.tests = append(opts.tests, t)
	}
	if opts.levels, err = parseInts(*levels, 0); err != nil {
		return opts, fmt.Errorf("invalid level: %v", err)
	}
	if opts.sizes, err = parseInts(*sizes, 1); err != nil {
		return opts, fmt.Errorf("invalid size: %v", err)
	}
	opts.codecs = splitList(*codecs)
	bench.Paths = splitList(*paths)
	if opts.files = splitList(*files); len(opts.files) == 0 && len(bench.Paths) > 0 {
		opts.files = listFiles(bench.Paths[0])
	}
	return opts, nil
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ':' })
}

// parseInts parses a list of numbers that may carry a unit prefix,
// such as "1e4", "64k", or "1Mi".
func parseInts(s string, min int) ([]int, error) {
	var vs []int
	for _, f := range splitList(s) {
		v, err := unitconv.ParsePrefix(f, unitconv.AutoParse)
		if err != nil || v != math.Trunc(v) || v < float64(min) || v > math.MaxInt32 {
			return nil, fmt.Errorf("%q", f)
		}
		vs = append(vs, int(v))
	}
	return vs, nil
}

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}

func listFiles(dir string) []string {
	fis, err := ioutil.ReadDir(dir)
	if err != nil {
		tracer().Infof("no input files in %s: %v", dir, err)
		return nil
	}
	var names []string
	for _, fi := range fis {
		if fi.Mode().IsRegular() {
			names = append(names, fi.Name())
		}
	}
	return names
}

func formatNames() []string {
	seen := make(map[bench.Format]bool)
	for f := range bench.Encoders {
		seen[f] = true
	}
	for f := range bench.Decoders {
		seen[f] = true
	}
	var fs []int
	for f := range seen {
		fs = append(fs, int(f))
	}
	sort.Ints(fs)
	var names []string
	for _, f := range fs {
		names = append(names, bench.Format(f).String())
	}
	return names
}

// codecNames lists every registered codec, with the native codec first so
// that deltas are relative to it.
func codecNames() []string {
	seen := make(map[string]bool)
	for _, m := range bench.Encoders {
		for c := range m {
			seen[c] = true
		}
	}
	for _, m := range bench.Decoders {
		for c := range m {
			seen[c] = true
		}
	}
	var names []string
	for c := range seen {
		names = append(names, c)
	}
	sort.Slice(names, func(i, j int) bool {
		if (names[i] == "ds") != (names[j] == "ds") {
			return names[i] == "ds"
		}
		return names[i] < names[j]
	})
	return names
}

// available filters codecs down to those for which has reports true.
func available(codecs []string, has func(string) bool) []string {
	var cs []string
	for _, c := range codecs {
		if has(c) {
			cs = append(cs, c)
		}
	}
	return cs
}

func refEncoder(f bench.Format) bench.Encoder {
	for _, c := range refCodecs {
		if enc, ok := bench.Encoders[f][c]; ok {
			return enc
		}
	}
	for _, c := range codecNames() {
		if enc, ok := bench.Encoders[f][c]; ok {
			return enc
		}
	}
	return nil
}

func run(w io.Writer, opts options) {
	for _, f := range opts.formats {
		encs := available(opts.codecs, func(c string) bool { return bench.Encoders[f][c] != nil })
		decs := available(opts.codecs, func(c string) bool { return bench.Decoders[f][c] != nil })
		for _, t := range opts.tests {
			fmt.Fprintf(w, "BENCHMARK: %v:%s\n", f, testNames[t])
			codecs := encs
			if t == bench.TestDecodeRate {
				codecs = decs
			}
			if len(encs) == 0 || len(codecs) == 0 {
				fmt.Fprint(w, "\tSKIP: no codecs available\n\n")
				continue
			}

			var done int
			total := len(codecs) * len(opts.files) * len(opts.levels) * len(opts.sizes)
			tick := func() {
				fmt.Fprintf(os.Stderr, "\t[%6.2f%%] %d of %d\r", 100*float64(done)/float64(total), done, total)
				done++
			}

			var results [][]bench.Result
			var names []string
			unit, suffix := "MB/s", ""
			switch t {
			case bench.TestEncodeRate:
				results, names = bench.BenchmarkEncoderSuite(f, codecs, opts.files, opts.levels, opts.sizes, tick)
			case bench.TestDecodeRate:
				results, names = bench.BenchmarkDecoderSuite(f, codecs, opts.files, opts.levels, opts.sizes, refEncoder(f), tick)
			case bench.TestCompressRatio:
				unit, suffix = "ratio", "x"
				results, names = bench.BenchmarkRatioSuite(f, codecs, opts.files, opts.levels, opts.sizes, tick)
			}
			tracer().Debugf("%v:%s finished %d runs", f, testNames[t], done)
			printTable(w, results, names, codecs, unit, suffix)
			fmt.Fprintln(w)
		}
	}
}

// printTable writes one row per benchmark name with a value and delta
// column per codec. Non-finite or zero values are left blank.
func printTable(w io.Writer, results [][]bench.Result, names, codecs []string, unit, suffix string) {
	cell := func(v float64, suffix string) string {
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return ""
		}
		return fmt.Sprintf("%.2f%s", v, suffix)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\tbenchmark\t")
	for _, c := range codecs {
		fmt.Fprintf(tw, "%s %s\tdelta\t", c, unit)
	}
	fmt.Fprintln(tw)
	for i, row := range results {
		fmt.Fprintf(tw, "\t%s\t", names[i])
		for _, r := range row {
			fmt.Fprintf(tw, "%s\t%s\t", cell(r.R, suffix), cell(r.D, "x"))
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}
