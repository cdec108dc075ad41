// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dsnet/bwmtf/internal/errors"
	"github.com/dsnet/bwmtf/internal/testutil"
)

func ss(s string) string {
	const limit = 256
	if len(s) > limit {
		return fmt.Sprintf("%q...", s[:limit])
	}
	return fmt.Sprintf("%q", s)
}

var vectors = []struct {
	input  string // The input test string
	output string // Expected output string after BWT
	ptr    int    // The BWT origin pointer
}{{
	input:  "A",
	output: "A",
	ptr:    0,
}, {
	input:  "ABRACADABRA!",
	output: "ARD!RCAAAABB",
	ptr:    3,
}, {
	input:  "Hello, world!",
	output: ",do!lHrellwo ",
	ptr:    3,
}, {
	input:  "SIX.MIXED.PIXIES.SIFT.SIXTY.PIXIE.DUST.BOXES",
	output: "TEXYDST.E.IXIXIXXSSMPPS.B..E.S.EUSFXDIIOIIIT",
	ptr:    29,
}, {
	input:  "0123456789",
	output: "9012345678",
	ptr:    0,
}, {
	input:  "9876543210",
	output: "1234567890",
	ptr:    9,
}, {
	input:  "The quick brown fox jumped over the lazy dog.",
	output: "kynxederg.l ie hhpv otTu c uwd rfm eb qjoooza",
	ptr:    9,
}, {
	input:  "banana",
	output: "nnbaaa",
	ptr:    3,
}, {
	input:  "CAAABBBCCCAAA",
	output: "CCAAAAABBACCB",
	ptr:    9,
}, {
	input:  "ABABAB",
	output: "BBBAAA",
	ptr:    0,
}, {
	input:  "AAAAAAAA",
	output: "AAAAAAAA",
	ptr:    0,
}, {
	input: "Mary had a little lamb, its fleece was white as snow" +
		"Mary had a little lamb, its fleece was white as snow" +
		"Mary had a little lamb, its fleece was white as snow" +
		"Mary had a little lamb, its fleece was white as snow" +
		"Mary had a little lamb, its fleece was white as snow" +
		"Mary had a little lamb, its fleece was white as snow" +
		"Mary had a little lamb, its fleece was white as snow" +
		"Mary had a little lamb, its fleece was white as snow" +
		"Nary had a little lamb, its fleece was white as snow",
	output: "dddddddddeeeeeeeeesssssssssyyyyyyyyy,,,,,,,,,eeeeeee" +
		"eeaaaaaaaaassssssssseeeeeeeeesssssssssbbbbbbbbbwwwww" +
		"wwww         hhhhhhhhhlllllllllNMMMMMMMM         www" +
		"wwwwwwmmmmmmmmmeeeeeeeeeaaaaaaaaatttttttttlllllllllc" +
		"cccccccceeeeeeeeelllllllll                  wwwwwwww" +
		"whhhhhhhhh         lllllllll         tttttttttffffff" +
		"fff         aaaaaaaaasssssssssnnnnnnnnnaaaaaaaaatttt" +
		"tttttaaaaaaaaaaaaaaaaaa         iiiiiiiiitttttttttii" +
		"iiiiiiiiiiiiiiiiooooooooo                  rrrrrrrrr",
	ptr: 99,
}, {
	input: "AGCTTTTCATTCTGACTGCAACGGGCAATATGTCTCTGTGTGGATTAAAAAAAGAGTCTCTGAC" +
		"AGCAGCTTCTGAACTGGTTACCTGCCGTGAGTAAATTAAAATTTTATTGACTTAGGTCACTAAA" +
		"TACTTTAACCAATATAGGCATAGCGCACAGACAGATAAAAATTACAGAGTACACAACATCCATG" +
		"AAACGCATTAGCACCACCATTACCACCACCATCACCACCACCATCACCATTACCATTACCACAG" +
		"GTAACGGTGCGGGCTGACGCGTACAGGAAACACAGAAAAAAGCCCGCACCTGACAGTGCGGGCT" +
		"TTTTTTTCGACCAAAGGTAACGAGGTAACAACCATGCGAGTGTTGAAGTTCGGCGGTACATCAG" +
		"TGGCAAATGCAGAACGTTTTCTGCGGGTTGCCGATATTCTGGAAAGCAATGCCAGGCAGGGGCA",
	output: "TAGAATAAATGGAGACTCTAATACTCTACTGGAAACAGACCACAAACATACCTGGTCGTAGATT" +
		"CCCCCCATCCCTAAGAAACGAGTCCCCACATCATCACCTCGACTGGGCCGAGACTAAGCCCCCA" +
		"ACTGAACCCCCTTACGAAGGCGGAAGCTCCGCCCTGTAGAAAAGACGAATGCCAACCCCCGTAA" +
		"AAAAAAGAATAAAAGGCGAATAGCGCAATAGGGGAGCAATTTTCGTACTTATAGAGGAGTGATT" +
		"ATTCTTTCTAACACGGTGGACACTAGGCTATTTATTTGCGAAGATTTGGAACGGGCCCACAAAC" +
		"ACTGAGGGACGGATCGATATAGATGCTATCGGTGGGTGGTTTTATAATAAATAAGATATTGGTC" +
		"TTTCACTCCCCTGCAATCAGGCCGGCAGCGAATAAAAGACTTTGCATAGAGCTTTTACTGTTTC",
	ptr: 99,
}}

func TestBurrowsWheelerTransform(t *testing.T) {
	for i, v := range vectors {
		first, last, err := Forward([]byte(v.input))
		if err != nil {
			t.Errorf("test %d, Forward() error: %v", i, err)
			continue
		}
		if string(last) != v.output {
			t.Errorf("test %d, output mismatch:\ngot  %v\nwant %v", i, ss(string(last)), ss(v.output))
		}
		if first != v.ptr {
			t.Errorf("test %d, pointer mismatch: got %d, want %d", i, first, v.ptr)
		}

		// The inverse is checked against the reference output, rather than
		// against the forward transform, so that both are validated.
		input, err := Inverse(v.ptr, []byte(v.output))
		if err != nil {
			t.Errorf("test %d, Inverse() error: %v", i, err)
			continue
		}
		if string(input) != v.input {
			t.Errorf("test %d, input mismatch:\ngot  %v\nwant %v", i, ss(string(input)), ss(v.input))
		}
	}
}

func TestTransform(t *testing.T) {
	bwt := new(Transform)
	if p := bwt.Encode(nil); p != -1 {
		t.Errorf("Encode(nil) = %d, want -1", p)
	}
	bwt.Decode(nil, 0)

	// Buffers are reused across calls of varying sizes.
	for i := 0; i < 2*len(vectors); i++ {
		v := vectors[(i+len(vectors)/2)%len(vectors)]
		b := []byte(v.input)
		p := bwt.Encode(b)
		output := string(b)
		bwt.Decode(b, p)
		input := string(b)

		if input != v.input {
			t.Errorf("test %d, input mismatch:\ngot  %v\nwant %v", i, ss(input), ss(v.input))
		}
		if output != v.output {
			t.Errorf("test %d, output mismatch:\ngot  %v\nwant %v", i, ss(output), ss(v.output))
		}
		if p != v.ptr {
			t.Errorf("test %d, pointer mismatch: got %d, want %d", i, p, v.ptr)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	r := testutil.NewRand(0)
	inputs := [][]byte{
		[]byte("ABABABABABABABABABABABABABABABABABABABAB"),
		[]byte("racecar"),
		[]byte("amanaplanacanalpanama"),
		[]byte(strings.Repeat("abcabd", 97)),
		testutil.Repeat([]byte{0}, 1<<12),
		testutil.Repeat([]byte{0xff, 0x00}, 1<<12),
		testutil.ResizeData([]byte("SIX.MIXED.PIXIES"), 1<<13),
	}
	for _, n := range []int{1, 2, 7, 33, 255, 1000, 1 << 14} {
		inputs = append(inputs, r.Bytes(n), r.Text(n, "AB", 0), r.Text(n, "ACGT", 0))
	}

	var bwt Transform
	for i, input := range inputs {
		first, last, err := Forward(input)
		if err != nil {
			t.Fatalf("test %d, Forward() error: %v", i, err)
		}
		if first < 0 || first >= len(input) {
			t.Errorf("test %d, pointer %d out of range [0, %d)", i, first, len(input))
		}
		output, err := Inverse(first, last)
		if err != nil {
			t.Fatalf("test %d, Inverse() error: %v", i, err)
		}
		if !bytes.Equal(output, input) {
			t.Errorf("test %d, round trip mismatch:\ngot  %v\nwant %v", i, ss(string(output)), ss(string(input)))
		}

		// The in-place form must agree with the allocating form.
		b := append([]byte(nil), input...)
		if p := bwt.Encode(b); p != first || !bytes.Equal(b, last) {
			t.Errorf("test %d, Transform.Encode disagrees with Forward", i)
		}
	}
}

func TestInvalid(t *testing.T) {
	if _, _, err := Forward(nil); !errors.IsInvalid(err) {
		t.Errorf("Forward(nil) = %v, want IsInvalid(err) == true", err)
	}

	var vectors = []struct {
		first int
		last  string
	}{
		{0, ""},
		{-1, "ARD!RCAAAABB"},
		{12, "ARD!RCAAAABB"},
		{1, "A"},
	}
	for i, v := range vectors {
		if _, err := Inverse(v.first, []byte(v.last)); !errors.IsInvalid(err) {
			t.Errorf("test %d, Inverse(%d, %q) = %v, want IsInvalid(err) == true", i, v.first, v.last, err)
		}
	}
}

func TestBlock(t *testing.T) {
	b, err := Encode([]byte("ABRACADABRA!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := b.MarshalBinary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := append([]byte{0x00, 0x00, 0x00, 0x03}, "ARD!RCAAAABB"...)
	if diff := cmp.Diff(want, data); diff != "" {
		t.Errorf("MarshalBinary mismatch (-want +got):\n%s", diff)
	}

	var got Block
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(b, got); diff != "" {
		t.Errorf("UnmarshalBinary mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if _, err := got.WriteTo(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rb, err := ReadBlock(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output, err := rb.Decode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(output) != "ABRACADABRA!" {
		t.Errorf("Decode mismatch: got %q, want %q", output, "ABRACADABRA!")
	}
}

func TestBlockCorrupt(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		var b Block
		data := make([]byte, n)
		if err := b.UnmarshalBinary(data); !errors.IsCorrupted(err) {
			t.Errorf("UnmarshalBinary(%d bytes) = %v, want IsCorrupted(err) == true", n, err)
		}
		if _, err := ReadBlock(bytes.NewReader(data)); !errors.IsCorrupted(err) {
			t.Errorf("ReadBlock(%d bytes) = %v, want IsCorrupted(err) == true", n, err)
		}
	}

	// A header with no last column parses, but cannot be inverted.
	b, err := ReadBlock(bytes.NewReader([]byte{0, 0, 0, 0}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.Decode(); !errors.IsInvalid(err) {
		t.Errorf("Decode() = %v, want IsInvalid(err) == true", err)
	}
	if _, err := (Block{First: 5, Last: []byte("abc")}).MarshalBinary(); !errors.IsInvalid(err) {
		t.Errorf("MarshalBinary() = %v, want IsInvalid(err) == true", err)
	}

	// Errors from the underlying reader pass through unchanged.
	errBuggy := fmt.Errorf("buggy reader")
	br := &testutil.BuggyReader{R: bytes.NewReader(make([]byte, 16)), N: 8, Err: errBuggy}
	if _, err := ReadBlock(br); err != errBuggy {
		t.Errorf("ReadBlock() = %v, want %v", err, errBuggy)
	}
	br = &testutil.BuggyReader{R: bytes.NewReader(make([]byte, 16)), N: 2, Err: io.ErrClosedPipe}
	if _, err := ReadBlock(br); err != io.ErrClosedPipe {
		t.Errorf("ReadBlock() = %v, want %v", err, io.ErrClosedPipe)
	}
}

func FuzzRoundTrip(f *testing.F) {
	for _, v := range vectors {
		f.Add([]byte(v.input))
	}
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) == 0 {
			return
		}
		first, last, err := Forward(input)
		if err != nil {
			t.Fatalf("Forward() error: %v", err)
		}
		output, err := Inverse(first, last)
		if err != nil {
			t.Fatalf("Inverse() error: %v", err)
		}
		if !bytes.Equal(output, input) {
			t.Fatalf("round trip mismatch:\ngot  %v\nwant %v", ss(string(output)), ss(string(input)))
		}
	})
}

func BenchmarkEncode(b *testing.B) {
	input := testutil.NewRand(0).Text(1<<16, "the quick brown fox", 0)
	buf := make([]byte, len(input))
	var bwt Transform

	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(buf, input)
		bwt.Encode(buf)
	}
}

func BenchmarkDecode(b *testing.B) {
	input := testutil.NewRand(0).Text(1<<16, "the quick brown fox", 0)
	last := append([]byte(nil), input...)
	var bwt Transform
	ptr := bwt.Encode(last)
	buf := make([]byte, len(last))

	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(buf, last)
		bwt.Decode(buf, ptr)
	}
}
