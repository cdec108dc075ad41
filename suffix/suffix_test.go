// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package suffix

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dsnet/bwmtf/internal/errors"
	"github.com/dsnet/bwmtf/internal/testutil"
)

func TestArray(t *testing.T) {
	var vectors = []struct {
		input  string
		output []int
	}{{
		input:  "A",
		output: []int{0},
	}, {
		input:  "ABRACADABRA!",
		output: []int{11, 10, 7, 0, 3, 5, 8, 1, 4, 6, 9, 2},
	}, {
		input:  "banana",
		output: []int{5, 3, 1, 0, 4, 2},
	}, {
		input:  "0123456789",
		output: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	}, {
		input:  "9876543210",
		output: []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
	}, {
		input:  "ABABAB",
		output: []int{0, 2, 4, 1, 3, 5},
	}, {
		input:  "AAAAAAAA",
		output: []int{0, 1, 2, 3, 4, 5, 6, 7},
	}, {
		input:  strings.Repeat("AB", 40),
		output: append(evens(80), odds(80)...),
	}, {
		input:  strings.Repeat("Z", 100),
		output: seq(100),
	}}

	for i, v := range vectors {
		sa, err := New([]byte(v.input))
		if err != nil {
			t.Errorf("test %d, New() error: %v", i, err)
			continue
		}
		if sa.Len() != len(v.input) {
			t.Errorf("test %d, Len() = %d, want %d", i, sa.Len(), len(v.input))
		}
		var got []int
		for j := 0; j < sa.Len(); j++ {
			idx, err := sa.Index(j)
			if err != nil {
				t.Fatalf("test %d, Index(%d) error: %v", i, j, err)
			}
			got = append(got, idx)
		}
		if diff := cmp.Diff(v.output, got); diff != "" {
			t.Errorf("test %d, %q: order mismatch (-want +got):\n%s", i, v.input, diff)
		}
	}
}

func TestArrayInvalid(t *testing.T) {
	if _, err := New(nil); !errors.IsInvalid(err) {
		t.Errorf("New(nil) = %v, want IsInvalid(err) == true", err)
	}
	if _, err := New([]byte{}); !errors.IsInvalid(err) {
		t.Errorf("New([]byte{}) = %v, want IsInvalid(err) == true", err)
	}

	sa, err := New([]byte("ABRACADABRA!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, i := range []int{-1, 12, 1 << 20} {
		if _, err := sa.Index(i); !errors.IsInvalid(err) {
			t.Errorf("Index(%d) = %v, want IsInvalid(err) == true", i, err)
		}
	}
}

// TestArrayProperties checks that the order is a bijection on [0, n) and
// that adjacent rotations are in non-decreasing order.
func TestArrayProperties(t *testing.T) {
	r := testutil.NewRand(0)
	var inputs [][]byte
	for _, n := range []int{1, 2, 3, 31, 32, 33, 64, 100, 257, 1000, 4096} {
		inputs = append(inputs,
			r.Bytes(n),
			r.Text(n, "AB", 0),
			r.Text(n, "ACGT", 0),
			testutil.Repeat([]byte("ABC"), n),
			testutil.Repeat([]byte{0}, n),
		)
	}

	for i, input := range inputs {
		sa, err := New(input)
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		seen := make([]bool, len(input))
		prev := -1
		for j := 0; j < sa.Len(); j++ {
			idx, _ := sa.Index(j)
			if idx < 0 || idx >= len(input) || seen[idx] {
				t.Fatalf("test %d, Index(%d) = %d is not part of a bijection", i, j, idx)
			}
			seen[idx] = true
			if prev >= 0 {
				c := compare(input, prev, idx)
				if c > 0 || (c == 0 && prev > idx) {
					t.Fatalf("test %d, rotations %d and %d are out of order", i, prev, idx)
				}
			}
			prev = idx
		}
	}
}

// TestSortAgreement checks that both sorting strategies produce the same
// total order, including the tie-break on equal rotations.
func TestSortAgreement(t *testing.T) {
	r := testutil.NewRand(1)
	for i := 0; i < 200; i++ {
		n := 1 + r.Intn(300)
		var input []byte
		switch i % 4 {
		case 0:
			input = r.Bytes(n)
		case 1:
			input = r.Text(n, "AB", 0)
		case 2:
			input = testutil.Repeat(r.Text(1+r.Intn(5), "xyz", 0), n)
		case 3:
			input = r.Text(n, "the quick brown fox", 0)
		}

		want := seq(n)
		sortInsertion(input, want)
		got := seq(n)
		sortDoubling(input, got)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("test %d, %q: order mismatch (-insertion +doubling):\n%s", i, input, diff)
		}
	}
}

func TestCompare(t *testing.T) {
	var vectors = []struct {
		input string
		a, b  int
		want  int
	}{
		{"ABRACADABRA!", 0, 7, +1},   // "ABRACADABRA!" vs "ABRA!ABRACAD"
		{"ABRACADABRA!", 7, 0, -1},   // reverse of above
		{"ABRACADABRA!", 11, 10, -1}, // "!ABRACADABRA" vs "A!ABRACADABR"
		{"ABABAB", 0, 2, 0},
		{"ABABAB", 1, 0, +1},
		{"A", 0, 0, 0},
		{"BA", 0, 1, +1},
	}

	for i, v := range vectors {
		if got := compare([]byte(v.input), v.a, v.b); got != v.want {
			t.Errorf("test %d, compare(%q, %d, %d) = %d, want %d", i, v.input, v.a, v.b, got, v.want)
		}
	}
}

func BenchmarkCompute(b *testing.B) {
	input := testutil.NewRand(0).Text(1<<16, "ACGT", 0)
	sa := make([]int, len(input))
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Compute(input, sa)
	}
}

func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

func evens(n int) (s []int) {
	for i := 0; i < n; i += 2 {
		s = append(s, i)
	}
	return s
}

func odds(n int) (s []int) {
	for i := 1; i < n; i += 2 {
		s = append(s, i)
	}
	return s
}
