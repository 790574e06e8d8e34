// seehuhn.de/go/cidfont - embed subset fonts into PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package widths

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/cidfont/font/glyphset"
	"seehuhn.de/go/cidfont/pdf"
)

func TestEncodeRuns(t *testing.T) {
	testCases := []struct {
		in  []float64
		out []Run
	}{
		{nil, nil},
		{[]float64{0, 0, 0}, nil},
		{[]float64{500}, []Run{{0, 0, 500}}},
		{[]float64{0, 500, 500, 500}, []Run{{1, 3, 500}}},
		{
			[]float64{0, 0, 0, 0, 0, 600, 0, 0, 0, 0},
			[]Run{{5, 5, 600}},
		},
		{
			[]float64{100, 200, 200, 0, 300},
			[]Run{{0, 0, 100}, {1, 2, 200}, {4, 4, 300}},
		},
		{
			[]float64{0, 250, 250, 0, 250, 250},
			[]Run{{1, 2, 250}, {4, 5, 250}},
		},
	}
	for i, test := range testCases {
		got := EncodeRuns(test.in)
		if d := cmp.Diff(test.out, got); d != "" {
			t.Errorf("%d: %s", i, d)
		}
	}
}

func TestTwoLetters(t *testing.T) {
	lookup := func(r rune) (glyph.ID, bool) {
		switch r {
		case 'A':
			return 5, true
		case 'B':
			return 9, true
		}
		return 0, false
	}
	advance := map[glyph.ID]float64{5: 600, 9: 0}

	set := glyphset.New("AB", lookup)
	ww := Table(set, func(gid glyph.ID) float64 { return advance[gid] }, 12)
	runs := EncodeRuns(ww)

	want := []Run{{First: 5, Last: 5, Width: 600}}
	if d := cmp.Diff(want, runs); d != "" {
		t.Error(d)
	}
}

func TestTable(t *testing.T) {
	set := glyphset.Set{1: "a", 3: "b", 20: "c"}
	ww := Table(set, func(gid glyph.ID) float64 { return float64(gid) * 10 }, 5)
	want := []float64{0, 10, 0, 30, 0}
	if d := cmp.Diff(want, ww); d != "" {
		t.Error(d)
	}
}

func TestRunsDisjoint(t *testing.T) {
	ww := []float64{1, 1, 2, 2, 2, 0, 3, 1, 1}
	runs := EncodeRuns(ww)
	for i, run := range runs {
		if run.Last < run.First {
			t.Errorf("run %d is empty: %v", i, run)
		}
		if run.Width == 0 {
			t.Errorf("run %d has zero width", i)
		}
		if i > 0 && runs[i-1].Last >= run.First {
			t.Errorf("runs %d and %d overlap", i-1, i)
		}
	}
}

func TestArray(t *testing.T) {
	runs := []Run{{1, 2, 250}, {7, 7, 612.5}}
	got := pdf.Format(Array(runs))
	want := "[1 2 250 7 7 612.5]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0, 0, 5, 5, 5, 0, 1})
	f.Add([]byte{255, 255, 0, 255})
	f.Fuzz(func(t *testing.T, data []byte) {
		ww := make([]float64, len(data))
		for i, b := range data {
			ww[i] = float64(b % 4 * 250)
		}

		runs := EncodeRuns(ww)
		for i := 1; i < len(runs); i++ {
			if runs[i-1].Last >= runs[i].First {
				t.Fatalf("overlapping runs %v and %v", runs[i-1], runs[i])
			}
			if runs[i-1].Last+1 == runs[i].First && runs[i-1].Width == runs[i].Width {
				t.Fatalf("runs %v and %v are not maximal", runs[i-1], runs[i])
			}
		}

		got := DecodeRuns(runs, len(ww))
		if d := cmp.Diff(ww, got); d != "" {
			t.Fatal(d)
		}
	})
}
