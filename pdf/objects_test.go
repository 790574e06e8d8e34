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

package pdf

import (
	"io"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	testCases := []struct {
		in  Object
		out string
	}{
		{Integer(-7), "-7"},
		{Number(600), "600"},
		{Number(-12.5), "-12.5"},
		{Bool(true), "true"},
		{Name("Identity-H"), "/Identity-H"},
		{Name("A B#"), "/A#20B#23"},
		{Name("F(1)"), "/F#281#29"},
		{String("Adobe"), "(Adobe)"},
		{String("a(b"), `(a\(b)`},
		{String("a(b)"), "(a(b))"},
		{String{0, 5, 0, 9}, "<00050009>"},
		{Array{Integer(5), Integer(5), Number(600)}, "[5 5 600]"},
		{Array{nil, Name("x")}, "[null /x]"},
		{Dict{"Type": Name("Font"), "Skip": nil}, "<<\n/Type /Font\n>>"},
		{Dict{"B": Integer(2), "A": Integer(1)}, "<<\n/A 1\n/B 2\n>>"},
		{Reference(12), "12 0 R"},
		{&Rectangle{LLx: 0, LLy: 0, URx: 595, URy: 842}, "[0 0 595 842]"},
		{nil, "null"},
	}
	for _, test := range testCases {
		got := Format(test.in)
		if got != test.out {
			t.Errorf("Format(%#v) = %q, want %q", test.in, got, test.out)
		}
	}
}

func TestTextString(t *testing.T) {
	if got := TextString("Hello"); string(got) != "Hello" {
		t.Errorf("ASCII text string changed: %q", got)
	}

	got := TextString("Grüße")
	want := []byte{0xFE, 0xFF, 0, 'G', 0, 'r', 0, 0xFC, 0, 0xDF, 0, 'e'}
	if string(got) != string(want) {
		t.Errorf("TextString(\"Grüße\") = % x, want % x", got, want)
	}
}

func TestDate(t *testing.T) {
	loc := time.FixedZone("", 2*60*60)
	d := Date(time.Date(2026, 10, 16, 9, 30, 0, 0, loc))
	if string(d) != "D:20261016093000+02'00" {
		t.Errorf("wrong date string %q", d)
	}
}

func TestNumberInvalid(t *testing.T) {
	nan := Number(0)
	nan = nan / nan
	if err := nan.PDF(io.Discard); err == nil {
		t.Error("NaN was written without error")
	}
}
