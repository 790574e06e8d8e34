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

package metrics

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/os2"

	"seehuhn.de/go/cidfont/pdf"
)

func TestDerive(t *testing.T) {
	raw := &Raw{
		UnitsPerEm:     2048,
		BBox:           funit.Rect16{LLx: -1024, LLy: -512, URx: 4096, URy: 2048},
		Ascent:         1900,
		Descent:        -500,
		TypoAscent:     1536,
		TypoDescent:    -512,
		HasTypoMetrics: true,
		CapHeight:      1434,
		HasCapHeight:   true,
		Weight:         os2.WeightBold,
		ItalicAngle:    -12,
		IsItalic:       true,
		PostScriptName: "NotoSerif-BoldItalic",
	}

	want := &Descriptor{
		Flags: Flags{
			IsSerif:    true,
			IsSymbolic: true,
			IsItalic:   true,
			IsSmallCap: true,
		},
		FontBBox:    rect.Rect{LLx: -500, LLy: -250, URx: 2000, URy: 1000},
		ItalicAngle: -12,
		Ascent:      750,
		Descent:     -250,
		CapHeight:   1434.0 / 2048 * 1000,
		StemV:       10 + 0.244*650,
	}

	got := Derive(raw)
	opt := cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < 1e-9 })
	if d := cmp.Diff(want, got, opt); d != "" {
		t.Error(d)
	}
}

func TestDeriveFallbacks(t *testing.T) {
	raw := &Raw{
		UnitsPerEm:     1000,
		Ascent:         800,
		Descent:        -200,
		TypoAscent:     1,
		TypoDescent:    1,
		CapHeight:      1,
		Weight:         os2.WeightNormal,
		IsFixedPitch:   true,
		PostScriptName: "GoMono-serif", // lower case does not count
	}
	d := Derive(raw)

	if d.Ascent != 800 || d.Descent != -200 {
		t.Errorf("ascent/descent: got %g/%g, want 800/-200", d.Ascent, d.Descent)
	}
	if d.CapHeight != 800 {
		t.Errorf("cap height should fall back to the ascender, got %g", d.CapHeight)
	}
	if d.IsSerif {
		t.Error("serif flag set for lower case name")
	}
	if !d.IsFixedPitch || !d.IsSymbolic || !d.IsSmallCap || d.IsItalic {
		t.Errorf("wrong flags %+v", d.Flags)
	}
	if math.Abs(d.StemV-(10+0.244*350)) > 1e-9 {
		t.Errorf("wrong StemV %g", d.StemV)
	}
}

func TestZeroUnitsPerEm(t *testing.T) {
	d := Derive(&Raw{Ascent: 700})
	if d.Ascent != 700 {
		t.Errorf("expected 1000 units per em, got ascent %g", d.Ascent)
	}
}

func TestBits(t *testing.T) {
	testCases := []struct {
		flags Flags
		bits  uint32
	}{
		{Flags{}, 1 << 5},
		{Flags{IsSymbolic: true}, 1 << 2},
		{Flags{IsSymbolic: true, IsSmallCap: true}, 1<<2 | 1<<17},
		{Flags{IsFixedPitch: true, IsSerif: true, IsSymbolic: true, IsItalic: true, IsSmallCap: true},
			1 | 1<<1 | 1<<2 | 1<<6 | 1<<17},
	}
	for _, test := range testCases {
		if got := test.flags.Bits(); got != test.bits {
			t.Errorf("%+v: got %b, want %b", test.flags, got, test.bits)
		}
	}
}

func TestAsDict(t *testing.T) {
	d := &Descriptor{
		Flags:       Flags{IsSymbolic: true, IsSmallCap: true},
		FontBBox:    rect.Rect{LLx: -10, LLy: -20, URx: 900, URy: 950},
		ItalicAngle: 0,
		Ascent:      800,
		Descent:     -200,
		CapHeight:   700,
		StemV:       80,
	}
	dict := d.AsDict("ABCDEF+Test")

	if dict["FontName"] != pdf.Name("ABCDEF+Test") {
		t.Errorf("wrong font name %v", dict["FontName"])
	}
	if dict["Flags"] != pdf.Integer(1<<2|1<<17) {
		t.Errorf("wrong flags %v", dict["Flags"])
	}
	if s := pdf.Format(dict["FontBBox"]); s != "[-10 -20 900 950]" {
		t.Errorf("wrong bbox %s", s)
	}
	for _, key := range []pdf.Name{"Type", "ItalicAngle", "Ascent", "Descent", "CapHeight", "StemV"} {
		if _, ok := dict[key]; !ok {
			t.Errorf("missing /%s", key)
		}
	}
}
