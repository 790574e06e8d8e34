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

// Package widths computes the glyph width information for CIDFont
// dictionaries.
//
// The widths of the glyphs used in a document are collected into a dense
// table indexed by glyph ID.  Consecutive glyphs with the same width are
// then combined into runs, which map directly onto the "c_first c_last w"
// form of the /W array described in section 9.7.4.3 of ISO 32000-2:2020.
package widths

import (
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/cidfont/font/glyphset"
	"seehuhn.de/go/cidfont/pdf"
)

// Run describes a range of consecutive glyphs which all have the same
// width.  Both First and Last are included in the range.
type Run struct {
	First glyph.ID
	Last  glyph.ID
	Width float64
}

// Table returns the widths of all glyphs in the set, indexed by glyph ID.
// The slice has length numGlyphs, and glyphs which are not in the set have
// width 0.  The function width must return widths in PDF glyph space units.
func Table(set glyphset.Set, width func(glyph.ID) float64, numGlyphs int) []float64 {
	ww := make([]float64, numGlyphs)
	for _, gid := range set.GIDs() {
		if int(gid) >= numGlyphs {
			continue
		}
		ww[gid] = width(gid)
	}
	return ww
}

// EncodeRuns splits the width table into maximal runs of equal width.
// Runs with width 0 are omitted, since 0 is the default width of the
// CIDFont.  The runs are returned in increasing order and do not overlap.
func EncodeRuns(ww []float64) []Run {
	var res []Run

	start := 0
	for i := 1; i <= len(ww); i++ {
		if i < len(ww) && ww[i] == ww[start] {
			continue
		}
		if w := ww[start]; w != 0 {
			res = append(res, Run{
				First: glyph.ID(start),
				Last:  glyph.ID(i - 1),
				Width: w,
			})
		}
		start = i
	}

	return res
}

// DecodeRuns expands a list of runs back into a width table of length n.
// Glyphs outside the runs get width 0, and runs extending past the end of
// the table are truncated.
func DecodeRuns(runs []Run, n int) []float64 {
	ww := make([]float64, n)
	for _, run := range runs {
		for i := int(run.First); i <= int(run.Last) && i < n; i++ {
			ww[i] = run.Width
		}
	}
	return ww
}

// Array returns the /W entry for a CIDFont dictionary.
// This assumes that glyph IDs are used as CID values.
func Array(runs []Run) pdf.Array {
	res := make(pdf.Array, 0, 3*len(runs))
	for _, run := range runs {
		res = append(res,
			pdf.Integer(run.First),
			pdf.Integer(run.Last),
			pdf.Number(run.Width))
	}
	return res
}
