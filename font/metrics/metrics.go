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

// Package metrics computes the font descriptor values of an embedded font.
//
// Font files give metrics in font design units, with a font-specific number
// of units per em.  PDF font descriptors use glyph space units, where 1000
// units equal one em.  See section 9.8 of ISO 32000-2:2020.
package metrics

import (
	"strings"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/os2"

	"seehuhn.de/go/cidfont/pdf"
)

// Raw holds font metrics in font design units.
type Raw struct {
	UnitsPerEm uint16

	BBox funit.Rect16

	// Ascent and Descent are the generic ascender and descender values.
	Ascent  funit.Int16
	Descent funit.Int16

	// TypoAscent and TypoDescent are only used if HasTypoMetrics is set.
	TypoAscent     funit.Int16
	TypoDescent    funit.Int16
	HasTypoMetrics bool

	// CapHeight is only used if HasCapHeight is set.
	CapHeight    funit.Int16
	HasCapHeight bool

	Weight      os2.Weight
	ItalicAngle float64 // degrees

	IsFixedPitch bool
	IsItalic     bool

	PostScriptName string
}

// Flags represents the PDF font descriptor flags used for embedded
// fonts.  The Bits method gives the integer stored in the /Flags entry.
type Flags struct {
	IsFixedPitch bool
	IsSerif      bool
	IsSymbolic   bool
	IsItalic     bool
	IsSmallCap   bool
}

// Possible values for PDF Font Descriptor Flags.
const (
	flagFixedPitch  = 1 << 0
	flagSerif       = 1 << 1
	flagSymbolic    = 1 << 2
	flagNonsymbolic = 1 << 5
	flagItalic      = 1 << 6
	flagSmallCap    = 1 << 17
)

// Bits returns the value of the /Flags entry in the font descriptor.
// Exactly one of the Symbolic and Nonsymbolic bits is set.
func (f Flags) Bits() uint32 {
	var bits uint32
	if f.IsFixedPitch {
		bits |= flagFixedPitch
	}
	if f.IsSerif {
		bits |= flagSerif
	}
	if f.IsSymbolic {
		bits |= flagSymbolic
	} else {
		bits |= flagNonsymbolic
	}
	if f.IsItalic {
		bits |= flagItalic
	}
	if f.IsSmallCap {
		bits |= flagSmallCap
	}
	return bits
}

// Descriptor holds the metrics which go into a PDF font descriptor.
// All lengths are in PDF glyph space units.
type Descriptor struct {
	Flags

	FontBBox    rect.Rect
	ItalicAngle float64
	Ascent      float64
	Descent     float64
	CapHeight   float64
	StemV       float64
}

// Derive converts raw font metrics into PDF font descriptor values.
//
// The serif flag is guessed from the PostScript name, which is a heuristic
// only.  The symbolic and small-cap flags are always set, since embedded
// fonts are addressed by glyph ID and not via a standard encoding.
func Derive(raw *Raw) *Descriptor {
	unitsPerEm := float64(raw.UnitsPerEm)
	if unitsPerEm == 0 {
		unitsPerEm = 1000
	}
	q := 1000 / unitsPerEm

	ascent := raw.Ascent
	descent := raw.Descent
	if raw.HasTypoMetrics {
		ascent = raw.TypoAscent
		descent = raw.TypoDescent
	}
	capHeight := raw.Ascent
	if raw.HasCapHeight {
		capHeight = raw.CapHeight
	}

	return &Descriptor{
		Flags: Flags{
			IsFixedPitch: raw.IsFixedPitch,
			IsSerif:      strings.Contains(raw.PostScriptName, "Serif"),
			IsSymbolic:   true,
			IsItalic:     raw.IsItalic,
			IsSmallCap:   true,
		},
		FontBBox: rect.Rect{
			LLx: raw.BBox.LLx.AsFloat(q),
			LLy: raw.BBox.LLy.AsFloat(q),
			URx: raw.BBox.URx.AsFloat(q),
			URy: raw.BBox.URy.AsFloat(q),
		},
		ItalicAngle: raw.ItalicAngle,
		Ascent:      ascent.AsFloat(q),
		Descent:     descent.AsFloat(q),
		CapHeight:   capHeight.AsFloat(q),
		StemV:       StemV(raw.Weight),
	}
}

// StemV estimates the dominant vertical stem width from the weight class
// of a font.
func StemV(weight os2.Weight) float64 {
	return 10 + 0.244*(float64(weight)-50)
}

// AsDict returns the font descriptor dictionary for a font with the given
// name.  The font file entry is not included.
func (d *Descriptor) AsDict(fontName string) pdf.Dict {
	return pdf.Dict{
		"Type":     pdf.Name("FontDescriptor"),
		"FontName": pdf.Name(fontName),
		"Flags":    pdf.Integer(d.Bits()),
		"FontBBox": &pdf.Rectangle{
			LLx: d.FontBBox.LLx,
			LLy: d.FontBBox.LLy,
			URx: d.FontBBox.URx,
			URy: d.FontBBox.URy,
		},
		"ItalicAngle": pdf.Number(d.ItalicAngle),
		"Ascent":      pdf.Number(d.Ascent),
		"Descent":     pdf.Number(d.Descent),
		"CapHeight":   pdf.Number(d.CapHeight),
		"StemV":       pdf.Number(d.StemV),
	}
}
