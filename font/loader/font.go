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

package loader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/header"
	"seehuhn.de/go/sfnt/os2"
)

// Font gives access to the information in a font file which is needed to
// embed the font into a PDF file.  All lengths are in font design units.
type Font interface {
	// GlyphIndex returns the glyph for the given character.
	// If the font has no glyph for r, the second return value is false.
	GlyphIndex(r rune) (glyph.ID, bool)

	// GlyphAdvance returns the advance width of a glyph.
	GlyphAdvance(gid glyph.ID) funit.Int16

	UnitsPerEm() uint16
	Ascender() funit.Int16
	Descender() funit.Int16
	CapHeight() (funit.Int16, bool)
	TypographicAscender() (funit.Int16, bool)
	TypographicDescender() (funit.Int16, bool)
	BBox() funit.Rect16
	WeightClass() os2.Weight
	IsItalic() bool
	IsMonospaced() bool
	ItalicAngle() float64
	PostScriptName() string
	NumGlyphs() int

	// Data returns the font file and the index of the font inside the file.
	Data() ([]byte, int)
}

// ParseError is returned when a font file cannot be decoded.
type ParseError struct {
	Name string
	Err  error
}

func (err *ParseError) Error() string {
	if err.Name == "" {
		return "cannot parse font: " + err.Err.Error()
	}
	return fmt.Sprintf("cannot parse font %q: %v", err.Name, err.Err)
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

var errCollection = errors.New("fonts inside font collections are not supported")

// Open decodes a TrueType or OpenType font file.
// The index selects a font inside a font collection.  Currently only
// index 0 of a stand-alone font file is supported.
func Open(data []byte, index int) (Font, error) {
	if index != 0 {
		return nil, &ParseError{Err: errCollection}
	}
	r := bytes.NewReader(data)
	info, err := sfnt.Read(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	lookup, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, &ParseError{Name: info.PostScriptName(), Err: err}
	}

	f := &sfntFont{
		info:   info,
		cmap:   lookup,
		data:   data,
		numGID: info.NumGlyphs(),
	}

	// sfnt prefers the OS/2 values for Ascent and Descent.  The generic
	// metrics are taken from hhea directly, and the OS/2 table is optional.
	f.ascent, f.descent = info.Ascent, info.Descent
	hdr, err := header.Read(r)
	if err == nil {
		hheaData, err := hdr.ReadTableBytes(r, "hhea")
		if err == nil {
			if asc, desc, ok := hheaMetrics(hheaData); ok {
				f.ascent, f.descent = asc, desc
			}
		}
		os2Data, err := hdr.ReadTableBytes(r, "OS/2")
		if err == nil {
			f.os2, _ = os2.Read(bytes.NewReader(os2Data))
		}
	}

	return f, nil
}

// OpenFile reads and decodes a font file.
func OpenFile(fname string, index int) (Font, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	f, err := Open(data, index)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) && parseErr.Name == "" {
			parseErr.Name = fname
		}
		return nil, err
	}
	return f, nil
}

// hheaMetrics extracts the ascender and descender from the body of an
// hhea table.
func hheaMetrics(data []byte) (ascent, descent funit.Int16, ok bool) {
	if len(data) < 8 || binary.BigEndian.Uint16(data) != 1 {
		return 0, 0, false
	}
	ascent = funit.Int16(binary.BigEndian.Uint16(data[4:]))
	descent = funit.Int16(binary.BigEndian.Uint16(data[6:]))
	return ascent, descent, true
}

type sfntFont struct {
	info    *sfnt.Font
	os2     *os2.Info
	cmap    cmap.Subtable
	data    []byte
	numGID  int
	ascent  funit.Int16
	descent funit.Int16
}

func (f *sfntFont) GlyphIndex(r rune) (glyph.ID, bool) {
	gid := f.cmap.Lookup(r)
	if gid == 0 || int(gid) >= f.numGID {
		return 0, false
	}
	return gid, true
}

func (f *sfntFont) GlyphAdvance(gid glyph.ID) funit.Int16 {
	if int(gid) >= f.numGID {
		return 0
	}
	return funit.Int16(math.Round(f.info.GlyphWidth(gid)))
}

func (f *sfntFont) UnitsPerEm() uint16 {
	return f.info.UnitsPerEm
}

// Ascender returns the ascender from the hhea table.
func (f *sfntFont) Ascender() funit.Int16 {
	return f.ascent
}

// Descender returns the descender from the hhea table.
func (f *sfntFont) Descender() funit.Int16 {
	return f.descent
}

// CapHeight reports the cap height from the OS/2 table.  Versions of the
// table before 2 do not contain this field, and then 0 is read.
func (f *sfntFont) CapHeight() (funit.Int16, bool) {
	if f.os2 == nil || f.os2.CapHeight == 0 {
		return 0, false
	}
	return f.os2.CapHeight, true
}

func (f *sfntFont) TypographicAscender() (funit.Int16, bool) {
	if f.os2 == nil {
		return 0, false
	}
	return f.os2.Ascent, true
}

func (f *sfntFont) TypographicDescender() (funit.Int16, bool) {
	if f.os2 == nil {
		return 0, false
	}
	return f.os2.Descent, true
}

func (f *sfntFont) BBox() funit.Rect16 {
	return f.info.FontBBox()
}

func (f *sfntFont) WeightClass() os2.Weight {
	if f.info.Weight == 0 {
		return os2.WeightNormal
	}
	return f.info.Weight
}

func (f *sfntFont) IsItalic() bool {
	return f.info.IsItalic
}

func (f *sfntFont) IsMonospaced() bool {
	return f.info.IsFixedPitch()
}

func (f *sfntFont) ItalicAngle() float64 {
	return f.info.ItalicAngle
}

func (f *sfntFont) PostScriptName() string {
	return f.info.PostScriptName()
}

func (f *sfntFont) NumGlyphs() int {
	return f.numGID
}

func (f *sfntFont) Data() ([]byte, int) {
	return f.data, 0
}
