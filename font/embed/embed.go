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

// Package embed embeds TrueType fonts into PDF files as composite fonts.
//
// Only the glyphs needed for a given text are included.  The font is
// written as a Type0 font with Identity-H encoding and a CIDFontType2
// descendant font, so that every glyph is addressed by a two-byte code.
// The CID of each glyph equals its glyph ID in the original font file.
// A ToUnicode CMap allows text to be extracted from the PDF file.
package embed

import (
	"errors"
	"fmt"

	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/cidfont/font/glyphset"
	"seehuhn.de/go/cidfont/font/loader"
	"seehuhn.de/go/cidfont/font/metrics"
	"seehuhn.de/go/cidfont/font/sfntsubset"
	"seehuhn.de/go/cidfont/font/subset"
	"seehuhn.de/go/cidfont/font/tounicode"
	"seehuhn.de/go/cidfont/font/widths"
	"seehuhn.de/go/cidfont/pdf"
)

// Options controls how a font is embedded.
// A nil *Options is equivalent to the zero value.
type Options struct {
	// Filters are applied to the font file, the ToUnicode CMap and the
	// CIDToGIDMap, listed in decoding order.  If this is empty,
	// [pdf.FilterFlate] with the default compression level is used.
	Filters []pdf.Filter

	// NoSubset causes the complete font file to be embedded.
	NoSubset bool
}

// Embedded describes a font which has been written to a PDF file.
type Embedded struct {
	// Ref is the reference to the Type0 font dictionary.
	Ref pdf.Reference

	// BaseFont is the font name, including the subset tag if the font
	// was subset.
	BaseFont string

	// SubsetTag is the tag computed from the glyph set.
	SubsetTag string

	// IsSubset is true if only the used glyphs were embedded.
	IsSubset bool

	// Glyphs is the sequence of glyphs for the text, one per character.
	Glyphs []glyph.ID

	Set        glyphset.Set
	Runs       []widths.Run
	ToUnicode  *tounicode.CMap
	Descriptor *metrics.Descriptor
}

// Encode converts a glyph sequence into a PDF string for use with the
// Identity-H encoding.  Each glyph is represented by two bytes, most
// significant byte first.
func Encode(gids []glyph.ID) pdf.String {
	res := make(pdf.String, 0, 2*len(gids))
	for _, gid := range gids {
		res = append(res, byte(gid>>8), byte(gid))
	}
	return res
}

// Embed writes the font f to the PDF file, restricted to the glyphs needed
// to show text.  The first error encountered aborts the process.
//
// If a character in text has no glyph in the font, an error of type
// *glyphset.UnmappableCharacterError is returned and nothing is written.
func Embed(w *pdf.Writer, f loader.Font, text string, opt *Options) (*Embedded, error) {
	if opt == nil {
		opt = &Options{}
	}
	filters := opt.Filters
	if len(filters) == 0 {
		filters = []pdf.Filter{pdf.FilterFlate{}}
	}

	err := pdf.CheckVersion(w, "composite TrueType fonts", pdf.V1_3)
	if err != nil {
		return nil, err
	}

	seq, err := glyphset.Sequence(text, f.GlyphIndex)
	if err != nil {
		return nil, err
	}
	set := glyphset.New(text, f.GlyphIndex)

	desc := metrics.Derive(rawMetrics(f))

	unitsPerEm := float64(f.UnitsPerEm())
	if unitsPerEm == 0 {
		unitsPerEm = 1000
	}
	q := 1000 / unitsPerEm
	ww := widths.Table(set, func(gid glyph.ID) float64 {
		return f.GlyphAdvance(gid).AsFloat(q)
	}, f.NumGlyphs())
	runs := widths.EncodeRuns(ww)

	toUni := tounicode.Build(set)

	tag := subset.Tag(set)
	postScriptName := f.PostScriptName()

	fontData, index := f.Data()
	var cidToGID []glyph.ID
	isSubset := false
	if !opt.NoSubset {
		res, err := sfntsubset.Subset(fontData, index, set.GIDs())
		switch {
		case errors.Is(err, sfntsubset.ErrSubsettingUnavailable):
			Logger().Warn("embedding complete font",
				"font", postScriptName,
				"reason", err)
		case err != nil:
			return nil, err
		default:
			fontData = res.Data
			cidToGID = res.CIDToGID
			isSubset = true
		}
	}

	// If subsetting fails, the complete font keeps the tag.
	baseFont := subset.Join("", postScriptName)
	if !opt.NoSubset {
		baseFont = subset.Join(tag, postScriptName)
	}

	fontRef := w.Alloc()
	cidFontRef := w.Alloc()
	descRef := w.Alloc()
	toUniRef := w.Alloc()
	fontFileRef := w.Alloc()

	var cidToGIDMap pdf.Object = pdf.Name("Identity")
	var cidToGIDRef pdf.Reference
	if cidToGID != nil {
		cidToGIDRef = w.Alloc()
		cidToGIDMap = cidToGIDRef
	}

	fontDict := pdf.Dict{
		"Type":            pdf.Name("Font"),
		"Subtype":         pdf.Name("Type0"),
		"BaseFont":        pdf.Name(baseFont),
		"Encoding":        pdf.Name("Identity-H"),
		"DescendantFonts": pdf.Array{cidFontRef},
		"ToUnicode":       toUniRef,
	}
	err = w.Put(fontRef, fontDict)
	if err != nil {
		return nil, err
	}

	ROS := pdf.Dict{
		"Registry":   pdf.String(toUni.ROS.Registry),
		"Ordering":   pdf.String(toUni.ROS.Ordering),
		"Supplement": pdf.Integer(toUni.ROS.Supplement),
	}
	cidFontDict := pdf.Dict{
		"Type":           pdf.Name("Font"),
		"Subtype":        pdf.Name("CIDFontType2"),
		"BaseFont":       pdf.Name(baseFont),
		"CIDSystemInfo":  ROS,
		"FontDescriptor": descRef,
		"DW":             pdf.Integer(0),
		"W":              widths.Array(runs),
		"CIDToGIDMap":    cidToGIDMap,
	}
	err = w.Put(cidFontRef, cidFontDict)
	if err != nil {
		return nil, err
	}

	fontDescriptor := desc.AsDict(baseFont)
	fontDescriptor["FontFile2"] = fontFileRef
	err = w.Put(descRef, fontDescriptor)
	if err != nil {
		return nil, err
	}

	err = toUni.Embed(w, toUniRef, filters...)
	if err != nil {
		return nil, fmt.Errorf("ToUnicode CMap for %q: %w", baseFont, err)
	}

	// See section 9.9 of ISO 32000-2:2020.
	fontFileDict := pdf.Dict{
		"Length1": pdf.Integer(len(fontData)),
	}
	err = writeStream(w, fontFileRef, fontFileDict, fontData, filters...)
	if err != nil {
		return nil, fmt.Errorf("font file for %q: %w", baseFont, err)
	}

	if cidToGIDRef != 0 {
		buf := make([]byte, 2*len(cidToGID))
		for cid, gid := range cidToGID {
			buf[2*cid] = byte(gid >> 8)
			buf[2*cid+1] = byte(gid)
		}
		err = writeStream(w, cidToGIDRef, nil, buf, filters...)
		if err != nil {
			return nil, fmt.Errorf("CIDToGIDMap for %q: %w", baseFont, err)
		}
	}

	Logger().Debug("embedded font",
		"font", baseFont,
		"glyphs", len(set),
		"runs", len(runs),
		"bytes", len(fontData))

	res := &Embedded{
		Ref:        fontRef,
		BaseFont:   baseFont,
		SubsetTag:  tag,
		IsSubset:   isSubset,
		Glyphs:     seq,
		Set:        set,
		Runs:       runs,
		ToUnicode:  toUni,
		Descriptor: desc,
	}
	return res, nil
}

func rawMetrics(f loader.Font) *metrics.Raw {
	raw := &metrics.Raw{
		UnitsPerEm:     f.UnitsPerEm(),
		BBox:           f.BBox(),
		Ascent:         f.Ascender(),
		Descent:        f.Descender(),
		Weight:         f.WeightClass(),
		ItalicAngle:    f.ItalicAngle(),
		IsFixedPitch:   f.IsMonospaced(),
		IsItalic:       f.IsItalic(),
		PostScriptName: f.PostScriptName(),
	}
	raw.CapHeight, raw.HasCapHeight = f.CapHeight()

	ascent, okAscent := f.TypographicAscender()
	descent, okDescent := f.TypographicDescender()
	if okAscent && okDescent {
		raw.TypoAscent = ascent
		raw.TypoDescent = descent
		raw.HasTypoMetrics = true
	}
	return raw
}

func writeStream(w *pdf.Writer, ref pdf.Reference, dict pdf.Dict, data []byte, filters ...pdf.Filter) error {
	stm, err := w.OpenStream(ref, dict, filters...)
	if err != nil {
		return err
	}
	_, err = stm.Write(data)
	if err != nil {
		return err
	}
	return stm.Close()
}
