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

// Package sfntsubset reduces TrueType fonts to the glyphs used in a
// document.
//
// Subsetting renumbers the glyphs.  The glyph IDs of the original font are
// kept as CID values, and the returned CIDToGIDMap translates these to the
// glyph IDs of the subset font.
package sfntsubset

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
)

// ErrSubsettingUnavailable indicates that a font cannot be subset.
// In this case, the complete font can be embedded instead.
var ErrSubsettingUnavailable = errors.New("font subsetting not available")

// Result is the outcome of subsetting a font.
type Result struct {
	// Data is the subset font, in the form used for FontFile2 streams.
	Data []byte

	// CIDToGID maps glyph IDs of the original font to glyph IDs in the
	// subset.  A nil slice means that the glyph IDs are unchanged.
	CIDToGID []glyph.ID

	// NumGlyphs is the number of glyphs in the subset font.
	NumGlyphs int
}

// Subset constructs a subset of a TrueType font, which contains the glyphs
// in gids together with the .notdef glyph.
//
// If the font cannot be subset, an error wrapping ErrSubsettingUnavailable
// is returned.  This happens for fonts with CFF outlines, for fonts inside
// collections, and for fonts which cannot be decoded.
func Subset(data []byte, index int, gids []glyph.ID) (*Result, error) {
	if index != 0 {
		return nil, fmt.Errorf("%w: font collection index %d", ErrSubsettingUnavailable, index)
	}

	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubsettingUnavailable, err)
	}
	if !info.IsGlyf() {
		return nil, fmt.Errorf("%w: font %q does not use TrueType outlines",
			ErrSubsettingUnavailable, info.PostScriptName())
	}

	glyphs := []glyph.ID{0}
	numGlyphs := info.NumGlyphs()
	sorted := slices.Clone(gids)
	slices.Sort(sorted)
	for _, gid := range slices.Compact(sorted) {
		if gid == 0 {
			continue
		}
		if int(gid) >= numGlyphs {
			return nil, fmt.Errorf("glyph %d not in font %q", gid, info.PostScriptName())
		}
		glyphs = append(glyphs, gid)
	}

	// The subset is referenced by CID, so the tables used for character
	// mapping and layout are not needed.
	info = info.Clone()
	info.CMapTable = nil
	info.Gdef = nil
	info.Gsub = nil
	info.Gpos = nil

	subsetFont := info.Subset(glyphs)

	buf := &bytes.Buffer{}
	_, err = subsetFont.WriteTrueTypePDF(buf)
	if err != nil {
		return nil, fmt.Errorf("subset of %q: %w", info.PostScriptName(), err)
	}

	res := &Result{
		Data:      buf.Bytes(),
		NumGlyphs: subsetFont.NumGlyphs(),
	}

	isIdentity := true
	maxGID := glyphs[len(glyphs)-1]
	cidToGID := make([]glyph.ID, int(maxGID)+1)
	for subsetGID, origGID := range glyphs {
		if origGID != glyph.ID(subsetGID) {
			isIdentity = false
		}
		cidToGID[origGID] = glyph.ID(subsetGID)
	}
	if !isIdentity {
		res.CIDToGID = cidToGID
	}

	return res, nil
}
