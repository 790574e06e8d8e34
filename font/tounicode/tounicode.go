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

// Package tounicode implements ToUnicode CMaps for embedded fonts.
//
// A ToUnicode CMap maps character codes in a PDF content stream back to
// Unicode text, so that text can be searched and copied.  Here character
// codes are two-byte glyph IDs, as used with the Identity-H encoding.
// See section 9.10.3 of ISO 32000-2:2020.
package tounicode

import (
	"io"
	"slices"

	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/cidfont/font/glyphset"
	"seehuhn.de/go/cidfont/pdf"
)

// Entry maps a single glyph to the text it represents.
type Entry struct {
	GID  glyph.ID
	Text []rune
}

// CMap is a reverse character map from glyph IDs to Unicode text.
// The entries are sorted by glyph ID and each glyph occurs at most once.
type CMap struct {
	Name    pdf.Name
	ROS     *cid.SystemInfo
	Entries []Entry
}

// DefaultName is the CMap name used by [Build].
const DefaultName pdf.Name = "Custom"

// Build constructs the ToUnicode CMap for a glyph set.  Glyphs with empty
// text are omitted.
func Build(set glyphset.Set) *CMap {
	res := &CMap{
		Name: DefaultName,
		ROS: &cid.SystemInfo{
			Registry:   "Adobe",
			Ordering:   "Identity",
			Supplement: 0,
		},
	}
	for gid, text := range set.All() {
		if text == "" {
			continue
		}
		res.Entries = append(res.Entries, Entry{
			GID:  gid,
			Text: []rune(text),
		})
	}
	return res
}

// Lookup returns the text for the given glyph.
func (c *CMap) Lookup(gid glyph.ID) ([]rune, bool) {
	i, found := slices.BinarySearchFunc(c.Entries, gid, func(e Entry, gid glyph.ID) int {
		return int(e.GID) - int(gid)
	})
	if !found {
		return nil, false
	}
	return c.Entries[i].Text, true
}

// Embed writes the CMap as a stream object into a PDF file.
func (c *CMap) Embed(w *pdf.Writer, ref pdf.Reference, filters ...pdf.Filter) error {
	stm, err := w.OpenStream(ref, nil, filters...)
	if err != nil {
		return err
	}
	err = c.Write(stm)
	if err != nil {
		return err
	}
	return stm.Close()
}

// Write writes the CMap in the PostScript-based CMap file format.
func (c *CMap) Write(w io.Writer) error {
	return toUnicodeTmpl.Execute(w, c)
}
