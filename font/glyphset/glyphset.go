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

// Package glyphset maps text to the glyphs of a font.
//
// A [Set] records which glyphs are used by a text, together with the text
// each glyph represents.  It is the basis for the subset tag, the glyph
// width table and the ToUnicode CMap of an embedded font.  [Sequence]
// converts a text into the glyph IDs used to show the text.
package glyphset

import (
	"fmt"
	"iter"
	"slices"

	"seehuhn.de/go/sfnt/glyph"
)

// Lookup maps a character to a glyph ID.
// The second return value is false if the font has no glyph for r.
type Lookup func(r rune) (glyph.ID, bool)

// Set maps glyph IDs to the text fragment which first produced the glyph.
//
// The zero glyph is never part of a Set, and all text fragments are
// non-empty.  Map iteration order is random, so all methods which expose
// the contents of the set use increasing glyph ID order.
type Set map[glyph.ID]string

// New returns the set of glyphs used to show text.
//
// Characters without a glyph are skipped.  If several characters map to
// the same glyph, the first one (in order of appearance in text) is
// recorded and the others are dropped.
func New(text string, lookup Lookup) Set {
	set := make(Set)
	seen := make(map[rune]bool)
	for _, r := range text {
		if seen[r] {
			continue
		}
		seen[r] = true

		gid, ok := lookup(r)
		if !ok || gid == 0 {
			continue
		}
		if _, dup := set[gid]; dup {
			continue
		}
		set[gid] = string(r)
	}
	return set
}

// GIDs returns the glyph IDs in the set, in increasing order.
func (s Set) GIDs() []glyph.ID {
	gids := make([]glyph.ID, 0, len(s))
	for gid := range s {
		gids = append(gids, gid)
	}
	slices.Sort(gids)
	return gids
}

// All iterates over the set in increasing glyph ID order.
func (s Set) All() iter.Seq2[glyph.ID, string] {
	return func(yield func(glyph.ID, string) bool) {
		for _, gid := range s.GIDs() {
			if !yield(gid, s[gid]) {
				return
			}
		}
	}
}

// Sequence returns the glyph IDs used to show text, one for each character.
//
// Order and repetitions of the characters in text are preserved.  If a
// character has no glyph, an [*UnmappableCharacterError] is returned.
func Sequence(text string, lookup Lookup) ([]glyph.ID, error) {
	res := make([]glyph.ID, 0, len(text))
	for i, r := range text {
		gid, ok := lookup(r)
		if !ok || gid == 0 {
			return nil, &UnmappableCharacterError{Char: r, Pos: i}
		}
		res = append(res, gid)
	}
	return res, nil
}

// UnmappableCharacterError is returned by [Sequence] when the font has no
// glyph for a character of the text.
type UnmappableCharacterError struct {
	Char rune

	// Pos is the byte offset of Char within the text.
	Pos int
}

func (err *UnmappableCharacterError) Error() string {
	return fmt.Sprintf("no glyph for character %q (%U) at offset %d",
		err.Char, err.Char, err.Pos)
}
