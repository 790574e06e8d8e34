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

// Package subset implements subset tags for embedded fonts.
//
// When only part of a font is embedded in a PDF file, the font name is
// prefixed with a tag of six upper-case letters followed by a plus sign.
// See section 9.9.2 of ISO 32000-2:2020.
package subset

import (
	"encoding/binary"
	"math/bits"
	"regexp"

	"github.com/dchest/siphash"

	"seehuhn.de/go/cidfont/font/glyphset"
)

// TagLength is the number of letters in a subset tag.
const TagLength = 6

// TagRegexp matches a font name with a subset tag.  The first submatch is
// the tag, the second submatch is the name of the original font.
var TagRegexp = regexp.MustCompile(`^([A-Z]{6})\+(.*)$`)

// Tag computes the subset tag for a glyph set.
//
// The tag is a function of the glyph IDs in the set together with the text
// assigned to each glyph, so that different subsets of the same font get
// different tags.  The same set always gives the same tag.
func Tag(set glyphset.Set) string {
	h0, h1 := siphash.Hash128(0, 0, hashInput(set))

	var tag [TagLength]byte
	for i := range tag {
		var rem uint64
		h1, rem = bits.Div64(0, h1, 26)
		h0, rem = bits.Div64(rem, h0, 26)
		tag[i] = 'A' + byte(rem)
	}
	return string(tag[:])
}

// hashInput serializes the set in increasing glyph order.
func hashInput(set glyphset.Set) []byte {
	buf := binary.AppendUvarint(nil, uint64(len(set)))
	for gid, text := range set.All() {
		buf = binary.BigEndian.AppendUint16(buf, uint16(gid))
		buf = binary.AppendUvarint(buf, uint64(len(text)))
		buf = append(buf, text...)
	}
	return buf
}

// IsValidTag returns true if s is a syntactically valid subset tag.
func IsValidTag(s string) bool {
	if len(s) != TagLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// Join combines a subset tag and a font name.  A subset tag already
// present in fontName is replaced.  If tag is empty or malformed, the
// font name is returned without a tag.
func Join(tag, fontName string) string {
	if m := TagRegexp.FindStringSubmatch(fontName); m != nil {
		fontName = m[2]
	}
	if !IsValidTag(tag) {
		return fontName
	}
	return tag + "+" + fontName
}
