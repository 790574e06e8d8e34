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

package subset

import (
	"testing"

	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/cidfont/font/glyphset"
)

func identity(r rune) (glyph.ID, bool) {
	if r > 0xFFFF || r == ' ' {
		return 0, false
	}
	return glyph.ID(r), true
}

func TestTagAlphabet(t *testing.T) {
	for _, text := range []string{"", "A", "Hello World", "ÄÖÜ äöü ß", "0123456789"} {
		tag := Tag(glyphset.New(text, identity))
		if !IsValidTag(tag) {
			t.Errorf("%q: invalid tag %q", text, tag)
		}
	}
}

func TestTagDeterministic(t *testing.T) {
	set := glyphset.Set{3: "a", 17: "b", 1000: "ﬃ"}
	set2 := glyphset.Set{1000: "ﬃ", 17: "b", 3: "a"}
	a := Tag(set)
	for range 10 {
		if b := Tag(set2); b != a {
			t.Fatalf("tag changed from %q to %q", a, b)
		}
	}
}

func TestTagRepeatedText(t *testing.T) {
	a := Tag(glyphset.New("AA", identity))
	b := Tag(glyphset.New("A", identity))
	if a != b {
		t.Errorf("%q != %q", a, b)
	}
}

func TestTagDistinct(t *testing.T) {
	sets := []glyphset.Set{
		{},
		{1: "a"},
		{2: "a"},
		{1: "b"},
		{1: "ab"},
		{1: "a", 2: "b"},
		{1: "a", 2: "c"},
	}
	seen := make(map[string]int)
	for i, set := range sets {
		tag := Tag(set)
		if j, ok := seen[tag]; ok {
			t.Errorf("sets %d and %d have the same tag %q", j, i, tag)
		}
		seen[tag] = i
	}
}

func TestHashInputUnambiguous(t *testing.T) {
	a := hashInput(glyphset.Set{1: "ab", 2: "c"})
	b := hashInput(glyphset.Set{1: "a", 2: "bc"})
	if string(a) == string(b) {
		t.Error("different sets serialize to the same bytes")
	}
}

func TestIsValidTag(t *testing.T) {
	testCases := []struct {
		in    string
		valid bool
	}{
		{"ABCDEF", true},
		{"ZZZZZZ", true},
		{"ABCDE", false},
		{"ABCDEFG", false},
		{"abcdef", false},
		{"ABC1EF", false},
		{"", false},
	}
	for _, test := range testCases {
		if got := IsValidTag(test.in); got != test.valid {
			t.Errorf("%q: got %t, want %t", test.in, got, test.valid)
		}
	}
}

func TestJoin(t *testing.T) {
	name := Join("ABCDEF", "Go-Regular")
	if name != "ABCDEF+Go-Regular" {
		t.Errorf("wrong name %q", name)
	}
	m := TagRegexp.FindStringSubmatch(name)
	if m == nil || m[1] != "ABCDEF" || m[2] != "Go-Regular" {
		t.Errorf("unexpected match %q", m)
	}

	if name := Join("", "Go-Regular"); name != "Go-Regular" {
		t.Errorf("wrong name %q", name)
	}
	if TagRegexp.MatchString("Go-Regular") {
		t.Error("untagged name matched")
	}

	testCases := []struct {
		tag, name, want string
	}{
		{"UVWXYZ", "ABCDEF+Go-Regular", "UVWXYZ+Go-Regular"},
		{"", "ABCDEF+Go-Regular", "Go-Regular"},
		{"abcdef", "Go-Regular", "Go-Regular"},
		{"ABCDEF", "AB+Go-Regular", "ABCDEF+AB+Go-Regular"},
	}
	for _, test := range testCases {
		if got := Join(test.tag, test.name); got != test.want {
			t.Errorf("Join(%q, %q) = %q, want %q", test.tag, test.name, got, test.want)
		}
	}
}
