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

// Package gofont provides the Go font family as a built-in font source.
//
// The font files are taken from golang.org/x/image/font/gofont.  All fonts
// use TrueType outlines, so they can be embedded as CIDFontType2 fonts.
package gofont

import (
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
	"golang.org/x/text/cases"
)

// Font identifies individual fonts in the Go font family.
type Font int

// Constants for the available fonts in the Go font family.
const (
	Regular         Font = iota // Go Regular
	Bold                        // Go Semi Bold
	BoldItalic                  // Go Semi Bold Italic
	Italic                      // Go Italic
	Medium                      // Go Medium Regular
	MediumItalic                // Go Medium Italic
	Smallcaps                   // Go Smallcaps Regular
	SmallcapsItalic             // Go Smallcaps Italic
	Mono                        // Go Mono Regular
	MonoBold                    // Go Mono Semi Bold
	MonoBoldItalic              // Go Mono Semi Bold Italic
	MonoItalic                  // Go Mono Italic
)

type info struct {
	ttf    []byte
	family string
	style  string
}

var fonts = map[Font]info{
	Regular:         {goregular.TTF, "Go", "Regular"},
	Bold:            {gobold.TTF, "Go", "Bold"},
	BoldItalic:      {gobolditalic.TTF, "Go", "Bold Italic"},
	Italic:          {goitalic.TTF, "Go", "Italic"},
	Medium:          {gomedium.TTF, "Go Medium", "Regular"},
	MediumItalic:    {gomediumitalic.TTF, "Go Medium", "Italic"},
	Smallcaps:       {gosmallcaps.TTF, "Go Smallcaps", "Regular"},
	SmallcapsItalic: {gosmallcapsitalic.TTF, "Go Smallcaps", "Italic"},
	Mono:            {gomono.TTF, "Go Mono", "Regular"},
	MonoBold:        {gomonobold.TTF, "Go Mono", "Bold"},
	MonoBoldItalic:  {gomonobolditalic.TTF, "Go Mono", "Bold Italic"},
	MonoItalic:      {gomonoitalic.TTF, "Go Mono", "Italic"},
}

// All contains all the Go font family fonts available in this package.
var All = []Font{
	Regular,
	Bold,
	BoldItalic,
	Italic,
	Medium,
	MediumItalic,
	Smallcaps,
	SmallcapsItalic,
	Mono,
	MonoBold,
	MonoBoldItalic,
	MonoItalic,
}

// TTF returns the TrueType font file for f, or nil if f is not a valid font.
func (f Font) TTF() []byte {
	return fonts[f].ttf
}

// Family returns the family name of the font, for example "Go Mono".
func (f Font) Family() string {
	return fonts[f].family
}

// Style returns the style name of the font, for example "Bold Italic".
func (f Font) Style() string {
	return fonts[f].style
}

func (f Font) String() string {
	return f.Family() + " " + f.Style()
}

// Lookup finds the Go font with the given family and style name.
// The comparison ignores case and surrounding white space.  An empty style
// selects the regular style.
func Lookup(family, style string) (Font, bool) {
	if strings.TrimSpace(style) == "" {
		style = "Regular"
	}
	family = normalize(family)
	style = normalize(style)
	for _, f := range All {
		if normalize(f.Family()) == family && normalize(f.Style()) == style {
			return f, true
		}
	}
	return 0, false
}

func normalize(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}
