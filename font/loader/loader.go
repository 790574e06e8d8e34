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

// Package loader locates and decodes font files.
//
// Fonts are looked up by family and style name.  A [Loader] first consults
// its own font map, which initially contains the Go font family, and then
// falls back to the fonts installed on the system.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"seehuhn.de/go/cidfont/font/gofont"
)

// ErrFontNotFound is returned by [Loader.Locate] if no font matches a query.
var ErrFontNotFound = errors.New("font not found")

// Query describes a font to look for.
type Query struct {
	Family string
	Style  string // empty means "Regular"
}

func (q Query) String() string {
	if q.Style == "" {
		return q.Family
	}
	return q.Family + " " + q.Style
}

// Location describes where the data for a font can be found.
// Exactly one of Builtin and File is set.
type Location struct {
	Builtin *gofont.Font
	File    string
	Index   int
}

// Open loads the font at this location.
func (l *Location) Open() (Font, error) {
	if l.Builtin != nil {
		return Open(l.Builtin.TTF(), 0)
	}
	return OpenFile(l.File, l.Index)
}

// A Loader maps family and style names to font files.
//
// It is safe to use a Loader concurrently from multiple goroutines.
type Loader struct {
	sync.RWMutex
	lookup map[key]*Location

	// System is used when the font map has no entry for a query.
	// If System is nil, only the font map is searched.
	System Locator
}

// A Locator finds fonts which are not in the font map of a [Loader].
type Locator interface {
	Locate(q Query) (*Location, bool)
}

type key struct {
	family string
	style  string
}

func makeKey(q Query) key {
	style := q.Style
	if strings.TrimSpace(style) == "" {
		style = "Regular"
	}
	return key{normalize(q.Family), normalize(style)}
}

func normalize(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

// New creates a new font loader.
// The loader knows the Go font family and uses the fonts installed on the
// system as a fallback.
func New() *Loader {
	return &Loader{
		lookup: make(map[key]*Location),
		System: NewSystemLocator(nil),
	}
}

// Locate finds the font matching the query.  The font map is searched
// first, then the Go fonts, and finally the system fonts.
// If no font is found, an error wrapping [ErrFontNotFound] is returned.
func (l *Loader) Locate(q Query) (*Location, error) {
	l.RLock()
	loc, ok := l.lookup[makeKey(q)]
	l.RUnlock()
	if ok {
		return loc, nil
	}

	if f, ok := gofont.Lookup(q.Family, q.Style); ok {
		return &Location{Builtin: &f}, nil
	}

	if l.System != nil {
		if loc, ok := l.System.Locate(q); ok {
			return loc, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", q.String(), ErrFontNotFound)
}

// AddFontMap reads a font map from r and adds it to the loader.  A font map
// consists of lines of the form
//
//	<family>|<style>|<path>[|<index>]
//
// where <path> is the path to a TrueType or OpenType font file and the
// optional <index> selects a font inside a font collection.  Lines starting
// with '#' or '%' are ignored.
//
// Any previous mapping for (<family>, <style>) is overwritten.
func (l *Loader) AddFontMap(r io.Reader) error {
	lines := bufio.NewScanner(r)
	for lines.Scan() {
		line := lines.Text()
		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' || line[0] == '%' {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) != 3 && len(parts) != 4 {
			return fmt.Errorf("invalid font map line: %q", line)
		}
		index := 0
		if len(parts) == 4 {
			var err error
			index, err = strconv.Atoi(strings.TrimSpace(parts[3]))
			if err != nil || index < 0 {
				return fmt.Errorf("invalid font index in line %q", line)
			}
		}

		l.AddFont(Query{parts[0], parts[1]}, strings.TrimSpace(parts[2]), index)
	}
	return lines.Err()
}

// AddFont adds a font file to the loader.  Any previous mapping for the same
// family and style is overwritten.
func (l *Loader) AddFont(q Query, fname string, index int) {
	key := makeKey(q)
	l.Lock()
	l.lookup[key] = &Location{File: fname, Index: index}
	l.Unlock()
}

var (
	defaultLoader     *Loader
	defaultLoaderOnce sync.Once
)

// Locate finds a font using the default loader.
// See [Loader.Locate] for details.
func Locate(q Query) (*Location, error) {
	defaultLoaderOnce.Do(func() {
		defaultLoader = New()
	})
	return defaultLoader.Locate(q)
}
