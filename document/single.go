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

// Package document writes PDF documents which show a line of text in an
// embedded font.
package document

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/text/language"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/cidfont/font/embed"
	"seehuhn.de/go/cidfont/font/loader"
	"seehuhn.de/go/cidfont/metadata"
	"seehuhn.de/go/cidfont/pdf"
)

// Options controls the layout of the page and the document metadata.
// A nil *Options selects the defaults.
type Options struct {
	// PageSize is the size of the page.  The default is A4.
	PageSize rect.Rect

	// Start is the start of the text baseline.  If this is nil, the text
	// starts at (108, 734).
	Start *vec.Vec2

	// FontSize is the font size in points.  The default is 14.
	FontSize float64

	// Title is the document title.
	Title string

	// Language is the language of the text.
	Language language.Tag

	// Producer is recorded in the document information dictionary.
	Producer string

	// Time is the creation time.  The default is the current time.
	Time time.Time

	// NoMetadata disables the XMP metadata stream.
	NoMetadata bool

	// Filters are applied to the page content stream, in decoding order.
	// The default is [pdf.FilterFlate].
	Filters []pdf.Filter

	// Font controls how the font is embedded.
	Font *embed.Options
}

const fontName pdf.Name = "F1"

var defaultOptions = Options{
	PageSize: A4,
	Start:    &vec.Vec2{X: 108, Y: 734},
	FontSize: 14,
	Producer: "seehuhn.de/go/cidfont",
}

// CreateSinglePage writes a one-page PDF document to the file with the
// given name.  The file is only written if the document was generated
// successfully.
func CreateSinglePage(fname string, f loader.Font, text string, opt *Options) error {
	buf := &bytes.Buffer{}
	err := WriteSinglePage(buf, f, text, opt)
	if err != nil {
		return err
	}
	return os.WriteFile(fname, buf.Bytes(), 0o666)
}

// WriteSinglePage writes a one-page PDF document which shows text in
// the font f.  Only the glyphs used in the text are embedded.
// If out implements io.Closer, it is closed after the document is written.
func WriteSinglePage(out io.Writer, f loader.Font, text string, opt *Options) error {
	o := defaultOptions
	if opt != nil {
		o = *opt
		if o.PageSize == (rect.Rect{}) {
			o.PageSize = defaultOptions.PageSize
		}
		if o.Start == nil {
			o.Start = defaultOptions.Start
		}
		if o.FontSize == 0 {
			o.FontSize = defaultOptions.FontSize
		}
	}
	if len(o.Filters) == 0 {
		o.Filters = []pdf.Filter{pdf.FilterFlate{}}
	}
	if o.Time.IsZero() {
		o.Time = time.Now()
	}

	const v = pdf.V1_7
	w, err := pdf.NewWriter(out, v)
	if err != nil {
		return err
	}

	catalogRef := w.Alloc()
	pagesRef := w.Alloc()
	pageRef := w.Alloc()

	font, err := embed.Embed(w, f, text, o.Font)
	if err != nil {
		return err
	}

	contentRef := w.Alloc()
	content := &bytes.Buffer{}
	err = showText(content, embed.Encode(font.Glyphs), *o.Start, o.FontSize)
	if err != nil {
		return err
	}
	stm, err := w.OpenStream(contentRef, nil, o.Filters...)
	if err != nil {
		return err
	}
	_, err = stm.Write(content.Bytes())
	if err != nil {
		return err
	}
	err = stm.Close()
	if err != nil {
		return err
	}

	resources := pdf.Dict{
		"Font": pdf.Dict{fontName: font.Ref},
	}
	page := pdf.Dict{
		"Type":      pdf.Name("Page"),
		"Parent":    pagesRef,
		"MediaBox":  mediaBox(o.PageSize),
		"Resources": resources,
		"Contents":  contentRef,
	}
	err = w.Put(pageRef, page)
	if err != nil {
		return err
	}

	pages := pdf.Dict{
		"Type":  pdf.Name("Pages"),
		"Kids":  pdf.Array{pageRef},
		"Count": pdf.Integer(1),
	}
	err = w.Put(pagesRef, pages)
	if err != nil {
		return err
	}

	catalog := pdf.Dict{
		"Type":  pdf.Name("Catalog"),
		"Pages": pagesRef,
	}
	if o.Language != language.Und {
		catalog["Lang"] = pdf.TextString(o.Language.String())
	}
	if !o.NoMetadata {
		meta, err := metadata.New(&metadata.Info{
			Title:    o.Title,
			Language: o.Language,
			Producer: o.Producer,
			Created:  o.Time,
		}, v)
		if err != nil {
			return err
		}
		metaRef, err := meta.Embed(w)
		if err != nil {
			return err
		}
		catalog["Metadata"] = metaRef
	}
	err = w.Put(catalogRef, catalog)
	if err != nil {
		return err
	}

	infoRef := w.Alloc()
	info := pdf.Dict{
		"CreationDate": pdf.Date(o.Time),
	}
	if o.Title != "" {
		info["Title"] = pdf.TextString(o.Title)
	}
	if o.Producer != "" {
		info["Producer"] = pdf.TextString(o.Producer)
	}
	err = w.Put(infoRef, info)
	if err != nil {
		return err
	}

	return w.Close(catalogRef, infoRef)
}

// showText writes a content stream which shows the encoded string s.
func showText(w io.Writer, s pdf.String, start vec.Vec2, size float64) error {
	_, err := fmt.Fprintf(w, "BT\n%s %s Tf\n%s %s Td\n",
		pdf.Format(fontName), pdf.Format(pdf.Number(size)),
		pdf.Format(pdf.Number(start.X)), pdf.Format(pdf.Number(start.Y)))
	if err != nil {
		return err
	}
	err = s.PDF(w)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, " Tj\nET\n")
	return err
}
