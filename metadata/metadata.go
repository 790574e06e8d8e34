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

// Package metadata writes XMP metadata streams for PDF documents.
//
// See section 14.3 of ISO 32000-2:2020.
package metadata

import (
	"io"
	"time"

	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	"seehuhn.de/go/cidfont/pdf"
)

// Info lists the document properties which are recorded in the metadata.
type Info struct {
	Title    string
	Language language.Tag // language of the title
	Producer string
	Created  time.Time
}

// PDF is the XMP namespace for PDF metadata.
// See https://developer.adobe.com/xmp/docs/XMPNamespaces/pdf/
type PDF struct {
	_          xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_          xmp.Prefix    `xmp:"pdf"`
	PDFVersion xmp.Text
	Producer   xmp.AgentName
}

// Stream represents an XMP metadata stream.
type Stream struct {
	Data *xmp.Packet
}

// New constructs the metadata for a document.
func New(info *Info, v pdf.Version) (*Stream, error) {
	dc := &xmp.DublinCore{}
	if info.Title != "" {
		dc.Title.Set(language.MustParse("x-default"), info.Title)
		if info.Language != language.Und {
			dc.Title.Set(info.Language, info.Title)
		}
	}

	basic := &xmp.Basic{}
	if !info.Created.IsZero() {
		basic.CreateDate = xmp.NewDate(info.Created)
		basic.ModifyDate = xmp.NewDate(info.Created)
	}

	pdfInfo := &PDF{}
	if s, err := v.ToString(); err == nil {
		pdfInfo.PDFVersion = xmp.NewText(s)
	}
	if info.Producer != "" {
		pdfInfo.Producer = xmp.NewAgentName(info.Producer)
	}

	packet := xmp.NewPacket()
	err := packet.Set(dc, basic, pdfInfo)
	if err != nil {
		return nil, err
	}
	return &Stream{Data: packet}, nil
}

// Read decodes an XMP packet.
func Read(r io.Reader) (*Stream, error) {
	packet, err := xmp.Read(r)
	if err != nil {
		return nil, err
	}
	return &Stream{Data: packet}, nil
}

// Embed writes the XMP metadata stream to the PDF file.
// The stream is not compressed, so that the metadata can be found by
// tools which do not understand PDF.
func (s *Stream) Embed(w *pdf.Writer) (pdf.Reference, error) {
	if err := pdf.CheckVersion(w, "XMP metadata stream", pdf.V1_4); err != nil {
		return 0, err
	}
	ref := w.Alloc()

	dict := pdf.Dict{
		"Type":    pdf.Name("Metadata"),
		"Subtype": pdf.Name("XML"),
	}
	body, err := w.OpenStream(ref, dict)
	if err != nil {
		return 0, err
	}

	err = s.Data.Write(body, &xmp.PacketOptions{Pretty: true})
	if err != nil {
		return 0, err
	}

	err = body.Close()
	if err != nil {
		return 0, err
	}

	return ref, nil
}

// Equal reports whether s and other represent the same XMP metadata.
func (s *Stream) Equal(other *Stream) bool {
	if s == nil || other == nil {
		return s == other
	}

	return s.Data.Equal(other.Data)
}
