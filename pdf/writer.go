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

package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Writer represents a PDF file open for writing.
//
// Objects are written to the output in the order in which [Writer.Put] and
// [Writer.OpenStream] are called.  The cross-reference table and the file
// trailer are written by [Writer.Close].
type Writer struct {
	w       *posWriter
	ver     Version
	xref    map[uint32]int64
	nextRef uint32

	inStream bool
	closed   bool
}

// NewWriter prepares a PDF file for writing.
func NewWriter(w io.Writer, ver Version) (*Writer, error) {
	versionString, err := ver.ToString()
	if err != nil {
		return nil, err
	}

	pdf := &Writer{
		w:       &posWriter{w: w},
		ver:     ver,
		xref:    make(map[uint32]int64),
		nextRef: 1,
	}

	_, err = fmt.Fprintf(pdf.w, "%%PDF-%s\n%%\x80\x80\x80\x80\n", versionString)
	if err != nil {
		return nil, err
	}

	return pdf, nil
}

// GetVersion returns the PDF version used in the file being written.
func (pdf *Writer) GetVersion() Version {
	return pdf.ver
}

// Alloc allocates an object number for an indirect object.
func (pdf *Writer) Alloc() Reference {
	res := Reference(pdf.nextRef)
	pdf.nextRef++
	return res
}

// Put writes an object to the PDF file, as an indirect object with the
// given reference.  The reference must have been allocated using
// [Writer.Alloc] and can only be used once.
func (pdf *Writer) Put(ref Reference, obj Object) error {
	err := pdf.startObject(ref)
	if err != nil {
		return err
	}

	if obj == nil {
		_, err = pdf.w.Write([]byte("null"))
	} else {
		err = obj.PDF(pdf.w)
	}
	if err != nil {
		return err
	}
	_, err = pdf.w.Write([]byte("\nendobj\n"))
	return err
}

func (pdf *Writer) startObject(ref Reference) error {
	switch {
	case pdf.closed:
		return errClosed
	case pdf.inStream:
		return errOpenStream
	case ref == 0 || uint32(ref) >= pdf.nextRef:
		return errInvalidReference
	}
	if _, seen := pdf.xref[ref.Number()]; seen {
		return fmt.Errorf("object %s written twice", ref)
	}

	pdf.xref[ref.Number()] = pdf.w.pos
	_, err := fmt.Fprintf(pdf.w, "%d 0 obj\n", ref.Number())
	return err
}

// OpenStream adds a PDF stream to the file and returns an io.Writer which
// can be used to add the stream's data.  No other objects can be added to
// the file until the stream is closed.
//
// The filters are listed in decoding order, as in the /Filter entry of the
// stream dictionary.  The /Filter and /DecodeParms entries are set
// accordingly.  The /Length entry
// is set automatically.
func (pdf *Writer) OpenStream(ref Reference, dict Dict, filters ...Filter) (io.WriteCloser, error) {
	switch {
	case pdf.closed:
		return nil, errClosed
	case pdf.inStream:
		return nil, errOpenStream
	}

	streamDict := make(Dict, len(dict)+3)
	for key, val := range dict {
		streamDict[key] = val
	}

	stm := &streamWriter{
		parent: pdf,
		ref:    ref,
		dict:   streamDict,
		buf:    &bytes.Buffer{},
	}

	var w io.Writer = stm.buf
	var names Array
	var parms Array
	hasParms := false
	for _, filter := range filters {
		name, p := filter.Info()
		names = append(names, name)
		parms = append(parms, nil)
		if p != nil {
			hasParms = true
			parms[len(parms)-1] = p
		}

		enc, err := filter.Encode(w)
		if err != nil {
			return nil, err
		}
		stm.closers = append(stm.closers, enc)
		w = enc
	}
	stm.w = w

	switch len(names) {
	case 0:
		// pass
	case 1:
		streamDict["Filter"] = names[0]
		if hasParms {
			streamDict["DecodeParms"] = parms[0]
		}
	default:
		streamDict["Filter"] = names
		if hasParms {
			streamDict["DecodeParms"] = parms
		}
	}

	pdf.inStream = true
	return stm, nil
}

type streamWriter struct {
	parent  *Writer
	ref     Reference
	dict    Dict
	buf     *bytes.Buffer
	w       io.Writer
	closers []io.WriteCloser
}

func (stm *streamWriter) Write(p []byte) (int, error) {
	if stm.parent == nil {
		return 0, errors.New("write to closed stream")
	}
	return stm.w.Write(p)
}

// Close flushes the filters and writes the stream to the PDF file.
func (stm *streamWriter) Close() error {
	pdf := stm.parent
	if pdf == nil {
		return nil
	}
	stm.parent = nil
	pdf.inStream = false

	// The outermost encoder was appended last.
	for i := len(stm.closers) - 1; i >= 0; i-- {
		err := stm.closers[i].Close()
		if err != nil {
			return err
		}
	}

	stm.dict["Length"] = Integer(stm.buf.Len())
	err := pdf.startObject(stm.ref)
	if err != nil {
		return err
	}
	err = stm.dict.PDF(pdf.w)
	if err != nil {
		return err
	}
	_, err = pdf.w.Write([]byte("\nstream\n"))
	if err != nil {
		return err
	}
	_, err = pdf.w.Write(stm.buf.Bytes())
	if err != nil {
		return err
	}
	_, err = pdf.w.Write([]byte("\nendstream\nendobj\n"))
	return err
}

// Close writes the cross-reference table and the file trailer.
// The catalog reference is required, info can be 0 if no document
// information dictionary is present.
//
// If the underlying io.Writer has a Close method, it is called.
func (pdf *Writer) Close(catalog, info Reference) error {
	switch {
	case pdf.closed:
		return errClosed
	case pdf.inStream:
		return errOpenStream
	case catalog == 0:
		return errors.New("missing /Catalog")
	}

	for i := uint32(1); i < pdf.nextRef; i++ {
		if _, ok := pdf.xref[i]; !ok {
			return fmt.Errorf("object %s allocated but never written", Reference(i))
		}
	}

	trailer := Dict{
		"Size": Integer(pdf.nextRef),
		"Root": catalog,
	}
	if info != 0 {
		trailer["Info"] = info
	}

	xRefPos := pdf.w.pos
	err := pdf.writeXRefTable(trailer)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(pdf.w, "\nstartxref\n%d\n%%%%EOF\n", xRefPos)
	if err != nil {
		return err
	}
	pdf.closed = true

	if closer, ok := pdf.w.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (pdf *Writer) writeXRefTable(trailer Dict) error {
	_, err := fmt.Fprintf(pdf.w, "xref\n0 %d\n", pdf.nextRef)
	if err != nil {
		return err
	}
	_, err = pdf.w.Write([]byte("0000000000 65535 f\r\n"))
	if err != nil {
		return err
	}
	for i := uint32(1); i < pdf.nextRef; i++ {
		_, err = fmt.Fprintf(pdf.w, "%010d 00000 n\r\n", pdf.xref[i])
		if err != nil {
			return err
		}
	}

	_, err = pdf.w.Write([]byte("trailer\n"))
	if err != nil {
		return err
	}
	return trailer.PDF(pdf.w)
}

type posWriter struct {
	w   io.Writer
	pos int64
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}
