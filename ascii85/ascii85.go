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

// Package ascii85 writes data in the ASCII base-85 encoding used by the
// ASCII85Decode filter in PDF files.
//
// The output consists of printable ASCII characters, broken into lines,
// and is terminated by the end-of-data marker "~>".  See section 7.4.3 of
// ISO 32000-2:2020.
package ascii85

import (
	"encoding/binary"
	"errors"
	"io"
)

// LineLength is the number of encoded characters per output line.
// The final line, which holds the end-of-data marker, may be up to two
// characters longer.
const LineLength = 75

var errClosed = errors.New("ascii85: write to closed encoder")

// Encoder converts binary data to ASCII85 and writes the result to an
// underlying writer.
type Encoder struct {
	w      io.Writer
	group  [4]byte
	n      int
	line   []byte
	err    error
	closed bool
}

// NewEncoder returns an encoder which writes to w.
// Close must be called to write the final partial group and the
// end-of-data marker.  The writer w is not closed.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w:    w,
		line: make([]byte, 0, LineLength+3),
	}
}

// Write encodes p.  Output is passed on to the underlying writer one line
// at a time.
func (e *Encoder) Write(p []byte) (int, error) {
	if e.closed {
		return 0, errClosed
	}
	if e.err != nil {
		return 0, e.err
	}

	for i, b := range p {
		e.group[e.n] = b
		e.n++
		if e.n < len(e.group) {
			continue
		}
		e.n = 0

		v := binary.BigEndian.Uint32(e.group[:])
		if v == 0 {
			e.emit('z')
		} else {
			var digits [5]byte
			encodeGroup(&digits, v)
			e.emit(digits[:]...)
		}
		if e.err != nil {
			return i, e.err
		}
	}
	return len(p), nil
}

// Close writes the remaining data, followed by "~>" and a newline.
func (e *Encoder) Close() error {
	if e.closed {
		return e.err
	}
	e.closed = true
	if e.err != nil {
		return e.err
	}

	if e.n > 0 {
		// A partial group of n bytes is zero-padded and written as n+1
		// digits.  The abbreviation "z" is not allowed here.
		clear(e.group[e.n:])
		var digits [5]byte
		encodeGroup(&digits, binary.BigEndian.Uint32(e.group[:]))
		e.emit(digits[:e.n+1]...)
		e.n = 0
	}
	e.line = append(e.line, '~', '>')
	e.writeLine()
	return e.err
}

func (e *Encoder) emit(cc ...byte) {
	for _, c := range cc {
		e.line = append(e.line, c)
		if len(e.line) == LineLength {
			e.writeLine()
		}
	}
}

func (e *Encoder) writeLine() {
	if e.err != nil {
		return
	}
	e.line = append(e.line, '\n')
	_, e.err = e.w.Write(e.line)
	e.line = e.line[:0]
}

// encodeGroup stores the base-85 digits of v in dst, most significant
// digit first.
func encodeGroup(dst *[5]byte, v uint32) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = '!' + byte(v%85)
		v /= 85
	}
}
