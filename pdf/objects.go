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
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
)

// Object represents an object in a PDF file.  The native types of PDF
// objects implement this interface: [Array], [Bool], [Dict], [Integer],
// [Name], [Number], [Reference], and [String].  Streams are not objects
// in this sense; they are written using [Writer.OpenStream].
type Object interface {
	// PDF writes the PDF file representation of the object to w.
	PDF(w io.Writer) error
}

// Bool represents a boolean value in a PDF file.
type Bool bool

// PDF implements the [Object] interface.
func (x Bool) PDF(w io.Writer) error {
	var s string
	if x {
		s = "true"
	} else {
		s = "false"
	}
	_, err := w.Write([]byte(s))
	return err
}

// Integer represents an integer constant in a PDF file.
type Integer int64

// PDF implements the [Object] interface.
func (x Integer) PDF(w io.Writer) error {
	s := strconv.FormatInt(int64(x), 10)
	_, err := w.Write([]byte(s))
	return err
}

// Number represents a numeric value in a PDF file.
// Integral values are written without a decimal point.
type Number float64

// PDF implements the [Object] interface.
func (x Number) PDF(w io.Writer) error {
	if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
		return fmt.Errorf("invalid number %g", float64(x))
	}
	var s string
	if x == Number(math.Trunc(float64(x))) && math.Abs(float64(x)) < 1<<53 {
		s = strconv.FormatInt(int64(x), 10)
	} else {
		s = strconv.FormatFloat(float64(x), 'f', -1, 64)
	}
	_, err := w.Write([]byte(s))
	return err
}

// String represents a raw string in a PDF file.  The character set encoding,
// if any, is determined by the context.
type String []byte

// PDF implements the [Object] interface.
func (x String) PDF(w io.Writer) error {
	l := []byte(x)

	level := 0
	for _, c := range l {
		if c == '(' {
			level++
		} else if c == ')' {
			level--
			if level < 0 {
				break
			}
		}
	}
	balanced := level == 0

	var funny []int
	for i, c := range l {
		if c == '\r' || c == '\n' || c == '\t' {
			continue
		}
		if c < 32 || c >= 127 || c == '\\' ||
			!balanced && (c == '(' || c == ')') {
			funny = append(funny, i)
		}
	}
	n := len(l)

	buf := &bytes.Buffer{}
	if 3*len(funny) <= n {
		buf.WriteString("(")
		pos := 0
		for _, i := range funny {
			if pos < i {
				buf.Write(l[pos:i])
			}
			c := l[i]
			switch c {
			case '\b':
				buf.WriteString(`\b`)
			case '\f':
				buf.WriteString(`\f`)
			case '(':
				buf.WriteString(`\(`)
			case ')':
				buf.WriteString(`\)`)
			case '\\':
				buf.WriteString(`\\`)
			default:
				fmt.Fprintf(buf, `\%03o`, c)
			}
			pos = i + 1
		}
		if pos < n {
			buf.Write(l[pos:n])
		}
		buf.WriteString(")")
	} else {
		fmt.Fprintf(buf, "<%x>", l)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// TextString creates a String object using the "text string" encoding.
// ASCII strings are stored as they are, everything else is converted
// to UTF-16BE with a byte order mark.
func TextString(s string) String {
	isASCII := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			isASCII = false
			break
		}
	}
	if isASCII {
		return String(s)
	}

	enc := utf16.Encode([]rune(s))
	buf := make([]byte, 2*len(enc)+2)
	buf[0] = 0xFE
	buf[1] = 0xFF
	for i, c := range enc {
		buf[2*i+2] = byte(c >> 8)
		buf[2*i+3] = byte(c)
	}
	return String(buf)
}

// Date creates a PDF String object encoding the given date and time.
func Date(t time.Time) String {
	s := t.Format("D:20060102150405-0700")
	k := len(s) - 2
	s = s[:k] + "'" + s[k:]
	return String(s)
}

// Name represents a name in a PDF file.
type Name string

// PDF implements the [Object] interface.
func (x Name) PDF(w io.Writer) error {
	l := []byte(x)

	buf := &bytes.Buffer{}
	buf.WriteString("/")
	for _, c := range l {
		if c < 0x21 || c > 0x7e || c == '#' || isDelimiter(c) {
			fmt.Fprintf(buf, "#%02x", c)
		} else {
			buf.WriteByte(c)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func isDelimiter(c byte) bool {
	return strings.IndexByte("()<>[]{}/%", c) >= 0
}

// Array represent an array of objects in a PDF file.
type Array []Object

// PDF implements the [Object] interface.
func (x Array) PDF(w io.Writer) error {
	_, err := w.Write([]byte("["))
	if err != nil {
		return err
	}
	for i, val := range x {
		if i > 0 {
			_, err := w.Write([]byte(" "))
			if err != nil {
				return err
			}
		}
		if val == nil {
			_, err = w.Write([]byte("null"))
		} else {
			err = val.PDF(w)
		}
		if err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("]"))
	return err
}

// Dict represent a Dictionary object in a PDF file.
// Entries with a nil value are omitted when the dictionary is written.
type Dict map[Name]Object

// PDF implements the [Object] interface.
// The keys are written in sorted order, so that the output is
// reproducible.
func (x Dict) PDF(w io.Writer) error {
	if x == nil {
		_, err := w.Write([]byte("null"))
		return err
	}

	_, err := w.Write([]byte("<<"))
	if err != nil {
		return err
	}

	keys := make([]Name, 0, len(x))
	for key := range x {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, name := range keys {
		val := x[name]
		if val == nil {
			continue
		}

		_, err = w.Write([]byte("\n"))
		if err != nil {
			return err
		}
		err = name.PDF(w)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(" "))
		if err != nil {
			return err
		}
		err = val.PDF(w)
		if err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("\n>>"))
	return err
}

// Reference represents a reference to an indirect object in a PDF file.
// All objects written by this package have generation number 0.
type Reference uint32

// Number returns the object number of the reference.
func (x Reference) Number() uint32 {
	return uint32(x)
}

func (x Reference) String() string {
	return "obj_" + strconv.FormatUint(uint64(x), 10)
}

// PDF implements the [Object] interface.
func (x Reference) PDF(w io.Writer) error {
	if x == 0 {
		return errInvalidReference
	}
	_, err := fmt.Fprintf(w, "%d 0 R", x.Number())
	return err
}

// Rectangle represents a PDF rectangle, given by the coordinates of
// the lower left and upper right corner.
type Rectangle struct {
	LLx, LLy, URx, URy float64
}

// PDF implements the [Object] interface.
func (r *Rectangle) PDF(w io.Writer) error {
	a := Array{Number(r.LLx), Number(r.LLy), Number(r.URx), Number(r.URy)}
	return a.PDF(w)
}

// Format returns the textual representation of an object.
// This is mostly useful in tests and for debugging.
func Format(obj Object) string {
	if obj == nil {
		return "null"
	}
	buf := &bytes.Buffer{}
	err := obj.PDF(buf)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return buf.String()
}
