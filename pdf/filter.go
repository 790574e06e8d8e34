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
	"compress/zlib"
	"io"

	"seehuhn.de/go/cidfont/ascii85"
)

// Filter represents a PDF stream filter.
type Filter interface {
	// Info returns the name and the decode parameters of the filter,
	// as they appear in the stream dictionary.
	Info() (Name, Dict)

	// Encode wraps w so that data written to the result is encoded by the
	// filter before being written to w.
	Encode(w io.Writer) (io.WriteCloser, error)
}

// FilterFlate is the FlateDecode filter.  The map can be used to set
// decode parameters; the special key "Level" (not written to the file)
// selects the zlib compression level.
type FilterFlate Dict

// DefaultFlateLevel is the compression level used when a [FilterFlate]
// does not specify one.
const DefaultFlateLevel = 6

// Info implements the [Filter] interface.
func (ff FilterFlate) Info() (Name, Dict) {
	var parms Dict
	for key, val := range ff {
		if key == "Level" {
			continue
		}
		if parms == nil {
			parms = Dict{}
		}
		parms[key] = val
	}
	return "FlateDecode", parms
}

// Encode implements the [Filter] interface.
func (ff FilterFlate) Encode(w io.Writer) (io.WriteCloser, error) {
	level := DefaultFlateLevel
	if l, ok := ff["Level"].(Integer); ok {
		level = int(l)
	}
	return zlib.NewWriterLevel(w, level)
}

// FilterASCII85 is the ASCII85Decode filter.  It is normally combined
// with another filter, listed after it in decoding order, to produce 7-bit
// clean output.
type FilterASCII85 struct{}

// Info implements the [Filter] interface.
func (FilterASCII85) Info() (Name, Dict) {
	return "ASCII85Decode", nil
}

// Encode implements the [Filter] interface.
func (FilterASCII85) Encode(w io.Writer) (io.WriteCloser, error) {
	return ascii85.NewEncoder(w), nil
}

// Inflate decompresses data which has been encoded using the
// FlateDecode filter.
func Inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
