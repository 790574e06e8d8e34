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
	"encoding/ascii85"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

func TestWriterXRef(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, V1_7)
	if err != nil {
		t.Fatal(err)
	}

	catalog := w.Alloc()
	pages := w.Alloc()
	err = w.Put(catalog, Dict{"Type": Name("Catalog"), "Pages": pages})
	if err != nil {
		t.Fatal(err)
	}
	err = w.Put(pages, Dict{"Type": Name("Pages"), "Kids": Array{}, "Count": Integer(0)})
	if err != nil {
		t.Fatal(err)
	}
	err = w.Close(catalog, 0)
	if err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	if !bytes.HasPrefix(data, []byte("%PDF-1.7\n")) {
		t.Errorf("wrong header %q", data[:9])
	}

	m := regexp.MustCompile(`startxref\n(\d+)\n%%EOF\n$`).FindSubmatch(data)
	if m == nil {
		t.Fatal("missing startxref")
	}
	xrefPos, _ := strconv.Atoi(string(m[1]))
	if !bytes.HasPrefix(data[xrefPos:], []byte("xref\n0 3\n")) {
		t.Fatalf("startxref does not point to the xref table")
	}

	lines := strings.Split(string(data[xrefPos:]), "\r\n")
	for i, ref := range []Reference{catalog, pages} {
		pos, err := strconv.Atoi(lines[i+1][:10])
		if err != nil {
			t.Fatal(err)
		}
		prefix := strconv.Itoa(int(ref.Number())) + " 0 obj\n"
		if !bytes.HasPrefix(data[pos:], []byte(prefix)) {
			t.Errorf("xref entry for %s points to %q", ref, data[pos:pos+10])
		}
	}
	if !bytes.Contains(data, []byte("trailer\n<<\n/Root 1 0 R\n/Size 3\n>>")) {
		t.Error("missing or malformed trailer")
	}
}

func TestStreamFlate(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, V1_7)
	if err != nil {
		t.Fatal(err)
	}

	body := bytes.Repeat([]byte("BT /F1 14 Tf ET\n"), 20)
	ref := w.Alloc()
	stm, err := w.OpenStream(ref, Dict{"Length1": Integer(len(body))}, FilterFlate{})
	if err != nil {
		t.Fatal(err)
	}

	// No other objects can be written while the stream is open.
	other := w.Alloc()
	if err := w.Put(other, Integer(1)); !errors.Is(err, errOpenStream) {
		t.Errorf("expected errOpenStream, got %v", err)
	}

	_, err = stm.Write(body)
	if err != nil {
		t.Fatal(err)
	}
	err = stm.Close()
	if err != nil {
		t.Fatal(err)
	}
	err = w.Put(other, Integer(1))
	if err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	m := regexp.MustCompile(`/Length (\d+)`).FindSubmatch(data)
	if m == nil {
		t.Fatal("missing /Length")
	}
	length, _ := strconv.Atoi(string(m[1]))
	if !bytes.Contains(data, []byte("/Filter /FlateDecode")) {
		t.Error("missing /Filter entry")
	}

	start := bytes.Index(data, []byte("stream\n")) + len("stream\n")
	compressed := data[start : start+length]
	if !bytes.HasPrefix(data[start+length:], []byte("\nendstream")) {
		t.Fatal("/Length does not match the stream data")
	}
	decoded, err := Inflate(compressed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, body) {
		t.Error("stream data does not round-trip")
	}
}

func TestStreamASCII85(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, V1_7)
	if err != nil {
		t.Fatal(err)
	}

	body := bytes.Repeat([]byte{0, 1, 2, 0xFF, 0x80}, 50)
	ref := w.Alloc()
	stm, err := w.OpenStream(ref, nil, FilterASCII85{}, FilterFlate{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = stm.Write(body)
	if err != nil {
		t.Fatal(err)
	}
	err = stm.Close()
	if err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	if !bytes.Contains(data, []byte("/Filter [/ASCII85Decode /FlateDecode]")) {
		t.Error("missing or malformed /Filter entry")
	}
	m := regexp.MustCompile(`/Length (\d+)`).FindSubmatch(data)
	if m == nil {
		t.Fatal("missing /Length")
	}
	length, _ := strconv.Atoi(string(m[1]))
	start := bytes.Index(data, []byte("stream\n")) + len("stream\n")
	encoded := data[start : start+length]
	for _, c := range encoded {
		if c >= 0x80 {
			t.Fatalf("non-ASCII byte 0x%02x in encoded stream", c)
		}
	}
	body, ok := bytes.CutSuffix(encoded, []byte("~>\n"))
	if !ok {
		t.Fatal("missing end-of-data marker")
	}

	compressed := make([]byte, 4*len(body))
	n, _, err := ascii85.Decode(compressed, body, true)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Inflate(compressed[:n])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, body) {
		t.Error("stream data does not round-trip")
	}
}

func TestWriterErrors(t *testing.T) {
	w, err := NewWriter(&bytes.Buffer{}, V1_7)
	if err != nil {
		t.Fatal(err)
	}

	if err := w.Put(Reference(5), Integer(1)); !errors.Is(err, errInvalidReference) {
		t.Errorf("unallocated reference: got %v", err)
	}

	ref := w.Alloc()
	if err := w.Put(ref, Integer(1)); err != nil {
		t.Fatal(err)
	}
	if err := w.Put(ref, Integer(2)); err == nil {
		t.Error("object written twice without error")
	}

	w.Alloc()
	if err := w.Close(ref, 0); err == nil {
		t.Error("missing object was not detected")
	}

	if _, err := NewWriter(&bytes.Buffer{}, Version(1)); err == nil {
		t.Error("invalid version accepted")
	}
}

func TestCheckVersion(t *testing.T) {
	w, err := NewWriter(&bytes.Buffer{}, V1_3)
	if err != nil {
		t.Fatal(err)
	}
	err = CheckVersion(w, "XMP metadata", V1_4)
	var vErr *VersionError
	if !errors.As(err, &vErr) || vErr.Earliest != V1_4 {
		t.Errorf("expected VersionError, got %v", err)
	}
	if err := CheckVersion(w, "composite fonts", V1_3); err != nil {
		t.Error(err)
	}
}
