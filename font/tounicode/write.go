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

package tounicode

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf16"

	"seehuhn.de/go/cidfont/pdf"
)

const chunkSize = 100

func entryChunks(x []Entry) [][]Entry {
	var res [][]Entry
	for len(x) >= chunkSize {
		res = append(res, x[:chunkSize])
		x = x[chunkSize:]
	}
	if len(x) > 0 {
		res = append(res, x)
	}
	return res
}

func formatEntry(e Entry) string {
	var text strings.Builder
	for _, x := range utf16.Encode(e.Text) {
		fmt.Fprintf(&text, "%04X", x)
	}
	return fmt.Sprintf("<%04X> <%s>", uint16(e.GID), text.String())
}

func formatPDF(obj pdf.Object) (string, error) {
	buf := &bytes.Buffer{}
	err := obj.PDF(buf)
	return buf.String(), err
}

func formatPDFString(s string) (string, error) {
	return formatPDF(pdf.String(s))
}

var toUnicodeTmpl = template.Must(template.New("cmap").Funcs(template.FuncMap{
	"PDF":       formatPDF,
	"PDFString": formatPDFString,
	"Chunks":    entryChunks,
	"Entry":     formatEntry,
}).Parse(`/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo <<
/Registry {{PDFString .ROS.Registry}}
/Ordering {{PDFString .ROS.Ordering}}
/Supplement {{.ROS.Supplement}}
>> def
/CMapName {{PDF .Name}} def
/CMapType 2 def
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
{{range Chunks .Entries -}}
{{len .}} beginbfchar
{{range . -}}
{{Entry .}}
{{end -}}
endbfchar
{{end -}}
endcmap
CMapName currentdict /CMap defineresource pop
end
end
`))
