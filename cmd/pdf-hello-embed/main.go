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

// Pdf-hello-embed writes a one-page PDF file which shows a line of text in
// an embedded subset font.
//
// Usage:
//
//	pdf-hello-embed [flags] [text]
//
// The font is selected by family and style name, or given directly as a
// font file.  The Go fonts are always available under the family names
// "Go", "Go Medium", "Go Mono" and "Go Smallcaps".  Other names are looked
// up among the fonts installed on the system.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/text/language"

	"seehuhn.de/go/cidfont/document"
	"seehuhn.de/go/cidfont/font/embed"
	"seehuhn.de/go/cidfont/font/loader"
	"seehuhn.de/go/cidfont/pdf"
)

const defaultText = "Hello World from Rust!"

var (
	family   = flag.String("family", "Go", "font family name")
	style    = flag.String("style", "Regular", "font style")
	fontFile = flag.String("font", "", "font file to use instead of a family name")
	index    = flag.Int("index", 0, "index of the font inside a font collection")
	outFile  = flag.String("o", "hello_embed.pdf", "output file name, or \"-\" for standard output")
	title    = flag.String("title", "", "document title")
	lang     = flag.String("lang", "", "language of the text, as a BCP 47 tag")
	full     = flag.Bool("full", false, "embed the complete font instead of a subset")
	ascii    = flag.Bool("ascii", false, "ASCII85-encode all streams")
	verbose  = flag.Bool("v", false, "log progress to standard error")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [text]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		embed.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pdf-hello-embed:", err)
		os.Exit(1)
	}
}

func run() error {
	text := defaultText
	if flag.NArg() > 0 {
		text = strings.Join(flag.Args(), " ")
	}

	f, err := openFont()
	if err != nil {
		return err
	}

	opt := &document.Options{
		Title: *title,
		Font:  &embed.Options{NoSubset: *full},
	}
	if *lang != "" {
		tag, err := language.Parse(*lang)
		if err != nil {
			return fmt.Errorf("invalid language %q: %w", *lang, err)
		}
		opt.Language = tag
	}
	if *ascii {
		filters := []pdf.Filter{pdf.FilterASCII85{}, pdf.FilterFlate{}}
		opt.Filters = filters
		opt.Font.Filters = filters
	}

	if *outFile == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("refusing to write PDF data to a terminal")
		}
		return document.WriteSinglePage(nopCloser{os.Stdout}, f, text, opt)
	}

	err = document.CreateSinglePage(*outFile, f, text, opt)
	if err != nil {
		return err
	}
	if *verbose {
		slog.Info("wrote PDF file", "file", *outFile, "font", f.PostScriptName())
	}
	return nil
}

func openFont() (loader.Font, error) {
	if *fontFile != "" {
		return loader.OpenFile(*fontFile, *index)
	}

	l := loader.New()
	if *verbose {
		l.System = loader.NewSystemLocator(slog.Default())
	}
	loc, err := l.Locate(loader.Query{Family: *family, Style: *style})
	if err != nil {
		return nil, err
	}
	return loc.Open()
}

// nopCloser keeps os.Stdout open after the document is written.
type nopCloser struct {
	io.Writer
}
