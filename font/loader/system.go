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

package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-text/typesetting/fontscan"
)

// SystemLocator finds fonts installed on the system.
//
// The font directories are scanned on first use.  The scan results are
// cached in the user's cache directory, which makes later runs faster.
type SystemLocator struct {
	CacheDir string
	Logger   *slog.Logger

	once    sync.Once
	fontMap *fontscan.FontMap
	err     error
}

// NewSystemLocator returns a locator for the system fonts.
// If logger is nil, log messages are discarded.
func NewSystemLocator(logger *slog.Logger) *SystemLocator {
	cacheDir := ""
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "cidfont")
	}
	return &SystemLocator{
		CacheDir: cacheDir,
		Logger:   logger,
	}
}

func (s *SystemLocator) init() {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s.fontMap = fontscan.NewFontMap(scanLogger{logger})
	s.err = s.fontMap.UseSystemFonts(s.CacheDir)
	if s.err != nil {
		logger.Warn("cannot scan system fonts", "error", s.err)
	}
}

// Locate implements the [Locator] interface.
//
// Fonts are matched by family name.  For styles other than "Regular", the
// family name followed by the style name is tried.
func (s *SystemLocator) Locate(q Query) (*Location, bool) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, false
	}

	k := makeKey(q)
	name := q.Family
	if k.style != "regular" {
		name = q.Family + " " + q.Style
	}
	loc, ok := s.fontMap.FindSystemFont(name)
	if !ok {
		return nil, false
	}
	return &Location{File: loc.File, Index: int(loc.Index)}, true
}

// scanLogger forwards messages from the font scanner to slog.
type scanLogger struct {
	logger *slog.Logger
}

func (l scanLogger) Printf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "fontscan")
}
