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
	"errors"
	"fmt"
)

// Version represents a version of the PDF standard.
type Version int

// PDF versions supported by this library.
const (
	V1_3 Version = iota + 3
	V1_4
	V1_5
	V1_6
	V1_7
	V2_0
)

// ToString returns the string representation of ver, e.g. "1.7".
// If ver does not correspond to a supported PDF version, an error is
// returned.
func (ver Version) ToString() (string, error) {
	switch {
	case ver >= V1_3 && ver <= V1_7:
		return fmt.Sprintf("1.%d", int(ver)), nil
	case ver == V2_0:
		return "2.0", nil
	}
	return "", errVersion
}

func (ver Version) String() string {
	s, err := ver.ToString()
	if err != nil {
		return fmt.Sprintf("Version(%d)", int(ver))
	}
	return s
}

// VersionError is returned when trying to use a feature in a PDF file which
// is not supported by the PDF version used.
type VersionError struct {
	Operation string
	Earliest  Version
}

func (err *VersionError) Error() string {
	return fmt.Sprintf("%s requires PDF version %s or newer", err.Operation, err.Earliest)
}

// CheckVersion checks whether the PDF file being written has version
// minVersion or later.  If the version is new enough, nil is returned.
// Otherwise a [VersionError] for the given operation is returned.
func CheckVersion(w *Writer, operation string, minVersion Version) error {
	if w.GetVersion() >= minVersion {
		return nil
	}
	return &VersionError{Operation: operation, Earliest: minVersion}
}

var (
	errVersion          = errors.New("unsupported PDF version")
	errInvalidReference = errors.New("invalid reference")
	errClosed           = errors.New("PDF writer is closed")
	errOpenStream       = errors.New("a stream is still open")
)
