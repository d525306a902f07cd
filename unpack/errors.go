// Copyright (C) 2024 The wt-blk Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package unpack

import "fmt"

// FileNotInVromfError is returned by UnpackOne for an unknown path.
type FileNotInVromfError struct {
	Path string
}

func (e *FileNotInVromfError) Error() string {
	return fmt.Sprintf("unpack: %q is not present in this archive", e.Path)
}

// MissingNameMapError is returned decoding a slim-dialect member when
// the archive carries no "nm" member.
type MissingNameMapError struct {
	Path string
}

func (e *MissingNameMapError) Error() string {
	return fmt.Sprintf("unpack: %q is slim-dialect but archive has no name map", e.Path)
}

// MissingDictionaryError is returned decoding a dictionary-zstd member
// when the archive carries no "*.dict" member (spec.md §9).
type MissingDictionaryError struct {
	Path string
}

func (e *MissingDictionaryError) Error() string {
	return fmt.Sprintf("unpack: %q needs a zstd dictionary but archive has none", e.Path)
}
