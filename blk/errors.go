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

package blk

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBlockTable is returned when blocks_count is zero; the
	// root block must always exist (spec.md §4.7).
	ErrEmptyBlockTable = errors.New("blk: empty block table, root is missing")

	// ErrMissingNameMap is returned decoding a slim-dialect payload
	// with no shared NameMap available.
	ErrMissingNameMap = errors.New("blk: slim dialect requires a name map")

	// ErrMergedInPlaintext is returned by the plaintext emitter when
	// it encounters a Merged field, which has no block-syntax
	// representation (spec.md §4.9).
	ErrMergedInPlaintext = errors.New("blk: cannot emit a Merged field as block plaintext")
)

// BadValueError reports an unrecognized type_tag (spec.md §4.6).
type BadValueError struct {
	Tag byte
}

func (e *BadValueError) Error() string {
	return fmt.Sprintf("blk: unrecognized value type tag 0x%02x", e.Tag)
}

// NoSuchFieldError reports a failed Pointer descent (spec.md §4.8).
type NoSuchFieldError struct {
	Path    string
	Missing string
}

func (e *NoSuchFieldError) Error() string {
	return fmt.Sprintf("blk: no such field %q (missing segment %q)", e.Path, e.Missing)
}

// NameIDRangeError reports a params-info record whose name_id is out
// of range for the active name table (spec.md §8 invariant #4).
type NameIDRangeError struct {
	NameID, NamesLen int
}

func (e *NameIDRangeError) Error() string {
	return fmt.Sprintf("blk: name_id %d out of range for %d names", e.NameID, e.NamesLen)
}
