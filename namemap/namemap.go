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

// Package namemap decodes the VROMF "nm" member (spec.md §4.5): a
// zstd-framed, NUL-separated string table that is shared, by shared
// handle, across every slim-dialect BLK decode performed against the
// enclosing archive.
//
// A NameMap's exported fields are not modified after Decode returns;
// callers hold it by pointer and never mutate it, the same sharing
// discipline ion.Symtab uses for its interned string table. The one
// internal state written later is the reverse index, which Index and
// Reverse build on their first call; Reverse hands out a
// golang.org/x/exp/maps clone of it rather than the map itself.
package namemap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/axiangcoding/wt-blk/binfmt"
	"github.com/axiangcoding/wt-blk/compr"
	"golang.org/x/exp/maps"
)

// ErrBadUtf8 is returned when a decoded name is not valid UTF-8.
var ErrBadUtf8 = errors.New("namemap: name is not valid utf-8")

// NameMap is the decoded "nm" member of a VROMF archive.
type NameMap struct {
	// Binary is the decompressed names-data region, needed for
	// slim-dialect Str references (spec.md §4.6), which index
	// directly into this buffer rather than into a BLK's own
	// params-blob.
	Binary []byte
	// Parsed is the ordered list of strings obtained by splitting
	// Binary on NUL bytes.
	Parsed []string

	// BlobDigest and DictDigest are the two informational digests
	// that precede the zstd frame. Neither is verified internally
	// (spec.md §9); they are exposed for callers who want to check
	// them out-of-band.
	BlobDigest uint64
	DictDigest [32]byte

	toindex map[string]int
}

// CountMismatch is a non-fatal diagnostic: the decoded names_count
// header disagreed with the number of NUL-separated strings actually
// present. Per spec.md §7 this is "warn only" and never aborts Decode.
type CountMismatch struct {
	Declared, Actual int
}

func (m *CountMismatch) Error() string {
	return fmt.Sprintf("namemap: declared names_count=%d, actual=%d", m.Declared, m.Actual)
}

// Decode parses the raw bytes of an "nm" archive member.
//
// Layout (spec.md §4.5):
//
//	 0..8   u64   names-blob digest            (informational)
//	 8..40  u8[32] dictionary digest            (informational)
//	40..    zstd frame (stand-alone, no dict) decompressing to:
//	        ULEB128 names_count
//	        ULEB128 names_data_size
//	        names_data_size bytes of NUL-separated UTF-8 names
//
// Decode returns a non-nil *CountMismatch as a second return value
// when names_count disagrees with the actual split count; this is
// never fatal and nm is still fully populated.
func Decode(raw []byte) (*NameMap, error) {
	if len(raw) < 40 {
		return nil, fmt.Errorf("namemap: input too short (%d bytes)", len(raw))
	}
	nm := &NameMap{
		BlobDigest: binary.LittleEndian.Uint64(raw[0:8]),
	}
	copy(nm.DictDigest[:], raw[8:40])

	decompressed, err := compr.DecodeStandalone(raw[40:])
	if err != nil {
		return nil, fmt.Errorf("namemap: %w", err)
	}

	n, namesCount, err := binfmt.ReadUleb128(decompressed)
	if err != nil {
		return nil, fmt.Errorf("namemap: reading names_count: %w", err)
	}
	rest := decompressed[n:]

	n, dataSize, err := binfmt.ReadUleb128(rest)
	if err != nil {
		return nil, fmt.Errorf("namemap: reading names_data_size: %w", err)
	}
	rest = rest[n:]

	if uint64(len(rest)) < dataSize {
		return nil, fmt.Errorf("namemap: names_data_size %d exceeds remaining %d bytes", dataSize, len(rest))
	}
	nm.Binary = rest[:dataSize]

	parts := bytes.Split(bytes.TrimRight(nm.Binary, "\x00"), []byte{0})
	nm.Parsed = make([]string, 0, len(parts))
	for _, p := range parts {
		if !utf8.Valid(p) {
			return nil, ErrBadUtf8
		}
		nm.Parsed = append(nm.Parsed, string(p))
	}
	if len(nm.Binary) == 0 {
		nm.Parsed = nil
	}

	var mismatch *CountMismatch
	if uint64(len(nm.Parsed)) != namesCount {
		mismatch = &CountMismatch{Declared: int(namesCount), Actual: len(nm.Parsed)}
	}
	return nm, wrapMismatch(mismatch)
}

func wrapMismatch(m *CountMismatch) error {
	if m == nil {
		return nil
	}
	return m
}

// Len returns the number of parsed names.
func (nm *NameMap) Len() int {
	if nm == nil {
		return 0
	}
	return len(nm.Parsed)
}

// Get returns the i'th name, per spec.md §3's invariant that every
// parameter record's name_id is < names.len().
func (nm *NameMap) Get(i int) (string, bool) {
	if nm == nil || i < 0 || i >= len(nm.Parsed) {
		return "", false
	}
	return nm.Parsed[i], true
}

// Index returns the first index of name within the map, building a
// reverse lookup table lazily on first use — mirrors
// ion.Symtab.getBytes's lazy-init pattern.
func (nm *NameMap) Index(name string) (int, bool) {
	if nm == nil {
		return 0, false
	}
	if nm.toindex == nil {
		nm.toindex = make(map[string]int, len(nm.Parsed))
		for i, s := range nm.Parsed {
			if _, exists := nm.toindex[s]; !exists {
				nm.toindex[s] = i
			}
		}
	}
	i, ok := nm.toindex[name]
	return i, ok
}

// Reverse returns a defensive copy of the name-to-index lookup table,
// built lazily the same way Index builds it. Mirrors
// ion.Symtab.init's use of maps.Clone to hand callers an independent
// map they can't use to corrupt the shared NameMap's internal state.
func (nm *NameMap) Reverse() map[string]int {
	if nm == nil {
		return nil
	}
	nm.Index("") // ensure nm.toindex is built
	return maps.Clone(nm.toindex)
}

// StringAt reads a NUL-terminated UTF-8 string out of nm.Binary
// starting at off, as used by the slim-dialect Str value (spec.md
// §4.6).
func (nm *NameMap) StringAt(off uint32) (string, error) {
	if nm == nil {
		return "", fmt.Errorf("namemap: no name-map available")
	}
	if int(off) > len(nm.Binary) {
		return "", fmt.Errorf("namemap: offset %d out of bounds (len %d)", off, len(nm.Binary))
	}
	rest := nm.Binary[off:]
	idx := bytes.IndexByte(rest, 0)
	if idx < 0 {
		return "", fmt.Errorf("namemap: unterminated string at offset %d", off)
	}
	return string(rest[:idx]), nil
}
