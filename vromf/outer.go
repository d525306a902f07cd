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

package vromf

import (
	"encoding/binary"
	"fmt"

	"github.com/axiangcoding/wt-blk/binfmt"
	"github.com/axiangcoding/wt-blk/compr"
)

const (
	magicSimple   uint32 = 0x45465356 // "VSFE" — placeholder wire constant, see DESIGN.md
	magicExtended uint32 = 0x32465356 // "VSF2"
)

// packing bit layout within the "packed" word: the low 6 bits select
// the pack type, the remaining bits (>>6) are the extended-header
// size. This matches spec.md §4.3's `(extended_header_size << 6) |
// pack_type_bits`.
const (
	packTypeMask  = 0x3f
	packShiftBits = 6
)

const (
	packZstd              = 0
	packObfuscated        = 1
	packObfuscatedAndZstd = 2
	packPlain             = 3
)

// DecodeOuter parses a VROMF's outer header and returns the inner
// payload — fully deobfuscated and decompressed — along with the
// metadata recovered from the header (spec.md §4.3).
func DecodeOuter(file []byte) ([]byte, Metadata, error) {
	hdr, err := slice("outer header", file, 0, 16)
	if err != nil {
		return nil, Metadata{}, err
	}

	magic := binary.LittleEndian.Uint32(hdr[0:4])
	var headerType HeaderType
	switch magic {
	case magicSimple:
		headerType = HeaderSimple
	case magicExtended:
		headerType = HeaderExtended
	default:
		return nil, Metadata{}, fmt.Errorf("%w: 0x%08x", ErrBadMagic, magic)
	}

	platform := Platform(binary.LittleEndian.Uint32(hdr[4:8]))
	size := int(binary.LittleEndian.Uint32(hdr[8:12]))
	packed := binary.LittleEndian.Uint32(hdr[12:16])

	extSize := int(packed >> packShiftBits)
	packType := packed & packTypeMask
	packing, err := decodePacking(packType)
	if err != nil {
		return nil, Metadata{}, err
	}

	meta := Metadata{
		HeaderType: headerType,
		Platform:   platform,
		Packing:    packing,
	}

	headerEnd := 16
	if headerType == HeaderExtended {
		extHdr, err := slice("extended header", file, 16, 24)
		if err != nil {
			return nil, Metadata{}, err
		}
		// extHdr[0:2] header_size and extHdr[2:4] flags are
		// informational only, per spec.md §4.3.
		var v Version
		// The bytes are stored reversed, build first and major
		// last; reverse them at read time (spec.md §9).
		v.Build = extHdr[4]
		v.Patch = extHdr[5]
		v.Minor = extHdr[6]
		v.Major = extHdr[7]
		meta.Version = &v
		headerEnd = 24
	}

	var payload []byte
	switch {
	case headerType == HeaderExtended && extSize == 0:
		payload, err = slice("payload (extended, remaining)", file, headerEnd, len(file))
	case headerType == HeaderExtended && extSize > 0:
		payload, err = slice("payload (extended, ext_size)", file, headerEnd, headerEnd+extSize)
	case headerType == HeaderSimple && packing.IsCompressed:
		payload, err = slice("payload (simple, compressed)", file, headerEnd, headerEnd+extSize)
	default: // Simple, uncompressed
		payload, err = slice("payload (simple, uncompressed)", file, headerEnd, headerEnd+size)
	}
	if err != nil {
		return nil, Metadata{}, err
	}

	if packing.IsObfuscated {
		mut := append([]byte(nil), payload...)
		binfmt.Deobfuscate(mut)
		payload = mut
	}
	if packing.IsCompressed {
		decompressed, err := compr.DecodeStandalone(payload)
		if err != nil {
			return nil, Metadata{}, fmt.Errorf("vromf: decompressing outer payload: %w", err)
		}
		payload = decompressed
	}

	return payload, meta, nil
}

func decodePacking(packType uint32) (Packing, error) {
	switch packType {
	case packZstd:
		return Packing{IsCompressed: true}, nil
	case packObfuscated:
		return Packing{IsObfuscated: true}, nil
	case packObfuscatedAndZstd:
		return Packing{IsCompressed: true, IsObfuscated: true}, nil
	case packPlain:
		return Packing{}, nil
	default:
		return Packing{}, fmt.Errorf("%w: 0x%x", ErrUnknownPacking, packType)
	}
}
