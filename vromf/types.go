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

// Package vromf decodes the outer VROMF container (spec.md §4.3) and
// its inner file table (spec.md §4.4).
//
// The layering mirrors ion/blockfmt's split between a Trailer (offset
// tables describing where things live) and the block codec that
// actually inflates bytes: DecodeOuter strips obfuscation/compression
// to produce a flat payload, and DecodeInner walks that payload's
// directory structure to produce the member list.
package vromf

import "fmt"

// HeaderType distinguishes the two outer-header shapes (spec.md §3).
type HeaderType int

const (
	HeaderUnknown HeaderType = iota
	HeaderSimple
	HeaderExtended
)

func (h HeaderType) String() string {
	switch h {
	case HeaderSimple:
		return "simple"
	case HeaderExtended:
		return "extended"
	default:
		return "unknown"
	}
}

// Platform identifies the archive's target platform. The core decoder
// treats this as an opaque identifier (spec.md §3): DecodeOuter
// records it in Metadata and does not validate it.
type Platform uint32

func (p Platform) String() string {
	return fmt.Sprintf("platform(0x%08x)", uint32(p))
}

// Packing describes how the inner payload is stored: whether it was
// obfuscated, zstd-compressed, both, or neither.
type Packing struct {
	IsCompressed bool
	IsObfuscated bool
}

func (p Packing) String() string {
	switch {
	case p.IsCompressed && p.IsObfuscated:
		return "obfuscated+zstd"
	case p.IsCompressed:
		return "zstd"
	case p.IsObfuscated:
		return "obfuscated"
	default:
		return "plain"
	}
}

// Version is the 4-byte version quad carried by an Extended header.
// On disk the four bytes are stored reversed (build, patch, minor,
// major); the decoder reverses them so Version.Major is the most
// significant component (spec.md §9).
type Version struct {
	Major, Minor, Patch, Build uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Build)
}

// Metadata is everything DecodeOuter learns about an archive's outer
// header, independent of its contents.
type Metadata struct {
	HeaderType HeaderType
	Platform   Platform
	Packing    Packing
	// Version is non-nil only when HeaderType is HeaderExtended.
	Version *Version
}

// InnerFile is one logical file recovered from a VROMF's inner
// directory (spec.md §4.4). Ordering of a []InnerFile slice always
// matches the order the inner directory listed them in.
type InnerFile struct {
	Path  string
	Bytes []byte
}
