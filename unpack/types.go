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

// Package unpack orchestrates the vromf and blk packages into the
// single-archive façade described by spec.md §4.10: open an archive,
// discover its shared name-map and zstd dictionary, then fan out
// across members decoding and rendering each recognised BLK payload.
package unpack

import "github.com/axiangcoding/wt-blk/blk"

// FileType is the tag byte preceding every BLK payload (spec.md §4.10).
type FileType byte

const (
	FileTypeFatPlain     FileType = 0x01
	FileTypeSlimPlain    FileType = 0x02
	FileTypeSlimZstd     FileType = 0x03
	FileTypeSlimZstdDict FileType = 0x04
	FileTypeFatZstd      FileType = 0x05
)

func (ft FileType) valid() bool {
	switch ft {
	case FileTypeFatPlain, FileTypeSlimPlain, FileTypeSlimZstd, FileTypeSlimZstdDict, FileTypeFatZstd:
		return true
	default:
		return false
	}
}

// IsSlim reports whether ft is one of the slim-dialect tags.
func (ft FileType) IsSlim() bool {
	switch ft {
	case FileTypeSlimPlain, FileTypeSlimZstd, FileTypeSlimZstdDict:
		return true
	default:
		return false
	}
}

// IsZstd reports whether ft's payload is zstd-framed.
func (ft FileType) IsZstd() bool {
	switch ft {
	case FileTypeSlimZstd, FileTypeSlimZstdDict, FileTypeFatZstd:
		return true
	default:
		return false
	}
}

// IsFatZstd reports the one dialect that needs an extra leading byte
// skipped after decompression (spec.md §4.10).
func (ft FileType) IsFatZstd() bool {
	return ft == FileTypeFatZstd
}

// OutputFormat selects how unpack_all/unpack_one render each BLK
// member (spec.md §6).
type OutputFormat int

const (
	FormatRaw OutputFormat = iota
	FormatJSON
	FormatBlkText
)

// Options bundles the output format, JSON formatting knobs, and the
// strict/lenient per-file error policy (spec.md §7, plus the
// supplemented Strict knob described alongside it).
type Options struct {
	Format OutputFormat
	JSON   blk.JSONOptions
	// Strict aborts unpack_all on the first per-file error instead of
	// recovering it locally as a diagnostic (spec.md §7's batch
	// policy).
	Strict bool
}

// DefaultOptions renders raw bytes with no BLK decoding, matching an
// absent format? per spec.md §4.10's "format" being optional.
func DefaultOptions() Options {
	return Options{Format: FormatRaw, JSON: blk.DefaultJSONOptions()}
}

// Entry is one decoded result from unpack_all/unpack_one: Bytes holds
// the rendered output (or the raw member bytes, on recovered
// per-file error or FormatRaw), and Err is non-nil when that member's
// decode failed and was recovered locally.
type Entry struct {
	Path  string
	Bytes []byte
	Err   error
}
