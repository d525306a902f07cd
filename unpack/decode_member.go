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

import (
	"fmt"
	"strings"

	"github.com/axiangcoding/wt-blk/blk"
	"github.com/axiangcoding/wt-blk/compr"
	"github.com/axiangcoding/wt-blk/vromf"
)

// decodeMember renders one inner file per opts (spec.md §4.10). A
// member is only a BLK-decode candidate when opts.Format is not
// FormatRaw, its path ends in ".blk", and its first byte is a
// recognised FileType tag; everything else passes through unchanged.
func decodeMember(u *Unpacker, f vromf.InnerFile, opts Options) Entry {
	if opts.Format == FormatRaw || !strings.HasSuffix(f.Path, ".blk") || len(f.Bytes) == 0 {
		return Entry{Path: f.Path, Bytes: f.Bytes}
	}

	tag := FileType(f.Bytes[0])
	if !tag.valid() {
		return Entry{Path: f.Path, Bytes: f.Bytes}
	}
	body := f.Bytes[1:]

	if tag.IsZstd() {
		var decompressed []byte
		var err error
		if tag == FileTypeSlimZstdDict {
			if u.Dict == nil {
				return Entry{Path: f.Path, Bytes: f.Bytes, Err: &MissingDictionaryError{Path: f.Path}}
			}
			decompressed, err = u.Dict.Decode(body)
		} else {
			decompressed, err = compr.DecodeStandalone(body)
		}
		if err != nil {
			return Entry{Path: f.Path, Bytes: f.Bytes, Err: err}
		}
		body = decompressed
		if tag.IsFatZstd() {
			if len(body) == 0 {
				return Entry{Path: f.Path, Bytes: f.Bytes, Err: fmt.Errorf("unpack: %s: empty payload after fat-zstd decompression", f.Path)}
			}
			body = body[1:]
		}
	}

	if tag.IsSlim() && u.NameMap == nil {
		return Entry{Path: f.Path, Bytes: f.Bytes, Err: &MissingNameMapError{Path: f.Path}}
	}

	root, err := blk.Parse(body, tag.IsSlim(), u.NameMap)
	if err != nil {
		return Entry{Path: f.Path, Bytes: f.Bytes, Err: err}
	}

	var out []byte
	switch opts.Format {
	case FormatJSON:
		out, err = blk.ToJSON(root, opts.JSON)
	case FormatBlkText:
		out, err = blk.ToText(root)
	default:
		return Entry{Path: f.Path, Bytes: f.Bytes}
	}
	if err != nil {
		return Entry{Path: f.Path, Bytes: f.Bytes, Err: err}
	}
	return Entry{Path: f.Path, Bytes: out}
}
