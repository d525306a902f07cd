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
	"path"
	"strings"

	"github.com/axiangcoding/wt-blk/compr"
	"github.com/axiangcoding/wt-blk/namemap"
	"github.com/axiangcoding/wt-blk/vromf"
)

// Unpacker is a single opened archive, holding the immutable handles
// (name map, zstd dictionary) shared read-only across every member
// decode issued against it (spec.md §5, §9).
type Unpacker struct {
	Path  string
	Meta  vromf.Metadata
	Files []vromf.InnerFile

	// NameMap is nil when the archive carries no "nm" member.
	NameMap *namemap.NameMap
	// Dict is nil when the archive carries no "*.dict" member.
	Dict *compr.DictDecoder

	// NameMapWarning is set when the name map's declared names_count
	// disagreed with its actual contents (spec.md §7's "warn only"
	// NameCountMismatch).
	NameMapWarning error
}

// FromBytes runs the outer and inner VROMF decoders over data and
// discovers the optional name-map and dictionary members.
func FromBytes(archivePath string, data []byte) (*Unpacker, error) {
	payload, meta, err := vromf.DecodeOuter(data)
	if err != nil {
		return nil, fmt.Errorf("unpack: %s: %w", archivePath, err)
	}
	files, err := vromf.DecodeInner(payload)
	if err != nil {
		return nil, fmt.Errorf("unpack: %s: %w", archivePath, err)
	}

	u := &Unpacker{Path: archivePath, Meta: meta, Files: files}

	for _, f := range files {
		switch {
		case path.Base(f.Path) == "nm":
			nm, err := namemap.Decode(f.Bytes)
			if err != nil {
				if mismatch, ok := err.(*namemap.CountMismatch); ok {
					u.NameMapWarning = mismatch
				} else {
					return nil, fmt.Errorf("unpack: %s: decoding name map: %w", archivePath, err)
				}
			}
			u.NameMap = nm
		case strings.HasSuffix(f.Path, ".dict"):
			dec, err := compr.NewDictDecoder(f.Bytes)
			if err != nil {
				return nil, fmt.Errorf("unpack: %s: building dictionary decoder: %w", archivePath, err)
			}
			u.Dict = dec
		}
	}
	return u, nil
}

// Close releases the dictionary decoder's background goroutines, if
// one was built. Safe to call on an Unpacker with no dictionary.
func (u *Unpacker) Close() {
	if u.Dict != nil {
		u.Dict.Close()
	}
}

// UnpackOne decodes and renders the single named member.
func (u *Unpacker) UnpackOne(name string, opts Options) (Entry, error) {
	for _, f := range u.Files {
		if f.Path == name {
			return decodeMember(u, f, opts), nil
		}
	}
	return Entry{}, &FileNotInVromfError{Path: name}
}

// nestedVromfExt is the extension this package treats as a
// recursible nested archive, per the "any applicable" clause in
// spec.md §4.10's query_versions.
const nestedVromfExt = ".vromfs.bin"

func isNestedVromf(p string) bool {
	return strings.HasSuffix(p, nestedVromfExt) || path.Ext(p) == ".vromf"
}
