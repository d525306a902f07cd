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

import "github.com/axiangcoding/wt-blk/vromf"

// VersionInfo pairs an archive path with the metadata its outer
// header carried.
type VersionInfo struct {
	Path string
	Meta vromf.Metadata
}

// QueryVersions returns the version parsed from this archive's outer
// header, plus one entry for every nested VROMF discovered directly
// among its inner members (spec.md §4.10; the nested-archive
// recursion is a feature the distilled spec mentions only as "if
// applicable" and this package resolves by attempting FromBytes on
// any member whose path looks like a nested archive). Recursion goes
// one level deep only: a nested archive's own nested members are not
// queried.
//
// A member that looks like a nested VROMF but fails to decode is
// skipped rather than treated as fatal to the outer query: most such
// members are false positives (a renamed or unrelated file sharing
// the naming convention), and the caller is asking about versions,
// not requesting a full unpack.
func (u *Unpacker) QueryVersions() []VersionInfo {
	out := []VersionInfo{{Path: u.Path, Meta: u.Meta}}
	for _, f := range u.Files {
		if !isNestedVromf(f.Path) {
			continue
		}
		nested, err := FromBytes(f.Path, f.Bytes)
		if err != nil {
			continue
		}
		out = append(out, VersionInfo{Path: nested.Path, Meta: nested.Meta})
		nested.Close()
	}
	return out
}
