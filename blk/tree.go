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

import "strings"

const overridePrefix = "override:"

// Pointer descends f by exact name match, one path segment at a
// time, first match wins (spec.md §4.8, §9's "pointer paths" note).
// Deeper disambiguation among duplicate siblings is left as a future
// extension, per the same design note.
func (f *Field) Pointer(path string) (*Field, error) {
	cur := f
	for _, seg := range strings.Split(path, "/") {
		if cur.Kind == KindValue {
			return nil, &NoSuchFieldError{Path: path, Missing: seg}
		}
		child, ok := cur.Child(seg)
		if !ok {
			return nil, &NoSuchFieldError{Path: path, Missing: seg}
		}
		cur = child
	}
	return cur, nil
}

// ApplyOverrides rewrites f in place: within every Struct, a child
// named "override:X" replaces the first sibling named X, inheriting
// X's name. Recurses depth-first. Overrides with no matching sibling
// are kept, renamed to X, and appended after all other children in
// the order they first appeared.
//
// Running ApplyOverrides twice is a no-op the second time, since the
// first pass leaves no "override:" prefixed names behind (spec.md §8
// invariant #6).
func ApplyOverrides(f *Field) *Field {
	if f.Kind != KindStruct {
		return f
	}
	for _, c := range f.Children {
		ApplyOverrides(c)
	}
	if len(f.Children) == 0 {
		return f
	}

	overrides := make(map[string]*Field)
	var overrideOrder []string
	for _, c := range f.Children {
		if target, ok := strings.CutPrefix(c.Name, overridePrefix); ok {
			if _, exists := overrides[target]; !exists {
				overrideOrder = append(overrideOrder, target)
			}
			overrides[target] = c
		}
	}
	if len(overrides) == 0 {
		return f
	}

	used := make(map[string]bool, len(overrides))
	out := make([]*Field, 0, len(f.Children))
	for _, c := range f.Children {
		if _, isOverride := strings.CutPrefix(c.Name, overridePrefix); isOverride {
			continue
		}
		if ov, ok := overrides[c.Name]; ok && !used[c.Name] {
			ov.Name = c.Name
			out = append(out, ov)
			used[c.Name] = true
			continue
		}
		out = append(out, c)
	}
	for _, target := range overrideOrder {
		if !used[target] {
			ov := overrides[target]
			ov.Name = target
			out = append(out, ov)
		}
	}
	f.Children = out
	return f
}

// MergeFields rewrites f in place: within every Struct, groups of two
// or more siblings sharing a name, adjacent or not, collapse into a single
// Merged(name, originals) placed at the first occurrence's position.
// Recurses depth-first, so nested structs are merged too. Applied
// before JSON emission (spec.md §4.8, §9's "Merged is a view
// concept").
func MergeFields(f *Field) *Field {
	if f.Kind != KindStruct {
		return f
	}
	for _, c := range f.Children {
		MergeFields(c)
	}
	if len(f.Children) == 0 {
		return f
	}

	groups := make(map[string][]*Field, len(f.Children))
	for _, c := range f.Children {
		groups[c.Name] = append(groups[c.Name], c)
	}

	seen := make(map[string]bool, len(f.Children))
	out := make([]*Field, 0, len(f.Children))
	for _, c := range f.Children {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		g := groups[c.Name]
		if len(g) >= 2 {
			out = append(out, &Field{Name: c.Name, Kind: KindMerged, Children: g})
		} else {
			out = append(out, c)
		}
	}
	f.Children = out
	return f
}
