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

import "golang.org/x/exp/slices"

// Equal reports whether v and x carry the same type and value,
// mirroring ion.Datum.Equal's role as a semantic (not structural)
// comparison. The fixed-size array fields are compared with
// slices.Equal rather than Go's built-in array `==` so that adding a
// new multi-float variant only needs a new case here, not a new
// comparison operator.
func (v Value) Equal(x Value) bool {
	if v.Type != x.Type {
		return false
	}
	switch v.Type {
	case TypeStr:
		return v.Str == x.Str
	case TypeInt:
		return v.Int == x.Int
	case TypeFloat:
		return v.Float == x.Float
	case TypeFloat2:
		return slices.Equal(v.Float2[:], x.Float2[:])
	case TypeFloat3:
		return slices.Equal(v.Float3[:], x.Float3[:])
	case TypeFloat4:
		return slices.Equal(v.Float4[:], x.Float4[:])
	case TypeInt2:
		return slices.Equal(v.Int2[:], x.Int2[:])
	case TypeInt3:
		return slices.Equal(v.Int3[:], x.Int3[:])
	case TypeBool:
		return v.Bool == x.Bool
	case TypeColor:
		return v.Color == x.Color
	case TypeFloat12:
		return slices.Equal(v.Float12[:], x.Float12[:])
	case TypeLong:
		return v.Long == x.Long
	default:
		return false
	}
}

// Equal reports whether f and x are semantically the same tree: same
// name, same kind, and (for Value fields) the same decoded value, or
// (for Struct/Merged fields) the same children in the same order.
func (f *Field) Equal(x *Field) bool {
	if f == nil || x == nil {
		return f == x
	}
	if f.Name != x.Name || f.Kind != x.Kind {
		return false
	}
	if f.Kind == KindValue {
		return f.Value.Equal(x.Value)
	}
	if len(f.Children) != len(x.Children) {
		return false
	}
	for i := range f.Children {
		if !f.Children[i].Equal(x.Children[i]) {
			return false
		}
	}
	return true
}
