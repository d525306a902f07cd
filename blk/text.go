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
	"bytes"
	"strconv"
	"strings"
)

// ToText renders a decoded tree as the block-brace plaintext syntax
// (spec.md §4.9). Overrides are applied first since plaintext has no
// override notation of its own; duplicate-key merging is never
// applied here, and a Merged field reaching this emitter is an error
// (spec.md §9's "Merged is a view concept").
func ToText(root *Field) ([]byte, error) {
	work := ApplyOverrides(root)
	var buf bytes.Buffer
	s := &scratch{}
	for _, c := range work.Children {
		if err := emitText(&buf, c, 0, s); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func emitText(buf *bytes.Buffer, f *Field, depth int, s *scratch) error {
	indent := strings.Repeat("\t", depth)
	switch f.Kind {
	case KindMerged:
		return ErrMergedInPlaintext
	case KindValue:
		buf.WriteString(indent)
		buf.WriteString(f.Name)
		buf.WriteByte(':')
		buf.WriteString(valueText(f.Value, s))
		buf.WriteByte('\n')
		return nil
	case KindStruct:
		buf.WriteString(indent)
		buf.WriteString(f.Name)
		buf.WriteString(" {\n")
		for _, c := range f.Children {
			if err := emitText(buf, c, depth+1, s); err != nil {
				return err
			}
		}
		buf.WriteString(indent)
		buf.WriteString("}\n")
		return nil
	default:
		return &BadValueError{Tag: byte(f.Value.Type)}
	}
}

func valueText(v Value, s *scratch) string {
	switch v.Type {
	case TypeStr:
		return v.Str
	case TypeInt:
		return strconv.FormatInt(int64(v.Int), 10)
	case TypeLong:
		return strconv.FormatInt(v.Long, 10)
	case TypeFloat:
		return s.f32(v.Float)
	case TypeBool:
		return strconv.FormatBool(v.Bool)
	case TypeFloat2:
		return joinFloats(s, v.Float2[:])
	case TypeFloat3:
		return joinFloats(s, v.Float3[:])
	case TypeFloat4:
		return joinFloats(s, v.Float4[:])
	case TypeInt2:
		return joinInts(v.Int2[:])
	case TypeInt3:
		return joinInts(v.Int3[:])
	case TypeColor:
		return strings.Join([]string{
			strconv.Itoa(int(v.Color.R)),
			strconv.Itoa(int(v.Color.G)),
			strconv.Itoa(int(v.Color.B)),
			strconv.Itoa(int(v.Color.A)),
		}, ", ")
	case TypeFloat12:
		return joinFloats(s, v.Float12[:])
	default:
		return ""
	}
}

func joinFloats(s *scratch, vals []float32) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = s.f32(v)
	}
	return strings.Join(parts, ", ")
}

func joinInts(vals []int32) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatInt(int64(v), 10)
	}
	return strings.Join(parts, ", ")
}
