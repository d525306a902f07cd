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
	"encoding/json"
	"fmt"
	"strconv"
)

// JSONOptions controls the tree transforms applied before emission
// and the output formatting (spec.md §6's formatting_options).
type JSONOptions struct {
	ApplyOverrides     bool
	MergeDuplicateKeys bool
	Pretty             bool
}

// DefaultJSONOptions matches spec.md §6's defaults of (true, true, true).
func DefaultJSONOptions() JSONOptions {
	return JSONOptions{ApplyOverrides: true, MergeDuplicateKeys: true, Pretty: true}
}

// ToJSON renders a decoded tree as JSON (spec.md §4.9). ApplyOverrides
// and MergeFields both rewrite f.Children in place (spec.md §3), so
// root itself is mutated by this call when either transform is
// enabled; callers that need the pre-transform tree should clone it
// first.
func ToJSON(root *Field, opts JSONOptions) ([]byte, error) {
	work := root
	if opts.MergeDuplicateKeys {
		work = MergeFields(work)
	}
	if opts.ApplyOverrides {
		work = ApplyOverrides(work)
	}

	var buf bytes.Buffer
	s := &scratch{}
	if err := emitJSON(&buf, work, s); err != nil {
		return nil, err
	}
	if !opts.Pretty {
		return buf.Bytes(), nil
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf.Bytes(), "", "  "); err != nil {
		return buf.Bytes(), nil
	}
	return pretty.Bytes(), nil
}

// scratch is a reusable float-formatting buffer, grounded on
// ion.reader's scratch helper: strconv.AppendFloat with 'g' and -1
// precision round-trips a float32/float64 through its shortest
// decimal representation.
type scratch struct {
	buf []byte
}

// f32 formats f the way Rust's `{:?}` Debug formatter renders an f32:
// the shortest round-trip decimal, but always with a fractional part,
// so 1.0 reads back as "1.0" rather than AppendFloat's bare "1".
func (s *scratch) f32(f float32) string {
	s.buf = strconv.AppendFloat(s.buf[:0], float64(f), 'g', -1, 32)
	if !bytes.ContainsAny(s.buf, ".eE") {
		s.buf = append(s.buf, '.', '0')
	}
	return string(s.buf)
}

func emitJSON(buf *bytes.Buffer, f *Field, s *scratch) error {
	switch f.Kind {
	case KindValue:
		return emitValueJSON(buf, f.Value, s)
	case KindMerged:
		buf.WriteByte('[')
		for i, c := range f.Children {
			if i > 0 {
				buf.WriteByte(',')
			}
			if c.Kind != KindValue {
				if err := emitJSON(buf, c, s); err != nil {
					return err
				}
				continue
			}
			if err := emitValueJSON(buf, c.Value, s); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case KindStruct:
		buf.WriteByte('{')
		for i, c := range f.Children {
			if i > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(c.Name)
			if err != nil {
				return err
			}
			buf.Write(name)
			buf.WriteByte(':')
			if err := emitJSON(buf, c, s); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		return fmt.Errorf("blk: unknown field kind %v", f.Kind)
	}
}

func emitValueJSON(buf *bytes.Buffer, v Value, s *scratch) error {
	switch v.Type {
	case TypeStr:
		enc, err := json.Marshal(v.Str)
		if err != nil {
			return err
		}
		buf.Write(enc)
	case TypeInt:
		buf.WriteString(strconv.FormatInt(int64(v.Int), 10))
	case TypeLong:
		buf.WriteString(strconv.FormatInt(v.Long, 10))
	case TypeFloat:
		buf.WriteString(s.f32(v.Float))
	case TypeBool:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case TypeFloat2:
		writeFloatArray(buf, s, v.Float2[:])
	case TypeFloat3:
		writeFloatArray(buf, s, v.Float3[:])
	case TypeFloat4:
		writeFloatArray(buf, s, v.Float4[:])
	case TypeInt2:
		writeIntArray(buf, v.Int2[:])
	case TypeInt3:
		writeIntArray(buf, v.Int3[:])
	case TypeColor:
		buf.WriteByte('[')
		fmt.Fprintf(buf, "%d,%d,%d,%d", v.Color.R, v.Color.G, v.Color.B, v.Color.A)
		buf.WriteByte(']')
	case TypeFloat12:
		buf.WriteByte('[')
		for row := 0; row < 4; row++ {
			if row > 0 {
				buf.WriteByte(',')
			}
			writeFloatArray(buf, s, v.Float12[row*3:row*3+3])
		}
		buf.WriteByte(']')
	default:
		return &BadValueError{Tag: byte(v.Type)}
	}
	return nil
}

func writeFloatArray(buf *bytes.Buffer, s *scratch, vals []float32) {
	buf.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(s.f32(v))
	}
	buf.WriteByte(']')
}

func writeIntArray(buf *bytes.Buffer, vals []int32) {
	buf.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.FormatInt(int64(v), 10))
	}
	buf.WriteByte(']')
}
