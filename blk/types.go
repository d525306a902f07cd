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

// Package blk decodes the nested binary configuration format carried
// inside BLK-dialect VROMF members: a tagged value table (this file
// and decode.go), a structural parser that rebuilds a tree from flat
// block descriptors (parse.go), a tree model supporting override and
// merge transforms (tree.go), and JSON/plaintext emitters (json.go,
// text.go).
//
// The value representation follows ion.Datum's tagged-union shape
// (a Type plus type-specific accessors) but, unlike Datum, decodes
// eagerly: BLK scalars are at most 48 bytes, so there is no benefit
// to ion's lazy raw-byte-slice deferral.
package blk

import "fmt"

// Type is the tag byte preceding every BLK value (spec.md §3).
type Type byte

const (
	TypeStr     Type = 0x01
	TypeInt     Type = 0x02
	TypeFloat   Type = 0x03
	TypeFloat2  Type = 0x04
	TypeFloat3  Type = 0x05
	TypeFloat4  Type = 0x06
	TypeInt2    Type = 0x07
	TypeInt3    Type = 0x08
	TypeBool    Type = 0x09
	TypeColor   Type = 0x0A
	TypeFloat12 Type = 0x0B
	TypeLong    Type = 0x0C
)

func (t Type) String() string {
	switch t {
	case TypeStr:
		return "Str"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeFloat2:
		return "Float2"
	case TypeFloat3:
		return "Float3"
	case TypeFloat4:
		return "Float4"
	case TypeInt2:
		return "Int2"
	case TypeInt3:
		return "Int3"
	case TypeBool:
		return "Bool"
	case TypeColor:
		return "Color"
	case TypeFloat12:
		return "Float12"
	case TypeLong:
		return "Long"
	default:
		return fmt.Sprintf("Type(0x%02x)", byte(t))
	}
}

// Color is the inline {r,g,b,a} byte quadruple of a Color value.
type Color struct {
	R, G, B, A byte
}

// Value is a single decoded BLK scalar. Exactly one field besides
// Type holds meaningful data, selected by Type.
type Value struct {
	Type Type

	Str     string
	Int     int32
	Float   float32
	Float2  [2]float32
	Float3  [3]float32
	Float4  [4]float32
	Int2    [2]int32
	Int3    [3]int32
	Bool    bool
	Color   Color
	Float12 [12]float32
	Long    int64
}

// Kind distinguishes the three BlkField shapes (spec.md §3).
type Kind int

const (
	KindValue Kind = iota
	KindStruct
	KindMerged
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "Value"
	case KindStruct:
		return "Struct"
	case KindMerged:
		return "Merged"
	default:
		return "Unknown"
	}
}

// Field is one node of a decoded BLK tree: a scalar Value, an
// ordered Struct of children, or a Merged view synthesized by
// MergeFields to drive JSON array emission (never produced by
// parsing, never valid input to the plaintext emitter).
type Field struct {
	Name     string
	Kind     Kind
	Value    Value
	Children []*Field
}

// NewRoot returns an empty root Struct, per spec.md §3's invariant
// that root is always a Struct named "root".
func NewRoot() *Field {
	return &Field{Name: "root", Kind: KindStruct}
}

// NewValue wraps v as a named Value field.
func NewValue(name string, v Value) *Field {
	return &Field{Name: name, Kind: KindValue, Value: v}
}

// NewStruct returns an empty named Struct field.
func NewStruct(name string) *Field {
	return &Field{Name: name, Kind: KindStruct}
}

// InsertField appends child to f's children. It fails if f is a
// Value, which per spec.md §3 can never have children.
func (f *Field) InsertField(child *Field) error {
	if f.Kind == KindValue {
		return fmt.Errorf("blk: cannot insert into a Value field %q", f.Name)
	}
	f.Children = append(f.Children, child)
	return nil
}

// Child returns the first direct child named name, if any.
func (f *Field) Child(name string) (*Field, bool) {
	for _, c := range f.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
