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

import "testing"

func TestPointerDescend(t *testing.T) {
	root := NewRoot()
	a := NewStruct("a")
	b := NewStruct("b")
	b.InsertField(NewValue("c", Value{Type: TypeInt, Int: 9}))
	a.InsertField(b)
	root.InsertField(a)

	got, err := root.Pointer("a/b/c")
	if err != nil {
		t.Fatal(err)
	}
	if got.Value.Int != 9 {
		t.Fatalf("got %d, want 9", got.Value.Int)
	}
}

func TestPointerNoSuchField(t *testing.T) {
	root := NewRoot()
	_, err := root.Pointer("missing")
	nf, ok := err.(*NoSuchFieldError)
	if !ok {
		t.Fatalf("got %T, want *NoSuchFieldError", err)
	}
	if nf.Missing != "missing" {
		t.Fatalf("got missing=%q", nf.Missing)
	}
}

func TestPointerIntoValue(t *testing.T) {
	root := NewRoot()
	root.InsertField(NewValue("leaf", Value{Type: TypeInt, Int: 1}))
	_, err := root.Pointer("leaf/deeper")
	nf, ok := err.(*NoSuchFieldError)
	if !ok {
		t.Fatalf("got %T, want *NoSuchFieldError", err)
	}
	if nf.Missing != "deeper" {
		t.Fatalf("got missing=%q", nf.Missing)
	}
}

func TestInsertFieldFailsOnValue(t *testing.T) {
	v := NewValue("x", Value{Type: TypeInt, Int: 1})
	err := v.InsertField(NewValue("y", Value{Type: TypeInt, Int: 2}))
	if err == nil {
		t.Fatal("expected error inserting into a Value field")
	}
}

func TestApplyOverridesPreservesOrder(t *testing.T) {
	root := NewRoot()
	root.InsertField(NewValue("first", Value{Type: TypeInt, Int: 1}))
	root.InsertField(NewValue("value", Value{Type: TypeInt, Int: 0}))
	root.InsertField(NewValue("last", Value{Type: TypeInt, Int: 3}))
	root.InsertField(NewValue("override:value", Value{Type: TypeInt, Int: 42}))

	ApplyOverrides(root)
	if len(root.Children) != 3 {
		t.Fatalf("got %d children, want 3", len(root.Children))
	}
	names := []string{root.Children[0].Name, root.Children[1].Name, root.Children[2].Name}
	want := []string{"first", "value", "last"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got order %v, want %v", names, want)
		}
	}
	if root.Children[1].Value.Int != 42 {
		t.Fatalf("value = %d, want 42", root.Children[1].Value.Int)
	}
}
