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

package compr

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func mustEncode(t *testing.T, src []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		t.Fatal(err)
	}
	return enc.EncodeAll(src, nil)
}

func TestDecodeStandalone(t *testing.T) {
	src := bytes.Repeat([]byte("the quick brown fox "), 200)
	frame := mustEncode(t, src)
	got, err := DecodeStandalone(frame)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, src) {
		t.Fatal("mismatch")
	}
}

func TestDictDecoder(t *testing.T) {
	dict := bytes.Repeat([]byte("dictionary-content-seed"), 50)
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1), zstd.WithEncoderDict(dict))
	if err != nil {
		t.Fatal(err)
	}
	src := []byte("small payload that benefits from a shared dictionary")
	frame := enc.EncodeAll(src, nil)

	dd, err := NewDictDecoder(dict)
	if err != nil {
		t.Fatal(err)
	}
	defer dd.Close()

	got, err := dd.Decode(frame)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, src) {
		t.Fatal("mismatch")
	}
}

func TestDictDecoderWrongDictFails(t *testing.T) {
	dict := bytes.Repeat([]byte("real-dict"), 50)
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1), zstd.WithEncoderDict(dict))
	if err != nil {
		t.Fatal(err)
	}
	frame := enc.EncodeAll([]byte("payload"), nil)

	dd, err := NewDictDecoder(bytes.Repeat([]byte("wrong-dict"), 50))
	if err != nil {
		t.Fatal(err)
	}
	defer dd.Close()
	if _, err := dd.Decode(frame); err == nil {
		t.Fatal("expected decode to fail with mismatched dictionary")
	}
}
