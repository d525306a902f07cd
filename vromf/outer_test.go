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

package vromf

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func buildSimplePlain(t *testing.T, body []byte) []byte {
	t.Helper()
	var buf [16]byte
	binary.LittleEndian.PutUint32(buf[0:4], magicSimple)
	binary.LittleEndian.PutUint32(buf[4:8], 0) // platform
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(body)))
	binary.LittleEndian.PutUint32(buf[12:16], packPlain)
	return append(buf[:], body...)
}

func buildSimpleZstd(t *testing.T, body []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		t.Fatal(err)
	}
	frame := enc.EncodeAll(body, nil)

	var buf [16]byte
	binary.LittleEndian.PutUint32(buf[0:4], magicSimple)
	binary.LittleEndian.PutUint32(buf[4:8], 0)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(body)))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(len(frame)<<packShiftBits)|packZstd)
	return append(buf[:], frame...)
}

func buildExtended(t *testing.T, body []byte, version Version) []byte {
	t.Helper()
	var buf [24]byte
	binary.LittleEndian.PutUint32(buf[0:4], magicExtended)
	binary.LittleEndian.PutUint32(buf[4:8], 0)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(body)))
	binary.LittleEndian.PutUint32(buf[12:16], packPlain) // ext_size = 0 -> remaining bytes
	binary.LittleEndian.PutUint16(buf[16:18], 24)
	binary.LittleEndian.PutUint16(buf[18:20], 0)
	buf[20] = version.Build
	buf[21] = version.Patch
	buf[22] = version.Minor
	buf[23] = version.Major
	return append(buf[:], body...)
}

func TestDecodeOuterSimplePlain(t *testing.T) {
	body := []byte("hello inner payload")
	file := buildSimplePlain(t, body)

	payload, meta, err := DecodeOuter(file)
	if err != nil {
		t.Fatal(err)
	}
	if string(payload) != string(body) {
		t.Fatalf("got %q, want %q", payload, body)
	}
	if meta.HeaderType != HeaderSimple {
		t.Fatalf("got header type %v", meta.HeaderType)
	}
	if meta.Packing.IsCompressed || meta.Packing.IsObfuscated {
		t.Fatalf("expected plain packing, got %v", meta.Packing)
	}
}

func TestDecodeOuterSimpleZstd(t *testing.T) {
	body := []byte("this is the decompressed inner payload, repeated for compressibility, repeated for compressibility")
	file := buildSimpleZstd(t, body)

	payload, meta, err := DecodeOuter(file)
	if err != nil {
		t.Fatal(err)
	}
	if string(payload) != string(body) {
		t.Fatalf("got %q, want %q", payload, body)
	}
	if !meta.Packing.IsCompressed {
		t.Fatalf("expected compressed packing, got %v", meta.Packing)
	}
}

func TestDecodeOuterExtendedVersion(t *testing.T) {
	body := []byte("extended body")
	want := Version{Major: 2, Minor: 21, Patch: 0, Build: 117}
	file := buildExtended(t, body, want)

	payload, meta, err := DecodeOuter(file)
	if err != nil {
		t.Fatal(err)
	}
	if string(payload) != string(body) {
		t.Fatalf("got %q, want %q", payload, body)
	}
	if meta.Version == nil || *meta.Version != want {
		t.Fatalf("got version %+v, want %+v", meta.Version, want)
	}
}

func TestDecodeOuterBadMagic(t *testing.T) {
	file := make([]byte, 16)
	_, _, err := DecodeOuter(file)
	if !errors.Is(err, ErrBadMagic) {
		t.Fatalf("got %v, want ErrBadMagic", err)
	}
}

func TestDecodeOuterUnknownPacking(t *testing.T) {
	var buf [16]byte
	binary.LittleEndian.PutUint32(buf[0:4], magicSimple)
	binary.LittleEndian.PutUint32(buf[12:16], 0x3f) // invalid low 6 bits
	_, _, err := DecodeOuter(buf[:])
	if !errors.Is(err, ErrUnknownPacking) {
		t.Fatalf("got %v, want ErrUnknownPacking", err)
	}
}

func TestDecodeOuterTruncated(t *testing.T) {
	_, _, err := DecodeOuter([]byte{1, 2, 3})
	var oobErr *OutOfBoundsError
	if !errors.As(err, &oobErr) {
		t.Fatalf("got %v, want *OutOfBoundsError", err)
	}
}
