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
	"encoding/binary"
	"fmt"
	"math"

	"github.com/axiangcoding/wt-blk/namemap"
)

// DecodeValue converts a (type_tag, 4-byte payload) pair into a typed
// Value (spec.md §4.6). paramsBlob is the BLK's own out-of-line
// payload region; names is the shared name-map consulted only for
// slim-dialect Str values.
func DecodeValue(tag byte, payload [4]byte, paramsBlob []byte, names *namemap.NameMap, isSlim bool) (Value, error) {
	off := binary.LittleEndian.Uint32(payload[:])

	switch Type(tag) {
	case TypeStr:
		s, err := decodeStr(off, paramsBlob, names, isSlim)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: TypeStr, Str: s}, nil

	case TypeInt:
		return Value{Type: TypeInt, Int: int32(binary.LittleEndian.Uint32(payload[:]))}, nil

	case TypeFloat:
		return Value{Type: TypeFloat, Float: math.Float32frombits(binary.LittleEndian.Uint32(payload[:]))}, nil

	case TypeFloat2:
		blob, err := blobAt(paramsBlob, off, 8)
		if err != nil {
			return Value{}, err
		}
		var v Value
		v.Type = TypeFloat2
		v.Float2 = readFloats2(blob)
		return v, nil

	case TypeFloat3:
		blob, err := blobAt(paramsBlob, off, 12)
		if err != nil {
			return Value{}, err
		}
		var v Value
		v.Type = TypeFloat3
		v.Float3 = readFloats3(blob)
		return v, nil

	case TypeFloat4:
		blob, err := blobAt(paramsBlob, off, 16)
		if err != nil {
			return Value{}, err
		}
		var v Value
		v.Type = TypeFloat4
		v.Float4 = readFloats4(blob)
		return v, nil

	case TypeInt2:
		blob, err := blobAt(paramsBlob, off, 8)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: TypeInt2, Int2: [2]int32{
			int32(binary.LittleEndian.Uint32(blob[0:4])),
			int32(binary.LittleEndian.Uint32(blob[4:8])),
		}}, nil

	case TypeInt3:
		blob, err := blobAt(paramsBlob, off, 12)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: TypeInt3, Int3: [3]int32{
			int32(binary.LittleEndian.Uint32(blob[0:4])),
			int32(binary.LittleEndian.Uint32(blob[4:8])),
			int32(binary.LittleEndian.Uint32(blob[8:12])),
		}}, nil

	case TypeBool:
		return Value{Type: TypeBool, Bool: binary.LittleEndian.Uint32(payload[:]) != 0}, nil

	case TypeColor:
		return Value{Type: TypeColor, Color: Color{R: payload[0], G: payload[1], B: payload[2], A: payload[3]}}, nil

	case TypeFloat12:
		blob, err := blobAt(paramsBlob, off, 48)
		if err != nil {
			return Value{}, err
		}
		var v Value
		v.Type = TypeFloat12
		for i := 0; i < 12; i++ {
			v.Float12[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4 : i*4+4]))
		}
		return v, nil

	case TypeLong:
		blob, err := blobAt(paramsBlob, off, 8)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: TypeLong, Long: int64(binary.LittleEndian.Uint64(blob))}, nil

	default:
		return Value{}, &BadValueError{Tag: tag}
	}
}

func decodeStr(off uint32, paramsBlob []byte, names *namemap.NameMap, isSlim bool) (string, error) {
	if isSlim {
		if names == nil {
			return "", ErrMissingNameMap
		}
		return names.StringAt(off)
	}
	return readCStringAt(paramsBlob, off)
}

func blobAt(buf []byte, off uint32, n int) ([]byte, error) {
	start := int(off)
	end := start + n
	if start < 0 || end < start || end > len(buf) {
		return nil, fmt.Errorf("blk: params-blob range [%d:%d) exceeds blob of size %d", start, end, len(buf))
	}
	return buf[start:end], nil
}

func readCStringAt(buf []byte, off uint32) (string, error) {
	if int(off) > len(buf) {
		return "", fmt.Errorf("blk: params-blob string offset %d exceeds blob of size %d", off, len(buf))
	}
	rest := buf[off:]
	end := 0
	for end < len(rest) && rest[end] != 0 {
		end++
	}
	if end == len(rest) {
		return "", fmt.Errorf("blk: unterminated string at params-blob offset %d", off)
	}
	return string(rest[:end]), nil
}

func readFloats2(b []byte) [2]float32 {
	return [2]float32{
		math.Float32frombits(binary.LittleEndian.Uint32(b[0:4])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[4:8])),
	}
}

func readFloats3(b []byte) [3]float32 {
	return [3]float32{
		math.Float32frombits(binary.LittleEndian.Uint32(b[0:4])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[4:8])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[8:12])),
	}
}

func readFloats4(b []byte) [4]float32 {
	return [4]float32{
		math.Float32frombits(binary.LittleEndian.Uint32(b[0:4])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[4:8])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[8:12])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[12:16])),
	}
}
