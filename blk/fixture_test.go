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
	"math"
	"testing"

	"github.com/axiangcoding/wt-blk/binfmt"
)

// buildSectionFatBlk constructs the fat-dialect fixture named by
// spec.md §8's concrete scenarios: root holds vec4f, int, long, and
// nested structs alpha{x} and beta{y}.
func buildSectionFatBlk(t *testing.T) []byte {
	t.Helper()

	names := []string{"vec4f", "int", "long", "alpha", "beta", "x", "y"}
	var namesData []byte
	for _, n := range names {
		namesData = append(namesData, []byte(n)...)
		namesData = append(namesData, 0)
	}

	var paramsBlob []byte
	vec4fOff := len(paramsBlob)
	for _, f := range []float32{1.25, 2.5, 5.0, 10.0} {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(f))
		paramsBlob = append(paramsBlob, b[:]...)
	}
	longOff := len(paramsBlob)
	var lb [8]byte
	binary.LittleEndian.PutUint64(lb[:], 64)
	paramsBlob = append(paramsBlob, lb[:]...)

	paramsInfo := []byte{}
	appendParamRecord := func(nameID int, tag byte, payload uint32) {
		var rec [8]byte
		rec[0] = byte(nameID)
		rec[1] = byte(nameID >> 8)
		rec[2] = byte(nameID >> 16)
		rec[3] = tag
		binary.LittleEndian.PutUint32(rec[4:8], payload)
		paramsInfo = append(paramsInfo, rec[:]...)
	}
	appendParamRecord(0, byte(TypeFloat4), uint32(vec4fOff))
	appendParamRecord(1, byte(TypeInt), 42)
	appendParamRecord(2, byte(TypeLong), uint32(longOff))
	appendParamRecord(5, byte(TypeInt), 7)
	appendParamRecord(6, byte(TypeInt), 8)

	var blockInfo []byte
	blockInfo = binfmt.AppendUleb128(blockInfo, 0) // root name_id
	blockInfo = binfmt.AppendUleb128(blockInfo, 3) // param_count
	blockInfo = binfmt.AppendUleb128(blockInfo, 2) // child_block_count
	blockInfo = binfmt.AppendUleb128(blockInfo, 1) // first_child_block_index
	blockInfo = binfmt.AppendUleb128(blockInfo, 4) // alpha: names[3]+1
	blockInfo = binfmt.AppendUleb128(blockInfo, 1)
	blockInfo = binfmt.AppendUleb128(blockInfo, 0)
	blockInfo = binfmt.AppendUleb128(blockInfo, 5) // beta: names[4]+1
	blockInfo = binfmt.AppendUleb128(blockInfo, 1)
	blockInfo = binfmt.AppendUleb128(blockInfo, 0)

	var out []byte
	out = binfmt.AppendUleb128(out, uint64(len(names)))
	out = binfmt.AppendUleb128(out, uint64(len(namesData)))
	out = append(out, namesData...)
	out = binfmt.AppendUleb128(out, 3) // blocks_count
	out = binfmt.AppendUleb128(out, 5) // params_count
	out = binfmt.AppendUleb128(out, uint64(len(paramsBlob)))
	out = append(out, paramsBlob...)
	out = append(out, paramsInfo...)
	out = append(out, blockInfo...)
	return out
}
