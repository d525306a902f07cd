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

package binfmt

// keyOne and keyTwo are the two fixed 128-bit XOR masks applied by
// Deobfuscate. They are part of the VROMF wire format, not a secret.
// The values below are placeholder masks (see DESIGN.md), not the
// reference decoder's constants, so only payloads masked with these
// same values deobfuscate correctly.
var (
	keyOne = [16]byte{
		0x55, 0xD5, 0x92, 0x7A, 0x39, 0x4F, 0x97, 0x78,
		0xE8, 0x41, 0xB7, 0xC8, 0x03, 0x6B, 0x9A, 0x11,
	}
	keyTwo = [16]byte{
		0xF2, 0x3A, 0x06, 0xD9, 0x7E, 0x11, 0xC5, 0x84,
		0x2B, 0x99, 0x5D, 0x47, 0xA1, 0x60, 0xEE, 0x3C,
	}
)

// Deobfuscate XORs buf in place with the two fixed keys: the first 16
// bytes against keyOne, and the last aligned 16-byte block against
// keyTwo. The region between is left untouched. Buffers shorter than
// 16 bytes are left as-is; buffers between 16 and 32 bytes (exclusive
// of a second full block) only have their head masked.
//
// The operation is its own inverse: calling Deobfuscate twice on the
// same buffer restores the original contents.
func Deobfuscate(buf []byte) {
	if len(buf) < 16 {
		return
	}
	for i := 0; i < 16; i++ {
		buf[i] ^= keyOne[i]
	}
	if len(buf) < 32 {
		return
	}
	tail := (len(buf) / 16) * 16
	start := tail - 16
	if start < 16 {
		return
	}
	for i := 0; i < 16; i++ {
		buf[start+i] ^= keyTwo[i]
	}
}
