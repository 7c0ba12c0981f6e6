// Copyright (C) 2022 Sneller, Inc.
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

package fbjson

import (
	"encoding/binary"
	"math"
)

// The buffer reader below never requires alignment: every read takes a
// byte address and decodes little-endian bytes directly, matching
// spec.md §4.3. It never mutates the FlatBuffer it reads from.

func readUint8(buf []byte, off int) uint8 { return buf[off] }

func readInt8(buf []byte, off int) int8 { return int8(buf[off]) }

func readUint16(buf []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(buf[off:])
}

func readInt16(buf []byte, off int) int16 {
	return int16(binary.LittleEndian.Uint16(buf[off:]))
}

func readUint32(buf []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(buf[off:])
}

func readInt32(buf []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(buf[off:]))
}

func readUint64(buf []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(buf[off:])
}

func readInt64(buf []byte, off int) int64 {
	return int64(binary.LittleEndian.Uint64(buf[off:]))
}

func readBool(buf []byte, off int) bool {
	return buf[off] != 0
}

func readFloat32(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func readFloat64(buf []byte, off int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[off:]))
}

// Exported aliases of the primitive readers above, for schema-generated
// packages outside fbjson to pass as the `read` argument of the field
// emitter family (spec.md §9's design note: "a callback for nested
// types" is the only ABI surface a generated binding needs — these are
// the scalar equivalent for leaf fields).
func ReadUint8(buf []byte, off int) uint8     { return readUint8(buf, off) }
func ReadInt8(buf []byte, off int) int8       { return readInt8(buf, off) }
func ReadUint16(buf []byte, off int) uint16   { return readUint16(buf, off) }
func ReadInt16(buf []byte, off int) int16     { return readInt16(buf, off) }
func ReadUint32(buf []byte, off int) uint32   { return readUint32(buf, off) }
func ReadInt32(buf []byte, off int) int32     { return readInt32(buf, off) }
func ReadUint64(buf []byte, off int) uint64   { return readUint64(buf, off) }
func ReadInt64(buf []byte, off int) int64     { return readInt64(buf, off) }
func ReadBool(buf []byte, off int) bool       { return readBool(buf, off) }
func ReadFloat32(buf []byte, off int) float32 { return readFloat32(buf, off) }
func ReadFloat64(buf []byte, off int) float64 { return readFloat64(buf, off) }

// readUOffset reads an unsigned file offset at 'off' and returns the
// absolute address it points to (FlatBuffers uoffsets are always
// relative to the field that stores them).
func readUOffset(buf []byte, off int) int {
	return off + int(readUint32(buf, off))
}

// readSOffset reads a signed offset used to locate a table's vtable:
// the vtable address is the table's own address minus the soffset
// value stored at that address.
func readSOffset(buf []byte, off int) int {
	return off - int(readInt32(buf, off))
}

// readVOffset reads a 2-byte unsigned voffset.
func readVOffset(buf []byte, off int) VOffset {
	return readUint16(buf, off)
}

// stringContents reads a length-prefixed UTF-8 string (spec.md §3: a
// 4-byte length followed by the bytes and a trailing zero not counted
// in the length) at the absolute address 'off' and returns the string
// bytes without the trailing NUL.
func stringContents(buf []byte, off int) []byte {
	n := int(readUint32(buf, off))
	start := off + uoffsetSize
	return buf[start : start+n]
}

// vectorLen reads the element count that prefixes a vector at the
// absolute address 'off'.
func vectorLen(buf []byte, off int) int {
	return int(readUint32(buf, off))
}

// vectorBase returns the address of the first element of a vector
// whose length prefix starts at 'off'.
func vectorBase(off int) int {
	return off + uoffsetSize
}
