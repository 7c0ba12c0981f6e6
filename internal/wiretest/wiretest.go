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

// Package wiretest hand-assembles FlatBuffers binary buffers for use in
// fbjson and testschema tests, the same way ion/datum_test.go hand-builds
// ion TLV bytes rather than depending on a higher-level encoder: there is
// no schema compiler in this repo to generate real encoder bindings, so
// tests construct the wire bytes they need directly.
package wiretest

import "encoding/binary"

// Builder is an append-only byte buffer with patchable fields, enough
// to construct tables, vtables, strings, and vectors by hand.
type Builder struct {
	Buf []byte
}

// Pos returns the current write position, i.e. the address the next
// appended byte will land at.
func (w *Builder) Pos() int { return len(w.Buf) }

func (w *Builder) PutU8(v uint8) { w.Buf = append(w.Buf, v) }

func (w *Builder) PutU16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	w.Buf = append(w.Buf, tmp[:]...)
}

func (w *Builder) PutU32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	w.Buf = append(w.Buf, tmp[:]...)
}

func (w *Builder) PutI32(v int32) { w.PutU32(uint32(v)) }

func (w *Builder) PutBytes(p []byte) { w.Buf = append(w.Buf, p...) }

func (w *Builder) Pad(n int) {
	for i := 0; i < n; i++ {
		w.PutU8(0)
	}
}

func (w *Builder) PatchU16(at int, v uint16) { binary.LittleEndian.PutUint16(w.Buf[at:], v) }
func (w *Builder) PatchU32(at int, v uint32) { binary.LittleEndian.PutUint32(w.Buf[at:], v) }

// PatchOffset patches the uoffset field at address 'at' so it resolves
// to target: the stored value is target-at, which must be positive —
// every referenced object (string, vector, nested table) has to be
// built strictly after the field that points to it.
func (w *Builder) PatchOffset(at, target int) {
	if target <= at {
		panic("wiretest: offset target must come after the referencing field")
	}
	w.PatchU32(at, uint32(target-at))
}

// WriteRootOffset reserves the 4-byte root offset at the very start of
// the buffer and returns its address (always 0); use PatchOffset once
// the root object's address is known.
func (w *Builder) WriteRootOffset() int {
	addr := w.Pos()
	w.PutU32(0)
	return addr
}

// WriteString appends a length-prefixed UTF-8 string with its trailing
// NUL, and returns its address.
func (w *Builder) WriteString(s string) int {
	addr := w.Pos()
	w.PutU32(uint32(len(s)))
	w.PutBytes([]byte(s))
	w.PutU8(0)
	return addr
}

// WriteVector appends a length-prefixed vector whose elemSize*count
// bytes are supplied by fill, called once per element with the
// absolute address to write at.
func (w *Builder) WriteVector(count, elemSize int, fill func(i, addr int)) int {
	addr := w.Pos()
	w.PutU32(uint32(count))
	base := w.Pos()
	w.Pad(count * elemSize)
	for i := 0; i < count; i++ {
		fill(i, base+i*elemSize)
	}
	return addr
}

// WriteByteVector appends a length-prefixed vector of raw bytes.
func (w *Builder) WriteByteVector(data []byte) int {
	addr := w.Pos()
	w.PutU32(uint32(len(data)))
	w.PutBytes(data)
	return addr
}

// ReserveOffsetVector appends a length-prefixed vector of count 4-byte
// uoffset placeholders and returns the vector's address together with
// each slot's absolute address, for the caller to build the referenced
// objects afterward and patch each slot with Builder.PatchOffset. A
// slot left unpatched stays zero, the vector's "no object" value.
func (w *Builder) ReserveOffsetVector(count int) (addr int, slotAddrs []int) {
	addr = w.Pos()
	w.PutU32(uint32(count))
	slotAddrs = make([]int, count)
	for i := range slotAddrs {
		slotAddrs[i] = w.Pos()
		w.PutU32(0)
	}
	return addr, slotAddrs
}

// Table accumulates a table body and its vtable field map.
type Table struct {
	w        *Builder
	addr     int // table start, where the leading soffset lives
	bodyLen  int // current body length, including the leading 4-byte soffset
	voffsets map[int]uint16
	maxField int
}

// NewTable starts a table: reserves the 4-byte soffset slot (patched by
// Finish) and returns a Table the caller fills in field-id order.
func (w *Builder) NewTable() *Table {
	addr := w.Pos()
	w.PutI32(0)
	return &Table{w: w, addr: addr, bodyLen: 4, voffsets: map[int]uint16{}, maxField: -1}
}

func (t *Table) reserve(id, size int) int {
	voffset := t.bodyLen
	t.voffsets[id] = uint16(voffset)
	if id > t.maxField {
		t.maxField = id
	}
	addr := t.addr + voffset
	t.w.Pad(size)
	t.bodyLen += size
	return addr
}

// SetU8/SetBool/SetI32/SetU32/SetBytes set an inline field at the
// given id to the supplied value, recording its vtable slot. SetBytes
// is for struct fields (fixed-width, arbitrary size).
func (t *Table) SetU8(id int, v uint8)     { addr := t.reserve(id, 1); t.w.Buf[addr] = v }
func (t *Table) SetBool(id int, v bool) {
	var b uint8
	if v {
		b = 1
	}
	t.SetU8(id, b)
}
func (t *Table) SetI32(id int, v int32) { addr := t.reserve(id, 4); t.w.PatchU32(addr, uint32(v)) }
func (t *Table) SetU32(id int, v uint32) { addr := t.reserve(id, 4); t.w.PatchU32(addr, v) }
func (t *Table) SetBytes(id int, data []byte) {
	addr := t.reserve(id, len(data))
	copy(t.w.Buf[addr:addr+len(data)], data)
}

// ReserveOffset reserves a 4-byte uoffset slot at field id and returns
// its absolute address; the caller builds the referenced object later
// (after Finish) and patches this address with Builder.PatchOffset.
func (t *Table) ReserveOffset(id int) int { return t.reserve(id, 4) }

// Finish writes the vtable immediately after the table body and
// patches the table's own soffset to point at it. Returns the table's
// address. Offset fields reserved with ReserveOffset must be patched
// by the caller after their referents are built.
func (t *Table) Finish() int {
	vt := t.w.Pos()
	slots := t.maxField + 1
	vsize := 4 + 2*slots
	t.w.PutU16(uint16(vsize))
	t.w.PutU16(uint16(t.bodyLen))
	for id := 0; id < slots; id++ {
		t.w.PutU16(t.voffsets[id]) // zero value for an absent id
	}
	t.w.PatchU32(t.addr, uint32(int32(t.addr-vt)))
	return t.addr
}
