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

// TableDescriptor describes the table currently being emitted: its
// body, its vtable, and the bookkeeping the field emitters and
// traversal driver share (spec.md §3's "Table descriptor" entity).
type TableDescriptor struct {
	buf   []byte // the whole FlatBuffer
	table int    // absolute address of the table body
	vt    int    // absolute address of the vtable
	vsize int    // vtable size in bytes, including the size prefix

	// Union is the discriminant of the union member this table is
	// (zero if the table is not itself a union value), threaded in
	// by the traversal driver so a polymorphic table callback can
	// select its concrete body (spec.md §4.6).
	Union UType

	// count is the field-emitted counter used for comma placement
	// (spec.md §4.5's "Comma discipline").
	count int

	// ttl is the remaining recursion budget for tables reached
	// through this descriptor (spec.md §3).
	ttl int
}

// newTableDescriptor builds a descriptor for the table at absolute
// address 'table', resolving its vtable the way spec.md §4.6 and the
// original get_field_ptr helper do: vtable = table - soffset(table);
// vsize = first voffset in the vtable.
func newTableDescriptor(buf []byte, table int, ttl int, union UType) TableDescriptor {
	vt := readSOffset(buf, table)
	vsize := int(readVOffset(buf, vt))
	return TableDescriptor{
		buf:   buf,
		table: table,
		vt:    vt,
		vsize: vsize,
		Union: union,
		ttl:   ttl,
	}
}

// fieldOffset computes the vtable slot offset for field id 'id':
// vo = (id+2) * voffsetSize (spec.md §4.4).
func fieldOffset(id int) int {
	return (id + 2) * voffsetSize
}

// fieldPtr is the vtable resolver (spec.md §4.4): the only gate for
// field presence. It returns the absolute address of the field within
// the table body, or (0, false) if the field is absent.
func (td *TableDescriptor) fieldPtr(id int) (int, bool) {
	vo := fieldOffset(id)
	if vo >= td.vsize {
		return 0, false
	}
	off := int(readVOffset(td.buf, td.vt+vo))
	if off == 0 {
		return 0, false
	}
	return td.table + off, true
}

// nextComma reports whether a comma must precede the next emitted
// field/name, and increments the emitted-field counter (spec.md §4.5's
// "Comma discipline").
func (td *TableDescriptor) nextComma() bool {
	comma := td.count != 0
	td.count++
	return comma
}
