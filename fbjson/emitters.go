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

import "golang.org/x/exp/constraints"

// This file implements the field emitter family of spec.md §4.5. Every
// emitter shares the same contract: look up the field pointer (vtable
// resolver), gate on presence/default, run the comma discipline, write
// "name":, then the value.

// gateScalar resolves the field pointer and decides whether a scalar-shaped
// field should be emitted at all, matching spec.md §4.5's "Gate" rule.
// ok is false when nothing should be emitted.
func gateScalar[T comparable](ctx *Context, td *TableDescriptor, id int, def T, read func(off int) T) (value T, ok bool) {
	off, present := td.fieldPtr(id)
	if present {
		value = read(off)
		if value == def && ctx.cfg.SkipDefault {
			return value, false
		}
		return value, true
	}
	if !ctx.cfg.ForceDefault {
		return def, false
	}
	return def, true
}

// IntField emits an integer-typed scalar field (spec.md §4.5's
// "Scalar" value family, integer case).
func IntField[T constraints.Integer](ctx *Context, td *TableDescriptor, id int, name []byte, def T, read func(buf []byte, off int) T) {
	value, ok := gateScalar(ctx, td, id, def, func(off int) T { return read(td.buf, off) })
	if !ok {
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	writeInt(ctx, value)
}

// FloatField emits a floating-point scalar field.
func FloatField[T constraints.Float](ctx *Context, td *TableDescriptor, id int, name []byte, def T, bitSize int, read func(buf []byte, off int) T) {
	value, ok := gateScalar(ctx, td, id, def, func(off int) T { return read(td.buf, off) })
	if !ok {
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	writeFloat(ctx, value, bitSize)
}

// BoolField emits a bool scalar field.
func BoolField(ctx *Context, td *TableDescriptor, id int, name []byte, def bool) {
	value, ok := gateScalar(ctx, td, id, def, func(off int) bool { return readBool(td.buf, off) })
	if !ok {
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	writeBool(ctx, value)
}

// EnumField emits an enum-typed scalar field: if EnumAsInteger is set,
// formats the underlying integer; otherwise calls the
// discriminant-to-symbol callback (spec.md §4.5's "Enum scalar").
func EnumField[T constraints.Integer](ctx *Context, td *TableDescriptor, id int, name []byte, def T, read func(buf []byte, off int) T, cb EnumCallback[T]) {
	value, ok := gateScalar(ctx, td, id, def, func(off int) T { return read(td.buf, off) })
	if !ok {
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	if ctx.cfg.EnumAsInteger {
		writeInt(ctx, value)
		return
	}
	cb(ctx, value)
}

// StringField emits a string field (spec.md §4.5's "String" value
// family): present iff the vtable slot is non-zero.
func StringField(ctx *Context, td *TableDescriptor, id int, name []byte) {
	off, present := td.fieldPtr(id)
	if !present {
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	addr := readUOffset(td.buf, off)
	ctx.WriteEscapedString(stringContents(td.buf, addr))
}

// ByteVectorBase64Field emits a vector<ubyte> field as a base64
// string (spec.md §4.5's "Byte vector in base64 mode").
func ByteVectorBase64Field(ctx *Context, td *TableDescriptor, id int, name []byte) {
	off, present := td.fieldPtr(id)
	if !present {
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	addr := readUOffset(td.buf, off)
	n := vectorLen(td.buf, addr)
	base := vectorBase(addr)
	ctx.writeBase64(td.buf[base : base+n])
}

// vectorBody writes the '[' ... ']' body shared by every vector
// field shape: count-many elements, each preceded by a comma (after
// the first) and a newline-and-indent.
func (c *Context) vectorBody(count int, writeElem func(i int)) {
	c.writeOpen('[')
	for i := 0; i < count; i++ {
		if i != 0 {
			c.writeComma()
		}
		c.indent()
		writeElem(i)
	}
	c.writeClose(']')
}

// IntVectorField emits a vector of integers (spec.md §4.5's "Scalar
// vector").
func IntVectorField[T constraints.Integer](ctx *Context, td *TableDescriptor, id int, name []byte, elemSize int, read func(buf []byte, off int) T) {
	off, present := td.fieldPtr(id)
	if !present {
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	addr := readUOffset(td.buf, off)
	n := vectorLen(td.buf, addr)
	base := vectorBase(addr)
	ctx.vectorBody(n, func(i int) {
		writeInt(ctx, read(td.buf, base+i*elemSize))
	})
}

// FloatVectorField emits a vector of floats.
func FloatVectorField[T constraints.Float](ctx *Context, td *TableDescriptor, id int, name []byte, elemSize, bitSize int, read func(buf []byte, off int) T) {
	off, present := td.fieldPtr(id)
	if !present {
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	addr := readUOffset(td.buf, off)
	n := vectorLen(td.buf, addr)
	base := vectorBase(addr)
	ctx.vectorBody(n, func(i int) {
		writeFloat(ctx, read(td.buf, base+i*elemSize), bitSize)
	})
}

// BoolVectorField emits a vector of bools.
func BoolVectorField(ctx *Context, td *TableDescriptor, id int, name []byte) {
	off, present := td.fieldPtr(id)
	if !present {
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	addr := readUOffset(td.buf, off)
	n := vectorLen(td.buf, addr)
	base := vectorBase(addr)
	ctx.vectorBody(n, func(i int) {
		writeBool(ctx, readBool(td.buf, base+i))
	})
}

// EnumVectorField emits a vector of enum-typed integers, calling cb
// per element unless EnumAsInteger is set.
func EnumVectorField[T constraints.Integer](ctx *Context, td *TableDescriptor, id int, name []byte, elemSize int, read func(buf []byte, off int) T, cb EnumCallback[T]) {
	if ctx.cfg.EnumAsInteger {
		IntVectorField(ctx, td, id, name, elemSize, read)
		return
	}
	off, present := td.fieldPtr(id)
	if !present {
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	addr := readUOffset(td.buf, off)
	n := vectorLen(td.buf, addr)
	base := vectorBase(addr)
	ctx.vectorBody(n, func(i int) {
		cb(ctx, read(td.buf, base+i*elemSize))
	})
}

// StructVectorField emits a vector of inline structs (spec.md §4.5's
// "Struct vector"): each element is a '{...}' produced by cb.
func StructVectorField(ctx *Context, td *TableDescriptor, id int, name []byte, elemSize int, cb StructCallback) {
	off, present := td.fieldPtr(id)
	if !present {
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	addr := readUOffset(td.buf, off)
	n := vectorLen(td.buf, addr)
	base := vectorBase(addr)
	ctx.vectorBody(n, func(i int) {
		ctx.writeOpen('{')
		cb(ctx, td.buf, base+i*elemSize)
		ctx.writeClose('}')
	})
}

// StringVectorField emits a vector of strings, each read through an
// offset indirection (spec.md §4.5's "String vector").
func StringVectorField(ctx *Context, td *TableDescriptor, id int, name []byte) {
	off, present := td.fieldPtr(id)
	if !present {
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	addr := readUOffset(td.buf, off)
	n := vectorLen(td.buf, addr)
	base := vectorBase(addr)
	ctx.vectorBody(n, func(i int) {
		elemOff := base + i*uoffsetSize
		strAddr := readUOffset(td.buf, elemOff)
		ctx.WriteEscapedString(stringContents(td.buf, strAddr))
	})
}

// TableVectorField emits a vector of tables, recursing through the
// traversal driver per element (spec.md §4.5's "Table vector").
func TableVectorField(ctx *Context, td *TableDescriptor, id int, name []byte, cb TableCallback) {
	off, present := td.fieldPtr(id)
	if !present {
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	addr := readUOffset(td.buf, off)
	n := vectorLen(td.buf, addr)
	base := vectorBase(addr)
	ctx.writeOpen('[')
	for i := 0; i < n; i++ {
		if i != 0 {
			ctx.writeComma()
		}
		elemOff := base + i*uoffsetSize
		tableAddr := readUOffset(td.buf, elemOff)
		emitTableObject(ctx, td.buf, tableAddr, td.ttl, 0, cb)
	}
	ctx.writeClose(']')
}

// StructField emits a nested inline struct field: '{...}' containing
// cb's output (spec.md §4.5's "Struct field").
func StructField(ctx *Context, td *TableDescriptor, id int, name []byte, cb StructCallback) {
	off, present := td.fieldPtr(id)
	if !present {
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	ctx.writeOpen('{')
	cb(ctx, td.buf, off)
	ctx.writeClose('}')
}

// TableField emits a nested table field: '{...}' containing cb's
// output, guarded by the depth check (spec.md §4.5's "Table field").
func TableField(ctx *Context, td *TableDescriptor, id int, name []byte, cb TableCallback) {
	off, present := td.fieldPtr(id)
	if !present {
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	addr := readUOffset(td.buf, off)
	emitTableObject(ctx, td.buf, addr, td.ttl, 0, cb)
}

// Embedded-struct helpers: emitted from within a struct callback,
// where comma discipline is driven by a plain field index rather than
// a TableDescriptor's counter (spec.md §4.5's struct-field shapes).

// IntStructField emits an integer field of a struct at a fixed offset.
func IntStructField[T constraints.Integer](ctx *Context, index int, buf []byte, base, offset int, name []byte, read func(buf []byte, off int) T) {
	if index != 0 {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	writeInt(ctx, read(buf, base+offset))
}

// FloatStructField emits a float field of a struct at a fixed offset.
func FloatStructField[T constraints.Float](ctx *Context, index int, buf []byte, base, offset int, nm []byte, bitSize int, read func(buf []byte, off int) T) {
	if index != 0 {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(nm)
	writeFloat(ctx, read(buf, base+offset), bitSize)
}

// BoolStructField emits a bool field of a struct at a fixed offset.
func BoolStructField(ctx *Context, index int, buf []byte, base, offset int, nm []byte) {
	if index != 0 {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(nm)
	writeBool(ctx, readBool(buf, base+offset))
}

// EnumStructField emits an enum-typed field of a struct at a fixed
// offset, calling cb unless EnumAsInteger is set.
func EnumStructField[T constraints.Integer](ctx *Context, index int, buf []byte, base, offset int, nm []byte, read func(buf []byte, off int) T, cb EnumCallback[T]) {
	if index != 0 {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(nm)
	v := read(buf, base+offset)
	if ctx.cfg.EnumAsInteger {
		writeInt(ctx, v)
		return
	}
	cb(ctx, v)
}

// EmbeddedStructField emits a nested struct field inside another
// struct: '{...}' containing cb's output (spec.md §4.5's
// "embedded struct" shape).
func EmbeddedStructField(ctx *Context, index int, buf []byte, base, offset int, nm []byte, cb StructCallback) {
	if index != 0 {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(nm)
	ctx.writeOpen('{')
	cb(ctx, buf, base+offset)
	ctx.writeClose('}')
}
