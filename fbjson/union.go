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

// Union fields occupy two adjacent field ids (spec.md §3, §4.5): the
// slot at id-1 is a 1-byte discriminant, the slot at id is an offset
// to the value table. Discriminant 0 means "none".

// UnionField emits the two-slot union protocol: "name_type": disc,
// and, if disc != 0, "name": {...} dispatching through cb by
// discriminant.
func UnionField(ctx *Context, td *TableDescriptor, id int, name []byte, ptf UnionTypeCallback, cb TableCallback) {
	dOff, dPresent := td.fieldPtr(id - 1)
	vOff, vPresent := td.fieldPtr(id)
	if !dPresent || !vPresent {
		return
	}
	if len(name) > ctx.cfg.MaxNameLen {
		ctx.setFieldError(ErrBadInput, string(name), "field name exceeds the configured length cap")
		return
	}
	disc := readUint8(td.buf, dOff)

	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.indent()
	ctx.writeUnionTypeName(name)
	ctx.out.ensure(ctx)
	ctx.out.appendByte(':')
	if ctx.cfg.Indent > 0 {
		ctx.out.appendByte(' ')
	}
	if ctx.cfg.EnumAsInteger {
		writeInt(ctx, disc)
	} else {
		ptf(ctx, disc)
	}

	if disc != 0 {
		ctx.writeComma()
		ctx.writeNamePrefix(name)
		addr := readUOffset(td.buf, vOff)
		emitTableObject(ctx, td.buf, addr, td.ttl, disc, cb)
	}
}

// writeUnionTypeName writes "<name>_type" as a quoted (or bare, under
// unquote-names) symbol.
func (c *Context) writeUnionTypeName(name []byte) {
	full := make([]byte, 0, len(name)+5)
	full = append(full, name...)
	full = append(full, "_type"...)
	c.writeSymbol(full)
}

// UnionVectorField emits a vector-of-union field: a <name>_type scalar
// vector of discriminants, followed by a [...] vector where element i
// is null if discriminant i is zero, else the table dispatched through
// cb with that discriminant (spec.md §4.5's "Union vector").
//
// Per spec.md §9's Open Question, the discriminant vector and the
// offset vector are assumed to have equal length, matching the
// original implementation; this is not validated here.
func UnionVectorField(ctx *Context, td *TableDescriptor, id int, name []byte, ptf UnionTypeCallback, cb TableCallback) {
	dOff, dPresent := td.fieldPtr(id - 1)
	vOff, vPresent := td.fieldPtr(id)
	if !dPresent || !vPresent {
		return
	}
	if len(name) > ctx.cfg.MaxNameLen {
		ctx.setFieldError(ErrBadInput, string(name), "field name exceeds the configured length cap")
		return
	}

	typeName := make([]byte, 0, len(name)+5)
	typeName = append(typeName, name...)
	typeName = append(typeName, "_type"...)
	EnumVectorField(ctx, td, id-1, typeName, 1, readUint8, ptf)

	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)

	dAddr := readUOffset(td.buf, dOff)
	vAddr := readUOffset(td.buf, vOff)
	n := vectorLen(td.buf, vAddr)
	dBase := vectorBase(dAddr)
	vBase := vectorBase(vAddr)

	ctx.writeOpen('[')
	for i := 0; i < n; i++ {
		if i != 0 {
			ctx.writeComma()
		}
		disc := readUint8(td.buf, dBase+i)
		if disc == 0 {
			ctx.out.ensure(ctx)
			ctx.out.appendRun(ctx, literalNull)
			continue
		}
		elemOff := vBase + i*uoffsetSize
		tableAddr := readUOffset(td.buf, elemOff)
		emitTableObject(ctx, td.buf, tableAddr, td.ttl, disc, cb)
	}
	ctx.writeClose(']')
}
