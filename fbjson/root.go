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

// Root entry points (spec.md §4.7): validate the file header, invoke
// the schema-generated callback once, and finalize the output. These
// are the only functions a generated printer package calls directly;
// everything else in this package is reached through the callback ABI.

const headerSize = uoffsetSize + 4 // root offset + identifier

// AcceptHeader validates a root buffer's header: it must be at least
// long enough to hold the root offset and, if an identifier is given,
// the identifier must match the 4 bytes at offset uoffsetSize
// byte-for-byte. A nil or empty identifier accepts any buffer (spec.md
// §9 Open Question: the source permits a null identifier to mean
// "accept any", preserved here).
func AcceptHeader(buf []byte, identifier string) bool {
	if len(buf) < uoffsetSize {
		return false
	}
	if identifier == "" {
		return true
	}
	if len(buf) < headerSize {
		return false
	}
	return string(buf[uoffsetSize:headerSize]) == identifier
}

// TableAsRoot validates buf's header against cfg.Identifier, then
// emits the root table's JSON object through cb. It returns the total
// number of bytes ctx has emitted (see Context.Total), or -1 if the
// header was rejected or an error was latched before or during the
// print.
func TableAsRoot(ctx *Context, buf []byte, cb TableCallback) int {
	if !AcceptHeader(buf, ctx.cfg.Identifier) {
		ctx.setFieldError(ErrBadInput, "", "root header rejected")
		return -1
	}
	if ctx.err != ErrNone {
		return -1
	}
	addr := readUOffset(buf, 0)
	emitTableObject(ctx, buf, addr, ctx.cfg.MaxDepth, 0, cb)
	ctx.finalNewline()
	if ctx.err != ErrNone {
		return -1
	}
	return ctx.Total()
}

// StructAsRoot validates buf's header against cfg.Identifier, then
// emits the root struct's JSON object through cb. Structs have no
// vtable and no recursion budget of their own: cb is simply handed the
// struct's absolute base address.
func StructAsRoot(ctx *Context, buf []byte, cb StructCallback) int {
	if !AcceptHeader(buf, ctx.cfg.Identifier) {
		ctx.setFieldError(ErrBadInput, "", "root header rejected")
		return -1
	}
	if ctx.err != ErrNone {
		return -1
	}
	addr := readUOffset(buf, 0)
	ctx.writeOpen('{')
	cb(ctx, buf, addr)
	ctx.writeClose('}')
	ctx.finalNewline()
	if ctx.err != ErrNone {
		return -1
	}
	return ctx.Total()
}

// NestedRootTableField emits a field whose wire value is a byte vector
// holding an entire embedded FlatBuffer (spec.md §4.5's "Nested-root
// table" value family): its length is read, its header validated
// exactly as a top-level root would be, and it is then descended into
// as if it were its own root — sharing the outer ttl budget, since the
// nested buffer's tables still count against the same recursion cap.
func NestedRootTableField(ctx *Context, td *TableDescriptor, id int, name []byte, identifier string, cb TableCallback) {
	off, present := td.fieldPtr(id)
	if !present {
		return
	}
	addr := readUOffset(td.buf, off)
	n := vectorLen(td.buf, addr)
	base := vectorBase(addr)
	nested := td.buf[base : base+n]
	if !AcceptHeader(nested, identifier) {
		ctx.setFieldError(ErrBadInput, string(name), "nested root header rejected")
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	rootAddr := readUOffset(nested, 0)
	emitTableObject(ctx, nested, rootAddr, td.ttl, 0, cb)
}

// NestedRootStructField is NestedRootTableField's struct-root
// counterpart: the embedded buffer's root is a fixed-layout struct
// rather than a vtable-indirected table.
func NestedRootStructField(ctx *Context, td *TableDescriptor, id int, name []byte, identifier string, cb StructCallback) {
	off, present := td.fieldPtr(id)
	if !present {
		return
	}
	addr := readUOffset(td.buf, off)
	n := vectorLen(td.buf, addr)
	base := vectorBase(addr)
	nested := td.buf[base : base+n]
	if !AcceptHeader(nested, identifier) {
		ctx.setFieldError(ErrBadInput, string(name), "nested root header rejected")
		return
	}
	if td.nextComma() {
		ctx.writeComma()
	}
	ctx.writeNamePrefix(name)
	rootAddr := readUOffset(nested, 0)
	ctx.writeOpen('{')
	cb(ctx, nested, rootAddr)
	ctx.writeClose('}')
}

// FinalizeDynamicBuffer hands back the bytes accumulated in a Context
// created with NewDynamicContext, transferring ownership of the
// backing array to the caller, and resets the Context to its zero
// value (SPEC_FULL §9; mirrors the original's
// flatcc_json_printer_finalize_dynamic_buffer followed by
// flatcc_json_printer_clear). It does not add its own trailing
// newline: TableAsRoot/StructAsRoot already did that through
// finalNewline, so calling both in sequence — the expected pattern for
// a dynamic sink — does not double it. A caller who built JSON through
// the raw primitives without going through a root call is responsible
// for its own trailing newline before finalizing. The Context must not
// be used again afterward.
func FinalizeDynamicBuffer(ctx *Context) ([]byte, int) {
	out := ctx.out.bytes()
	n := ctx.Total()
	ctx.out.buf = nil
	*ctx = Context{}
	return out, n
}
