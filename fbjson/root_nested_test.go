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
	"testing"

	"github.com/flatjson/fbprint/internal/wiretest"
)

// buildNestedTableBuffer builds a complete, independent FlatBuffer (its
// own root offset at address 0) holding a single table with one int32
// field, for embedding as a byte vector in an outer buffer.
func buildNestedTableBuffer(value int32) []byte {
	w := &wiretest.Builder{}
	root := w.WriteRootOffset()
	tbl := w.NewTable()
	tbl.SetI32(0, value)
	addr := tbl.Finish()
	w.PatchOffset(root, addr)
	return w.Buf
}

// buildOuterWithNestedTable embeds a nested FlatBuffer (built by
// buildNestedTableBuffer) as field 0's byte vector value.
func buildOuterWithNestedTable(nested []byte) []byte {
	w := &wiretest.Builder{}
	root := w.WriteRootOffset()
	tbl := w.NewTable()
	off := tbl.ReserveOffset(0)
	addr := tbl.Finish()
	vecAddr := w.WriteByteVector(nested)
	w.PatchOffset(off, vecAddr)
	w.PatchOffset(root, addr)
	return w.Buf
}

// TestNestedRootTableField confirms an embedded whole-FlatBuffer byte
// vector is descended into as its own root table, sharing the outer
// recursion budget (spec.md §4.5's "Nested-root table" value family).
func TestNestedRootTableField(t *testing.T) {
	nested := buildNestedTableBuffer(42)
	buf := buildOuterWithNestedTable(nested)

	inner := func(ctx *Context, td *TableDescriptor) {
		IntField[int32](ctx, td, 0, []byte("n"), 0, ReadInt32)
	}
	outer := func(ctx *Context, td *TableDescriptor) {
		NestedRootTableField(ctx, td, 0, []byte("doc"), "", inner)
	}

	out, ctx := printToString(t, buf, NewConfig(), outer)
	if ctx.Err() != nil {
		t.Fatalf("unexpected error: %v", ctx.Err())
	}
	want := `{"doc":{"n":42}}`
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

// TestNestedRootTableFieldRejectsBadIdentifier confirms a nested root
// is validated through the same AcceptHeader path as a top-level root.
func TestNestedRootTableFieldRejectsBadIdentifier(t *testing.T) {
	nested := buildNestedTableBuffer(1)
	buf := buildOuterWithNestedTable(nested)

	inner := func(ctx *Context, td *TableDescriptor) {
		IntField[int32](ctx, td, 0, []byte("n"), 0, ReadInt32)
	}
	outer := func(ctx *Context, td *TableDescriptor) {
		NestedRootTableField(ctx, td, 0, []byte("doc"), "WXYZ", inner)
	}

	_, ctx := printToString(t, buf, NewConfig(), outer)
	if ctx.Err() == nil {
		t.Fatalf("expected an error for a rejected nested identifier")
	}
}

// TestNestedRootStructField is NestedRootTableField's struct-root
// counterpart: the embedded buffer's root is a fixed-layout struct.
func TestNestedRootStructField(t *testing.T) {
	// A minimal "struct" root: just a raw 4-byte int32 at address 4
	// (structs have no vtable), right after its own root offset.
	inner := &wiretest.Builder{}
	root := inner.WriteRootOffset()
	structAddr := inner.Pos()
	inner.PutI32(7)
	inner.PatchOffset(root, structAddr)
	nested := inner.Buf

	w := &wiretest.Builder{}
	outerRoot := w.WriteRootOffset()
	tbl := w.NewTable()
	off := tbl.ReserveOffset(0)
	addr := tbl.Finish()
	vecAddr := w.WriteByteVector(nested)
	w.PatchOffset(off, vecAddr)
	w.PatchOffset(outerRoot, addr)
	buf := w.Buf

	innerCb := func(ctx *Context, sbuf []byte, saddr int) {
		IntStructField[int32](ctx, 0, sbuf, saddr, 0, []byte("v"), ReadInt32)
	}
	outer := func(ctx *Context, td *TableDescriptor) {
		NestedRootStructField(ctx, td, 0, []byte("pt"), "", innerCb)
	}

	out, ctx := printToString(t, buf, NewConfig(), outer)
	if ctx.Err() != nil {
		t.Fatalf("unexpected error: %v", ctx.Err())
	}
	want := `{"pt":{"v":7}}`
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}
