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

// buildUnionTable builds a table with a populated union at field ids
// (0, 1): id 0 is the 1-byte discriminant, id 1 the offset to an empty
// variant table.
func buildUnionTable(t *testing.T, disc uint8) []byte {
	t.Helper()
	w := &wiretest.Builder{}
	root := w.WriteRootOffset()
	tbl := w.NewTable()
	tbl.SetU8(0, disc)
	offVal := tbl.ReserveOffset(1)
	addr := tbl.Finish()
	variant := w.NewTable()
	variantAddr := variant.Finish()
	w.PatchOffset(offVal, variantAddr)
	w.PatchOffset(root, addr)
	return w.Buf
}

func TestUnionFieldNameTooLong(t *testing.T) {
	buf := buildUnionTable(t, 1)
	cfg := NewConfig()
	cfg.MaxNameLen = 3
	noop := func(ctx *Context, disc UType) {}
	emptyTbl := func(ctx *Context, td *TableDescriptor) {}
	out, ctx := printToString(t, buf, cfg, func(ctx *Context, td *TableDescriptor) {
		UnionField(ctx, td, 1, []byte("longname"), noop, emptyTbl)
	})
	if ctx.ErrorCode() != ErrBadInput {
		t.Fatalf("got error code %v, want ErrBadInput", ctx.ErrorCode())
	}
	if ctx.Err() == nil {
		t.Fatal("expected a non-nil error")
	}
	_ = out
}

func TestUnionFieldNameWithinLimit(t *testing.T) {
	buf := buildUnionTable(t, 1)
	cfg := NewConfig()
	cfg.MaxNameLen = 64
	typeName := func(ctx *Context, disc UType) { ctx.WriteRawString(`"v"`) }
	emptyTbl := func(ctx *Context, td *TableDescriptor) {}
	out, ctx := printToString(t, buf, cfg, func(ctx *Context, td *TableDescriptor) {
		UnionField(ctx, td, 1, []byte("k"), typeName, emptyTbl)
	})
	if ctx.Err() != nil {
		t.Fatalf("unexpected error: %v", ctx.Err())
	}
	want := `{"k_type":"v","k":{}}`
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}
