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
	"bytes"
	"strings"
	"testing"

	"github.com/flatjson/fbprint/internal/wiretest"
)

// buildManyIntFields builds a table with n int32 fields at ids
// 0..n-1, each set to a non-default value so every field is kept.
func buildManyIntFields(n int) []byte {
	w := &wiretest.Builder{}
	root := w.WriteRootOffset()
	tbl := w.NewTable()
	for i := 0; i < n; i++ {
		tbl.SetI32(i, int32(i+1))
	}
	addr := tbl.Finish()
	w.PatchOffset(root, addr)
	return w.Buf
}

func manyIntFieldsCallback(n int) TableCallback {
	return func(ctx *Context, td *TableDescriptor) {
		for i := 0; i < n; i++ {
			IntField[int32](ctx, td, i, []byte("x"), 0, ReadInt32)
		}
	}
}

// TestFixedBufferOverflowLatches confirms that once enough field
// output crosses the fixed buffer's threshold, the sink latches
// ErrOverflow (spec.md §4.1) rather than growing or silently dropping
// bytes forever without telling the caller.
func TestFixedBufferOverflowLatches(t *testing.T) {
	buf := buildManyIntFields(20)
	cfg := NewConfig()
	p := make([]byte, 100) // flushSize = 100-64 = 36: 20 "x":N fields overflow it
	ctx := NewFixedContext(p, cfg)
	TableAsRoot(ctx, buf, manyIntFieldsCallback(20))
	if ctx.ErrorCode() != ErrOverflow {
		t.Fatalf("got error code %v, want ErrOverflow", ctx.ErrorCode())
	}
}

// TestFixedBufferWithinBudgetSucceeds is the contrasting case: output
// that stays under the threshold never latches an error.
func TestFixedBufferWithinBudgetSucceeds(t *testing.T) {
	fbuf := buildOneIntField(9)
	cfg := NewConfig()
	p := make([]byte, 256)
	ctx := NewFixedContext(p, cfg)
	cb := func(ctx *Context, td *TableDescriptor) {
		IntField[int32](ctx, td, 0, []byte("x"), 7, ReadInt32)
	}
	TableAsRoot(ctx, fbuf, cb)
	if ctx.Err() != nil {
		t.Fatalf("unexpected error: %v", ctx.Err())
	}
}

// TestDynamicBufferGrowsWithoutLosingData forces the dynamic sink
// through several capacity doublings (spec.md §5's "geometric, x2, no
// upper bound other than allocator failure") via a string long enough
// to cross a small initial capacity many times over, and confirms
// every byte still round-trips.
func TestDynamicBufferGrowsWithoutLosingData(t *testing.T) {
	body := strings.Repeat("abcdefgh", 80) // 640 bytes, plain ASCII: no escaping
	w := &wiretest.Builder{}
	root := w.WriteRootOffset()
	tbl := w.NewTable()
	off := tbl.ReserveOffset(0)
	addr := tbl.Finish()
	strAddr := w.WriteString(body)
	w.PatchOffset(off, strAddr)
	w.PatchOffset(root, addr)
	buf := w.Buf

	cb := func(ctx *Context, td *TableDescriptor) {
		StringField(ctx, td, 0, []byte("s"))
	}
	cfg := NewConfig()
	ctx := NewDynamicContext(100, cfg) // well above reserve(64), forces several doublings
	n := TableAsRoot(ctx, buf, cb)
	if ctx.Err() != nil {
		t.Fatalf("unexpected error: %v", ctx.Err())
	}
	out, total := FinalizeDynamicBuffer(ctx)
	want := `{"s":"` + body + `"}`
	if string(out) != want {
		t.Fatalf("got length %d, want length %d (content mismatch)", len(out), len(want))
	}
	if n != total {
		t.Fatalf("TableAsRoot returned %d, FinalizeDynamicBuffer returned %d", n, total)
	}
}

// TestFileContextPartialFlushThenFullFlush exercises the partial/full
// flush pairing documented in DESIGN.md: a single small root object
// never crosses the file sink's 32KB-scale threshold, so nothing
// reaches the underlying writer until Context.Flush does a full
// flush — confirming flushPartial's threshold guard actually guards,
// rather than flushing (and for a fixed sink, erroring) on every call
// regardless of how little is buffered.
func TestFileContextPartialFlushThenFullFlush(t *testing.T) {
	fbuf := buildOneIntField(9)
	var out bytes.Buffer
	cfg := NewConfig()
	ctx := NewFileContext(&out, cfg)
	cb := func(ctx *Context, td *TableDescriptor) {
		IntField[int32](ctx, td, 0, []byte("x"), 7, ReadInt32)
	}
	TableAsRoot(ctx, fbuf, cb)
	if ctx.Err() != nil {
		t.Fatalf("unexpected error: %v", ctx.Err())
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing flushed to the writer yet, got %d bytes", out.Len())
	}
	ctx.Flush()
	want := `{"x":9}`
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}
