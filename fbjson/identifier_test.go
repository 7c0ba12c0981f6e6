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

import "testing"

func TestBareIdentifierUnquotedUnderPolicy(t *testing.T) {
	buf := buildOneIntField(9)
	cb := func(ctx *Context, td *TableDescriptor) {
		IntField[int32](ctx, td, 0, []byte("field_1"), 0, ReadInt32)
	}
	cfg := NewConfig()
	cfg.UnquoteNames = true
	out, ctx := printToString(t, buf, cfg, cb)
	if ctx.Err() != nil {
		t.Fatalf("unexpected error: %v", ctx.Err())
	}
	want := `{field_1:9}`
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

// TestNonIdentifierNameStaysQuoted confirms a name that isn't a bare
// JSON identifier (starts with a digit) is quoted even under the
// unquote-names policy.
func TestNonIdentifierNameStaysQuoted(t *testing.T) {
	buf := buildOneIntField(9)
	cb := func(ctx *Context, td *TableDescriptor) {
		IntField[int32](ctx, td, 0, []byte("1field"), 0, ReadInt32)
	}
	cfg := NewConfig()
	cfg.UnquoteNames = true
	out, ctx := printToString(t, buf, cfg, cb)
	if ctx.Err() != nil {
		t.Fatalf("unexpected error: %v", ctx.Err())
	}
	want := `{"1field":9}`
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

// TestBareIdentifierCacheIsStableAcrossCalls exercises the memoized
// path: isBareIdentifier is called repeatedly for the same name, and
// every call must agree.
func TestBareIdentifierCacheIsStableAcrossCalls(t *testing.T) {
	ids := newIdentifierCache()
	name := []byte("ok_name")
	first := ids.isBareIdentifier(name)
	for i := 0; i < 5; i++ {
		if got := ids.isBareIdentifier(name); got != first {
			t.Fatalf("call %d: got %v, want %v (stable across calls)", i, got, first)
		}
	}
	if !first {
		t.Fatalf("expected %q to be a bare identifier", name)
	}
}
