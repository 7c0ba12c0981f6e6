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
	"strconv"

	"golang.org/x/exp/constraints"
)

// writeInt formats any signed or unsigned integer type with a single
// generic implementation, per spec.md §9's design note: the macro
// family of per-width C emitters collapses into one generic
// parameterized over the numeric type, the same shape the teacher uses
// golang.org/x/exp generics for elsewhere (ion/symtab.go).
func writeInt[T constraints.Integer](ctx *Context, v T) {
	ctx.out.ensure(ctx)
	var buf [20]byte
	var out []byte
	switch any(v).(type) {
	case int8, int16, int32, int64, int:
		out = strconv.AppendInt(buf[:0], int64(v), 10)
	default:
		out = strconv.AppendUint(buf[:0], uint64(v), 10)
	}
	ctx.out.appendRun(ctx, out)
}

// writeFloat formats a float32/float64 using the shortest round-trip
// decimal representation (spec.md §4.2's "Scalar number" guarantee).
// A hex-float formatter could be substituted here behind a build
// option exactly as the original source does (FLATCC_JSON_PRINT_HEX_FLOAT);
// this package does not compile that option in.
func writeFloat[T constraints.Float](ctx *Context, v T, bitSize int) {
	ctx.out.ensure(ctx)
	var buf [32]byte
	out := strconv.AppendFloat(buf[:0], float64(v), 'g', -1, bitSize)
	ctx.out.appendRun(ctx, out)
}

func writeBool(ctx *Context, v bool) {
	ctx.out.ensure(ctx)
	if v {
		ctx.out.appendRun(ctx, literalTrue)
	} else {
		ctx.out.appendRun(ctx, literalFalse)
	}
}

var (
	literalTrue  = []byte("true")
	literalFalse = []byte("false")
	literalNull  = []byte("null")
)

func writeNull(ctx *Context) {
	ctx.out.ensure(ctx)
	ctx.out.appendRun(ctx, literalNull)
}

// WriteRawInt writes v as a bare JSON number, for schema-generated
// enum/union callbacks that fall back to the raw discriminant when a
// value doesn't match any known symbol.
func WriteRawInt(ctx *Context, v int64) {
	writeInt(ctx, v)
}
