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

// This file defines the callback ABI schema-generated code is expected
// to implement (spec.md §1: "the schema compiler that generates
// per-type printer callbacks... the core only defines the callback ABI
// it invokes"). Tagged-variant dispatch maps naturally onto Go function
// values (spec.md §9's design note), so there is no open-world
// interface here — just the four callback shapes the traversal driver
// and field emitters invoke.

// TableCallback is invoked once per table object with a descriptor
// already resolved against that table's vtable. It must call one
// field emitter per declared field, in schema order.
type TableCallback func(ctx *Context, td *TableDescriptor)

// StructCallback is invoked with the absolute address of a struct's
// fixed inline layout (structs have no vtable). It must call one
// struct-field emitter per declared field, in declaration order.
type StructCallback func(ctx *Context, buf []byte, base int)

// EnumCallback[T] formats an enum-typed scalar field's value: a quoted
// symbol, a numeric fallback for unknown values, or — for bitflag
// enums — a quoted, space-separated list of symbol names (spec.md
// §4.5's "Enum scalar" value family).
type EnumCallback[T constraints.Integer] func(ctx *Context, v T)

// UnionTypeCallback formats a union discriminant or vector-of-union
// discriminant as a JSON value: a quoted symbol, or a numeric fallback
// for an unrecognized discriminant. Declared as an alias of
// EnumCallback[UType] (rather than a distinct named type) so a single
// schema-generated callback can be passed both to UnionField/
// UnionVectorField and, via EnumVectorField, to the shared enum-vector
// emitter without a conversion at the call site.
type UnionTypeCallback = EnumCallback[UType]
