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

// Package testschema stands in for the flatc-generated bindings a real
// schema compiler would emit (fbjson/callback.go's ABI is the contract
// such a compiler targets). It hand-writes one small schema — a
// "Widget" table with a nested table, a struct, a union, a union
// vector, and an enum field — so fbjson's core package has something
// concrete to traverse in its tests, the way ion/datum_test.go
// hand-builds ion bytes rather than depending on a higher-level
// builder package.
package testschema

import "github.com/flatjson/fbprint/fbjson"

// Field ids, in schema declaration order. A union consumes two
// adjacent ids: the discriminant at id-1, the value offset at id.
const (
	FieldX        = 0 // int32, default 7
	FieldY        = 1 // int32, default 2
	FieldS        = 2 // string
	FieldData     = 3 // [ubyte], rendered as base64
	FieldChild    = 4 // Widget (nested table)
	FieldPt       = 5 // Point (struct)
	FieldKindType = 6 // union discriminant
	FieldKind     = 7 // union value
	FieldKindsT   = 8 // union-vector discriminant vector
	FieldKinds    = 9 // union-vector value vector
	FieldStatus   = 10
	FieldTags     = 11 // [string]
	FieldNums     = 12 // [int32]
)

// Variant discriminants for the Kind/Kinds union fields.
const (
	KindNone fbjson.UType = 0
	KindA    fbjson.UType = 1
	KindB    fbjson.UType = 2
)

// Status is a small bitflag-free enum used by the Status field.
type Status uint8

const (
	StatusOK    Status = 0
	StatusWarn  Status = 1
	StatusError Status = 2
)

// WidgetTable is the TableCallback a schema compiler would generate
// for the Widget table: one field emitter call per declared field, in
// declaration order.
func WidgetTable(ctx *fbjson.Context, td *fbjson.TableDescriptor) {
	fbjson.IntField(ctx, td, FieldX, []byte("x"), int32(7), readInt32)
	fbjson.IntField(ctx, td, FieldY, []byte("y"), int32(2), readInt32)
	fbjson.StringField(ctx, td, FieldS, []byte("s"))
	fbjson.ByteVectorBase64Field(ctx, td, FieldData, []byte("data"))
	fbjson.TableField(ctx, td, FieldChild, []byte("child"), WidgetTable)
	fbjson.StructField(ctx, td, FieldPt, []byte("pt"), PointStruct)
	fbjson.UnionField(ctx, td, FieldKind, []byte("kind"), KindTypeName, KindTable)
	fbjson.UnionVectorField(ctx, td, FieldKinds, []byte("kinds"), KindTypeName, KindTable)
	fbjson.EnumField(ctx, td, FieldStatus, []byte("status"), uint8(StatusOK), readUint8, StatusName)
	fbjson.StringVectorField(ctx, td, FieldTags, []byte("tags"))
	fbjson.IntVectorField(ctx, td, FieldNums, []byte("nums"), 4, readInt32)
}

// PointStruct is the StructCallback for a fixed 8-byte struct with two
// inline int32 fields and no vtable.
func PointStruct(ctx *fbjson.Context, buf []byte, base int) {
	fbjson.IntStructField(ctx, 0, buf, base, 0, []byte("ax"), readInt32)
	fbjson.IntStructField(ctx, 1, buf, base, 4, []byte("ay"), readInt32)
}

// KindTypeName is the UnionTypeCallback for the Kind/Kinds union: it
// renders the discriminant as its variant's symbol name, falling back
// to the raw integer for an unrecognized value.
func KindTypeName(ctx *fbjson.Context, disc fbjson.UType) {
	switch disc {
	case KindA:
		ctx.WriteRawString(`"A"`)
	case KindB:
		ctx.WriteRawString(`"B"`)
	default:
		fbjson.WriteRawInt(ctx, int64(disc))
	}
}

// KindTable is the TableCallback dispatched through a union descriptor:
// td.Union carries the discriminant selecting which variant body to
// read.
func KindTable(ctx *fbjson.Context, td *fbjson.TableDescriptor) {
	switch td.Union {
	case KindA:
		AVariantTable(ctx, td)
	case KindB:
		BVariantTable(ctx, td)
	}
}

// AVariantTable is the Kind union's "A" variant: a single int32 field.
func AVariantTable(ctx *fbjson.Context, td *fbjson.TableDescriptor) {
	fbjson.IntField(ctx, td, 0, []byte("value"), int32(0), readInt32)
}

// BVariantTable is the Kind union's "B" variant: a single string field.
func BVariantTable(ctx *fbjson.Context, td *fbjson.TableDescriptor) {
	fbjson.StringField(ctx, td, 0, []byte("label"))
}

// StatusName is the EnumCallback[uint8] for the Status field.
func StatusName(ctx *fbjson.Context, v uint8) {
	switch Status(v) {
	case StatusOK:
		ctx.WriteRawString(`"OK"`)
	case StatusWarn:
		ctx.WriteRawString(`"WARN"`)
	case StatusError:
		ctx.WriteRawString(`"ERROR"`)
	default:
		fbjson.WriteRawInt(ctx, int64(v))
	}
}

func readInt32(buf []byte, off int) int32 { return fbjson.ReadInt32(buf, off) }
func readUint8(buf []byte, off int) uint8 { return fbjson.ReadUint8(buf, off) }
