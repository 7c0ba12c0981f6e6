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

// Package fbjson implements the runtime core of a streaming printer
// that converts an in-memory FlatBuffers binary payload into JSON
// text: vtable-indirected field lookup, union dispatch, a buffered
// output sink with spill/flush, and the JSON text shape described by
// the schema this package is generated against.
//
// The package does not know how to read a schema; it only defines the
// callback ABI (see callback.go) that schema-generated code invokes.
package fbjson

// UOffset is an unsigned 4-byte file offset, always relative to the
// address that contains it.
type UOffset = uint32

// SOffset is a signed 4-byte offset, used to point backwards from a
// table to its vtable.
type SOffset = int32

// VOffset is an unsigned 2-byte offset into a table body, stored in a
// vtable. Zero means the field is absent.
type VOffset = uint16

// UType is a union discriminant. Zero means "none".
type UType = uint8

const (
	uoffsetSize = 4
	soffsetSize = 4
	voffsetSize = 2
)
