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

// emitTableObject is the traversal driver of spec.md §4.6: it
// decrements ttl, latching ErrDeepRecursion and returning if it would
// reach zero; otherwise it opens '{', builds a descriptor, invokes the
// schema callback, and closes '}'.
func emitTableObject(ctx *Context, buf []byte, addr int, ttl int, union UType, cb TableCallback) {
	ttl--
	if ttl <= 0 {
		ctx.setError(ErrDeepRecursion)
		return
	}
	ctx.writeOpen('{')
	td := newTableDescriptor(buf, addr, ttl, union)
	cb(ctx, &td)
	ctx.writeClose('}')
}
