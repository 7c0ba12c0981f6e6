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

import "encoding/base64"

// base64Chunk is the number of input bytes encoded per iteration: a
// multiple of 3 so that no intermediate chunk boundary introduces
// padding (spec.md §4.5's byte-vector emitter). Only the final chunk
// receives padding, and only if padding is enabled.
const base64Chunk = 3 * 256 // 768 bytes in -> 1024 bytes out per chunk

// writeBase64 writes data as a quoted base64 string, encoding in
// chunks whose boundaries always fall on a multiple of 3 input bytes,
// so chunk boundaries never introduce spurious padding. Only the final
// chunk is encoded with padding applied (if cfg.Base64Padding is set).
// Chunks have a fixed size (base64Chunk) and are not aligned to flush
// boundaries; appendRun flushes underneath them as needed.
func (c *Context) writeBase64(data []byte) {
	enc := c.encoding()
	c.out.ensure(c)
	c.out.appendByte('"')
	for len(data) > base64Chunk {
		chunk := data[:base64Chunk]
		data = data[base64Chunk:]
		c.writeBase64Chunk(enc.WithPadding(base64.NoPadding), chunk)
	}
	c.writeBase64Chunk(enc, data)
	c.out.ensure(c)
	c.out.appendByte('"')
}

func (c *Context) writeBase64Chunk(enc *base64.Encoding, chunk []byte) {
	n := enc.EncodedLen(len(chunk))
	dst := make([]byte, n)
	enc.Encode(dst, chunk)
	c.out.appendRun(c, dst)
}

func (c *Context) encoding() *base64.Encoding {
	var enc *base64.Encoding
	if c.cfg.Base64 == Base64URL {
		enc = base64.URLEncoding
	} else {
		enc = base64.StdEncoding
	}
	if !c.cfg.Base64Padding {
		enc = enc.WithPadding(base64.NoPadding)
	}
	return enc
}
