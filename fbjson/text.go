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

import "unicode/utf8"

// safeSet holds true for the ASCII bytes that need no escaping inside
// a JSON string: everything except the control characters (0-31), the
// double quote, and the backslash. Adapted directly from the teacher's
// ion/reader_escape.go (itself adapted from the Go standard library's
// encoding/json), minus the U+2028/U+2029 JSONP-safety escaping that
// package adds — spec.md §4.2 only calls for the ASCII escape set,
// control bytes, and a UTF-8 pass-through for bytes >= 0x80.
var safeSet = [utf8.RuneSelf]bool{}

func init() {
	for i := range safeSet {
		safeSet[i] = i >= 0x20 && i != '"' && i != '\\'
	}
}

var hexDigits = "0123456789abcdef"

// WriteEscapedString writes a quoted, escaped JSON string (spec.md
// §4.2's "String" primitive). Bytes >= 0x80 pass through unchanged:
// this package does not validate UTF-8 beyond the ASCII escape set
// (spec.md §1 Non-goals).
func (c *Context) WriteEscapedString(body []byte) {
	c.out.ensure(c)
	c.out.appendByte('"')
	start := 0
	for i := 0; i < len(body); i++ {
		b := body[i]
		if b >= utf8.RuneSelf || safeSet[b] {
			continue
		}
		if start < i {
			c.out.appendRun(c, body[start:i])
		}
		c.out.ensure(c)
		c.out.appendByte('\\')
		switch b {
		case '"', '\\':
			c.out.appendByte(b)
		case '\t':
			c.out.appendByte('t')
		case '\n':
			c.out.appendByte('n')
		case '\r':
			c.out.appendByte('r')
		case '\f':
			c.out.appendByte('f')
		case '\b':
			c.out.appendByte('b')
		default:
			c.out.appendByte('u')
			c.out.appendByte('0')
			c.out.appendByte('0')
			c.out.appendByte(hexDigits[b>>4])
			c.out.appendByte(hexDigits[b&0xf])
		}
		start = i + 1
	}
	if start < len(body) {
		c.out.appendRun(c, body[start:])
	}
	c.out.ensure(c)
	c.out.appendByte('"')
}

// writeSymbol writes a name (an enum symbol or a field/union name)
// like a string but without escape scanning, eliding the surrounding
// quotes when unquote-names is active and the symbol is a bare
// identifier (spec.md §4.2's "Symbol" primitive).
func (c *Context) writeSymbol(name []byte) {
	quote := !(c.cfg.UnquoteNames && c.ids.isBareIdentifier(name))
	c.out.ensure(c)
	if quote {
		c.out.appendByte('"')
	}
	c.out.appendRun(c, name)
	c.out.ensure(c)
	if quote {
		c.out.appendByte('"')
	}
}

// WriteRawString writes raw bytes with no quoting or escaping, for
// hand-written callbacks that want to emit a JSON fragment directly
// (SPEC_FULL §9, point 2; mirrors the original flatcc_json_printer_write).
func (c *Context) WriteRawString(s string) {
	c.out.appendRun(c, []byte(s))
}

// WriteByte writes a single raw byte (SPEC_FULL §9, point 2; mirrors
// flatcc_json_printer_char).
func (c *Context) WriteByte(b byte) {
	c.out.ensure(c)
	c.out.appendByte(b)
}

// Newline writes a bare newline and performs a partial flush,
// independent of pretty mode (SPEC_FULL §9, point 2; mirrors
// flatcc_json_printer_nl).
func (c *Context) Newline() {
	c.out.ensure(c)
	c.out.appendByte('\n')
	c.out.flushPartial(c)
}

// Indent emits the current-level indent without the preceding newline
// a field name would normally add (SPEC_FULL §9, point 2).
func (c *Context) Indent() {
	n := c.level * c.cfg.Indent
	for n > 0 {
		c.out.ensure(c)
		k := c.out.threshold() - c.out.cur
		if k > n {
			k = n
		}
		for i := 0; i < k; i++ {
			c.out.buf[c.out.cur+i] = ' '
		}
		c.out.cur += k
		n -= k
	}
}

// indent is spec.md §4.2's "Indent" primitive: in pretty mode, a
// newline followed by level*indent spaces; in compact mode, a partial
// flush instead, amortizing flushes around natural break points.
func (c *Context) indent() {
	if c.cfg.Indent <= 0 {
		c.out.flushPartial(c)
		return
	}
	c.out.ensure(c)
	c.out.appendByte('\n')
	n := c.level * c.cfg.Indent
	for n > 0 {
		c.out.ensure(c)
		k := c.out.threshold() - c.out.cur
		if k > n {
			k = n
		}
		for i := 0; i < k; i++ {
			c.out.buf[c.out.cur+i] = ' '
		}
		c.out.cur += k
		n -= k
	}
}

// writeNamePrefix is spec.md §4.2's "Name prefix" primitive: indent,
// quoted symbol, colon, then a single space iff pretty.
func (c *Context) writeNamePrefix(name []byte) {
	c.indent()
	c.writeSymbol(name)
	c.out.ensure(c)
	c.out.appendByte(':')
	if c.cfg.Indent > 0 {
		c.out.appendByte(' ')
	}
}

// writeOpen writes a structural opening delimiter and increments the
// nesting level.
func (c *Context) writeOpen(delim byte) {
	c.level++
	c.out.ensure(c)
	c.out.appendByte(delim)
}

// writeClose writes the indent-and-close sequence for a structural
// closing delimiter, then decrements the nesting level.
func (c *Context) writeClose(delim byte) {
	if c.cfg.Indent > 0 {
		c.out.ensure(c)
		c.out.appendByte('\n')
		c.level--
		n := c.level * c.cfg.Indent
		for n > 0 {
			c.out.ensure(c)
			k := c.out.threshold() - c.out.cur
			if k > n {
				k = n
			}
			for i := 0; i < k; i++ {
				c.out.buf[c.out.cur+i] = ' '
			}
			c.out.cur += k
			n -= k
		}
	} else {
		c.level--
	}
	c.out.ensure(c)
	c.out.appendByte(delim)
}

// writeComma writes a single ',' delimiter.
func (c *Context) writeComma() {
	c.out.ensure(c)
	c.out.appendByte(',')
}

// finalNewline emits a trailing newline at top level in pretty mode,
// then performs a partial flush (spec.md §4.7's "finalize" behavior;
// the original's print_last_nl flushes partially, not fully, so a
// sequence of root prints sharing one Context keeps amortizing flushes
// the same way mid-stream output does).
func (c *Context) finalNewline() {
	if c.cfg.Indent > 0 && c.level == 0 {
		c.out.ensure(c)
		c.out.appendByte('\n')
	}
	c.out.flushPartial(c)
}

// Flush performs a full flush of any buffered output to the sink. A
// caller printing a sequence of root objects to a file or writer calls
// this once after the last one (mirroring the original's explicit
// flatcc_json_printer_flush, used the way the teacher's cmd/dump calls
// bufio.Writer.Flush once after its print loop, not after every file).
// A fixed-buffer Context has no sink to write to: Flush latches
// ErrOverflow and resets its cursor.
func (c *Context) Flush() {
	c.out.flushFull(c)
}
