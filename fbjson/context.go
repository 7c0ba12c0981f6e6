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

import "io"

// Context is the printer context of spec.md §3: it owns the output
// buffer, the nesting level, the policy flags, the recursion budget,
// and the latched error code. A Context is not safe for concurrent
// use; callers that need parallelism create one Context per goroutine
// (spec.md §5).
type Context struct {
	cfg Config
	out *outbuf

	level int
	err   ErrorCode
	field string
	msg   string

	ids *identifierCache
}

// NewFileContext creates a Context that flushes to an io.Writer.
func NewFileContext(w io.Writer, cfg Config) *Context {
	return &Context{cfg: cfg, out: newFileBuffer(w), ids: newIdentifierCache()}
}

// NewFixedContext creates a Context backed by an external fixed-size
// buffer. Overflowing it latches ErrOverflow and discards further
// output (spec.md §4.1).
func NewFixedContext(p []byte, cfg Config) *Context {
	return &Context{cfg: cfg, out: newFixedBuffer(p), ids: newIdentifierCache()}
}

// NewDynamicContext creates a Context backed by an owned, growable
// buffer. initial is the starting capacity; zero selects a sensible
// default.
func NewDynamicContext(initial int, cfg Config) *Context {
	return &Context{cfg: cfg, out: newDynamicBuffer(initial), ids: newIdentifierCache()}
}

// Err returns the latched error, or nil if none has been latched.
func (c *Context) Err() error {
	if c.err == ErrNone {
		return nil
	}
	msg := c.msg
	if msg == "" {
		msg = c.err.String()
	}
	return &FieldError{Code: c.err, Field: c.field, Msg: msg}
}

// ErrorCode returns the raw latched error code.
func (c *Context) ErrorCode() ErrorCode { return c.err }

// Total returns the number of bytes emitted so far: those already
// flushed to the sink plus those still sitting in the buffer.
func (c *Context) Total() int { return c.out.total + c.out.cur }

// setError latches an error code. Setting is sticky: once non-zero it
// is never cleared by the core (spec.md §4.8).
func (c *Context) setError(code ErrorCode) {
	if c.err == ErrNone {
		c.err = code
	}
}

// setFieldError latches an error code together with the field name and
// message that explain it (spec.md §4.8, SPEC_FULL §4.15). Like
// setError, the first latch wins.
func (c *Context) setFieldError(code ErrorCode, field, msg string) {
	if c.err != ErrNone {
		return
	}
	c.err = code
	c.field = field
	c.msg = msg
}

// AddLevel adjusts the current nesting level by n. Exposed for
// hand-written callbacks that emit JSON fragments outside of the
// field-emitter contract (SPEC_FULL §9, point 2).
func (c *Context) AddLevel(n int) { c.level += n }

// Level returns the current nesting level.
func (c *Context) Level() int { return c.level }

// Peek returns the bytes buffered so far without flushing or
// transferring ownership (SPEC_FULL §9, point 1; mirrors the original
// flatcc_json_printer_get_buffer).
func (c *Context) Peek() []byte { return c.out.bytes() }

// Clear releases any buffer owned by the context (the dynamic sink's
// backing array) and resets the Context to its zero value, whatever
// its sink kind.
func (c *Context) Clear() {
	if c.out != nil && c.out.kind == sinkDynamic {
		c.out.buf = nil
	}
	*c = Context{}
}
