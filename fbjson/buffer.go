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

// reserve is the tail portion of the output buffer guaranteed to be
// large enough for any single primitive emit (a number, an escape
// sequence, a short keyword) without a per-byte bounds check. Sized
// generously above the longest possible single write this package
// performs directly into the tail (a float64 in the worst case plus a
// handful of structural bytes).
const reserve = 64

// defaultBufSize and defaultFlushSize mirror the teacher's CLI-facing
// defaults: a comfortably large working set with headroom above
// reserve.
const (
	defaultBufSize   = 32 * 1024
	defaultFlushSize = defaultBufSize - reserve
)

// sinkKind identifies which of the three flush disciplines spec.md
// §4.1 describes a buffer is using.
type sinkKind int

const (
	sinkFile sinkKind = iota
	sinkFixed
	sinkDynamic
)

// outbuf is the printer context's output buffer: spec.md §3's
// "Output buffer" entity and §4.1's flush discipline. It accumulates
// bytes, flushes to a sink on demand, and tracks totals and overflow.
//
// There is no Go analog for this in the teacher's ion package (the
// teacher's ion.Buffer in ion/writer.go is a pure in-memory object
// builder with no sink/flush concept at all) — this is grounded
// directly on the flatcc C runtime's flatcc_json_printer_flush family.
type outbuf struct {
	buf        []byte
	cur        int // write cursor, index into buf
	flushSize  int // bytes written to the sink per partial flush
	total      int // bytes that have reached the sink so far
	kind       sinkKind
	w          io.Writer // sinkFile
	errLatched bool      // sinkFixed/sinkDynamic: overflow already latched once
}

func newFileBuffer(w io.Writer) *outbuf {
	return &outbuf{
		buf:       make([]byte, defaultBufSize),
		flushSize: defaultFlushSize,
		kind:      sinkFile,
		w:         w,
	}
}

// newFixedBuffer wraps an external, fixed-size buffer. Overflow is
// latched (spec.md §4.1) rather than ever growing the slice.
func newFixedBuffer(p []byte) *outbuf {
	return &outbuf{
		buf:       p,
		flushSize: len(p) - reserve,
		kind:      sinkFixed,
	}
}

// newDynamicBuffer allocates an owned, growable buffer. Growth doubles
// capacity (spec.md §5's "geometric, ×2, no upper bound other than
// allocator failure").
func newDynamicBuffer(initial int) *outbuf {
	if initial < reserve {
		initial = defaultBufSize
	}
	return &outbuf{
		buf:       make([]byte, initial),
		flushSize: initial - reserve,
		kind:      sinkDynamic,
	}
}

// threshold is the cursor position at or beyond which a flush is due.
func (b *outbuf) threshold() int { return b.flushSize }

// appendByte is unchecked by contract: callers must ensure at least
// 'reserve' bytes of headroom before calling it (spec.md §4.1).
func (b *outbuf) appendByte(c byte) {
	b.buf[b.cur] = c
	b.cur++
}

// ensure guarantees at least 'reserve' bytes of headroom past the
// cursor, flushing first if necessary. Every primitive emitter calls
// this before writing directly into the tail.
func (b *outbuf) ensure(ctx *Context) {
	if b.cur >= b.threshold() {
		b.flushPartial(ctx)
	}
}

// appendRun appends an arbitrary-length byte run, loading the buffer
// to the threshold and flushing in a loop when the run is longer than
// the remaining headroom (spec.md §4.1).
func (b *outbuf) appendRun(ctx *Context, p []byte) {
	for len(p) > 0 {
		if b.cur >= b.threshold() {
			b.flushPartial(ctx)
			if ctx.err != ErrNone {
				return
			}
		}
		k := b.threshold() - b.cur
		if k > len(p) {
			k = len(p)
		}
		copy(b.buf[b.cur:], p[:k])
		b.cur += k
		p = p[k:]
	}
}

// flushPartial implements spec.md §4.1's "Partial" flush mode, one
// sink at a time. It is a no-op below threshold: callers like indent()
// and finalNewline call it unconditionally on every compact-mode break
// point, not just once the buffer has actually filled up, mirroring
// the original's flatcc_json_printer_flush_partial, which re-checks
// ctx->p >= ctx->pflush itself before ever touching ctx->flush. ensure
// and appendRun check the threshold themselves before calling it.
func (b *outbuf) flushPartial(ctx *Context) {
	if b.cur < b.threshold() {
		return
	}
	switch b.kind {
	case sinkFile:
		n, err := b.w.Write(b.buf[:b.flushSize])
		if err != nil {
			// File-handle errors are not caught by the core
			// (spec.md §4.1 "Sinks"): best effort, keep going.
			_ = err
		}
		spill := b.cur - b.flushSize
		copy(b.buf, b.buf[b.flushSize:b.cur])
		b.cur = spill
		b.total += n
	case sinkFixed:
		b.total += b.cur
		b.cur = 0
		ctx.setError(ErrOverflow)
	case sinkDynamic:
		grown := make([]byte, len(b.buf)*2)
		copy(grown, b.buf[:b.cur])
		b.buf = grown
		b.flushSize = len(b.buf) - reserve
	}
}

// flushFull implements spec.md §4.1's "Full" flush mode: write
// whatever remains and reset the cursor to zero.
func (b *outbuf) flushFull(ctx *Context) {
	switch b.kind {
	case sinkFile:
		n, err := b.w.Write(b.buf[:b.cur])
		if err != nil {
			_ = err
		}
		b.total += n
		b.cur = 0
	case sinkFixed:
		b.total += b.cur
		b.cur = 0
		ctx.setError(ErrOverflow)
	case sinkDynamic:
		// Nothing to write to; the bytes already belong to the
		// owned buffer and are still sitting at b.buf[:b.cur]. total
		// stays zero so Context.Total (total+cur) doesn't double
		// count what a full flush would otherwise have retired.
	}
}

// bytes returns the buffered-but-not-yet-flushed contents, for the
// dynamic sink's Peek/Finalize.
func (b *outbuf) bytes() []byte { return b.buf[:b.cur] }
