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
	"bytes"
	"encoding/base64"
	"testing"
)

// encodeViaContext runs data through writeBase64 directly (bypassing
// the table/vtable machinery this file's sibling tests exercise) so
// the chunking boundary itself can be tested at lengths well past
// base64Chunk without hand-building an oversized vector fixture.
func encodeViaContext(t *testing.T, data []byte, cfg Config) string {
	t.Helper()
	ctx := NewDynamicContext(0, cfg)
	ctx.writeBase64(data)
	out, _ := FinalizeDynamicBuffer(ctx)
	return string(out)
}

func TestBase64ChunkBoundary(t *testing.T) {
	cfg := NewConfig()
	sizes := []int{0, 1, 2, 3, base64Chunk - 1, base64Chunk, base64Chunk + 1, base64Chunk*2 + 5}
	for _, n := range sizes {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i * 37)
		}
		got := encodeViaContext(t, data, cfg)
		if len(got) < 2 || got[0] != '"' || got[len(got)-1] != '"' {
			t.Fatalf("size %d: not a quoted string: %q", n, got)
		}
		inner := got[1 : len(got)-1]
		decoded, err := base64.StdEncoding.DecodeString(inner)
		if err != nil {
			t.Fatalf("size %d: decode failed: %v (encoded %q)", n, err, inner)
		}
		if !bytes.Equal(decoded, data) {
			t.Fatalf("size %d: round-trip mismatch", n)
		}
	}
}

func TestBase64NoPaddingOption(t *testing.T) {
	cfg := NewConfig()
	cfg.Base64Padding = false
	data := []byte("fooba") // 5 bytes -> padded form would end in '='
	got := encodeViaContext(t, data, cfg)
	if bytes.ContainsRune([]byte(got), '=') {
		t.Fatalf("padding disabled but output contains '=': %q", got)
	}
}

func TestBase64URLAlphabet(t *testing.T) {
	cfg := NewConfig()
	cfg.Base64 = Base64URL
	// chosen to produce a standard-alphabet '+' or '/' if using
	// the wrong table: 0xFB 0xFF 0xBF encodes to "+/+/" in
	// standard form, "-_-_" in URL form.
	data := []byte{0xfb, 0xff, 0xbf}
	got := encodeViaContext(t, data, cfg)
	if bytes.ContainsAny([]byte(got), "+/") {
		t.Fatalf("URL alphabet requested but got standard-alphabet characters: %q", got)
	}
}
