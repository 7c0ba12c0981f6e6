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
	"sync"

	"github.com/dchest/siphash"
)

// siphash key: fixed and unexported, since this cache is purely a
// process-local performance optimization (spec.md §4.2's
// unquote-names policy), not a security boundary.
const (
	siphashK0 = 0x6c7367656e657261
	siphashK1 = 0x746f72466c617442
)

// identifierCache memoizes whether a field/enum name is a bare JSON
// identifier (ASCII letter/underscore followed by letters, digits, or
// underscores) that can be emitted unquoted. A streaming printer calls
// this once per field per emitted record, and the same small set of
// schema-declared names recurs constantly, so memoizing pays for
// itself quickly. Keyed by a siphash of the name bytes, the same
// technique the teacher uses module-wide for fast, collision-resistant
// hashing of untrusted-shaped byte strings.
type identifierCache struct {
	mu sync.Mutex
	m  map[uint64]bool
}

func newIdentifierCache() *identifierCache {
	return &identifierCache{m: make(map[uint64]bool, 64)}
}

func (c *identifierCache) isBareIdentifier(name []byte) bool {
	if len(name) == 0 {
		return false
	}
	key := siphash.Hash(siphashK0, siphashK1, name)
	c.mu.Lock()
	v, ok := c.m[key]
	c.mu.Unlock()
	if ok {
		return v
	}
	v = computeBareIdentifier(name)
	c.mu.Lock()
	c.m[key] = v
	c.mu.Unlock()
	return v
}

func computeBareIdentifier(name []byte) bool {
	c := name[0]
	if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
		return false
	}
	for _, c := range name[1:] {
		if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}
