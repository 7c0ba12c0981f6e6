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

import "sigs.k8s.io/yaml"

// Base64Alphabet selects the alphabet used to render byte vectors.
type Base64Alphabet int

const (
	// Base64Standard is RFC 4648 standard encoding.
	Base64Standard Base64Alphabet = iota
	// Base64URL is RFC 4648 URL-safe encoding.
	Base64URL
)

// Config carries the printer policy flags described in spec.md §3 and
// §4.8. NewConfig returns one with the stated defaults (skip-default
// on, pretty off, standard base64 with padding, MaxDepth 64,
// MaxNameLen 1024). The zero Config does not carry them: skip-default
// and padding are off, and MaxDepth 0 latches ErrDeepRecursion at the
// root table.
type Config struct {
	// Indent is the number of spaces per nesting level. Zero means
	// compact (no whitespace at all).
	Indent int `json:"indent,omitempty"`

	// SkipDefault elides fields whose value equals the schema
	// default. Defaults to true in NewConfig.
	SkipDefault bool `json:"skipDefault,omitempty"`

	// ForceDefault materializes schema defaults for absent fields
	// even though they were not present on the wire.
	ForceDefault bool `json:"forceDefault,omitempty"`

	// UnquoteNames elides quotes around object keys and enum
	// symbols that are bare identifiers.
	UnquoteNames bool `json:"unquoteNames,omitempty"`

	// EnumAsInteger renders enum-typed scalars as their underlying
	// integer instead of calling the discriminant-to-symbol
	// callback.
	EnumAsInteger bool `json:"enumAsInteger,omitempty"`

	// Base64 selects the byte-vector alphabet.
	Base64 Base64Alphabet `json:"base64,omitempty"`

	// Base64Padding controls whether the final base64 chunk is
	// padded. Defaults to true in NewConfig.
	Base64Padding bool `json:"base64Padding,omitempty"`

	// MaxDepth bounds table-traversal recursion (the "ttl" of
	// spec.md §3/§4.6). Defaults to 64 in NewConfig.
	MaxDepth int `json:"maxDepth,omitempty"`

	// Identifier, when non-empty, must match the 4-byte file
	// identifier at the root header, byte for byte. An empty
	// Identifier accepts any buffer (spec.md §9 Open Question).
	Identifier string `json:"identifier,omitempty"`

	// MaxNameLen caps the name length of union and union-vector
	// fields; a longer name latches ErrBadInput (spec.md §7). Other
	// field names and enum symbols are not checked. Defaults to 1024
	// in NewConfig.
	MaxNameLen int `json:"maxNameLen,omitempty"`
}

// NewConfig returns a Config with the spec's stated defaults applied.
func NewConfig() Config {
	return Config{
		SkipDefault:   true,
		Base64Padding: true,
		MaxDepth:      64,
		MaxNameLen:    1024,
	}
}

// LoadConfig reads a YAML document (JSON is a YAML subset, so plain
// JSON config files also work) into a Config that already carries
// NewConfig's defaults, the same technique the teacher's blockfmt
// indexes use for their on-disk descriptors: YAML in, JSON struct
// tags, sigs.k8s.io/yaml bridging the two.
func LoadConfig(doc []byte) (Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(doc, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
