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

import "fmt"

// ErrorCode identifies the kind of error latched into a Context.
// Once set it is never cleared by the core (spec.md §7, §4.8).
type ErrorCode int

const (
	// ErrNone means no error has been latched.
	ErrNone ErrorCode = iota
	// ErrBadInput covers a malformed header, an identifier mismatch,
	// or a field name longer than the configured cap.
	ErrBadInput
	// ErrDeepRecursion means the table-traversal ttl reached zero.
	ErrDeepRecursion
	// ErrOverflow means a fixed buffer filled up or was flushed with
	// Context.Flush, or a dynamic buffer's reallocation failed.
	ErrOverflow
	// ErrUnknown is reserved.
	ErrUnknown
)

func (e ErrorCode) String() string {
	switch e {
	case ErrNone:
		return "no error"
	case ErrBadInput:
		return "bad input"
	case ErrDeepRecursion:
		return "max recursion depth reached"
	case ErrOverflow:
		return "buffer overflow"
	case ErrUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// FieldError is the error type Context.Err returns for any latched
// code. Field is set only when the cause was a specific named field
// (for example: a field name exceeding the configured identifier
// length cap). It mirrors
// the teacher's ion.TypeError: a small structured error type for the one
// failure mode worth telling callers more about than an opaque code.
type FieldError struct {
	Code  ErrorCode
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("fbjson: %s: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("fbjson: %s: field %q: %s", e.Code, e.Field, e.Msg)
}
