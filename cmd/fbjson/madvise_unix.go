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

//go:build linux || darwin

package main

import "golang.org/x/sys/unix"

// adviseSequential hints that the mapped FlatBuffer will be walked
// roughly front-to-back once per root object (SPEC_FULL §4.12). A
// failed hint is not an error worth surfacing to the caller.
func adviseSequential(m []byte) {
	_ = unix.Madvise(m, unix.MADV_SEQUENTIAL)
}
