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

package main

import (
	"fmt"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/zstd"
)

// inputBuf is a FlatBuffer ready for the printer: either a zero-copy
// mmap of the input file (SPEC_FULL §4.12) or, for stdin and
// zstd-compressed input, an owned heap buffer. unmap releases the
// mmap, if any; it is a no-op for an owned buffer.
type inputBuf struct {
	bytes []byte
	m     mmap.MMap // non-nil only when bytes is mmap-backed
}

func (b *inputBuf) unmap() {
	if b.m != nil {
		b.m.Unmap()
		b.m = nil
	}
}

// loadInput opens arg (or reads stdin for "-"), memory-maps regular
// files for zero-copy access, and decompresses zstd input into an
// owned buffer when asked (SPEC_FULL §4.13). The printer only ever
// sees a flat byte slice either way.
func loadInput(arg string, isZstd bool) (*inputBuf, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return finishInput(data, nil, isZstd)
	}

	f, err := os.Open(arg)
	if err != nil {
		return nil, fmt.Errorf("opening: %w", err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}
	adviseSequential(m)
	return finishInput(m, m, isZstd)
}

func finishInput(data []byte, m mmap.MMap, isZstd bool) (*inputBuf, error) {
	if !isZstd {
		return &inputBuf{bytes: data, m: m}, nil
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	defer dec.Close()
	plain, err := dec.DecodeAll(data, nil)
	if m != nil {
		m.Unmap()
	}
	if err != nil {
		return nil, fmt.Errorf("zstd: decompressing: %w", err)
	}
	return &inputBuf{bytes: plain}, nil
}
