// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package nwfs386

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ostafen/nwfsread/internal/disk"
)

// HotfixOffset is the fixed byte offset of the hotfix header relative to
// the start of an NW386 partition.
const HotfixOffset = 0x4000

// Hotfix is the NW386 hotfix header. RedirAreaSectors is the only field
// this read-only decoder consults; the rest is informational. No hotfix remapping is performed: blocks are read at
// their raw, unredirected position.
type Hotfix struct {
	ID               string
	VID              uint32
	DataAreaSectors  uint32
	RedirAreaSectors uint32
}

// ReadHotfix parses the one-sector hotfix header at offset.
func ReadHotfix(r io.ReaderAt, offset int64) (*Hotfix, error) {
	buf := make([]byte, SectorSize)
	if _, err := r.ReadAt(buf, offset); err != nil {
		return nil, fmt.Errorf("reading NW386 hotfix header: %w", err)
	}

	return &Hotfix{
		ID:               disk.AsciizToString(buf[0:8]),
		VID:              binary.LittleEndian.Uint32(buf[8:12]),
		DataAreaSectors:  binary.LittleEndian.Uint32(buf[20:24]),
		RedirAreaSectors: binary.LittleEndian.Uint32(buf[24:28]),
	}, nil
}

// Mirror is the NW386 mirror header, read immediately after the hotfix
// header. It carries no data this decoder needs beyond its presence.
type Mirror struct {
	ID         string
	CreateTime Timestamp
	Flags      uint32
	HotfixVID1 uint32
	HotfixVID2 uint32
}

// ReadMirror parses the one-sector mirror header at offset.
func ReadMirror(r io.ReaderAt, offset int64) (*Mirror, error) {
	buf := make([]byte, SectorSize)
	if _, err := r.ReadAt(buf, offset); err != nil {
		return nil, fmt.Errorf("reading NW386 mirror header: %w", err)
	}

	return &Mirror{
		ID:         disk.AsciizToString(buf[0:8]),
		CreateTime: Timestamp(binary.LittleEndian.Uint32(buf[8:12])),
		Flags:      binary.LittleEndian.Uint32(buf[12:16]),
		HotfixVID1: binary.LittleEndian.Uint32(buf[32:36]),
		HotfixVID2: binary.LittleEndian.Uint32(buf[36:40]),
	}, nil
}
