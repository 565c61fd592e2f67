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
package disk

import (
	"fmt"
	"io"
)

// PartitionType identifies which NetWare on-disk format a partition table
// entry's system id maps to.
type PartitionType int

const (
	PartitionUnknown PartitionType = iota
	PartitionNW286
	PartitionNW386
)

func (t PartitionType) String() string {
	switch t {
	case PartitionNW286:
		return "NWFS-286"
	case PartitionNW386:
		return "NWFS-386"
	default:
		return "unknown"
	}
}

// System id bytes used by NetWare partitions in the MBR partition table.
const (
	SystemIDNW286 = 0x64
	SystemIDNW386 = 0x65
)

const (
	mbrPartitionTableOffset = 446
	mbrEntrySize            = 16
	mbrEntryCount           = 4
)

// Partition is the result of scanning an image's MBR for the first
// recognized NetWare partition.
type Partition struct {
	Type     PartitionType
	StartLBA uint32
}

// FindPartition reads the legacy MBR partition table at offset 446 of r and
// returns the first entry whose system id matches a known NetWare type. It
// returns (nil, nil) when no such entry exists; absence is not an error,
// the caller decides whether that is fatal.
func FindPartition(r io.ReaderAt) (*Partition, error) {
	table := make([]byte, mbrEntryCount*mbrEntrySize)
	if _, err := r.ReadAt(table, mbrPartitionTableOffset); err != nil {
		return nil, fmt.Errorf("reading MBR partition table: %w", err)
	}

	for i := 0; i < mbrEntryCount; i++ {
		entry := table[i*mbrEntrySize : (i+1)*mbrEntrySize]
		systemID := entry[0x04]

		var ptype PartitionType
		switch systemID {
		case SystemIDNW386:
			ptype = PartitionNW386
		case SystemIDNW286:
			ptype = PartitionNW286
		default:
			continue
		}

		startLBA := readU32LE(entry[0x08:0x0C])
		return &Partition{Type: ptype, StartLBA: startLBA}, nil
	}
	return nil, nil
}
