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
	"github.com/ostafen/nwfsread/internal/nwvol"
)

const (
	volumeTableMagic    = "NetWare Volumes"
	segmentRecordSize   = 60
	volumeTableAreaSize = 4 * 16384 // fixed 64 KiB volume-table area
)

// VolumeSegment is one 60-byte record in the volume segment table: a named
// logical volume's contribution from this image's partition.
type VolumeSegment struct {
	Name               string
	SegmentNum         uint16
	FirstSector        uint32
	NumSectors         uint32
	TotalBlocks        uint32
	FirstSegmentBlock  uint32
	BlockSize          uint32
	RootDirBlockNr     uint32
	RootDirCopyBlockNr uint32
}

func readSegment(buf []byte) VolumeSegment {
	nameLen := int(buf[0])
	name := disk.AsciiWithLength(buf[1:20], nameLen)
	segmentNum := binary.LittleEndian.Uint16(buf[22:24])
	firstSector := binary.LittleEndian.Uint32(buf[24:28])
	numSectors := binary.LittleEndian.Uint32(buf[28:32])
	totalBlocks := binary.LittleEndian.Uint32(buf[32:36])
	firstSegmentBlock := binary.LittleEndian.Uint32(buf[36:40])
	blockValue := binary.LittleEndian.Uint32(buf[44:48])
	rootDirBlockNr := binary.LittleEndian.Uint32(buf[48:52])
	rootDirCopyBlockNr := binary.LittleEndian.Uint32(buf[52:56])

	var blockSize uint32
	if blockValue != 0 {
		blockSize = (256 / blockValue) * 1024
	}

	return VolumeSegment{
		Name:               name,
		SegmentNum:         segmentNum,
		FirstSector:        firstSector,
		NumSectors:         numSectors,
		TotalBlocks:        totalBlocks,
		FirstSegmentBlock:  firstSegmentBlock,
		BlockSize:          blockSize,
		RootDirBlockNr:     rootDirBlockNr,
		RootDirCopyBlockNr: rootDirCopyBlockNr,
	}
}

// ReadVolumeTable reads the volume segment table at offset: a 16-byte
// ASCII magic, a u32 segment count, 12 reserved bytes, then that many
// 60-byte segment records.
func ReadVolumeTable(r io.ReaderAt, offset int64) ([]VolumeSegment, error) {
	header := make([]byte, 32)
	if _, err := r.ReadAt(header, offset); err != nil {
		return nil, fmt.Errorf("reading NW386 volume table header: %w", err)
	}

	magic := disk.AsciizToString(header[0:16])
	if magic != volumeTableMagic {
		return nil, fmt.Errorf("%w: volume table magic mismatch (got %q)", nwvol.ErrVolumeAreaCorrupt, magic)
	}
	numVolumes := binary.LittleEndian.Uint32(header[16:20])

	segments := make([]VolumeSegment, 0, numVolumes)
	recordsOffset := offset + 32
	buf := make([]byte, segmentRecordSize)
	for i := uint32(0); i < numVolumes; i++ {
		at := recordsOffset + int64(i)*segmentRecordSize
		if _, err := r.ReadAt(buf, at); err != nil {
			return nil, fmt.Errorf("reading NW386 volume segment record %d: %w", i, err)
		}
		segments = append(segments, readSegment(buf))
	}
	return segments, nil
}

// FirstDataBlockOffset returns the byte offset of block 0 of the data
// area, given the volume table's own offset.
func FirstDataBlockOffset(volumeTableOffset int64) int64 {
	return volumeTableOffset + volumeTableAreaSize
}
