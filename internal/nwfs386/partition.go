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
	"fmt"
	"io"
)

// NWPartition is the parsed header chain of one NW386 partition: hotfix,
// mirror, and volume segment table.
type NWPartition struct {
	Hotfix            *Hotfix
	Mirror            *Mirror
	Segments          []VolumeSegment
	FirstDataBlockOff int64
}

// OpenPartition parses the hotfix header, mirror header, and volume
// segment table of the NW386 partition starting at partitionStartByte
// within r.
func OpenPartition(r io.ReaderAt, partitionStartByte int64) (*NWPartition, error) {
	hotfixOffset := partitionStartByte + HotfixOffset

	hotfix, err := ReadHotfix(r, hotfixOffset)
	if err != nil {
		return nil, err
	}

	mirrorOffset := hotfixOffset + SectorSize
	mirror, err := ReadMirror(r, mirrorOffset)
	if err != nil {
		return nil, err
	}

	volumeTableOffset := hotfixOffset + int64(hotfix.RedirAreaSectors)*SectorSize
	segments, err := ReadVolumeTable(r, volumeTableOffset)
	if err != nil {
		return nil, fmt.Errorf("partition at byte %d: %w", partitionStartByte, err)
	}

	return &NWPartition{
		Hotfix:            hotfix,
		Mirror:            mirror,
		Segments:          segments,
		FirstDataBlockOff: FirstDataBlockOffset(volumeTableOffset),
	}, nil
}
