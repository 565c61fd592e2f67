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

import "encoding/binary"

// FatEntrySize is the on-disk size of one NW386 FAT record.
const FatEntrySize = 8

// FatSentinel terminates both directory-page chains and file-extent
// chains.
const FatSentinel uint32 = 0xFFFFFFFF

// FatEntry is one 8-byte NW386 FAT record. Index is this entry's ordinal
// position within the chain it belongs to (0, 1, 2, ...); Next is the
// following block number, or FatSentinel at the chain's end.
type FatEntry struct {
	Index uint32
	Next  uint32
}

// ParseFatEntry decodes one 8-byte (index, next) pair.
func ParseFatEntry(buf []byte) FatEntry {
	return FatEntry{
		Index: binary.LittleEndian.Uint32(buf[0:4]),
		Next:  binary.LittleEndian.Uint32(buf[4:8]),
	}
}
