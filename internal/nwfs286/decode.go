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
package nwfs286

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ostafen/nwfsread/internal/disk"
	"github.com/ostafen/nwfsread/internal/nwvol"
)

const (
	sectorVolumeInfo   = 0x10
	directoryEntrySize = 32
	fatEntrySize       = 4
	volumeInfoMagic    = 0xFADE
	entriesPerBlock    = BlockSize / directoryEntrySize
	fatEntriesPerBlock = BlockSize / fatEntrySize
	// RootID is the constant value every root-level record carries as its
	// ParentDir; there is no on-disk record for the root itself, and no
	// table entry's own ID is offset to avoid it (entry ids start at 0).
	RootID uint32 = 1
)

// VolumeInfo is the parsed contents of the dual-layout volume-info sector
// at sector 0x10.
type VolumeInfo struct {
	Name                string
	EntryCount          int
	DirectoryBlocks     []uint16
	DirectoryCopyBlocks []uint16
	FatBlocks           []uint16
}

// LoadVolumeInfo reads and parses the volume-info sector. The sector's
// layout branches on whether the first 16-bit word is zero: a zero word
// is followed by the 0xFADE magic and a 16-byte name at offset 6; a
// non-zero word leaves the name in place as a 14-byte field at offset 2.
func LoadVolumeInfo(r io.ReaderAt) (*VolumeInfo, error) {
	sector := make([]byte, SectorSize)
	if _, err := r.ReadAt(sector, sectorVolumeInfo*SectorSize); err != nil {
		return nil, fmt.Errorf("reading NW286 volume info sector: %w", err)
	}

	id := binary.LittleEndian.Uint16(sector[0:2])

	var nameOffset, nameLen, afterNameOffset int
	if id == 0 {
		magic := binary.LittleEndian.Uint16(sector[2:4])
		if magic != volumeInfoMagic {
			return nil, fmt.Errorf("%w: volume info magic mismatch (got 0x%04X)", nwvol.ErrVolumeAreaCorrupt, magic)
		}
		nameOffset = 6
		nameLen = 16
		afterNameOffset = 22
	} else {
		nameOffset = 2
		nameLen = 14
		afterNameOffset = 20
	}
	name := disk.AsciizToString(sector[nameOffset : nameOffset+nameLen])

	cursor := afterNameOffset
	// remap field: historically used for bad-block remapping, not consulted here.
	cursor += 2
	entryCount := int(sector[cursor])
	cursor++
	cursor++ // reserved byte
	if cursor+3*2*entryCount > len(sector) {
		return nil, fmt.Errorf("%w: entry count %d overruns the volume info sector", nwvol.ErrVolumeAreaCorrupt, entryCount)
	}

	readBlocks := func(n int) []uint16 {
		blocks := make([]uint16, n)
		for i := 0; i < n; i++ {
			blocks[i] = binary.LittleEndian.Uint16(sector[cursor : cursor+2])
			cursor += 2
		}
		return blocks
	}

	dirBlocks := readBlocks(entryCount)
	dirCopyBlocks := readBlocks(entryCount)
	fatBlocks := readBlocks(entryCount)

	return &VolumeInfo{
		Name:                name,
		EntryCount:          entryCount,
		DirectoryBlocks:     dirBlocks,
		DirectoryCopyBlocks: dirCopyBlocks,
		FatBlocks:           fatBlocks,
	}, nil
}

// DirectoryEntry is one raw 32-byte NW286 directory record. ID is the
// record's 0-based ordinal position across the whole directory table,
// the same convention a child's ParentDir field references, so a
// directory's ID is exactly what its children carry as ParentDir.
type DirectoryEntry struct {
	ID               uint32
	ParentDir        uint32
	Name             string
	Attr             Attr
	Size             uint32
	CreationDate     NwDate
	LastAccessedDate NwDate
	LastModifiedDate NwDate
	LastModifiedTime NwTime
	BlockNr          uint16
}

func (e *DirectoryEntry) IsDirectory() bool { return e.Attr.IsDirectoryMarker() }

// BlockToOffset converts an NW286 block number to a byte offset, per the
// fixed formula this decoder supports: partitions starting at LBA 1 only.
// startLBA is the partition's own starting LBA as discovered in the MBR;
// any other value means the general offset formula (which would also fold
// in the partition start and any hotfix-like reservation) is unknown, and
// the caller should reject the image rather than silently misread it.
func BlockToOffset(block uint16, startLBA uint32) (uint64, error) {
	if startLBA != 1 {
		return 0, fmt.Errorf("%w: NW286 partition starts at LBA %d, not 1", nwvol.ErrUnsupportedLayout, startLBA)
	}
	return (uint64(block) + 4) * BlockSize, nil
}

// ReadDirectoryTable reads every 32-byte record out of the given blocks, in
// order, assigning sequential ordinal ids across the whole table.
func ReadDirectoryTable(r io.ReaderAt, blocks []uint16, startLBA uint32) ([]DirectoryEntry, error) {
	entries := make([]DirectoryEntry, 0, len(blocks)*entriesPerBlock)

	var ordinal uint32
	block := make([]byte, BlockSize)
	for _, b := range blocks {
		off, err := BlockToOffset(b, startLBA)
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadAt(block, int64(off)); err != nil {
			return nil, fmt.Errorf("reading NW286 directory block %d: %w", b, err)
		}

		for i := 0; i < entriesPerBlock; i++ {
			rec := block[i*directoryEntrySize : (i+1)*directoryEntrySize]
			entries = append(entries, parseDirectoryEntry(rec, ordinal))
			ordinal++
		}
	}
	return entries, nil
}

// parseDirectoryEntry parses one 32-byte record. The 14-byte tail after attr
// carries different fields depending on the directory-marker bit: a file
// record has size+creation+accessed+modified+block_nr; a directory record
// has only a last-modified date/time followed by five reserved words.
// Directories have no block chain of their own since the whole volume
// shares one flat directory table.
func parseDirectoryEntry(rec []byte, ordinal uint32) DirectoryEntry {
	parentDir := binary.BigEndian.Uint16(rec[0:2])
	name := disk.AsciizToString(rec[2:16])
	attr := Attr(binary.LittleEndian.Uint16(rec[16:18]))

	entry := DirectoryEntry{
		ID:        ordinal,
		ParentDir: uint32(parentDir),
		Name:      name,
		Attr:      attr,
	}

	if attr.IsDirectoryMarker() {
		entry.LastModifiedDate = NwDate(binary.LittleEndian.Uint16(rec[18:20]))
		entry.LastModifiedTime = NwTime(binary.LittleEndian.Uint16(rec[20:22]))
		// rec[22:32]: five reserved u16s, not consulted here.
	} else {
		sizeHi := binary.BigEndian.Uint16(rec[18:20])
		sizeLo := binary.BigEndian.Uint16(rec[20:22])
		entry.Size = uint32(sizeHi)<<16 | uint32(sizeLo)
		entry.CreationDate = NwDate(binary.LittleEndian.Uint16(rec[22:24]))
		entry.LastAccessedDate = NwDate(binary.LittleEndian.Uint16(rec[24:26]))
		entry.LastModifiedDate = NwDate(binary.LittleEndian.Uint16(rec[26:28]))
		entry.LastModifiedTime = NwTime(binary.LittleEndian.Uint16(rec[28:30]))
		entry.BlockNr = binary.LittleEndian.Uint16(rec[30:32])
	}

	return entry
}

// FatEntry is one 4-byte NW286 FAT record: an ordinal index paired with the
// next block number in the chain it belongs to.
type FatEntry struct {
	Index uint16
	Next  uint16
}

// ReadFATTable reads every 4-byte (index, next) pair out of the given
// blocks, in order.
func ReadFATTable(r io.ReaderAt, blocks []uint16, startLBA uint32) ([]FatEntry, error) {
	entries := make([]FatEntry, 0, len(blocks)*fatEntriesPerBlock)

	block := make([]byte, BlockSize)
	for _, b := range blocks {
		off, err := BlockToOffset(b, startLBA)
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadAt(block, int64(off)); err != nil {
			return nil, fmt.Errorf("reading NW286 FAT block %d: %w", b, err)
		}

		for i := 0; i < fatEntriesPerBlock; i++ {
			rec := block[i*fatEntrySize : (i+1)*fatEntrySize]
			entries = append(entries, FatEntry{
				Index: binary.LittleEndian.Uint16(rec[0:2]),
				Next:  binary.LittleEndian.Uint16(rec[2:4]),
			})
		}
	}
	return entries, nil
}
