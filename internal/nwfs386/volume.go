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
	"sort"
	"strings"

	"github.com/ostafen/nwfsread/internal/disk"
	"github.com/ostafen/nwfsread/internal/nwvol"
)

// RootID is the constant identity of an NW386 volume's root directory; it
// is the record whose chain starts at the segment's rootdir_block_nr, not
// a record stored in the directory table itself.
const RootID uint32 = 0

// segmentInImage binds one matched VolumeSegment to the cloned image
// handle it was read from, so interleaved reads across segments never
// share a cursor.
type segmentInImage struct {
	image   *disk.Image
	segment VolumeSegment
	dataOff int64
}

func (s *segmentInImage) blockRange() (first, last uint32) {
	sectorsPerBlock := s.segment.BlockSize / disk.SectorSize
	first = s.segment.FirstSegmentBlock
	if sectorsPerBlock == 0 {
		return first, first
	}
	last = first + s.segment.NumSectors/sectorsPerBlock
	return
}

// LogicalVolume is the user-visible NW386 volume: the ordered union of
// every on-disk segment, across every image, whose name matches.
type LogicalVolume struct {
	name     string
	segments []*segmentInImage
	dirs     []*DirEntry
}

// Open binds name to every matching segment across images, in ascending
// segment-number order, then builds the in-memory directory table by
// chasing the root directory's FAT chain.
func Open(images []*disk.Image, name string) (*LogicalVolume, error) {
	var matched []*segmentInImage

	for _, img := range images {
		if img.Partition.Type != disk.PartitionNW386 {
			continue
		}
		part, err := OpenPartition(img, int64(img.PartitionStartByte))
		if err != nil {
			return nil, err
		}
		for _, seg := range part.Segments {
			if seg.Name != name {
				continue
			}
			clone, err := img.Clone()
			if err != nil {
				return nil, err
			}
			matched = append(matched, &segmentInImage{
				image:   clone,
				segment: seg,
				dataOff: part.FirstDataBlockOff,
			})
		}
	}

	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: %q", nwvol.ErrVolumeNotFound, name)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].segment.SegmentNum < matched[j].segment.SegmentNum
	})

	vol := &LogicalVolume{name: name, segments: matched}
	if err := vol.readDirectory(); err != nil {
		vol.Close()
		return nil, err
	}
	return vol, nil
}

func (v *LogicalVolume) Name() string { return v.name }

func (v *LogicalVolume) RootID() uint32 { return RootID }

func (v *LogicalVolume) Close() error {
	var first error
	for _, s := range v.segments {
		if err := s.image.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// readDirectory chases the root segment's rootdir_block_nr chain,
// building one flat table across however many blocks the chain covers.
// The walk is bounded by the volume's total block count: a chain longer
// than that can only mean a FAT cycle.
func (v *LogicalVolume) readDirectory() error {
	root := v.segments[0]
	blockSize := root.segment.BlockSize
	recordsPerBlock := int(blockSize) / directoryRecordSize

	var maxSteps uint32
	for _, s := range v.segments {
		first, last := s.blockRange()
		maxSteps += last - first
	}

	var steps uint32
	current := root.segment.RootDirBlockNr
	for current != FatSentinel {
		if steps++; steps > maxSteps {
			return &nwvol.FatCorruptError{Block: current}
		}
		seg, offset, err := v.seekBlock(current)
		if err != nil {
			return err
		}

		buf := make([]byte, blockSize)
		if _, err := seg.image.ReadAt(buf, offset); err != nil {
			return fmt.Errorf("reading NW386 directory block %d: %w", current, err)
		}
		for i := 0; i < recordsPerBlock; i++ {
			rec := buf[i*directoryRecordSize : (i+1)*directoryRecordSize]
			entry, err := ParseDirEntry(rec)
			if err != nil {
				return err
			}
			v.dirs = append(v.dirs, entry)
		}

		fat, err := v.readFatEntry(current)
		if err != nil {
			return err
		}
		current = fat.Next
	}
	return nil
}

// seekBlock resolves block to the segment that covers it and returns the
// byte offset within that segment's image.
func (v *LogicalVolume) seekBlock(block uint32) (*segmentInImage, int64, error) {
	for _, seg := range v.segments {
		first, last := seg.blockRange()
		if block >= first && block < last {
			offset := seg.dataOff + int64(block-first)*int64(seg.segment.BlockSize)
			return seg, offset, nil
		}
	}
	return nil, 0, &nwvol.BlockOutOfRangeError{Block: block}
}

func (v *LogicalVolume) readFatEntry(block uint32) (FatEntry, error) {
	for _, seg := range v.segments {
		first, last := seg.blockRange()
		if block >= first && block < last {
			offset := seg.dataOff + int64(block-first)*FatEntrySize
			buf := make([]byte, FatEntrySize)
			if _, err := seg.image.ReadAt(buf, offset); err != nil {
				return FatEntry{}, fmt.Errorf("reading NW386 FAT entry for block %d: %w", block, err)
			}
			return ParseFatEntry(buf), nil
		}
	}
	return FatEntry{}, &nwvol.FatCorruptError{Block: block}
}

// toQueryEntry projects a raw record into the query surface. ID is the
// value a caller feeds back into ListChildren to descend further: for a
// directory that is its own DirectoryID (the value its children store as
// ParentDirID), for a file it is the record's table position plus one,
// which never needs to be looked up again.
func (v *LogicalVolume) toQueryEntry(index int, d *DirEntry) nwvol.Entry {
	kind := nwvol.KindFile
	id := uint32(index) + 1
	size := uint64(0)
	blockNr := uint32(0)
	if d.Kind == KindDirectory {
		kind = nwvol.KindDirectory
		id = d.DirectoryID
		blockNr = d.DirectoryID
	} else {
		size = uint64(d.Length)
		blockNr = d.BlockNr
	}
	return nwvol.Entry{
		ID:         id,
		ParentID:   d.ParentDirID,
		Name:       d.Name,
		Kind:       kind,
		Size:       size,
		BlockNr:    blockNr,
		CreatedAt:  d.CreateTime.Time(),
		ModifiedAt: d.ModifyTime.Time(),
		Deleted:    d.IsDeleted(),
		Attributes: d.Attr.String(),
	}
}

func (v *LogicalVolume) ListChildren(parentID uint32) ([]nwvol.Entry, error) {
	var out []nwvol.Entry
	for i, d := range v.dirs {
		if d.Kind != KindFile && d.Kind != KindDirectory {
			continue
		}
		if d.ParentDirID != parentID {
			continue
		}
		if d.IsDeleted() {
			continue
		}
		out = append(out, v.toQueryEntry(i, d))
	}
	return out, nil
}

func (v *LogicalVolume) ResolvePath(components []string) ([]nwvol.Entry, error) {
	parent := v.RootID()
	var chain []nwvol.Entry
	for _, comp := range components {
		if comp == "" {
			continue
		}
		children, err := v.ListChildren(parent)
		if err != nil {
			return nil, err
		}
		var match *nwvol.Entry
		for i := range children {
			if !strings.EqualFold(children[i].Name, comp) {
				continue
			}
			if match != nil {
				return nil, fmt.Errorf("%w: %q", nwvol.ErrAmbiguous, comp)
			}
			match = &children[i]
		}
		if match == nil {
			return nil, fmt.Errorf("%w: %q", nwvol.ErrNotFound, comp)
		}
		chain = append(chain, *match)
		parent = match.ID
	}
	return chain, nil
}

func (v *LogicalVolume) OpenFile(parentID uint32, name string) ([]byte, error) {
	var match *DirEntry
	for _, d := range v.dirs {
		if d.Kind != KindFile || d.ParentDirID != parentID || d.IsDeleted() {
			continue
		}
		if !strings.EqualFold(d.Name, name) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %q", nwvol.ErrAmbiguous, name)
		}
		match = d
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %q", nwvol.ErrNotFound, name)
	}
	return v.readFile(match)
}

// FileByteRuns walks the same FAT chain as readFile, without copying data,
// returning the on-disk extents backing the file's content in logical
// order. Each run is resolved against whichever segment covers its block,
// so a file chain that crosses a segment boundary mid-read still reports
// accurate image offsets for each side of the crossing.
func (v *LogicalVolume) FileByteRuns(parentID uint32, name string) ([]nwvol.ByteRun, error) {
	var match *DirEntry
	for _, d := range v.dirs {
		if d.Kind != KindFile || d.ParentDirID != parentID || d.IsDeleted() {
			continue
		}
		if !strings.EqualFold(d.Name, name) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %q", nwvol.ErrAmbiguous, name)
		}
		match = d
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %q", nwvol.ErrNotFound, name)
	}

	blockSize := v.segments[0].segment.BlockSize
	var runs []nwvol.ByteRun
	var fileOffset uint64
	remaining := int64(match.Length)
	block := match.BlockNr

	for remaining > 0 {
		_, offset, err := v.seekBlock(block)
		if err != nil {
			return nil, err
		}
		toRead := int64(blockSize)
		if remaining < toRead {
			toRead = remaining
		}
		runs = nwvol.AppendRun(runs, fileOffset, uint64(offset), uint64(toRead))
		fileOffset += uint64(toRead)
		remaining -= toRead

		if remaining == 0 {
			break
		}
		fat, err := v.readFatEntry(block)
		if err != nil {
			return nil, err
		}
		if fat.Next == FatSentinel {
			return nil, &nwvol.TruncatedChainError{Remaining: remaining}
		}
		block = fat.Next
	}
	return runs, nil
}

// readFile walks the FAT chain from start_block, copying min(block_size,
// remaining) bytes from each block, until length bytes are collected.
// Termination is expected to coincide with the sentinel; a mismatch is
// reported as a truncated or oversized chain.
func (v *LogicalVolume) readFile(d *DirEntry) ([]byte, error) {
	blockSize := v.segments[0].segment.BlockSize
	out := make([]byte, 0, d.Length)
	remaining := int64(d.Length)
	block := d.BlockNr

	for remaining > 0 {
		seg, offset, err := v.seekBlock(block)
		if err != nil {
			return nil, err
		}
		toRead := int64(blockSize)
		if remaining < toRead {
			toRead = remaining
		}
		buf := make([]byte, toRead)
		if _, err := seg.image.ReadAt(buf, offset); err != nil {
			return nil, fmt.Errorf("reading NW386 data block %d: %w", block, err)
		}
		out = append(out, buf...)
		remaining -= toRead

		fat, err := v.readFatEntry(block)
		if err != nil {
			return nil, err
		}
		if remaining == 0 {
			if fat.Next != FatSentinel {
				return nil, &nwvol.OversizedChainError{ExtraBlock: fat.Next}
			}
			break
		}
		if fat.Next == FatSentinel {
			return nil, &nwvol.TruncatedChainError{Remaining: remaining}
		}
		block = fat.Next
	}
	return out, nil
}
