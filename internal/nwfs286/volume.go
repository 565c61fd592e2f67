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
	"fmt"
	"strings"

	"github.com/ostafen/nwfsread/internal/disk"
	"github.com/ostafen/nwfsread/internal/nwvol"
)

// Volume is an opened NW286 logical volume. Unlike NW386, NW286 has no
// documented multi-segment/multi-image spanning: one volume is backed by
// exactly one partition on exactly one image.
type Volume struct {
	image *disk.Image
	info  *VolumeInfo
	dirs  []DirectoryEntry
	fat   []FatEntry
}

// Open locates the NetWare partition on image, loads its volume-info
// sector, and builds the in-memory directory and FAT tables.
func Open(image *disk.Image) (*Volume, error) {
	if image.Partition.Type != disk.PartitionNW286 {
		return nil, fmt.Errorf("image %q does not carry an NW286 partition", image.Path)
	}
	startLBA := image.Partition.StartLBA

	info, err := LoadVolumeInfo(image)
	if err != nil {
		return nil, err
	}

	dirs, err := ReadDirectoryTable(image, info.DirectoryBlocks, startLBA)
	if err != nil {
		return nil, err
	}

	fat, err := ReadFATTable(image, info.FatBlocks, startLBA)
	if err != nil {
		return nil, err
	}

	return &Volume{image: image, info: info, dirs: dirs, fat: fat}, nil
}

func (v *Volume) Name() string   { return v.info.Name }
func (v *Volume) RootID() uint32 { return RootID }
func (v *Volume) Close() error   { return v.image.Close() }

func (v *Volume) entryByID(id uint32) (*DirectoryEntry, bool) {
	for i := range v.dirs {
		if v.dirs[i].ID == id {
			return &v.dirs[i], true
		}
	}
	return nil, false
}

func (v *Volume) ListChildren(parentID uint32) ([]nwvol.Entry, error) {
	var out []nwvol.Entry
	for i := range v.dirs {
		d := &v.dirs[i]
		if d.ParentDir != parentID {
			continue
		}
		out = append(out, v.toQueryEntry(d))
	}
	return out, nil
}

func (v *Volume) toQueryEntry(d *DirectoryEntry) nwvol.Entry {
	kind := nwvol.KindFile
	if d.IsDirectory() {
		kind = nwvol.KindDirectory
	}
	return nwvol.Entry{
		ID:         d.ID,
		ParentID:   d.ParentDir,
		Name:       d.Name,
		Kind:       kind,
		Size:       uint64(d.Size),
		BlockNr:    uint32(d.BlockNr),
		CreatedAt:  CombineTimestamp(d.CreationDate, NwTime(0)),
		ModifiedAt: CombineTimestamp(d.LastModifiedDate, d.LastModifiedTime),
		Attributes: d.Attr.String(),
	}
}

func (v *Volume) ResolvePath(components []string) ([]nwvol.Entry, error) {
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

func (v *Volume) OpenFile(parentID uint32, name string) ([]byte, error) {
	match, err := v.lookupFile(parentID, name)
	if err != nil {
		return nil, err
	}
	return v.readFile(match)
}

func (v *Volume) lookupFile(parentID uint32, name string) (*DirectoryEntry, error) {
	var match *DirectoryEntry
	for i := range v.dirs {
		d := &v.dirs[i]
		if d.ParentDir != parentID || d.IsDirectory() || !strings.EqualFold(d.Name, name) {
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
	return match, nil
}

// FileByteRuns walks the same block_nr -> fat[block_nr].Next chain as
// readFile, without copying data, returning the on-disk extents backing the
// file's content in logical order.
func (v *Volume) FileByteRuns(parentID uint32, name string) ([]nwvol.ByteRun, error) {
	d, err := v.lookupFile(parentID, name)
	if err != nil {
		return nil, err
	}

	var runs []nwvol.ByteRun
	var fileOffset uint64
	remaining := int64(d.Size)
	block := d.BlockNr

	for remaining > 0 {
		off, err := BlockToOffset(block, v.image.Partition.StartLBA)
		if err != nil {
			return nil, err
		}
		toRead := int64(BlockSize)
		if remaining < toRead {
			toRead = remaining
		}
		runs = nwvol.AppendRun(runs, fileOffset, off, uint64(toRead))
		fileOffset += uint64(toRead)
		remaining -= toRead

		if remaining == 0 {
			break
		}
		if int(block) >= len(v.fat) {
			return nil, &nwvol.FatCorruptError{Block: uint32(block)}
		}
		block = v.fat[block].Next
	}
	return runs, nil
}

// readFile walks block_nr -> fat[block_nr].Next, copying min(BlockSize,
// remaining) bytes from each block, until the declared size is exhausted.
// Termination is size-driven: NW286 FAT chains carry no sentinel value.
func (v *Volume) readFile(d *DirectoryEntry) ([]byte, error) {
	if d.IsDirectory() {
		return nil, fmt.Errorf("%w: %q", nwvol.ErrNotAFile, d.Name)
	}

	out := make([]byte, 0, d.Size)
	remaining := int64(d.Size)
	block := d.BlockNr

	for remaining > 0 {
		off, err := BlockToOffset(block, v.image.Partition.StartLBA)
		if err != nil {
			return nil, err
		}
		toRead := int64(BlockSize)
		if remaining < toRead {
			toRead = remaining
		}
		buf := make([]byte, toRead)
		if _, err := v.image.ReadAt(buf, int64(off)); err != nil {
			return nil, fmt.Errorf("reading NW286 data block %d: %w", block, err)
		}
		out = append(out, buf...)
		remaining -= toRead

		if remaining == 0 {
			break
		}
		if int(block) >= len(v.fat) {
			return nil, &nwvol.FatCorruptError{Block: uint32(block)}
		}
		block = v.fat[block].Next
	}
	return out, nil
}
