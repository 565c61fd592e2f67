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

// Package inspect implements the low-level structural dump: MBR partition
// discovery, hotfix/mirror/volume-segment headers or NW286 volume-info,
// and the raw directory table, with human-readable timestamps. It never
// goes through the nwvol query surface: it exists to show the bytes as
// decoded, not the filesystem they describe.
package inspect

import (
	"fmt"
	"io"

	"github.com/ostafen/nwfsread/internal/disk"
	"github.com/ostafen/nwfsread/internal/nwfs286"
	"github.com/ostafen/nwfsread/internal/nwfs386"
)

// Dump writes a structural report of image to w: partition discovery,
// format-specific headers, and the full directory table.
func Dump(w io.Writer, image *disk.Image) error {
	fmt.Fprintf(w, "partition offset: 0x%x (LBA %d)\n", image.PartitionStartByte, image.Partition.StartLBA)
	fmt.Fprintf(w, "partition type:   %s\n\n", image.Partition.Type)

	switch image.Partition.Type {
	case disk.PartitionNW286:
		return dumpNW286(w, image)
	case disk.PartitionNW386:
		return dumpNW386(w, image)
	default:
		return fmt.Errorf("no NetWare partition found in %q", image.Path)
	}
}

func dumpNW286(w io.Writer, image *disk.Image) error {
	info, err := nwfs286.LoadVolumeInfo(image)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "volume name:    %s\n", info.Name)
	fmt.Fprintf(w, "entry count:    %d\n", info.EntryCount)
	fmt.Fprintf(w, "directory blocks:      %v\n", info.DirectoryBlocks)
	fmt.Fprintf(w, "directory copy blocks: %v\n", info.DirectoryCopyBlocks)
	fmt.Fprintf(w, "fat blocks:            %v\n\n", info.FatBlocks)

	startLBA := image.Partition.StartLBA
	entries, err := nwfs286.ReadDirectoryTable(image, info.DirectoryBlocks, startLBA)
	if err != nil {
		return err
	}
	for _, e := range entries {
		kind := "file     "
		if e.IsDirectory() {
			kind = "directory"
		}
		fmt.Fprintf(w, "[%5d] %s parent=%-5d attr=%s name=%-14q size=%-10d block=%d modified=%s\n",
			e.ID, kind, e.ParentDir, e.Attr, e.Name, e.Size, e.BlockNr,
			nwfs286.CombineTimestamp(e.LastModifiedDate, e.LastModifiedTime).Format("2006-01-02 15:04:05"))
	}
	return nil
}

func dumpNW386(w io.Writer, image *disk.Image) error {
	hotfixOffset := int64(image.PartitionStartByte) + nwfs386.HotfixOffset
	hotfix, err := nwfs386.ReadHotfix(image, hotfixOffset)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "hotfix: id=%q v_id=%d data_area_sectors=%d redir_area_sectors=%d\n",
		hotfix.ID, hotfix.VID, hotfix.DataAreaSectors, hotfix.RedirAreaSectors)

	mirrorOffset := hotfixOffset + nwfs386.SectorSize
	mirror, err := nwfs386.ReadMirror(image, mirrorOffset)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "mirror: id=%q create_time=%s flags=0x%x\n\n",
		mirror.ID, mirror.CreateTime.Time().Format("2006-01-02 15:04:05"), mirror.Flags)

	volumeTableOffset := hotfixOffset + int64(hotfix.RedirAreaSectors)*nwfs386.SectorSize
	segments, err := nwfs386.ReadVolumeTable(image, volumeTableOffset)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		fmt.Fprintln(w, "no volume segments found")
		return nil
	}

	for _, seg := range segments {
		fmt.Fprintf(w, "segment: name=%q segment_num=%d first_sector=%d num_sectors=%d block_size=%d rootdir_block_nr=%d\n",
			seg.Name, seg.SegmentNum, seg.FirstSector, seg.NumSectors, seg.BlockSize, seg.RootDirBlockNr)
	}
	fmt.Fprintln(w)

	firstDataBlockOffset := nwfs386.FirstDataBlockOffset(volumeTableOffset)
	seg := segments[0]
	return dumpDirectoryChain(w, image, firstDataBlockOffset, seg.RootDirBlockNr, seg.BlockSize)
}

func dumpDirectoryChain(w io.Writer, image *disk.Image, firstDataBlockOffset int64, startBlock, blockSize uint32) error {
	fmt.Fprintf(w, "dump_fat_chain: entry %d ->\n", startBlock)

	current := startBlock
	for current != nwfs386.FatSentinel {
		fatOffset := firstDataBlockOffset + int64(current)*nwfs386.FatEntrySize
		buf := make([]byte, nwfs386.FatEntrySize)
		if _, err := image.ReadAt(buf, fatOffset); err != nil {
			return fmt.Errorf("reading fat entry for block %d: %w", current, err)
		}
		fat := nwfs386.ParseFatEntry(buf)
		fmt.Fprintf(w, "  %d/%d\n", fat.Index, fat.Next)

		blockOffset := firstDataBlockOffset + int64(current)*int64(blockSize)
		if err := dumpDirBlock(w, image, blockOffset, blockSize); err != nil {
			return err
		}
		current = fat.Next
	}
	return nil
}

func dumpDirBlock(w io.Writer, image *disk.Image, offset int64, blockSize uint32) error {
	buf := make([]byte, blockSize)
	if _, err := image.ReadAt(buf, offset); err != nil {
		return fmt.Errorf("reading directory block at 0x%x: %w", offset, err)
	}

	recordsPerBlock := int(blockSize) / 128
	for i := 0; i < recordsPerBlock; i++ {
		rec := buf[i*128 : (i+1)*128]
		entry, err := nwfs386.ParseDirEntry(rec)
		if err != nil {
			return err
		}
		dumpDirEntry(w, entry)
	}
	return nil
}

func dumpDirEntry(w io.Writer, e *nwfs386.DirEntry) {
	switch e.Kind {
	case nwfs386.KindAvailable:
		fmt.Fprintln(w, "  <available>")
	case nwfs386.KindGrantList:
		fmt.Fprintf(w, "  <grant-list> trustees=%d\n", len(e.Trustees))
	case nwfs386.KindVolumeInformation:
		fmt.Fprintf(w, "  <volume-info> owner=%d created=%s modified=%s\n",
			e.OwnerID, e.CreateTime.Time().Format("2006-01-02"), e.ModifyTime.Time().Format("2006-01-02"))
	case nwfs386.KindFile:
		status := ""
		if e.IsDeleted() {
			status = " [deleted]"
		}
		fmt.Fprintf(w, "  <file> parent=%d name=%-14q attr=%s length=%d block=%d modified=%s%s\n",
			e.ParentDirID, e.Name, e.Attr, e.Length, e.BlockNr,
			e.ModifyTime.Time().Format("2006-01-02 15:04:05"), status)
	case nwfs386.KindDirectory:
		fmt.Fprintf(w, "  <directory> parent=%d name=%-14q attr=%s directory_id=%d modified=%s\n",
			e.ParentDirID, e.Name, e.Attr, e.DirectoryID, e.ModifyTime.Time().Format("2006-01-02 15:04:05"))
	}
}
