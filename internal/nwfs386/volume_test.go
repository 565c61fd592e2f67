package nwfs386

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ostafen/nwfsread/internal/disk"
	"github.com/ostafen/nwfsread/internal/nwvol"
)

// buildNW386Image assembles a minimal, single-segment NW386 image on disk:
// one data block holding the directory table (a root-level file and an
// empty subdirectory) and one further block holding the file's content.
// Both the directory chain and the file's block chain terminate after a
// single block, so no FAT entry beyond the chain head is required.
func buildNW386Image(t *testing.T) string {
	t.Helper()
	return writeImage(t, "image.bin", buildNW386ImageBytes(t))
}

func writeImage(t *testing.T, name string, buf []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func buildNW386ImageBytes(t *testing.T) []byte {
	t.Helper()

	const (
		hotfixOffset     = 0x4000
		redirAreaSectors = 2
		volumeTableOff   = hotfixOffset + redirAreaSectors*SectorSize
		dataOff          = volumeTableOff + volumeTableAreaSize
		blockSize        = 4096
		rootDirBlock     = 1 // relative position 1: avoids colliding with its own FAT entry
		fileBlock        = 2
	)

	buf := make([]byte, dataOff+4*blockSize)

	// MBR: one NW386 partition starting at LBA 0.
	buf[446+0x04] = disk.SystemIDNW386
	binary.LittleEndian.PutUint32(buf[446+0x08:446+0x0C], 0)

	// Hotfix header.
	copy(buf[hotfixOffset:hotfixOffset+8], "HOTFIX  ")
	binary.LittleEndian.PutUint32(buf[hotfixOffset+24:hotfixOffset+28], redirAreaSectors)

	// Volume table header + one segment record.
	copy(buf[volumeTableOff:volumeTableOff+16], volumeTableMagic)
	binary.LittleEndian.PutUint32(buf[volumeTableOff+16:volumeTableOff+20], 1)

	seg := buf[volumeTableOff+32 : volumeTableOff+32+segmentRecordSize]
	seg[0] = byte(len("TESTVOL"))
	copy(seg[1:20], "TESTVOL")
	binary.LittleEndian.PutUint32(seg[28:32], 32) // numSectors -> 4 blocks in range
	binary.LittleEndian.PutUint32(seg[36:40], 0)  // firstSegmentBlock
	binary.LittleEndian.PutUint32(seg[44:48], 64) // blockValue -> 4096-byte blocks
	binary.LittleEndian.PutUint32(seg[48:52], rootDirBlock)

	// Directory block: one file, one empty subdirectory, rest available.
	dirBlockOff := dataOff + rootDirBlock*blockSize
	recordsPerBlock := blockSize / directoryRecordSize
	for i := 0; i < recordsPerBlock; i++ {
		rec := buf[dirBlockOff+i*directoryRecordSize : dirBlockOff+(i+1)*directoryRecordSize]
		binary.LittleEndian.PutUint32(rec[0:4], dirIDAvailable)
	}

	fileRec := buf[dirBlockOff : dirBlockOff+directoryRecordSize]
	binary.LittleEndian.PutUint32(fileRec[0:4], RootID)
	binary.LittleEndian.PutUint32(fileRec[4:8], 0) // attr: not a directory
	fileRec[11] = byte(len("HELLO.TXT"))
	copy(fileRec[12:24], "HELLO.TXT")
	binary.LittleEndian.PutUint32(fileRec[48:52], 10) // length
	binary.LittleEndian.PutUint32(fileRec[52:56], fileBlock)

	dirRec := buf[dirBlockOff+directoryRecordSize : dirBlockOff+2*directoryRecordSize]
	binary.LittleEndian.PutUint32(dirRec[0:4], RootID)
	binary.LittleEndian.PutUint32(dirRec[4:8], uint32(AttrDirectory))
	dirRec[11] = byte(len("SUBDIR"))
	copy(dirRec[12:24], "SUBDIR")
	binary.LittleEndian.PutUint32(dirRec[120:124], 200) // directory id

	// FAT entries for the directory chain head and the file's single block.
	fatOff := func(block int) int { return dataOff + block*8 }
	binary.LittleEndian.PutUint32(buf[fatOff(rootDirBlock):], uint32(rootDirBlock))
	binary.LittleEndian.PutUint32(buf[fatOff(rootDirBlock)+4:], FatSentinel)
	binary.LittleEndian.PutUint32(buf[fatOff(fileBlock):], uint32(fileBlock))
	binary.LittleEndian.PutUint32(buf[fatOff(fileBlock)+4:], FatSentinel)

	// File content.
	fileDataOff := dataOff + fileBlock*blockSize
	copy(buf[fileDataOff:fileDataOff+10], "HelloWorld")

	return buf
}

func openTestVolume(t *testing.T) (*disk.Image, *LogicalVolume) {
	t.Helper()
	path := buildNW386Image(t)

	img, err := disk.OpenImage(path)
	require.NoError(t, err)

	vol, err := Open([]*disk.Image{img}, "TESTVOL")
	if err != nil {
		img.Close()
		require.NoError(t, err)
	}
	return img, vol
}

func TestLogicalVolumeListChildren(t *testing.T) {
	img, vol := openTestVolume(t)
	defer img.Close()
	defer vol.Close()

	children, err := vol.ListChildren(vol.RootID())
	require.NoError(t, err)
	require.Len(t, children, 2)

	var sawFile, sawDir bool
	for _, c := range children {
		switch c.Name {
		case "HELLO.TXT":
			sawFile = true
			require.EqualValues(t, 10, c.Size)
		case "SUBDIR":
			sawDir = true
			require.EqualValues(t, 200, c.ID)
		}
	}
	require.True(t, sawFile)
	require.True(t, sawDir)
}

func TestLogicalVolumeOpenFile(t *testing.T) {
	img, vol := openTestVolume(t)
	defer img.Close()
	defer vol.Close()

	data, err := vol.OpenFile(vol.RootID(), "hello.txt")
	require.NoError(t, err, "OpenFile must be case-insensitive")
	require.Equal(t, "HelloWorld", string(data))
}

func TestLogicalVolumeFileByteRuns(t *testing.T) {
	img, vol := openTestVolume(t)
	defer img.Close()
	defer vol.Close()

	runs, err := vol.FileByteRuns(vol.RootID(), "HELLO.TXT")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.EqualValues(t, 0, runs[0].FileOffset)
	require.EqualValues(t, 10, runs[0].Length)
}

func TestLogicalVolumeResolvePath(t *testing.T) {
	img, vol := openTestVolume(t)
	defer img.Close()
	defer vol.Close()

	chain, err := vol.ResolvePath([]string{"SUBDIR"})
	require.NoError(t, err)
	require.Len(t, chain, 1)
	require.Equal(t, "SUBDIR", chain[0].Name)
}

func TestLogicalVolumeOpenFileNotFound(t *testing.T) {
	img, vol := openTestVolume(t)
	defer img.Close()
	defer vol.Close()

	_, err := vol.OpenFile(vol.RootID(), "NOPE.TXT")
	require.Error(t, err)
}

// Offsets mirrored from buildNW386ImageBytes, for tests that patch extra
// records or FAT entries into the fixture before opening it.
const (
	testDataOff   = 0x4000 + 2*SectorSize + volumeTableAreaSize
	testBlockSize = 4096
)

func testDirRecord(buf []byte, ordinal int) []byte {
	dirBlockOff := testDataOff + 1*testBlockSize
	return buf[dirBlockOff+ordinal*directoryRecordSize : dirBlockOff+(ordinal+1)*directoryRecordSize]
}

func putTestFatEntry(buf []byte, block int, index, next uint32) {
	off := testDataOff + block*8
	binary.LittleEndian.PutUint32(buf[off:], index)
	binary.LittleEndian.PutUint32(buf[off+4:], next)
}

func putTestFileRecord(rec []byte, name string, length, blockNr uint32) {
	binary.LittleEndian.PutUint32(rec[0:4], RootID)
	binary.LittleEndian.PutUint32(rec[4:8], 0)
	rec[11] = byte(len(name))
	copy(rec[12:24], name)
	binary.LittleEndian.PutUint32(rec[48:52], length)
	binary.LittleEndian.PutUint32(rec[52:56], blockNr)
}

func openPatchedVolume(t *testing.T, patch func(buf []byte)) (*disk.Image, *LogicalVolume, error) {
	t.Helper()
	buf := buildNW386ImageBytes(t)
	patch(buf)
	path := writeImage(t, "patched.bin", buf)

	img, err := disk.OpenImage(path)
	require.NoError(t, err)

	vol, err := Open([]*disk.Image{img}, "TESTVOL")
	if err != nil {
		img.Close()
		return nil, nil, err
	}
	return img, vol, nil
}

func TestLogicalVolumeTruncatedChain(t *testing.T) {
	// A file whose declared length outruns its FAT chain: 5000 bytes but
	// the chain ends after one 4096-byte block.
	img, vol, err := openPatchedVolume(t, func(buf []byte) {
		putTestFileRecord(testDirRecord(buf, 2), "TRUNC.TXT", 5000, 3)
		putTestFatEntry(buf, 3, 0, FatSentinel)
	})
	require.NoError(t, err)
	defer img.Close()
	defer vol.Close()

	_, err = vol.OpenFile(vol.RootID(), "TRUNC.TXT")
	var truncated *nwvol.TruncatedChainError
	require.ErrorAs(t, err, &truncated)
	require.EqualValues(t, 5000-testBlockSize, truncated.Remaining)
}

func TestLogicalVolumeOversizedChain(t *testing.T) {
	// The declared length is satisfied but the FAT chain keeps going.
	img, vol, err := openPatchedVolume(t, func(buf []byte) {
		putTestFileRecord(testDirRecord(buf, 2), "OVER.TXT", 10, 0)
		putTestFatEntry(buf, 0, 0, 2)
	})
	require.NoError(t, err)
	defer img.Close()
	defer vol.Close()

	_, err = vol.OpenFile(vol.RootID(), "OVER.TXT")
	var oversized *nwvol.OversizedChainError
	require.ErrorAs(t, err, &oversized)
	require.EqualValues(t, 2, oversized.ExtraBlock)
}

func TestLogicalVolumeBlockOutOfRange(t *testing.T) {
	img, vol, err := openPatchedVolume(t, func(buf []byte) {
		putTestFileRecord(testDirRecord(buf, 2), "FAR.TXT", 10, 100)
	})
	require.NoError(t, err)
	defer img.Close()
	defer vol.Close()

	_, err = vol.OpenFile(vol.RootID(), "FAR.TXT")
	var outOfRange *nwvol.BlockOutOfRangeError
	require.ErrorAs(t, err, &outOfRange)
	require.EqualValues(t, 100, outOfRange.Block)
}

func TestLogicalVolumeExcludesDeletedFiles(t *testing.T) {
	img, vol, err := openPatchedVolume(t, func(buf []byte) {
		rec := testDirRecord(buf, 2)
		putTestFileRecord(rec, "DEL.TXT", 10, 2)
		binary.LittleEndian.PutUint32(rec[104:108], uint32(0x215C6B40)) // delete time
	})
	require.NoError(t, err)
	defer img.Close()
	defer vol.Close()

	children, err := vol.ListChildren(vol.RootID())
	require.NoError(t, err)
	for _, c := range children {
		require.NotEqual(t, "DEL.TXT", c.Name, "deleted files must not be listed")
	}

	_, err = vol.OpenFile(vol.RootID(), "DEL.TXT")
	require.ErrorIs(t, err, nwvol.ErrNotFound)
}

func TestLogicalVolumeAmbiguousName(t *testing.T) {
	img, vol, err := openPatchedVolume(t, func(buf []byte) {
		putTestFileRecord(testDirRecord(buf, 2), "hello.txt", 10, 2)
	})
	require.NoError(t, err)
	defer img.Close()
	defer vol.Close()

	_, err = vol.OpenFile(vol.RootID(), "HELLO.TXT")
	require.ErrorIs(t, err, nwvol.ErrAmbiguous)
}

func TestLogicalVolumeCyclicDirectoryChain(t *testing.T) {
	// A root-directory FAT chain that points back at itself must fail the
	// open instead of looping forever.
	_, _, err := openPatchedVolume(t, func(buf []byte) {
		putTestFatEntry(buf, 1, 0, 1)
	})
	var corrupt *nwvol.FatCorruptError
	require.ErrorAs(t, err, &corrupt)
}

// buildSecondSegmentImage assembles an image carrying segment 1 of TESTVOL:
// blocks 4..8, holding the FAT entries and content for a file whose record
// lives in the first image's root directory.
func buildSecondSegmentImage(t *testing.T) []byte {
	t.Helper()

	const (
		hotfixOffset     = 0x4000
		redirAreaSectors = 2
		volumeTableOff   = hotfixOffset + redirAreaSectors*SectorSize
		dataOff          = volumeTableOff + volumeTableAreaSize
	)

	buf := make([]byte, dataOff+4*testBlockSize)

	buf[446+0x04] = disk.SystemIDNW386
	binary.LittleEndian.PutUint32(buf[446+0x08:446+0x0C], 0)

	copy(buf[hotfixOffset:hotfixOffset+8], "HOTFIX  ")
	binary.LittleEndian.PutUint32(buf[hotfixOffset+24:hotfixOffset+28], redirAreaSectors)

	copy(buf[volumeTableOff:volumeTableOff+16], volumeTableMagic)
	binary.LittleEndian.PutUint32(buf[volumeTableOff+16:volumeTableOff+20], 1)

	seg := buf[volumeTableOff+32 : volumeTableOff+32+segmentRecordSize]
	seg[0] = byte(len("TESTVOL"))
	copy(seg[1:20], "TESTVOL")
	binary.LittleEndian.PutUint16(seg[22:24], 1) // segment_num
	binary.LittleEndian.PutUint32(seg[28:32], 32)
	binary.LittleEndian.PutUint32(seg[36:40], 4) // firstSegmentBlock
	binary.LittleEndian.PutUint32(seg[44:48], 64)

	// Blocks 4..8 map to this image's data area at relative positions
	// 0..4; the FAT entries live at the same relative offsets.
	fatOff := func(block int) int { return dataOff + (block-4)*8 }
	binary.LittleEndian.PutUint32(buf[fatOff(5):], 0)
	binary.LittleEndian.PutUint32(buf[fatOff(5)+4:], 6)
	binary.LittleEndian.PutUint32(buf[fatOff(6):], 1)
	binary.LittleEndian.PutUint32(buf[fatOff(6)+4:], FatSentinel)

	content := bytes.Repeat([]byte("0123456789ABCDEF"), (testBlockSize+1904)/16)
	copy(buf[dataOff+(5-4)*testBlockSize:], content[:testBlockSize+1904])

	return buf
}

func TestLogicalVolumeMultiSegmentSpanning(t *testing.T) {
	// Segment 0 (first image) carries the directory table; segment 1
	// (second image) carries blocks 4..8. A file record in the first
	// image points at block 5, so both its FAT chain and its content
	// resolve against the second image.
	const fileLen = testBlockSize + 1904

	first := buildNW386ImageBytes(t)
	putTestFileRecord(testDirRecord(first, 2), "SPAN.TXT", fileLen, 5)
	second := buildSecondSegmentImage(t)

	img1, err := disk.OpenImage(writeImage(t, "seg0.bin", first))
	require.NoError(t, err)
	defer img1.Close()
	img2, err := disk.OpenImage(writeImage(t, "seg1.bin", second))
	require.NoError(t, err)
	defer img2.Close()

	vol, err := Open([]*disk.Image{img1, img2}, "TESTVOL")
	require.NoError(t, err)
	defer vol.Close()

	require.Len(t, vol.segments, 2)
	require.EqualValues(t, 0, vol.segments[0].segment.SegmentNum)
	require.EqualValues(t, 1, vol.segments[1].segment.SegmentNum)

	// Block 5 resolves to the second segment at relative position 1.
	seg, offset, err := vol.seekBlock(5)
	require.NoError(t, err)
	require.Same(t, vol.segments[1], seg)
	require.EqualValues(t, seg.dataOff+1*testBlockSize, offset)

	data, err := vol.OpenFile(vol.RootID(), "SPAN.TXT")
	require.NoError(t, err)
	require.Len(t, data, fileLen)
	require.Equal(t, "0123456789ABCDEF", string(data[:16]))

	runs, err := vol.FileByteRuns(vol.RootID(), "SPAN.TXT")
	require.NoError(t, err)
	require.Len(t, runs, 1, "blocks 5 and 6 are physically contiguous")
	require.EqualValues(t, fileLen, runs[0].Length)
}
