//go:build windows
// +build windows

package mmap

import (
	"errors"
	"os"
)

// MmapFile mirrors the unix declaration so that callers holding a
// *MmapFile field compile unchanged; mapping itself is not implemented on
// Windows and NewMmapFile always fails, leaving callers on their plain
// ReadAt fallback.
type MmapFile struct {
	Data         []byte
	File         *os.File
	FileSize     int
	MappedOffset int
	MappedLength int
}

var errNotSupported = errors.New("mmap: not supported on windows")

func NewMmapFile(filePath string) (*MmapFile, error) {
	return nil, errNotSupported
}

func NewMmapFileRegion(filePath string, offset int, length int) (*MmapFile, error) {
	return nil, errNotSupported
}

func (mr *MmapFile) Close() error { return nil }

func (mr *MmapFile) ReadAt(p []byte, off int64) (int, error) {
	return 0, errNotSupported
}
