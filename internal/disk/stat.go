//go:build !windows
// +build !windows

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
	"os"
	"runtime"
	"syscall"
	"unsafe"
)

// DefaultSectorSize is the assumed sector size for regular files, or when a
// device's sector size cannot be determined.
const DefaultSectorSize = 512

// MediaInfo describes the opened disk device or image file: whether it is a
// raw block device or a plain image file, its sector size, and its total
// size in bytes.
type MediaInfo struct {
	Path       string
	SectorSize int64
	RealSize   int64
	IsDevice   bool
}

// Stat opens devicePath read-only and determines its sector size and total
// size, using Linux ioctls for raw block devices and Seek-to-end for regular
// image files.
func Stat(devicePath string) (*MediaInfo, error) {
	f, err := os.Open(devicePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", devicePath, err)
	}
	defer f.Close()

	info := &MediaInfo{Path: devicePath, SectorSize: DefaultSectorSize}

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", devicePath, err)
	}
	info.IsDevice = fi.Mode()&os.ModeDevice != 0

	if info.IsDevice && runtime.GOOS == "linux" {
		if sz, err := getSectorSizeLinux(f); err == nil {
			info.SectorSize = sz
		}
		if sz, err := getDiskSizeLinux(f); err == nil {
			info.RealSize = sz
		} else if sz, err := f.Seek(0, io.SeekEnd); err == nil {
			info.RealSize = sz
		} else {
			return nil, fmt.Errorf("could not determine device size for %q: %w", devicePath, err)
		}
	} else {
		sz, err := f.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, fmt.Errorf("could not determine size for %q: %w", devicePath, err)
		}
		info.RealSize = sz
	}

	if info.RealSize == 0 {
		return nil, fmt.Errorf("%q has zero size", devicePath)
	}
	return info, nil
}

func getSectorSizeLinux(file *os.File) (int64, error) {
	var sectorSize uint32
	const blkSszGet = 0x1268
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, file.Fd(), blkSszGet, uintptr(unsafe.Pointer(&sectorSize)))
	if errno != 0 {
		return 0, fmt.Errorf("ioctl BLKSSZGET failed: %w", errno)
	}
	return int64(sectorSize), nil
}

func getDiskSizeLinux(file *os.File) (int64, error) {
	var size int64
	const blkGetSize64 = 0x80081272
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, file.Fd(), blkGetSize64, uintptr(unsafe.Pointer(&size)))
	if errno != 0 {
		return 0, fmt.Errorf("ioctl BLKGETSIZE64 failed: %w", errno)
	}
	return size, nil
}
