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

	"github.com/ostafen/nwfsread/internal/fs"
	"github.com/ostafen/nwfsread/internal/mmap"
)

const SectorSize = 512

// Image is one opened input file (or raw device): a byte-addressable stream
// plus the byte offset of the NetWare partition discovered within it. A
// logical volume is the union of one or more Images' NetWare partitions.
type Image struct {
	Path                string
	PartitionStartByte  uint64
	Partition           *Partition
	file                fs.File
	region              *mmap.MmapFile // nil when mmap isn't usable (devices, non-unix)
}

// OpenImage opens path, locates the first NetWare partition in its MBR, and
// fails with no further interpretation if none is found; the caller
// decides whether that is fatal.
func OpenImage(path string) (*Image, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image %q: %w", path, err)
	}

	part, err := FindPartition(readerAtOf(f))
	if err != nil {
		f.Close()
		return nil, err
	}
	if part == nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrNoPartition, path)
	}

	img := &Image{
		Path:               path,
		Partition:          part,
		PartitionStartByte: uint64(part.StartLBA) * SectorSize,
		file:               f,
	}

	// mmap is a pure optimization over ReadAt; any failure (raw device,
	// platform without mmap support) silently falls back to the file
	// handle opened above.
	if region, err := mmap.NewMmapFile(path); err == nil {
		img.region = region
	}
	return img, nil
}

func readerAtOf(f fs.File) io.ReaderAt { return f }

// ReadAt implements io.ReaderAt, preferring the mmap'd region when present.
func (img *Image) ReadAt(p []byte, off int64) (int, error) {
	if img.region != nil {
		return img.region.ReadAt(p, off)
	}
	return img.file.ReadAt(p, off)
}

// Clone opens an independent handle onto the same path. Logical volumes use
// one clone per segment so that interleaved block and FAT-entry reads on
// different segments never share (and corrupt) one stream's read cursor.
func (img *Image) Clone() (*Image, error) {
	f, err := fs.Open(img.Path)
	if err != nil {
		return nil, fmt.Errorf("cloning image %q: %w", img.Path, err)
	}
	clone := &Image{
		Path:               img.Path,
		Partition:          img.Partition,
		PartitionStartByte: img.PartitionStartByte,
		file:               f,
	}
	if region, err := mmap.NewMmapFile(img.Path); err == nil {
		clone.region = region
	}
	return clone, nil
}

func (img *Image) Close() error {
	var err error
	if img.region != nil {
		err = img.region.Close()
		img.region = nil
	}
	if img.file != nil {
		if cerr := img.file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// ImageList holds every image opened for one session; a LogicalVolume binds
// a subset of their NetWare partitions' segments into one address space.
type ImageList struct {
	Images []*Image
}

// OpenImageList opens every path in order, failing the whole session if any
// one image cannot be opened or carries no NetWare partition.
func OpenImageList(paths []string) (*ImageList, error) {
	list := &ImageList{}
	for _, p := range paths {
		img, err := OpenImage(p)
		if err != nil {
			list.Close()
			return nil, err
		}
		list.Images = append(list.Images, img)
	}
	return list, nil
}

func (l *ImageList) Close() error {
	var first error
	for _, img := range l.Images {
		if err := img.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
