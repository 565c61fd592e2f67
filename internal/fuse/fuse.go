//go:build linux
// +build linux

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
package fuse

import (
	"context"
	"os"
	"sort"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/ostafen/nwfsread/internal/nwvol"
)

// VolumeFS exposes a nwvol.Volume as a read-only FUSE filesystem: every
// directory and file is resolved lazily through ListChildren/OpenFile, there
// is no in-memory mirror of the tree.
type VolumeFS struct {
	vol nwvol.Volume
}

func (vfs *VolumeFS) Root() (fs.Node, error) {
	return &Dir{vol: vfs.vol, id: vfs.vol.RootID()}, nil
}

// Dir implements fs.Node, fs.HandleReadDirAller and fs.NodeStringLookuper for
// one directory identified by its volume-native id.
type Dir struct {
	vol nwvol.Volume
	id  uint32
}

func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	entries, err := d.vol.ListChildren(d.id)
	if err != nil {
		return nil, fuse.EIO
	}
	for _, e := range entries {
		if e.Name != name {
			continue
		}
		if e.Kind == nwvol.KindDirectory {
			return &Dir{vol: d.vol, id: e.ID}, nil
		}
		return &File{vol: d.vol, parentID: d.id, entry: e}, nil
	}
	return nil, fuse.ENOENT
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	entries, err := d.vol.ListChildren(d.id)
	if err != nil {
		return nil, fuse.EIO
	}

	dirEntries := make([]fuse.Dirent, len(entries))
	for i, e := range entries {
		typ := fuse.DT_File
		if e.Kind == nwvol.KindDirectory {
			typ = fuse.DT_Dir
		}
		dirEntries[i] = fuse.Dirent{Inode: uint64(e.ID), Name: e.Name, Type: typ}
	}
	sort.Slice(dirEntries, func(i, j int) bool { return dirEntries[i].Name < dirEntries[j].Name })
	return dirEntries, nil
}

// File implements fs.Node and fs.HandleReader. Data is fetched whole from
// OpenFile on first read and cached for the life of the handle; chasing a
// block chain per Read call would re-walk the FAT for every page the kernel
// requests.
type File struct {
	vol      nwvol.Volume
	parentID uint32
	entry    nwvol.Entry

	data []byte
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = f.entry.Size
	a.Mtime = f.entry.ModifiedAt
	a.Ctime = f.entry.CreatedAt
	return nil
}

func (f *File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	if f.data == nil {
		data, err := f.vol.OpenFile(f.parentID, f.entry.Name)
		if err != nil {
			return fuse.EIO
		}
		f.data = data
	}

	offset := req.Offset
	size := req.Size
	if offset >= int64(len(f.data)) {
		resp.Data = []byte{}
		return nil
	}
	end := offset + int64(size)
	if end > int64(len(f.data)) {
		end = int64(len(f.data))
	}
	resp.Data = f.data[offset:end]
	return nil
}
