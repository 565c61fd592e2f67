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
	"encoding/binary"
	"fmt"

	"github.com/ostafen/nwfsread/internal/disk"
	"github.com/ostafen/nwfsread/internal/nwvol"
)

const directoryRecordSize = 128

// Sentinels occupying a directory record's leading u32 (parent_dir_id).
const (
	dirIDVolumeInfo uint32 = 0xFFFFFFFD
	dirIDGrantList  uint32 = 0xFFFFFFFE
	dirIDAvailable  uint32 = 0xFFFFFFFF
)

// DirEntryKind discriminates the five record variants a 128-byte NW386
// directory slot can hold.
type DirEntryKind int

const (
	KindAvailable DirEntryKind = iota
	KindGrantList
	KindVolumeInformation
	KindFile
	KindDirectory
)

// DirEntry is the parsed form of one 128-byte directory-table slot. Only
// the fields meaningful to the Kind in play are populated; this mirrors a
// tagged union rather than one record with optional fields for every
// variant.
type DirEntry struct {
	Kind DirEntryKind

	ParentDirID uint32

	// File and Directory fields.
	Attr        Attributes
	Name        string
	CreateTime  Timestamp
	OwnerID     uint32
	ModifyTime  Timestamp
	Trustees    []Trustee

	// File-only.
	ModifierID uint32
	Length     uint32
	BlockNr    uint32
	DeleteTime Timestamp
	DeleteID   uint32
	FileEntry  uint32

	// Directory-only.
	InheritedRightsMask uint16
	SubdirIndex         uint32
	DirectoryID         uint32
}

func (e *DirEntry) IsDeleted() bool {
	return e.Kind == KindFile && e.DeleteTime.Valid()
}

// ParseDirEntry reads one 128-byte directory record from buf (which must
// be exactly 128 bytes) and dispatches on the leading sentinel.
func ParseDirEntry(buf []byte) (*DirEntry, error) {
	if len(buf) != directoryRecordSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", nwvol.ErrRecordLength, len(buf), directoryRecordSize)
	}

	parentDirID := binary.LittleEndian.Uint32(buf[0:4])

	switch parentDirID {
	case dirIDAvailable:
		return &DirEntry{Kind: KindAvailable, ParentDirID: parentDirID}, nil

	case dirIDGrantList:
		trustees := parseTrusteeBlock(buf[24:120], 16)
		return &DirEntry{Kind: KindGrantList, ParentDirID: parentDirID, Trustees: trustees}, nil

	case dirIDVolumeInfo:
		createTime := Timestamp(binary.LittleEndian.Uint32(buf[24:28]))
		ownerID := binary.LittleEndian.Uint32(buf[28:32])
		modifyTime := Timestamp(binary.LittleEndian.Uint32(buf[40:44]))
		trustees := parseTrusteeList(buf[48:96], 8)
		return &DirEntry{
			Kind:        KindVolumeInformation,
			ParentDirID: parentDirID,
			CreateTime:  createTime,
			OwnerID:     ownerID,
			ModifyTime:  modifyTime,
			Trustees:    trustees,
		}, nil

	default:
		attr := Attributes(binary.LittleEndian.Uint32(buf[4:8]))
		nameLen := int(buf[11])
		name := disk.AsciiWithLength(buf[12:24], nameLen)

		if attr.IsDirectory() {
			createTime := Timestamp(binary.LittleEndian.Uint32(buf[24:28]))
			ownerID := binary.BigEndian.Uint32(buf[28:32])
			modifyTime := Timestamp(binary.LittleEndian.Uint32(buf[40:44]))
			trustees := parseTrusteeList(buf[48:96], 8)
			inheritedRightsMask := binary.LittleEndian.Uint16(buf[100:102])
			subdirIndex := binary.LittleEndian.Uint32(buf[102:106])
			directoryID := binary.LittleEndian.Uint32(buf[120:124])

			return &DirEntry{
				Kind:                KindDirectory,
				ParentDirID:         parentDirID,
				Attr:                attr,
				Name:                name,
				CreateTime:          createTime,
				OwnerID:             ownerID,
				ModifyTime:          modifyTime,
				Trustees:            trustees,
				InheritedRightsMask: inheritedRightsMask,
				SubdirIndex:         subdirIndex,
				DirectoryID:         directoryID,
			}, nil
		}

		createTime := Timestamp(binary.LittleEndian.Uint32(buf[24:28]))
		ownerID := binary.BigEndian.Uint32(buf[28:32])
		modifyTime := Timestamp(binary.LittleEndian.Uint32(buf[40:44]))
		modifierID := binary.BigEndian.Uint32(buf[44:48])
		length := binary.LittleEndian.Uint32(buf[48:52])
		blockNr := binary.LittleEndian.Uint32(buf[52:56])
		trustees := parseTrusteeList(buf[60:96], 6)
		deleteTime := Timestamp(binary.LittleEndian.Uint32(buf[104:108]))
		deleteID := binary.BigEndian.Uint32(buf[108:112])
		fileEntry := binary.LittleEndian.Uint32(buf[120:124])

		return &DirEntry{
			Kind:        KindFile,
			ParentDirID: parentDirID,
			Attr:        attr,
			Name:        name,
			CreateTime:  createTime,
			OwnerID:     ownerID,
			ModifyTime:  modifyTime,
			ModifierID:  modifierID,
			Length:      length,
			BlockNr:     blockNr,
			Trustees:    trustees,
			DeleteTime:  deleteTime,
			DeleteID:    deleteID,
			FileEntry:   fileEntry,
		}, nil
	}
}

// parseTrusteeList decodes n interleaved (object_id BE u32, rights LE u16)
// pairs, as used in file, directory, and volume-information records.
func parseTrusteeList(b []byte, n int) []Trustee {
	out := make([]Trustee, 0, n)
	off := 0
	for i := 0; i < n; i++ {
		out = append(out, Trustee{
			ObjectID: binary.BigEndian.Uint32(b[off : off+4]),
			Rights:   Rights(binary.LittleEndian.Uint16(b[off+4 : off+6])),
		})
		off += 6
	}
	return out
}

// parseTrusteeBlock decodes n trustees stored object-ids-then-rights: all
// n object ids first, then all n rights values. Only the grant-list
// continuation record uses this layout.
func parseTrusteeBlock(b []byte, n int) []Trustee {
	out := make([]Trustee, n)
	for i := 0; i < n; i++ {
		out[i].ObjectID = binary.BigEndian.Uint32(b[i*4 : i*4+4])
	}
	base := n * 4
	for i := 0; i < n; i++ {
		out[i].Rights = Rights(binary.LittleEndian.Uint16(b[base+i*2 : base+i*2+2]))
	}
	return out
}
