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

// Package nwvol defines the decoder-independent query surface and error
// vocabulary shared by the NWFS-286 and NWFS-386 backends. Callers (the
// shell, the fuse mount, the export command) depend only on this package,
// never on internal/nwfs286 or internal/nwfs386 directly; the inspector
// reads the on-disk structures through the decoders instead.
package nwvol

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedLayout = errors.New("unsupported partition layout")
	ErrVolumeAreaCorrupt = errors.New("volume area corrupt")
	ErrVolumeNotFound    = errors.New("volume not found")
	ErrNotAFile          = errors.New("not a file")
	ErrNotFound          = errors.New("not found")
	ErrAmbiguous         = errors.New("ambiguous name")
	ErrRecordLength      = errors.New("directory record did not consume expected length")
)

// BlockOutOfRangeError reports a block number that falls outside every
// known segment's range.
type BlockOutOfRangeError struct {
	Block uint32
}

func (e *BlockOutOfRangeError) Error() string {
	return fmt.Sprintf("block %d out of range", e.Block)
}

// FatCorruptError reports a FAT chain that cannot be followed at Block:
// the block has no FAT entry in any known segment (on NW286: it lies past
// the end of the FAT table), or a directory chain runs longer than the
// volume's block count, which only a cycle can cause.
type FatCorruptError struct {
	Block uint32
}

func (e *FatCorruptError) Error() string {
	return fmt.Sprintf("fat entry for block %d is corrupt", e.Block)
}

// TruncatedChainError reports a file or directory chain that hit the
// sentinel before its declared length was satisfied.
type TruncatedChainError struct {
	Remaining int64
}

func (e *TruncatedChainError) Error() string {
	return fmt.Sprintf("block chain truncated with %d bytes remaining", e.Remaining)
}

// OversizedChainError reports a file or directory chain that satisfied its
// declared length while its last FAT entry points to a further block
// instead of the sentinel.
type OversizedChainError struct {
	ExtraBlock uint32
}

func (e *OversizedChainError) Error() string {
	return fmt.Sprintf("block chain continues past declared length at block %d", e.ExtraBlock)
}
