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

// Package nwfs selects the on-disk decoder for a set of opened images and
// binds a named volume through it. It sits above both format packages:
// internal/nwfs286 and internal/nwfs386 know nothing about each other, and
// callers that already hold a nwvol.Volume never need this package.
package nwfs

import (
	"fmt"

	"github.com/ostafen/nwfsread/internal/disk"
	"github.com/ostafen/nwfsread/internal/nwfs286"
	"github.com/ostafen/nwfsread/internal/nwfs386"
	"github.com/ostafen/nwfsread/internal/nwvol"
)

// Format names the on-disk decoder to use when opening a volume.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatNW286 Format = "nwfs286"
	FormatNW386 Format = "nwfs386"
)

// Open binds name to its backing segments across images, picking the
// decoder from format. FormatAuto inspects each image's MBR partition
// type and requires every image to agree; images are never probed by
// trial-parsing one format then falling back to the other.
func Open(images []*disk.Image, name string, format Format) (nwvol.Volume, error) {
	resolved := format
	if resolved == FormatAuto {
		f, err := detectFormat(images)
		if err != nil {
			return nil, err
		}
		resolved = f
	}

	switch resolved {
	case FormatNW286:
		if len(images) != 1 {
			return nil, fmt.Errorf("%w: NWFS-286 does not support multi-image volumes", nwvol.ErrUnsupportedLayout)
		}
		return nwfs286.Open(images[0])
	case FormatNW386:
		return nwfs386.Open(images, name)
	default:
		return nil, fmt.Errorf("unknown volume format %q", resolved)
	}
}

func detectFormat(images []*disk.Image) (Format, error) {
	var found Format
	for _, img := range images {
		var f Format
		switch img.Partition.Type {
		case disk.PartitionNW286:
			f = FormatNW286
		case disk.PartitionNW386:
			f = FormatNW386
		default:
			return "", fmt.Errorf("%w: image %q carries no recognized NetWare partition", nwvol.ErrUnsupportedLayout, img.Path)
		}
		if found == "" {
			found = f
		} else if found != f {
			return "", fmt.Errorf("%w: images disagree on NetWare format (%s vs %s)", nwvol.ErrUnsupportedLayout, found, f)
		}
	}
	return found, nil
}
