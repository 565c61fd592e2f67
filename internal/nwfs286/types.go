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

// Package nwfs286 decodes the NetWare 2.x (16-bit) on-disk volume format:
// the dual-layout volume-info sector, the 32-byte directory records, and
// the 4-byte FAT entries.
package nwfs286

import "time"

const (
	SectorSize = 512
	BlockSize  = 4096
)

// NwDate is the packed 16-bit date word used throughout NWFS-286 directory
// records. The month field straddles the word boundary: its low 3 bits sit
// in the top 3 bits of the word, its high bit sits in the word's bit 0.
type NwDate uint16

func (d NwDate) Valid() bool { return d > 0 }

func (d NwDate) Day() int   { return int((uint16(d) >> 8) & 0x1F) }
func (d NwDate) Month() int { return int((uint16(d) >> 13) + ((uint16(d) & 1) << 3)) }
func (d NwDate) Year() int  { return int((uint16(d)&0xFF)>>1) + 1980 }

// NwTime is the packed 16-bit time word used throughout NWFS-286 directory
// records, with the same straddling layout as NwDate applied to minutes.
type NwTime uint16

func (t NwTime) Valid() bool { return t > 0 }

func (t NwTime) Hour() int   { return int((uint16(t) >> 3) & 0x1F) }
func (t NwTime) Minute() int { return int((uint16(t) >> 13) + ((uint16(t) & 7) << 3)) }
func (t NwTime) Second() int { return int((uint16(t)>>8)&0x1F) * 2 }

// CombineTimestamp converts an NwDate/NwTime pair to a time.Time in UTC. An
// invalid (all-zero) date yields the zero time; an invalid time yields
// midnight of the given date.
func CombineTimestamp(d NwDate, t NwTime) time.Time {
	if !d.Valid() {
		return time.Time{}
	}
	second := t.Second()
	if !t.Valid() {
		second = 0
	}
	return time.Date(d.Year(), time.Month(d.Month()), d.Day(), t.Hour(), t.Minute(), second, 0, time.UTC)
}

// Attr is the NW286 directory-entry attribute bitmask. The high byte being
// entirely set (0xFF00) is the directory discriminator; see DirectoryEntry.
type Attr uint16

func (a Attr) IsDirectoryMarker() bool { return a&0xFF00 == 0xFF00 }

// String renders the low-byte DOS-style attribute bits; the high byte is
// the directory marker and carries no independent attribute meaning here.
func (a Attr) String() string {
	bits := []struct {
		mask byte
		name string
	}{
		{0x01, "R"},
		{0x02, "H"},
		{0x04, "S"},
		{0x08, "E"}, // execute-only
		{0x10, "D"},
		{0x20, "A"},
		{0x40, "X"}, // shareable
		{0x80, "T"}, // transactional
	}
	lo := byte(a & 0xFF)
	out := make([]byte, 0, len(bits))
	for _, b := range bits {
		if lo&b.mask != 0 {
			out = append(out, b.name[0])
		} else {
			out = append(out, '-')
		}
	}
	return string(out)
}
