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

// Package nwfs386 decodes the NetWare 3.x/4.x (32-bit) on-disk volume
// format: the hotfix and mirror headers, the volume segment table, the
// tagged-union directory records, and the FAT.
package nwfs386

import "time"

const SectorSize = 512

// Timestamp is the packed 32-bit date/time word used throughout NW386
// directory records: the high 16 bits are the date, the low 16 bits the
// time, each DOS-style.
type Timestamp uint32

func (t Timestamp) Valid() bool { return t > 0 }

func (t Timestamp) date() uint32 { return uint32(t) >> 16 }
func (t Timestamp) time() uint32 { return uint32(t) & 0xFFFF }

func (t Timestamp) Year() int   { return int(t.date()>>9) + 1980 }
func (t Timestamp) Month() int  { return int((t.date() >> 5) & 0xF) }
func (t Timestamp) Day() int    { return int(t.date() & 0x1F) }
func (t Timestamp) Hour() int   { return int(t.time() >> 11) }
func (t Timestamp) Minute() int { return int((t.time() >> 5) & 0x3F) }
func (t Timestamp) Second() int { return int(t.time()&0x1F) * 2 }

// Time converts the packed word to a time.Time in UTC, or the zero time if
// the word is all-zero (absent).
func (t Timestamp) Time() time.Time {
	if !t.Valid() {
		return time.Time{}
	}
	return time.Date(t.Year(), time.Month(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// Attributes is the NW386 directory-entry attribute bitmask.
type Attributes uint32

const (
	AttrReadOnly      Attributes = 0x1
	AttrHidden        Attributes = 0x2
	AttrSystem        Attributes = 0x4
	AttrDirectory     Attributes = 0x10
	AttrArchive       Attributes = 0x20
	AttrShareable     Attributes = 0x80
	AttrTransactional Attributes = 0x1000
	AttrPurge         Attributes = 0x10000
	AttrRenameInhibit Attributes = 0x20000
	AttrDeleteInhibit Attributes = 0x40000
	AttrCopyInhibit   Attributes = 0x80000
)

func (a Attributes) IsDirectory() bool { return a&AttrDirectory != 0 }

func setOr(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

// String renders the attribute flags in the console-utility letter order
// this format has used since NetWare's own FLAG command: Ro/Rw, S, A, H,
// Sy, T, P, Ci, Di, Ri.
func (a Attributes) String() string {
	s := setOr(a&AttrReadOnly != 0, "Ro", "Rw")
	s += setOr(a&AttrShareable != 0, "S", "-")
	s += setOr(a&AttrArchive != 0, "A", "-")
	s += "-"
	s += setOr(a&AttrHidden != 0, "H", "-")
	s += setOr(a&AttrSystem != 0, "Sy", "--")
	s += setOr(a&AttrTransactional != 0, "T", "-")
	s += "-"
	s += setOr(a&AttrPurge != 0, "P", "-")
	s += "--" // read audit
	s += "--" // write audit
	s += setOr(a&AttrCopyInhibit != 0, "Ci", "--")
	s += setOr(a&AttrDeleteInhibit != 0, "Di", "--")
	s += setOr(a&AttrRenameInhibit != 0, "Ri", "--")
	return s
}

// Rights is a trustee's access-rights bitmask.
type Rights uint16

const (
	RightRead          Rights = 0x1
	RightWrite         Rights = 0x2
	RightCreate        Rights = 0x8
	RightErase         Rights = 0x10
	RightAccessControl Rights = 0x20
	RightFilescan      Rights = 0x40
	RightModify        Rights = 0x80
	RightSupervisor    Rights = 0x100
)

func (r Rights) String() string {
	flag := func(set bool, c string) string {
		if set {
			return c
		}
		return " "
	}
	return flag(r&RightSupervisor != 0, "S") +
		flag(r&RightRead != 0, "R") +
		flag(r&RightWrite != 0, "W") +
		flag(r&RightCreate != 0, "C") +
		flag(r&RightErase != 0, "E") +
		flag(r&RightModify != 0, "M") +
		flag(r&RightFilescan != 0, "F") +
		flag(r&RightAccessControl != 0, "A")
}

// Trustee binds an object id (big-endian on disk, uniformly across record
// kinds) to a rights bitmask.
type Trustee struct {
	ObjectID uint32
	Rights   Rights
}
