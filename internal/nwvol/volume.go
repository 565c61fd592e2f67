package nwvol

import "time"

// EntryKind classifies a live directory-table record for the query surface.
// The decoders normalize both formats' record kinds down to this set;
// free slots, grant-lists, and volume-information records never surface
// here at all.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
)

// Entry is one directory or file record as seen by the query surface,
// format-agnostic. Both the NW286 and NW386 decoders project their native
// records into this shape.
type Entry struct {
	ID         uint32
	ParentID   uint32
	Name       string
	Kind       EntryKind
	Size       uint64
	BlockNr    uint32
	CreatedAt  time.Time
	ModifiedAt time.Time
	Deleted    bool

	// Attributes is a pre-formatted, human-readable rendering of the
	// record's native attribute bits. It exists for display (the shell's
	// listing), never consulted by the decoder itself.
	Attributes string
}

// ByteRun is one contiguous on-disk extent of a file's data: fileOffset
// bytes into the file's logical content map to length bytes starting at
// imageOffset within the backing image.
type ByteRun struct {
	FileOffset  uint64
	ImageOffset uint64
	Length      uint64
}

// ByteRunVolume is the capability a Volume may additionally implement to
// expose the physical extents backing a file, for export formats that
// record on-disk layout rather than just content (see pkg/dfxml).
type ByteRunVolume interface {
	Volume
	FileByteRuns(parentID uint32, name string) ([]ByteRun, error)
}

// AppendRun appends a (imageOffset, length) extent to runs, merging it into
// the previous run when the two are physically contiguous.
func AppendRun(runs []ByteRun, fileOffset, imageOffset, length uint64) []ByteRun {
	if n := len(runs); n > 0 {
		last := &runs[n-1]
		if last.ImageOffset+last.Length == imageOffset {
			last.Length += length
			return runs
		}
	}
	return append(runs, ByteRun{FileOffset: fileOffset, ImageOffset: imageOffset, Length: length})
}

// Volume is the read-only query surface consumed by the shell, the fuse
// mount, and the export command. Both NWFS-286 and NWFS-386 logical volumes
// implement it; neither caller needs to know which format backs a given
// Volume value.
type Volume interface {
	// RootID returns the identity of the volume's root directory.
	RootID() uint32

	// ListChildren returns every live (non-deleted, non-special) entry
	// whose ParentID equals parentID.
	ListChildren(parentID uint32) ([]Entry, error)

	// ResolvePath walks components from the root, matching each by
	// case-insensitive name, and returns the matched entry for each
	// non-empty component, in order; the root itself is not included. The
	// last component may name a file, whose entry then ends the chain.
	ResolvePath(components []string) ([]Entry, error)

	// OpenFile locates the unique non-deleted file named name under
	// parentID and returns its full contents.
	OpenFile(parentID uint32, name string) ([]byte, error)

	// Name reports the volume name as read from its segment table.
	Name() string

	// Close releases the image handles this volume holds: an NW386 volume
	// closes its per-segment clones, an NW286 volume closes the image it
	// was opened on.
	Close() error
}
