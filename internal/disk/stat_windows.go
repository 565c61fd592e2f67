//go:build windows
// +build windows

package disk

import (
	"fmt"
	"os"

	"github.com/ostafen/nwfsread/internal/fs"
)

// DefaultSectorSize is the assumed sector size when a device's sector size
// cannot be determined.
const DefaultSectorSize = 512

// MediaInfo describes the opened disk device or image file: whether it is a
// raw volume or a plain image file, its sector size, and its total size in
// bytes.
type MediaInfo struct {
	Path       string
	SectorSize int64
	RealSize   int64
	IsDevice   bool
}

// Stat determines the total size of devicePath. Regular image files answer
// a plain os.Stat; raw `\\.\`-style volume paths go through fs.Open, whose
// Stat derives the size from the drive geometry. The geometry also carries
// the sector size; regular files stay at the 512-byte default.
func Stat(devicePath string) (*MediaInfo, error) {
	info := &MediaInfo{Path: devicePath, SectorSize: DefaultSectorSize}

	if fi, err := os.Stat(devicePath); err == nil && fi.Mode().IsRegular() {
		info.RealSize = fi.Size()
		if info.RealSize == 0 {
			return nil, fmt.Errorf("%q has zero size", devicePath)
		}
		return info, nil
	}

	f, err := fs.Open(devicePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", devicePath, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", devicePath, err)
	}
	info.IsDevice = true
	info.RealSize = fi.Size()
	if geometry, ok := fi.Sys().(fs.DISK_GEOMETRY); ok && geometry.BytesPerSector > 0 {
		info.SectorSize = int64(geometry.BytesPerSector)
	}

	if info.RealSize == 0 {
		return nil, fmt.Errorf("%q has zero size", devicePath)
	}
	return info, nil
}
