//go:build !linux
// +build !linux

package fuse

import (
	"fmt"

	"github.com/ostafen/nwfsread/internal/nwvol"
)

func Mount(mountpoint string, vol nwvol.Volume) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}
