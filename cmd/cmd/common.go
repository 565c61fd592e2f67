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
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ostafen/nwfsread/internal/config"
	"github.com/ostafen/nwfsread/internal/disk"
	"github.com/ostafen/nwfsread/internal/logger"
	"github.com/ostafen/nwfsread/internal/nwfs"
	"github.com/ostafen/nwfsread/internal/nwvol"
	utilos "github.com/ostafen/nwfsread/pkg/util/os"
)

var log = logger.New(os.Stderr, logger.InfoLevel)

func addVolumeFlags(cmd *cobra.Command) {
	cmd.Flags().String("volume", "", "volume name to open (required for NW386 images)")
	cmd.Flags().String("format", string(nwfs.FormatAuto), "volume format: auto, nwfs286, or nwfs386")
}

// resolveImagePaths expands any directory argument into its regular files,
// via pkg/util/os.ListFiles, so a single argument can name a directory of
// split image segments. Raw device paths (which fail os.Stat's regular/dir
// check) pass through untouched.
func resolveImagePaths(args []string) ([]string, error) {
	var paths []string
	for _, a := range args {
		a = disk.NormalizeVolumePath(a)
		info, err := os.Stat(a)
		if err != nil || !info.IsDir() {
			paths = append(paths, a)
			continue
		}
		expanded, err := utilos.ListFiles(a)
		if err != nil {
			return nil, err
		}
		paths = append(paths, expanded...)
	}
	return paths, nil
}

// openVolume loads the config defaults, resolves the image paths and volume
// name (CLI flags win over config file values), opens every image, and binds
// the requested volume.
func openVolume(cmd *cobra.Command, imageArgs []string) (*disk.ImageList, nwvol.Volume, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		log = logger.New(os.Stderr, logger.ParseLevel(level))
	} else if cfg.LogLevel != "" {
		log = logger.New(os.Stderr, logger.ParseLevel(cfg.LogLevel))
	}

	paths := imageArgs
	if len(paths) == 0 {
		paths = cfg.Images
	}
	resolved, err := resolveImagePaths(paths)
	if err != nil {
		return nil, nil, err
	}

	images, err := disk.OpenImageList(resolved)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("opened %d image(s)", len(images.Images))

	volumeName, _ := cmd.Flags().GetString("volume")
	if volumeName == "" {
		volumeName = cfg.Volume
	}

	formatFlag, _ := cmd.Flags().GetString("format")

	vol, err := nwfs.Open(images.Images, volumeName, nwfs.Format(formatFlag))
	if err != nil {
		images.Close()
		log.Errorf("failed to open volume %q: %v", volumeName, err)
		return nil, nil, err
	}
	log.Debugf("opened volume %q", vol.Name())
	return images, vol, nil
}
