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
	"github.com/spf13/cobra"

	"github.com/ostafen/nwfsread/internal/fuse"
)

func DefineMountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mount <image_path...> <mountpoint>",
		Short: "Mount a NetWare volume as a read-only FUSE filesystem",
		Long: `The 'mount' command opens one or more images, binds the named volume
across every segment found, and exposes its directory tree read-only at
mountpoint until a termination signal is received.`,
		Args:         cobra.MinimumNArgs(2),
		SilenceUsage: true,
		RunE:         RunMount,
	}
	addVolumeFlags(cmd)
	return cmd
}

func RunMount(cmd *cobra.Command, args []string) error {
	mountpoint := args[len(args)-1]
	imageArgs := args[:len(args)-1]

	images, vol, err := openVolume(cmd, imageArgs)
	if err != nil {
		return err
	}
	defer images.Close()
	defer vol.Close()

	return fuse.Mount(mountpoint, vol)
}
