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

	"github.com/ostafen/nwfsread/internal/disk"
	"github.com/ostafen/nwfsread/internal/export"
)

func DefineExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <image_path...>",
		Short: "Export a NetWare volume's directory tree as a DFXML report",
		Long: `The 'export' command opens one or more images, binds the named volume
across every segment found, and walks its directory tree, writing one DFXML
fileobject per live file and directory. Each file's byte_runs record the
on-disk extents of its block chain rather than a carved content range.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunExport,
	}
	addVolumeFlags(cmd)
	cmd.Flags().StringP("dfxml", "o", "", "path of the DFXML report to write (required)")
	cmd.Flags().Bool("progress", true, "show a progress bar while walking the volume")
	cmd.MarkFlagRequired("dfxml")
	return cmd
}

func RunExport(cmd *cobra.Command, args []string) error {
	images, vol, err := openVolume(cmd, args)
	if err != nil {
		return err
	}
	defer images.Close()
	defer vol.Close()

	outPath, _ := cmd.Flags().GetString("dfxml")
	showProgress, _ := cmd.Flags().GetBool("progress")

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	sectorSize := disk.SectorSize
	var imageSize uint64
	for i, img := range images.Images {
		media, err := disk.Stat(img.Path)
		if err != nil {
			return err
		}
		imageSize += uint64(media.RealSize)
		if i == 0 {
			sectorSize = int(media.SectorSize)
		}
	}

	return export.Run(out, vol, export.Options{
		ImagePath:    images.Images[0].Path,
		SectorSize:   sectorSize,
		ImageSize:    imageSize,
		ShowProgress: showProgress,
	})
}
