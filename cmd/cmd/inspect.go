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
	"github.com/ostafen/nwfsread/internal/inspect"
)

func DefineInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <image_path>",
		Short: "Dump the raw on-disk structure of a NetWare partition",
		Long: `The 'inspect' command prints the MBR partition entry, the NW386
hotfix/mirror headers and volume segment table (or the NW286 volume-info
sector), and the raw directory table, one record per line.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolveImagePaths(args)
			if err != nil {
				return err
			}
			img, err := disk.OpenImage(paths[0])
			if err != nil {
				return err
			}
			defer img.Close()

			return inspect.Dump(os.Stdout, img)
		},
	}
}
