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

	"github.com/ostafen/nwfsread/internal/shell"
)

func DefineShellCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell <image_path...>",
		Short: "Browse a NetWare volume interactively",
		Long: `The 'shell' command opens one or more images, binds the named volume
across every segment found, and starts an interactive browser supporting
ls/dir, cd/chdir, cat/type, get, and exit/quit.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			images, vol, err := openVolume(cmd, args)
			if err != nil {
				return err
			}
			defer images.Close()
			defer vol.Close()

			return shell.New(vol, os.Stdin, os.Stdout).Run()
		},
	}
	addVolumeFlags(cmd)
	return cmd
}
