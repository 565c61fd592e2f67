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

// Package export walks an opened volume's directory tree and emits a DFXML
// report, recording each live file's on-disk byte runs rather than carving
// file content out of a scanned image.
package export

import (
	"fmt"
	"io"
	"path"

	"github.com/ostafen/nwfsread/internal/env"
	"github.com/ostafen/nwfsread/internal/nwvol"
	"github.com/ostafen/nwfsread/pkg/dfxml"
	"github.com/ostafen/nwfsread/pkg/pbar"
)

// Options controls the Run pass over a volume.
type Options struct {
	ImagePath    string
	SectorSize   int
	ImageSize    uint64
	ShowProgress bool
}

// Run walks vol from its root, writing one DFXML fileobject per live file
// and directory it finds. byteRuns, when vol also implements
// nwvol.ByteRunVolume, resolves each file's on-disk extents; otherwise
// every fileobject carries an empty byte_runs list.
func Run(w io.Writer, vol nwvol.Volume, opts Options) error {
	dw := dfxml.NewDFXMLWriter(w)

	if err := dw.WriteHeader(dfxml.DFXMLHeader{
		XmlOutput: dfxml.XmlOutputVersion,
		Metadata:  dfxml.DefaultMetadata,
		Creator: dfxml.Creator{
			Package:              "nwfsread",
			Version:              env.Version,
			ExecutionEnvironment: dfxml.GetExecEnv(),
		},
		Source: dfxml.Source{
			ImageFilename: opts.ImagePath,
			SectorSize:    opts.SectorSize,
			ImageSize:     opts.ImageSize,
		},
	}); err != nil {
		return fmt.Errorf("writing dfxml header: %w", err)
	}

	byteRuns, _ := vol.(nwvol.ByteRunVolume)

	var bar *pbar.ProgressBarState
	if opts.ShowProgress {
		total, err := totalBytes(vol, vol.RootID())
		if err != nil {
			return err
		}
		bar = pbar.NewProgressBarState(int64(total))
	}

	if err := walk(dw, vol, byteRuns, vol.RootID(), "", bar); err != nil {
		return err
	}
	if bar != nil {
		bar.Finish()
	}

	return dw.Close()
}

// totalBytes sums the declared size of every live file reachable from
// parentID, for the progress bar's denominator.
func totalBytes(vol nwvol.Volume, parentID uint32) (uint64, error) {
	children, err := vol.ListChildren(parentID)
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, c := range children {
		if c.Kind == nwvol.KindDirectory {
			sub, err := totalBytes(vol, c.ID)
			if err != nil {
				return 0, err
			}
			total += sub
			continue
		}
		total += c.Size
	}
	return total, nil
}

func walk(dw *dfxml.DFXMLWriter, vol nwvol.Volume, byteRuns nwvol.ByteRunVolume, parentID uint32, prefix string, bar *pbar.ProgressBarState) error {
	children, err := vol.ListChildren(parentID)
	if err != nil {
		return fmt.Errorf("listing %q: %w", prefix, err)
	}

	for _, c := range children {
		full := path.Join(prefix, c.Name)

		obj := dfxml.FileObject{
			Filename: full,
			FileSize: c.Size,
		}
		if c.Kind == nwvol.KindFile && byteRuns != nil {
			runs, err := byteRuns.FileByteRuns(parentID, c.Name)
			if err != nil {
				return fmt.Errorf("resolving byte runs for %q: %w", full, err)
			}
			obj.ByteRuns.Runs = make([]dfxml.ByteRun, len(runs))
			for i, r := range runs {
				obj.ByteRuns.Runs[i] = dfxml.ByteRun{
					Offset:    r.FileOffset,
					ImgOffset: r.ImageOffset,
					Length:    r.Length,
				}
			}
		}
		if err := dw.WriteFileObject(obj); err != nil {
			return fmt.Errorf("writing fileobject %q: %w", full, err)
		}

		if bar != nil && c.Kind == nwvol.KindFile {
			bar.FilesFound++
			bar.ProcessedBytes += int64(c.Size)
			bar.Render(false)
		}

		if c.Kind == nwvol.KindDirectory {
			if err := walk(dw, vol, byteRuns, c.ID, full, bar); err != nil {
				return err
			}
		}
	}
	return nil
}
