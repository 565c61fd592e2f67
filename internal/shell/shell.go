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

// Package shell implements the interactive volume browser: ls/dir, cd,
// cat/type, get, exit/quit, run over a nwvol.Volume.
package shell

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ostafen/nwfsread/internal/nwvol"
	"github.com/ostafen/nwfsread/pkg/util/format"
	utilio "github.com/ostafen/nwfsread/pkg/util/io"
)

// Shell is the interactive browser state: the volume being browsed and
// the current directory stack (ids and display names in lockstep).
type Shell struct {
	vol      nwvol.Volume
	dirIDs   []uint32
	dirNames []string

	in  *bufio.Scanner
	out io.Writer
}

// New returns a Shell positioned at vol's root.
func New(vol nwvol.Volume, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		vol:      vol,
		dirIDs:   []uint32{vol.RootID()},
		dirNames: []string{""},
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run executes the read-eval-print loop until the input stream ends or
// the user issues exit/quit.
func (s *Shell) Run() error {
	for {
		fmt.Fprintf(s.out, "%s:/%s> ", s.vol.Name(), strings.Join(s.dirNames[1:], "/"))
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}

		fields := strings.Fields(s.in.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "exit", "quit":
			return nil
		case "cd", "chdir":
			s.cmdChdir(fields)
		case "dir", "ls":
			s.cmdList()
		case "get":
			s.cmdGet(fields)
		case "cat", "type":
			s.cmdCat(fields)
		default:
			fmt.Fprintln(s.out, "unrecognized command")
		}
	}
}

func (s *Shell) currentDirID() uint32 { return s.dirIDs[len(s.dirIDs)-1] }

func (s *Shell) cmdChdir(fields []string) {
	if len(fields) != 2 {
		fmt.Fprintln(s.out, "usage: cd directory")
		return
	}
	dest := fields[1]

	if dest == ".." {
		if len(s.dirIDs) > 1 {
			s.dirIDs = s.dirIDs[:len(s.dirIDs)-1]
			s.dirNames = s.dirNames[:len(s.dirNames)-1]
		}
		return
	}

	var components []string
	if strings.HasPrefix(dest, "/") {
		components = strings.Split(dest, "/")
	} else {
		components = append(append([]string{}, s.dirNames...), dest)
	}

	entries, err := s.vol.ResolvePath(components)
	if err != nil {
		fmt.Fprintln(s.out, "directory not found")
		return
	}

	ids := []uint32{s.vol.RootID()}
	names := []string{""}
	for _, e := range entries {
		if e.Kind != nwvol.KindDirectory {
			fmt.Fprintln(s.out, "directory not found")
			return
		}
		ids = append(ids, e.ID)
		names = append(names, e.Name)
	}
	s.dirIDs = ids
	s.dirNames = names
}

func (s *Shell) cmdList() {
	entries, err := s.vol.ListChildren(s.currentDirID())
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	for _, e := range entries {
		marker := " "
		if e.Kind == nwvol.KindDirectory {
			marker = "D"
		}
		fmt.Fprintf(s.out, "%s %-12s %10s  %s\n", marker, e.Name, format.FormatBytes(int64(e.Size)), e.Attributes)
	}
}

func (s *Shell) cmdGet(fields []string) {
	if len(fields) != 2 {
		fmt.Fprintln(s.out, "usage: get filename")
		return
	}
	data, err := s.vol.OpenFile(s.currentDirID(), fields[1])
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	if err := utilio.CopyFile(fields[1], bytes.NewReader(data)); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
}

func (s *Shell) cmdCat(fields []string) {
	if len(fields) != 2 {
		fmt.Fprintln(s.out, "usage: cat filename")
		return
	}
	data, err := s.vol.OpenFile(s.currentDirID(), fields[1])
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	s.out.Write(data)
	fmt.Fprintln(s.out)
}
