package shell

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ostafen/nwfsread/internal/nwvol"
)

// fakeVolume is an in-memory nwvol.Volume: a root holding one file and one
// subdirectory which holds a second file.
type fakeVolume struct {
	entries []nwvol.Entry
	files   map[uint32]map[string][]byte
}

func newFakeVolume() *fakeVolume {
	return &fakeVolume{
		entries: []nwvol.Entry{
			{ID: 10, ParentID: 0, Name: "README.TXT", Kind: nwvol.KindFile, Size: 5},
			{ID: 20, ParentID: 0, Name: "SUB", Kind: nwvol.KindDirectory},
			{ID: 30, ParentID: 20, Name: "NESTED.TXT", Kind: nwvol.KindFile, Size: 6},
		},
		files: map[uint32]map[string][]byte{
			0:  {"README.TXT": []byte("hello")},
			20: {"NESTED.TXT": []byte("nested")},
		},
	}
}

func (v *fakeVolume) Name() string   { return "FAKE" }
func (v *fakeVolume) RootID() uint32 { return 0 }
func (v *fakeVolume) Close() error   { return nil }

func (v *fakeVolume) ListChildren(parentID uint32) ([]nwvol.Entry, error) {
	var out []nwvol.Entry
	for _, e := range v.entries {
		if e.ParentID == parentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (v *fakeVolume) ResolvePath(components []string) ([]nwvol.Entry, error) {
	parent := v.RootID()
	var chain []nwvol.Entry
	for _, comp := range components {
		if comp == "" {
			continue
		}
		children, _ := v.ListChildren(parent)
		var match *nwvol.Entry
		for i := range children {
			if strings.EqualFold(children[i].Name, comp) {
				match = &children[i]
			}
		}
		if match == nil {
			return nil, fmt.Errorf("%w: %q", nwvol.ErrNotFound, comp)
		}
		chain = append(chain, *match)
		parent = match.ID
	}
	return chain, nil
}

func (v *fakeVolume) OpenFile(parentID uint32, name string) ([]byte, error) {
	for n, data := range v.files[parentID] {
		if strings.EqualFold(n, name) {
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", nwvol.ErrNotFound, name)
}

func runShell(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	sh := New(newFakeVolume(), strings.NewReader(input), &out)
	require.NoError(t, sh.Run())
	return out.String()
}

func TestShellListsRootEntries(t *testing.T) {
	out := runShell(t, "ls\nexit\n")
	require.Contains(t, out, "README.TXT")
	require.Contains(t, out, "SUB")
}

func TestShellCatPrintsFileContent(t *testing.T) {
	out := runShell(t, "cat readme.txt\nexit\n")
	require.Contains(t, out, "hello")
}

func TestShellChangesDirectory(t *testing.T) {
	out := runShell(t, "cd SUB\nls\ncat NESTED.TXT\nexit\n")
	require.Contains(t, out, "NESTED.TXT")
	require.Contains(t, out, "nested")
	require.Contains(t, out, "FAKE:/SUB>")
}

func TestShellDotDotReturnsToParent(t *testing.T) {
	out := runShell(t, "cd SUB\ncd ..\nls\nexit\n")
	require.Contains(t, out, "README.TXT")
}

func TestShellRejectsChdirToFile(t *testing.T) {
	out := runShell(t, "cd README.TXT\nexit\n")
	require.Contains(t, out, "directory not found")
}

func TestShellUnknownCommand(t *testing.T) {
	out := runShell(t, "frobnicate\nexit\n")
	require.Contains(t, out, "unrecognized command")
}
