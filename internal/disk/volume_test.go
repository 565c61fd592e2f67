package disk

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeVolumePath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("normalization only rewrites paths on windows")
	}

	for _, p := range []string{"C:", `C:\`, "/dev/sda", "image.bin"} {
		require.Equal(t, p, NormalizeVolumePath(p))
	}
}
