package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{999, "999B"},
		{1024, "1KB"},
		{1536, "1.50KB"},
		{1 << 20, "1MB"},
		{1 << 30, "1GB"},
		{1 << 40, "1TB"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, FormatBytes(c.in))
	}
}
