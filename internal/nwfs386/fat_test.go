package nwfs386

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFatEntry(t *testing.T) {
	buf := make([]byte, FatEntrySize)
	binary.LittleEndian.PutUint32(buf[0:4], 42)
	binary.LittleEndian.PutUint32(buf[4:8], FatSentinel)

	entry := ParseFatEntry(buf)
	require.EqualValues(t, 42, entry.Index)
	require.Equal(t, uint32(FatSentinel), entry.Next)
}
