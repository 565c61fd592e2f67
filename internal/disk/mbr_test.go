package disk

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func mbrEntry(systemID byte, startLBA uint32) []byte {
	entry := make([]byte, mbrEntrySize)
	entry[0x04] = systemID
	binary.LittleEndian.PutUint32(entry[0x08:0x0C], startLBA)
	return entry
}

func buildMBR(entries ...[]byte) []byte {
	sector := make([]byte, 512)
	for i, e := range entries {
		copy(sector[mbrPartitionTableOffset+i*mbrEntrySize:], e)
	}
	return sector
}

func TestFindPartitionNW386(t *testing.T) {
	sector := buildMBR(
		mbrEntry(0x00, 0),
		mbrEntry(SystemIDNW386, 63),
	)
	part, err := FindPartition(bytes.NewReader(sector))
	require.NoError(t, err)
	require.NotNil(t, part)
	require.Equal(t, PartitionNW386, part.Type)
	require.EqualValues(t, 63, part.StartLBA)
}

func TestFindPartitionNW286(t *testing.T) {
	sector := buildMBR(mbrEntry(SystemIDNW286, 1))
	part, err := FindPartition(bytes.NewReader(sector))
	require.NoError(t, err)
	require.NotNil(t, part)
	require.Equal(t, PartitionNW286, part.Type)
}

func TestFindPartitionReturnsFirstMatch(t *testing.T) {
	sector := buildMBR(
		mbrEntry(SystemIDNW386, 100),
		mbrEntry(SystemIDNW286, 200),
	)
	part, err := FindPartition(bytes.NewReader(sector))
	require.NoError(t, err)
	require.Equal(t, PartitionNW386, part.Type)
	require.EqualValues(t, 100, part.StartLBA)
}

func TestFindPartitionNoneFound(t *testing.T) {
	sector := buildMBR(mbrEntry(0x83, 0), mbrEntry(0x07, 0))
	part, err := FindPartition(bytes.NewReader(sector))
	require.NoError(t, err)
	require.Nil(t, part)
}

func TestPartitionTypeString(t *testing.T) {
	require.Equal(t, "NWFS-286", PartitionNW286.String())
	require.Equal(t, "NWFS-386", PartitionNW386.String())
	require.Equal(t, "unknown", PartitionUnknown.String())
}
