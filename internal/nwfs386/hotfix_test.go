package nwfs386

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadHotfix(t *testing.T) {
	sector := make([]byte, SectorSize)
	copy(sector[0:8], "HOTFIX00")
	binary.LittleEndian.PutUint32(sector[8:12], 12345)
	binary.LittleEndian.PutUint32(sector[20:24], 1000) // data area sectors
	binary.LittleEndian.PutUint32(sector[24:28], 2)    // redir area sectors

	hf, err := ReadHotfix(bytes.NewReader(sector), 0)
	require.NoError(t, err)
	require.Equal(t, "HOTFIX00", hf.ID)
	require.EqualValues(t, 12345, hf.VID)
	require.EqualValues(t, 1000, hf.DataAreaSectors)
	require.EqualValues(t, 2, hf.RedirAreaSectors)
}

func TestReadMirror(t *testing.T) {
	sector := make([]byte, SectorSize)
	copy(sector[0:8], "MIRROR00")
	binary.LittleEndian.PutUint32(sector[8:12], uint32(0x215C6B40))
	binary.LittleEndian.PutUint32(sector[12:16], 1)
	binary.LittleEndian.PutUint32(sector[32:36], 111)
	binary.LittleEndian.PutUint32(sector[36:40], 222)

	mr, err := ReadMirror(bytes.NewReader(sector), 0)
	require.NoError(t, err)
	require.Equal(t, "MIRROR00", mr.ID)
	require.True(t, mr.CreateTime.Valid())
	require.EqualValues(t, 111, mr.HotfixVID1)
	require.EqualValues(t, 222, mr.HotfixVID2)
}
