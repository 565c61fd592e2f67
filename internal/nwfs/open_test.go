package nwfs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ostafen/nwfsread/internal/disk"
	"github.com/ostafen/nwfsread/internal/nwvol"
)

func imageWithPartition(path string, ptype disk.PartitionType) *disk.Image {
	return &disk.Image{Path: path, Partition: &disk.Partition{Type: ptype, StartLBA: 1}}
}

func TestDetectFormatAgreement(t *testing.T) {
	images := []*disk.Image{
		imageWithPartition("a.bin", disk.PartitionNW386),
		imageWithPartition("b.bin", disk.PartitionNW386),
	}
	f, err := detectFormat(images)
	require.NoError(t, err)
	require.Equal(t, FormatNW386, f)
}

func TestDetectFormatDisagreement(t *testing.T) {
	images := []*disk.Image{
		imageWithPartition("a.bin", disk.PartitionNW386),
		imageWithPartition("b.bin", disk.PartitionNW286),
	}
	_, err := detectFormat(images)
	require.ErrorIs(t, err, nwvol.ErrUnsupportedLayout)
}

func TestDetectFormatUnknownPartition(t *testing.T) {
	images := []*disk.Image{imageWithPartition("a.bin", disk.PartitionUnknown)}
	_, err := detectFormat(images)
	require.ErrorIs(t, err, nwvol.ErrUnsupportedLayout)
}

func TestOpenRejectsMultiImageNW286(t *testing.T) {
	images := []*disk.Image{
		imageWithPartition("a.bin", disk.PartitionNW286),
		imageWithPartition("b.bin", disk.PartitionNW286),
	}
	_, err := Open(images, "SYS", FormatNW286)
	require.ErrorIs(t, err, nwvol.ErrUnsupportedLayout)
}

func TestOpenRejectsUnknownFormat(t *testing.T) {
	images := []*disk.Image{imageWithPartition("a.bin", disk.PartitionNW386)}
	_, err := Open(images, "SYS", Format("ntfs"))
	require.Error(t, err)
}
