package nwfs386

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestampDecode(t *testing.T) {
	// 0x215C6B40 is a packed NW386 timestamp observed in the field for
	// 1996-10-28 13:26:00: date word 0x215C, time word 0x6B40.
	ts := Timestamp(0x215C6B40)

	require.True(t, ts.Valid())
	require.Equal(t, 1996, ts.Year())
	require.Equal(t, 10, ts.Month())
	require.Equal(t, 28, ts.Day())
	require.Equal(t, 13, ts.Hour())
	require.Equal(t, 26, ts.Minute())
	require.Equal(t, 0, ts.Second())

	want := time.Date(1996, time.October, 28, 13, 26, 0, 0, time.UTC)
	require.True(t, ts.Time().Equal(want))
}

func TestTimestampZeroIsInvalid(t *testing.T) {
	var ts Timestamp
	require.False(t, ts.Valid())
	require.True(t, ts.Time().IsZero())
}

func TestAttributesString(t *testing.T) {
	ro := AttrReadOnly
	require.Equal(t, "Ro", ro.String()[:2])

	rw := Attributes(0)
	require.Equal(t, "Rw", rw.String()[:2])

	dir := AttrDirectory
	require.True(t, dir.IsDirectory())
	require.False(t, Attributes(0).IsDirectory())
}

func TestRightsString(t *testing.T) {
	r := RightSupervisor | RightRead | RightWrite
	s := r.String()
	require.Equal(t, byte('S'), s[0])
	require.Len(t, s, 8)
}
