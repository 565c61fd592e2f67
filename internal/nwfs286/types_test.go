package nwfs286

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNwDateNwTimeDecode(t *testing.T) {
	// Construct a date/time pair from the documented bit layout directly,
	// rather than reusing the decoder's own formula, so the test catches a
	// transposition in either direction.
	year, month, day := 1994, 3, 15
	hour, minute, second := 9, 45, 30

	yearBits := uint16(year-1980) << 1
	dayBits := uint16(day) << 8
	monthHigh := uint16(month) >> 3
	monthLowToBit0 := uint16(month&0x7) << 13
	dateWord := dayBits | monthLowToBit0 | yearBits | monthHigh

	secondBits := uint16(second/2) << 8
	hourBits := uint16(hour) << 3
	minuteHigh := uint16(minute) >> 3
	minuteLowToBits := uint16(minute&0x7) << 13
	timeWord := secondBits | minuteLowToBits | hourBits | minuteHigh

	d := NwDate(dateWord)
	tm := NwTime(timeWord)

	require.True(t, d.Valid())
	require.Equal(t, year, d.Year())
	require.Equal(t, month, d.Month())
	require.Equal(t, day, d.Day())
	require.Equal(t, hour, tm.Hour())
	require.Equal(t, minute, tm.Minute())
	require.Equal(t, second, tm.Second())
}

func TestCombineTimestampZeroDate(t *testing.T) {
	got := CombineTimestamp(NwDate(0), NwTime(1234))
	require.True(t, got.IsZero())
}

func TestAttrDirectoryMarker(t *testing.T) {
	dir := Attr(0xFF00)
	require.True(t, dir.IsDirectoryMarker())

	file := Attr(0x0021) // archive + read-only
	require.False(t, file.IsDirectoryMarker())

	s := file.String()
	require.Equal(t, byte('R'), s[0])
	require.Equal(t, byte('A'), s[5])
}
