package nwvol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendRunMergesContiguousExtents(t *testing.T) {
	var runs []ByteRun
	runs = AppendRun(runs, 0, 1000, 100)
	runs = AppendRun(runs, 100, 1100, 50) // contiguous: 1000+100 == 1100

	require.Len(t, runs, 1)
	require.EqualValues(t, 150, runs[0].Length)
	require.EqualValues(t, 0, runs[0].FileOffset)
	require.EqualValues(t, 1000, runs[0].ImageOffset)
}

func TestAppendRunSplitsNonContiguousExtents(t *testing.T) {
	var runs []ByteRun
	runs = AppendRun(runs, 0, 1000, 100)
	runs = AppendRun(runs, 100, 5000, 50) // a gap: not contiguous with the first run

	require.Len(t, runs, 2)
	require.EqualValues(t, 5000, runs[1].ImageOffset)
	require.EqualValues(t, 100, runs[1].FileOffset)
}

func TestAppendRunFirstCall(t *testing.T) {
	runs := AppendRun(nil, 0, 42, 8)
	require.Len(t, runs, 1)
	require.EqualValues(t, 42, runs[0].ImageOffset)
	require.EqualValues(t, 8, runs[0].Length)
}
