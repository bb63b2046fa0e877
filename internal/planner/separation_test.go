package planner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeparationIdenticalPoints(t *testing.T) {
	require.InDelta(t, 0.0, Separation(120.0, 45.0, 120.0, 45.0), 1e-9)
}

func TestSeparationQuarterCircleOnEquator(t *testing.T) {
	require.InDelta(t, 90.0, Separation(0.0, 0.0, 90.0, 0.0), 1e-9)
}

func TestSeparationAntipodalPoles(t *testing.T) {
	require.InDelta(t, 180.0, Separation(10.0, 90.0, 200.0, -90.0), 1e-9)
}

func TestSeparationSymmetric(t *testing.T) {
	a := Separation(33.2, 12.7, 210.4, -55.1)
	b := Separation(210.4, -55.1, 33.2, 12.7)
	require.InDelta(t, a, b, 1e-12)
}

func TestSeparationRange(t *testing.T) {
	cases := [][4]float64{
		{0, 0, 180, 0},
		{359.9, 89.9, 0.1, -89.9},
		{45, 30, 45.0001, 30.0001},
		{0, -90, 0, 90},
	}
	for _, c := range cases {
		sep := Separation(c[0], c[1], c[2], c[3])
		require.GreaterOrEqual(t, sep, 0.0)
		require.LessOrEqual(t, sep, 180.0)
	}
}

func TestSeparationNearCoincidentStaysFinite(t *testing.T) {
	// cos of a tiny separation can exceed 1 in floating point; the clamp
	// must keep Acos out of NaN territory.
	sep := Separation(100.0, 20.0, 100.0+1e-13, 20.0)
	require.False(t, sep != sep, "separation must not be NaN")
	require.InDelta(t, 0.0, sep, 1e-6)
}
