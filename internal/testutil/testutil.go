// Package testutil provides common testing utilities for the series engine.
//
// It consolidates the construction and comparison patterns the package tests
// share: building series from literal element slices, decoding a series back
// to elements, and asserting elementwise equality with null awareness.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/series"
)

// MustSeries builds a series from decoded elements and fails the test on a
// construction error.
func MustSeries(tb testing.TB, values []any, opts ...series.Option) *series.Series {
	tb.Helper()
	s, err := series.FromList(values, opts...)
	require.NoError(tb, err)
	return s
}

// Ints builds an integer series; a nil pointer element is a null.
func Ints(tb testing.TB, values ...any) *series.Series {
	tb.Helper()
	return MustSeries(tb, values, series.WithDtype(dtype.Integer))
}

// Floats builds a float series; a nil element is a null.
func Floats(tb testing.TB, values ...any) *series.Series {
	tb.Helper()
	return MustSeries(tb, values, series.WithDtype(dtype.Float))
}

// Bools builds a boolean series.
func Bools(tb testing.TB, values ...any) *series.Series {
	tb.Helper()
	return MustSeries(tb, values, series.WithDtype(dtype.Boolean))
}

// Strings builds a string series.
func Strings(tb testing.TB, values ...any) *series.Series {
	tb.Helper()
	return MustSeries(tb, values, series.WithDtype(dtype.String))
}

// AssertElements checks dtype, length, and elementwise equality between the
// series and the expected decoded values, nil meaning null. Float elements
// compare within a small tolerance; NaN equals NaN.
func AssertElements(tb testing.TB, s *series.Series, dt dtype.Dtype, expected []any) {
	tb.Helper()
	require.Equal(tb, dt, s.Dtype(), "dtype")
	require.Equal(tb, len(expected), s.Len(), "length")
	got := s.ToList()
	for i, want := range expected {
		if want == nil {
			require.Nil(tb, got[i], "element %d", i)
			continue
		}
		require.NotNil(tb, got[i], "element %d", i)
		if wf, ok := want.(float64); ok {
			gf, isFloat := got[i].(float64)
			require.True(tb, isFloat, "element %d not a float", i)
			if math.IsNaN(wf) {
				require.True(tb, math.IsNaN(gf), "element %d", i)
			} else {
				require.InDelta(tb, wf, gf, 1e-9, "element %d", i)
			}
			continue
		}
		require.Equal(tb, want, got[i], "element %d", i)
	}
}

// AssertSeriesEqual checks that two series share dtype, length, and decoded
// elements.
func AssertSeriesEqual(tb testing.TB, expected, actual *series.Series) {
	tb.Helper()
	AssertElements(tb, actual, expected.Dtype(), expected.ToList())
}
