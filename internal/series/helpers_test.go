package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeregrine/explorer/internal/dtype"
)

// mustFromList builds a series, failing the test on error.
func mustFromList(t *testing.T, values []any, opts ...Option) *Series {
	t.Helper()
	s, err := FromList(values, opts...)
	require.NoError(t, err)
	return s
}

// assertElems checks dtype, length and decoded elements, nil meaning null.
func assertElems(t *testing.T, s *Series, dt dtype.Dtype, expected []any) {
	t.Helper()
	require.Equal(t, dt, s.Dtype())
	require.Equal(t, len(expected), s.Len())
	got := s.ToList()
	for i, want := range expected {
		if want == nil {
			require.Nil(t, got[i], "element %d", i)
			continue
		}
		require.NotNil(t, got[i], "element %d", i)
		if wf, ok := want.(float64); ok {
			gf, isFloat := got[i].(float64)
			require.True(t, isFloat, "element %d should be float", i)
			if math.IsNaN(wf) {
				require.True(t, math.IsNaN(gf), "element %d", i)
			} else {
				require.InDelta(t, wf, gf, 1e-9, "element %d", i)
			}
			continue
		}
		require.Equal(t, want, got[i], "element %d", i)
	}
}
