package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

func TestRound(t *testing.T) {
	s := mustFromList(t, []any{1.234, 5.678, nil})

	out, err := Round(s, 2)
	require.NoError(t, err)
	assertElems(t, out, dtype.Float, []any{1.23, 5.68, nil})

	out, err = Round(s, 0)
	require.NoError(t, err)
	assertElems(t, out, dtype.Float, []any{1.0, 6.0, nil})

	_, err = Round(s, -1)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.InvalidOperands))

	_, err = Round(mustFromList(t, []any{1}), 2)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.UnsupportedDtype))
}

func TestFloorCeil(t *testing.T) {
	s := mustFromList(t, []any{1.2, -1.2})

	out, err := Floor(s)
	require.NoError(t, err)
	assertElems(t, out, dtype.Float, []any{1.0, -2.0})

	out, err = Ceil(s)
	require.NoError(t, err)
	assertElems(t, out, dtype.Float, []any{2.0, -1.0})
}

func TestFloatPredicates(t *testing.T) {
	s := mustFromList(t, []any{1.0, math.Inf(1), math.NaN(), nil})

	out, err := IsFinite(s)
	require.NoError(t, err)
	assertElems(t, out, dtype.Boolean, []any{true, false, false, nil})

	out, err = IsInfinite(s)
	require.NoError(t, err)
	assertElems(t, out, dtype.Boolean, []any{false, true, false, nil})

	out, err = IsNan(s)
	require.NoError(t, err)
	assertElems(t, out, dtype.Boolean, []any{false, false, true, nil})
}

func TestTrigonometry(t *testing.T) {
	s := mustFromList(t, []any{0.0, math.Pi / 2})

	out, err := Sin(s)
	require.NoError(t, err)
	assertElems(t, out, dtype.Float, []any{0.0, 1.0})

	out, err = Cos(mustFromList(t, []any{0.0}))
	require.NoError(t, err)
	assertElems(t, out, dtype.Float, []any{1.0})

	out, err = Atan(mustFromList(t, []any{1.0}))
	require.NoError(t, err)
	assertElems(t, out, dtype.Float, []any{math.Pi / 4})

	_, err = Sin(mustFromList(t, []any{1}))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.UnsupportedDtype))
}
