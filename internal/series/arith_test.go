package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name     string
		left     any
		right    any
		expected []any
		dt       dtype.Dtype
	}{
		{
			name:     "integer series",
			left:     []any{1, 2, 3},
			right:    []any{10, 20, 30},
			expected: []any{int64(11), int64(22), int64(33)},
			dt:       dtype.Integer,
		},
		{
			name:     "integer and float promote",
			left:     []any{1, 2},
			right:    []any{0.5, 0.5},
			expected: []any{1.5, 2.5},
			dt:       dtype.Float,
		},
		{
			name:     "null propagates",
			left:     []any{1, nil, 3},
			right:    []any{1, 1, nil},
			expected: []any{int64(2), nil, nil},
			dt:       dtype.Integer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls := mustFromList(t, tt.left.([]any))
			rs := mustFromList(t, tt.right.([]any))
			out, err := Add(ls, rs)
			require.NoError(t, err)
			assertElems(t, out, tt.dt, tt.expected)
		})
	}
}

func TestAddScalarBroadcast(t *testing.T) {
	s := mustFromList(t, []any{1, 2, 3}, WithName("xs"))

	out, err := Add(s, 10)
	require.NoError(t, err)
	assertElems(t, out, dtype.Integer, []any{int64(11), int64(12), int64(13)})
	assert.Equal(t, "xs", out.Name())

	out, err = Add(2.5, s)
	require.NoError(t, err)
	assertElems(t, out, dtype.Float, []any{3.5, 4.5, 5.5})
}

func TestAddSizeOneBroadcast(t *testing.T) {
	s := mustFromList(t, []any{1, 2, 3})
	one := mustFromList(t, []any{100})
	out, err := Add(s, one)
	require.NoError(t, err)
	assertElems(t, out, dtype.Integer, []any{int64(101), int64(102), int64(103)})
}

func TestAddErrors(t *testing.T) {
	t.Run("two bare scalars", func(t *testing.T) {
		_, err := Add(1, 2)
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.InvalidOperands))
	})

	t.Run("size mismatch", func(t *testing.T) {
		_, err := Add(mustFromList(t, []any{1, 2}), mustFromList(t, []any{1, 2, 3}))
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.SizeMismatch))
	})

	t.Run("non numeric operand", func(t *testing.T) {
		_, err := Add(mustFromList(t, []any{"a"}), mustFromList(t, []any{"b"}))
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.UnsupportedDtype))
	})
}

func TestSubtractMultiply(t *testing.T) {
	ls := mustFromList(t, []any{10, 20})
	rs := mustFromList(t, []any{3, 4})

	out, err := Subtract(ls, rs)
	require.NoError(t, err)
	assertElems(t, out, dtype.Integer, []any{int64(7), int64(16)})

	out, err = Multiply(ls, rs)
	require.NoError(t, err)
	assertElems(t, out, dtype.Integer, []any{int64(30), int64(80)})
}

func TestDivideAlwaysFloat(t *testing.T) {
	out, err := Divide(mustFromList(t, []any{10, 5}), mustFromList(t, []any{4, 2}))
	require.NoError(t, err)
	assertElems(t, out, dtype.Float, []any{2.5, 2.5})

	out, err = Divide(mustFromList(t, []any{1.0}), 0)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	v, err := out.At(0)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v.(float64), 1))
}

func TestPow(t *testing.T) {
	out, err := Pow(mustFromList(t, []any{2, 3}), 2)
	require.NoError(t, err)
	assertElems(t, out, dtype.Integer, []any{int64(4), int64(9)})

	out, err = Pow(mustFromList(t, []any{4.0}), 0.5)
	require.NoError(t, err)
	assertElems(t, out, dtype.Float, []any{2.0})
}

func TestQuotientRemainder(t *testing.T) {
	ls := mustFromList(t, []any{10, 11, 10})
	rs := mustFromList(t, []any{2, 2, 0})

	out, err := Quotient(ls, rs)
	require.NoError(t, err)
	assertElems(t, out, dtype.Integer, []any{int64(5), int64(5), nil})

	out, err = Remainder(ls, rs)
	require.NoError(t, err)
	assertElems(t, out, dtype.Integer, []any{int64(0), int64(1), nil})

	_, err = Quotient(mustFromList(t, []any{1.0}), mustFromList(t, []any{2.0}))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.UnsupportedDtype))
}

func TestLog(t *testing.T) {
	out, err := Log(mustFromList(t, []any{math.E, 1.0, nil}))
	require.NoError(t, err)
	assertElems(t, out, dtype.Float, []any{1.0, 0.0, nil})

	out, err = LogBase(mustFromList(t, []any{8}), 2)
	require.NoError(t, err)
	assertElems(t, out, dtype.Float, []any{3.0})
}
