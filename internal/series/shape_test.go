package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

func TestSlice(t *testing.T) {
	s := mustFromList(t, []any{1, 2, 3, 4, 5})

	tests := []struct {
		name     string
		offset   int
		length   int
		expected []any
	}{
		{name: "head", offset: 0, length: 2, expected: []any{int64(1), int64(2)}},
		{name: "negative offset", offset: -3, length: 2, expected: []any{int64(3), int64(4)}},
		{name: "length clamps", offset: 3, length: 10, expected: []any{int64(4), int64(5)}},
		{name: "offset past end", offset: 9, length: 2, expected: []any{}},
		{name: "zero length", offset: 1, length: 0, expected: []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := s.Slice(tt.offset, tt.length)
			assertElems(t, out, dtype.Integer, tt.expected)
		})
	}
}

func TestSliceRange(t *testing.T) {
	s := mustFromList(t, []any{1, 2, 3, 4, 5})

	assertElems(t, s.SliceRange(1, 3), dtype.Integer, []any{int64(2), int64(3)})
	assertElems(t, s.SliceRange(-2, 5), dtype.Integer, []any{int64(4), int64(5)})
	assertElems(t, s.SliceRange(3, 1), dtype.Integer, []any{})
}

func TestSliceSharesStorage(t *testing.T) {
	s := mustFromList(t, []any{1, nil, 3})
	out := s.Slice(1, 2)
	assertElems(t, out, dtype.Integer, []any{nil, int64(3)})
	assert.Equal(t, 1, out.NilCount())
}

func TestTakeIndices(t *testing.T) {
	s := mustFromList(t, []any{10, 20, 30})

	out, err := TakeIndices(s, []int{2, 0, 2})
	require.NoError(t, err)
	assertElems(t, out, dtype.Integer, []any{int64(30), int64(10), int64(30)})

	_, err = TakeIndices(s, []int{3})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.IndexOutOfBounds))

	_, err = TakeIndices(s, []int{-1})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.InvalidOperands))
}

func TestMask(t *testing.T) {
	s := mustFromList(t, []any{1, 2, 3})
	mask := mustFromList(t, []any{true, false, true})

	out, err := Mask(s, mask)
	require.NoError(t, err)
	assertElems(t, out, dtype.Integer, []any{int64(1), int64(3)})

	t.Run("null mask drops", func(t *testing.T) {
		out, err := Mask(s, mustFromList(t, []any{true, nil, true}))
		require.NoError(t, err)
		assertElems(t, out, dtype.Integer, []any{int64(1), int64(3)})
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := Mask(s, mustFromList(t, []any{true}))
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.SizeMismatch))
	})

	t.Run("non boolean mask", func(t *testing.T) {
		_, err := Mask(s, mustFromList(t, []any{1, 2, 3}))
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.TypeMismatch))
	})
}

func TestRemove(t *testing.T) {
	s := mustFromList(t, []any{1, 2, 3})

	out, err := Remove(s, 1)
	require.NoError(t, err)
	assertElems(t, out, dtype.Integer, []any{int64(1), int64(3)})

	out, err = Remove(s, -1)
	require.NoError(t, err)
	assertElems(t, out, dtype.Integer, []any{int64(1), int64(2)})

	_, err = Remove(s, 3)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.IndexOutOfBounds))
}

func TestSampleN(t *testing.T) {
	s := mustFromList(t, []any{1, 2, 3, 4, 5})
	seed := int64(42)

	t.Run("without replacement", func(t *testing.T) {
		out, err := SampleN(s, 3, SampleOptions{Seed: &seed})
		require.NoError(t, err)
		require.Equal(t, 3, out.Len())
		seen := map[any]bool{}
		for _, v := range out.ToList() {
			require.False(t, seen[v], "duplicate draw %v", v)
			seen[v] = true
		}
	})

	t.Run("full size without shuffle is identity", func(t *testing.T) {
		out, err := SampleN(s, 5, SampleOptions{Seed: &seed})
		require.NoError(t, err)
		assertElems(t, out, dtype.Integer, s.ToList())
	})

	t.Run("overcount without replacement fails", func(t *testing.T) {
		_, err := SampleN(s, 6, SampleOptions{Seed: &seed})
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.InvalidOperands))
	})

	t.Run("replacement allows overcount", func(t *testing.T) {
		out, err := SampleN(s, 8, SampleOptions{Replace: true, Seed: &seed})
		require.NoError(t, err)
		require.Equal(t, 8, out.Len())
	})

	t.Run("seed is deterministic", func(t *testing.T) {
		a, err := SampleN(s, 3, SampleOptions{Seed: &seed})
		require.NoError(t, err)
		b, err := SampleN(s, 3, SampleOptions{Seed: &seed})
		require.NoError(t, err)
		assert.Equal(t, a.ToList(), b.ToList())
	})

	t.Run("empty series", func(t *testing.T) {
		empty := mustFromList(t, []any{})
		_, err := SampleN(empty, 1, SampleOptions{Replace: true})
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.InvalidOperands))
	})
}

func TestSampleFraction(t *testing.T) {
	s := mustFromList(t, []any{1, 2, 3, 4, 5})
	seed := int64(7)

	out, err := SampleFraction(s, 0.5, SampleOptions{Seed: &seed})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
}
