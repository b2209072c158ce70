package series

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

func TestBinaryRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		dt     dtype.Dtype
	}{
		{name: "integer", values: []any{1, -2, 3}, dt: dtype.Integer},
		{name: "float", values: []any{1.5, -0.25}, dt: dtype.Float},
		{name: "boolean", values: []any{true, false, true}, dt: dtype.Boolean},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustFromList(t, tt.values)
			buf, err := ToBinary(s)
			require.NoError(t, err)

			back, err := FromBinary(buf, tt.dt)
			require.NoError(t, err)
			assertElems(t, back, tt.dt, s.ToList())
		})
	}
}

func TestFromBinaryIntegers(t *testing.T) {
	buf := make([]byte, 16)
	binary.NativeEndian.PutUint64(buf[0:], 7)
	binary.NativeEndian.PutUint64(buf[8:], uint64(math.MaxUint64)) // -1

	s, err := FromBinary(buf, dtype.Integer, WithName("raw"))
	require.NoError(t, err)
	assertElems(t, s, dtype.Integer, []any{int64(7), int64(-1)})
	assert.Equal(t, "raw", s.Name())
}

func TestFromBinaryAlignment(t *testing.T) {
	_, err := FromBinary(make([]byte, 7), dtype.Integer)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.AlignmentError))
}

func TestFromBinaryVariableWidthRejected(t *testing.T) {
	for _, dt := range []dtype.Dtype{dtype.String, dtype.Binary, dtype.Category} {
		_, err := FromBinary([]byte{1, 2, 3, 4}, dt)
		require.Error(t, err, dt.String())
		assert.True(t, errors.IsKind(err, errors.UnsupportedDtype))
	}
}

func TestToBinaryRejectsVariableWidth(t *testing.T) {
	_, err := ToBinary(mustFromList(t, []any{"a"}))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.UnsupportedDtype))
}

func TestToBinaryCategoryEmitsIndices(t *testing.T) {
	cat := mustFromList(t, []any{"a", "b", "a"}, WithDtype(dtype.Category))
	buf, err := ToBinary(cat)
	require.NoError(t, err)
	require.Len(t, buf, 12)
	assert.Equal(t, uint32(0), binary.NativeEndian.Uint32(buf[0:]))
	assert.Equal(t, uint32(1), binary.NativeEndian.Uint32(buf[4:]))
	assert.Equal(t, uint32(0), binary.NativeEndian.Uint32(buf[8:]))
}

func TestToIovec(t *testing.T) {
	s := mustFromList(t, []any{1, 2})
	chunks, err := ToIovec(s)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0], 16)
}

func TestTensorRoundTrip(t *testing.T) {
	s := mustFromList(t, []any{1, 2, 3})

	tensor, err := ToTensor(s)
	require.NoError(t, err)
	assert.Equal(t, dtype.TensorInt64, tensor.Elem)
	assert.Equal(t, 3, tensor.Len)

	back, err := FromTensor(tensor.Data, tensor.Elem)
	require.NoError(t, err)
	assertElems(t, back, dtype.Integer, s.ToList())
}

func TestFromTensorDisambiguation(t *testing.T) {
	buf := make([]byte, 8)
	binary.NativeEndian.PutUint64(buf, 42)

	t.Run("int64 defaults to integer", func(t *testing.T) {
		s, err := FromTensor(buf, dtype.TensorInt64)
		require.NoError(t, err)
		assert.Equal(t, dtype.Integer, s.Dtype())
	})

	t.Run("int64 admits datetime", func(t *testing.T) {
		s, err := FromTensor(buf, dtype.TensorInt64, WithDtype(dtype.Datetime))
		require.NoError(t, err)
		assert.Equal(t, dtype.Datetime, s.Dtype())
	})

	t.Run("width disagreement fails", func(t *testing.T) {
		_, err := FromTensor(buf, dtype.TensorInt64, WithDtype(dtype.Boolean))
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.TypeMismatch))
	})
}
