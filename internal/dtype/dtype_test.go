package dtype

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
)

func TestDtypeString(t *testing.T) {
	expected := map[Dtype]string{
		Binary:   "binary",
		Boolean:  "boolean",
		Category: "category",
		Date:     "date",
		Time:     "time",
		Datetime: "datetime",
		Float:    "float",
		Integer:  "integer",
		String:   "string",
	}
	for dt, name := range expected {
		assert.Equal(t, name, dt.String())
	}
	assert.Equal(t, "unknown", Dtype(99).String())
}

func TestDtypeFamilies(t *testing.T) {
	tests := []struct {
		dt       Dtype
		numeric  bool
		temporal bool
		ordered  bool
		varWidth bool
	}{
		{dt: Integer, numeric: true, ordered: true},
		{dt: Float, numeric: true, ordered: true},
		{dt: Date, temporal: true, ordered: true},
		{dt: Time, temporal: true, ordered: true},
		{dt: Datetime, temporal: true, ordered: true},
		{dt: String, varWidth: true},
		{dt: Binary, varWidth: true},
		{dt: Boolean},
		{dt: Category},
	}

	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			assert.Equal(t, tt.numeric, tt.dt.IsNumeric())
			assert.Equal(t, tt.temporal, tt.dt.IsTemporal())
			assert.Equal(t, tt.ordered, tt.dt.IsOrdered())
			assert.Equal(t, tt.varWidth, tt.dt.IsVariableWidth())
		})
	}
}

func TestDtypeWidth(t *testing.T) {
	assert.Equal(t, 1, Boolean.Width())
	assert.Equal(t, 4, Date.Width())
	assert.Equal(t, 4, Category.Width())
	assert.Equal(t, 8, Integer.Width())
	assert.Equal(t, 8, Float.Width())
	assert.Equal(t, 8, Time.Width())
	assert.Equal(t, 8, Datetime.Width())
	assert.Equal(t, 0, String.Width())
	assert.Equal(t, 0, Binary.Width())
}

func TestArrowType(t *testing.T) {
	assert.Equal(t, arrow.PrimitiveTypes.Int64, Integer.ArrowType())
	assert.Equal(t, arrow.PrimitiveTypes.Float64, Float.ArrowType())
	assert.Equal(t, arrow.FixedWidthTypes.Date32, Date.ArrowType())
	assert.Equal(t, arrow.BinaryTypes.String, String.ArrowType())

	dict, ok := Category.ArrowType().(*arrow.DictionaryType)
	assert.True(t, ok)
	assert.Equal(t, arrow.PrimitiveTypes.Uint32, dict.IndexType)
	assert.Equal(t, arrow.BinaryTypes.String, dict.ValueType)
}

func TestPromote(t *testing.T) {
	tests := []struct {
		a, b     Dtype
		expected Dtype
		ok       bool
	}{
		{a: Integer, b: Integer, expected: Integer, ok: true},
		{a: Integer, b: Float, expected: Float, ok: true},
		{a: Float, b: Integer, expected: Float, ok: true},
		{a: String, b: String, expected: String, ok: true},
		{a: Date, b: Date, expected: Date, ok: true},
		{a: Integer, b: String, ok: false},
		{a: Date, b: Datetime, ok: false},
		{a: Boolean, b: Integer, ok: false},
	}

	for _, tt := range tests {
		got, ok := Promote(tt.a, tt.b)
		assert.Equal(t, tt.ok, ok, "%s + %s", tt.a, tt.b)
		if ok {
			assert.Equal(t, tt.expected, got, "%s + %s", tt.a, tt.b)
		}
	}
}

func TestTensorElem(t *testing.T) {
	assert.Equal(t, 1, TensorUint8.Width())
	assert.Equal(t, 4, TensorInt32.Width())
	assert.Equal(t, 8, TensorInt64.Width())
	assert.Equal(t, 8, TensorFloat64.Width())

	assert.Equal(t, Boolean, TensorUint8.DefaultDtype())
	assert.Equal(t, Date, TensorInt32.DefaultDtype())
	assert.Equal(t, Integer, TensorInt64.DefaultDtype())
	assert.Equal(t, Float, TensorFloat64.DefaultDtype())

	assert.True(t, TensorInt64.Admits(Integer))
	assert.True(t, TensorInt64.Admits(Time))
	assert.True(t, TensorInt64.Admits(Datetime))
	assert.False(t, TensorInt64.Admits(Float))
	assert.False(t, TensorUint8.Admits(Integer))
}
