// Package series implements the typed, nullable, columnar Series engine:
// construction and dtype inference, null-aware Arrow-backed storage, the
// operation dispatcher with scalar broadcasting, and the eager compute
// kernels (arithmetic, comparison, aggregation, windowing, string, temporal,
// categorical).
package series

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

// Series is an immutable, homogeneously-typed, nullable column of values
// backed by an Apache Arrow array. The name is metadata only; it takes no
// part in equality or computation. Every operation returns a new Series (or
// a scalar) and never mutates the receiver, so backing buffers may be
// structurally shared between handles.
type Series struct {
	name  string
	dtype dtype.Dtype
	arr   arrow.Array
}

var defaultAllocator = memory.NewGoAllocator()

// newSeries wraps an Arrow array without copying.
func newSeries(name string, dt dtype.Dtype, arr arrow.Array) *Series {
	return &Series{name: name, dtype: dt, arr: arr}
}

// Name returns the series name. Empty when unnamed.
func (s *Series) Name() string {
	return s.name
}

// Rename returns a series sharing this one's storage under a new name.
func (s *Series) Rename(name string) *Series {
	return &Series{name: name, dtype: s.dtype, arr: s.arr}
}

// Dtype returns the logical element type.
func (s *Series) Dtype() dtype.Dtype {
	return s.dtype
}

// Len returns the number of elements, nulls included.
func (s *Series) Len() int {
	return s.arr.Len()
}

// IsLazy reports whether this column value is a recorded expression. A
// Series is always a concrete, eagerly computed value.
func (s *Series) IsLazy() bool {
	return false
}

// Array returns the underlying Arrow array (retains a reference).
func (s *Series) Array() arrow.Array {
	if s.arr != nil {
		s.arr.Retain()
		return s.arr
	}
	return nil
}

// Release releases the underlying Arrow memory.
func (s *Series) Release() {
	if s.arr != nil {
		s.arr.Release()
	}
}

// IsNull reports whether the element at index (no negative normalization)
// is null.
func (s *Series) IsNull(index int) bool {
	return s.arr.IsNull(index)
}

// At returns the decoded element at index, or nil for a null element.
// Negative indices count from the end. An index outside the normalized
// bounds fails with an IndexOutOfBounds error.
func (s *Series) At(index int) (any, error) {
	n := s.Len()
	i := index
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil, errors.NewIndexOutOfBoundsError("at", index, n)
	}
	return s.valueAt(i), nil
}

// ToList materializes every element as a decoded Go value, nil for null.
func (s *Series) ToList() []any {
	out := make([]any, s.Len())
	for i := range out {
		out[i] = s.valueAt(i)
	}
	return out
}

// NilCount returns the number of null elements.
func (s *Series) NilCount() int {
	return s.arr.NullN()
}

// valueAt decodes the element at a normalized, in-range index. Integer
// elements decode as int64, float as float64, category as the dictionary
// string, temporal as their Arrow value types.
func (s *Series) valueAt(i int) any {
	if s.arr.IsNull(i) {
		return nil
	}
	switch a := s.arr.(type) {
	case *array.Int64:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.Boolean:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.Binary:
		return a.Value(i)
	case *array.Date32:
		return a.Value(i)
	case *array.Time64:
		return a.Value(i)
	case *array.Timestamp:
		return a.Value(i)
	case *array.Dictionary:
		dict := a.Dictionary().(*array.String)
		return dict.Value(a.GetValueIndex(i))
	default:
		return nil
	}
}

// newBuilder returns an Arrow builder for the dtype's physical layout.
func newBuilder(mem memory.Allocator, dt dtype.Dtype) array.Builder {
	switch dt {
	case dtype.Integer:
		return array.NewInt64Builder(mem)
	case dtype.Float:
		return array.NewFloat64Builder(mem)
	case dtype.Boolean:
		return array.NewBooleanBuilder(mem)
	case dtype.String:
		return array.NewStringBuilder(mem)
	case dtype.Binary:
		return array.NewBinaryBuilder(mem, arrow.BinaryTypes.Binary)
	case dtype.Date:
		return array.NewDate32Builder(mem)
	case dtype.Time:
		return array.NewTime64Builder(mem, arrow.FixedWidthTypes.Time64us.(*arrow.Time64Type))
	case dtype.Datetime:
		return array.NewTimestampBuilder(mem, arrow.FixedWidthTypes.Timestamp_us.(*arrow.TimestampType))
	case dtype.Category:
		return array.NewDictionaryBuilder(mem, dtype.Category.ArrowType().(*arrow.DictionaryType))
	default:
		return nil
	}
}

// appendValue appends one decoded value to a builder for the given dtype,
// coercing the accepted Go representations (int for integer, time.Time for
// datetime, and so on). nil appends a null.
func appendValue(b array.Builder, dt dtype.Dtype, v any) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	switch dt {
	case dtype.Integer:
		ib := b.(*array.Int64Builder)
		switch x := v.(type) {
		case int:
			ib.Append(int64(x))
		case int32:
			ib.Append(int64(x))
		case int64:
			ib.Append(x)
		default:
			return errors.NewOffendingValueError("append", v, dt)
		}
	case dtype.Float:
		fb := b.(*array.Float64Builder)
		switch x := v.(type) {
		case float64:
			fb.Append(x)
		case float32:
			fb.Append(float64(x))
		case int:
			fb.Append(float64(x))
		case int32:
			fb.Append(float64(x))
		case int64:
			fb.Append(float64(x))
		default:
			return errors.NewOffendingValueError("append", v, dt)
		}
	case dtype.Boolean:
		x, ok := v.(bool)
		if !ok {
			return errors.NewOffendingValueError("append", v, dt)
		}
		b.(*array.BooleanBuilder).Append(x)
	case dtype.String:
		x, ok := v.(string)
		if !ok {
			return errors.NewOffendingValueError("append", v, dt)
		}
		b.(*array.StringBuilder).Append(x)
	case dtype.Binary:
		x, ok := v.([]byte)
		if !ok {
			return errors.NewOffendingValueError("append", v, dt)
		}
		b.(*array.BinaryBuilder).Append(x)
	case dtype.Date:
		db := b.(*array.Date32Builder)
		switch x := v.(type) {
		case arrow.Date32:
			db.Append(x)
		case int32:
			db.Append(arrow.Date32(x))
		case int64:
			db.Append(arrow.Date32(x))
		case time.Time:
			db.Append(arrow.Date32FromTime(x))
		default:
			return errors.NewOffendingValueError("append", v, dt)
		}
	case dtype.Time:
		tb := b.(*array.Time64Builder)
		switch x := v.(type) {
		case arrow.Time64:
			tb.Append(x)
		case int64:
			tb.Append(arrow.Time64(x))
		default:
			return errors.NewOffendingValueError("append", v, dt)
		}
	case dtype.Datetime:
		tb := b.(*array.TimestampBuilder)
		switch x := v.(type) {
		case arrow.Timestamp:
			tb.Append(x)
		case int64:
			tb.Append(arrow.Timestamp(x))
		case time.Time:
			tb.Append(arrow.Timestamp(x.UnixMicro()))
		default:
			return errors.NewOffendingValueError("append", v, dt)
		}
	case dtype.Category:
		x, ok := v.(string)
		if !ok {
			return errors.NewOffendingValueError("append", v, dt)
		}
		if err := b.(*array.BinaryDictionaryBuilder).AppendString(x); err != nil {
			return errors.NewInternalError("append", err)
		}
	default:
		return errors.NewUnsupportedDtypeError("append", dt, validSetAll)
	}
	return nil
}

const validSetAll = "binary, boolean, category, date, time, datetime, float, integer, string"

// fromValues builds a series of the given dtype from decoded values.
func fromValues(name string, dt dtype.Dtype, values []any) (*Series, error) {
	b := newBuilder(defaultAllocator, dt)
	if b == nil {
		return nil, errors.NewUnsupportedDtypeError("from_list", dt, validSetAll)
	}
	defer b.Release()
	for _, v := range values {
		if err := appendValue(b, dt, v); err != nil {
			return nil, err
		}
	}
	return newSeries(name, dt, b.NewArray()), nil
}

// Typed rebuild helpers used by kernels. valid may be nil for all-valid.

func fromInt64s(name string, vals []int64, valid []bool) *Series {
	b := array.NewInt64Builder(defaultAllocator)
	defer b.Release()
	b.AppendValues(vals, valid)
	return newSeries(name, dtype.Integer, b.NewArray())
}

func fromFloat64s(name string, vals []float64, valid []bool) *Series {
	b := array.NewFloat64Builder(defaultAllocator)
	defer b.Release()
	b.AppendValues(vals, valid)
	return newSeries(name, dtype.Float, b.NewArray())
}

func fromBools(name string, vals []bool, valid []bool) *Series {
	b := array.NewBooleanBuilder(defaultAllocator)
	defer b.Release()
	b.AppendValues(vals, valid)
	return newSeries(name, dtype.Boolean, b.NewArray())
}

func fromStrings(name string, vals []string, valid []bool) *Series {
	b := array.NewStringBuilder(defaultAllocator)
	defer b.Release()
	b.AppendValues(vals, valid)
	return newSeries(name, dtype.String, b.NewArray())
}

// fromOrdinal rebuilds a fixed-width series of dt from its int64 ordinal
// representation (integer value, day offset, or microsecond offset).
func fromOrdinal(name string, dt dtype.Dtype, vals []int64, valid []bool) *Series {
	switch dt {
	case dtype.Integer:
		return fromInt64s(name, vals, valid)
	case dtype.Date:
		b := array.NewDate32Builder(defaultAllocator)
		defer b.Release()
		days := make([]arrow.Date32, len(vals))
		for i, v := range vals {
			days[i] = arrow.Date32(v)
		}
		b.AppendValues(days, valid)
		return newSeries(name, dt, b.NewArray())
	case dtype.Time:
		b := array.NewTime64Builder(defaultAllocator, arrow.FixedWidthTypes.Time64us.(*arrow.Time64Type))
		defer b.Release()
		us := make([]arrow.Time64, len(vals))
		for i, v := range vals {
			us[i] = arrow.Time64(v)
		}
		b.AppendValues(us, valid)
		return newSeries(name, dt, b.NewArray())
	case dtype.Datetime:
		b := array.NewTimestampBuilder(defaultAllocator, arrow.FixedWidthTypes.Timestamp_us.(*arrow.TimestampType))
		defer b.Release()
		us := make([]arrow.Timestamp, len(vals))
		for i, v := range vals {
			us[i] = arrow.Timestamp(v)
		}
		b.AppendValues(us, valid)
		return newSeries(name, dt, b.NewArray())
	default:
		return nil
	}
}

// floatView decodes a numeric series into float64 values plus a validity
// slice. Only integer and float series have a float view.
func (s *Series) floatView() ([]float64, []bool) {
	n := s.Len()
	vals := make([]float64, n)
	valid := make([]bool, n)
	switch a := s.arr.(type) {
	case *array.Float64:
		for i := 0; i < n; i++ {
			if a.IsValid(i) {
				vals[i] = a.Value(i)
				valid[i] = true
			}
		}
	case *array.Int64:
		for i := 0; i < n; i++ {
			if a.IsValid(i) {
				vals[i] = float64(a.Value(i))
				valid[i] = true
			}
		}
	default:
		return nil, nil
	}
	return vals, valid
}

// ordinalView decodes an integer or temporal series into its int64 ordinal
// representation plus a validity slice.
func (s *Series) ordinalView() ([]int64, []bool) {
	n := s.Len()
	vals := make([]int64, n)
	valid := make([]bool, n)
	switch a := s.arr.(type) {
	case *array.Int64:
		for i := 0; i < n; i++ {
			if a.IsValid(i) {
				vals[i] = a.Value(i)
				valid[i] = true
			}
		}
	case *array.Date32:
		for i := 0; i < n; i++ {
			if a.IsValid(i) {
				vals[i] = int64(a.Value(i))
				valid[i] = true
			}
		}
	case *array.Time64:
		for i := 0; i < n; i++ {
			if a.IsValid(i) {
				vals[i] = int64(a.Value(i))
				valid[i] = true
			}
		}
	case *array.Timestamp:
		for i := 0; i < n; i++ {
			if a.IsValid(i) {
				vals[i] = int64(a.Value(i))
				valid[i] = true
			}
		}
	default:
		return nil, nil
	}
	return vals, valid
}

// boolView decodes a boolean series.
func (s *Series) boolView() ([]bool, []bool) {
	a, ok := s.arr.(*array.Boolean)
	if !ok {
		return nil, nil
	}
	n := s.Len()
	vals := make([]bool, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		if a.IsValid(i) {
			vals[i] = a.Value(i)
			valid[i] = true
		}
	}
	return vals, valid
}

// stringView decodes a string or category series.
func (s *Series) stringView() ([]string, []bool) {
	n := s.Len()
	vals := make([]string, n)
	valid := make([]bool, n)
	switch a := s.arr.(type) {
	case *array.String:
		for i := 0; i < n; i++ {
			if a.IsValid(i) {
				vals[i] = a.Value(i)
				valid[i] = true
			}
		}
	case *array.Dictionary:
		dict := a.Dictionary().(*array.String)
		for i := 0; i < n; i++ {
			if a.IsValid(i) {
				vals[i] = dict.Value(a.GetValueIndex(i))
				valid[i] = true
			}
		}
	default:
		return nil, nil
	}
	return vals, valid
}
