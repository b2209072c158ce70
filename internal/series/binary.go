package series

import (
	"encoding/binary"
	"math"

	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

// FromBinary interprets bytes as a native-endian fixed-width array whose
// element width is dictated by the dtype. No validity bitmap is attached;
// every element is valid. A buffer that is not a multiple of the element
// width fails with AlignmentError. Variable-width dtypes have no binary
// form.
func FromBinary(data []byte, dt dtype.Dtype, opts ...Option) (*Series, error) {
	o := applyOptions(opts)
	width := dt.Width()
	if width == 0 || dt == dtype.Category {
		return nil, errors.NewUnsupportedDtypeError("from_binary", dt, "boolean, date, time, datetime, float, integer")
	}
	if len(data)%width != 0 {
		return nil, errors.NewAlignmentError("from_binary", len(data), width, dt)
	}

	n := len(data) / width
	switch dt {
	case dtype.Boolean:
		vals := make([]bool, n)
		for i := range vals {
			vals[i] = data[i] != 0
		}
		return fromBools(o.name, vals, nil), nil
	case dtype.Date:
		vals := make([]int64, n)
		for i := range vals {
			vals[i] = int64(int32(binary.NativeEndian.Uint32(data[i*4:])))
		}
		return fromOrdinal(o.name, dt, vals, nil), nil
	case dtype.Float:
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = math.Float64frombits(binary.NativeEndian.Uint64(data[i*8:]))
		}
		return fromFloat64s(o.name, vals, nil), nil
	default: // integer, time, datetime
		vals := make([]int64, n)
		for i := range vals {
			vals[i] = int64(binary.NativeEndian.Uint64(data[i*8:]))
		}
		return fromOrdinal(o.name, dt, vals, nil), nil
	}
}

// ToBinary encodes the series values as a native-endian fixed-width buffer.
// String and binary series have no fixed-width form and fail with
// UnsupportedDtype; cast to category first for a fixed-width index
// representation. Null elements encode as zero.
func ToBinary(s *Series) ([]byte, error) {
	switch s.dtype {
	case dtype.String, dtype.Binary:
		return nil, errors.NewUnsupportedDtypeError("to_binary", s.dtype, "boolean, category, date, time, datetime, float, integer")
	case dtype.Boolean:
		vals, valid := s.boolView()
		out := make([]byte, len(vals))
		for i, v := range vals {
			if valid[i] && v {
				out[i] = 1
			}
		}
		return out, nil
	case dtype.Category:
		a := s.arr.(*array.Dictionary)
		out := make([]byte, 4*s.Len())
		for i := 0; i < s.Len(); i++ {
			if a.IsValid(i) {
				binary.NativeEndian.PutUint32(out[i*4:], uint32(a.GetValueIndex(i)))
			}
		}
		return out, nil
	case dtype.Date:
		vals, valid := s.ordinalView()
		out := make([]byte, 4*len(vals))
		for i, v := range vals {
			if valid[i] {
				binary.NativeEndian.PutUint32(out[i*4:], uint32(int32(v)))
			}
		}
		return out, nil
	case dtype.Float:
		vals, valid := s.floatView()
		out := make([]byte, 8*len(vals))
		for i, v := range vals {
			if valid[i] {
				binary.NativeEndian.PutUint64(out[i*8:], math.Float64bits(v))
			}
		}
		return out, nil
	default: // integer, time, datetime
		vals, valid := s.ordinalView()
		out := make([]byte, 8*len(vals))
		for i, v := range vals {
			if valid[i] {
				binary.NativeEndian.PutUint64(out[i*8:], uint64(v))
			}
		}
		return out, nil
	}
}

// ToIovec returns the series values as a sequence of fixed-width binary
// chunks. The dtype restrictions match ToBinary.
func ToIovec(s *Series) ([][]byte, error) {
	buf, err := ToBinary(s)
	if err != nil {
		return nil, err
	}
	return [][]byte{buf}, nil
}

// FromTensor interprets an external numeric buffer as a series. The element
// type fixes the default dtype; a signed 64-bit buffer is ambiguous between
// integer, time and datetime and is disambiguated with WithDtype. A dtype
// whose physical width disagrees with the buffer's element type fails with
// TypeMismatch.
func FromTensor(data []byte, elem dtype.TensorElem, opts ...Option) (*Series, error) {
	o := applyOptions(opts)
	dt := elem.DefaultDtype()
	if o.hasDtype {
		if !elem.Admits(o.dtype) {
			return nil, errors.NewTypeMismatchError("from_tensor", elem, o.dtype)
		}
		dt = o.dtype
	}
	if len(data)%elem.Width() != 0 {
		return nil, errors.NewAlignmentError("from_tensor", len(data), elem.Width(), dt)
	}
	return FromBinary(data, dt, WithName(o.name))
}

// Tensor is a fixed-width buffer view of a series for the numeric-buffer
// interchange boundary.
type Tensor struct {
	Data []byte
	Elem dtype.TensorElem
	Len  int
}

// ToTensor encodes the series as an element-type tagged numeric buffer.
func ToTensor(s *Series) (*Tensor, error) {
	var elem dtype.TensorElem
	switch s.dtype {
	case dtype.Boolean:
		elem = dtype.TensorUint8
	case dtype.Date:
		elem = dtype.TensorInt32
	case dtype.Integer, dtype.Time, dtype.Datetime:
		elem = dtype.TensorInt64
	case dtype.Float:
		elem = dtype.TensorFloat64
	default:
		return nil, errors.NewUnsupportedDtypeError("to_tensor", s.dtype, "boolean, date, time, datetime, float, integer")
	}
	buf, err := ToBinary(s)
	if err != nil {
		return nil, err
	}
	return &Tensor{Data: buf, Elem: elem, Len: s.Len()}, nil
}
