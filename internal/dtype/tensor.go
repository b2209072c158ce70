package dtype

// TensorElem tags the element type of an external numeric buffer handed to the
// tensor conversion boundary.
type TensorElem int

const (
	TensorUint8 TensorElem = iota
	TensorInt32
	TensorInt64
	TensorFloat64
)

// String implements fmt.Stringer.
func (t TensorElem) String() string {
	switch t {
	case TensorUint8:
		return "u8"
	case TensorInt32:
		return "s32"
	case TensorInt64:
		return "s64"
	case TensorFloat64:
		return "f64"
	default:
		return "unknown"
	}
}

// Width returns the buffer element width in bytes.
func (t TensorElem) Width() int {
	switch t {
	case TensorUint8:
		return 1
	case TensorInt32:
		return 4
	case TensorInt64, TensorFloat64:
		return 8
	default:
		return 0
	}
}

// DefaultDtype returns the dtype a buffer of this element type maps to when
// the caller gives no hint. Signed 64-bit buffers are ambiguous between
// integer, time and datetime; integer is the default and the caller
// disambiguates with an explicit dtype.
func (t TensorElem) DefaultDtype() Dtype {
	switch t {
	case TensorUint8:
		return Boolean
	case TensorInt32:
		return Date
	case TensorInt64:
		return Integer
	case TensorFloat64:
		return Float
	default:
		return Integer
	}
}

// Admits reports whether a buffer of this element type may be interpreted as d.
func (t TensorElem) Admits(d Dtype) bool {
	switch t {
	case TensorUint8:
		return d == Boolean
	case TensorInt32:
		return d == Date
	case TensorInt64:
		return d == Integer || d == Time || d == Datetime
	case TensorFloat64:
		return d == Float
	default:
		return false
	}
}
