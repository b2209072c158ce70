package series

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

// Option configures series construction.
type Option func(*options)

type options struct {
	name     string
	dtype    dtype.Dtype
	hasDtype bool
}

// WithName sets the name of the constructed series.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithDtype requests a target dtype. The series is built at the inferred
// dtype first and then cast, so the request must be reachable through the
// cast kernel set.
func WithDtype(dt dtype.Dtype) Option {
	return func(o *options) {
		o.dtype = dt
		o.hasDtype = true
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ScalarDtype classifies a decoded Go value into the dtype family it belongs
// to. nil values carry no dtype.
func ScalarDtype(v any) (dtype.Dtype, bool) {
	switch v.(type) {
	case int, int32, int64:
		return dtype.Integer, true
	case float32, float64:
		return dtype.Float, true
	case bool:
		return dtype.Boolean, true
	case string:
		return dtype.String, true
	case []byte:
		return dtype.Binary, true
	case arrow.Date32:
		return dtype.Date, true
	case arrow.Time64:
		return dtype.Time, true
	case arrow.Timestamp, time.Time:
		return dtype.Datetime, true
	default:
		return 0, false
	}
}

// inferDtype scans a list for the most specific common dtype over its
// non-null elements. An all-null list infers float. Mixing integer and float
// promotes to float; every other mix is a type mismatch naming the first
// value that does not fit the established dtype.
func inferDtype(values []any) (dtype.Dtype, error) {
	established := dtype.Float
	seen := false
	for _, v := range values {
		if v == nil {
			continue
		}
		dt, ok := ScalarDtype(v)
		if !ok {
			return 0, errors.NewOffendingValueError("from_list", v, "any supported dtype")
		}
		if !seen {
			established = dt
			seen = true
			continue
		}
		promoted, ok := dtype.Promote(established, dt)
		if !ok {
			return 0, errors.NewOffendingValueError("from_list", v, established)
		}
		established = promoted
	}
	return established, nil
}

// FromList builds a series from decoded Go values, inferring the dtype from
// the elements. Accepted element types: nil, int/int32/int64, float32/float64
// (NaN and infinities included), bool, string, []byte, time.Time,
// arrow.Date32, arrow.Time64, arrow.Timestamp.
func FromList(values []any, opts ...Option) (*Series, error) {
	o := applyOptions(opts)

	inferred, err := inferDtype(values)
	if err != nil {
		return nil, err
	}

	if o.hasDtype && o.dtype != inferred {
		// A categorical request only makes sense over string elements.
		if o.dtype == dtype.Category && inferred != dtype.String {
			return nil, errors.NewTypeMismatchError("from_list", o.dtype, inferred)
		}
		// An all-null list carries no element evidence; build at the
		// requested dtype directly instead of casting from float.
		if allNull(values) {
			return fromValues(o.name, o.dtype, values)
		}
		built, err := fromValues(o.name, inferred, values)
		if err != nil {
			return nil, err
		}
		return Cast(built, o.dtype)
	}

	return fromValues(o.name, inferred, values)
}

func allNull(values []any) bool {
	for _, v := range values {
		if v != nil {
			return false
		}
	}
	return true
}
