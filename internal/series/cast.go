package series

import (
	"strconv"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

// Cast converts a series to the target dtype through the per-(source,target)
// kernel set. Casting to the same dtype is a no-op returning the receiver.
// Unsupported pairs fail with UnsupportedDtype; in particular float to
// integer is deliberately not provided.
func Cast(s *Series, target dtype.Dtype) (*Series, error) {
	if s.dtype == target {
		return s, nil
	}

	switch {
	case s.dtype == dtype.Integer && target == dtype.Float:
		vals, valid := s.floatView()
		return fromFloat64s(s.name, vals, valid), nil

	case s.dtype == dtype.Integer && target.IsTemporal():
		// Reinterpret integer values as the target's day or microsecond
		// offset from epoch.
		vals, valid := s.ordinalView()
		return fromOrdinal(s.name, target, vals, valid), nil

	case s.dtype == dtype.Integer && target == dtype.String:
		return castToString(s, func(v any) string {
			return strconv.FormatInt(v.(int64), 10)
		}), nil

	case s.dtype == dtype.Float && target == dtype.String:
		return castToString(s, func(v any) string {
			return strconv.FormatFloat(v.(float64), 'f', -1, 64)
		}), nil

	case s.dtype == dtype.String && target == dtype.Category:
		vals, valid := s.stringView()
		return fromCategories(s.name, vals, valid)

	case s.dtype == dtype.Category && target == dtype.String:
		vals, valid := s.stringView()
		return fromStrings(s.name, vals, valid), nil

	default:
		return nil, errors.NewUnsupportedDtypeError("cast", s.dtype, "pairs defined by the cast kernel set, target "+target.String())
	}
}

func castToString(s *Series, format func(any) string) *Series {
	n := s.Len()
	vals := make([]string, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		if !s.arr.IsNull(i) {
			vals[i] = format(s.valueAt(i))
			valid[i] = true
		}
	}
	return fromStrings(s.name, vals, valid)
}
