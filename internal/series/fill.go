package series

import (
	"math"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

// FillStrategy names a computed fill for null positions.
type FillStrategy int

const (
	// FillForward carries the previous valid value forward.
	FillForward FillStrategy = iota
	// FillBackward carries the next valid value backward.
	FillBackward
	// FillMin substitutes the series minimum.
	FillMin
	// FillMax substitutes the series maximum.
	FillMax
	// FillMean substitutes the series mean, truncated to integer for an
	// integer series.
	FillMean
	// FillNan substitutes NaN; float series only.
	FillNan
	// FillInfinity substitutes +Inf; float series only.
	FillInfinity
	// FillNegInfinity substitutes -Inf; float series only.
	FillNegInfinity
)

// FillMissing substitutes a strategy-derived value at null positions only.
func FillMissing(s *Series, strategy FillStrategy) (*Series, error) {
	switch strategy {
	case FillForward:
		return fillDirectional(s, true)
	case FillBackward:
		return fillDirectional(s, false)
	case FillMin:
		v, err := Min(s)
		if err != nil {
			return nil, err
		}
		return fillScalar(s, v)
	case FillMax:
		v, err := Max(s)
		if err != nil {
			return nil, err
		}
		return fillScalar(s, v)
	case FillMean:
		v, err := Mean(s)
		if err != nil {
			return nil, err
		}
		if v != nil && s.dtype == dtype.Integer {
			v = int64(v.(float64))
		}
		return fillScalar(s, v)
	case FillNan:
		return fillFloatSpecial("fill_missing", s, math.NaN())
	case FillInfinity:
		return fillFloatSpecial("fill_missing", s, math.Inf(1))
	case FillNegInfinity:
		return fillFloatSpecial("fill_missing", s, math.Inf(-1))
	default:
		return nil, errors.NewInvalidOperandsError("fill_missing", "unknown fill strategy")
	}
}

// FillMissingWith substitutes the given scalar at null positions. The scalar
// must match the series' dtype family; an integer scalar may fill a float
// series through numeric promotion.
func FillMissingWith(s *Series, value any) (*Series, error) {
	if value == nil {
		return s, nil
	}
	dt, ok := ScalarDtype(value)
	if !ok {
		return nil, errors.NewInvalidOperandsError("fill_missing", "unsupported fill value")
	}
	if dt != s.dtype {
		promoted, ok := dtype.Promote(s.dtype, dt)
		if !ok || promoted != s.dtype {
			return nil, errors.NewTypeMismatchError("fill_missing", dt, s.dtype)
		}
	}
	return fillScalar(s, value)
}

func fillScalar(s *Series, value any) (*Series, error) {
	if value == nil {
		return s, nil
	}
	n := s.Len()
	out := make([]any, n)
	for i := 0; i < n; i++ {
		v := s.valueAt(i)
		if v == nil {
			v = value
		}
		out[i] = v
	}
	return fromValues(s.name, s.dtype, out)
}

func fillDirectional(s *Series, forward bool) (*Series, error) {
	n := s.Len()
	out := make([]any, n)
	var carry any
	walk := func(i int) {
		v := s.valueAt(i)
		if v == nil {
			v = carry
		} else {
			carry = v
		}
		out[i] = v
	}
	if forward {
		for i := 0; i < n; i++ {
			walk(i)
		}
	} else {
		for i := n - 1; i >= 0; i-- {
			walk(i)
		}
	}
	return fromValues(s.name, s.dtype, out)
}

func fillFloatSpecial(op string, s *Series, value float64) (*Series, error) {
	if s.dtype != dtype.Float {
		return nil, errors.NewUnsupportedDtypeError(op, s.dtype, "float")
	}
	return fillScalar(s, value)
}
