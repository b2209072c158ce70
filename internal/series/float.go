package series

import (
	"math"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

// Round rounds every element to the given number of decimal places, which
// must be non-negative.
func Round(s *Series, decimals int) (*Series, error) {
	if decimals < 0 {
		return nil, errors.NewInvalidOperandsError("round", "decimal count must be non-negative")
	}
	factor := math.Pow(10, float64(decimals))
	return floatOnlyMap("round", s, func(v float64) float64 {
		return math.Round(v*factor) / factor
	})
}

// Floor maps every element to the greatest integral value not above it.
func Floor(s *Series) (*Series, error) {
	return floatOnlyMap("floor", s, math.Floor)
}

// Ceil maps every element to the least integral value not below it.
func Ceil(s *Series) (*Series, error) {
	return floatOnlyMap("ceil", s, math.Ceil)
}

// IsFinite returns a boolean mask, true where the element is neither
// infinite nor NaN. Null elements stay null in the mask.
func IsFinite(s *Series) (*Series, error) {
	return floatOnlyMask("is_finite", s, func(v float64) bool {
		return !math.IsInf(v, 0) && !math.IsNaN(v)
	})
}

// IsInfinite returns a boolean mask, true where the element is ±Inf.
func IsInfinite(s *Series) (*Series, error) {
	return floatOnlyMask("is_infinite", s, func(v float64) bool {
		return math.IsInf(v, 0)
	})
}

// IsNan returns a boolean mask, true where the element is NaN.
func IsNan(s *Series) (*Series, error) {
	return floatOnlyMask("is_nan", s, func(v float64) bool {
		return math.IsNaN(v)
	})
}

// Trigonometric family, float-only, radian semantics.

func Sin(s *Series) (*Series, error)  { return floatOnlyMap("sin", s, math.Sin) }
func Cos(s *Series) (*Series, error)  { return floatOnlyMap("cos", s, math.Cos) }
func Tan(s *Series) (*Series, error)  { return floatOnlyMap("tan", s, math.Tan) }
func Asin(s *Series) (*Series, error) { return floatOnlyMap("asin", s, math.Asin) }
func Acos(s *Series) (*Series, error) { return floatOnlyMap("acos", s, math.Acos) }
func Atan(s *Series) (*Series, error) { return floatOnlyMap("atan", s, math.Atan) }

func requireFloat(op string, s *Series) error {
	if s.dtype != dtype.Float {
		return errors.NewUnsupportedDtypeError(op, s.dtype, "float")
	}
	return nil
}

func floatOnlyMap(op string, s *Series, fn func(float64) float64) (*Series, error) {
	if err := requireFloat(op, s); err != nil {
		return nil, err
	}
	vals, valid := s.floatView()
	out := make([]float64, len(vals))
	mapChunked(len(vals), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if valid[i] {
				out[i] = fn(vals[i])
			}
		}
	})
	return fromFloat64s(s.name, out, valid), nil
}

func floatOnlyMask(op string, s *Series, fn func(float64) bool) (*Series, error) {
	if err := requireFloat(op, s); err != nil {
		return nil, err
	}
	vals, valid := s.floatView()
	out := make([]bool, len(vals))
	for i, v := range vals {
		if valid[i] {
			out[i] = fn(v)
		}
	}
	return fromBools(s.name, out, valid), nil
}
