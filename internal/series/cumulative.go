package series

import (
	"golang.org/x/exp/constraints"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

// CumulativeSum computes the running sum of a numeric series. Null input
// positions stay null in the output without resetting the accumulation for
// subsequent elements. With reverse the accumulation runs from the tail.
func CumulativeSum(s *Series, reverse bool) (*Series, error) {
	if !s.dtype.IsNumeric() {
		return nil, errors.NewUnsupportedDtypeError("cumulative_sum", s.dtype, "integer, float")
	}
	if s.dtype == dtype.Integer {
		vals, valid := s.ordinalView()
		out, outValid := runAccumulation(vals, valid, reverse, func(acc, v int64) int64 { return acc + v })
		return fromInt64s(s.name, out, outValid), nil
	}
	vals, valid := s.floatView()
	out, outValid := runAccumulation(vals, valid, reverse, func(acc, v float64) float64 { return acc + v })
	return fromFloat64s(s.name, out, outValid), nil
}

// CumulativeMin computes the running minimum. Accepts numeric and temporal
// series under their natural order.
func CumulativeMin(s *Series, reverse bool) (*Series, error) {
	return cumulativeExtremum("cumulative_min", s, reverse, true)
}

// CumulativeMax computes the running maximum.
func CumulativeMax(s *Series, reverse bool) (*Series, error) {
	return cumulativeExtremum("cumulative_max", s, reverse, false)
}

func cumulativeExtremum(op string, s *Series, reverse, wantMin bool) (*Series, error) {
	if !s.dtype.IsOrdered() {
		return nil, errors.NewUnsupportedDtypeError(op, s.dtype, "integer, float, date, time, datetime")
	}
	if s.dtype == dtype.Float {
		vals, valid := s.floatView()
		out, outValid := runAccumulation(vals, valid, reverse, extremumStep[float64](wantMin))
		return fromFloat64s(s.name, out, outValid), nil
	}
	vals, valid := s.ordinalView()
	out, outValid := runAccumulation(vals, valid, reverse, extremumStep[int64](wantMin))
	return fromOrdinal(s.name, s.dtype, out, outValid), nil
}

func extremumStep[T constraints.Ordered](wantMin bool) func(T, T) T {
	return func(acc, v T) T {
		if (wantMin && v < acc) || (!wantMin && v > acc) {
			return v
		}
		return acc
	}
}

// runAccumulation folds fn over the valid elements, writing the running
// value at each valid position. Null positions stay null without resetting
// the accumulator.
func runAccumulation[T constraints.Ordered](vals []T, valid []bool, reverse bool, fn func(T, T) T) ([]T, []bool) {
	n := len(vals)
	out := make([]T, n)
	outValid := make([]bool, n)
	var acc T
	started := false
	step := func(i int) {
		if !valid[i] {
			return
		}
		if !started {
			acc = vals[i]
			started = true
		} else {
			acc = fn(acc, vals[i])
		}
		out[i] = acc
		outValid[i] = true
	}
	if reverse {
		for i := n - 1; i >= 0; i-- {
			step(i)
		}
	} else {
		for i := 0; i < n; i++ {
			step(i)
		}
	}
	return out, outValid
}

// PeakMode selects which local extrema Peaks marks.
type PeakMode int

const (
	PeakMax PeakMode = iota
	PeakMin
)

// Peaks returns a boolean mask marking strict local maxima (or minima)
// relative to the immediate neighbors. Boundary elements compare only
// against their single neighbor. A null element yields null; a null
// neighbor constrains nothing, like a boundary.
func Peaks(s *Series, mode PeakMode) (*Series, error) {
	if !s.dtype.IsOrdered() {
		return nil, errors.NewUnsupportedDtypeError("peaks", s.dtype, "integer, float, date, time, datetime")
	}

	var vals []float64
	var valid []bool
	if s.dtype.IsNumeric() {
		vals, valid = s.floatView()
	} else {
		ords, ok := s.ordinalView()
		vals = make([]float64, len(ords))
		for i, v := range ords {
			vals[i] = float64(v)
		}
		valid = ok
	}

	n := len(vals)
	out := make([]bool, n)
	outValid := make([]bool, n)
	beats := func(a, b float64) bool {
		if mode == PeakMax {
			return a > b
		}
		return a < b
	}
	for i := 0; i < n; i++ {
		if !valid[i] {
			continue
		}
		outValid[i] = true
		isPeak := true
		if i > 0 && valid[i-1] && !beats(vals[i], vals[i-1]) {
			isPeak = false
		}
		if i < n-1 && valid[i+1] && !beats(vals[i], vals[i+1]) {
			isPeak = false
		}
		out[i] = isPeak
	}
	return fromBools(s.name, out, outValid), nil
}
