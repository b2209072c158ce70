package series

import (
	"math"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

// WindowOptions configures the sliding-window kernels.
type WindowOptions struct {
	// Weights multiplies each in-window element before reduction. When set,
	// its length must equal the window size and the result dtype becomes
	// float.
	Weights []float64
	// MinPeriods is the minimum count of non-null in-window values required
	// to produce a value; positions below it yield nil. Defaults to 1.
	MinPeriods int
	// Center centers the window on the current element instead of trailing
	// behind it.
	Center bool
}

func (o *WindowOptions) normalize(op string, windowSize int) error {
	if windowSize <= 0 {
		return errors.NewInvalidOperandsError(op, "window size must be positive")
	}
	if o.Weights != nil && len(o.Weights) != windowSize {
		return errors.NewInvalidOperandsError(op, "weights length must equal window size")
	}
	if o.MinPeriods <= 0 {
		o.MinPeriods = 1
	}
	return nil
}

// WindowSum computes a sliding-window sum over a numeric series.
func WindowSum(s *Series, windowSize int, opts WindowOptions) (*Series, error) {
	return windowReduce("window_sum", s, windowSize, opts, func(vals []float64) float64 {
		var total float64
		for _, v := range vals {
			total += v
		}
		return total
	})
}

// WindowMean computes a sliding-window mean. The result is always float.
func WindowMean(s *Series, windowSize int, opts WindowOptions) (*Series, error) {
	out, err := windowReduce("window_mean", s, windowSize, opts, func(vals []float64) float64 {
		var total float64
		for _, v := range vals {
			total += v
		}
		return total / float64(len(vals))
	})
	if err != nil {
		return nil, err
	}
	return forceFloat(out)
}

// WindowMin computes a sliding-window minimum.
func WindowMin(s *Series, windowSize int, opts WindowOptions) (*Series, error) {
	return windowReduce("window_min", s, windowSize, opts, func(vals []float64) float64 {
		best := vals[0]
		for _, v := range vals[1:] {
			if v < best {
				best = v
			}
		}
		return best
	})
}

// WindowMax computes a sliding-window maximum.
func WindowMax(s *Series, windowSize int, opts WindowOptions) (*Series, error) {
	return windowReduce("window_max", s, windowSize, opts, func(vals []float64) float64 {
		best := vals[0]
		for _, v := range vals[1:] {
			if v > best {
				best = v
			}
		}
		return best
	})
}

// windowReduce slides a window of windowSize trailing (or centered) elements
// across the series, reducing the non-null in-window values. The result
// keeps the integer dtype only for an unweighted integer input reduced to an
// integral value; otherwise it is float.
func windowReduce(op string, s *Series, windowSize int, opts WindowOptions, reduce func([]float64) float64) (*Series, error) {
	if !s.dtype.IsNumeric() {
		return nil, errors.NewUnsupportedDtypeError(op, s.dtype, "integer, float")
	}
	if err := opts.normalize(op, windowSize); err != nil {
		return nil, err
	}

	vals, valid := s.floatView()
	n := len(vals)
	out := make([]float64, n)
	outValid := make([]bool, n)

	offset := 0
	if opts.Center {
		offset = windowSize / 2
	}

	window := make([]float64, 0, windowSize)
	for i := 0; i < n; i++ {
		lo := i - windowSize + 1 + offset
		hi := i + offset
		window = window[:0]
		for j := lo; j <= hi; j++ {
			if j < 0 || j >= n || !valid[j] {
				continue
			}
			v := vals[j]
			if opts.Weights != nil {
				v *= opts.Weights[j-lo]
			}
			window = append(window, v)
		}
		if len(window) < opts.MinPeriods {
			continue
		}
		out[i] = reduce(window)
		outValid[i] = true
	}

	if s.dtype == dtype.Integer && opts.Weights == nil {
		ints := make([]int64, n)
		for i, v := range out {
			ints[i] = int64(v)
		}
		return fromInt64s(s.name, ints, outValid), nil
	}
	return fromFloat64s(s.name, out, outValid), nil
}

// forceFloat re-types an integer result series as float.
func forceFloat(s *Series) (*Series, error) {
	if s.dtype == dtype.Float {
		return s, nil
	}
	return Cast(s, dtype.Float)
}

// EwmOptions configures the exponentially weighted moving average.
type EwmOptions struct {
	// Alpha is the smoothing factor in (0, 1]. Defaults to 0.5.
	Alpha float64
	// Adjust divides by the decaying sum of weights seen so far instead of
	// using the raw recursive smoothing. Defaults to true in the public API.
	Adjust bool
	// MinPeriods is the minimum number of observations required before a
	// value is produced. Defaults to 1.
	MinPeriods int
	// IgnoreNils skips nulls in the recursion rather than letting them decay
	// the weights. Defaults to true in the public API.
	IgnoreNils bool
}

// EwmMean computes the exponentially weighted moving average of a numeric
// series. The result is always float; null positions stay null.
func EwmMean(s *Series, opts EwmOptions) (*Series, error) {
	if !s.dtype.IsNumeric() {
		return nil, errors.NewUnsupportedDtypeError("ewm_mean", s.dtype, "integer, float")
	}
	if opts.Alpha <= 0 || opts.Alpha > 1 || math.IsNaN(opts.Alpha) {
		return nil, errors.NewInvalidOperandsError("ewm_mean", "alpha must be within (0, 1]")
	}
	if opts.MinPeriods <= 0 {
		opts.MinPeriods = 1
	}

	vals, valid := s.floatView()
	n := len(vals)
	out := make([]float64, n)
	outValid := make([]bool, n)

	alpha := opts.Alpha
	decay := 1 - alpha

	if opts.Adjust {
		// Bias-corrected form: numerator and denominator decay together;
		// each new observation enters with weight 1.
		var num, den float64
		observations := 0
		for i := 0; i < n; i++ {
			if !valid[i] {
				if !opts.IgnoreNils {
					num *= decay
					den *= decay
				}
				continue
			}
			num = num*decay + vals[i]
			den = den*decay + 1
			observations++
			if observations >= opts.MinPeriods {
				out[i] = num / den
				outValid[i] = true
			}
		}
	} else {
		// Raw recursive smoothing.
		var acc float64
		observations := 0
		for i := 0; i < n; i++ {
			if !valid[i] {
				continue
			}
			if observations == 0 {
				acc = vals[i]
			} else {
				acc = decay*acc + alpha*vals[i]
			}
			observations++
			if observations >= opts.MinPeriods {
				out[i] = acc
				outValid[i] = true
			}
		}
	}

	return fromFloat64s(s.name, out, outValid), nil
}
