package series

import (
	"math"

	"github.com/jeregrine/explorer/internal/config"
	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
	"github.com/jeregrine/explorer/internal/parallel"
)

// Add computes element-wise addition over two numeric operands with scalar
// broadcasting. Mixing integer and float promotes the result to float.
func Add(left, right any) (*Series, error) {
	return intOrFloatOp("add", left, right,
		func(a, b int64) (int64, bool) { return a + b, true },
		func(a, b float64) float64 { return a + b })
}

// Subtract computes element-wise subtraction.
func Subtract(left, right any) (*Series, error) {
	return intOrFloatOp("subtract", left, right,
		func(a, b int64) (int64, bool) { return a - b, true },
		func(a, b float64) float64 { return a - b })
}

// Multiply computes element-wise multiplication.
func Multiply(left, right any) (*Series, error) {
	return intOrFloatOp("multiply", left, right,
		func(a, b int64) (int64, bool) { return a * b, true },
		func(a, b float64) float64 { return a * b })
}

// Divide computes element-wise division. The result is always float.
func Divide(left, right any) (*Series, error) {
	return floatOp("divide", left, right, func(a, b float64) float64 { return a / b })
}

// Pow raises left to the power of right element-wise. A float exponent (or a
// float base) yields float; two integer operands stay integer.
func Pow(left, right any) (*Series, error) {
	return intOrFloatOp("pow", left, right,
		func(a, b int64) (int64, bool) { return int64(math.Pow(float64(a), float64(b))), true },
		func(a, b float64) float64 { return math.Pow(a, b) })
}

// Log computes the natural logarithm element-wise. The result is always
// float.
func Log(operand any) (*Series, error) {
	return floatUnary("log", operand, math.Log)
}

// LogBase computes the logarithm of left in the base given by right,
// element-wise. The result is always float.
func LogBase(left, right any) (*Series, error) {
	return floatOp("log", left, right, func(a, b float64) float64 {
		return math.Log(a) / math.Log(b)
	})
}

// Quotient computes element-wise integer division. Both operands must be
// integer; positions where the right-hand element is zero yield nil rather
// than failing.
func Quotient(left, right any) (*Series, error) {
	return integerOp("quotient", left, right, func(a, b int64) (int64, bool) {
		if b == 0 {
			return 0, false
		}
		return a / b, true
	})
}

// Remainder computes the element-wise remainder of integer division, with
// the same zero-divisor rule as Quotient.
func Remainder(left, right any) (*Series, error) {
	return integerOp("remainder", left, right, func(a, b int64) (int64, bool) {
		if b == 0 {
			return 0, false
		}
		return a % b, true
	})
}

// intOrFloatOp dispatches a numeric binary operation to the integer kernel
// when both sides are integer, and to the float kernel otherwise.
func intOrFloatOp(op string, left, right any, intFn func(int64, int64) (int64, bool), floatFn func(float64, float64) float64) (*Series, error) {
	ls, rs, err := numericOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	if promoteDtype(ls, rs) == dtype.Integer {
		return integerKernel(op, ls, rs, intFn)
	}
	return floatKernel(op, ls, rs, floatFn)
}

// floatOp forces the float kernel regardless of operand dtypes.
func floatOp(op string, left, right any, fn func(float64, float64) float64) (*Series, error) {
	ls, rs, err := numericOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	return floatKernel(op, ls, rs, fn)
}

// integerOp requires both operands to be integer series.
func integerOp(op string, left, right any, fn func(int64, int64) (int64, bool)) (*Series, error) {
	ls, rs, err := operands(op, left, right)
	if err != nil {
		return nil, err
	}
	if ls.dtype != dtype.Integer {
		return nil, errors.NewUnsupportedDtypeError(op, ls.dtype, "integer")
	}
	if rs.dtype != dtype.Integer {
		return nil, errors.NewUnsupportedDtypeError(op, rs.dtype, "integer")
	}
	return integerKernel(op, ls, rs, fn)
}

func integerKernel(op string, ls, rs *Series, fn func(int64, int64) (int64, bool)) (*Series, error) {
	n, li, ri, err := broadcast(op, ls, rs)
	if err != nil {
		return nil, err
	}
	lv, lok := ls.ordinalView()
	rv, rok := rs.ordinalView()
	vals := make([]int64, n)
	valid := make([]bool, n)
	mapChunked(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			a, b := li(i), ri(i)
			if lok[a] && rok[b] {
				vals[i], valid[i] = fn(lv[a], rv[b])
			}
		}
	})
	return fromInt64s(resultName(ls, rs), vals, valid), nil
}

func floatKernel(op string, ls, rs *Series, fn func(float64, float64) float64) (*Series, error) {
	n, li, ri, err := broadcast(op, ls, rs)
	if err != nil {
		return nil, err
	}
	lv, lok := ls.floatView()
	rv, rok := rs.floatView()
	vals := make([]float64, n)
	valid := make([]bool, n)
	mapChunked(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			a, b := li(i), ri(i)
			if lok[a] && rok[b] {
				vals[i] = fn(lv[a], rv[b])
				valid[i] = true
			}
		}
	})
	return fromFloat64s(resultName(ls, rs), vals, valid), nil
}

// floatUnary applies a float-only unary function element-wise. A null input
// element stays null at the same position.
func floatUnary(op string, operand any, fn func(float64) float64) (*Series, error) {
	s, ok := operand.(*Series)
	if !ok {
		return nil, errors.NewInvalidOperandsError(op, "operand must be a series")
	}
	if !s.dtype.IsNumeric() {
		return nil, errors.NewUnsupportedDtypeError(op, s.dtype, "integer, float")
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

// mapChunked runs an element-range kernel, fanning out over the worker pool
// when the series is large enough to clear the configured threshold.
func mapChunked(n int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	cfg := config.GetGlobalConfig()
	if n < cfg.ParallelThreshold {
		fn(0, n)
		return
	}
	pool := parallel.NewWorkerPool(cfg.WorkerPoolSize)
	pool.MapChunks(n, cfg.ChunkSize, fn)
}
