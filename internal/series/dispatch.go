package series

import (
	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

// operands resolves the two sides of a binary operation. At least one side
// must be a series; a bare scalar is wrapped as a size-1 series of its own
// dtype so that downstream kernels only ever see series operands.
func operands(op string, left, right any) (*Series, *Series, error) {
	ls, lok := left.(*Series)
	rs, rok := right.(*Series)
	if !lok && !rok {
		return nil, nil, errors.NewInvalidOperandsError(op, "at least one operand must be a series")
	}
	var err error
	if !lok {
		ls, err = scalarSeries(op, left)
		if err != nil {
			return nil, nil, err
		}
	}
	if !rok {
		rs, err = scalarSeries(op, right)
		if err != nil {
			return nil, nil, err
		}
	}
	return ls, rs, nil
}

// scalarSeries wraps a bare scalar as a size-1 series.
func scalarSeries(op string, v any) (*Series, error) {
	if v == nil {
		return nil, errors.NewInvalidOperandsError(op, "bare nil scalar has no dtype")
	}
	dt, ok := ScalarDtype(v)
	if !ok {
		return nil, errors.NewInvalidOperandsError(op, "unsupported scalar operand")
	}
	return fromValues("", dt, []any{v})
}

// broadcast validates the sizes of two series operands and returns the
// result size together with per-side index mappers. Equal sizes map
// one-to-one; a size-1 side broadcasts against every position of the other;
// anything else is a size mismatch.
func broadcast(op string, left, right *Series) (int, func(int) int, func(int) int, error) {
	ln, rn := left.Len(), right.Len()
	ident := func(i int) int { return i }
	zero := func(int) int { return 0 }
	switch {
	case ln == rn:
		return ln, ident, ident, nil
	case ln == 1:
		return rn, zero, ident, nil
	case rn == 1:
		return ln, ident, zero, nil
	default:
		return 0, nil, nil, errors.NewSizeMismatchError(op, ln, rn)
	}
}

// numericOperands resolves and validates operands for an arithmetic
// operation: both sides must be integer or float.
func numericOperands(op string, left, right any) (*Series, *Series, error) {
	ls, rs, err := operands(op, left, right)
	if err != nil {
		return nil, nil, err
	}
	if !ls.dtype.IsNumeric() {
		return nil, nil, errors.NewUnsupportedDtypeError(op, ls.dtype, "integer, float")
	}
	if !rs.dtype.IsNumeric() {
		return nil, nil, errors.NewUnsupportedDtypeError(op, rs.dtype, "integer, float")
	}
	return ls, rs, nil
}

// resultName picks the metadata name carried onto an operation result: the
// left series name when present, else the right.
func resultName(left, right *Series) string {
	if left.name != "" {
		return left.name
	}
	return right.name
}

// equalityCompatible checks the dtype rule for equal/not_equal: same dtype,
// or both numeric.  Scalars have already been wrapped as size-1 series of a
// matching dtype, so the scalar clauses of the rule collapse into these two.
func equalityCompatible(op string, left, right *Series) error {
	if left.dtype == right.dtype {
		return nil
	}
	if left.dtype.IsNumeric() && right.dtype.IsNumeric() {
		return nil
	}
	return errors.NewTypeMismatchError(op, left.dtype, right.dtype)
}

// orderingCompatible checks the dtype rule for the ordering comparisons:
// both numeric, or both temporal of the same dtype.
func orderingCompatible(op string, left, right *Series) error {
	if left.dtype.IsNumeric() && right.dtype.IsNumeric() {
		return nil
	}
	if left.dtype.IsTemporal() && left.dtype == right.dtype {
		return nil
	}
	return errors.NewTypeMismatchError(op, left.dtype, right.dtype)
}

// promoteDtype resolves the result dtype for a pair of numeric operands.
func promoteDtype(left, right *Series) dtype.Dtype {
	dt, _ := dtype.Promote(left.dtype, right.dtype)
	return dt
}
