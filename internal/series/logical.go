package series

import (
	"fmt"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

// And computes the element-wise conjunction of two boolean operands.
func And(left, right any) (*Series, error) {
	return booleanOp("and", left, right, func(a, b bool) bool { return a && b })
}

// Or computes the element-wise disjunction of two boolean operands.
func Or(left, right any) (*Series, error) {
	return booleanOp("or", left, right, func(a, b bool) bool { return a || b })
}

// Not negates a boolean series element-wise, nulls staying null.
func Not(operand any) (*Series, error) {
	s, ok := operand.(*Series)
	if !ok {
		return nil, errors.NewInvalidOperandsError("not", "operand must be a series")
	}
	if s.dtype != dtype.Boolean {
		return nil, errors.NewTypeMismatchError("not", s.dtype, dtype.Boolean)
	}
	vals, valid := s.boolView()
	out := make([]bool, len(vals))
	for i, v := range vals {
		out[i] = !v
	}
	return fromBools(s.name, out, valid), nil
}

func booleanOp(op string, left, right any, fn func(bool, bool) bool) (*Series, error) {
	ls, rs, err := operands(op, left, right)
	if err != nil {
		return nil, err
	}
	if ls.dtype != dtype.Boolean || rs.dtype != dtype.Boolean {
		return nil, errors.NewTypeMismatchError(op, ls.dtype, rs.dtype)
	}
	n, li, ri, err := broadcast(op, ls, rs)
	if err != nil {
		return nil, err
	}
	lv, lok := ls.boolView()
	rv, rok := rs.boolView()
	vals := make([]bool, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		a, b := li(i), ri(i)
		if lok[a] && rok[b] {
			vals[i] = fn(lv[a], rv[b])
			valid[i] = true
		}
	}
	return fromBools(resultName(ls, rs), vals, valid), nil
}

// Select picks element-wise between onTrue and onFalse according to a
// boolean predicate. The branches must share a dtype or both be numeric
// (promoting the result to float). A null predicate yields null.
func Select(predicate any, onTrue, onFalse any) (*Series, error) {
	pred, ok := predicate.(*Series)
	if !ok {
		return nil, errors.NewInvalidOperandsError("select", "predicate must be a series")
	}
	if pred.dtype != dtype.Boolean {
		return nil, errors.NewTypeMismatchError("select", pred.dtype, dtype.Boolean)
	}

	ts, fs, err := operands("select", onTrue, onFalse)
	if err != nil {
		return nil, err
	}
	outDtype := ts.dtype
	if ts.dtype != fs.dtype {
		promoted, ok := dtype.Promote(ts.dtype, fs.dtype)
		if !ok {
			return nil, errors.NewTypeMismatchError("select", ts.dtype, fs.dtype)
		}
		outDtype = promoted
	}

	n := pred.Len()
	pick := func(branch *Series, i int) (any, error) {
		switch branch.Len() {
		case n:
			return branch.valueAt(i), nil
		case 1:
			return branch.valueAt(0), nil
		default:
			return nil, errors.NewSizeMismatchError("select", n, branch.Len())
		}
	}

	pv, pok := pred.boolView()
	out := make([]any, n)
	for i := 0; i < n; i++ {
		if !pok[i] {
			continue
		}
		branch := fs
		if pv[i] {
			branch = ts
		}
		v, err := pick(branch, i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return fromValues(pred.name, outDtype, out)
}

// Coalesce substitutes elements of right at positions where left is null.
// The dtypes must match, or be the integer/float pair, in which case the
// result is float.
func Coalesce(left, right any) (*Series, error) {
	ls, rs, err := operands("coalesce", left, right)
	if err != nil {
		return nil, err
	}
	outDtype := ls.dtype
	if ls.dtype != rs.dtype {
		promoted, ok := dtype.Promote(ls.dtype, rs.dtype)
		if !ok {
			return nil, errors.NewTypeMismatchError("coalesce", ls.dtype, rs.dtype)
		}
		outDtype = promoted
	}
	n, li, ri, err := broadcast("coalesce", ls, rs)
	if err != nil {
		return nil, err
	}
	out := make([]any, n)
	for i := 0; i < n; i++ {
		v := ls.valueAt(li(i))
		if v == nil {
			v = rs.valueAt(ri(i))
		}
		out[i] = v
	}
	return fromValues(resultName(ls, rs), outDtype, out)
}

// Concat appends the members end to end. All dtypes must be equal, or all
// numeric, in which case every member is promoted to float. The error for an
// incompatible member names the offending dtype set.
func Concat(members []*Series) (*Series, error) {
	if len(members) == 0 {
		return nil, errors.NewInvalidOperandsError("concat", "at least one series required")
	}
	outDtype := members[0].dtype
	for _, m := range members[1:] {
		promoted, ok := dtype.Promote(outDtype, m.dtype)
		if !ok {
			return nil, &errors.SeriesError{
				Kind:    errors.TypeMismatch,
				Op:      "concat",
				Message: fmt.Sprintf("incompatible dtype set %v", dtypeSet(members)),
			}
		}
		outDtype = promoted
	}

	total := 0
	for _, m := range members {
		total += m.Len()
	}
	out := make([]any, 0, total)
	for _, m := range members {
		out = append(out, m.ToList()...)
	}
	return fromValues(members[0].name, outDtype, out)
}

func dtypeSet(members []*Series) []dtype.Dtype {
	seen := make(map[dtype.Dtype]bool)
	var set []dtype.Dtype
	for _, m := range members {
		if !seen[m.dtype] {
			seen[m.dtype] = true
			set = append(set, m.dtype)
		}
	}
	return set
}
