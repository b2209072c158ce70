package series

import (
	"bytes"
)

// Equal computes an element-wise equality mask. Operands must share a dtype
// or both be numeric; scalars broadcast against the series side.
func Equal(left, right any) (*Series, error) {
	return equalityOp("equal", left, right, false)
}

// NotEqual computes the negated equality mask under the same dtype rules as
// Equal.
func NotEqual(left, right any) (*Series, error) {
	return equalityOp("not_equal", left, right, true)
}

// Greater computes an element-wise ordering mask. Operands must both be
// numeric, or temporal of the same dtype.
func Greater(left, right any) (*Series, error) {
	return orderingOp("greater", left, right, func(c int) bool { return c > 0 })
}

// GreaterEqual computes the non-strict ordering mask.
func GreaterEqual(left, right any) (*Series, error) {
	return orderingOp("greater_equal", left, right, func(c int) bool { return c >= 0 })
}

// Less computes the strict less-than mask.
func Less(left, right any) (*Series, error) {
	return orderingOp("less", left, right, func(c int) bool { return c < 0 })
}

// LessEqual computes the non-strict less-than mask.
func LessEqual(left, right any) (*Series, error) {
	return orderingOp("less_equal", left, right, func(c int) bool { return c <= 0 })
}

// In computes a membership mask: true where the element occurs in values.
// The candidate values follow the equality dtype rules against the series.
func In(s *Series, values *Series) (*Series, error) {
	if err := equalityCompatible("in", s, values); err != nil {
		return nil, err
	}
	member := make(map[any]struct{}, values.Len())
	numeric := s.dtype.IsNumeric()
	for i := 0; i < values.Len(); i++ {
		v := values.valueAt(i)
		if v == nil {
			continue
		}
		member[membershipKey(v, numeric)] = struct{}{}
	}
	n := s.Len()
	vals := make([]bool, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		v := s.valueAt(i)
		if v == nil {
			continue
		}
		_, vals[i] = member[membershipKey(v, numeric)]
		valid[i] = true
	}
	return fromBools(s.name, vals, valid), nil
}

// membershipKey normalizes a decoded value for map lookup; numeric values
// compare across the integer/float pair, and binary values hash by content.
func membershipKey(v any, numeric bool) any {
	if numeric {
		switch x := v.(type) {
		case int64:
			return float64(x)
		case float64:
			return x
		}
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func equalityOp(op string, left, right any, negate bool) (*Series, error) {
	ls, rs, err := operands(op, left, right)
	if err != nil {
		return nil, err
	}
	if err := equalityCompatible(op, ls, rs); err != nil {
		return nil, err
	}
	n, li, ri, err := broadcast(op, ls, rs)
	if err != nil {
		return nil, err
	}
	vals := make([]bool, n)
	valid := make([]bool, n)
	numeric := ls.dtype.IsNumeric()
	for i := 0; i < n; i++ {
		a := ls.valueAt(li(i))
		b := rs.valueAt(ri(i))
		if a == nil || b == nil {
			continue
		}
		eq := valuesEqual(a, b, numeric)
		vals[i] = eq != negate
		valid[i] = true
	}
	return fromBools(resultName(ls, rs), vals, valid), nil
}

func valuesEqual(a, b any, numeric bool) bool {
	if numeric {
		return toFloat(a) == toFloat(b)
	}
	if ab, ok := a.([]byte); ok {
		bb, _ := b.([]byte)
		return bytes.Equal(ab, bb)
	}
	return a == b
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}

func orderingOp(op string, left, right any, keep func(int) bool) (*Series, error) {
	ls, rs, err := operands(op, left, right)
	if err != nil {
		return nil, err
	}
	if err := orderingCompatible(op, ls, rs); err != nil {
		return nil, err
	}
	n, li, ri, err := broadcast(op, ls, rs)
	if err != nil {
		return nil, err
	}

	vals := make([]bool, n)
	valid := make([]bool, n)
	if ls.dtype.IsNumeric() {
		lv, lok := ls.floatView()
		rv, rok := rs.floatView()
		for i := 0; i < n; i++ {
			a, b := li(i), ri(i)
			if lok[a] && rok[b] {
				vals[i] = keep(compareFloat(lv[a], rv[b]))
				valid[i] = true
			}
		}
	} else {
		lv, lok := ls.ordinalView()
		rv, rok := rs.ordinalView()
		for i := 0; i < n; i++ {
			a, b := li(i), ri(i)
			if lok[a] && rok[b] {
				vals[i] = keep(compareInt(lv[a], rv[b]))
				valid[i] = true
			}
		}
	}
	return fromBools(resultName(ls, rs), vals, valid), nil
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
