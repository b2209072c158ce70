// Package expr provides the lazy expression mode of the series engine.
//
// A Node records an operation symbolically instead of computing it: the
// operation tag, the ordered operand list (child nodes, concrete series, or
// scalars), and the inferred result dtype. Nodes form a tree that an
// external query engine walks to produce concrete series; the engine itself
// never evaluates them.
package expr

import (
	"fmt"
	"strings"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
	"github.com/jeregrine/explorer/internal/series"
)

// Op tags a recorded operation.
type Op int

const (
	OpAdd Op = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpPow
	OpLog
	OpQuotient
	OpRemainder
	OpEqual
	OpNotEqual
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual
	OpIn
	OpAnd
	OpOr
	OpNot
	OpSelect
	OpConcat
	OpCoalesce
	OpCast
	OpCumulativeSum
	OpCumulativeMin
	OpCumulativeMax
	OpPeaks
	OpWindowSum
	OpWindowMean
	OpWindowMin
	OpWindowMax
	OpEwmMean
	OpSort
	OpArgSort
	OpDistinct
	OpReverse
	OpShift
	OpSample
	OpMask
	OpContains
	OpUpcase
	OpDowncase
	OpTrim
	OpTrimLeading
	OpTrimTrailing
	OpRound
	OpFloor
	OpCeil
	OpIsFinite
	OpIsInfinite
	OpIsNan
	OpSin
	OpCos
	OpTan
	OpAsin
	OpAcos
	OpAtan
	OpDayOfWeek
	OpToDate
	OpToTime
	OpFillMissing
)

var opNames = map[Op]string{
	OpAdd: "add", OpSubtract: "subtract", OpMultiply: "multiply",
	OpDivide: "divide", OpPow: "pow", OpLog: "log", OpQuotient: "quotient",
	OpRemainder: "remainder", OpEqual: "equal", OpNotEqual: "not_equal",
	OpGreater: "greater", OpGreaterEqual: "greater_equal", OpLess: "less",
	OpLessEqual: "less_equal", OpIn: "in", OpAnd: "and", OpOr: "or",
	OpNot: "not", OpSelect: "select", OpConcat: "concat",
	OpCoalesce: "coalesce", OpCast: "cast", OpCumulativeSum: "cumulative_sum",
	OpCumulativeMin: "cumulative_min", OpCumulativeMax: "cumulative_max",
	OpPeaks: "peaks", OpWindowSum: "window_sum", OpWindowMean: "window_mean",
	OpWindowMin: "window_min", OpWindowMax: "window_max", OpEwmMean: "ewm_mean",
	OpSort: "sort", OpArgSort: "argsort", OpDistinct: "distinct",
	OpReverse: "reverse", OpShift: "shift", OpSample: "sample", OpMask: "mask",
	OpContains: "contains", OpUpcase: "upcase", OpDowncase: "downcase",
	OpTrim: "trim", OpTrimLeading: "trim_leading", OpTrimTrailing: "trim_trailing",
	OpRound: "round", OpFloor: "floor", OpCeil: "ceil",
	OpIsFinite: "is_finite", OpIsInfinite: "is_infinite", OpIsNan: "is_nan",
	OpSin: "sin", OpCos: "cos", OpTan: "tan", OpAsin: "asin", OpAcos: "acos",
	OpAtan: "atan", OpDayOfWeek: "day_of_week", OpToDate: "to_date",
	OpToTime: "to_time", OpFillMissing: "fill_missing",
}

// String implements fmt.Stringer.
func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "unknown"
}

// Node is a recorded operation over column-like operands. Operands are
// child *Node values, concrete *series.Series values, or bare scalars, in
// call order.
type Node struct {
	op       Op
	operands []any
	dtype    dtype.Dtype
}

// Record creates a node for op over the operands, inferring the result
// dtype with the same compatibility rules the eager dispatcher applies.
// Incompatible operand dtypes surface at record time.
func Record(op Op, operands ...any) (*Node, error) {
	dt, err := infer(op, operands)
	if err != nil {
		return nil, err
	}
	return &Node{op: op, operands: operands, dtype: dt}, nil
}

// Lift wraps a concrete series as a leaf usable wherever a node is needed.
// The leaf records no operation; external evaluators treat it as a source.
func Lift(s *series.Series) *Node {
	return &Node{op: -1, operands: []any{s}, dtype: s.Dtype()}
}

// Op returns the operation tag.
func (n *Node) Op() Op {
	return n.op
}

// Operands returns the recorded operand list in call order.
func (n *Node) Operands() []any {
	return n.operands
}

// Dtype returns the inferred result dtype.
func (n *Node) Dtype() dtype.Dtype {
	return n.dtype
}

// IsLazy reports whether this column value is a recorded expression; a node
// always is.
func (n *Node) IsLazy() bool {
	return true
}

// IsLeaf reports whether the node wraps a concrete series instead of an
// operation.
func (n *Node) IsLeaf() bool {
	return n.op < 0
}

// String renders the expression tree.
func (n *Node) String() string {
	if n.IsLeaf() {
		s := n.operands[0].(*series.Series)
		if s.Name() != "" {
			return fmt.Sprintf("series(%s)", s.Name())
		}
		return "series"
	}
	parts := make([]string, len(n.operands))
	for i, operand := range n.operands {
		switch x := operand.(type) {
		case *Node:
			parts[i] = x.String()
		case *series.Series:
			parts[i] = Lift(x).String()
		default:
			parts[i] = fmt.Sprintf("lit(%v)", x)
		}
	}
	return fmt.Sprintf("%s(%s)", n.op, strings.Join(parts, ", "))
}

// OperandDtype resolves the dtype a column-like operand contributes: the
// inferred dtype of a node, the dtype of a series, or the scalar's family.
func OperandDtype(v any) (dtype.Dtype, bool) {
	switch x := v.(type) {
	case *Node:
		return x.dtype, true
	case *series.Series:
		return x.Dtype(), true
	default:
		return series.ScalarDtype(v)
	}
}

// IsColumnar reports whether v is a node or a series rather than a scalar.
func IsColumnar(v any) bool {
	switch v.(type) {
	case *Node, *series.Series:
		return true
	default:
		return false
	}
}

// infer applies the dispatcher's dtype rules at record time.
func infer(op Op, operands []any) (dtype.Dtype, error) {
	name := op.String()

	columnar := false
	for _, v := range operands {
		if IsColumnar(v) {
			columnar = true
			break
		}
	}
	if !columnar {
		return 0, errors.NewInvalidOperandsError(name, "at least one operand must be column-like")
	}

	first, rest, err := headDtypes(name, operands)
	if err != nil {
		return 0, err
	}

	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpPow:
		dt, err := promoteNumeric(name, first, rest)
		if err != nil {
			return 0, err
		}
		return dt, nil

	case OpDivide, OpLog, OpEwmMean, OpWindowMean:
		if _, err := promoteNumeric(name, first, rest); err != nil {
			return 0, err
		}
		return dtype.Float, nil

	case OpQuotient, OpRemainder:
		for _, dt := range append([]dtype.Dtype{first}, rest...) {
			if dt != dtype.Integer {
				return 0, errors.NewUnsupportedDtypeError(name, dt, "integer")
			}
		}
		return dtype.Integer, nil

	case OpEqual, OpNotEqual, OpIn:
		if len(rest) > 0 {
			if first != rest[0] && !(first.IsNumeric() && rest[0].IsNumeric()) {
				return 0, errors.NewTypeMismatchError(name, first, rest[0])
			}
		}
		return dtype.Boolean, nil

	case OpGreater, OpGreaterEqual, OpLess, OpLessEqual:
		if len(rest) > 0 {
			ok := (first.IsNumeric() && rest[0].IsNumeric()) ||
				(first.IsTemporal() && first == rest[0])
			if !ok {
				return 0, errors.NewTypeMismatchError(name, first, rest[0])
			}
		}
		return dtype.Boolean, nil

	case OpAnd, OpOr, OpNot:
		for _, dt := range append([]dtype.Dtype{first}, rest...) {
			if dt != dtype.Boolean {
				return 0, errors.NewTypeMismatchError(name, dt, dtype.Boolean)
			}
		}
		return dtype.Boolean, nil

	case OpSelect:
		// predicate, onTrue, onFalse
		if first != dtype.Boolean {
			return 0, errors.NewTypeMismatchError(name, first, dtype.Boolean)
		}
		if len(rest) < 2 {
			return 0, errors.NewInvalidOperandsError(name, "select records predicate, on-true, and on-false operands")
		}
		if rest[0] == rest[1] {
			return rest[0], nil
		}
		dt, ok := dtype.Promote(rest[0], rest[1])
		if !ok {
			return 0, errors.NewTypeMismatchError(name, rest[0], rest[1])
		}
		return dt, nil

	case OpConcat, OpCoalesce:
		dt := first
		for _, other := range rest {
			promoted, ok := dtype.Promote(dt, other)
			if !ok {
				return 0, errors.NewTypeMismatchError(name, dt, other)
			}
			dt = promoted
		}
		return dt, nil

	case OpCast:
		// operands: source, target dtype
		if len(operands) < 2 {
			return 0, errors.NewInvalidOperandsError(name, "cast records a source and a target dtype")
		}
		target, ok := operands[1].(dtype.Dtype)
		if !ok {
			return 0, errors.NewInvalidOperandsError(name, "cast target must be a dtype")
		}
		return target, nil

	case OpPeaks:
		if !first.IsOrdered() {
			return 0, errors.NewUnsupportedDtypeError(name, first, "integer, float, date, time, datetime")
		}
		return dtype.Boolean, nil

	case OpContains:
		if first != dtype.String {
			return 0, errors.NewUnsupportedDtypeError(name, first, "string")
		}
		return dtype.Boolean, nil

	case OpIsFinite, OpIsInfinite, OpIsNan:
		if first != dtype.Float {
			return 0, errors.NewUnsupportedDtypeError(name, first, "float")
		}
		return dtype.Boolean, nil

	case OpArgSort, OpDayOfWeek:
		return dtype.Integer, nil

	case OpToDate:
		return dtype.Date, nil

	case OpToTime:
		return dtype.Time, nil

	case OpRound, OpFloor, OpCeil, OpSin, OpCos, OpTan, OpAsin, OpAcos, OpAtan:
		if first != dtype.Float {
			return 0, errors.NewUnsupportedDtypeError(name, first, "float")
		}
		return dtype.Float, nil

	case OpUpcase, OpDowncase, OpTrim, OpTrimLeading, OpTrimTrailing:
		if first != dtype.String {
			return 0, errors.NewUnsupportedDtypeError(name, first, "string")
		}
		return dtype.String, nil

	case OpWindowSum, OpWindowMin, OpWindowMax, OpCumulativeSum:
		if !first.IsNumeric() {
			return 0, errors.NewUnsupportedDtypeError(name, first, "integer, float")
		}
		return first, nil

	default:
		// Shape-preserving operations: sort, distinct, reverse, shift,
		// sample, mask, fill, cumulative extrema.
		return first, nil
	}
}

// headDtypes resolves the dtype of every column-like or scalar operand,
// skipping option values that carry no dtype.
func headDtypes(name string, operands []any) (dtype.Dtype, []dtype.Dtype, error) {
	var dts []dtype.Dtype
	for _, v := range operands {
		if dt, ok := OperandDtype(v); ok {
			dts = append(dts, dt)
		}
	}
	if len(dts) == 0 {
		return 0, nil, errors.NewInvalidOperandsError(name, "no typed operands")
	}
	return dts[0], dts[1:], nil
}

func promoteNumeric(name string, first dtype.Dtype, rest []dtype.Dtype) (dtype.Dtype, error) {
	dt := first
	if !dt.IsNumeric() {
		return 0, errors.NewUnsupportedDtypeError(name, dt, "integer, float")
	}
	for _, other := range rest {
		if !other.IsNumeric() {
			return 0, errors.NewUnsupportedDtypeError(name, other, "integer, float")
		}
		promoted, _ := dtype.Promote(dt, other)
		dt = promoted
	}
	return dt, nil
}
