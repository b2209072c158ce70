// Package explorer provides typed, nullable, one-dimensional series backed
// by Apache Arrow storage. This package is the sole public API.
//
// A Series is an immutable column of values of a single dtype, any of which
// may be null. Operations come in two modes sharing one surface: eager calls
// on concrete series compute immediately, while calls involving a lazy
// expression record a node for later evaluation by an external engine. The
// Column interface is the sum of the two.
package explorer

import (
	"github.com/jeregrine/explorer/internal/config"
	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
	"github.com/jeregrine/explorer/internal/expr"
	"github.com/jeregrine/explorer/internal/series"
	"github.com/jeregrine/explorer/internal/version"
)

// BuildInfo describes the running build of the engine.
type BuildInfo = version.BuildInfo

// VersionInfo returns build and module information for the engine.
func VersionInfo() BuildInfo {
	return version.Info()
}

// Series is the public eager column type.
type Series = series.Series

// Expr is a recorded lazy operation tree.
type Expr = expr.Node

// Column is a column-like value: a concrete Series or a lazy Expr.
type Column interface {
	IsLazy() bool
}

// Dtype identifies the logical element type of a column.
type Dtype = dtype.Dtype

const (
	Binary   = dtype.Binary
	Boolean  = dtype.Boolean
	Category = dtype.Category
	Date     = dtype.Date
	Time     = dtype.Time
	Datetime = dtype.Datetime
	Float    = dtype.Float
	Integer  = dtype.Integer
	String   = dtype.String
)

// TensorElem tags the element type of an external numeric buffer.
type TensorElem = dtype.TensorElem

const (
	TensorUint8   = dtype.TensorUint8
	TensorInt32   = dtype.TensorInt32
	TensorInt64   = dtype.TensorInt64
	TensorFloat64 = dtype.TensorFloat64
)

// Option configures series construction.
type Option = series.Option

var (
	// WithName sets the name of the constructed series.
	WithName = series.WithName
	// WithDtype pins the target dtype instead of inferring it.
	WithDtype = series.WithDtype
)

// ErrorKind classifies a failure; see the Kind constants.
type ErrorKind = errors.Kind

const (
	TypeMismatch     = errors.TypeMismatch
	UnsupportedDtype = errors.UnsupportedDtype
	SizeMismatch     = errors.SizeMismatch
	IndexOutOfBounds = errors.IndexOutOfBounds
	AlignmentError   = errors.AlignmentError
	InvalidOperands  = errors.InvalidOperands
)

// IsKind reports whether err carries the given error kind.
func IsKind(err error, k ErrorKind) bool {
	return errors.IsKind(err, k)
}

// Re-exported option and result structs.
type (
	// WindowOptions configures rolling-window aggregations.
	WindowOptions = series.WindowOptions
	// EwmOptions configures exponentially weighted means.
	EwmOptions = series.EwmOptions
	// SampleOptions configures random sampling.
	SampleOptions = series.SampleOptions
	// Frequencies pairs distinct values with their occurrence counts.
	Frequencies = series.Frequencies
	// Tensor is a decoded fixed-width buffer view of a series.
	Tensor = series.Tensor
	// Iterator walks a series element by element.
	Iterator = series.Iterator
	// GroupContext scopes aggregations to a subset of row indices.
	GroupContext = series.GroupContext
	// Config holds engine tuning knobs.
	Config = config.Config
)

// Direction selects sort order.
type Direction = series.Direction

const (
	Ascending  = series.Ascending
	Descending = series.Descending
)

// NilPlacement controls where nulls sort.
type NilPlacement = series.NilPlacement

const (
	NilsDefault = series.NilsDefault
	NilsFirst   = series.NilsFirst
	NilsLast    = series.NilsLast
)

// FillStrategy names a computed fill for null positions.
type FillStrategy = series.FillStrategy

const (
	FillForward     = series.FillForward
	FillBackward    = series.FillBackward
	FillMin         = series.FillMin
	FillMax         = series.FillMax
	FillMean        = series.FillMean
	FillNan         = series.FillNan
	FillInfinity    = series.FillInfinity
	FillNegInfinity = series.FillNegInfinity
)

// PeakMode selects which local extrema Peaks marks.
type PeakMode = series.PeakMode

const (
	PeakMax = series.PeakMax
	PeakMin = series.PeakMin
)

// SetConfig validates and installs the global engine configuration.
func SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// GetConfig returns the current global engine configuration.
func GetConfig() Config {
	return config.GetGlobalConfig()
}

// SetGroupContext scopes subsequent Count calls to a row subset.
func SetGroupContext(gc GroupContext) {
	series.SetGroupContext(gc)
}

// ClearGroupContext removes any installed group context.
func ClearGroupContext() {
	series.ClearGroupContext()
}

// FromList builds a series from decoded values, inferring the dtype unless
// WithDtype pins it. A nil element is a null.
func FromList(values []any, opts ...Option) (*Series, error) {
	return series.FromList(values, opts...)
}

// FromBinary reinterprets a native-endian fixed-width byte buffer as a
// series of the given dtype.
func FromBinary(data []byte, dt Dtype, opts ...Option) (*Series, error) {
	return series.FromBinary(data, dt, opts...)
}

// FromTensor builds a series from an external numeric buffer tagged with its
// element type.
func FromTensor(data []byte, elem TensorElem, opts ...Option) (*Series, error) {
	return series.FromTensor(data, elem, opts...)
}

// ToBinary returns the series payload as a native-endian fixed-width buffer.
func ToBinary(s *Series) ([]byte, error) {
	return series.ToBinary(s)
}

// ToIovec returns the binary payload as a chunk list.
func ToIovec(s *Series) ([][]byte, error) {
	return series.ToIovec(s)
}

// ToTensor exposes the series as a fixed-width buffer view.
func ToTensor(s *Series) (*Tensor, error) {
	return series.ToTensor(s)
}

// Lazy wraps a concrete series as an expression leaf; every operation over
// the result records instead of computing.
func Lazy(s *Series) *Expr {
	return expr.Lift(s)
}

// lazyOperand reports whether v participates in lazy mode.
func lazyOperand(v any) bool {
	c, ok := v.(Column)
	return ok && c.IsLazy()
}

func anyLazy(operands ...any) bool {
	for _, v := range operands {
		if lazyOperand(v) {
			return true
		}
	}
	return false
}

// concrete unwraps an eager column.
func concrete(op string, c Column) (*Series, error) {
	s, ok := c.(*Series)
	if !ok {
		return nil, errors.NewInvalidOperandsError(op, "operand is not a materialized series")
	}
	return s, nil
}

// binaryOp dispatches a two-operand operation to the recorder or the eager
// kernel.
func binaryOp(op expr.Op, eager func(left, right any) (*Series, error), left, right any) (Column, error) {
	if anyLazy(left, right) {
		return expr.Record(op, left, right)
	}
	return eager(left, right)
}

func unaryOp(op expr.Op, eager func(*Series) (*Series, error), c Column) (Column, error) {
	if c.IsLazy() {
		return expr.Record(op, c)
	}
	s, err := concrete(op.String(), c)
	if err != nil {
		return nil, err
	}
	return eager(s)
}

// Add sums two column-like operands elementwise. A size-1 operand or bare
// scalar broadcasts against the other; at least one operand must be
// column-like.
func Add(left, right any) (Column, error) {
	return binaryOp(expr.OpAdd, series.Add, left, right)
}

// Subtract computes left minus right elementwise with broadcasting.
func Subtract(left, right any) (Column, error) {
	return binaryOp(expr.OpSubtract, series.Subtract, left, right)
}

// Multiply computes the elementwise product with broadcasting.
func Multiply(left, right any) (Column, error) {
	return binaryOp(expr.OpMultiply, series.Multiply, left, right)
}

// Divide computes the elementwise true division, always as float.
func Divide(left, right any) (Column, error) {
	return binaryOp(expr.OpDivide, series.Divide, left, right)
}

// Pow raises left to the power of right; two integer operands stay integer.
func Pow(left, right any) (Column, error) {
	return binaryOp(expr.OpPow, series.Pow, left, right)
}

// Quotient computes elementwise integer division; division by zero yields
// null.
func Quotient(left, right any) (Column, error) {
	return binaryOp(expr.OpQuotient, series.Quotient, left, right)
}

// Remainder computes the elementwise integer remainder; a zero divisor
// yields null.
func Remainder(left, right any) (Column, error) {
	return binaryOp(expr.OpRemainder, series.Remainder, left, right)
}

// Log computes the natural logarithm elementwise.
func Log(operand any) (Column, error) {
	if anyLazy(operand) {
		return expr.Record(expr.OpLog, operand)
	}
	return series.Log(operand)
}

// LogBase computes the logarithm of left in the base given by right.
func LogBase(left, right any) (Column, error) {
	return binaryOp(expr.OpLog, series.LogBase, left, right)
}

// Equal compares elementwise for equality; nulls compare to null.
func Equal(left, right any) (Column, error) {
	return binaryOp(expr.OpEqual, series.Equal, left, right)
}

// NotEqual compares elementwise for inequality.
func NotEqual(left, right any) (Column, error) {
	return binaryOp(expr.OpNotEqual, series.NotEqual, left, right)
}

// Greater compares elementwise with strict ordering.
func Greater(left, right any) (Column, error) {
	return binaryOp(expr.OpGreater, series.Greater, left, right)
}

// GreaterEqual compares elementwise with non-strict ordering.
func GreaterEqual(left, right any) (Column, error) {
	return binaryOp(expr.OpGreaterEqual, series.GreaterEqual, left, right)
}

// Less compares elementwise with strict ordering.
func Less(left, right any) (Column, error) {
	return binaryOp(expr.OpLess, series.Less, left, right)
}

// LessEqual compares elementwise with non-strict ordering.
func LessEqual(left, right any) (Column, error) {
	return binaryOp(expr.OpLessEqual, series.LessEqual, left, right)
}

// In tests membership of each element of c in values.
func In(c Column, values *Series) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpIn, c, values)
	}
	s, err := concrete("in", c)
	if err != nil {
		return nil, err
	}
	return series.In(s, values)
}

// And computes the elementwise boolean conjunction.
func And(left, right any) (Column, error) {
	return binaryOp(expr.OpAnd, series.And, left, right)
}

// Or computes the elementwise boolean disjunction.
func Or(left, right any) (Column, error) {
	return binaryOp(expr.OpOr, series.Or, left, right)
}

// Not negates a boolean column elementwise.
func Not(operand any) (Column, error) {
	if anyLazy(operand) {
		return expr.Record(expr.OpNot, operand)
	}
	return series.Not(operand)
}

// Select picks from onTrue or onFalse per element of the boolean predicate;
// a null predicate element yields null.
func Select(predicate any, onTrue, onFalse any) (Column, error) {
	if anyLazy(predicate, onTrue, onFalse) {
		return expr.Record(expr.OpSelect, predicate, onTrue, onFalse)
	}
	return series.Select(predicate, onTrue, onFalse)
}

// Coalesce fills nulls in left with the matching elements of right.
func Coalesce(left, right any) (Column, error) {
	return binaryOp(expr.OpCoalesce, series.Coalesce, left, right)
}

// Concat appends the member series end to end, promoting integer and float.
func Concat(members []*Series) (*Series, error) {
	return series.Concat(members)
}

// Cast converts a column to the target dtype through the supported
// conversion set.
func Cast(c Column, target Dtype) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpCast, c, target)
	}
	s, err := concrete("cast", c)
	if err != nil {
		return nil, err
	}
	return series.Cast(s, target)
}

// Categories returns the dictionary of a category series in first-seen
// order.
func Categories(s *Series) (*Series, error) {
	return series.Categories(s)
}

// Categorise maps integer indices through a reference dictionary, given as a
// category series, a string series, or a string slice.
func Categorise(indices *Series, reference any) (*Series, error) {
	return series.Categorise(indices, reference)
}

// Sum totals a numeric or boolean series, skipping nulls; an all-null
// series sums to nil.
func Sum(s *Series) (any, error) { return series.Sum(s) }

// Min returns the smallest non-null element of an ordered series.
func Min(s *Series) (any, error) { return series.Min(s) }

// Max returns the largest non-null element of an ordered series.
func Max(s *Series) (any, error) { return series.Max(s) }

// Mean averages the non-null elements of a numeric series.
func Mean(s *Series) (any, error) { return series.Mean(s) }

// Median returns the 0.5 quantile of a numeric series.
func Median(s *Series) (any, error) { return series.Median(s) }

// Variance computes the sample variance of a numeric series.
func Variance(s *Series) (any, error) { return series.Variance(s) }

// StandardDeviation computes the sample standard deviation.
func StandardDeviation(s *Series) (any, error) { return series.StandardDeviation(s) }

// Quantile returns the q-th quantile with linear interpolation, q in [0, 1].
func Quantile(s *Series, q float64) (any, error) { return series.Quantile(s, q) }

// NDistinct counts distinct values; null counts as one distinct value.
func NDistinct(s *Series) int { return series.NDistinct(s) }

// CountFrequencies tallies distinct values by descending count.
func CountFrequencies(s *Series) (*Frequencies, error) { return series.CountFrequencies(s) }

// Count returns the number of non-null elements, scoped by any installed
// group context.
func Count(s *Series) int { return series.Count(s) }

// CumulativeSum computes the running sum; nulls stay null without resetting
// the accumulator.
func CumulativeSum(c Column, reverse bool) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpCumulativeSum, c, reverse)
	}
	s, err := concrete("cumulative_sum", c)
	if err != nil {
		return nil, err
	}
	return series.CumulativeSum(s, reverse)
}

// CumulativeMin computes the running minimum.
func CumulativeMin(c Column, reverse bool) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpCumulativeMin, c, reverse)
	}
	s, err := concrete("cumulative_min", c)
	if err != nil {
		return nil, err
	}
	return series.CumulativeMin(s, reverse)
}

// CumulativeMax computes the running maximum.
func CumulativeMax(c Column, reverse bool) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpCumulativeMax, c, reverse)
	}
	s, err := concrete("cumulative_max", c)
	if err != nil {
		return nil, err
	}
	return series.CumulativeMax(s, reverse)
}

// Peaks marks strict local extrema with booleans; null elements yield null.
func Peaks(c Column, mode PeakMode) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpPeaks, c, mode)
	}
	s, err := concrete("peaks", c)
	if err != nil {
		return nil, err
	}
	return series.Peaks(s, mode)
}

// WindowSum computes a rolling sum over trailing windows of windowSize.
func WindowSum(c Column, windowSize int, opts WindowOptions) (Column, error) {
	return windowOp(expr.OpWindowSum, series.WindowSum, c, windowSize, opts)
}

// WindowMean computes a rolling mean; integer input widens to float.
func WindowMean(c Column, windowSize int, opts WindowOptions) (Column, error) {
	return windowOp(expr.OpWindowMean, series.WindowMean, c, windowSize, opts)
}

// WindowMin computes a rolling minimum.
func WindowMin(c Column, windowSize int, opts WindowOptions) (Column, error) {
	return windowOp(expr.OpWindowMin, series.WindowMin, c, windowSize, opts)
}

// WindowMax computes a rolling maximum.
func WindowMax(c Column, windowSize int, opts WindowOptions) (Column, error) {
	return windowOp(expr.OpWindowMax, series.WindowMax, c, windowSize, opts)
}

func windowOp(op expr.Op, eager func(*Series, int, WindowOptions) (*Series, error), c Column, windowSize int, opts WindowOptions) (Column, error) {
	if c.IsLazy() {
		return expr.Record(op, c, windowSize, opts)
	}
	s, err := concrete(op.String(), c)
	if err != nil {
		return nil, err
	}
	return eager(s, windowSize, opts)
}

// EwmMean computes an exponentially weighted mean with smoothing factor
// opts.Alpha.
func EwmMean(c Column, opts EwmOptions) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpEwmMean, c, opts)
	}
	s, err := concrete("ewm_mean", c)
	if err != nil {
		return nil, err
	}
	return series.EwmMean(s, opts)
}

// Sort reorders the elements; null placement follows the placement rule.
func Sort(c Column, dir Direction, nils NilPlacement) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpSort, c, dir, nils)
	}
	s, err := concrete("sort", c)
	if err != nil {
		return nil, err
	}
	return series.Sort(s, dir, nils)
}

// ArgSort returns the integer permutation that sorts the series.
func ArgSort(c Column, dir Direction, nils NilPlacement) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpArgSort, c, dir, nils)
	}
	s, err := concrete("argsort", c)
	if err != nil {
		return nil, err
	}
	return series.ArgSort(s, dir, nils)
}

// Distinct keeps the first occurrence of each value, a single null included.
func Distinct(c Column) (Column, error) {
	return unaryOp(expr.OpDistinct, series.Distinct, c)
}

// UnorderedDistinct returns the distinct values without a stable order.
func UnorderedDistinct(s *Series) (*Series, error) {
	return series.UnorderedDistinct(s)
}

// Reverse flips element order.
func Reverse(c Column) (Column, error) {
	return unaryOp(expr.OpReverse, series.Reverse, c)
}

// Shift moves elements by offset, filling vacated positions with nulls.
func Shift(c Column, offset int) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpShift, c, offset)
	}
	s, err := concrete("shift", c)
	if err != nil {
		return nil, err
	}
	return series.Shift(s, offset)
}

// TakeIndices gathers the elements at the given positions.
func TakeIndices(s *Series, indices []int) (*Series, error) {
	return series.TakeIndices(s, indices)
}

// MaskFilter keeps the elements where the boolean mask is true.
func MaskFilter(c Column, mask any) (Column, error) {
	if anyLazy(c, mask) {
		return expr.Record(expr.OpMask, c, mask)
	}
	s, err := concrete("mask", c)
	if err != nil {
		return nil, err
	}
	m, ok := mask.(*Series)
	if !ok {
		return nil, errors.NewInvalidOperandsError("mask", "mask must be a boolean series")
	}
	return series.Mask(s, m)
}

// Remove drops the element at index, negative indices counting from the end.
func Remove(s *Series, index int) (*Series, error) {
	return series.Remove(s, index)
}

// SampleN draws n elements at random per the sampling options.
func SampleN(c Column, n int, opts SampleOptions) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpSample, c, n, opts)
	}
	s, err := concrete("sample", c)
	if err != nil {
		return nil, err
	}
	return series.SampleN(s, n, opts)
}

// SampleFraction draws a truncated fraction of the elements at random.
func SampleFraction(c Column, fraction float64, opts SampleOptions) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpSample, c, fraction, opts)
	}
	s, err := concrete("sample", c)
	if err != nil {
		return nil, err
	}
	return series.SampleFraction(s, fraction, opts)
}

// Contains tests each string element for a literal substring.
func Contains(c Column, substr string) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpContains, c, substr)
	}
	s, err := concrete("contains", c)
	if err != nil {
		return nil, err
	}
	return series.Contains(s, substr)
}

// ContainsPattern tests each string element against a regular expression.
func ContainsPattern(c Column, pattern string) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpContains, c, pattern)
	}
	s, err := concrete("contains", c)
	if err != nil {
		return nil, err
	}
	return series.ContainsPattern(s, pattern)
}

// Upcase uppercases each string element.
func Upcase(c Column) (Column, error) {
	return unaryOp(expr.OpUpcase, series.Upcase, c)
}

// Downcase lowercases each string element.
func Downcase(c Column) (Column, error) {
	return unaryOp(expr.OpDowncase, series.Downcase, c)
}

// Trim strips leading and trailing whitespace from each string element.
func Trim(c Column) (Column, error) {
	return unaryOp(expr.OpTrim, series.Trim, c)
}

// TrimLeading strips leading whitespace from each string element.
func TrimLeading(c Column) (Column, error) {
	return unaryOp(expr.OpTrimLeading, series.TrimLeading, c)
}

// TrimTrailing strips trailing whitespace from each string element.
func TrimTrailing(c Column) (Column, error) {
	return unaryOp(expr.OpTrimTrailing, series.TrimTrailing, c)
}

// Round rounds each float element to the given number of decimals.
func Round(c Column, decimals int) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpRound, c, decimals)
	}
	s, err := concrete("round", c)
	if err != nil {
		return nil, err
	}
	return series.Round(s, decimals)
}

// Floor rounds each float element down.
func Floor(c Column) (Column, error) {
	return unaryOp(expr.OpFloor, series.Floor, c)
}

// Ceil rounds each float element up.
func Ceil(c Column) (Column, error) {
	return unaryOp(expr.OpCeil, series.Ceil, c)
}

// IsFinite marks finite float elements.
func IsFinite(c Column) (Column, error) {
	return unaryOp(expr.OpIsFinite, series.IsFinite, c)
}

// IsInfinite marks infinite float elements.
func IsInfinite(c Column) (Column, error) {
	return unaryOp(expr.OpIsInfinite, series.IsInfinite, c)
}

// IsNan marks NaN float elements.
func IsNan(c Column) (Column, error) {
	return unaryOp(expr.OpIsNan, series.IsNan, c)
}

// Sin computes the sine of each float element.
func Sin(c Column) (Column, error) { return unaryOp(expr.OpSin, series.Sin, c) }

// Cos computes the cosine of each float element.
func Cos(c Column) (Column, error) { return unaryOp(expr.OpCos, series.Cos, c) }

// Tan computes the tangent of each float element.
func Tan(c Column) (Column, error) { return unaryOp(expr.OpTan, series.Tan, c) }

// Asin computes the arcsine of each float element.
func Asin(c Column) (Column, error) { return unaryOp(expr.OpAsin, series.Asin, c) }

// Acos computes the arccosine of each float element.
func Acos(c Column) (Column, error) { return unaryOp(expr.OpAcos, series.Acos, c) }

// Atan computes the arctangent of each float element.
func Atan(c Column) (Column, error) { return unaryOp(expr.OpAtan, series.Atan, c) }

// DayOfWeek returns the ISO weekday of each date or datetime element,
// Monday being 1.
func DayOfWeek(c Column) (Column, error) {
	return unaryOp(expr.OpDayOfWeek, series.DayOfWeek, c)
}

// ToDate truncates each datetime element to its calendar date.
func ToDate(c Column) (Column, error) {
	return unaryOp(expr.OpToDate, series.ToDate, c)
}

// ToTime truncates each datetime element to its time of day.
func ToTime(c Column) (Column, error) {
	return unaryOp(expr.OpToTime, series.ToTime, c)
}

// FillMissing substitutes a strategy-derived value at null positions.
func FillMissing(c Column, strategy FillStrategy) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpFillMissing, c, strategy)
	}
	s, err := concrete("fill_missing", c)
	if err != nil {
		return nil, err
	}
	return series.FillMissing(s, strategy)
}

// FillMissingWith substitutes a scalar at null positions; the scalar must
// belong to the series dtype family.
func FillMissingWith(c Column, value any) (Column, error) {
	if c.IsLazy() {
		return expr.Record(expr.OpFillMissing, c, value)
	}
	s, err := concrete("fill_missing", c)
	if err != nil {
		return nil, err
	}
	return series.FillMissingWith(s, value)
}

// Transform maps an arbitrary function over the decoded elements and
// re-infers the result dtype. The series materializes fully.
func Transform(s *Series, fn func(any) any) (*Series, error) {
	return series.Transform(s, fn)
}
