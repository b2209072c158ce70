package series

import (
	"math"
	"sort"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

// GroupContext scopes Count to the active group of an external grouping
// collaborator. The engine consults the ambient context but does not own it.
type GroupContext interface {
	// Indices returns the element indices belonging to the active group.
	Indices() []int
}

var (
	groupMu  sync.RWMutex
	groupCtx GroupContext
)

// SetGroupContext installs the ambient grouping scope consulted by Count.
func SetGroupContext(gc GroupContext) {
	groupMu.Lock()
	defer groupMu.Unlock()
	groupCtx = gc
}

// ClearGroupContext removes the ambient grouping scope.
func ClearGroupContext() {
	groupMu.Lock()
	defer groupMu.Unlock()
	groupCtx = nil
}

func currentGroup() GroupContext {
	groupMu.RLock()
	defer groupMu.RUnlock()
	return groupCtx
}

// Sum reduces an integer, float, or boolean series, skipping nulls. A
// boolean series sums as its count of true elements. A series with no valid
// elements yields nil.
func Sum(s *Series) (any, error) {
	switch s.dtype {
	case dtype.Integer:
		vals, valid := s.ordinalView()
		var total int64
		seen := false
		for i, v := range vals {
			if valid[i] {
				total += v
				seen = true
			}
		}
		if !seen {
			return nil, nil
		}
		return total, nil
	case dtype.Float:
		vals, valid := s.floatView()
		var total float64
		seen := false
		for i, v := range vals {
			if valid[i] {
				total += v
				seen = true
			}
		}
		if !seen {
			return nil, nil
		}
		return total, nil
	case dtype.Boolean:
		vals, valid := s.boolView()
		var total int64
		seen := false
		for i, v := range vals {
			if valid[i] {
				seen = true
				if v {
					total++
				}
			}
		}
		if !seen {
			return nil, nil
		}
		return total, nil
	default:
		return nil, errors.NewUnsupportedDtypeError("sum", s.dtype, "integer, float, boolean")
	}
}

// Min returns the smallest non-null element under the dtype's natural order,
// or nil when every element is null.
func Min(s *Series) (any, error) {
	return extremum("min", s, true)
}

// Max returns the largest non-null element, or nil when every element is
// null.
func Max(s *Series) (any, error) {
	return extremum("max", s, false)
}

func extremum(op string, s *Series, wantMin bool) (any, error) {
	if !s.dtype.IsOrdered() {
		return nil, errors.NewUnsupportedDtypeError(op, s.dtype, "integer, float, date, time, datetime")
	}
	if s.dtype == dtype.Float {
		vals, valid := s.floatView()
		best := math.NaN()
		seen := false
		for i, v := range vals {
			if !valid[i] {
				continue
			}
			if !seen || (wantMin && v < best) || (!wantMin && v > best) {
				best = v
				seen = true
			}
		}
		if !seen {
			return nil, nil
		}
		return best, nil
	}

	vals, valid := s.ordinalView()
	var best int64
	seen := false
	for i, v := range vals {
		if !valid[i] {
			continue
		}
		if !seen || (wantMin && v < best) || (!wantMin && v > best) {
			best = v
			seen = true
		}
	}
	if !seen {
		return nil, nil
	}
	return decodeOrdinal(s.dtype, best), nil
}

// validFloats collects the non-null float view of a numeric series.
func validFloats(op string, s *Series) ([]float64, error) {
	if !s.dtype.IsNumeric() {
		return nil, errors.NewUnsupportedDtypeError(op, s.dtype, "integer, float")
	}
	vals, valid := s.floatView()
	out := make([]float64, 0, len(vals))
	for i, v := range vals {
		if valid[i] {
			out = append(out, v)
		}
	}
	return out, nil
}

// Mean averages the non-null elements of a numeric series, nil when none.
func Mean(s *Series) (any, error) {
	vals, err := validFloats("mean", s)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, nil
	}
	var total float64
	for _, v := range vals {
		total += v
	}
	return total / float64(len(vals)), nil
}

// Median returns the middle order statistic of the non-null elements,
// averaging the two middle values for even counts.
func Median(s *Series) (any, error) {
	vals, err := validFloats("median", s)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, nil
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid], nil
	}
	return (vals[mid-1] + vals[mid]) / 2, nil
}

// Variance computes the sample (n-1) variance of the non-null elements, nil
// when fewer than two.
func Variance(s *Series) (any, error) {
	vals, err := validFloats("variance", s)
	if err != nil {
		return nil, err
	}
	if len(vals) < 2 {
		return nil, nil
	}
	var mean float64
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return ss / float64(len(vals)-1), nil
}

// StandardDeviation is the square root of the sample variance.
func StandardDeviation(s *Series) (any, error) {
	v, err := Variance(s)
	if err != nil || v == nil {
		return nil, err
	}
	return math.Sqrt(v.(float64)), nil
}

// Quantile returns the q-th quantile of the non-null elements using linear
// interpolation between order statistics. q must lie in [0, 1]. Temporal
// series interpolate on their ordinal representation and decode back,
// truncating any fractional offset.
func Quantile(s *Series, q float64) (any, error) {
	if !s.dtype.IsOrdered() {
		return nil, errors.NewUnsupportedDtypeError("quantile", s.dtype, "integer, float, date, time, datetime")
	}
	if q < 0 || q > 1 || math.IsNaN(q) {
		return nil, errors.NewInvalidOperandsError("quantile", "q must be within [0, 1]")
	}

	var ordered []float64
	if s.dtype.IsNumeric() {
		vals, valid := s.floatView()
		for i, v := range vals {
			if valid[i] {
				ordered = append(ordered, v)
			}
		}
	} else {
		vals, valid := s.ordinalView()
		for i, v := range vals {
			if valid[i] {
				ordered = append(ordered, float64(v))
			}
		}
	}
	if len(ordered) == 0 {
		return nil, nil
	}
	sort.Float64s(ordered)

	pos := q * float64(len(ordered)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	interp := ordered[lo]*(1-frac) + ordered[hi]*frac

	if s.dtype.IsNumeric() {
		if s.dtype == dtype.Integer && frac == 0 {
			return int64(ordered[lo]), nil
		}
		return interp, nil
	}
	return decodeOrdinal(s.dtype, int64(interp)), nil
}

// NDistinct counts the distinct elements, counting null as one distinct
// value when present.
func NDistinct(s *Series) int {
	seen := make(map[any]struct{}, s.Len())
	hasNull := false
	for i := 0; i < s.Len(); i++ {
		v := s.valueAt(i)
		if v == nil {
			hasNull = true
			continue
		}
		seen[distinctKey(s.dtype, v)] = struct{}{}
	}
	n := len(seen)
	if hasNull {
		n++
	}
	return n
}

// Frequencies pairs every distinct element with its occurrence count,
// ordered descending by count with ties broken by first occurrence. Null
// elements count as one distinct value.
type Frequencies struct {
	Values *Series
	Counts *Series
}

// CountFrequencies tabulates the distinct elements and their counts.
func CountFrequencies(s *Series) (*Frequencies, error) {
	type entry struct {
		value any
		count int64
		first int
	}
	index := make(map[any]*entry, s.Len())
	var order []*entry
	for i := 0; i < s.Len(); i++ {
		v := s.valueAt(i)
		key := any(nil)
		if v != nil {
			key = distinctKey(s.dtype, v)
		}
		e, ok := index[key]
		if !ok {
			e = &entry{value: v, first: i}
			index[key] = e
			order = append(order, e)
		}
		e.count++
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	values := make([]any, len(order))
	counts := make([]int64, len(order))
	for i, e := range order {
		values[i] = e.value
		counts[i] = e.count
	}
	valueSeries, err := fromValues("values", s.dtype, values)
	if err != nil {
		return nil, err
	}
	return &Frequencies{
		Values: valueSeries,
		Counts: fromInt64s("counts", counts, nil),
	}, nil
}

// Count returns the number of non-null elements. Under an ambient group
// context only the indices of the active group are counted.
func Count(s *Series) int {
	if gc := currentGroup(); gc != nil {
		count := 0
		for _, i := range gc.Indices() {
			if i >= 0 && i < s.Len() && !s.arr.IsNull(i) {
				count++
			}
		}
		return count
	}
	return s.Len() - s.NilCount()
}

// decodeOrdinal converts an int64 ordinal back to the dtype's decoded value
// representation.
func decodeOrdinal(dt dtype.Dtype, v int64) any {
	switch dt {
	case dtype.Integer:
		return v
	case dtype.Date:
		return arrow.Date32(v)
	case dtype.Time:
		return arrow.Time64(v)
	case dtype.Datetime:
		return arrow.Timestamp(v)
	default:
		return v
	}
}

// distinctKey normalizes a decoded value for map-based distinct counting.
func distinctKey(dt dtype.Dtype, v any) any {
	if dt == dtype.Binary {
		return string(v.([]byte))
	}
	return v
}
