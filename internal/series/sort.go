package series

import (
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

// Direction selects the sort order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// NilPlacement controls where null elements sort.
type NilPlacement int

const (
	// NilsDefault places nulls last for ascending sorts and first for
	// descending sorts.
	NilsDefault NilPlacement = iota
	NilsFirst
	NilsLast
)

func (p NilPlacement) nilsLast(dir Direction) bool {
	switch p {
	case NilsFirst:
		return false
	case NilsLast:
		return true
	default:
		return dir == Ascending
	}
}

// ArgSort returns the integer permutation that stably sorts the series.
func ArgSort(s *Series, dir Direction, nils NilPlacement) (*Series, error) {
	perm, err := sortPermutation(s, dir, nils)
	if err != nil {
		return nil, err
	}
	idx := make([]int64, len(perm))
	for i, p := range perm {
		idx[i] = int64(p)
	}
	return fromInt64s(s.name, idx, nil), nil
}

// Sort returns a stably sorted copy of the series.
func Sort(s *Series, dir Direction, nils NilPlacement) (*Series, error) {
	perm, err := sortPermutation(s, dir, nils)
	if err != nil {
		return nil, err
	}
	return takeAt(s, perm)
}

func sortPermutation(s *Series, dir Direction, nils NilPlacement) ([]int, error) {
	n := s.Len()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	less, err := lessFunc(s)
	if err != nil {
		return nil, err
	}
	nilsLast := nils.nilsLast(dir)

	sort.SliceStable(perm, func(a, b int) bool {
		i, j := perm[a], perm[b]
		in, jn := s.arr.IsNull(i), s.arr.IsNull(j)
		switch {
		case in && jn:
			return false
		case in:
			return !nilsLast
		case jn:
			return nilsLast
		}
		if dir == Descending {
			i, j = j, i
		}
		return less(i, j)
	})
	return perm, nil
}

// lessFunc returns a strict-order comparison over two valid element indices.
func lessFunc(s *Series) (func(i, j int) bool, error) {
	switch {
	case s.dtype == dtype.Float:
		vals, _ := s.floatView()
		return func(i, j int) bool { return vals[i] < vals[j] }, nil
	case s.dtype == dtype.Integer || s.dtype.IsTemporal():
		vals, _ := s.ordinalView()
		return func(i, j int) bool { return vals[i] < vals[j] }, nil
	case s.dtype == dtype.String || s.dtype == dtype.Category:
		vals, _ := s.stringView()
		return func(i, j int) bool { return vals[i] < vals[j] }, nil
	case s.dtype == dtype.Boolean:
		vals, _ := s.boolView()
		return func(i, j int) bool { return !vals[i] && vals[j] }, nil
	case s.dtype == dtype.Binary:
		return func(i, j int) bool {
			return string(s.valueAt(i).([]byte)) < string(s.valueAt(j).([]byte))
		}, nil
	default:
		return nil, errors.NewUnsupportedDtypeError("sort", s.dtype, validSetAll)
	}
}

// Distinct returns the distinct elements in order of first occurrence,
// keeping one null when present.
func Distinct(s *Series) (*Series, error) {
	seen := make(map[any]struct{}, s.Len())
	hasNull := false
	var keep []int
	for i := 0; i < s.Len(); i++ {
		v := s.valueAt(i)
		if v == nil {
			if !hasNull {
				hasNull = true
				keep = append(keep, i)
			}
			continue
		}
		key := distinctKey(s.dtype, v)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			keep = append(keep, i)
		}
	}
	return takeAt(s, keep)
}

// UnorderedDistinct returns the distinct elements without an order
// guarantee. String and binary values dedupe through xxhash digests instead
// of full map keys.
func UnorderedDistinct(s *Series) (*Series, error) {
	if s.dtype == dtype.String || s.dtype == dtype.Binary || s.dtype == dtype.Category {
		seen := make(map[uint64]struct{}, s.Len())
		hasNull := false
		var keep []int
		for i := 0; i < s.Len(); i++ {
			v := s.valueAt(i)
			if v == nil {
				if !hasNull {
					hasNull = true
					keep = append(keep, i)
				}
				continue
			}
			var h uint64
			switch x := v.(type) {
			case string:
				h = xxhash.Sum64String(x)
			case []byte:
				h = xxhash.Sum64(x)
			}
			if _, ok := seen[h]; !ok {
				seen[h] = struct{}{}
				keep = append(keep, i)
			}
		}
		return takeAt(s, keep)
	}
	return Distinct(s)
}

// Reverse returns the elements in reverse order.
func Reverse(s *Series) (*Series, error) {
	n := s.Len()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = n - 1 - i
	}
	return takeAt(s, perm)
}

// Shift moves values toward the tail by offset positions, introducing
// leading nulls; a negative offset moves toward the head introducing
// trailing nulls. Size is unchanged.
func Shift(s *Series, offset int) (*Series, error) {
	n := s.Len()
	out := make([]any, n)
	for i := 0; i < n; i++ {
		src := i - offset
		if src >= 0 && src < n {
			out[i] = s.valueAt(src)
		}
	}
	return fromValues(s.name, s.dtype, out)
}

// takeAt rebuilds a series from the elements at the given normalized
// indices, in order.
func takeAt(s *Series, indices []int) (*Series, error) {
	out := make([]any, len(indices))
	for i, idx := range indices {
		out[i] = s.valueAt(idx)
	}
	return fromValues(s.name, s.dtype, out)
}
