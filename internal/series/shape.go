package series

import (
	"math/rand"

	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

// Slice returns up to length elements starting at offset. A negative offset
// counts from the end; the length clamps to the available range, so the
// result may be shorter than requested or empty. The backing buffer is
// shared with the source, not copied.
func (s *Series) Slice(offset, length int) *Series {
	n := s.Len()
	if offset < 0 {
		offset += n
	}
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	if length < 0 {
		length = 0
	}
	if offset+length > n {
		length = n - offset
	}
	sliced := array.NewSlice(s.arr, int64(offset), int64(offset+length))
	return newSeries(s.name, s.dtype, sliced)
}

// SliceRange returns the elements of the half-open range [lo, hi),
// normalizing negative bounds against the size. An inverted normalized range
// yields an empty series.
func (s *Series) SliceRange(lo, hi int) *Series {
	n := s.Len()
	if lo < 0 {
		lo += n
	}
	if hi < 0 {
		hi += n
	}
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo >= hi {
		return s.Slice(0, 0)
	}
	return s.Slice(lo, hi-lo)
}

// TakeIndices gathers the elements at the given indices, in order. Negative
// indices are rejected; an index at or past the size fails with
// IndexOutOfBounds.
func TakeIndices(s *Series, indices []int) (*Series, error) {
	n := s.Len()
	for _, idx := range indices {
		if idx < 0 {
			return nil, errors.NewInvalidOperandsError("slice", "negative indices are not allowed in list form")
		}
		if idx >= n {
			return nil, errors.NewIndexOutOfBoundsError("slice", idx, n)
		}
	}
	return takeAt(s, indices)
}

// Mask keeps the elements at positions where the boolean mask is true,
// preserving order. The mask length must equal the series length.
func Mask(s *Series, mask *Series) (*Series, error) {
	if mask.dtype != dtype.Boolean {
		return nil, errors.NewTypeMismatchError("mask", mask.dtype, dtype.Boolean)
	}
	if mask.Len() != s.Len() {
		return nil, errors.NewSizeMismatchError("mask", s.Len(), mask.Len())
	}
	vals, valid := mask.boolView()
	var keep []int
	for i, v := range vals {
		if valid[i] && v {
			keep = append(keep, i)
		}
	}
	return takeAt(s, keep)
}

// Remove drops the element at index, expressed as a mask over all other
// positions; the result is a new series one element shorter. Negative
// indices count from the end.
func Remove(s *Series, index int) (*Series, error) {
	n := s.Len()
	i := index
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil, errors.NewIndexOutOfBoundsError("remove", index, n)
	}
	keep := make([]bool, n)
	for j := range keep {
		keep[j] = j != i
	}
	return Mask(s, fromBools("", keep, nil))
}

// SampleOptions configures Sample.
type SampleOptions struct {
	// Replace draws with replacement, allowing any requested count.
	Replace bool
	// Shuffle controls whether a full-size sample without replacement is
	// returned reordered or in identity order.
	Shuffle bool
	// Seed fixes the random source when non-nil.
	Seed *int64
}

// SampleN draws n elements. Without replacement a count larger than the
// series fails with InvalidOperands.
func SampleN(s *Series, n int, opts SampleOptions) (*Series, error) {
	if n < 0 {
		return nil, errors.NewInvalidOperandsError("sample", "sample size must be non-negative")
	}
	size := s.Len()
	if size == 0 && n > 0 {
		return nil, errors.NewInvalidOperandsError("sample", "cannot sample from an empty series")
	}
	rng := newRand(opts.Seed)

	if opts.Replace {
		if n == 0 {
			return takeAt(s, nil)
		}
		indices := make([]int, n)
		for i := range indices {
			indices[i] = rng.Intn(size)
		}
		return takeAt(s, indices)
	}

	if n > size {
		return nil, errors.NewInvalidOperandsError("sample", "sample size exceeds series size when replace is false")
	}
	if n == size && !opts.Shuffle {
		return takeAt(s, identityIndices(size))
	}
	perm := rng.Perm(size)[:n]
	return takeAt(s, perm)
}

// SampleFraction draws a fraction of the series size, truncating to an
// integer count.
func SampleFraction(s *Series, fraction float64, opts SampleOptions) (*Series, error) {
	if fraction < 0 {
		return nil, errors.NewInvalidOperandsError("sample", "sample fraction must be non-negative")
	}
	return SampleN(s, int(fraction*float64(s.Len())), opts)
}

func newRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

func identityIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
