package series

import (
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

// fromCategories dictionary-encodes string values in first-seen order.
func fromCategories(name string, vals []string, valid []bool) (*Series, error) {
	b := newBuilder(defaultAllocator, dtype.Category).(*array.BinaryDictionaryBuilder)
	defer b.Release()
	for i, v := range vals {
		if valid != nil && !valid[i] {
			b.AppendNull()
			continue
		}
		if err := b.AppendString(v); err != nil {
			return nil, errors.NewInternalError("categorise", err)
		}
	}
	return newSeries(name, dtype.Category, b.NewArray()), nil
}

// Categories returns the distinct dictionary values of a category series as
// a string series, in dictionary order. Dictionary order is the order the
// storage happens to hold, not a sorted order.
func Categories(s *Series) (*Series, error) {
	if s.dtype != dtype.Category {
		return nil, errors.NewUnsupportedDtypeError("categories", s.dtype, "category")
	}
	dict := s.arr.(*array.Dictionary).Dictionary().(*array.String)
	vals := make([]string, dict.Len())
	for i := range vals {
		vals[i] = dict.Value(i)
	}
	return fromStrings(s.name, vals, nil), nil
}

// Categorise maps an integer series of dictionary indices through a category
// reference, producing a category series. The reference may be a category
// series (its dictionary is used), a string series, or a plain string list.
// Indices that are null or fall outside the reference map to null.
func Categorise(indices *Series, reference any) (*Series, error) {
	if indices.dtype != dtype.Integer {
		return nil, errors.NewTypeMismatchError("categorise", indices.dtype, "integer index series")
	}

	var cats []string
	switch ref := reference.(type) {
	case *Series:
		switch ref.dtype {
		case dtype.Category:
			catSeries, err := Categories(ref)
			if err != nil {
				return nil, err
			}
			cats, _ = catSeries.stringView()
		case dtype.String:
			vals, valid := ref.stringView()
			cats = make([]string, 0, len(vals))
			for i, v := range vals {
				if valid[i] {
					cats = append(cats, v)
				}
			}
		default:
			return nil, errors.NewTypeMismatchError("categorise", ref.dtype, "category or string reference")
		}
	case []string:
		cats = ref
	default:
		return nil, errors.NewTypeMismatchError("categorise", reference, "category series, string series, or string list")
	}

	idx, valid := indices.ordinalView()
	vals := make([]string, len(idx))
	outValid := make([]bool, len(idx))
	for i, v := range idx {
		if valid[i] && v >= 0 && v < int64(len(cats)) {
			vals[i] = cats[v]
			outValid[i] = true
		}
	}
	return fromCategories(indices.name, vals, outValid)
}
