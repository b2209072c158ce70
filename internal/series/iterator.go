package series

// Iterator walks a series sequentially, decoding one element per step. It
// holds only a cursor beyond the series handle and can be restarted with
// Reset.
type Iterator struct {
	s   *Series
	pos int
}

// Iter returns a fresh iterator positioned before the first element.
func (s *Series) Iter() *Iterator {
	return &Iterator{s: s}
}

// Next returns the next decoded element (nil for null) and whether one was
// available.
func (it *Iterator) Next() (any, bool) {
	if it.pos >= it.s.Len() {
		return nil, false
	}
	v := it.s.valueAt(it.pos)
	it.pos++
	return v, true
}

// Reset rewinds the iterator to the first element.
func (it *Iterator) Reset() {
	it.pos = 0
}
