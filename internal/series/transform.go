package series

// Transform applies an arbitrary unary function to every decoded element,
// nulls included, and builds a new series from the outputs under the same
// dtype inference as list construction.
//
// This is the escape hatch out of the typed kernels: it fully materializes
// the series to a value sequence and back, so it costs far more than any
// typed operation.
func Transform(s *Series, fn func(any) any) (*Series, error) {
	n := s.Len()
	out := make([]any, n)
	for i := 0; i < n; i++ {
		out[i] = fn(s.valueAt(i))
	}
	return FromList(out, WithName(s.name))
}
