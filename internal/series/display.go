package series

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jeregrine/explorer/internal/config"
)

// String renders the series for humans: backend tag, size, dtype, and a
// preview of element values capped by the configured limit. Nulls render as
// nil and special floats as NaN, Inf and -Inf.
func (s *Series) String() string {
	limit := config.GetGlobalConfig().PreviewLimit
	n := s.Len()
	shown := n
	if shown > limit {
		shown = limit
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Series[%s]", s.dtype)
	if s.name != "" {
		fmt.Fprintf(&b, ": %s", s.name)
	}
	fmt.Fprintf(&b, " (len=%d, backend=arrow)\n  [", n)
	for i := 0; i < shown; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatElement(s.valueAt(i)))
	}
	if shown < n {
		b.WriteString(", ...")
	}
	b.WriteString("]")
	return b.String()
}

func formatElement(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case float64:
		switch {
		case math.IsNaN(x):
			return "NaN"
		case math.IsInf(x, 1):
			return "Inf"
		case math.IsInf(x, -1):
			return "-Inf"
		default:
			return strconv.FormatFloat(x, 'f', -1, 64)
		}
	case string:
		return strconv.Quote(x)
	case []byte:
		return fmt.Sprintf("%q", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
