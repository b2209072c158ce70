package series

import (
	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

const microsPerDay = int64(24) * 60 * 60 * 1_000_000

// DayOfWeek extracts the ISO 8601 weekday (Monday=1 .. Sunday=7) from a date
// or datetime series, producing an integer series.
func DayOfWeek(s *Series) (*Series, error) {
	if s.dtype != dtype.Date && s.dtype != dtype.Datetime {
		return nil, errors.NewUnsupportedDtypeError("day_of_week", s.dtype, "date, datetime")
	}
	vals, valid := s.ordinalView()
	out := make([]int64, len(vals))
	for i, v := range vals {
		if !valid[i] {
			continue
		}
		days := v
		if s.dtype == dtype.Datetime {
			days = floorDiv(v, microsPerDay)
		}
		// The epoch, day zero, was a Thursday (ISO weekday 4).
		out[i] = mod(days+3, 7) + 1
	}
	return fromInt64s(s.name, out, valid), nil
}

// ToDate projects the date component out of a datetime series.
func ToDate(s *Series) (*Series, error) {
	if s.dtype != dtype.Datetime {
		return nil, errors.NewUnsupportedDtypeError("to_date", s.dtype, "datetime")
	}
	vals, valid := s.ordinalView()
	out := make([]int64, len(vals))
	for i, v := range vals {
		if valid[i] {
			out[i] = floorDiv(v, microsPerDay)
		}
	}
	return fromOrdinal(s.name, dtype.Date, out, valid), nil
}

// ToTime projects the time-of-day component out of a datetime series.
func ToTime(s *Series) (*Series, error) {
	if s.dtype != dtype.Datetime {
		return nil, errors.NewUnsupportedDtypeError("to_time", s.dtype, "datetime")
	}
	vals, valid := s.ordinalView()
	out := make([]int64, len(vals))
	for i, v := range vals {
		if valid[i] {
			out[i] = v - floorDiv(v, microsPerDay)*microsPerDay
		}
	}
	return fromOrdinal(s.name, dtype.Time, out, valid), nil
}

// floorDiv divides rounding toward negative infinity, so pre-epoch offsets
// land on the correct day.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
