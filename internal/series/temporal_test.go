package series

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

func TestDayOfWeek(t *testing.T) {
	// Day zero of the epoch was a Thursday.
	s := mustFromList(t, []any{
		arrow.Date32(0), // Thursday
		arrow.Date32(3), // Sunday
		arrow.Date32(4), // Monday
		nil,
	})

	out, err := DayOfWeek(s)
	require.NoError(t, err)
	assertElems(t, out, dtype.Integer, []any{int64(4), int64(7), int64(1), nil})
}

func TestDayOfWeekDatetime(t *testing.T) {
	// 1970-01-02 12:00:00 was a Friday.
	micros := int64(36) * 60 * 60 * 1_000_000
	s := mustFromList(t, []any{arrow.Timestamp(micros)})

	out, err := DayOfWeek(s)
	require.NoError(t, err)
	assertElems(t, out, dtype.Integer, []any{int64(5)})
}

func TestDayOfWeekPreEpoch(t *testing.T) {
	// 1969-12-31 was a Wednesday.
	s := mustFromList(t, []any{arrow.Timestamp(-1)})
	out, err := DayOfWeek(s)
	require.NoError(t, err)
	assertElems(t, out, dtype.Integer, []any{int64(3)})
}

func TestDayOfWeekUnsupported(t *testing.T) {
	_, err := DayOfWeek(mustFromList(t, []any{1}))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.UnsupportedDtype))
}

func TestToDate(t *testing.T) {
	micros := int64(36) * 60 * 60 * 1_000_000 // 1970-01-02 12:00
	s := mustFromList(t, []any{arrow.Timestamp(micros), nil})

	out, err := ToDate(s)
	require.NoError(t, err)
	assertElems(t, out, dtype.Date, []any{arrow.Date32(1), nil})

	_, err = ToDate(mustFromList(t, []any{arrow.Date32(1)}))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.UnsupportedDtype))
}

func TestToDatePreEpoch(t *testing.T) {
	s := mustFromList(t, []any{arrow.Timestamp(-1)})
	out, err := ToDate(s)
	require.NoError(t, err)
	assertElems(t, out, dtype.Date, []any{arrow.Date32(-1)})
}

func TestToTime(t *testing.T) {
	halfDay := int64(12) * 60 * 60 * 1_000_000
	s := mustFromList(t, []any{arrow.Timestamp(microsPerDay + halfDay)})

	out, err := ToTime(s)
	require.NoError(t, err)
	assertElems(t, out, dtype.Time, []any{arrow.Time64(halfDay)})
}

func TestToTimePreEpochWrapsForward(t *testing.T) {
	s := mustFromList(t, []any{arrow.Timestamp(-1)})
	out, err := ToTime(s)
	require.NoError(t, err)
	assertElems(t, out, dtype.Time, []any{arrow.Time64(microsPerDay - 1)})
}
