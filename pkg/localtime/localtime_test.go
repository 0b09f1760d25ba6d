package localtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubtracker/scheduling-service/pkg/types"
)

func TestNewConverter(t *testing.T) {
	conv, err := NewConverter("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", conv.Location().String())

	_, err = NewConverter("Not/AZone")
	assert.Error(t, err)
}

func TestToUTC(t *testing.T) {
	conv, err := NewConverter("America/New_York")
	require.NoError(t, err)

	// January: EST, UTC-5
	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	instant, err := conv.ToUTC(date, types.TimeString("10:00"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 15, 15, 0, 0, 0, time.UTC), instant)

	// July: EDT, UTC-4
	date = time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	instant, err = conv.ToUTC(date, types.TimeString("10:00"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 15, 14, 0, 0, 0, time.UTC), instant)

	_, err = conv.ToUTC(date, types.TimeString("bad"))
	assert.Error(t, err)
}

func TestFromUTCRoundTrip(t *testing.T) {
	conv, err := NewConverter("America/New_York")
	require.NoError(t, err)

	date := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	start := types.TimeString("09:30")

	instant, err := conv.ToUTC(date, start)
	require.NoError(t, err)

	gotDate, gotTime := conv.FromUTC(instant)
	assert.Equal(t, start, gotTime)
	assert.Equal(t, 2026, gotDate.Year())
	assert.Equal(t, time.March, gotDate.Month())
	assert.Equal(t, 4, gotDate.Day())
}

func TestFromUTCCrossesDateLine(t *testing.T) {
	conv, err := NewConverter("America/New_York")
	require.NoError(t, err)

	// 02:00 UTC on March 5 is still the evening of March 4 in New York
	instant := time.Date(2026, 3, 5, 2, 0, 0, 0, time.UTC)
	date, wallClock := conv.FromUTC(instant)
	assert.Equal(t, 4, date.Day())
	assert.Equal(t, types.TimeString("21:00"), wallClock)
}

func TestLocalDate(t *testing.T) {
	conv, err := NewConverter("America/New_York")
	require.NoError(t, err)

	instant := time.Date(2026, 3, 5, 2, 0, 0, 0, time.UTC)
	date := conv.LocalDate(instant)
	assert.Equal(t, 4, date.Day())
	assert.Equal(t, 0, date.Hour())
	assert.Equal(t, conv.Location(), date.Location())
}
