package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hubtracker/scheduling-service/pkg/types"
)

func TestOperatingHoursContains(t *testing.T) {
	hours := &OperatingHours{
		DayOfWeek: 2,
		StartTime: types.TimeString("09:00"),
		EndTime:   types.TimeString("17:00"),
	}

	assert.True(t, hours.Contains("09:00", "17:00"))
	assert.True(t, hours.Contains("10:00", "11:30"))
	assert.True(t, hours.Contains("09:00", "09:30"))
	assert.True(t, hours.Contains("16:30", "17:00"))

	assert.False(t, hours.Contains("08:30", "10:00"))
	assert.False(t, hours.Contains("16:30", "17:30"))
	assert.False(t, hours.Contains("11:00", "10:00"))
	assert.False(t, hours.Contains("10:00", "10:00"))
}

func TestBlockedDateMatches(t *testing.T) {
	oneOff := &BlockedDate{
		Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, oneOff.Matches(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.False(t, oneOff.Matches(time.Date(2027, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.False(t, oneOff.Matches(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
}

func TestBlockedDateMatchesAnnualRecurring(t *testing.T) {
	// A holiday entered years ago still blocks every December 25
	holiday := &BlockedDate{
		Date:              time.Date(2020, 12, 25, 0, 0, 0, 0, time.UTC),
		IsAnnualRecurring: true,
	}
	assert.True(t, holiday.Matches(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)))
	assert.True(t, holiday.Matches(time.Date(2030, 12, 25, 0, 0, 0, 0, time.UTC)))
	assert.False(t, holiday.Matches(time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)))
	assert.False(t, holiday.Matches(time.Date(2026, 11, 25, 0, 0, 0, 0, time.UTC)))
}

func TestDayOfWeek(t *testing.T) {
	// 2026-03-02 is a Monday
	assert.Equal(t, 0, DayOfWeek(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2, DayOfWeek(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 5, DayOfWeek(time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 6, DayOfWeek(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)))
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "Monday", DayName(0))
	assert.Equal(t, "Sunday", DayName(6))
	assert.Equal(t, "", DayName(7))
	assert.Equal(t, "", DayName(-1))
}

func TestValidDayOfWeek(t *testing.T) {
	assert.True(t, ValidDayOfWeek(0))
	assert.True(t, ValidDayOfWeek(6))
	assert.False(t, ValidDayOfWeek(-1))
	assert.False(t, ValidDayOfWeek(7))
}

func TestSchedulingPolicyDurations(t *testing.T) {
	policy := &SchedulingPolicy{
		MaxBookingDurationHours: 4.0,
		MinBookingNoticeHours:   1.5,
	}
	assert.Equal(t, 4*time.Hour, policy.MaxDuration())
	assert.Equal(t, 90*time.Minute, policy.MinNotice())
}

func TestDefaultSchedulingPolicy(t *testing.T) {
	policy := DefaultSchedulingPolicy()
	assert.Equal(t, int64(SchedulingPolicyID), policy.ID)
	assert.Equal(t, DefaultMaxBookingDurationHours, policy.MaxBookingDurationHours)
	assert.Equal(t, DefaultMinBookingNoticeHours, policy.MinBookingNoticeHours)
	assert.Equal(t, DefaultBookingAdvanceLimitDays, policy.BookingAdvanceLimitDays)
}
