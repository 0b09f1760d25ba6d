package domain

import (
	"time"

	"github.com/hubtracker/scheduling-service/pkg/types"
)

// OperatingHours is the recurring weekly open window for one weekday.
// At most one record exists per weekday; a missing record means the lab
// is closed that day.
type OperatingHours struct {
	ID        int64
	DayOfWeek int // 0=Monday .. 6=Sunday
	StartTime types.TimeString
	EndTime   types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether the wall-clock interval [start, end) fits
// inside the operating window [StartTime, EndTime).
func (h *OperatingHours) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(h.StartTime) && !end.IsAfter(h.EndTime) && start.IsBefore(end)
}

// BlockedDate is a calendar date closed for booking. An annually
// recurring entry blocks its month+day in every year.
type BlockedDate struct {
	ID                int64
	Date              time.Time // calendar date, midnight
	Reason            *string
	IsAnnualRecurring bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Matches reports whether the blocked entry applies to the given
// calendar date: an exact match for one-off entries, a month+day match
// regardless of year for annually recurring entries.
func (b *BlockedDate) Matches(date time.Time) bool {
	if b.IsAnnualRecurring {
		return b.Date.Month() == date.Month() && b.Date.Day() == date.Day()
	}
	return b.Date.Year() == date.Year() && b.Date.Month() == date.Month() && b.Date.Day() == date.Day()
}

// SchedulingPolicy is the singleton set of global booking parameters.
type SchedulingPolicy struct {
	ID                      int64
	MaxBookingDurationHours float64
	MinBookingNoticeHours   float64
	BookingAdvanceLimitDays int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MaxDuration returns the maximum booking length as a Duration
func (p *SchedulingPolicy) MaxDuration() time.Duration {
	return time.Duration(p.MaxBookingDurationHours * float64(time.Hour))
}

// MinNotice returns the minimum booking lead time as a Duration
func (p *SchedulingPolicy) MinNotice() time.Duration {
	return time.Duration(p.MinBookingNoticeHours * float64(time.Hour))
}

// DefaultSchedulingPolicy returns the policy used until an administrator
// saves one.
func DefaultSchedulingPolicy() *SchedulingPolicy {
	return &SchedulingPolicy{
		ID:                      SchedulingPolicyID,
		MaxBookingDurationHours: DefaultMaxBookingDurationHours,
		MinBookingNoticeHours:   DefaultMinBookingNoticeHours,
		BookingAdvanceLimitDays: DefaultBookingAdvanceLimitDays,
	}
}
