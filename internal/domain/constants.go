package domain

import "time"

// Default scheduling policy values (applied until an administrator
// saves the singleton policy row)
const (
	DefaultMaxBookingDurationHours = 4.0
	DefaultMinBookingNoticeHours   = 4.0
	DefaultBookingAdvanceLimitDays = 7
)

// SchedulingPolicyID - фиксированный ID единственной строки политики
const SchedulingPolicyID = 1

// SlotStepMinutes is the atomic booking unit. Every candidate start and
// end time sits on this grid, which keeps conflict arithmetic to
// half-open interval comparisons with no sub-slot fragmentation.
const SlotStepMinutes = 30

// Business validation constants
const (
	MinPolicyDurationHours = 0.5
	MaxPolicyDurationHours = 24.0
	MaxPolicyNoticeHours   = 24.0 * 7
	MaxAdvanceLimitDays    = 365
	MaxPurposeLength       = 255
	MaxNotesLength         = 2000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD

	// DisplayDateFormat/DisplayTimeFormat - человекочитаемые подписи в ответах API
	DisplayDateFormat = "Monday, Jan 2"
	DisplayTimeFormat = "3:04 PM"
)

// Weekday numbering follows the operating-hours schema: 0=Monday..6=Sunday.
var dayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayOfWeek converts a time.Time weekday (Sunday=0) to schema numbering.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DayName returns the English weekday name for schema numbering.
func DayName(dayOfWeek int) string {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return ""
	}
	return dayNames[dayOfWeek]
}

// ValidDayOfWeek reports whether d is a valid schema weekday.
func ValidDayOfWeek(d int) bool {
	return d >= 0 && d <= 6
}
