package get_available_dates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubtracker/scheduling-service/internal/domain"
	equipmentRepo "github.com/hubtracker/scheduling-service/internal/infra/storage/equipment"
	"github.com/hubtracker/scheduling-service/pkg/localtime"
	"github.com/hubtracker/scheduling-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeEquipmentRepo struct {
	equipment *domain.Equipment
}

func (r *fakeEquipmentRepo) GetByID(_ context.Context, id int64) (*domain.Equipment, error) {
	if r.equipment == nil || r.equipment.ID != id {
		return nil, equipmentRepo.ErrEquipmentNotFound
	}
	return r.equipment, nil
}

type fakeScheduleRepo struct {
	hours   []*domain.OperatingHours
	blocked []*domain.BlockedDate
	policy  *domain.SchedulingPolicy
}

func (r *fakeScheduleRepo) ListOperatingHours(context.Context) ([]*domain.OperatingHours, error) {
	return r.hours, nil
}

func (r *fakeScheduleRepo) ListBlockedDates(context.Context, time.Time) ([]*domain.BlockedDate, error) {
	return r.blocked, nil
}

func (r *fakeScheduleRepo) GetPolicy(context.Context) (*domain.SchedulingPolicy, error) {
	if r.policy != nil {
		return r.policy, nil
	}
	return domain.DefaultSchedulingPolicy(), nil
}

func weekdayHours(days ...int) []*domain.OperatingHours {
	hours := make([]*domain.OperatingHours, 0, len(days))
	for _, d := range days {
		hours = append(hours, &domain.OperatingHours{
			DayOfWeek: d,
			StartTime: types.TimeString("09:00"),
			EndTime:   types.TimeString("17:00"),
		})
	}
	return hours
}

func newDatesUseCase(t *testing.T, schedule *fakeScheduleRepo, now time.Time) *UseCase {
	t.Helper()
	conv, err := localtime.NewConverter("UTC")
	require.NoError(t, err)

	uc := NewUseCase(
		&fakeEquipmentRepo{equipment: &domain.Equipment{ID: 1, Name: "Oscilloscope", IsSchedulable: true}},
		schedule,
		conv,
		nopLogger{},
	)
	uc.timeProvider = fixedTime{t: now}
	return uc
}

func TestExecuteSkipsClosedWeekdays(t *testing.T) {
	// 2026-03-04 is a Wednesday; the lab works Monday-Friday
	now := time.Date(2026, 3, 4, 10, 15, 0, 0, time.UTC)
	schedule := &fakeScheduleRepo{hours: weekdayHours(0, 1, 2, 3, 4)}

	uc := newDatesUseCase(t, schedule, now)
	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, EquipmentID: 1})
	require.NoError(t, err)

	assert.Equal(t, "UTC", resp.Timezone)

	// Window Mar 4..Mar 11 inclusive minus the weekend Mar 7/8
	require.Len(t, resp.Dates, 6)
	assert.Equal(t, 4, resp.Dates[0].Date.Day())
	assert.Equal(t, "Wednesday", resp.Dates[0].DayName)
	assert.Equal(t, 2, resp.Dates[0].DayOfWeek)
	for _, d := range resp.Dates {
		assert.NotEqual(t, 7, d.Date.Day())
		assert.NotEqual(t, 8, d.Date.Day())
	}
	assert.Equal(t, 11, resp.Dates[len(resp.Dates)-1].Date.Day())
}

func TestExecuteSkipsBlockedDates(t *testing.T) {
	now := time.Date(2026, 3, 4, 10, 15, 0, 0, time.UTC)
	schedule := &fakeScheduleRepo{
		hours: weekdayHours(0, 1, 2, 3, 4),
		blocked: []*domain.BlockedDate{
			{Date: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		},
	}

	uc := newDatesUseCase(t, schedule, now)
	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, EquipmentID: 1})
	require.NoError(t, err)

	require.Len(t, resp.Dates, 5)
	for _, d := range resp.Dates {
		assert.NotEqual(t, 5, d.Date.Day())
	}
}

func TestExecuteSkipsAnnualRecurringBlockedDate(t *testing.T) {
	// Entry from an earlier year blocks the same month+day this year
	now := time.Date(2026, 12, 21, 10, 0, 0, 0, time.UTC) // Monday
	schedule := &fakeScheduleRepo{
		hours: weekdayHours(0, 1, 2, 3, 4),
		blocked: []*domain.BlockedDate{
			{Date: time.Date(2020, 12, 25, 0, 0, 0, 0, time.UTC), IsAnnualRecurring: true},
		},
	}

	uc := newDatesUseCase(t, schedule, now)
	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, EquipmentID: 1})
	require.NoError(t, err)

	for _, d := range resp.Dates {
		assert.False(t, d.Date.Month() == time.December && d.Date.Day() == 25)
	}
}

func TestExecuteDropsTodayWithoutRemainingSlot(t *testing.T) {
	// 16:45 rounds up to 17:00; no whole slot fits before closing
	now := time.Date(2026, 3, 4, 16, 45, 0, 0, time.UTC)
	schedule := &fakeScheduleRepo{hours: weekdayHours(0, 1, 2, 3, 4)}

	uc := newDatesUseCase(t, schedule, now)
	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, EquipmentID: 1})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Dates)
	assert.Equal(t, 5, resp.Dates[0].Date.Day())
}

func TestExecuteKeepsTodayWithLastSlot(t *testing.T) {
	// 16:12 rounds up to 16:30; one last slot [16:30, 17:00) remains
	now := time.Date(2026, 3, 4, 16, 12, 0, 0, time.UTC)
	schedule := &fakeScheduleRepo{hours: weekdayHours(0, 1, 2, 3, 4)}

	uc := newDatesUseCase(t, schedule, now)
	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, EquipmentID: 1})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Dates)
	assert.Equal(t, 4, resp.Dates[0].Date.Day())
}

func TestExecuteHonorsAdvanceLimit(t *testing.T) {
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	schedule := &fakeScheduleRepo{
		hours:  weekdayHours(0, 1, 2, 3, 4, 5, 6),
		policy: &domain.SchedulingPolicy{BookingAdvanceLimitDays: 2, MaxBookingDurationHours: 4, MinBookingNoticeHours: 4},
	}

	uc := newDatesUseCase(t, schedule, now)
	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, EquipmentID: 1})
	require.NoError(t, err)

	// today, tomorrow and the day after: the window is inclusive
	require.Len(t, resp.Dates, 3)
	assert.Equal(t, 6, resp.Dates[2].Date.Day())
}

func TestExecuteEquipmentNotFound(t *testing.T) {
	uc := newDatesUseCase(t, &fakeScheduleRepo{}, time.Now())
	_, err := uc.Execute(context.Background(), &Request{UserID: 7, EquipmentID: 99})
	assert.ErrorIs(t, err, ErrEquipmentNotFound)
}

func TestExecuteEquipmentNotSchedulable(t *testing.T) {
	conv, err := localtime.NewConverter("UTC")
	require.NoError(t, err)

	uc := NewUseCase(
		&fakeEquipmentRepo{equipment: &domain.Equipment{ID: 1, IsSchedulable: false}},
		&fakeScheduleRepo{},
		conv,
		nopLogger{},
	)
	_, err = uc.Execute(context.Background(), &Request{UserID: 7, EquipmentID: 1})
	assert.ErrorIs(t, err, ErrEquipmentNotSchedulable)
}

func TestExecuteInvalidInput(t *testing.T) {
	uc := newDatesUseCase(t, &fakeScheduleRepo{}, time.Now())
	_, err := uc.Execute(context.Background(), &Request{UserID: 7, EquipmentID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
