package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubtracker/scheduling-service/internal/domain"
	equipmentRepo "github.com/hubtracker/scheduling-service/internal/infra/storage/equipment"
	scheduleRepo "github.com/hubtracker/scheduling-service/internal/infra/storage/schedule"
	"github.com/hubtracker/scheduling-service/internal/integrations/mailer"
	"github.com/hubtracker/scheduling-service/internal/integrations/userdirectory"
	"github.com/hubtracker/scheduling-service/pkg/localtime"
	"github.com/hubtracker/scheduling-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeAppointmentRepo хранит созданные бронирования в памяти, поэтому
// последовательные запросы видят конфликты друг друга
type fakeAppointmentRepo struct {
	nextID       int64
	appointments []*domain.Appointment
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.nextID++
	created := *appt
	created.ID = r.nextID
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	r.appointments = append(r.appointments, &created)
	return &created, nil
}

func (r *fakeAppointmentRepo) GetByEquipmentWithFilter(_ context.Context, filter domain.EquipmentAppointmentsFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, appt := range r.appointments {
		if appt.EquipmentID != filter.EquipmentID || !appt.IsActive() {
			continue
		}
		if filter.From != nil && filter.To != nil && !appt.Overlaps(*filter.From, *filter.To) {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

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
	hours   map[int]*domain.OperatingHours
	blocked []*domain.BlockedDate
	policy  *domain.SchedulingPolicy
}

func (r *fakeScheduleRepo) GetOperatingHours(_ context.Context, dayOfWeek int) (*domain.OperatingHours, error) {
	hours, ok := r.hours[dayOfWeek]
	if !ok {
		return nil, scheduleRepo.ErrHoursNotFound
	}
	return hours, nil
}

func (r *fakeScheduleRepo) ListOperatingHours(context.Context) ([]*domain.OperatingHours, error) {
	result := make([]*domain.OperatingHours, 0, len(r.hours))
	for day := 0; day < 7; day++ {
		if hours, ok := r.hours[day]; ok {
			result = append(result, hours)
		}
	}
	return result, nil
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

type fakeUserClient struct{}

func (fakeUserClient) GetUser(context.Context, int64) (*userdirectory.User, error) {
	return nil, userdirectory.ErrUserNotFound
}

type fakeMailSender struct{}

func (fakeMailSender) SendAppointmentCreated(mailer.AppointmentNotification) error {
	return mailer.ErrDisabled
}

// 2026-03-04 is a Wednesday
var testDate = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

func weekdayHours(days ...int) map[int]*domain.OperatingHours {
	hours := make(map[int]*domain.OperatingHours, len(days))
	for _, d := range days {
		hours[d] = &domain.OperatingHours{
			DayOfWeek: d,
			StartTime: types.TimeString("09:00"),
			EndTime:   types.TimeString("17:00"),
		}
	}
	return hours
}

func newCreateUseCase(t *testing.T, appointments *fakeAppointmentRepo, schedule *fakeScheduleRepo, now time.Time) *UseCase {
	t.Helper()
	conv, err := localtime.NewConverter("UTC")
	require.NoError(t, err)

	uc := NewUseCase(
		appointments,
		&fakeEquipmentRepo{equipment: &domain.Equipment{ID: 1, Name: "Oscilloscope", IsSchedulable: true}},
		schedule,
		fakeUserClient{},
		fakeMailSender{},
		fakeTxManager{},
		conv,
		nopLogger{},
	)
	uc.timeProvider = fixedTime{t: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:      7,
		EquipmentID: 1,
		Date:        testDate,
		StartTime:   types.TimeString("13:00"),
		EndTime:     types.TimeString("14:30"),
		Strictness:  StrictPolicy,
	}
}

func TestExecuteCreatesApprovedAppointment(t *testing.T) {
	appointments := &fakeAppointmentRepo{}
	schedule := &fakeScheduleRepo{hours: weekdayHours(2)}
	now := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)

	uc := newCreateUseCase(t, appointments, schedule, now)
	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, "Oscilloscope", resp.EquipmentName)
	assert.Equal(t, types.TimeString("13:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("14:30"), resp.EndTime)
	assert.Equal(t, 1.5, resp.DurationHours)

	require.Len(t, appointments.appointments, 1)
	stored := appointments.appointments[0]
	assert.Equal(t, time.Date(2026, 3, 4, 13, 0, 0, 0, time.UTC), stored.StartTime)
	assert.Equal(t, time.Date(2026, 3, 4, 14, 30, 0, 0, time.UTC), stored.EndTime)
	assert.Equal(t, domain.StatusApproved, stored.Status)
}

func TestExecuteMinNotice(t *testing.T) {
	schedule := &fakeScheduleRepo{hours: weekdayHours(2)}
	// 09:00 start is only one hour away; the default policy wants four
	now := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)

	req := validRequest()
	req.StartTime = types.TimeString("09:00")
	req.EndTime = types.TimeString("10:00")

	uc := newCreateUseCase(t, &fakeAppointmentRepo{}, schedule, now)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrMinNotice)
}

func TestExecuteAdminSkipsPolicy(t *testing.T) {
	appointments := &fakeAppointmentRepo{}
	schedule := &fakeScheduleRepo{hours: weekdayHours(2)}
	now := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)

	// Same short-notice interval, but the administrative flow checks
	// only operating hours and conflicts
	req := validRequest()
	req.StartTime = types.TimeString("09:00")
	req.EndTime = types.TimeString("10:00")
	req.Strictness = OperatingHoursOnly

	uc := newCreateUseCase(t, appointments, schedule, now)
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
}

func TestExecuteMaxDuration(t *testing.T) {
	schedule := &fakeScheduleRepo{hours: weekdayHours(2)}
	now := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)

	req := validRequest()
	req.StartTime = types.TimeString("12:30")
	req.EndTime = types.TimeString("17:00") // 4.5 hours, limit is 4

	uc := newCreateUseCase(t, &fakeAppointmentRepo{}, schedule, now)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrMaxDuration)
}

func TestExecuteOutsideOperatingHours(t *testing.T) {
	schedule := &fakeScheduleRepo{hours: weekdayHours(2)}
	now := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)

	req := validRequest()
	req.StartTime = types.TimeString("16:30")
	req.EndTime = types.TimeString("17:30")

	uc := newCreateUseCase(t, &fakeAppointmentRepo{}, schedule, now)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)

	// Closed day: 2026-03-08 is a Sunday
	req = validRequest()
	req.Date = testDate.AddDate(0, 0, 4)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

func TestExecuteSlotConflict(t *testing.T) {
	appointments := &fakeAppointmentRepo{}
	schedule := &fakeScheduleRepo{hours: weekdayHours(2)}
	now := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)

	uc := newCreateUseCase(t, appointments, schedule, now)

	// First booking wins the slot
	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// An overlapping second booking loses
	req := validRequest()
	req.UserID = 8
	req.StartTime = types.TimeString("14:00")
	req.EndTime = types.TimeString("15:00")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Back-to-back intervals do not conflict
	req = validRequest()
	req.UserID = 8
	req.StartTime = types.TimeString("14:30")
	req.EndTime = types.TimeString("15:30")
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, appointments.appointments, 2)
}

func TestExecuteCancelledDoesNotConflict(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		nextID: 1,
		appointments: []*domain.Appointment{{
			ID:          1,
			EquipmentID: 1,
			UserID:      5,
			StartTime:   time.Date(2026, 3, 4, 13, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2026, 3, 4, 14, 30, 0, 0, time.UTC),
			Status:      domain.StatusCancelled,
		}},
	}
	schedule := &fakeScheduleRepo{hours: weekdayHours(2)}
	now := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)

	uc := newCreateUseCase(t, appointments, schedule, now)
	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecuteEquipmentChecks(t *testing.T) {
	schedule := &fakeScheduleRepo{hours: weekdayHours(2)}
	now := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)
	uc := newCreateUseCase(t, &fakeAppointmentRepo{}, schedule, now)

	req := validRequest()
	req.EquipmentID = 99
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrEquipmentNotFound)
}

func TestExecuteNotSchedulableOnlyBlocksStrictFlow(t *testing.T) {
	conv, err := localtime.NewConverter("UTC")
	require.NoError(t, err)

	schedule := &fakeScheduleRepo{hours: weekdayHours(2)}
	uc := NewUseCase(
		&fakeAppointmentRepo{},
		&fakeEquipmentRepo{equipment: &domain.Equipment{ID: 1, Name: "Oscilloscope", IsSchedulable: false}},
		schedule,
		fakeUserClient{},
		fakeMailSender{},
		fakeTxManager{},
		conv,
		nopLogger{},
	)
	uc.timeProvider = fixedTime{t: time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)}

	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrEquipmentNotSchedulable)

	// Administrators may book unpublished equipment
	req := validRequest()
	req.Strictness = OperatingHoursOnly
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestValidateRequest(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero user", func(r *Request) { r.UserID = 0 }},
		{"zero equipment", func(r *Request) { r.EquipmentID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"missing start", func(r *Request) { r.StartTime = "" }},
		{"missing end", func(r *Request) { r.EndTime = "" }},
		{"start after end", func(r *Request) { r.StartTime = "15:00"; r.EndTime = "14:00" }},
		{"start equals end", func(r *Request) { r.StartTime = "14:00"; r.EndTime = "14:00" }},
		{"off grid", func(r *Request) { r.StartTime = "13:15" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		})
	}

	assert.NoError(t, validateRequest(validRequest()))
}
