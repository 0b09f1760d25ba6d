package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubtracker/scheduling-service/internal/domain"
	appointmentRepo "github.com/hubtracker/scheduling-service/internal/infra/storage/appointment"
	scheduleRepo "github.com/hubtracker/scheduling-service/internal/infra/storage/schedule"
	"github.com/hubtracker/scheduling-service/internal/service/appointments/models"
	"github.com/hubtracker/scheduling-service/pkg/localtime"
	"github.com/hubtracker/scheduling-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
}

func newFakeAppointmentRepo(appointments ...*domain.Appointment) *fakeAppointmentRepo {
	repo := &fakeAppointmentRepo{appointments: make(map[int64]*domain.Appointment)}
	for _, appt := range appointments {
		repo.appointments[appt.ID] = appt
	}
	return repo
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := r.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (r *fakeAppointmentRepo) GetByUserID(_ context.Context, userID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, appt := range r.appointments {
		if appt.UserID != userID {
			continue
		}
		if status != nil && appt.Status != *status {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

func (r *fakeAppointmentRepo) GetByEquipmentWithFilter(_ context.Context, filter domain.EquipmentAppointmentsFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, appt := range r.appointments {
		if appt.EquipmentID != filter.EquipmentID {
			continue
		}
		if !filter.IncludeInactive && !appt.IsActive() {
			continue
		}
		if filter.From != nil && filter.To != nil && !appt.Overlaps(*filter.From, *filter.To) {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	appt, ok := r.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	return nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, id int64, appt *domain.Appointment) (*domain.Appointment, error) {
	if _, ok := r.appointments[id]; !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *appt
	copied.ID = id
	r.appointments[id] = &copied
	return &copied, nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	delete(r.appointments, id)
	return nil
}

type fakeScheduleRepo struct {
	hours map[int]*domain.OperatingHours
}

func (r *fakeScheduleRepo) GetOperatingHours(_ context.Context, dayOfWeek int) (*domain.OperatingHours, error) {
	hours, ok := r.hours[dayOfWeek]
	if !ok {
		return nil, scheduleRepo.ErrHoursNotFound
	}
	return hours, nil
}

// 2026-03-04 is a Wednesday
var testDate = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

func testAppointment(id, userID int64, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:          id,
		EquipmentID: 1,
		UserID:      userID,
		StartTime:   time.Date(2026, 3, 4, 13, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 3, 4, 14, 30, 0, 0, time.UTC),
		Status:      status,
	}
}

func newTestService(t *testing.T, repo *fakeAppointmentRepo) *Service {
	t.Helper()
	conv, err := localtime.NewConverter("UTC")
	require.NoError(t, err)

	schedule := &fakeScheduleRepo{hours: map[int]*domain.OperatingHours{
		0: {DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"},
		1: {DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		2: {DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
		3: {DayOfWeek: 3, StartTime: "09:00", EndTime: "17:00"},
		4: {DayOfWeek: 4, StartTime: "09:00", EndTime: "17:00"},
	}}

	return NewService(repo, schedule, fakeTxManager{}, conv, nopLogger{})
}

func TestGetByIDAccessControl(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, 7, domain.StatusApproved))
	svc := newTestService(t, repo)
	ctx := context.Background()

	// Owner sees their own appointment
	resp, err := svc.GetByID(ctx, 1, 7, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2026-03-04", resp.Date)
	assert.Equal(t, "13:00", resp.StartTime)
	assert.Equal(t, "14:30", resp.EndTime)

	// Another trainee does not
	_, err = svc.GetByID(ctx, 1, 8, false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// An administrator sees everything
	_, err = svc.GetByID(ctx, 1, 8, true)
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, 99, 7, false)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetUserAppointmentsAccessControl(t *testing.T) {
	repo := newFakeAppointmentRepo(
		testAppointment(1, 7, domain.StatusApproved),
		testAppointment(2, 7, domain.StatusCancelled),
	)
	svc := newTestService(t, repo)
	ctx := context.Background()

	resp, err := svc.GetUserAppointments(ctx, &models.GetUserAppointmentsRequest{UserID: 7, RequesterID: 7})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)

	_, err = svc.GetUserAppointments(ctx, &models.GetUserAppointmentsRequest{UserID: 7, RequesterID: 8})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err = svc.GetUserAppointments(ctx, &models.GetUserAppointmentsRequest{UserID: 7, RequesterID: 8, IsAdmin: true})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)
}

func TestCancel(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, 7, domain.StatusApproved))
	svc := newTestService(t, repo)
	ctx := context.Background()

	// A stranger cannot cancel
	err := svc.Cancel(ctx, 1, &models.CancelAppointmentRequest{UserID: 8})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// The owner can
	err = svc.Cancel(ctx, 1, &models.CancelAppointmentRequest{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.appointments[1].Status)

	// Cancellation is terminal
	err = svc.Cancel(ctx, 1, &models.CancelAppointmentRequest{UserID: 7})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	err = svc.Cancel(ctx, 99, &models.CancelAppointmentRequest{UserID: 7})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancelByAdmin(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, 7, domain.StatusPending))
	svc := newTestService(t, repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 99, IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.appointments[1].Status)
}

func TestApprove(t *testing.T) {
	repo := newFakeAppointmentRepo(
		testAppointment(1, 7, domain.StatusPending),
		testAppointment(2, 7, domain.StatusCancelled),
	)
	svc := newTestService(t, repo)
	ctx := context.Background()

	require.NoError(t, svc.Approve(ctx, 1))
	assert.Equal(t, domain.StatusApproved, repo.appointments[1].Status)

	// Only pending appointments can be approved
	assert.ErrorIs(t, svc.Approve(ctx, 1), ErrCannotApprove)
	assert.ErrorIs(t, svc.Approve(ctx, 2), ErrCannotApprove)
	assert.ErrorIs(t, svc.Approve(ctx, 99), ErrAppointmentNotFound)
}

func TestUpdateMovesAppointment(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, 7, domain.StatusApproved))
	svc := newTestService(t, repo)

	resp, err := svc.Update(context.Background(), 1, &models.UpdateAppointmentRequest{
		Date:      testDate,
		StartTime: types.TimeString("15:00"),
		EndTime:   types.TimeString("16:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "15:00", resp.StartTime)
	assert.Equal(t, "16:00", resp.EndTime)
	assert.Equal(t, time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC), repo.appointments[1].StartTime)
}

func TestUpdateExcludesSelfFromConflictCheck(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, 7, domain.StatusApproved))
	svc := newTestService(t, repo)

	// Shifting within its own interval must not conflict with itself
	_, err := svc.Update(context.Background(), 1, &models.UpdateAppointmentRequest{
		Date:      testDate,
		StartTime: types.TimeString("13:30"),
		EndTime:   types.TimeString("14:30"),
	})
	require.NoError(t, err)
}

func TestUpdateDetectsConflicts(t *testing.T) {
	other := testAppointment(2, 8, domain.StatusApproved)
	other.StartTime = time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	other.EndTime = time.Date(2026, 3, 4, 16, 0, 0, 0, time.UTC)

	repo := newFakeAppointmentRepo(testAppointment(1, 7, domain.StatusApproved), other)
	svc := newTestService(t, repo)

	_, err := svc.Update(context.Background(), 1, &models.UpdateAppointmentRequest{
		Date:      testDate,
		StartTime: types.TimeString("14:30"),
		EndTime:   types.TimeString("15:30"),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestUpdateOutsideOperatingHours(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, 7, domain.StatusApproved))
	svc := newTestService(t, repo)

	_, err := svc.Update(context.Background(), 1, &models.UpdateAppointmentRequest{
		Date:      testDate,
		StartTime: types.TimeString("16:30"),
		EndTime:   types.TimeString("17:30"),
	})
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)

	// 2026-03-08 is a Sunday
	_, err = svc.Update(context.Background(), 1, &models.UpdateAppointmentRequest{
		Date:      testDate.AddDate(0, 0, 4),
		StartTime: types.TimeString("13:00"),
		EndTime:   types.TimeString("14:00"),
	})
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

func TestDelete(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, 7, domain.StatusApproved))
	svc := newTestService(t, repo)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 1))
	assert.Empty(t, repo.appointments)
	assert.ErrorIs(t, svc.Delete(ctx, 1), ErrAppointmentNotFound)
}

func TestGetEquipmentAppointmentsFiltersInactive(t *testing.T) {
	repo := newFakeAppointmentRepo(
		testAppointment(1, 7, domain.StatusApproved),
		testAppointment(2, 8, domain.StatusCancelled),
	)
	svc := newTestService(t, repo)
	ctx := context.Background()

	resp, err := svc.GetEquipmentAppointments(ctx, &models.GetEquipmentAppointmentsRequest{EquipmentID: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	resp, err = svc.GetEquipmentAppointments(ctx, &models.GetEquipmentAppointmentsRequest{EquipmentID: 1, IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)
}
