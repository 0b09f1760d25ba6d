package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubtracker/scheduling-service/internal/domain"
	"github.com/hubtracker/scheduling-service/internal/usecase/get_available_dates"
	"github.com/hubtracker/scheduling-service/internal/usecase/get_available_slots"
	"github.com/hubtracker/scheduling-service/pkg/localtime"
)

// Every combination the enumeration endpoints offer must be accepted by
// creation when nothing else books in between: dates, then start times for
// each date, then end times for each start, each fed back into Execute over
// identically seeded repositories.
//
// The real clock is used because the enumeration usecases construct their own
// time providers; hours cover all seven days and the notice requirement is
// zero, so today's remaining slots are exercised no matter when the test runs.
func TestEnumeratedSlotsAreAcceptedByCreate(t *testing.T) {
	conv, err := localtime.NewConverter("UTC")
	require.NoError(t, err)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	tomorrow := today.AddDate(0, 0, 1)

	schedule := &fakeScheduleRepo{
		hours: weekdayHours(0, 1, 2, 3, 4, 5, 6),
		blocked: []*domain.BlockedDate{
			{ID: 1, Date: today.AddDate(0, 0, 2)},
		},
		policy: &domain.SchedulingPolicy{
			ID:                      domain.SchedulingPolicyID,
			MaxBookingDurationHours: 4,
			MinBookingNoticeHours:   0,
			BookingAdvanceLimitDays: 7,
		},
	}
	equipment := &fakeEquipmentRepo{
		equipment: &domain.Equipment{ID: 1, Name: "Oscilloscope", IsSchedulable: true},
	}

	// One standing booking so the enumeration has to route around it.
	seedAppointments := func() *fakeAppointmentRepo {
		repo := &fakeAppointmentRepo{}
		_, err := repo.Create(context.Background(), &domain.Appointment{
			EquipmentID: 1,
			UserID:      3,
			StartTime:   tomorrow.Add(10 * time.Hour),
			EndTime:     tomorrow.Add(11 * time.Hour),
			Status:      domain.StatusApproved,
		})
		require.NoError(t, err)
		return repo
	}

	datesUC := get_available_dates.NewUseCase(equipment, schedule, conv, nopLogger{})
	slotsUC := get_available_slots.NewUseCase(seedAppointments(), equipment, schedule, conv, nopLogger{})

	ctx := context.Background()
	datesResp, err := datesUC.Execute(ctx, &get_available_dates.Request{UserID: 7, EquipmentID: 1})
	require.NoError(t, err)
	require.NotEmpty(t, datesResp.Dates)

	combinations := 0
	for _, date := range datesResp.Dates {
		startsResp, err := slotsUC.Execute(ctx, &get_available_slots.Request{
			UserID:      7,
			EquipmentID: 1,
			Date:        date.Date,
		})
		require.NoError(t, err, "start enumeration for %s", date.Date.Format(domain.DateFormat))

		for _, start := range startsResp.Slots {
			startTime := start.Time
			endsResp, err := slotsUC.Execute(ctx, &get_available_slots.Request{
				UserID:      7,
				EquipmentID: 1,
				Date:        date.Date,
				StartTime:   &startTime,
			})
			require.NoError(t, err, "end enumeration for %s %s", date.Date.Format(domain.DateFormat), startTime)
			require.NotEmpty(t, endsResp.Slots)

			for _, end := range endsResp.Slots {
				uc := NewUseCase(
					seedAppointments(),
					equipment,
					schedule,
					fakeUserClient{},
					fakeMailSender{},
					fakeTxManager{},
					conv,
					nopLogger{},
				)

				resp, err := uc.Execute(ctx, &Request{
					UserID:      7,
					EquipmentID: 1,
					Date:        date.Date,
					StartTime:   startTime,
					EndTime:     end.Time,
					Strictness:  StrictPolicy,
				})
				require.NoError(t, err, "create %s %s-%s", date.Date.Format(domain.DateFormat), startTime, end.Time)
				assert.Equal(t, "approved", resp.Status)

				combinations++
			}
		}
	}

	require.NotZero(t, combinations)
}
