package manage_schedule

import (
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
	"github.com/hubtracker/scheduling-service/internal/service/schedule/models"
)

// UpsertHoursRequest HTTP request model рабочих часов дня недели
type UpsertHoursRequest struct {
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "17:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertHoursRequest) ToServiceRequest(dayOfWeek int) *models.UpsertHoursRequest {
	return &models.UpsertHoursRequest{
		DayOfWeek: dayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// AddBlockedDateRequest HTTP request model блокировки даты
type AddBlockedDateRequest struct {
	Date              string  `json:"date"` // "2026-12-25"
	Reason            *string `json:"reason,omitempty"`
	IsAnnualRecurring bool    `json:"isAnnualRecurring,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AddBlockedDateRequest) ToServiceRequest() (*models.AddBlockedDateRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.AddBlockedDateRequest{
		Date:              date,
		Reason:            r.Reason,
		IsAnnualRecurring: r.IsAnnualRecurring,
	}, nil
}

// UpdatePolicyRequest HTTP request model политики бронирования
type UpdatePolicyRequest struct {
	MaxBookingDurationHours float64 `json:"maxBookingDurationHours"`
	MinBookingNoticeHours   float64 `json:"minBookingNoticeHours"`
	BookingAdvanceLimitDays int     `json:"bookingAdvanceLimitDays"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdatePolicyRequest) ToServiceRequest() *models.UpdatePolicyRequest {
	return &models.UpdatePolicyRequest{
		MaxBookingDurationHours: r.MaxBookingDurationHours,
		MinBookingNoticeHours:   r.MinBookingNoticeHours,
		BookingAdvanceLimitDays: r.BookingAdvanceLimitDays,
	}
}
