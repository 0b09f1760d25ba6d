package models

import (
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
	"github.com/hubtracker/scheduling-service/pkg/types"
)

// Request модели

// UpsertHoursRequest запрос на установку рабочих часов дня недели
type UpsertHoursRequest struct {
	DayOfWeek int    `json:"-"`
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "17:00"
}

// AddBlockedDateRequest запрос на блокировку даты
type AddBlockedDateRequest struct {
	Date              time.Time `json:"-"` // Локальная дата
	Reason            *string   `json:"reason,omitempty"`
	IsAnnualRecurring bool      `json:"isAnnualRecurring,omitempty"`
}

// ToDomainBlockedDate конвертирует request в domain модель
func (r *AddBlockedDateRequest) ToDomainBlockedDate() *domain.BlockedDate {
	return &domain.BlockedDate{
		Date:              r.Date,
		Reason:            r.Reason,
		IsAnnualRecurring: r.IsAnnualRecurring,
	}
}

// UpdatePolicyRequest запрос на обновление политики бронирования
type UpdatePolicyRequest struct {
	MaxBookingDurationHours float64 `json:"maxBookingDurationHours"`
	MinBookingNoticeHours   float64 `json:"minBookingNoticeHours"`
	BookingAdvanceLimitDays int     `json:"bookingAdvanceLimitDays"`
}

// ToDomainPolicy конвертирует request в domain модель
func (r *UpdatePolicyRequest) ToDomainPolicy() *domain.SchedulingPolicy {
	return &domain.SchedulingPolicy{
		ID:                      domain.SchedulingPolicyID,
		MaxBookingDurationHours: r.MaxBookingDurationHours,
		MinBookingNoticeHours:   r.MinBookingNoticeHours,
		BookingAdvanceLimitDays: r.BookingAdvanceLimitDays,
	}
}

// Response модели

// OperatingHoursResponse рабочие часы одного дня недели
type OperatingHoursResponse struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0=понедельник .. 6=воскресенье
	DayName   string `json:"dayName"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// BlockedDateResponse заблокированная дата
type BlockedDateResponse struct {
	ID                int64   `json:"id"`
	Date              string  `json:"date"` // "2026-12-25"
	Reason            *string `json:"reason,omitempty"`
	IsAnnualRecurring bool    `json:"isAnnualRecurring"`
}

// PolicyResponse политика бронирования
type PolicyResponse struct {
	MaxBookingDurationHours float64 `json:"maxBookingDurationHours"`
	MinBookingNoticeHours   float64 `json:"minBookingNoticeHours"`
	BookingAdvanceLimitDays int     `json:"bookingAdvanceLimitDays"`
}

// ScheduleConfigResponse полная конфигурация расписания
type ScheduleConfigResponse struct {
	Timezone     string                   `json:"timezone"`
	Hours        []OperatingHoursResponse `json:"operatingHours"`
	BlockedDates []BlockedDateResponse    `json:"blockedDates"`
	Policy       PolicyResponse           `json:"policy"`
}

// Методы конвертации

// FromDomainHours конвертирует domain модель в DTO
func FromDomainHours(h *domain.OperatingHours) *OperatingHoursResponse {
	if h == nil {
		return nil
	}

	return &OperatingHoursResponse{
		DayOfWeek: h.DayOfWeek,
		DayName:   domain.DayName(h.DayOfWeek),
		StartTime: h.StartTime.String(),
		EndTime:   h.EndTime.String(),
	}
}

// FromDomainHoursList конвертирует список domain моделей в DTO
func FromDomainHoursList(hours []*domain.OperatingHours) []OperatingHoursResponse {
	result := make([]OperatingHoursResponse, 0, len(hours))
	for _, h := range hours {
		if resp := FromDomainHours(h); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}

// FromDomainBlockedDate конвертирует domain модель в DTO
func FromDomainBlockedDate(b *domain.BlockedDate) *BlockedDateResponse {
	if b == nil {
		return nil
	}

	return &BlockedDateResponse{
		ID:                b.ID,
		Date:              b.Date.Format(domain.DateFormat),
		Reason:            b.Reason,
		IsAnnualRecurring: b.IsAnnualRecurring,
	}
}

// FromDomainBlockedDateList конвертирует список domain моделей в DTO
func FromDomainBlockedDateList(blocked []*domain.BlockedDate) []BlockedDateResponse {
	result := make([]BlockedDateResponse, 0, len(blocked))
	for _, b := range blocked {
		if resp := FromDomainBlockedDate(b); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.SchedulingPolicy) PolicyResponse {
	return PolicyResponse{
		MaxBookingDurationHours: p.MaxBookingDurationHours,
		MinBookingNoticeHours:   p.MinBookingNoticeHours,
		BookingAdvanceLimitDays: p.BookingAdvanceLimitDays,
	}
}

// ParseTimeStrings разбирает строки рабочих часов в типизированные времена
func (r *UpsertHoursRequest) ParseTimeStrings() (start, end types.TimeString, err error) {
	start, err = types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return "", "", err
	}
	end, err = types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return "", "", err
	}
	return start, end, nil
}
