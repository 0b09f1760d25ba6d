package models

import (
	"errors"
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
	"github.com/hubtracker/scheduling-service/pkg/localtime"
	"github.com/hubtracker/scheduling-service/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену бронирования
type CancelAppointmentRequest struct {
	UserID  int64 `json:"userId"`
	IsAdmin bool  `json:"-"`
}

// GetUserAppointmentsRequest запрос на получение бронирований пользователя
type GetUserAppointmentsRequest struct {
	UserID      int64   `json:"userId"`
	RequesterID int64   `json:"-"`
	IsAdmin     bool    `json:"-"`
	Status      *string `json:"status,omitempty"`
}

// GetEquipmentAppointmentsRequest запрос на получение бронирований оборудования
type GetEquipmentAppointmentsRequest struct {
	EquipmentID     int64      `json:"equipmentId"`
	From            *time.Time `json:"from,omitempty"` // Начало периода, UTC (опционально)
	To              *time.Time `json:"to,omitempty"`   // Конец периода, UTC (опционально)
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetEquipmentAppointmentsRequest) ToDomainFilter() (domain.EquipmentAppointmentsFilter, error) {
	filter := domain.EquipmentAppointmentsFilter{
		EquipmentID:     r.EquipmentID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateAppointmentRequest административное редактирование бронирования
type UpdateAppointmentRequest struct {
	Date      time.Time        `json:"-"`       // Локальная дата
	StartTime types.TimeString `json:"-"`       // Локальное время начала
	EndTime   types.TimeString `json:"-"`       // Локальное время окончания
	Status    *string          `json:"status,omitempty"`
	Purpose   *string          `json:"purpose,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными бронирования.
// Даты и времена отдаются в организационной таймзоне.
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	EquipmentID   int64   `json:"equipmentId"`
	Date          string  `json:"date"`      // "2026-01-02"
	StartTime     string  `json:"startTime"` // "10:00"
	EndTime       string  `json:"endTime"`   // "11:30"
	DurationHours float64 `json:"durationHours"`
	Status        string  `json:"status"`
	Purpose       *string `json:"purpose,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком бронирований
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO, переводя
// UTC-моменты в организационную таймзону
func FromDomainAppointment(a *domain.Appointment, conv *localtime.Converter) *AppointmentResponse {
	if a == nil {
		return nil
	}

	date, startTime := conv.FromUTC(a.StartTime)
	_, endTime := conv.FromUTC(a.EndTime)

	return &AppointmentResponse{
		ID:            a.ID,
		UserID:        a.UserID,
		EquipmentID:   a.EquipmentID,
		Date:          date.Format(domain.DateFormat),
		StartTime:     startTime.String(),
		EndTime:       endTime.String(),
		DurationHours: a.DurationHours(),
		Status:        string(a.Status),
		Purpose:       a.Purpose,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment, conv *localtime.Converter) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, appt := range appointments {
		if apptResp := FromDomainAppointment(appt, conv); apptResp != nil {
			resp.Appointments = append(resp.Appointments, *apptResp)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !domain.ValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
