package domain

import "time"

// AppointmentStatus represents the status of an equipment appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusApproved  AppointmentStatus = "approved"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ValidStatus reports whether s is a known appointment status
func ValidStatus(s AppointmentStatus) bool {
	return s == StatusPending || s == StatusApproved || s == StatusCancelled
}

// Appointment represents an equipment booking. StartTime and EndTime are
// absolute UTC instants; all wall-clock rendering happens at the edges.
type Appointment struct {
	ID          int64
	EquipmentID int64
	UserID      int64
	StartTime   time.Time
	EndTime     time.Time
	Status      AppointmentStatus
	Purpose     *string
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment blocks availability.
// Pending and approved appointments hold their slot; cancelled do not.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusApproved
}

// CanBeApproved returns true if the appointment can transition to approved
func (a *Appointment) CanBeApproved() bool {
	return a.Status == StatusPending
}

// Overlaps reports whether the appointment's half-open interval
// [StartTime, EndTime) intersects [start, end).
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && a.EndTime.After(start)
}

// DurationHours returns the booking length in hours
func (a *Appointment) DurationHours() float64 {
	return a.EndTime.Sub(a.StartTime).Hours()
}

// EquipmentAppointmentsFilter фильтр для получения бронирований оборудования
type EquipmentAppointmentsFilter struct {
	EquipmentID     int64              // Обязательный параметр
	From            *time.Time         // Начало периода, UTC (опционально)
	To              *time.Time         // Конец периода, UTC (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые бронирования
}
