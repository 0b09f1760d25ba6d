package get_available_slots

import (
	"context"
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	// GetByEquipmentWithFilter получает бронирования оборудования, пересекающиеся с интервалом фильтра
	GetByEquipmentWithFilter(ctx context.Context, filter domain.EquipmentAppointmentsFilter) ([]*domain.Appointment, error)
}

// EquipmentRepository интерфейс репозитория оборудования
type EquipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetOperatingHours(ctx context.Context, dayOfWeek int) (*domain.OperatingHours, error)
	ListBlockedDates(ctx context.Context, from time.Time) ([]*domain.BlockedDate, error)
	GetPolicy(ctx context.Context) (*domain.SchedulingPolicy, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
