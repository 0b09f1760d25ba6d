package get_available_dates

import (
	"context"
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
)

// EquipmentRepository интерфейс репозитория оборудования
type EquipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListOperatingHours(ctx context.Context) ([]*domain.OperatingHours, error)
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
