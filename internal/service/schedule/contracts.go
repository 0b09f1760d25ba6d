package schedule

import (
	"context"
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListOperatingHours(ctx context.Context) ([]*domain.OperatingHours, error)
	UpsertOperatingHours(ctx context.Context, hours *domain.OperatingHours) (*domain.OperatingHours, error)
	DeleteOperatingHours(ctx context.Context, dayOfWeek int) error

	ListBlockedDates(ctx context.Context, from time.Time) ([]*domain.BlockedDate, error)
	CreateBlockedDate(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, id int64) error

	GetPolicy(ctx context.Context) (*domain.SchedulingPolicy, error)
	UpdatePolicy(ctx context.Context, policy *domain.SchedulingPolicy) (*domain.SchedulingPolicy, error)
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
