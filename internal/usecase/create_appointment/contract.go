package create_appointment

import (
	"context"
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
	"github.com/hubtracker/scheduling-service/internal/integrations/mailer"
	"github.com/hubtracker/scheduling-service/internal/integrations/userdirectory"
)

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByEquipmentWithFilter(ctx context.Context, filter domain.EquipmentAppointmentsFilter) ([]*domain.Appointment, error)
}

// EquipmentRepository интерфейс репозитория оборудования
type EquipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetOperatingHours(ctx context.Context, dayOfWeek int) (*domain.OperatingHours, error)
	GetPolicy(ctx context.Context) (*domain.SchedulingPolicy, error)
}

// UserDirectoryClient интерфейс клиента каталога пользователей
type UserDirectoryClient interface {
	GetUser(ctx context.Context, userID int64) (*userdirectory.User, error)
}

// MailSender интерфейс для отправки уведомлений о бронированиях
type MailSender interface {
	SendAppointmentCreated(n mailer.AppointmentNotification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
