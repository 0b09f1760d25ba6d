package list_equipment

import (
	"context"

	"github.com/hubtracker/scheduling-service/internal/domain"
)

type EquipmentRepository interface {
	List(ctx context.Context, schedulableOnly bool) ([]*domain.Equipment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
