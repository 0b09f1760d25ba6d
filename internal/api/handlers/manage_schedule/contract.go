package manage_schedule

import (
	"context"

	"github.com/hubtracker/scheduling-service/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertHours(ctx context.Context, req *models.UpsertHoursRequest) (*models.OperatingHoursResponse, error)
	DeleteHours(ctx context.Context, dayOfWeek int) error
	AddBlockedDate(ctx context.Context, req *models.AddBlockedDateRequest) (*models.BlockedDateResponse, error)
	RemoveBlockedDate(ctx context.Context, id int64) error
	UpdatePolicy(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
