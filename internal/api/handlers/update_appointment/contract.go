package update_appointment

import (
	"context"

	"github.com/hubtracker/scheduling-service/internal/service/appointments/models"
)

type AppointmentService interface {
	Update(ctx context.Context, appointmentID int64, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
