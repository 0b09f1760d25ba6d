package get_equipment_appointments

import (
	"context"

	"github.com/hubtracker/scheduling-service/internal/service/appointments/models"
)

type AppointmentService interface {
	GetEquipmentAppointments(ctx context.Context, req *models.GetEquipmentAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
