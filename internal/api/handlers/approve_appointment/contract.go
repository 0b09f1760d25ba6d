package approve_appointment

import "context"

type AppointmentService interface {
	Approve(ctx context.Context, appointmentID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
