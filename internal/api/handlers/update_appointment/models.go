package update_appointment

import (
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
	"github.com/hubtracker/scheduling-service/internal/service/appointments/models"
	"github.com/hubtracker/scheduling-service/pkg/types"
)

// UpdateAppointmentRequest HTTP request model административного
// редактирования бронирования
type UpdateAppointmentRequest struct {
	Date      string  `json:"date"`      // "2026-01-02"
	StartTime string  `json:"startTime"` // "10:00"
	EndTime   string  `json:"endTime"`   // "11:30"
	Status    *string `json:"status,omitempty"`
	Purpose   *string `json:"purpose,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// parseError ошибка разбора запроса с сообщением для клиента
type parseError struct {
	err     error
	message string
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAppointmentRequest) ToServiceRequest() (*models.UpdateAppointmentRequest, *parseError) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, &parseError{err: err, message: msgInvalidDate}
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, &parseError{err: err, message: msgInvalidTime}
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, &parseError{err: err, message: msgInvalidTime}
	}

	return &models.UpdateAppointmentRequest{
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    r.Status,
		Purpose:   r.Purpose,
		Notes:     r.Notes,
	}, nil
}
