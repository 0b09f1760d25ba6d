package create_appointment

import (
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
	createAppointment "github.com/hubtracker/scheduling-service/internal/usecase/create_appointment"
	"github.com/hubtracker/scheduling-service/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	EquipmentID int64   `json:"equipmentId"`
	Date        string  `json:"date"`      // "2026-01-02"
	StartTime   string  `json:"startTime"` // "10:00"
	EndTime     string  `json:"endTime"`   // "11:30"
	Purpose     *string `json:"purpose,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	EquipmentID   int64   `json:"equipmentId"`
	EquipmentName string  `json:"equipmentName"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	DurationHours float64 `json:"durationHours"`
	Status        string  `json:"status"`
	Purpose       *string `json:"purpose,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// parseError ошибка разбора запроса с сообщением для клиента
type parseError struct {
	err     error
	message string
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64, strictness createAppointment.Strictness) (*createAppointment.Request, *parseError) {
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

	return &createAppointment.Request{
		UserID:      userID,
		EquipmentID: r.EquipmentID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		Purpose:     r.Purpose,
		Notes:       r.Notes,
		Strictness:  strictness,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		EquipmentID:   resp.EquipmentID,
		EquipmentName: resp.EquipmentName,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		DurationHours: resp.DurationHours,
		Status:        resp.Status,
		Purpose:       resp.Purpose,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
