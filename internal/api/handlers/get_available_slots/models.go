package get_available_slots

import (
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
	availableSlots "github.com/hubtracker/scheduling-service/internal/usecase/get_available_slots"
	"github.com/hubtracker/scheduling-service/pkg/types"
)

// parseError ошибка разбора query параметров с сообщением для клиента
type parseError struct {
	err     error
	message string
}

// ToUseCaseRequest разбирает query параметры в модель use case
func ToUseCaseRequest(userID, equipmentID int64, dateStr, startTimeStr string) (*availableSlots.Request, *parseError) {
	if dateStr == "" {
		return nil, &parseError{err: nil, message: msgMissingDate}
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, &parseError{err: err, message: msgInvalidDate}
	}

	req := &availableSlots.Request{
		UserID:      userID,
		EquipmentID: equipmentID,
		Date:        date,
	}

	if startTimeStr != "" {
		startTime, err := types.NewTimeStringFromString(startTimeStr)
		if err != nil {
			return nil, &parseError{err: err, message: msgInvalidStartTime}
		}
		req.StartTime = &startTime
	}

	return req, nil
}

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Time          string   `json:"time"`    // "10:30"
	Display       string   `json:"display"` // "10:30 AM" / "12:00 PM (1.5 h)"
	DurationHours *float64 `json:"durationHours,omitempty"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	EquipmentID int64          `json:"equipmentId"`
	Date        string         `json:"date"`
	StartTime   *string        `json:"startTime,omitempty"`
	Slots       []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *availableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:          s.Time.String(),
			Display:       s.Display,
			DurationHours: s.DurationHours,
		})
	}

	out := &SlotsResponse{
		EquipmentID: resp.EquipmentID,
		Date:        resp.Date.Format(domain.DateFormat),
		Slots:       slots,
	}

	if resp.StartTime != nil {
		startStr := resp.StartTime.String()
		out.StartTime = &startStr
	}

	return out
}
