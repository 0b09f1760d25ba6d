package get_available_dates

import (
	"github.com/hubtracker/scheduling-service/internal/domain"
	availableDates "github.com/hubtracker/scheduling-service/internal/usecase/get_available_dates"
)

// AvailableDateResponse HTTP модель одной доступной даты
type AvailableDateResponse struct {
	Date      string `json:"date"` // "2026-01-02"
	DayOfWeek int    `json:"dayOfWeek"`
	DayName   string `json:"dayName"`
	Display   string `json:"display"` // "Monday, Jan 2"
}

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	EquipmentID int64                   `json:"equipmentId"`
	Timezone    string                  `json:"timezone"`
	Dates       []AvailableDateResponse `json:"dates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *availableDates.Response) *AvailableDatesResponse {
	dates := make([]AvailableDateResponse, 0, len(resp.Dates))
	for _, d := range resp.Dates {
		dates = append(dates, AvailableDateResponse{
			Date:      d.Date.Format(domain.DateFormat),
			DayOfWeek: d.DayOfWeek,
			DayName:   d.DayName,
			Display:   d.Display,
		})
	}

	return &AvailableDatesResponse{
		EquipmentID: resp.EquipmentID,
		Timezone:    resp.Timezone,
		Dates:       dates,
	}
}
