package create_appointment

import (
	"fmt"
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
	"github.com/hubtracker/scheduling-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.EquipmentID <= 0 {
		return fmt.Errorf("%w: equipmentID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if !onSlotGrid(req.StartTime) || !onSlotGrid(req.EndTime) {
		return fmt.Errorf("%w: times must fall on the %d-minute grid", ErrInvalidInput, domain.SlotStepMinutes)
	}

	if req.Purpose != nil && len(*req.Purpose) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose exceeds %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// onSlotGrid проверяет, что время лежит на слот-сетке
func onSlotGrid(t types.TimeString) bool {
	minutes, err := t.Minutes()
	if err != nil {
		return false
	}
	return minutes%domain.SlotStepMinutes == 0
}

// formatDisplayTime форматирует локальное время для писем ("3:30 PM")
func formatDisplayTime(t types.TimeString) string {
	minutes, err := t.Minutes()
	if err != nil {
		return t.String()
	}
	ref := time.Date(2000, time.January, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return ref.Format(domain.DisplayTimeFormat)
}
