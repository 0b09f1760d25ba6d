package get_available_slots

import (
	"fmt"
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
	"github.com/hubtracker/scheduling-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EquipmentID <= 0 {
		return fmt.Errorf("%w: equipmentID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// validateDate проверяет, что дата попадает в окно бронирования
func validateDate(date, today time.Time, advanceLimitDays int) error {
	if isDateInPast(date, today) {
		return ErrInvalidDate
	}

	maxDate := today.AddDate(0, 0, advanceLimitDays)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, today.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceLimitDays)
	}

	return nil
}

// validateStartTime проверяет, что выбранное время начала лежит на
// слот-сетке и целый слот от него помещается в рабочие часы
func validateStartTime(start types.TimeString, hours *domain.OperatingHours) error {
	if !onSlotGrid(start) {
		return fmt.Errorf("%w: startTime must fall on the %d-minute grid", ErrInvalidStartTime, domain.SlotStepMinutes)
	}

	if start.IsBefore(hours.StartTime) {
		return fmt.Errorf("%w: startTime is before opening time", ErrInvalidStartTime)
	}

	minEnd, err := start.AddMinutes(domain.SlotStepMinutes)
	if err != nil {
		return fmt.Errorf("%w: startTime is too late", ErrInvalidStartTime)
	}
	if minEnd.IsAfter(hours.EndTime) {
		return fmt.Errorf("%w: no room for a slot before closing time", ErrInvalidStartTime)
	}

	return nil
}
