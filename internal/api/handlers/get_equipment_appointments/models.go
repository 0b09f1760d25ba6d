package get_equipment_appointments

import (
	"strconv"
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
	"github.com/hubtracker/scheduling-service/internal/service/appointments/models"
	"github.com/hubtracker/scheduling-service/pkg/localtime"
	"github.com/hubtracker/scheduling-service/pkg/types"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Локальные даты from/to переводятся в UTC-границы суток.
func ToServiceRequest(
	equipmentID int64,
	conv *localtime.Converter,
	fromStr, toStr, statusStr, includeInactiveStr string,
) (*models.GetEquipmentAppointmentsRequest, error) {
	req := &models.GetEquipmentAppointmentsRequest{
		EquipmentID: equipmentID,
	}

	if fromStr != "" {
		fromDate, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		from, err := conv.ToUTC(fromDate, types.TimeString("00:00"))
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		toDate, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		// Верхняя граница - конец локальных суток (полночь следующего дня)
		to, err := conv.ToUTC(toDate.AddDate(0, 0, 1), types.TimeString("00:00"))
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
