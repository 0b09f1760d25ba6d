package get_available_dates

import (
	"fmt"
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
	"github.com/hubtracker/scheduling-service/pkg/types"
)

// hoursByWeekday раскладывает рабочие часы по дням недели.
// Отсутствие дня в карте означает, что хаб в этот день закрыт.
func hoursByWeekday(hours []*domain.OperatingHours) map[int]*domain.OperatingHours {
	byDay := make(map[int]*domain.OperatingHours, len(hours))
	for _, h := range hours {
		byDay[h.DayOfWeek] = h
	}
	return byDay
}

// isDateBlocked проверяет, попадает ли дата под одну из блокировок
func isDateBlocked(date time.Time, blocked []*domain.BlockedDate) bool {
	for _, b := range blocked {
		if b.Matches(date) {
			return true
		}
	}
	return false
}

// ceilToGrid округляет локальное время ВВЕРХ до ближайшей границы
// слот-сетки. Возвращает false, если округление вышло за пределы суток.
func ceilToGrid(local time.Time) (types.TimeString, bool) {
	minutes := local.Hour()*60 + local.Minute()
	if local.Second() > 0 || local.Nanosecond() > 0 {
		minutes++
	}
	if rem := minutes % domain.SlotStepMinutes; rem != 0 {
		minutes += domain.SlotStepMinutes - rem
	}
	if minutes >= 24*60 {
		return "", false
	}
	return types.TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), true
}

// hasSlotRemainingToday проверяет, остался ли на сегодня хотя бы один
// целый слот: первый кандидат - максимум из времени открытия и текущего
// времени, округленного вверх до сетки; его конец не должен выходить за
// время закрытия.
func hasSlotRemainingToday(hours *domain.OperatingHours, nowLocal time.Time) bool {
	gridNow, ok := ceilToGrid(nowLocal)
	if !ok {
		return false
	}

	firstStart := hours.StartTime
	if gridNow.IsAfter(firstStart) {
		firstStart = gridNow
	}

	slotEnd, err := firstStart.AddMinutes(domain.SlotStepMinutes)
	if err != nil {
		return false
	}
	return !slotEnd.IsAfter(hours.EndTime)
}
