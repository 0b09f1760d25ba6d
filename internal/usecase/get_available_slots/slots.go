package get_available_slots

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
	"github.com/hubtracker/scheduling-service/pkg/types"
)

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

// onSlotGrid проверяет, что время лежит на слот-сетке
func onSlotGrid(t types.TimeString) bool {
	minutes, err := t.Minutes()
	if err != nil {
		return false
	}
	return minutes%domain.SlotStepMinutes == 0
}

// buildStartCandidates генерирует кандидатов времени начала: от открытия
// (для сегодняшней даты - от текущего времени, округленного вверх до
// сетки) с шагом слота, пока целый слот помещается до закрытия.
func buildStartCandidates(hours *domain.OperatingHours, today bool, nowLocal time.Time) ([]types.TimeString, error) {
	first := hours.StartTime
	if today {
		gridNow, ok := ceilToGrid(nowLocal)
		if !ok {
			return []types.TimeString{}, nil
		}
		if gridNow.IsAfter(first) {
			first = gridNow
		}
	}

	candidates := make([]types.TimeString, 0)
	current := first

	for current.IsBefore(hours.EndTime) {
		slotEnd, err := current.AddMinutes(domain.SlotStepMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(hours.EndTime) {
			break
		}

		candidates = append(candidates, current)
		current = slotEnd
	}

	return candidates, nil
}

// overlapsActive проверяет, пересекается ли полуоткрытый интервал
// [start, end) хотя бы с одним активным бронированием.
// Интервалы пересекаются только при строгих неравенствах: бронирование,
// которое заканчивается ровно в start (или начинается ровно в end), не
// считается пересечением.
func overlapsActive(start, end time.Time, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if appt.Overlaps(start, end) {
			return true
		}
	}
	return false
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

// displayTime форматирует локальное время для подписи слота ("3:30 PM")
func displayTime(t types.TimeString) string {
	minutes, err := t.Minutes()
	if err != nil {
		return t.String()
	}
	ref := time.Date(2000, time.January, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return ref.Format(domain.DisplayTimeFormat)
}

// displayEndTime форматирует подпись окончания с длительностью
// бронирования ("3:30 PM (1.5 h)")
func displayEndTime(t types.TimeString, durationHours float64) string {
	return fmt.Sprintf("%s (%s h)", displayTime(t), strconv.FormatFloat(durationHours, 'f', -1, 64))
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, today time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, today.Location())
	return dateOnly.Before(today)
}
