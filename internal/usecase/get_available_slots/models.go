package get_available_slots

import (
	"time"

	"github.com/hubtracker/scheduling-service/pkg/types"
)

// Request модель запроса на получение доступных слотов.
// При пустом StartTime перечисляются времена начала, при заданном -
// допустимые времена окончания для этого начала.
type Request struct {
	UserID      int64             // ID пользователя (для логирования, не влияет на результат)
	EquipmentID int64             // ID оборудования
	Date        time.Time         // Локальная дата (без времени)
	StartTime   *types.TimeString // Выбранное время начала (опционально)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	EquipmentID int64             // ID оборудования
	Date        time.Time         // Дата, на которую запрашивались слоты
	StartTime   *types.TimeString // Эхо запрошенного времени начала (режим окончаний)
	Slots       []Slot            // Список доступных слотов
}

// Slot один кандидат слот-сетки
type Slot struct {
	Time          types.TimeString // Локальное время ("10:30")
	Display       string           // Подпись ("10:30 AM" или "12:00 PM (1.5 h)")
	DurationHours *float64         // Длительность бронирования (только в режиме окончаний)
}
