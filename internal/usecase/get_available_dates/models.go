package get_available_dates

import "time"

// Request модель запроса на получение доступных дат
type Request struct {
	UserID      int64 // ID пользователя (для логирования, не влияет на результат)
	EquipmentID int64 // ID оборудования
}

// Response модель ответа со списком доступных дат
type Response struct {
	EquipmentID int64           // ID оборудования
	Timezone    string          // IANA-имя организационной таймзоны
	Dates       []AvailableDate // Даты, на которые можно бронировать
}

// AvailableDate одна доступная дата в локальном календаре
type AvailableDate struct {
	Date      time.Time // Локальная полночь даты
	DayOfWeek int       // День недели (0=понедельник .. 6=воскресенье)
	DayName   string    // Название дня недели ("Monday")
	Display   string    // Человекочитаемая подпись ("Monday, Jan 2")
}
