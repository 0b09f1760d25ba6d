package create_appointment

import (
	"time"

	"github.com/hubtracker/scheduling-service/pkg/types"
)

// Strictness уровень проверок при создании бронирования
type Strictness int

const (
	// StrictPolicy полный набор проверок: schedulable, min_notice,
	// max_duration, рабочие часы и пересечения (публичный поток)
	StrictPolicy Strictness = iota

	// OperatingHoursOnly административный поток: только рабочие часы и
	// пересечения, политика и признак schedulable пропускаются
	OperatingHoursOnly
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID      int64            // ID пользователя
	EquipmentID int64            // ID оборудования
	Date        time.Time        // Локальная дата бронирования (без времени)
	StartTime   types.TimeString // Локальное время начала ("10:00")
	EndTime     types.TimeString // Локальное время окончания ("11:30")
	Purpose     *string          // Цель использования (опционально)
	Notes       *string          // Дополнительные заметки (опционально)
	Strictness  Strictness       // Уровень проверок (выбирается хендлером по роли)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64            // ID созданного бронирования
	UserID        int64            // ID пользователя
	EquipmentID   int64            // ID оборудования
	EquipmentName string           // Название оборудования
	Date          time.Time        // Локальная дата бронирования
	StartTime     types.TimeString // Локальное время начала
	EndTime       types.TimeString // Локальное время окончания
	DurationHours float64          // Длительность в часах
	Status        string           // Статус бронирования
	Purpose       *string          // Цель использования
	Notes         *string          // Заметки

	CreatedAt time.Time // Время создания (UTC)
	UpdatedAt time.Time // Время обновления (UTC)
}
