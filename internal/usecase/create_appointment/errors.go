package create_appointment

import "errors"

var (
	// ErrEquipmentNotFound возвращается, когда оборудование не найдено
	ErrEquipmentNotFound = errors.New("create_appointment: equipment not found")

	// ErrEquipmentNotSchedulable возвращается, когда оборудование нельзя бронировать
	ErrEquipmentNotSchedulable = errors.New("create_appointment: equipment is not schedulable")

	// ErrOutsideOperatingHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideOperatingHours = errors.New("create_appointment: requested time is outside operating hours")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим бронированием
	ErrSlotConflict = errors.New("create_appointment: slot conflicts with an existing appointment")

	// ErrMinNotice возвращается, когда начало нарушает минимальный срок уведомления
	ErrMinNotice = errors.New("create_appointment: minimum booking notice violated")

	// ErrMaxDuration возвращается, когда длительность превышает максимальную
	ErrMaxDuration = errors.New("create_appointment: maximum booking duration exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
