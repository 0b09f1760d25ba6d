package get_available_slots

import "errors"

var (
	// ErrEquipmentNotFound возвращается, когда оборудование не найдено
	ErrEquipmentNotFound = errors.New("get_available_slots: equipment not found")

	// ErrEquipmentNotSchedulable возвращается, когда оборудование нельзя бронировать
	ErrEquipmentNotSchedulable = errors.New("get_available_slots: equipment is not schedulable")

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает окно advance_limit
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrDateBlocked возвращается, когда дата заблокирована администратором
	ErrDateBlocked = errors.New("get_available_slots: date is blocked")

	// ErrClosedOnDate возвращается, когда на день недели даты нет рабочих часов
	ErrClosedOnDate = errors.New("get_available_slots: hub is closed on this date")

	// ErrInvalidStartTime возвращается, когда startTime вне рабочих часов или вне слот-сетки
	ErrInvalidStartTime = errors.New("get_available_slots: invalid start time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
