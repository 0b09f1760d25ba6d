package get_available_dates

import "errors"

var (
	// ErrEquipmentNotFound возвращается, когда оборудование не найдено
	ErrEquipmentNotFound = errors.New("get_available_dates: equipment not found")

	// ErrEquipmentNotSchedulable возвращается, когда оборудование нельзя бронировать
	ErrEquipmentNotSchedulable = errors.New("get_available_dates: equipment is not schedulable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_dates: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_dates: internal error")
)
