package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда бронирование не найдено
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAlreadyCancelled возвращается при повторной отмене бронирования
	ErrAlreadyCancelled = errors.New("appointment is already cancelled")

	// ErrCannotApprove возвращается, когда бронирование нельзя подтвердить
	ErrCannotApprove = errors.New("appointment cannot be approved")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrOutsideOperatingHours возвращается, когда новый интервал выходит за рабочие часы
	ErrOutsideOperatingHours = errors.New("requested time is outside operating hours")

	// ErrSlotConflict возвращается, когда новый интервал пересекается с другим бронированием
	ErrSlotConflict = errors.New("slot conflicts with an existing appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
