package schedule

import "errors"

var (
	// ErrHoursNotFound возвращается, когда для дня недели нет рабочих часов
	ErrHoursNotFound = errors.New("operating hours not found")

	// ErrBlockedDateNotFound возвращается, когда заблокированная дата не найдена
	ErrBlockedDateNotFound = errors.New("blocked date not found")

	// ErrDuplicateDate возвращается при повторной блокировке той же даты
	ErrDuplicateDate = errors.New("date is already blocked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
