package schedule

import "errors"

var (
	// ErrHoursNotFound возвращается, когда для дня недели нет рабочих часов
	ErrHoursNotFound = errors.New("schedule.repository: operating hours not found")

	// ErrBlockedDateNotFound возвращается, когда заблокированная дата не найдена
	ErrBlockedDateNotFound = errors.New("schedule.repository: blocked date not found")

	// ErrDuplicateDate возвращается при попытке заблокировать уже заблокированную дату
	ErrDuplicateDate = errors.New("schedule.repository: duplicate blocked date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
