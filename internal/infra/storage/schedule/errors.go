package schedule

import "errors"

var (
	// ErrWorkingHoursNotFound возвращается, когда у барбера нет расписания на день недели
	ErrWorkingHoursNotFound = errors.New("schedule.repository: working hours not found")

	// ErrVacationNotFound возвращается, когда у барбера не задан отпуск
	ErrVacationNotFound = errors.New("schedule.repository: vacation not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
