package timetable

import "errors"

var (
	// ErrTimetableNotFound возвращается, когда график не найден
	ErrTimetableNotFound = errors.New("timetable.repository: timetable not found")

	// ErrExceptionNotFound возвращается, когда исключение не найдено
	ErrExceptionNotFound = errors.New("timetable.repository: exception not found")

	// ErrExceptionExists возвращается при попытке создать второе исключение
	// на ту же дату — уникальность (timetable_id, date) закреплена схемой
	ErrExceptionExists = errors.New("timetable.repository: exception for this date already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timetable.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timetable.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timetable.repository: failed to scan row")
)
