package timetables

import "errors"

var (
	// ErrExceptionNotFound возвращается, когда исключение не найдено
	ErrExceptionNotFound = errors.New("timetable exception not found")

	// ErrExceptionExists возвращается, когда на дату уже есть исключение
	ErrExceptionExists = errors.New("timetable exception for this date already exists")

	// ErrAlreadyApproved возвращается при повторном одобрении исключения
	ErrAlreadyApproved = errors.New("timetable exception already approved")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
