package process_messages

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило не найдено
	ErrRuleNotFound = errors.New("automatic message rule not found")

	// ErrRuleInactive возвращается при попытке обработать выключенное правило
	ErrRuleInactive = errors.New("automatic message rule is inactive")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
