package messagerule

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило не найдено
	ErrRuleNotFound = errors.New("messagerule.repository: rule not found")

	// ErrAlreadyDispatched возвращается при попытке повторной записи
	// в реестр отправок — пара (appointment_id, rule_id) уже существует
	ErrAlreadyDispatched = errors.New("messagerule.repository: message already dispatched for this appointment and rule")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("messagerule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("messagerule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("messagerule.repository: failed to scan row")
)
