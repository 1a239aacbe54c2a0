package notifier

import "errors"

var (
	// ErrDeliveryFailed возвращается, когда шлюз не принял сообщение
	// Отправка считается несостоявшейся и может быть повторена позже
	ErrDeliveryFailed = errors.New("notifier client: delivery failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("notifier client: invalid response")
)
