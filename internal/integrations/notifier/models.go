package notifier

// Message сообщение для отправки через шлюз уведомлений
type Message struct {
	ClientID      int64  `json:"client_id"`
	AppointmentID int64  `json:"appointment_id"`
	RuleID        int64  `json:"rule_id"`
	Channel       string `json:"channel"` // sms | email
	Content       string `json:"content"`
}

// ErrorResponse модель ошибки от шлюза уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
