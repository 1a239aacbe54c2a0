package process_messages

// Request модель запроса обработки автоматических сообщений
type Request struct {
	UserID int64  // ID пользователя, запустившего обработку (для логирования)
	RuleID *int64 // Обработать только одно правило; nil — все активные
}

// Outcome итог обработки одной пары (правило, визит)
type Outcome struct {
	RuleID        int64
	AppointmentID int64
	Status        string // sent | skipped | failed
	Detail        string // причина для skipped и failed
}

// Response модель ответа с итогами обработки
type Response struct {
	Sent     int
	Skipped  int
	Failed   int
	Outcomes []Outcome
}
