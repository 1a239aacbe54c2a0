package reschedule_appointment

import (
	"time"
)

// Request модель запроса на перенос визита
type Request struct {
	UserID        int64      // ID пользователя, выполняющего перенос
	AppointmentID int64      // ID переносимого визита
	NewStart      time.Time  // Новое время начала
	NewEnd        *time.Time // Новое время конца; nil — вычисляется из длительности услуги
	NewEmployeeID *int64     // Новый исполнитель; nil — визит остается у текущего
	Force         bool       // Пропустить проверку попадания в рабочие часы
}

// Conflict запись о блокирующем элементе
type Conflict struct {
	SourceType string    // appointment | timeblock | outside_hours
	SourceID   int64     // ID источника, 0 для outside_hours
	Start      time.Time // Начало блокирующего интервала
	End        time.Time // Конец блокирующего интервала
}

// Response модель ответа с перенесенным визитом
type Response struct {
	ID         int64
	ClientID   int64
	EmployeeID int64
	ServiceID  int64
	StartTime  time.Time
	EndTime    time.Time
	Status     string
	UpdatedAt  time.Time
}
