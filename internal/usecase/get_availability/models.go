package get_availability

import (
	"time"
)

// Request модель запроса доступности сотрудника на дату
type Request struct {
	UserID     int64     // ID пользователя (для логирования, не влияет на результат)
	EmployeeID int64     // ID сотрудника
	Date       time.Time // Дата, на которую запрашивается доступность (без времени)
}

// Interval временной интервал в ответе
type Interval struct {
	Start time.Time
	End   time.Time
}

// Response модель ответа с доступностью сотрудника
type Response struct {
	EmployeeID       int64      // ID сотрудника
	Date             time.Time  // Дата запроса
	WorkingIntervals []Interval // Рабочие окна после применения графика и исключений
	FreeIntervals    []Interval // Свободные интервалы после вычитания визитов и блокировок
}
