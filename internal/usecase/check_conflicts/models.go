package check_conflicts

import (
	"time"
)

// Request модель запроса проверки интервала-кандидата
type Request struct {
	UserID               int64      // ID пользователя (для логирования, не влияет на результат)
	EmployeeID           int64      // ID сотрудника
	Start                time.Time  // Начало интервала-кандидата
	End                  time.Time  // Конец интервала-кандидата
	ExcludeAppointmentID *int64     // Визит, исключаемый из проверки (перенос самого себя)
	Force                bool       // Пропустить проверку попадания в рабочие часы
}

// Conflict запись о блокирующем элементе
type Conflict struct {
	SourceType string    // appointment | timeblock | outside_hours
	SourceID   int64     // ID источника, 0 для outside_hours
	Start      time.Time // Начало блокирующего интервала
	End        time.Time // Конец блокирующего интервала
}

// Response модель ответа проверки конфликтов
type Response struct {
	HasConflicts bool
	Conflicts    []Conflict
}
