package domain

import (
	"time"

	"github.com/salonbw/SBW-SchedulingService/pkg/types"
)

// ExceptionType тип исключения из графика
type ExceptionType string

const (
	ExceptionDayOff      ExceptionType = "day_off"
	ExceptionCustomHours ExceptionType = "custom_hours"
	ExceptionVacation    ExceptionType = "vacation"
)

// Timetable версионированный недельный шаблон рабочих часов сотрудника
// При изменении графика не мутируется: создается новый Timetable с более
// поздним validFrom, который закрывает validTo предыдущего
type Timetable struct {
	ID         int64
	EmployeeID int64
	Name       string
	ValidFrom  time.Time
	ValidTo    *time.Time // nil = без ограничения
	IsActive   bool
	Slots      []TimetableSlot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimetableSlot слот недельного шаблона
// isBreak = true — перерыв, вырезаемый из рабочего дня (например, обед)
type TimetableSlot struct {
	ID          int64
	TimetableID int64
	DayOfWeek   int // 0 = понедельник ... 6 = воскресенье (ISO)
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsBreak     bool
	Notes       *string
}

// TimetableException исключение на одну дату: выходной или кастомные часы
// Уникально по (timetableId, date); влияет на доступность только после одобрения
type TimetableException struct {
	ID          int64
	TimetableID int64
	Date        time.Time // только дата, время обнулено
	Type        ExceptionType
	Title       *string
	Reason      *string

	CustomStartTime *types.TimeString
	CustomEndTime   *types.TimeString
	IsAllDay        bool

	// Workflow одобрения: isPending = true до установки approvedById/approvedAt
	IsPending    bool
	CreatedByID  int64
	ApprovedByID *int64
	ApprovedAt   *time.Time

	CreatedAt time.Time
}

// IsApproved возвращает true для одобренного исключения
// Резолвер графика учитывает только одобренные исключения
func (e *TimetableException) IsApproved() bool {
	return !e.IsPending && e.ApprovedByID != nil
}

// IsDayOff возвращает true, если исключение означает полный выходной
func (e *TimetableException) IsDayOff() bool {
	if e.Type == ExceptionCustomHours {
		return false
	}
	return true
}

// CoversDate проверяет, что timetable действует на указанную дату
func (t *Timetable) CoversDate(date time.Time) bool {
	day := DateOnly(date)
	if day.Before(DateOnly(t.ValidFrom)) {
		return false
	}
	if t.ValidTo != nil && day.After(DateOnly(*t.ValidTo)) {
		return false
	}
	return true
}

// ISODayOfWeek возвращает день недели в ISO-нумерации (0 = понедельник)
func ISODayOfWeek(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// DateOnly обнуляет время, оставляя только дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ResolveWorkingIntervals вычисляет рабочие интервалы сотрудника на дату
// по недельному шаблону и одобренному исключению (если есть)
//
// Алгоритм:
//  1. Нет действующего активного графика — ноль рабочих интервалов (fail closed)
//  2. Одобренное исключение: выходной — пусто; кастомные часы — одно окно
//  3. Иначе — слоты шаблона на день недели (isBreak=false) минус перерывы (isBreak=true)
//
// Исключение в статусе pending доступность НЕ меняет
func ResolveWorkingIntervals(tt *Timetable, exc *TimetableException, date time.Time) ([]TimeInterval, error) {
	if tt == nil || !tt.IsActive || !tt.CoversDate(date) {
		return []TimeInterval{}, nil
	}

	if exc != nil && exc.IsApproved() {
		if exc.IsDayOff() || exc.CustomStartTime == nil || exc.CustomEndTime == nil {
			return []TimeInterval{}, nil
		}
		start, err := exc.CustomStartTime.At(date)
		if err != nil {
			return nil, err
		}
		end, err := exc.CustomEndTime.At(date)
		if err != nil {
			return nil, err
		}
		window := TimeInterval{Start: start, End: end}
		if err := window.Validate(); err != nil {
			return nil, err
		}
		return []TimeInterval{window}, nil
	}

	weekday := ISODayOfWeek(date)

	working := make([]TimeInterval, 0)
	breaks := make([]OccupiedInterval, 0)

	for _, slot := range tt.Slots {
		if slot.DayOfWeek != weekday {
			continue
		}
		start, err := slot.StartTime.At(date)
		if err != nil {
			return nil, err
		}
		end, err := slot.EndTime.At(date)
		if err != nil {
			return nil, err
		}
		iv := TimeInterval{Start: start, End: end}
		if err := iv.Validate(); err != nil {
			return nil, err
		}
		if slot.IsBreak {
			breaks = append(breaks, OccupiedInterval{TimeInterval: iv})
		} else {
			working = append(working, iv)
		}
	}

	return SubtractAll(working, breaks), nil
}
