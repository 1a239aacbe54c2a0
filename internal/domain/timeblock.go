package domain

import (
	"time"
)

// BlockType тип недоступного интервала
type BlockType string

const (
	BlockBreak    BlockType = "break"
	BlockVacation BlockType = "vacation"
	BlockTraining BlockType = "training"
	BlockSick     BlockType = "sick"
	BlockOther    BlockType = "other"
)

// RecurrenceFrequency частота повторения блока
type RecurrenceFrequency string

const (
	RecurrenceDaily  RecurrenceFrequency = "daily"
	RecurrenceWeekly RecurrenceFrequency = "weekly"
)

// RecurrencePattern шаблон повторения блока
// Хранится как часть блока; разворачивается в конкретные интервалы только
// для запрошенного диапазона — сам шаблон никогда не мутируется
type RecurrencePattern struct {
	Frequency RecurrenceFrequency
	Interval  int        // каждые N дней/недель, минимум 1
	Until     *time.Time // nil = без ограничения
}

// TimeBlock недоступный для бронирования интервал сотрудника
// Одноразовый или повторяющийся (перерыв, отпуск, обучение, болезнь, прочее)
type TimeBlock struct {
	ID         int64
	EmployeeID int64
	Type       BlockType
	Title      *string
	StartTime  time.Time
	EndTime    time.Time
	AllDay     bool
	Recurrence *RecurrencePattern
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRecurring возвращает true для повторяющегося блока
func (b *TimeBlock) IsRecurring() bool {
	return b.Recurrence != nil
}

// IsValidBlockType проверяет допустимость типа блока
func IsValidBlockType(t BlockType) bool {
	switch t {
	case BlockBreak, BlockVacation, BlockTraining, BlockSick, BlockOther:
		return true
	}
	return false
}

// baseInterval возвращает базовый интервал блока с учетом allDay
func (b *TimeBlock) baseInterval() TimeInterval {
	if b.AllDay {
		day := DateOnly(b.StartTime)
		return TimeInterval{Start: day, End: day.AddDate(0, 0, 1)}
	}
	return TimeInterval{Start: b.StartTime, End: b.EndTime}
}

// Occurrences разворачивает блок в конкретные занятые интервалы,
// пересекающиеся с диапазоном [from, to)
//
// Чистая функция шаблона и диапазона: результат строго ограничен диапазоном
// вызывающей стороны, неограниченные последовательности не материализуются.
// Детерминирована — повторный вызов с тем же диапазоном дает тот же результат
func (b *TimeBlock) Occurrences(from, to time.Time) []TimeInterval {
	base := b.baseInterval()
	queryRange := TimeInterval{Start: from, End: to}

	if !b.IsRecurring() {
		if base.Overlaps(queryRange) {
			return []TimeInterval{base}
		}
		return []TimeInterval{}
	}

	step := b.Recurrence.Interval
	if step < 1 {
		step = 1
	}

	var stride time.Duration
	switch b.Recurrence.Frequency {
	case RecurrenceWeekly:
		stride = time.Duration(step) * 7 * 24 * time.Hour
	default:
		stride = time.Duration(step) * 24 * time.Hour
	}

	occurrences := make([]TimeInterval, 0)
	duration := base.End.Sub(base.Start)

	// Перематываем к первому вхождению, которое может пересечь диапазон,
	// вместо итерации от начала шаблона
	start := base.Start
	if start.Add(duration).Before(from) {
		gap := from.Sub(start.Add(duration))
		skip := gap / stride
		start = start.Add(skip * stride)
	}

	for !start.After(to) {
		if b.Recurrence.Until != nil && start.After(*b.Recurrence.Until) {
			break
		}
		occ := TimeInterval{Start: start, End: start.Add(duration)}
		if occ.Overlaps(queryRange) {
			occurrences = append(occurrences, occ)
		}
		start = start.Add(stride)
	}

	return occurrences
}
