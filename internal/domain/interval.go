package domain

import (
	"errors"
	"sort"
	"time"
)

// ErrInvalidInterval возвращается, когда начало интервала не раньше конца
var ErrInvalidInterval = errors.New("domain: interval start must be before end")

// TimeInterval полуоткрытый временной интервал [Start, End)
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// Validate проверяет инвариант Start < End
func (i TimeInterval) Validate() error {
	if !i.Start.Before(i.End) {
		return ErrInvalidInterval
	}
	return nil
}

// Duration возвращает длительность интервала
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps возвращает true, если интервалы действительно пересекаются
// Граничные случаи пересечением не считаются: интервал, заканчивающийся в 10:00,
// не конфликтует с интервалом, начинающимся в 10:00
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains возвращает true, если момент времени попадает в интервал [Start, End)
func (i TimeInterval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// CoveredBy возвращает true, если интервал целиком лежит внутри одного из windows
func (i TimeInterval) CoveredBy(windows []TimeInterval) bool {
	for _, w := range windows {
		if !i.Start.Before(w.Start) && !i.End.After(w.End) {
			return true
		}
	}
	return false
}

// OccupySource источник занятого интервала
type OccupySource string

const (
	SourceAppointment  OccupySource = "appointment"
	SourceTimeBlock    OccupySource = "timeblock"
	SourceOutsideHours OccupySource = "outside_hours"
)

// OccupiedInterval занятый интервал с указанием источника
type OccupiedInterval struct {
	TimeInterval
	Source   OccupySource
	SourceID int64
}

// SortIntervals сортирует интервалы по времени начала (на месте)
func SortIntervals(intervals []TimeInterval) {
	sort.Slice(intervals, func(a, b int) bool {
		return intervals[a].Start.Before(intervals[b].Start)
	})
}

// SubtractAll вычитает занятые интервалы из рабочих окон
// Стандартное вычитание интервалов: сортировка по началу, проход с отсечением
// и разбиением каждого рабочего окна, пересекающегося с занятым интервалом
// Результат упорядочен и не содержит пересечений
func SubtractAll(working []TimeInterval, occupied []OccupiedInterval) []TimeInterval {
	if len(working) == 0 {
		return []TimeInterval{}
	}

	busy := make([]TimeInterval, 0, len(occupied))
	for _, o := range occupied {
		busy = append(busy, o.TimeInterval)
	}
	SortIntervals(busy)

	free := make([]TimeInterval, 0, len(working))
	for _, w := range working {
		pieces := []TimeInterval{w}
		for _, b := range busy {
			next := make([]TimeInterval, 0, len(pieces))
			for _, p := range pieces {
				if !p.Overlaps(b) {
					next = append(next, p)
					continue
				}
				// Левый остаток до начала занятого интервала
				if p.Start.Before(b.Start) {
					next = append(next, TimeInterval{Start: p.Start, End: b.Start})
				}
				// Правый остаток после конца занятого интервала
				if b.End.Before(p.End) {
					next = append(next, TimeInterval{Start: b.End, End: p.End})
				}
			}
			pieces = next
		}
		free = append(free, pieces...)
	}

	SortIntervals(free)
	return free
}
