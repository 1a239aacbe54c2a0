package domain

import "time"

// Conflict запись о блокирующем элементе при проверке конфликтов
type Conflict struct {
	SourceType OccupySource
	SourceID   int64
	Start      time.Time
	End        time.Time
}

// FindConflicts проверяет интервал-кандидат против рабочих окон и занятых интервалов
// Возвращает ВСЕ блокирующие записи, а не только первую, чтобы вызывающая сторона
// могла показать полный список причин отказа
//
// Кандидат вне всех рабочих окон добавляет конфликт с источником outside_hours,
// если не включен принудительный режим (force)
func FindConflicts(candidate TimeInterval, working []TimeInterval, occupied []OccupiedInterval, force bool) []Conflict {
	conflicts := make([]Conflict, 0)

	if !force && !candidate.CoveredBy(working) {
		conflicts = append(conflicts, Conflict{
			SourceType: SourceOutsideHours,
			Start:      candidate.Start,
			End:        candidate.End,
		})
	}

	for _, occ := range occupied {
		if candidate.Overlaps(occ.TimeInterval) {
			conflicts = append(conflicts, Conflict{
				SourceType: occ.Source,
				SourceID:   occ.SourceID,
				Start:      occ.Start,
				End:        occ.End,
			})
		}
	}

	return conflicts
}
