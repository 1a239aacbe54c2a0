package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 16, hour, min, 0, 0, time.UTC)
}

func iv(startHour, startMin, endHour, endMin int) TimeInterval {
	return TimeInterval{Start: at(startHour, startMin), End: at(endHour, endMin)}
}

func TestTimeInterval_Validate(t *testing.T) {
	assert.NoError(t, iv(9, 0, 10, 0).Validate())
	assert.ErrorIs(t, iv(10, 0, 10, 0).Validate(), ErrInvalidInterval)
	assert.ErrorIs(t, iv(11, 0, 10, 0).Validate(), ErrInvalidInterval)
}

func TestTimeInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeInterval
		want bool
	}{
		{"частичное пересечение", iv(9, 0, 11, 0), iv(10, 0, 12, 0), true},
		{"вложенный интервал", iv(9, 0, 18, 0), iv(12, 0, 13, 0), true},
		{"совпадающие интервалы", iv(9, 0, 10, 0), iv(9, 0, 10, 0), true},
		{"касание границ не пересечение", iv(9, 0, 10, 0), iv(10, 0, 11, 0), false},
		{"касание границ в обратном порядке", iv(10, 0, 11, 0), iv(9, 0, 10, 0), false},
		{"непересекающиеся", iv(9, 0, 10, 0), iv(14, 0, 15, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTimeInterval_Contains(t *testing.T) {
	interval := iv(9, 0, 10, 0)

	assert.True(t, interval.Contains(at(9, 0)), "начало включено")
	assert.True(t, interval.Contains(at(9, 30)))
	assert.False(t, interval.Contains(at(10, 0)), "конец исключен")
	assert.False(t, interval.Contains(at(8, 59)))
}

func TestTimeInterval_CoveredBy(t *testing.T) {
	windows := []TimeInterval{iv(9, 0, 13, 0), iv(14, 0, 18, 0)}

	assert.True(t, iv(9, 0, 13, 0).CoveredBy(windows), "окно целиком")
	assert.True(t, iv(10, 0, 11, 0).CoveredBy(windows))
	assert.True(t, iv(14, 0, 15, 0).CoveredBy(windows))
	assert.False(t, iv(12, 0, 15, 0).CoveredBy(windows), "через перерыв между окнами")
	assert.False(t, iv(8, 0, 9, 30).CoveredBy(windows), "выходит за начало")
	assert.False(t, iv(17, 0, 19, 0).CoveredBy(windows), "выходит за конец")
	assert.False(t, iv(10, 0, 11, 0).CoveredBy(nil))
}

func TestSubtractAll(t *testing.T) {
	t.Run("занятый интервал в середине окна", func(t *testing.T) {
		working := []TimeInterval{iv(9, 0, 18, 0)}
		occupied := []OccupiedInterval{
			{TimeInterval: iv(13, 0, 13, 30), Source: SourceTimeBlock, SourceID: 1},
		}

		free := SubtractAll(working, occupied)

		require.Len(t, free, 2)
		assert.Equal(t, iv(9, 0, 13, 0), free[0])
		assert.Equal(t, iv(13, 30, 18, 0), free[1])
	})

	t.Run("несколько занятых интервалов", func(t *testing.T) {
		working := []TimeInterval{iv(9, 0, 18, 0)}
		occupied := []OccupiedInterval{
			{TimeInterval: iv(15, 0, 16, 0), Source: SourceAppointment, SourceID: 2},
			{TimeInterval: iv(10, 0, 11, 0), Source: SourceAppointment, SourceID: 1},
		}

		free := SubtractAll(working, occupied)

		require.Len(t, free, 3)
		assert.Equal(t, iv(9, 0, 10, 0), free[0])
		assert.Equal(t, iv(11, 0, 15, 0), free[1])
		assert.Equal(t, iv(16, 0, 18, 0), free[2])
	})

	t.Run("занятый интервал накрывает окно целиком", func(t *testing.T) {
		working := []TimeInterval{iv(9, 0, 12, 0)}
		occupied := []OccupiedInterval{
			{TimeInterval: iv(8, 0, 13, 0), Source: SourceTimeBlock, SourceID: 1},
		}

		free := SubtractAll(working, occupied)

		assert.Empty(t, free)
	})

	t.Run("занятый интервал срезает край окна", func(t *testing.T) {
		working := []TimeInterval{iv(9, 0, 18, 0)}
		occupied := []OccupiedInterval{
			{TimeInterval: iv(8, 0, 10, 0), Source: SourceTimeBlock, SourceID: 1},
			{TimeInterval: iv(17, 0, 19, 0), Source: SourceTimeBlock, SourceID: 2},
		}

		free := SubtractAll(working, occupied)

		require.Len(t, free, 1)
		assert.Equal(t, iv(10, 0, 17, 0), free[0])
	})

	t.Run("касание границы окно не режет", func(t *testing.T) {
		working := []TimeInterval{iv(9, 0, 13, 0)}
		occupied := []OccupiedInterval{
			{TimeInterval: iv(13, 0, 14, 0), Source: SourceAppointment, SourceID: 1},
		}

		free := SubtractAll(working, occupied)

		require.Len(t, free, 1)
		assert.Equal(t, iv(9, 0, 13, 0), free[0])
	})

	t.Run("пересекающиеся занятые интервалы", func(t *testing.T) {
		working := []TimeInterval{iv(9, 0, 18, 0)}
		occupied := []OccupiedInterval{
			{TimeInterval: iv(10, 0, 12, 0), Source: SourceAppointment, SourceID: 1},
			{TimeInterval: iv(11, 0, 13, 0), Source: SourceTimeBlock, SourceID: 2},
		}

		free := SubtractAll(working, occupied)

		require.Len(t, free, 2)
		assert.Equal(t, iv(9, 0, 10, 0), free[0])
		assert.Equal(t, iv(13, 0, 18, 0), free[1])
	})

	t.Run("пустые рабочие окна", func(t *testing.T) {
		free := SubtractAll(nil, []OccupiedInterval{
			{TimeInterval: iv(10, 0, 11, 0), Source: SourceAppointment, SourceID: 1},
		})

		assert.Empty(t, free)
	})

	t.Run("нет занятых интервалов", func(t *testing.T) {
		working := []TimeInterval{iv(9, 0, 13, 0), iv(14, 0, 18, 0)}

		free := SubtractAll(working, nil)

		require.Len(t, free, 2)
		assert.Equal(t, working[0], free[0])
		assert.Equal(t, working[1], free[1])
	})
}

func TestFindConflicts(t *testing.T) {
	working := []TimeInterval{iv(9, 0, 18, 0)}
	occupied := []OccupiedInterval{
		{TimeInterval: iv(10, 0, 11, 0), Source: SourceAppointment, SourceID: 42},
		{TimeInterval: iv(13, 0, 13, 30), Source: SourceTimeBlock, SourceID: 7},
	}

	t.Run("свободный интервал без конфликтов", func(t *testing.T) {
		conflicts := FindConflicts(iv(11, 0, 12, 0), working, occupied, false)
		assert.Empty(t, conflicts)
	})

	t.Run("касание границы занятого интервала не конфликт", func(t *testing.T) {
		conflicts := FindConflicts(iv(11, 0, 13, 0), working, occupied, false)
		assert.Empty(t, conflicts)
	})

	t.Run("пересечение с визитом", func(t *testing.T) {
		conflicts := FindConflicts(iv(10, 30, 11, 30), working, occupied, false)

		require.Len(t, conflicts, 1)
		assert.Equal(t, SourceAppointment, conflicts[0].SourceType)
		assert.Equal(t, int64(42), conflicts[0].SourceID)
		assert.Equal(t, at(10, 0), conflicts[0].Start)
		assert.Equal(t, at(11, 0), conflicts[0].End)
	})

	t.Run("возвращаются все конфликты", func(t *testing.T) {
		conflicts := FindConflicts(iv(10, 30, 14, 0), working, occupied, false)

		require.Len(t, conflicts, 2)
		assert.Equal(t, SourceAppointment, conflicts[0].SourceType)
		assert.Equal(t, SourceTimeBlock, conflicts[1].SourceType)
	})

	t.Run("интервал вне рабочих часов", func(t *testing.T) {
		conflicts := FindConflicts(iv(19, 0, 20, 0), working, occupied, false)

		require.Len(t, conflicts, 1)
		assert.Equal(t, SourceOutsideHours, conflicts[0].SourceType)
		assert.Equal(t, at(19, 0), conflicts[0].Start)
		assert.Equal(t, at(20, 0), conflicts[0].End)
	})

	t.Run("force подавляет только outside_hours", func(t *testing.T) {
		conflicts := FindConflicts(iv(19, 0, 20, 0), working, occupied, true)
		assert.Empty(t, conflicts)

		conflicts = FindConflicts(iv(10, 30, 11, 30), working, occupied, true)
		require.Len(t, conflicts, 1)
		assert.Equal(t, SourceAppointment, conflicts[0].SourceType)
	})

	t.Run("пустые рабочие окна все вне часов", func(t *testing.T) {
		conflicts := FindConflicts(iv(10, 0, 11, 0), nil, nil, false)

		require.Len(t, conflicts, 1)
		assert.Equal(t, SourceOutsideHours, conflicts[0].SourceType)
	})
}
