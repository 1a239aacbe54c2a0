package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(yearDay int) time.Time {
	return time.Date(2025, 6, yearDay, 0, 0, 0, 0, time.UTC)
}

func TestTimeBlock_Occurrences_OneTime(t *testing.T) {
	block := TimeBlock{
		ID:         1,
		EmployeeID: 10,
		Type:       BlockBreak,
		StartTime:  at(13, 0),
		EndTime:    at(14, 0),
	}

	t.Run("попадает в диапазон", func(t *testing.T) {
		occ := block.Occurrences(day(16), day(17))

		require.Len(t, occ, 1)
		assert.Equal(t, at(13, 0), occ[0].Start)
		assert.Equal(t, at(14, 0), occ[0].End)
	})

	t.Run("вне диапазона", func(t *testing.T) {
		occ := block.Occurrences(day(17), day(18))
		assert.Empty(t, occ)
	})
}

func TestTimeBlock_Occurrences_AllDay(t *testing.T) {
	block := TimeBlock{
		ID:        2,
		Type:      BlockVacation,
		StartTime: at(13, 0), // время игнорируется
		EndTime:   at(14, 0),
		AllDay:    true,
	}

	occ := block.Occurrences(day(16), day(17))

	require.Len(t, occ, 1)
	assert.Equal(t, day(16), occ[0].Start)
	assert.Equal(t, day(17), occ[0].End)
}

func TestTimeBlock_Occurrences_Daily(t *testing.T) {
	block := TimeBlock{
		ID:        3,
		Type:      BlockBreak,
		StartTime: time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 1, 13, 30, 0, 0, time.UTC),
		Recurrence: &RecurrencePattern{
			Frequency: RecurrenceDaily,
			Interval:  1,
		},
	}

	occ := block.Occurrences(day(16), day(19))

	require.Len(t, occ, 3)
	assert.Equal(t, time.Date(2025, 6, 16, 13, 0, 0, 0, time.UTC), occ[0].Start)
	assert.Equal(t, time.Date(2025, 6, 17, 13, 0, 0, 0, time.UTC), occ[1].Start)
	assert.Equal(t, time.Date(2025, 6, 18, 13, 0, 0, 0, time.UTC), occ[2].Start)
	for _, o := range occ {
		assert.Equal(t, 30*time.Minute, o.Duration())
	}
}

func TestTimeBlock_Occurrences_Weekly(t *testing.T) {
	// Каждый понедельник 9:00-10:00, начиная с 2 июня 2025 (понедельник)
	block := TimeBlock{
		ID:        4,
		Type:      BlockTraining,
		StartTime: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		Recurrence: &RecurrencePattern{
			Frequency: RecurrenceWeekly,
			Interval:  1,
		},
	}

	occ := block.Occurrences(day(16), day(23))

	require.Len(t, occ, 1)
	assert.Equal(t, time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC), occ[0].Start)
}

func TestTimeBlock_Occurrences_EveryOtherWeek(t *testing.T) {
	block := TimeBlock{
		ID:        5,
		Type:      BlockTraining,
		StartTime: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		Recurrence: &RecurrencePattern{
			Frequency: RecurrenceWeekly,
			Interval:  2,
		},
	}

	occ := block.Occurrences(day(2), day(30))

	require.Len(t, occ, 2)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), occ[0].Start)
	assert.Equal(t, time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC), occ[1].Start)
}

func TestTimeBlock_Occurrences_Until(t *testing.T) {
	until := day(10)
	block := TimeBlock{
		ID:        6,
		Type:      BlockBreak,
		StartTime: time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC),
		Recurrence: &RecurrencePattern{
			Frequency: RecurrenceDaily,
			Interval:  1,
			Until:     &until,
		},
	}

	occ := block.Occurrences(day(1), day(30))

	// Вхождения после until не материализуются
	require.NotEmpty(t, occ)
	last := occ[len(occ)-1]
	assert.False(t, last.Start.After(until))
}

func TestTimeBlock_Occurrences_BoundedByRange(t *testing.T) {
	// Бессрочный ежедневный блок: результат строго ограничен запрошенным диапазоном
	block := TimeBlock{
		ID:        7,
		Type:      BlockBreak,
		StartTime: time.Date(2025, 1, 1, 13, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 1, 1, 13, 30, 0, 0, time.UTC),
		Recurrence: &RecurrencePattern{
			Frequency: RecurrenceDaily,
			Interval:  1,
		},
	}

	occ := block.Occurrences(day(16), day(17))

	require.Len(t, occ, 1)
	assert.Equal(t, time.Date(2025, 6, 16, 13, 0, 0, 0, time.UTC), occ[0].Start)
}

func TestIsValidBlockType(t *testing.T) {
	for _, bt := range []BlockType{BlockBreak, BlockVacation, BlockTraining, BlockSick, BlockOther} {
		assert.True(t, IsValidBlockType(bt))
	}
	assert.False(t, IsValidBlockType("meeting"))
	assert.False(t, IsValidBlockType(""))
}
