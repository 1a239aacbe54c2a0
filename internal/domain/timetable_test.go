package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbw/SBW-SchedulingService/pkg/types"
)

// Понедельник 16 июня 2025
var monday = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func weeklyTimetable() *Timetable {
	return &Timetable{
		ID:         1,
		EmployeeID: 10,
		Name:       "Основной график",
		ValidFrom:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:   true,
		Slots: []TimetableSlot{
			{DayOfWeek: 0, StartTime: "09:00", EndTime: "18:00"},
			{DayOfWeek: 0, StartTime: "13:00", EndTime: "13:30", IsBreak: true},
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "16:00"},
		},
	}
}

func approvedException(excType ExceptionType) *TimetableException {
	approvedBy := int64(99)
	approvedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &TimetableException{
		ID:           1,
		TimetableID:  1,
		Date:         monday,
		Type:         excType,
		IsPending:    false,
		ApprovedByID: &approvedBy,
		ApprovedAt:   &approvedAt,
	}
}

func TestISODayOfWeek(t *testing.T) {
	assert.Equal(t, 0, ISODayOfWeek(monday))
	assert.Equal(t, 1, ISODayOfWeek(monday.AddDate(0, 0, 1)))
	assert.Equal(t, 6, ISODayOfWeek(monday.AddDate(0, 0, 6)))
}

func TestResolveWorkingIntervals(t *testing.T) {
	t.Run("нет графика ноль интервалов", func(t *testing.T) {
		working, err := ResolveWorkingIntervals(nil, nil, monday)

		require.NoError(t, err)
		assert.Empty(t, working)
	})

	t.Run("неактивный график ноль интервалов", func(t *testing.T) {
		tt := weeklyTimetable()
		tt.IsActive = false

		working, err := ResolveWorkingIntervals(tt, nil, monday)

		require.NoError(t, err)
		assert.Empty(t, working)
	})

	t.Run("дата вне периода действия", func(t *testing.T) {
		tt := weeklyTimetable()
		validTo := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
		tt.ValidTo = &validTo

		working, err := ResolveWorkingIntervals(tt, nil, monday)

		require.NoError(t, err)
		assert.Empty(t, working)
	})

	t.Run("слоты дня минус перерывы", func(t *testing.T) {
		working, err := ResolveWorkingIntervals(weeklyTimetable(), nil, monday)

		require.NoError(t, err)
		require.Len(t, working, 2)
		assert.Equal(t, monday.Add(9*time.Hour), working[0].Start)
		assert.Equal(t, monday.Add(13*time.Hour), working[0].End)
		assert.Equal(t, monday.Add(13*time.Hour+30*time.Minute), working[1].Start)
		assert.Equal(t, monday.Add(18*time.Hour), working[1].End)
	})

	t.Run("день без слотов пустой результат", func(t *testing.T) {
		sunday := monday.AddDate(0, 0, 6)

		working, err := ResolveWorkingIntervals(weeklyTimetable(), nil, sunday)

		require.NoError(t, err)
		assert.Empty(t, working)
	})

	t.Run("одобренный выходной", func(t *testing.T) {
		working, err := ResolveWorkingIntervals(weeklyTimetable(), approvedException(ExceptionDayOff), monday)

		require.NoError(t, err)
		assert.Empty(t, working)
	})

	t.Run("одобренный отпуск как выходной", func(t *testing.T) {
		working, err := ResolveWorkingIntervals(weeklyTimetable(), approvedException(ExceptionVacation), monday)

		require.NoError(t, err)
		assert.Empty(t, working)
	})

	t.Run("одобренные кастомные часы заменяют шаблон", func(t *testing.T) {
		exc := approvedException(ExceptionCustomHours)
		start := types.TimeString("11:00")
		end := types.TimeString("15:00")
		exc.CustomStartTime = &start
		exc.CustomEndTime = &end

		working, err := ResolveWorkingIntervals(weeklyTimetable(), exc, monday)

		require.NoError(t, err)
		require.Len(t, working, 1)
		assert.Equal(t, monday.Add(11*time.Hour), working[0].Start)
		assert.Equal(t, monday.Add(15*time.Hour), working[0].End)
	})

	t.Run("неодобренное исключение не применяется", func(t *testing.T) {
		exc := approvedException(ExceptionDayOff)
		exc.IsPending = true
		exc.ApprovedByID = nil
		exc.ApprovedAt = nil

		working, err := ResolveWorkingIntervals(weeklyTimetable(), exc, monday)

		require.NoError(t, err)
		require.Len(t, working, 2, "pending-исключение доступность не меняет")
	})
}

func TestTimetable_CoversDate(t *testing.T) {
	tt := weeklyTimetable()

	assert.True(t, tt.CoversDate(monday))
	assert.True(t, tt.CoversDate(tt.ValidFrom))
	assert.False(t, tt.CoversDate(tt.ValidFrom.AddDate(0, 0, -1)))

	validTo := monday
	tt.ValidTo = &validTo
	assert.True(t, tt.CoversDate(monday), "validTo включительно")
	assert.False(t, tt.CoversDate(monday.AddDate(0, 0, 1)))
}

func TestTimetableException_IsApproved(t *testing.T) {
	exc := approvedException(ExceptionDayOff)
	assert.True(t, exc.IsApproved())

	exc.IsPending = true
	assert.False(t, exc.IsApproved())

	exc.IsPending = false
	exc.ApprovedByID = nil
	assert.False(t, exc.IsApproved())
}
