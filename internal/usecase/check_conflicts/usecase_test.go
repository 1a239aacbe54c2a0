package check_conflicts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	timetableRepo "github.com/salonbw/SBW-SchedulingService/internal/infra/storage/timetable"
)

type mockAppointmentRepo struct {
	getOccupiedIntervalsFn func(ctx context.Context, employeeID int64, from, to time.Time, exclude *int64) ([]domain.OccupiedInterval, error)
}

func (m *mockAppointmentRepo) GetOccupiedIntervals(ctx context.Context, employeeID int64, from, to time.Time, exclude *int64) ([]domain.OccupiedInterval, error) {
	return m.getOccupiedIntervalsFn(ctx, employeeID, from, to, exclude)
}

type mockTimetableRepo struct {
	getActiveForDateFn    func(ctx context.Context, employeeID int64, date time.Time) (*domain.Timetable, error)
	getExceptionForDateFn func(ctx context.Context, timetableID int64, date time.Time) (*domain.TimetableException, error)
}

func (m *mockTimetableRepo) GetActiveForDate(ctx context.Context, employeeID int64, date time.Time) (*domain.Timetable, error) {
	return m.getActiveForDateFn(ctx, employeeID, date)
}

func (m *mockTimetableRepo) GetExceptionForDate(ctx context.Context, timetableID int64, date time.Time) (*domain.TimetableException, error) {
	return m.getExceptionForDateFn(ctx, timetableID, date)
}

type mockTimeBlockRepo struct {
	listForEmployeeInRangeFn func(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.TimeBlock, error)
}

func (m *mockTimeBlockRepo) ListForEmployeeInRange(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.TimeBlock, error) {
	return m.listForEmployeeInRangeFn(ctx, employeeID, from, to)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// Понедельник 16 июня 2025
var monday = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func mondayTimetable() *domain.Timetable {
	return &domain.Timetable{
		ID:         1,
		EmployeeID: 10,
		ValidFrom:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:   true,
		Slots: []domain.TimetableSlot{
			{DayOfWeek: 0, StartTime: "09:00", EndTime: "18:00"},
		},
	}
}

func newTestUseCase(
	occupied []domain.OccupiedInterval,
	blocks []*domain.TimeBlock,
	tt *domain.Timetable,
) *UseCase {
	timetables := &mockTimetableRepo{
		getActiveForDateFn: func(ctx context.Context, employeeID int64, date time.Time) (*domain.Timetable, error) {
			if tt == nil {
				return nil, timetableRepo.ErrTimetableNotFound
			}
			return tt, nil
		},
		getExceptionForDateFn: func(ctx context.Context, timetableID int64, date time.Time) (*domain.TimetableException, error) {
			return nil, timetableRepo.ErrExceptionNotFound
		},
	}
	appointments := &mockAppointmentRepo{
		getOccupiedIntervalsFn: func(ctx context.Context, employeeID int64, from, to time.Time, exclude *int64) ([]domain.OccupiedInterval, error) {
			return occupied, nil
		},
	}
	timeblocks := &mockTimeBlockRepo{
		listForEmployeeInRangeFn: func(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.TimeBlock, error) {
			return blocks, nil
		},
	}
	return NewUseCase(appointments, timetables, timeblocks, noopLogger{})
}

func TestUseCase_Execute_NoConflicts(t *testing.T) {
	uc := newTestUseCase(nil, nil, mondayTimetable())

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 10,
		Start:      monday.Add(10 * time.Hour),
		End:        monday.Add(11 * time.Hour),
	})

	require.NoError(t, err)
	assert.False(t, resp.HasConflicts)
	assert.Empty(t, resp.Conflicts)
}

func TestUseCase_Execute_AppointmentConflict(t *testing.T) {
	occupied := []domain.OccupiedInterval{
		{
			TimeInterval: domain.TimeInterval{Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)},
			Source:       domain.SourceAppointment,
			SourceID:     42,
		},
	}
	uc := newTestUseCase(occupied, nil, mondayTimetable())

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 10,
		Start:      monday.Add(10*time.Hour + 30*time.Minute),
		End:        monday.Add(11*time.Hour + 30*time.Minute),
	})

	require.NoError(t, err)
	assert.True(t, resp.HasConflicts)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "appointment", resp.Conflicts[0].SourceType)
	assert.Equal(t, int64(42), resp.Conflicts[0].SourceID)
}

func TestUseCase_Execute_BoundaryTouchIsNotConflict(t *testing.T) {
	occupied := []domain.OccupiedInterval{
		{
			TimeInterval: domain.TimeInterval{Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)},
			Source:       domain.SourceAppointment,
			SourceID:     42,
		},
	}
	uc := newTestUseCase(occupied, nil, mondayTimetable())

	// Кандидат начинается ровно в момент окончания занятого интервала
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 10,
		Start:      monday.Add(11 * time.Hour),
		End:        monday.Add(12 * time.Hour),
	})

	require.NoError(t, err)
	assert.False(t, resp.HasConflicts)
}

func TestUseCase_Execute_TimeBlockConflict(t *testing.T) {
	blocks := []*domain.TimeBlock{
		{
			ID:         7,
			EmployeeID: 10,
			Type:       domain.BlockBreak,
			StartTime:  monday.Add(13 * time.Hour),
			EndTime:    monday.Add(14 * time.Hour),
		},
	}
	uc := newTestUseCase(nil, blocks, mondayTimetable())

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 10,
		Start:      monday.Add(13*time.Hour + 30*time.Minute),
		End:        monday.Add(14*time.Hour + 30*time.Minute),
	})

	require.NoError(t, err)
	assert.True(t, resp.HasConflicts)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "timeblock", resp.Conflicts[0].SourceType)
	assert.Equal(t, int64(7), resp.Conflicts[0].SourceID)
}

func TestUseCase_Execute_OutsideWorkingHours(t *testing.T) {
	uc := newTestUseCase(nil, nil, mondayTimetable())

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 10,
		Start:      monday.Add(19 * time.Hour),
		End:        monday.Add(20 * time.Hour),
	})

	require.NoError(t, err)
	assert.True(t, resp.HasConflicts)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "outside_hours", resp.Conflicts[0].SourceType)
	assert.Equal(t, int64(0), resp.Conflicts[0].SourceID)
}

func TestUseCase_Execute_ForceSkipsWorkingHoursCheck(t *testing.T) {
	uc := newTestUseCase(nil, nil, mondayTimetable())

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 10,
		Start:      monday.Add(19 * time.Hour),
		End:        monday.Add(20 * time.Hour),
		Force:      true,
	})

	require.NoError(t, err)
	assert.False(t, resp.HasConflicts)
}

func TestUseCase_Execute_NoTimetableMeansOutsideHours(t *testing.T) {
	uc := newTestUseCase(nil, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 10,
		Start:      monday.Add(10 * time.Hour),
		End:        monday.Add(11 * time.Hour),
	})

	require.NoError(t, err)
	assert.True(t, resp.HasConflicts)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "outside_hours", resp.Conflicts[0].SourceType)
}

func TestUseCase_Execute_ExcludeAppointmentPassedToRepo(t *testing.T) {
	var gotExclude *int64
	appointments := &mockAppointmentRepo{
		getOccupiedIntervalsFn: func(ctx context.Context, employeeID int64, from, to time.Time, exclude *int64) ([]domain.OccupiedInterval, error) {
			gotExclude = exclude
			return nil, nil
		},
	}
	timetables := &mockTimetableRepo{
		getActiveForDateFn: func(ctx context.Context, employeeID int64, date time.Time) (*domain.Timetable, error) {
			return mondayTimetable(), nil
		},
		getExceptionForDateFn: func(ctx context.Context, timetableID int64, date time.Time) (*domain.TimetableException, error) {
			return nil, timetableRepo.ErrExceptionNotFound
		},
	}
	timeblocks := &mockTimeBlockRepo{
		listForEmployeeInRangeFn: func(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.TimeBlock, error) {
			return nil, nil
		},
	}
	uc := NewUseCase(appointments, timetables, timeblocks, noopLogger{})

	excludeID := int64(55)
	_, err := uc.Execute(context.Background(), &Request{
		UserID:               1,
		EmployeeID:           10,
		Start:                monday.Add(10 * time.Hour),
		End:                  monday.Add(11 * time.Hour),
		ExcludeAppointmentID: &excludeID,
	})

	require.NoError(t, err)
	require.NotNil(t, gotExclude)
	assert.Equal(t, int64(55), *gotExclude)
}

func TestUseCase_Execute_InvalidTimeRange(t *testing.T) {
	uc := newTestUseCase(nil, nil, mondayTimetable())

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 10,
		Start:      monday.Add(11 * time.Hour),
		End:        monday.Add(10 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}
