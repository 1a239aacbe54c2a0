package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	timetableRepo "github.com/salonbw/SBW-SchedulingService/internal/infra/storage/timetable"
	"github.com/salonbw/SBW-SchedulingService/internal/integrations/staffservice"
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

type mockStaffClient struct {
	getEmployeeFn func(ctx context.Context, employeeID int64) (*staffservice.Employee, error)
}

func (m *mockStaffClient) GetEmployee(ctx context.Context, employeeID int64) (*staffservice.Employee, error) {
	return m.getEmployeeFn(ctx, employeeID)
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
			{DayOfWeek: 0, StartTime: "13:00", EndTime: "13:30", IsBreak: true},
		},
	}
}

func activeEmployee() *staffservice.Employee {
	return &staffservice.Employee{ID: 10, FullName: "Мария Иванова", Role: "master", IsActive: true}
}

func newTestUseCase(
	occupied []domain.OccupiedInterval,
	blocks []*domain.TimeBlock,
	tt *domain.Timetable,
	exc *domain.TimetableException,
) *UseCase {
	appointments := &mockAppointmentRepo{
		getOccupiedIntervalsFn: func(ctx context.Context, employeeID int64, from, to time.Time, exclude *int64) ([]domain.OccupiedInterval, error) {
			return occupied, nil
		},
	}
	timetables := &mockTimetableRepo{
		getActiveForDateFn: func(ctx context.Context, employeeID int64, date time.Time) (*domain.Timetable, error) {
			if tt == nil {
				return nil, timetableRepo.ErrTimetableNotFound
			}
			return tt, nil
		},
		getExceptionForDateFn: func(ctx context.Context, timetableID int64, date time.Time) (*domain.TimetableException, error) {
			if exc == nil {
				return nil, timetableRepo.ErrExceptionNotFound
			}
			return exc, nil
		},
	}
	timeblocks := &mockTimeBlockRepo{
		listForEmployeeInRangeFn: func(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.TimeBlock, error) {
			return blocks, nil
		},
	}
	staff := &mockStaffClient{
		getEmployeeFn: func(ctx context.Context, employeeID int64) (*staffservice.Employee, error) {
			return activeEmployee(), nil
		},
	}
	return NewUseCase(appointments, timetables, timeblocks, staff, noopLogger{})
}

func TestUseCase_Execute_FreeDay(t *testing.T) {
	uc := newTestUseCase(nil, nil, mondayTimetable(), nil)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, EmployeeID: 10, Date: monday})

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.EmployeeID)
	// Рабочие окна: 9:00-13:00 и 13:30-18:00 (обед вырезан)
	require.Len(t, resp.WorkingIntervals, 2)
	require.Len(t, resp.FreeIntervals, 2)
	assert.Equal(t, monday.Add(9*time.Hour), resp.FreeIntervals[0].Start)
	assert.Equal(t, monday.Add(13*time.Hour), resp.FreeIntervals[0].End)
	assert.Equal(t, monday.Add(13*time.Hour+30*time.Minute), resp.FreeIntervals[1].Start)
	assert.Equal(t, monday.Add(18*time.Hour), resp.FreeIntervals[1].End)
}

func TestUseCase_Execute_AppointmentsSubtracted(t *testing.T) {
	occupied := []domain.OccupiedInterval{
		{
			TimeInterval: domain.TimeInterval{Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)},
			Source:       domain.SourceAppointment,
			SourceID:     42,
		},
	}
	uc := newTestUseCase(occupied, nil, mondayTimetable(), nil)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, EmployeeID: 10, Date: monday})

	require.NoError(t, err)
	require.Len(t, resp.FreeIntervals, 3)
	assert.Equal(t, monday.Add(9*time.Hour), resp.FreeIntervals[0].Start)
	assert.Equal(t, monday.Add(10*time.Hour), resp.FreeIntervals[0].End)
	assert.Equal(t, monday.Add(11*time.Hour), resp.FreeIntervals[1].Start)
	assert.Equal(t, monday.Add(13*time.Hour), resp.FreeIntervals[1].End)
}

func TestUseCase_Execute_RecurringBlockSubtracted(t *testing.T) {
	// Ежедневный перерыв 15:00-15:30, заведенный задолго до запрошенной даты
	blocks := []*domain.TimeBlock{
		{
			ID:         7,
			EmployeeID: 10,
			Type:       domain.BlockBreak,
			StartTime:  time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2025, 1, 10, 15, 30, 0, 0, time.UTC),
			Recurrence: &domain.RecurrencePattern{Frequency: domain.RecurrenceDaily, Interval: 1},
		},
	}
	uc := newTestUseCase(nil, blocks, mondayTimetable(), nil)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, EmployeeID: 10, Date: monday})

	require.NoError(t, err)
	require.Len(t, resp.FreeIntervals, 3)
	assert.Equal(t, monday.Add(15*time.Hour), resp.FreeIntervals[1].End)
	assert.Equal(t, monday.Add(15*time.Hour+30*time.Minute), resp.FreeIntervals[2].Start)
}

func TestUseCase_Execute_NoTimetableZeroAvailability(t *testing.T) {
	uc := newTestUseCase(nil, nil, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, EmployeeID: 10, Date: monday})

	require.NoError(t, err, "отсутствие графика не ошибка")
	assert.Empty(t, resp.WorkingIntervals)
	assert.Empty(t, resp.FreeIntervals)
}

func TestUseCase_Execute_ApprovedDayOff(t *testing.T) {
	approvedBy := int64(99)
	exc := &domain.TimetableException{
		ID:           1,
		TimetableID:  1,
		Date:         monday,
		Type:         domain.ExceptionDayOff,
		IsPending:    false,
		ApprovedByID: &approvedBy,
	}
	uc := newTestUseCase(nil, nil, mondayTimetable(), exc)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, EmployeeID: 10, Date: monday})

	require.NoError(t, err)
	assert.Empty(t, resp.WorkingIntervals)
	assert.Empty(t, resp.FreeIntervals)
}

func TestUseCase_Execute_EmployeeNotFound(t *testing.T) {
	uc := newTestUseCase(nil, nil, mondayTimetable(), nil)
	uc.staffClient = &mockStaffClient{
		getEmployeeFn: func(ctx context.Context, employeeID int64) (*staffservice.Employee, error) {
			return nil, staffservice.ErrEmployeeNotFound
		},
	}

	_, err := uc.Execute(context.Background(), &Request{UserID: 1, EmployeeID: 10, Date: monday})

	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(nil, nil, mondayTimetable(), nil)

	_, err := uc.Execute(context.Background(), &Request{UserID: 1, EmployeeID: 0, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: 1, EmployeeID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
