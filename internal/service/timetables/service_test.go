package timetables

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	timetableRepo "github.com/salonbw/SBW-SchedulingService/internal/infra/storage/timetable"
	"github.com/salonbw/SBW-SchedulingService/internal/service/timetables/models"
	"github.com/salonbw/SBW-SchedulingService/pkg/ptr"
)

type mockTimetableRepo struct {
	nextID     int64
	exceptions map[int64]*domain.TimetableException
}

func newMockTimetableRepo() *mockTimetableRepo {
	return &mockTimetableRepo{nextID: 1, exceptions: make(map[int64]*domain.TimetableException)}
}

func (m *mockTimetableRepo) GetActiveForDate(ctx context.Context, employeeID int64, date time.Time) (*domain.Timetable, error) {
	return nil, timetableRepo.ErrTimetableNotFound
}

func (m *mockTimetableRepo) GetExceptionByID(ctx context.Context, id int64) (*domain.TimetableException, error) {
	exc, ok := m.exceptions[id]
	if !ok {
		return nil, timetableRepo.ErrExceptionNotFound
	}
	copied := *exc
	return &copied, nil
}

func (m *mockTimetableRepo) CreateException(ctx context.Context, exc *domain.TimetableException) (*domain.TimetableException, error) {
	for _, existing := range m.exceptions {
		if existing.TimetableID == exc.TimetableID && existing.Date.Equal(exc.Date) {
			return nil, timetableRepo.ErrExceptionExists
		}
	}
	created := *exc
	created.ID = m.nextID
	m.nextID++
	created.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.exceptions[created.ID] = &created
	return &created, nil
}

func (m *mockTimetableRepo) ApproveException(ctx context.Context, id int64, approverID int64) error {
	exc, ok := m.exceptions[id]
	if !ok {
		return timetableRepo.ErrExceptionNotFound
	}
	approvedAt := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	exc.IsPending = false
	exc.ApprovedByID = &approverID
	exc.ApprovedAt = &approvedAt
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func dayOffRequest() *models.CreateExceptionRequest {
	return &models.CreateExceptionRequest{
		TimetableID: 1,
		Date:        "2025-06-16",
		Type:        "day_off",
		UserID:      7,
	}
}

func TestService_CreateException_DayOff(t *testing.T) {
	svc := NewService(newMockTimetableRepo(), noopLogger{})

	resp, err := svc.CreateException(context.Background(), dayOffRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2025-06-16", resp.Date)
	assert.Equal(t, "day_off", resp.Type)
	assert.True(t, resp.IsPending, "исключение создается неодобренным")
	assert.Equal(t, int64(7), resp.CreatedByID)
	assert.Nil(t, resp.ApprovedByID)
}

func TestService_CreateException_CustomHours(t *testing.T) {
	svc := NewService(newMockTimetableRepo(), noopLogger{})

	req := dayOffRequest()
	req.Type = "custom_hours"
	req.CustomStartTime = ptr.Ptr("11:00")
	req.CustomEndTime = ptr.Ptr("15:00")

	resp, err := svc.CreateException(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, resp.CustomStartTime)
	assert.Equal(t, "11:00", *resp.CustomStartTime)
	assert.Equal(t, "15:00", *resp.CustomEndTime)
}

func TestService_CreateException_Validation(t *testing.T) {
	svc := NewService(newMockTimetableRepo(), noopLogger{})

	t.Run("некорректная дата", func(t *testing.T) {
		req := dayOffRequest()
		req.Date = "16.06.2025"
		_, err := svc.CreateException(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("неизвестный тип", func(t *testing.T) {
		req := dayOffRequest()
		req.Type = "holiday"
		_, err := svc.CreateException(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("custom_hours без времени", func(t *testing.T) {
		req := dayOffRequest()
		req.Type = "custom_hours"
		_, err := svc.CreateException(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("custom_hours с вырожденным окном", func(t *testing.T) {
		req := dayOffRequest()
		req.Type = "custom_hours"
		req.CustomStartTime = ptr.Ptr("15:00")
		req.CustomEndTime = ptr.Ptr("11:00")
		_, err := svc.CreateException(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_CreateException_DuplicateDate(t *testing.T) {
	svc := NewService(newMockTimetableRepo(), noopLogger{})

	_, err := svc.CreateException(context.Background(), dayOffRequest())
	require.NoError(t, err)

	_, err = svc.CreateException(context.Background(), dayOffRequest())
	assert.ErrorIs(t, err, ErrExceptionExists)
}

func TestService_ApproveException(t *testing.T) {
	repo := newMockTimetableRepo()
	svc := NewService(repo, noopLogger{})

	created, err := svc.CreateException(context.Background(), dayOffRequest())
	require.NoError(t, err)

	resp, err := svc.ApproveException(context.Background(), created.ID, 99)

	require.NoError(t, err)
	assert.False(t, resp.IsPending)
	require.NotNil(t, resp.ApprovedByID)
	assert.Equal(t, int64(99), *resp.ApprovedByID)
	assert.NotNil(t, resp.ApprovedAt)
}

func TestService_ApproveException_Repeated(t *testing.T) {
	repo := newMockTimetableRepo()
	svc := NewService(repo, noopLogger{})

	created, err := svc.CreateException(context.Background(), dayOffRequest())
	require.NoError(t, err)

	_, err = svc.ApproveException(context.Background(), created.ID, 99)
	require.NoError(t, err)

	_, err = svc.ApproveException(context.Background(), created.ID, 100)
	assert.ErrorIs(t, err, ErrAlreadyApproved)
}

func TestService_ApproveException_NotFound(t *testing.T) {
	svc := NewService(newMockTimetableRepo(), noopLogger{})

	_, err := svc.ApproveException(context.Background(), 404, 99)

	assert.ErrorIs(t, err, ErrExceptionNotFound)
}
