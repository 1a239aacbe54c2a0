package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	appointmentRepo "github.com/salonbw/SBW-SchedulingService/internal/infra/storage/appointment"
	"github.com/salonbw/SBW-SchedulingService/internal/service/appointments/models"
	"github.com/salonbw/SBW-SchedulingService/pkg/ptr"
)

type mockAppointmentRepo struct {
	appointment *domain.Appointment

	cancelledReason *string
	completedBy     *int64
	statusUpdates   []domain.AppointmentStatus
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if m.appointment == nil || m.appointment.ID != id {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *m.appointment
	return &copied, nil
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	m.appointment.Status = status
	m.statusUpdates = append(m.statusUpdates, status)
	return nil
}

func (m *mockAppointmentRepo) Cancel(ctx context.Context, id int64, reason *string) error {
	m.appointment.Status = domain.StatusCancelled
	m.appointment.CancellationReason = reason
	m.cancelledReason = reason
	return nil
}

func (m *mockAppointmentRepo) Complete(ctx context.Context, id int64, finalizedByID int64) error {
	m.appointment.Status = domain.StatusCompleted
	m.appointment.FinalizedByID = &finalizedByID
	m.completedBy = &finalizedByID
	return nil
}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func appointmentWithStatus(status domain.AppointmentStatus) *domain.Appointment {
	start := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:         5,
		ClientID:   20,
		EmployeeID: 10,
		ServiceID:  3,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     status,
	}
}

func TestService_UpdateStatus_Confirm(t *testing.T) {
	repo := &mockAppointmentRepo{appointment: appointmentWithStatus(domain.StatusScheduled)}
	svc := NewService(repo, inlineTxManager{}, noopLogger{})

	resp, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
		UserID: 1,
		Status: "confirmed",
	})

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, []domain.AppointmentStatus{domain.StatusConfirmed}, repo.statusUpdates)
}

func TestService_UpdateStatus_CancelWithReason(t *testing.T) {
	repo := &mockAppointmentRepo{appointment: appointmentWithStatus(domain.StatusScheduled)}
	svc := NewService(repo, inlineTxManager{}, noopLogger{})

	resp, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
		UserID:             1,
		Status:             "cancelled",
		CancellationReason: ptr.Ptr("клиент попросил отменить"),
	})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, repo.cancelledReason)
	assert.Equal(t, "клиент попросил отменить", *repo.cancelledReason)
}

func TestService_UpdateStatus_Complete(t *testing.T) {
	repo := &mockAppointmentRepo{appointment: appointmentWithStatus(domain.StatusInProgress)}
	svc := NewService(repo, inlineTxManager{}, noopLogger{})

	resp, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
		UserID: 7,
		Status: "completed",
	})

	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, repo.completedBy)
	assert.Equal(t, int64(7), *repo.completedBy)
}

func TestService_UpdateStatus_InvalidTransition(t *testing.T) {
	tests := []struct {
		from   domain.AppointmentStatus
		target string
	}{
		{domain.StatusScheduled, "completed"},
		{domain.StatusScheduled, "in_progress"},
		{domain.StatusInProgress, "cancelled"},
		{domain.StatusCompleted, "scheduled"},
		{domain.StatusCancelled, "confirmed"},
		{domain.StatusNoShow, "completed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+tt.target, func(t *testing.T) {
			repo := &mockAppointmentRepo{appointment: appointmentWithStatus(tt.from)}
			svc := NewService(repo, inlineTxManager{}, noopLogger{})

			_, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
				UserID: 1,
				Status: tt.target,
			})

			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.from, repo.appointment.Status, "недопустимый переход визит не меняет")
		})
	}
}

func TestService_UpdateStatus_UnknownStatus(t *testing.T) {
	repo := &mockAppointmentRepo{appointment: appointmentWithStatus(domain.StatusScheduled)}
	svc := NewService(repo, inlineTxManager{}, noopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
		UserID: 1,
		Status: "archived",
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_UpdateStatus_NotFound(t *testing.T) {
	repo := &mockAppointmentRepo{}
	svc := NewService(repo, inlineTxManager{}, noopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
		UserID: 1,
		Status: "confirmed",
	})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_GetByID(t *testing.T) {
	repo := &mockAppointmentRepo{appointment: appointmentWithStatus(domain.StatusConfirmed)}
	svc := NewService(repo, inlineTxManager{}, noopLogger{})

	resp, err := svc.GetByID(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)

	_, err = svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
