package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTransition(t *testing.T) {
	allowed := []struct {
		from, to AppointmentStatus
	}{
		{StatusScheduled, StatusConfirmed},
		{StatusScheduled, StatusCancelled},
		{StatusScheduled, StatusNoShow},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusNoShow},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusNoShow},
	}

	for _, tt := range allowed {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.NoError(t, ValidateTransition(tt.from, tt.to))
		})
	}

	forbidden := []struct {
		from, to AppointmentStatus
	}{
		{StatusScheduled, StatusInProgress},
		{StatusScheduled, StatusCompleted},
		{StatusConfirmed, StatusCompleted},
		{StatusInProgress, StatusCancelled},
		{StatusCompleted, StatusScheduled},
		{StatusCompleted, StatusNoShow},
		{StatusCancelled, StatusScheduled},
		{StatusNoShow, StatusCompleted},
		{StatusScheduled, StatusScheduled},
	}

	for _, tt := range forbidden {
		t.Run(string(tt.from)+"_to_"+string(tt.to)+"_rejected", func(t *testing.T) {
			assert.ErrorIs(t, ValidateTransition(tt.from, tt.to), ErrInvalidTransition)
		})
	}

	t.Run("неизвестный целевой статус", func(t *testing.T) {
		assert.ErrorIs(t, ValidateTransition(StatusScheduled, "archived"), ErrInvalidTransition)
	})
}

func TestAppointmentStatus_IsOccupying(t *testing.T) {
	assert.True(t, StatusScheduled.IsOccupying())
	assert.True(t, StatusConfirmed.IsOccupying())
	assert.True(t, StatusInProgress.IsOccupying())
	assert.False(t, StatusCompleted.IsOccupying())
	assert.False(t, StatusCancelled.IsOccupying())
	assert.False(t, StatusNoShow.IsOccupying())
}

func TestAppointmentStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusScheduled.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
}

func TestAppointment_Interval(t *testing.T) {
	a := Appointment{StartTime: at(10, 0), EndTime: at(11, 0)}

	interval := a.Interval()

	assert.Equal(t, at(10, 0), interval.Start)
	assert.Equal(t, at(11, 0), interval.End)
}
