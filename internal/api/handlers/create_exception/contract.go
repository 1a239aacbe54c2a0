package create_exception

import (
	"context"

	"github.com/salonbw/SBW-SchedulingService/internal/service/timetables/models"
)

type TimetableService interface {
	CreateException(ctx context.Context, req *models.CreateExceptionRequest) (*models.ExceptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
