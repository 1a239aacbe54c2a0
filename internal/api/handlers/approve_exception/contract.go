package approve_exception

import (
	"context"

	"github.com/salonbw/SBW-SchedulingService/internal/service/timetables/models"
)

type TimetableService interface {
	ApproveException(ctx context.Context, id int64, approverID int64) (*models.ExceptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
