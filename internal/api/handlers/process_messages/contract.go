package process_messages

import (
	"context"

	processMessages "github.com/salonbw/SBW-SchedulingService/internal/usecase/process_messages"
)

type ProcessMessagesUseCase interface {
	Execute(ctx context.Context, req *processMessages.Request) (*processMessages.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
