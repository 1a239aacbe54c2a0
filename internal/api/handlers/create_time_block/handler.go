package create_time_block

import (
	"errors"
	"net/http"

	"github.com/salonbw/SBW-SchedulingService/internal/api/handlers"
	"github.com/salonbw/SBW-SchedulingService/internal/api/middleware"
	"github.com/salonbw/SBW-SchedulingService/internal/service/timeblocks"
	"github.com/salonbw/SBW-SchedulingService/internal/service/timeblocks/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidTimeRange   = "некорректный временной диапазон"
	msgInvalidRecurrence  = "некорректный шаблон повторения"
)

type Handler struct {
	service TimeBlockService
	logger  Logger
}

func NewHandler(service TimeBlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/time-blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /time-blocks - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateTimeBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /time-blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, timeblocks.ErrInvalidTimeRange):
			h.logger.Warn("POST /time-blocks - Invalid time range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, timeblocks.ErrInvalidRecurrence):
			h.logger.Warn("POST /time-blocks - Invalid recurrence: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRecurrence)

		case errors.Is(err, timeblocks.ErrInvalidInput):
			h.logger.Warn("POST /time-blocks - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /time-blocks - Failed: employee_id=%d, error=%v", req.EmployeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /time-blocks - Created: time_block_id=%d, employee_id=%d, user_id=%d",
		result.ID, result.EmployeeID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
