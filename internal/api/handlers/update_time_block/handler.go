package update_time_block

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonbw/SBW-SchedulingService/internal/api/handlers"
	"github.com/salonbw/SBW-SchedulingService/internal/api/middleware"
	"github.com/salonbw/SBW-SchedulingService/internal/service/timeblocks"
	"github.com/salonbw/SBW-SchedulingService/internal/service/timeblocks/models"
)

const (
	msgInvalidTimeBlockID = "некорректный ID блокировки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "блокировка не найдена"
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

// Handle PATCH /api/v1/time-blocks/{timeBlockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	timeBlockID, err := strconv.ParseInt(vars["timeBlockId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /time-blocks/{id} - Invalid time block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeBlockID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /time-blocks/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateTimeBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /time-blocks/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), timeBlockID, &req)
	if err != nil {
		switch {
		case errors.Is(err, timeblocks.ErrTimeBlockNotFound):
			h.logger.Warn("PATCH /time-blocks/{id} - Not found: time_block_id=%d", timeBlockID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, timeblocks.ErrInvalidTimeRange):
			h.logger.Warn("PATCH /time-blocks/{id} - Invalid time range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, timeblocks.ErrInvalidRecurrence):
			h.logger.Warn("PATCH /time-blocks/{id} - Invalid recurrence: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRecurrence)

		case errors.Is(err, timeblocks.ErrInvalidInput):
			h.logger.Warn("PATCH /time-blocks/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /time-blocks/{id} - Failed: time_block_id=%d, error=%v", timeBlockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /time-blocks/{id} - Updated: time_block_id=%d, user_id=%d", timeBlockID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
