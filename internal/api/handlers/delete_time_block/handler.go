package delete_time_block

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonbw/SBW-SchedulingService/internal/api/handlers"
	"github.com/salonbw/SBW-SchedulingService/internal/api/middleware"
	"github.com/salonbw/SBW-SchedulingService/internal/service/timeblocks"
)

const (
	msgInvalidTimeBlockID = "некорректный ID блокировки"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "блокировка не найдена"
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

// Handle DELETE /api/v1/time-blocks/{timeBlockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	timeBlockID, err := strconv.ParseInt(vars["timeBlockId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /time-blocks/{id} - Invalid time block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeBlockID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /time-blocks/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), timeBlockID); err != nil {
		switch {
		case errors.Is(err, timeblocks.ErrTimeBlockNotFound):
			h.logger.Warn("DELETE /time-blocks/{id} - Not found: time_block_id=%d", timeBlockID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /time-blocks/{id} - Failed: time_block_id=%d, error=%v", timeBlockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /time-blocks/{id} - Deleted: time_block_id=%d, user_id=%d", timeBlockID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
