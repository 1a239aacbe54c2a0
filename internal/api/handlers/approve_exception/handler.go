package approve_exception

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonbw/SBW-SchedulingService/internal/api/handlers"
	"github.com/salonbw/SBW-SchedulingService/internal/api/middleware"
	"github.com/salonbw/SBW-SchedulingService/internal/service/timetables"
)

const (
	msgInvalidExceptionID = "некорректный ID исключения"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "исключение не найдено"
	msgAlreadyApproved    = "исключение уже одобрено"
)

type Handler struct {
	service TimetableService
	logger  Logger
}

func NewHandler(service TimetableService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/timetables/exceptions/{exceptionId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	exceptionID, err := strconv.ParseInt(vars["exceptionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /timetables/exceptions/{id}/approve - Invalid exception ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExceptionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /timetables/exceptions/{id}/approve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ApproveException(r.Context(), exceptionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, timetables.ErrExceptionNotFound):
			h.logger.Warn("PATCH /timetables/exceptions/{id}/approve - Not found: exception_id=%d", exceptionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, timetables.ErrAlreadyApproved):
			h.logger.Warn("PATCH /timetables/exceptions/{id}/approve - Already approved: exception_id=%d", exceptionID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyApproved)

		default:
			h.logger.Error("PATCH /timetables/exceptions/{id}/approve - Failed: exception_id=%d, error=%v", exceptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /timetables/exceptions/{id}/approve - Approved: exception_id=%d, approver_id=%d", exceptionID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
