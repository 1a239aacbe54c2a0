package create_exception

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
	msgInvalidTimetableID = "некорректный ID графика"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgExceptionExists    = "на эту дату уже есть исключение"
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

// Handle POST /api/v1/timetables/{timetableId}/exceptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	timetableID, err := strconv.ParseInt(vars["timetableId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /timetables/{id}/exceptions - Invalid timetable ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimetableID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /timetables/{id}/exceptions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /timetables/{id}/exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateException(r.Context(), req.ToServiceRequest(userID, timetableID))
	if err != nil {
		switch {
		case errors.Is(err, timetables.ErrExceptionExists):
			h.logger.Warn("POST /timetables/{id}/exceptions - Exception exists: timetable_id=%d, date=%s", timetableID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgExceptionExists)

		case errors.Is(err, timetables.ErrInvalidInput):
			h.logger.Warn("POST /timetables/{id}/exceptions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /timetables/{id}/exceptions - Failed: timetable_id=%d, error=%v", timetableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /timetables/{id}/exceptions - Created: exception_id=%d, timetable_id=%d, user_id=%d",
		result.ID, timetableID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
