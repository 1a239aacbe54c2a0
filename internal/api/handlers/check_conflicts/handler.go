package check_conflicts

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/salonbw/SBW-SchedulingService/internal/api/handlers"
	checkConflicts "github.com/salonbw/SBW-SchedulingService/internal/usecase/check_conflicts"
)

const (
	msgInvalidEmployeeID  = "некорректный ID сотрудника"
	msgInvalidStart       = "некорректный параметр start, ожидается RFC3339"
	msgInvalidEnd         = "некорректный параметр end, ожидается RFC3339"
	msgInvalidExcludeID   = "некорректный параметр excludeAppointmentId"
	msgInvalidTimeRange   = "некорректный временной диапазон"
)

type Handler struct {
	useCase CheckConflictsUseCase
	logger  Logger
}

func NewHandler(useCase CheckConflictsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/conflicts?start=...&end=...&excludeAppointmentId=...&force=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/conflicts - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	query := r.URL.Query()

	start, err := time.Parse(time.RFC3339, query.Get("start"))
	if err != nil {
		h.logger.Warn("GET /employees/{id}/conflicts - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	end, err := time.Parse(time.RFC3339, query.Get("end"))
	if err != nil {
		h.logger.Warn("GET /employees/{id}/conflicts - Invalid end: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEnd)
		return
	}

	var excludeID *int64
	if raw := query.Get("excludeAppointmentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /employees/{id}/conflicts - Invalid excludeAppointmentId: %v", err)
			handlers.RespondBadRequest(w, msgInvalidExcludeID)
			return
		}
		excludeID = &id
	}

	force := query.Get("force") == "true"

	result, err := h.useCase.Execute(r.Context(), &checkConflicts.Request{
		EmployeeID:           employeeID,
		Start:                start,
		End:                  end,
		ExcludeAppointmentID: excludeID,
		Force:                force,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkConflicts.ErrInvalidTimeRange):
			h.logger.Warn("GET /employees/{id}/conflicts - Invalid time range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, checkConflicts.ErrInvalidInput):
			h.logger.Warn("GET /employees/{id}/conflicts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /employees/{id}/conflicts - Failed: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
