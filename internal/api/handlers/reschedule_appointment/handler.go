package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonbw/SBW-SchedulingService/internal/api/handlers"
	"github.com/salonbw/SBW-SchedulingService/internal/api/middleware"
	rescheduleAppointment "github.com/salonbw/SBW-SchedulingService/internal/usecase/reschedule_appointment"
	"github.com/salonbw/SBW-SchedulingService/pkg/txmanager"
)

const (
	msgInvalidAppointmentID = "некорректный ID визита"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidTime          = "некорректный формат времени, ожидается RFC3339"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "визит не найден"
	msgServiceNotFound      = "услуга визита не найдена"
	msgEmployeeNotFound     = "целевой сотрудник не найден"
	msgNotReschedulable     = "визит в текущем статусе нельзя перенести"
	msgConflict             = "новый интервал блокирован"
	msgTxConflict           = "конфликт конкурентного доступа, повторите запрос"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictsErr *rescheduleAppointment.ConflictsError

		switch {
		case errors.As(err, &conflictsErr):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Conflict: appointment_id=%d, conflicts=%d",
				appointmentID, len(conflictsErr.Conflicts))
			handlers.RespondJSON(w, http.StatusConflict, FromConflicts(msgConflict, conflictsErr.Conflicts))

		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrServiceNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Service not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, rescheduleAppointment.ErrEmployeeNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Target employee not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, rescheduleAppointment.ErrNotReschedulable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Not reschedulable: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgNotReschedulable)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput),
			errors.Is(err, rescheduleAppointment.ErrInvalidTimeRange):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Serialization conflict: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgTxConflict)

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Rescheduled: appointment_id=%d, user_id=%d", appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
