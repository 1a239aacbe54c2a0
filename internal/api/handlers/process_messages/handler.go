package process_messages

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonbw/SBW-SchedulingService/internal/api/handlers"
	"github.com/salonbw/SBW-SchedulingService/internal/api/middleware"
	processMessages "github.com/salonbw/SBW-SchedulingService/internal/usecase/process_messages"
)

const (
	msgInvalidRuleID = "некорректный ID правила"
	msgMissingUserID = "отсутствует ID пользователя"
	msgRuleNotFound  = "правило не найдено"
	msgRuleInactive  = "правило выключено"
)

type Handler struct {
	useCase ProcessMessagesUseCase
	logger  Logger
}

func NewHandler(useCase ProcessMessagesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/automatic-messages/process
// Handle POST /api/v1/automatic-messages/{ruleId}/process
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /automatic-messages/process - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var ruleID *int64
	if raw, present := mux.Vars(r)["ruleId"]; present {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("POST /automatic-messages/{id}/process - Invalid rule ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRuleID)
			return
		}
		ruleID = &id
	}

	result, err := h.useCase.Execute(r.Context(), &processMessages.Request{
		UserID: userID,
		RuleID: ruleID,
	})
	if err != nil {
		switch {
		case errors.Is(err, processMessages.ErrRuleNotFound):
			h.logger.Warn("POST /automatic-messages/process - Rule not found: rule_id=%v", ruleID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, processMessages.ErrRuleInactive):
			h.logger.Warn("POST /automatic-messages/process - Rule inactive: rule_id=%v", ruleID)
			handlers.RespondError(w, http.StatusConflict, msgRuleInactive)

		case errors.Is(err, processMessages.ErrInvalidInput):
			h.logger.Warn("POST /automatic-messages/process - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /automatic-messages/process - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /automatic-messages/process - Done: user_id=%d, sent=%d, skipped=%d, failed=%d",
		userID, result.Sent, result.Skipped, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
