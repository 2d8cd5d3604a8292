package cancel_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kruglovd/CB-SchedulingService/internal/api/handlers"
	"github.com/kruglovd/CB-SchedulingService/internal/api/middleware"
	cancelSession "github.com/kruglovd/CB-SchedulingService/internal/usecase/cancel_session"
)

const (
	msgInvalidSessionID   = "некорректный ID сессии"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "сессия не найдена"
	msgForbidden          = "доступ запрещен"
	msgCannotCancel       = "сессия не может быть отменена в текущем статусе"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CancelSessionUseCase
	logger  Logger
}

func NewHandler(useCase CancelSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Error("POST /sessions/{id}/cancel - Missing user ID in context")
		handlers.RespondInternalError(w)
		return
	}

	// Извлекаем sessionId из URL
	vars := mux.Vars(r)
	sessionIDStr := vars["sessionId"]
	sessionID, err := strconv.ParseInt(sessionIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/cancel - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	// Декодируем body
	var req CancelSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(sessionID, callerID))
	if err != nil {
		switch {
		case errors.Is(err, cancelSession.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/cancel - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, cancelSession.ErrAccessDenied):
			h.logger.Warn("POST /sessions/{id}/cancel - Access denied: session_id=%d, caller_id=%d",
				sessionID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelSession.ErrInvalidStateTransition):
			h.logger.Warn("POST /sessions/{id}/cancel - Cannot cancel: session_id=%d", sessionID)
			handlers.RespondConflict(w, handlers.CodeInvalidStateTransition, msgCannotCancel)

		case errors.Is(err, cancelSession.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/cancel - Invalid input: session_id=%d, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /sessions/{id}/cancel - Failed to cancel session: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/cancel - Session cancelled: session_id=%d, caller_id=%d, refund=%d%%",
		sessionID, callerID, result.RefundPercentage)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
