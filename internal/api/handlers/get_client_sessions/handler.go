package get_client_sessions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kruglovd/CB-SchedulingService/internal/api/handlers"
	"github.com/kruglovd/CB-SchedulingService/internal/api/middleware"
	"github.com/kruglovd/CB-SchedulingService/internal/service/sessions"
	"github.com/kruglovd/CB-SchedulingService/internal/service/sessions/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidStatus = "некорректный статус сессии"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/sessions
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Error("GET /users/{userId}/sessions - Missing user ID in context")
		handlers.RespondInternalError(w)
		return
	}

	// Извлекаем userId из URL
	vars := mux.Vars(r)
	userIDStr := vars["userId"]
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/sessions - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Историю сессий клиента видит только он сам
	if callerID != userID {
		h.logger.Warn("GET /users/{userId}/sessions - Access denied: user_id=%d, caller_id=%d", userID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	serviceReq := &models.GetClientSessionsRequest{
		ClientID: userID,
		Status:   statusPtr,
	}

	result, err := h.service.GetClientSessions(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /users/{userId}/sessions - Invalid status: user_id=%d, status=%s", userID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{userId}/sessions - Failed to get sessions: user_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{userId}/sessions - Sessions retrieved: user_id=%d, count=%d",
		userID, len(result.Sessions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
