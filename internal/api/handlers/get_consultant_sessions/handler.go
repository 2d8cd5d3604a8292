package get_consultant_sessions

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kruglovd/CB-SchedulingService/internal/api/handlers"
	"github.com/kruglovd/CB-SchedulingService/internal/api/middleware"
	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	"github.com/kruglovd/CB-SchedulingService/internal/service/sessions"
	"github.com/kruglovd/CB-SchedulingService/internal/service/sessions/models"
)

const (
	msgInvalidConsultantID = "некорректный ID консультанта"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus       = "некорректный статус сессии"
	msgConsultantNotFound  = "консультант не найден"
	msgForbidden           = "доступ запрещен"
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

// Handle GET /api/v1/consultants/{consultantId}/sessions
// Query params: date (optional), status (optional), includeInactive (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Error("GET /consultants/{id}/sessions - Missing user ID in context")
		handlers.RespondInternalError(w)
		return
	}

	// Извлекаем consultantId из URL
	vars := mux.Vars(r)
	consultantIDStr := vars["consultantId"]
	consultantID, err := strconv.ParseInt(consultantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/sessions - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	// Извлекаем date из query параметров (опционально)
	var datePtr *time.Time
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /consultants/{id}/sessions - Invalid date format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		datePtr = &date
	}

	// Извлекаем status из query параметров (опционально)
	var statusPtr *string
	if status := r.URL.Query().Get("status"); status != "" {
		statusPtr = &status
	}

	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	serviceReq := &models.GetConsultantSessionsRequest{
		CallerID:        callerID,
		ConsultantID:    consultantID,
		Date:            datePtr,
		Status:          statusPtr,
		IncludeInactive: includeInactive,
	}

	result, err := h.service.GetConsultantSessions(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("GET /consultants/{id}/sessions - Access denied: consultant_id=%d, caller_id=%d",
				consultantID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrConsultantNotFound):
			h.logger.Warn("GET /consultants/{id}/sessions - Consultant not found: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /consultants/{id}/sessions - Invalid filter: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /consultants/{id}/sessions - Failed to get sessions: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultants/{id}/sessions - Sessions retrieved: consultant_id=%d, count=%d",
		consultantID, len(result.Sessions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
