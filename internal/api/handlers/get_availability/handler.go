package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kruglovd/CB-SchedulingService/internal/api/handlers"
	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	resolveDay "github.com/kruglovd/CB-SchedulingService/internal/usecase/resolve_day"
)

const (
	msgInvalidConsultantID = "некорректный ID консультанта"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgConsultantNotFound  = "консультант не найден"
)

type Handler struct {
	useCase ResolveDayUseCase
	logger  Logger
}

func NewHandler(useCase ResolveDayUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/consultants/{consultantId}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем consultantId из URL
	consultantIDStr := vars["consultantId"]
	consultantID, err := strconv.ParseInt(consultantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/availability - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /consultants/{id}/availability - Missing date: consultant_id=%d", consultantID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &resolveDay.Request{
		ConsultantID: consultantID,
		Date:         date,
	})
	if err != nil {
		switch {
		case errors.Is(err, resolveDay.ErrConsultantNotFound):
			h.logger.Warn("GET /consultants/{id}/availability - Consultant not found: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, resolveDay.ErrInvalidInput):
			h.logger.Warn("GET /consultants/{id}/availability - Invalid input: consultant_id=%d, error=%v", consultantID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /consultants/{id}/availability - Failed to resolve day: consultant_id=%d, date=%s, error=%v",
				consultantID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultants/{id}/availability - Day resolved: consultant_id=%d, date=%s, slots_count=%d",
		consultantID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
