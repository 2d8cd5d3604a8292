package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kruglovd/CB-SchedulingService/internal/api/handlers"
	"github.com/kruglovd/CB-SchedulingService/internal/api/middleware"
	replaceOverrides "github.com/kruglovd/CB-SchedulingService/internal/usecase/replace_overrides"
	"github.com/kruglovd/CB-SchedulingService/pkg/txmanager"
)

const (
	msgInvalidConsultantID = "некорректный ID консультанта"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgConsultantNotFound  = "консультант не найден"
	msgForbidden           = "доступ запрещен"
	msgClosedDay           = "выбранная дата приходится на выходной день"
	msgUnknownSlot         = "время начала не входит в сетку слотов"
	msgSlotBooked          = "слот занят активной сессией"
	msgRetryLater          = "не удалось применить изменения, повторите запрос"
)

type Handler struct {
	useCase ReplaceOverridesUseCase
	logger  Logger
}

func NewHandler(useCase ReplaceOverridesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/consultants/{consultantId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Error("PUT /consultants/{id}/availability - Missing user ID in context")
		handlers.RespondInternalError(w)
		return
	}

	// Извлекаем consultantId из URL
	vars := mux.Vars(r)
	consultantIDStr := vars["consultantId"]
	consultantID, err := strconv.ParseInt(consultantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /consultants/{id}/availability - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	// Декодируем body
	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /consultants/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времен)
	useCaseReq, err := req.ToUseCaseRequest(consultantID, callerID)
	if err != nil {
		h.logger.Warn("PUT /consultants/{id}/availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, replaceOverrides.ErrConsultantNotFound):
			h.logger.Warn("PUT /consultants/{id}/availability - Consultant not found: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, replaceOverrides.ErrAccessDenied):
			h.logger.Warn("PUT /consultants/{id}/availability - Access denied: consultant_id=%d, caller_id=%d",
				consultantID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, replaceOverrides.ErrClosedDay):
			h.logger.Warn("PUT /consultants/{id}/availability - Closed day: consultant_id=%d, date=%s",
				consultantID, req.Date)
			handlers.RespondConflict(w, handlers.CodeClosedDay, msgClosedDay)

		case errors.Is(err, replaceOverrides.ErrUnknownSlot):
			h.logger.Warn("PUT /consultants/{id}/availability - Unknown slot: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondConflict(w, handlers.CodeUnknownSlot, msgUnknownSlot)

		case errors.Is(err, replaceOverrides.ErrSlotBooked):
			h.logger.Warn("PUT /consultants/{id}/availability - Slot booked: consultant_id=%d, date=%s",
				consultantID, req.Date)
			handlers.RespondConflict(w, handlers.CodeAlreadyBooked, msgSlotBooked)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("PUT /consultants/{id}/availability - Serialization failure: consultant_id=%d, date=%s",
				consultantID, req.Date)
			handlers.RespondServiceUnavailable(w, msgRetryLater)

		case errors.Is(err, replaceOverrides.ErrInvalidInput):
			h.logger.Warn("PUT /consultants/{id}/availability - Invalid input: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondBadRequest(w, msgInvalidDateOrTime)

		default:
			h.logger.Error("PUT /consultants/{id}/availability - Failed to replace overrides: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /consultants/{id}/availability - Overrides replaced: consultant_id=%d, date=%s, marks=%d",
		consultantID, result.Date, len(result.UnavailableStarts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
