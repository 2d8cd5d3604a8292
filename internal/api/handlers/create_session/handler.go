package create_session

import (
	"errors"
	"net/http"

	"github.com/kruglovd/CB-SchedulingService/internal/api/handlers"
	"github.com/kruglovd/CB-SchedulingService/internal/api/middleware"
	reserveSession "github.com/kruglovd/CB-SchedulingService/internal/usecase/reserve_session"
	"github.com/kruglovd/CB-SchedulingService/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgConsultantNotFound = "консультант не найден"
	msgConsultantInactive = "консультант не принимает записи"
	msgInvalidDate        = "некорректная дата сессии"
	msgUnknownSlot        = "запрошенный слот не входит в сетку расписания"
	msgClosedDay          = "выбранная дата приходится на выходной день"
	msgSlotUnavailable    = "слот помечен недоступным"
	msgSlotAlreadyBooked  = "слот уже занят"
	msgRetryLater         = "не удалось зарезервировать слот, повторите запрос"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase ReserveSessionUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Error("POST /sessions - Missing user ID in context")
		handlers.RespondInternalError(w)
		return
	}

	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /sessions - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reserveSession.ErrConsultantNotFound):
			h.logger.Warn("POST /sessions - Consultant not found: consultant_id=%d", req.ConsultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, reserveSession.ErrConsultantInactive):
			h.logger.Warn("POST /sessions - Consultant inactive: consultant_id=%d", req.ConsultantID)
			handlers.RespondConflict(w, handlers.CodeMarkedUnavailable, msgConsultantInactive)

		case errors.Is(err, reserveSession.ErrInvalidDate):
			h.logger.Warn("POST /sessions - Invalid session date: client_id=%d, date=%s", clientID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, reserveSession.ErrUnknownSlot):
			h.logger.Warn("POST /sessions - Unknown slot: client_id=%d, start_time=%s, duration=%d",
				clientID, req.StartTime, req.DurationMinutes)
			handlers.RespondConflict(w, handlers.CodeUnknownSlot, msgUnknownSlot)

		case errors.Is(err, reserveSession.ErrClosedDay):
			h.logger.Warn("POST /sessions - Closed day: client_id=%d, date=%s", clientID, req.Date)
			handlers.RespondConflict(w, handlers.CodeClosedDay, msgClosedDay)

		case errors.Is(err, reserveSession.ErrSlotUnavailable):
			h.logger.Warn("POST /sessions - Slot unavailable: consultant_id=%d, date=%s, start_time=%s",
				req.ConsultantID, req.Date, req.StartTime)
			handlers.RespondConflict(w, handlers.CodeMarkedUnavailable, msgSlotUnavailable)

		case errors.Is(err, reserveSession.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /sessions - Slot already booked: consultant_id=%d, date=%s, start_time=%s",
				req.ConsultantID, req.Date, req.StartTime)
			handlers.RespondConflict(w, handlers.CodeAlreadyBooked, msgSlotAlreadyBooked)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("POST /sessions - Serialization failure: consultant_id=%d, date=%s, start_time=%s",
				req.ConsultantID, req.Date, req.StartTime)
			handlers.RespondServiceUnavailable(w, msgRetryLater)

		case errors.Is(err, reserveSession.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /sessions - Failed to reserve slot: client_id=%d, consultant_id=%d, error=%v",
				clientID, req.ConsultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session created: session_id=%d, client_id=%d, consultant_id=%d",
		result.ID, clientID, req.ConsultantID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
