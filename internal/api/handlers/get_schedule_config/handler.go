package get_schedule_config

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kruglovd/CB-SchedulingService/internal/api/handlers"
)

const msgInvalidConsultantID = "некорректный ID консультанта"

type Handler struct {
	resolver ScheduleResolver
	logger   Logger
}

func NewHandler(resolver ScheduleResolver, logger Logger) *Handler {
	return &Handler{
		resolver: resolver,
		logger:   logger,
	}
}

// Handle GET /api/v1/consultants/{consultantId}/schedule-config
// Расписание общее для деплоймента, ID консультанта только валидируется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	consultantIDStr := vars["consultantId"]
	consultantID, err := strconv.ParseInt(consultantIDStr, 10, 64)
	if err != nil || consultantID <= 0 {
		h.logger.Warn("GET /consultants/{id}/schedule-config - Invalid consultant ID: %q", consultantIDStr)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	response := FromDomainConfig(h.resolver.Config())

	h.logger.Info("GET /consultants/{id}/schedule-config - Config retrieved: consultant_id=%d", consultantID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
