package update_availability

import (
	"time"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	replaceOverrides "github.com/kruglovd/CB-SchedulingService/internal/usecase/replace_overrides"
	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

// UpdateAvailabilityRequest HTTP request model
type UpdateAvailabilityRequest struct {
	Date              string   `json:"date"`                  // "2026-09-15"
	UnavailableStarts []string `json:"unavailableStartTimes"` // ["10:30", "14:30"]
}

// UpdateAvailabilityResponse HTTP response model
type UpdateAvailabilityResponse struct {
	ConsultantID      int64    `json:"consultantId"`
	Date              string   `json:"date"`
	UnavailableStarts []string `json:"unavailableStartTimes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAvailabilityRequest) ToUseCaseRequest(consultantID, callerID int64) (*replaceOverrides.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	starts := make([]types.TimeString, len(r.UnavailableStarts))
	for i, raw := range r.UnavailableStarts {
		start, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return nil, err
		}
		starts[i] = start
	}

	return &replaceOverrides.Request{
		ConsultantID:      consultantID,
		CallerID:          callerID,
		Date:              date,
		UnavailableStarts: starts,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *replaceOverrides.Response) *UpdateAvailabilityResponse {
	starts := make([]string, len(resp.UnavailableStarts))
	for i, start := range resp.UnavailableStarts {
		starts[i] = start.String()
	}

	return &UpdateAvailabilityResponse{
		ConsultantID:      resp.ConsultantID,
		Date:              resp.Date,
		UnavailableStarts: starts,
	}
}
