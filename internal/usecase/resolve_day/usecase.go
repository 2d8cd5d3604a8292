package resolve_day

import (
	"context"
	"errors"
	"fmt"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	directoryClient "github.com/kruglovd/CB-SchedulingService/internal/integrations/directory"
)

// UseCase use case выдачи статуса слотов дня (read-through через кеш).
// Кеш ускоряет только чтение: решения о конфликтах всегда принимаются по БД.
type UseCase struct {
	resolver  ScheduleResolver
	directory DirectoryClient
	cache     AvailabilityCache
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resolver ScheduleResolver,
	directory DirectoryClient,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		resolver:  resolver,
		directory: directory,
		cache:     cache,
		logger:    logger,
	}
}

// Execute выполняет use case получения статуса слотов дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveDay: validation failed: %v", err)
		return nil, err
	}

	// 2. Попадание в кеш отдаем сразу, до обращения к справочнику и БД
	if slots, ok := uc.cache.GetDay(ctx, req.ConsultantID, req.Date); ok {
		return toResponse(req, slots), nil
	}

	// 3. Проверяем существование консультанта в справочнике
	if _, err := uc.directory.GetConsultant(ctx, req.ConsultantID); err != nil {
		if errors.Is(err, directoryClient.ErrConsultantNotFound) {
			uc.logger.Warn("ResolveDay: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		uc.logger.Error("ResolveDay: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}

	// 4. Разрешаем статус слотов дня по журналу сессий и оверрайдам
	slots, err := uc.resolver.ResolveDay(ctx, req.ConsultantID, req.Date)
	if err != nil {
		uc.logger.Error("ResolveDay: failed to resolve day for consultant=%d date=%s: %v",
			req.ConsultantID, req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to resolve day: %v", ErrInternal, err)
	}

	// 5. Сохраняем день в кеш
	uc.cache.SetDay(ctx, req.ConsultantID, req.Date, slots)

	return toResponse(req, slots), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ConsultantID <= 0 {
		return fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

func toResponse(req *Request, slots []domain.ResolvedSlot) *Response {
	return &Response{
		ConsultantID: req.ConsultantID,
		Date:         req.Date.Format(domain.DateFormat),
		Slots:        slots,
	}
}
