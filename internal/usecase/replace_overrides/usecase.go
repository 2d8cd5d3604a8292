package replace_overrides

import (
	"context"
	"errors"
	"fmt"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	directoryClient "github.com/kruglovd/CB-SchedulingService/internal/integrations/directory"
	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

// UseCase use case полной замены оверрайдов доступности на дату.
// Семантика PUT: присланный набор замещает все прежние оверрайды даты,
// частичных правок нет. Слоты с активными сессиями пометить недоступными
// нельзя — бронирование скрыть оверрайдом не получится.
type UseCase struct {
	availRepo   AvailabilityRepository
	sessionRepo SessionRepository
	resolver    ScheduleResolver
	directory   DirectoryClient
	cache       AvailabilityCache
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availRepo AvailabilityRepository,
	sessionRepo SessionRepository,
	resolver ScheduleResolver,
	directory DirectoryClient,
	cache AvailabilityCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availRepo:   availRepo,
		sessionRepo: sessionRepo,
		resolver:    resolver,
		directory:   directory,
		cache:       cache,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case замены оверрайдов доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReplaceOverrides: consultant=%d, date=%s, marks=%d",
		req.ConsultantID, req.Date.Format(domain.DateFormat), len(req.UnavailableStarts))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReplaceOverrides: validation failed: %v", err)
		return nil, err
	}

	// 2. Менять расписание может только его владелец
	if req.CallerID != req.ConsultantID {
		uc.logger.Warn("ReplaceOverrides: caller id=%d is not consultant id=%d", req.CallerID, req.ConsultantID)
		return nil, ErrAccessDenied
	}

	cfg := uc.resolver.Config()

	// 3. На выходной день оверрайды не принимаются: день и так закрыт,
	// а хранить пометки, которые резолвер игнорирует, бессмысленно
	if cfg.IsClosedDay(req.Date) {
		uc.logger.Warn("ReplaceOverrides: date %s falls on closed weekday", req.Date.Format(domain.DateFormat))
		return nil, ErrClosedDay
	}

	// 4. Каждая пометка должна указывать на слот канонической сетки
	if err := uc.checkGridMembership(cfg, req.UnavailableStarts); err != nil {
		uc.logger.Warn("ReplaceOverrides: grid membership check failed: %v", err)
		return nil, err
	}

	// 5. Проверяем существование консультанта в справочнике
	if _, err := uc.directory.GetConsultant(ctx, req.ConsultantID); err != nil {
		if errors.Is(err, directoryClient.ErrConsultantNotFound) {
			uc.logger.Warn("ReplaceOverrides: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		uc.logger.Error("ReplaceOverrides: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}

	// 6. Проверка занятости и замена — в одной сериализуемой транзакции:
	// конкурентное резервирование не проскочит между проверкой и записью
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Читаем занятые слоты дня с блокировкой FOR UPDATE
		occupied, err := uc.sessionRepo.GetOccupiedStarts(txCtx, req.ConsultantID, req.Date)
		if err != nil {
			uc.logger.Error("ReplaceOverrides: failed to get occupied starts: %v", err)
			return fmt.Errorf("%w: failed to get occupied starts: %v", ErrInternal, err)
		}

		// 6.2. Пометка на занятый слот отклоняет весь запрос
		occupiedSet := make(map[types.TimeString]bool, len(occupied))
		for _, start := range occupied {
			occupiedSet[start] = true
		}
		for _, start := range req.UnavailableStarts {
			if occupiedSet[start] {
				uc.logger.Warn("ReplaceOverrides: slot %s is occupied by an active session", start)
				return ErrSlotBooked
			}
		}

		// 6.3. Атомарно заменяем оверрайды даты
		if err := uc.availRepo.ReplaceForDate(txCtx, req.ConsultantID, req.Date, req.UnavailableStarts); err != nil {
			uc.logger.Error("ReplaceOverrides: failed to replace overrides: %v", err)
			return fmt.Errorf("%w: failed to replace overrides: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ReplaceOverrides: replaced overrides for consultant=%d date=%s",
		req.ConsultantID, req.Date.Format(domain.DateFormat))

	// 7. Инвалидируем кеш доступности дня
	uc.cache.InvalidateDay(ctx, req.ConsultantID, req.Date)

	return &Response{
		ConsultantID:      req.ConsultantID,
		Date:              req.Date.Format(domain.DateFormat),
		UnavailableStarts: req.UnavailableStarts,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ConsultantID <= 0 {
		return fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}

	if req.CallerID <= 0 {
		return fmt.Errorf("%w: callerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	seen := make(map[types.TimeString]bool, len(req.UnavailableStarts))
	for _, start := range req.UnavailableStarts {
		if err := start.Validate(); err != nil {
			return fmt.Errorf("%w: invalid start time %q: %v", ErrInvalidInput, start, err)
		}
		if seen[start] {
			return fmt.Errorf("%w: duplicate start time %s", ErrInvalidInput, start)
		}
		seen[start] = true
	}

	return nil
}

// checkGridMembership проверяет, что каждая пометка попадает в сетку слотов
func (uc *UseCase) checkGridMembership(cfg domain.ScheduleConfig, starts []types.TimeString) error {
	grid, err := cfg.SlotGrid()
	if err != nil {
		return fmt.Errorf("%w: build slot grid: %v", ErrInternal, err)
	}

	gridSet := make(map[types.TimeString]bool, len(grid))
	for _, start := range grid {
		gridSet[start] = true
	}

	for _, start := range starts {
		if !gridSet[start] {
			return fmt.Errorf("%w: %s", ErrUnknownSlot, start)
		}
	}

	return nil
}
