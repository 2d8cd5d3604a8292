package reserve_session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	sessionRepo "github.com/kruglovd/CB-SchedulingService/internal/infra/storage/session"
	directoryClient "github.com/kruglovd/CB-SchedulingService/internal/integrations/directory"
	"github.com/kruglovd/CB-SchedulingService/internal/integrations/notifier"
	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

// notifyTimeout таймаут отправки fire-and-forget уведомления
const notifyTimeout = 5 * time.Second

// UseCase use case резервирования слота (единственный путь записи в журнал
// сессий). Проверка и резервирование выполняются одним атомарным шагом:
// сериализуемая транзакция + частичный уникальный индекс по слоту в БД.
type UseCase struct {
	sessionRepo  SessionRepository
	resolver     ScheduleResolver
	directory    DirectoryClient
	notify       Notifier
	cache        AvailabilityCache
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	resolver ScheduleResolver,
	directory DirectoryClient,
	notify Notifier,
	cache AvailabilityCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		resolver:     resolver,
		directory:    directory,
		notify:       notify,
		cache:        cache,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case резервирования слота.
// Два конкурентных запроса на один слот не пройдут оба: проигравший получает
// ErrSlotAlreadyBooked. Ошибка сериализации транзакции пробрасывается как
// txmanager.ErrSerializationFailure — её можно безопасно повторить,
// дубликат при повторе отсекается ключом идемпотентности.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSession: consultant=%d, client=%d, date=%s, time=%s",
		req.ConsultantID, req.ClientID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSession: validation failed: %v", err)
		return nil, err
	}

	// 2. Повтор по ключу идемпотентности возвращает ранее созданную сессию
	if req.IdempotencyKey != nil {
		existing, err := uc.sessionRepo.GetByIdempotencyKey(ctx, *req.IdempotencyKey)
		if err == nil {
			uc.logger.Info("ReserveSession: idempotent replay, returning session id=%d", existing.ID)
			return toResponse(existing), nil
		}
		if !errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Error("ReserveSession: idempotency lookup failed: %v", err)
			return nil, fmt.Errorf("%w: idempotency lookup failed: %v", ErrInternal, err)
		}
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Валидация даты
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("ReserveSession: date validation failed: %v", err)
		return nil, err
	}

	cfg := uc.resolver.Config()

	// 5. Выходной день — жёсткое правило, проверяется до обращения к БД
	if cfg.IsClosedDay(req.Date) {
		uc.logger.Warn("ReserveSession: date %s falls on closed weekday", req.Date.Format(domain.DateFormat))
		return nil, ErrClosedDay
	}

	// 6. Слот должен существовать в канонической сетке с точной длительностью
	inGrid, err := cfg.ContainsSlot(req.StartTime, req.DurationMinutes)
	if err != nil {
		uc.logger.Error("ReserveSession: grid check failed: %v", err)
		return nil, fmt.Errorf("%w: grid check failed: %v", ErrInternal, err)
	}
	if !inGrid {
		uc.logger.Warn("ReserveSession: slot %s/%dmin is not in the grid", req.StartTime, req.DurationMinutes)
		return nil, ErrUnknownSlot
	}

	// 7. Получаем консультанта из справочника
	consultant, err := uc.directory.GetConsultant(ctx, req.ConsultantID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrConsultantNotFound) {
			uc.logger.Warn("ReserveSession: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		uc.logger.Error("ReserveSession: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}

	if !consultant.Active {
		uc.logger.Warn("ReserveSession: consultant id=%d is not active", req.ConsultantID)
		return nil, ErrConsultantInactive
	}

	// Переменная для хранения результата
	var result *domain.Session

	// 8. Проверка статуса слота и вставка — в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Разрешаем статус слотов дня; чтение занятости внутри
		// транзакции блокирует сессии дня (FOR UPDATE)
		slots, err := uc.resolver.ResolveDay(txCtx, req.ConsultantID, req.Date)
		if err != nil {
			uc.logger.Error("ReserveSession: failed to resolve day: %v", err)
			return fmt.Errorf("%w: failed to resolve day: %v", ErrInternal, err)
		}

		// 8.2. Проверяем статус целевого слота
		if err := checkTargetSlot(slots, req.StartTime); err != nil {
			uc.logger.Warn("ReserveSession: slot %s rejected: %v", req.StartTime, err)
			return err
		}

		// 8.3. Создаем сессию
		session := &domain.Session{
			ConsultantID:    req.ConsultantID,
			ClientID:        req.ClientID,
			SessionDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			Status:          initialStatus(consultant.RequiresPrepayment),
			Price:           sessionPrice(consultant.HourlyRate, req.DurationMinutes),
			IdempotencyKey:  req.IdempotencyKey,
			Notes:           req.Notes,
		}

		created, err := uc.sessionRepo.Create(txCtx, session)
		if err != nil {
			// Уникальный индекс — последний рубеж против двойного бронирования
			if errors.Is(err, sessionRepo.ErrSlotTaken) {
				uc.logger.Warn("ReserveSession: unique index rejected slot %s", req.StartTime)
				return ErrSlotAlreadyBooked
			}
			uc.logger.Error("ReserveSession: failed to create session: %v", err)
			return fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конкурентный повтор с тем же ключом идемпотентности: возвращаем
		// выигравшую сессию вместо ошибки
		if errors.Is(err, sessionRepo.ErrDuplicateIdempotencyKey) && req.IdempotencyKey != nil {
			existing, lookupErr := uc.sessionRepo.GetByIdempotencyKey(ctx, *req.IdempotencyKey)
			if lookupErr == nil {
				uc.logger.Info("ReserveSession: concurrent idempotent replay, returning session id=%d", existing.ID)
				return toResponse(existing), nil
			}
		}
		return nil, err
	}

	uc.logger.Info("ReserveSession: successfully created session id=%d, status=%s", result.ID, result.Status)

	// 9. Инвалидируем кеш доступности дня
	uc.cache.InvalidateDay(ctx, req.ConsultantID, req.Date)

	// 10. Уведомление fire-and-forget: ошибки не откатывают бронирование
	uc.notifyBooked(result)

	return toResponse(result), nil
}

// checkTargetSlot проверяет разрешённый статус целевого слота.
// Сетка уже проверена, поэтому отсутствие слота в выдаче — внутренняя ошибка.
func checkTargetSlot(slots []domain.ResolvedSlot, start types.TimeString) error {
	for _, slot := range slots {
		if slot.StartTime != start {
			continue
		}
		switch slot.Status {
		case domain.SlotBooked:
			return ErrSlotAlreadyBooked
		case domain.SlotUnavailable:
			return ErrSlotUnavailable
		default:
			return nil
		}
	}
	return fmt.Errorf("%w: target slot missing from resolved day", ErrInternal)
}

func (uc *UseCase) notifyBooked(session *domain.Session) {
	event := notifier.SessionBookedEvent{
		SessionID:    session.ID,
		ConsultantID: session.ConsultantID,
		ClientID:     session.ClientID,
		Date:         session.SessionDate.Format(domain.DateFormat),
		StartTime:    session.StartTime.String(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.notify.SessionBooked(ctx, event); err != nil {
			uc.logger.Warn("ReserveSession: booked notification failed for session id=%d: %v", session.ID, err)
		}
	}()
}
