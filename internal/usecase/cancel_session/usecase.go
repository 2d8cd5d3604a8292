package cancel_session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	sessionRepo "github.com/kruglovd/CB-SchedulingService/internal/infra/storage/session"
	"github.com/kruglovd/CB-SchedulingService/internal/integrations/notifier"
)

// notifyTimeout таймаут отправки fire-and-forget уведомления
const notifyTimeout = 5 * time.Second

// UseCase use case отмены сессии с расчетом возврата по тарифной сетке.
// Процент возврата фиксируется в момент отмены и далее не пересчитывается.
type UseCase struct {
	sessionRepo      SessionRepository
	cancellationRepo CancellationRepository
	notify           Notifier
	cache            AvailabilityCache
	txManager        TransactionManager
	timeProvider     TimeProvider
	location         *time.Location
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	cancellationRepo CancellationRepository,
	notify Notifier,
	cache AvailabilityCache,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:      sessionRepo,
		cancellationRepo: cancellationRepo,
		notify:           notify,
		cache:            cache,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		location:         location,
		logger:           logger,
	}
}

// Execute выполняет use case отмены сессии.
// Отменить сессию может только её клиент или консультант, и только из
// статусов pending или confirmed. Условный UPDATE в журнале гарантирует,
// что из двух одновременных отмен пройдет ровно одна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelSession: session=%d, caller=%d", req.SessionID, req.CallerID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelSession: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем сессию
	session, err := uc.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Warn("CancelSession: session id=%d not found", req.SessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("CancelSession: failed to get session id=%d: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	// 3. Отмена доступна только участникам сессии
	if session.ClientID != req.CallerID && session.ConsultantID != req.CallerID {
		uc.logger.Warn("CancelSession: caller id=%d is not a party of session id=%d", req.CallerID, req.SessionID)
		return nil, ErrAccessDenied
	}

	// 4. Проверяем допустимость перехода статуса.
	// Сессии в pending_payment освобождает платёжный сервис, не этот путь.
	if !session.CanBeCancelled() {
		uc.logger.Warn("CancelSession: session id=%d in status %s is not cancellable", req.SessionID, session.Status)
		return nil, ErrInvalidStateTransition
	}

	// 5. Рассчитываем возврат по времени до начала сессии
	now := uc.timeProvider.Now()
	startsAt, err := session.StartsAt(uc.location)
	if err != nil {
		uc.logger.Error("CancelSession: failed to compute session start: %v", err)
		return nil, fmt.Errorf("%w: failed to compute session start: %v", ErrInternal, err)
	}

	refundPercentage := domain.RefundPercentageFor(startsAt.Sub(now))
	refundAmount := domain.RefundAmountFor(session.Price, refundPercentage)

	record := &domain.CancellationRecord{
		SessionID:        session.ID,
		Reason:           req.Reason,
		Notes:            req.Notes,
		RefundAmount:     refundAmount,
		RefundPercentage: refundPercentage,
		CancelledAt:      now,
	}

	refundRequested := false

	// 6. Перевод статуса, запись об отмене и заявка на возврат — атомарно
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 6.1. Условный UPDATE: пройдет только из отменяемого статуса
		err := uc.sessionRepo.CancelConditional(
			txCtx, session.ID, req.Reason, now, refundAmount, refundPercentage,
		)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotCancellable) {
				uc.logger.Warn("CancelSession: session id=%d was cancelled concurrently", req.SessionID)
				return ErrInvalidStateTransition
			}
			uc.logger.Error("CancelSession: failed to cancel session id=%d: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to cancel session: %v", ErrInternal, err)
		}

		// 6.2. Создаем запись об отмене
		if err := uc.cancellationRepo.CreateRecord(txCtx, record); err != nil {
			uc.logger.Error("CancelSession: failed to create cancellation record: %v", err)
			return fmt.Errorf("%w: failed to create cancellation record: %v", ErrInternal, err)
		}

		// 6.3. Заявка на возврат создается только при положительной сумме
		if refundAmount > 0 {
			request := &domain.RefundRequest{
				SessionID:   session.ID,
				Amount:      refundAmount,
				Status:      domain.RefundPending,
				RequestedAt: now,
			}
			if _, err := uc.cancellationRepo.CreateRefundRequest(txCtx, request); err != nil {
				uc.logger.Error("CancelSession: failed to create refund request: %v", err)
				return fmt.Errorf("%w: failed to create refund request: %v", ErrInternal, err)
			}
			refundRequested = true
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelSession: session id=%d cancelled, refund %d%% (%d minor units)",
		session.ID, refundPercentage, refundAmount)

	// 7. Слот освободился — инвалидируем кеш доступности дня
	uc.cache.InvalidateDay(ctx, session.ConsultantID, session.SessionDate)

	// 8. Уведомление fire-and-forget: ошибки не откатывают отмену
	uc.notifyCancelled(session, record)

	return toResponse(record, refundRequested), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SessionID <= 0 {
		return fmt.Errorf("%w: sessionID must be positive", ErrInvalidInput)
	}

	if req.CallerID <= 0 {
		return fmt.Errorf("%w: callerID must be positive", ErrInvalidInput)
	}

	if req.Reason == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

func (uc *UseCase) notifyCancelled(session *domain.Session, record *domain.CancellationRecord) {
	event := notifier.SessionCancelledEvent{
		SessionID:        session.ID,
		ConsultantID:     session.ConsultantID,
		ClientID:         session.ClientID,
		Reason:           record.Reason,
		RefundAmount:     record.RefundAmount,
		RefundPercentage: record.RefundPercentage,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.notify.SessionCancelled(ctx, event); err != nil {
			uc.logger.Warn("CancelSession: cancelled notification failed for session id=%d: %v", session.ID, err)
		}
	}()
}
