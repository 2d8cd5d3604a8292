package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	"github.com/kruglovd/CB-SchedulingService/pkg/dbmetrics"
	"github.com/kruglovd/CB-SchedulingService/pkg/psqlbuilder"
	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

const (
	// Имена ограничений из миграций, по которым различаем unique violation
	constraintActiveSlot     = "sessions_active_slot_idx"
	constraintIdempotencyKey = "sessions_idempotency_key_idx"

	pgUniqueViolation = "23505"
)

var sessionColumns = []string{
	"id",
	"consultant_id",
	"client_id",
	"session_date",
	"start_time",
	"duration_minutes",
	"status",
	"price",
	"idempotency_key",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"refund_amount",
	"refund_percentage",
	"created_at",
	"updated_at",
}

// Repository репозиторий журнала сессий (booking ledger)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую сессию.
// Частичный уникальный индекс по (consultant_id, session_date, start_time)
// для активных статусов гарантирует, что два конкурентных создания на один
// слот не пройдут оба: проигравший получает ErrSlotTaken.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"consultant_id",
			"client_id",
			"session_date",
			"start_time",
			"duration_minutes",
			"status",
			"price",
			"idempotency_key",
			"notes",
		).
		Values(
			session.ConsultantID,
			session.ClientID,
			session.SessionDate,
			session.StartTime,
			session.DurationMinutes,
			session.Status,
			session.Price,
			session.IdempotencyKey,
			session.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&session.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			switch constraint {
			case constraintActiveSlot:
				return nil, ErrSlotTaken
			case constraintIdempotencyKey:
				return nil, ErrDuplicateIdempotencyKey
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return session, nil
}

// GetByID получает сессию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSession(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByIdempotencyKey получает сессию по ключу идемпотентности
func (r *Repository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"idempotency_key": key}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSession(executor.QueryRowContext(ctx, query, args...), "GetByIdempotencyKey")
}

// GetByClientID получает список сессий клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.SessionStatus) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("session_date DESC, start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// GetByConsultantWithFilter получает сессии консультанта с фильтрацией
// по дате, статусу и включению неактивных сессий
func (r *Repository) GetByConsultantWithFilter(ctx context.Context, filter domain.ConsultantSessionsFilter) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"consultant_id": filter.ConsultantID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"session_date": *filter.Date})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Без явного статуса по умолчанию отдаём только активные сессии
		activeStatusStrings := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			activeStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings})
	}

	if filter.Date != nil {
		// Для конкретной даты сортируем по времени начала
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("session_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByConsultantWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByConsultantWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// GetOccupiedStarts получает времена начала слотов, занятых активными
// сессиями консультанта на указанную дату.
// Внутри транзакции добавляет FOR UPDATE: резервирование и пакетная замена
// оверрайдов блокируют строки дня на время проверки.
func (r *Repository) GetOccupiedStarts(ctx context.Context, consultantID int64, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("start_time").
		From("sessions").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		Where(squirrel.Eq{"session_date": date}).
		Where(squirrel.Eq{"status": activeStatusStrings}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupiedStarts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupiedStarts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	starts := make([]types.TimeString, 0)
	for rows.Next() {
		var start types.TimeString
		if err := rows.Scan(&start); err != nil {
			return nil, fmt.Errorf("%w: GetOccupiedStarts - scan start_time: %v", ErrScanRow, err)
		}
		starts = append(starts, start)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOccupiedStarts - rows error: %v", ErrScanRow, err)
	}

	return starts, nil
}

// CancelConditional условно переводит сессию в cancelled.
// Обновляет строку только если текущий статус допускает отмену; если ни одна
// строка не затронута, возвращает ErrSessionNotCancellable — одновременная
// вторая отмена той же сессии не пройдёт.
func (r *Repository) CancelConditional(
	ctx context.Context,
	id int64,
	reason string,
	cancelledAt time.Time,
	refundAmount int64,
	refundPercentage int,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cancellableStatusStrings := []string{
		string(domain.StatusPending),
		string(domain.StatusConfirmed),
	}

	query, args, err := psqlbuilder.Update("sessions").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", cancelledAt).
		Set("refund_amount", refundAmount).
		Set("refund_percentage", refundPercentage).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": cancellableStatusStrings}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelConditional - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelConditional - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelConditional - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotCancellable
	}

	return nil
}

// scanSession сканирует одну строку в сессию
func (r *Repository) scanSession(row *sql.Row, method string) (*domain.Session, error) {
	var session domain.Session
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&session.ID,
		&session.ConsultantID,
		&session.ClientID,
		&session.SessionDate,
		&session.StartTime,
		&session.DurationMinutes,
		&session.Status,
		&session.Price,
		&session.IdempotencyKey,
		&session.Notes,
		&session.CancellationReason,
		&session.CancelledAt,
		&session.RefundAmount,
		&session.RefundPercentage,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan session: %v", ErrScanRow, method, err)
	}

	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return &session, nil
}

// scanSessions сканирует результаты запроса в слайс сессий
func (r *Repository) scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	sessions := make([]*domain.Session, 0)

	for rows.Next() {
		var session domain.Session
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&session.ID,
			&session.ConsultantID,
			&session.ClientID,
			&session.SessionDate,
			&session.StartTime,
			&session.DurationMinutes,
			&session.Status,
			&session.Price,
			&session.IdempotencyKey,
			&session.Notes,
			&session.CancellationReason,
			&session.CancelledAt,
			&session.RefundAmount,
			&session.RefundPercentage,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSessions - scan row: %v", ErrScanRow, err)
		}

		session.CreatedAt = createdAt.Time
		session.UpdatedAt = updatedAt.Time

		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSessions - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}

// uniqueViolation возвращает имя нарушенного ограничения, если ошибка
// является unique violation PostgreSQL
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}
