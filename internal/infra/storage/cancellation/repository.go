package cancellation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	"github.com/kruglovd/CB-SchedulingService/pkg/dbmetrics"
	"github.com/kruglovd/CB-SchedulingService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

// Repository репозиторий записей об отмене и заявок на возврат
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отмен
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateRecord создает запись об отмене сессии.
// Первичный ключ по session_id гарантирует не более одной записи на сессию.
func (r *Repository) CreateRecord(ctx context.Context, record *domain.CancellationRecord) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cancellation_records").
		Columns(
			"session_id",
			"reason",
			"notes",
			"refund_amount",
			"refund_percentage",
			"cancelled_at",
		).
		Values(
			record.SessionID,
			record.Reason,
			record.Notes,
			record.RefundAmount,
			record.RefundPercentage,
			record.CancelledAt,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateRecord - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return ErrRecordExists
		}
		return fmt.Errorf("%w: CreateRecord - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetRecord получает запись об отмене по ID сессии
func (r *Repository) GetRecord(ctx context.Context, sessionID int64) (*domain.CancellationRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"session_id",
		"reason",
		"notes",
		"refund_amount",
		"refund_percentage",
		"cancelled_at",
	).
		From("cancellation_records").
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRecord - build select query: %v", ErrBuildQuery, err)
	}

	var record domain.CancellationRecord
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.SessionID,
		&record.Reason,
		&record.Notes,
		&record.RefundAmount,
		&record.RefundPercentage,
		&record.CancelledAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRecord - scan record: %v", ErrScanRow, err)
	}

	return &record, nil
}

// CreateRefundRequest создает заявку на возврат для платёжного сервиса.
// Заявка создается в статусе pending; дальнейшая обработка вне этого сервиса.
func (r *Repository) CreateRefundRequest(ctx context.Context, request *domain.RefundRequest) (*domain.RefundRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("refund_requests").
		Columns(
			"session_id",
			"amount",
			"status",
			"requested_at",
		).
		Values(
			request.SessionID,
			request.Amount,
			request.Status,
			request.RequestedAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateRefundRequest - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&request.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateRefundRequest - execute insert: %v", ErrExecQuery, err)
	}

	return request, nil
}
