package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/kruglovd/CB-SchedulingService/pkg/dbmetrics"
	"github.com/kruglovd/CB-SchedulingService/pkg/psqlbuilder"
	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

// Repository репозиторий оверрайдов доступности (availability store)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetUnavailableStarts получает времена начала слотов, явно помеченных
// недоступными для консультанта на указанную дату
func (r *Repository) GetUnavailableStarts(ctx context.Context, consultantID int64, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time").
		From("availability_overrides").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		Where(squirrel.Eq{"override_date": date}).
		Where(squirrel.Eq{"is_available": false}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUnavailableStarts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnavailableStarts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	starts := make([]types.TimeString, 0)
	for rows.Next() {
		var start types.TimeString
		if err := rows.Scan(&start); err != nil {
			return nil, fmt.Errorf("%w: GetUnavailableStarts - scan start_time: %v", ErrScanRow, err)
		}
		starts = append(starts, start)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetUnavailableStarts - rows error: %v", ErrScanRow, err)
	}

	return starts, nil
}

// ReplaceForDate атомарно заменяет набор оверрайдов даты: удаляет все строки
// консультанта за дату и вставляет новые пометки недоступности одним батчем.
// Вызывается только внутри транзакции — частичная замена недопустима, дата
// не должна остаться со смесью старых и новых оверрайдов.
func (r *Repository) ReplaceForDate(ctx context.Context, consultantID int64, date time.Time, unavailableStarts []types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("availability_overrides").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		Where(squirrel.Eq{"override_date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceForDate - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForDate - execute delete: %v", ErrExecQuery, err)
	}

	if len(unavailableStarts) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("availability_overrides").
		Columns("consultant_id", "override_date", "start_time", "is_available")

	for _, start := range unavailableStarts {
		insertBuilder = insertBuilder.Values(consultantID, date, start, false)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForDate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForDate - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
