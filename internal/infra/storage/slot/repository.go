package slot

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/pkg/dbmetrics"
	"github.com/m04kA/HappyStay-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

const table = "slots"

// Repository репозиторий ручных блокировок слотов
// Строка слота создается лениво: ее отсутствие означает "не заблокирован"
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// SetBlocked ставит или снимает ручную блокировку (upsert)
func (r *Repository) SetBlocked(ctx context.Context, date time.Time, t types.TimeString, blocked bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("slot_date", "slot_time", "blocked").
		Values(date.Format(domain.DateFormat), t, blocked).
		Suffix("ON CONFLICT (slot_date, slot_time) DO UPDATE SET blocked = EXCLUDED.blocked, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetBlocked - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetBlocked - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// Lock гарантирует наличие строки слота и возвращает флаг блокировки
// Внутри транзакции строка блокируется (FOR UPDATE), что сериализует
// конкурентные бронирования одного слота
func (r *Repository) Lock(ctx context.Context, date time.Time, t types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	day := date.Format(domain.DateFormat)

	insertQuery, insertArgs, err := psqlbuilder.Insert(table).
		Columns("slot_date", "slot_time", "blocked").
		Values(day, t, false).
		Suffix("ON CONFLICT (slot_date, slot_time) DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Lock - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return false, fmt.Errorf("%w: Lock - ensure slot row: %v", ErrExecQuery, err)
	}

	selectBuilder := psqlbuilder.Select("blocked").
		From(table).
		Where(squirrel.Eq{"slot_date": day, "slot_time": t})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Lock - build select query: %v", ErrBuildQuery, err)
	}

	var blocked bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&blocked); err != nil {
		return false, fmt.Errorf("%w: Lock - scan slot: %v", ErrScanRow, err)
	}

	return blocked, nil
}

// GetBlockedByDate заблокированные времена на дату
func (r *Repository) GetBlockedByDate(ctx context.Context, date time.Time) (map[types.TimeString]bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_time").
		From(table).
		Where(squirrel.Eq{"slot_date": date.Format(domain.DateFormat), "blocked": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocked := make(map[types.TimeString]bool)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: GetBlockedByDate - scan slot: %v", ErrScanRow, err)
		}
		blocked[t] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlockedByDate - rows iteration: %v", ErrScanRow, err)
	}

	return blocked, nil
}
