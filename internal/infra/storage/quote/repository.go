package quote

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/pkg/dbmetrics"
	"github.com/m04kA/HappyStay-BookingService/pkg/psqlbuilder"
)

const table = "quotes"

// Repository репозиторий смет; каждая запись - отдельная версия сметы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория смет
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую версию сметы с посчитанной суммой
func (r *Repository) Create(ctx context.Context, in *domain.NewQuote) (*domain.Quote, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	items, err := json.Marshal(in.Items)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - items: %v", ErrEncode, err)
	}

	id := uuid.NewString()
	total := domain.QuoteTotal(in.Items)

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "reservation_id", "status", "items", "total", "notes").
		Values(id, in.ReservationID, string(in.Status), string(items), total, in.Notes).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return &domain.Quote{
		ID:            id,
		ReservationID: in.ReservationID,
		Status:        in.Status,
		Items:         in.Items,
		Total:         total,
		Notes:         in.Notes,
		CreatedAt:     createdAt.Time,
		UpdatedAt:     updatedAt.Time,
	}, nil
}

// GetByReservationIDs все версии смет для набора резерваций, сгруппированные по резервации
func (r *Repository) GetByReservationIDs(ctx context.Context, reservationIDs []string) (map[string][]*domain.Quote, error) {
	result := make(map[string][]*domain.Quote)
	if len(reservationIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"reservation_id",
		"status",
		"items",
		"total",
		"notes",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"reservation_id": reservationIDs}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			q                    domain.Quote
			status               string
			items                []byte
			total                decimal.Decimal
			notes                sql.NullString
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&q.ID, &q.ReservationID, &status, &items, &total, &notes, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetByReservationIDs - scan quote: %v", ErrScanRow, err)
		}
		if err := json.Unmarshal(items, &q.Items); err != nil {
			return nil, fmt.Errorf("%w: GetByReservationIDs - decode items: %v", ErrScanRow, err)
		}

		q.Status = domain.QuoteStatus(status)
		q.Total = total
		q.Notes = notes.String
		q.CreatedAt = createdAt.Time
		q.UpdatedAt = updatedAt.Time

		result[q.ReservationID] = append(result[q.ReservationID], &q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByReservationIDs - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}
