package reservation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/pkg/dbmetrics"
	"github.com/m04kA/HappyStay-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

const table = "reservations"

var columns = []string{
	"id",
	"first_name",
	"last_name",
	"phone",
	"district",
	"address",
	"reservation_date",
	"reservation_time",
	"items",
	"photos",
	"comments",
	"status",
	"created_at",
	"updated_at",
}

// activeStatuses статусы, занимающие место в слоте (в БД хранятся в нижнем регистре)
var activeStatuses = lowerStatuses(domain.ActiveStatuses)

func lowerStatuses(statuses []domain.ReservationStatus) []string {
	result := make([]string, 0, len(statuses))
	for _, s := range statuses {
		result = append(result, s.Lower())
	}
	return result
}

// Repository репозиторий для работы с резервациями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резерваций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую резервацию в статусе pending
// Проверку доступности слота выполняет вызывающий код в той же транзакции
func (r *Repository) Create(ctx context.Context, in *domain.NewReservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	items, err := json.Marshal(in.Items)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - items: %v", ErrEncode, err)
	}
	photos, err := json.Marshal(in.Photos)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - photos: %v", ErrEncode, err)
	}

	id := uuid.NewString()

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"first_name",
			"last_name",
			"phone",
			"district",
			"address",
			"reservation_date",
			"reservation_time",
			"items",
			"photos",
			"comments",
			"status",
		).
		Values(
			id,
			in.FirstName,
			in.LastName,
			in.Phone,
			in.District,
			in.Address,
			in.Date.Format(domain.DateFormat),
			in.Time,
			string(items),
			string(photos),
			in.Comments,
			domain.StatusPending.Lower(),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return &domain.Reservation{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		District:  in.District,
		Address:   in.Address,
		Date:      domain.DateOf(in.Date),
		Time:      in.Time,
		Items:     in.Items,
		Photos:    in.Photos,
		Comments:  in.Comments,
		Status:    domain.StatusPending,
		CreatedAt: createdAt.Time,
		UpdatedAt: updatedAt.Time,
	}, nil
}

// GetByID получает резервацию по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrReservationNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// GetByDate получает резервации на дату, отсортированные по времени и дате создания
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"reservation_date": date.Format(domain.DateFormat)}).
		OrderBy("reservation_time ASC", "created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDate - scan reservation: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - rows iteration: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// CountActiveByDate количество активных резерваций по времени слота
func (r *Repository) CountActiveByDate(ctx context.Context, date time.Time) (map[types.TimeString]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("reservation_time", "COUNT(*)").
		From(table).
		Where(squirrel.Eq{"reservation_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"status": activeStatuses}).
		GroupBy("reservation_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[types.TimeString]int)
	for rows.Next() {
		var (
			t     types.TimeString
			count int
		)
		if err := rows.Scan(&t, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveByDate - scan count: %v", ErrScanRow, err)
		}
		counts[t] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDate - rows iteration: %v", ErrScanRow, err)
	}

	return counts, nil
}

// CountActive количество активных резерваций в слоте
// Вызывать в транзакции после блокировки строки слота
func (r *Repository) CountActive(ctx context.Context, date time.Time, t types.TimeString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{
			"reservation_date": date.Format(domain.DateFormat),
			"reservation_time": t,
			"status":           activeStatuses,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActive - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus обновляет статус резервации
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrReservationNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status.Lower()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// GetStats считает резервации одним запросом
func (r *Repository) GetStats(ctx context.Context, today time.Time) (*domain.Stats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	day := today.Format(domain.DateFormat)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE reservation_date = ?)", day)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE reservation_date = ? AND status = ?)", day, domain.StatusPending.Lower())).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE reservation_date = ? AND status = ?)", day, domain.StatusConfirmed.Lower())).
		From(table).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.Stats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalReservations,
		&stats.TodayReservations,
		&stats.PendingReservations,
		&stats.ConfirmedReservations,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - scan counts: %v", ErrScanRow, err)
	}

	return &stats, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation          domain.Reservation
		date                 time.Time
		items, photos        []byte
		address, comments    sql.NullString
		status               string
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.FirstName,
		&reservation.LastName,
		&reservation.Phone,
		&reservation.District,
		&address,
		&date,
		&reservation.Time,
		&items,
		&photos,
		&comments,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &reservation.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if len(photos) > 0 {
		if err := json.Unmarshal(photos, &reservation.Photos); err != nil {
			return nil, fmt.Errorf("decode photos: %w", err)
		}
	}

	reservation.Status, err = domain.ParseReservationStatus(status)
	if err != nil {
		return nil, err
	}

	reservation.Date = domain.DateOf(date)
	reservation.Address = address.String
	reservation.Comments = comments.String
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}
