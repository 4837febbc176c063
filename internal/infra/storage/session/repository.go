package session

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HappyStay-BookingService/pkg/dbmetrics"
	"github.com/m04kA/HappyStay-BookingService/pkg/psqlbuilder"
)

// Repository учетные записи администраторов и их сессии
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpsertAdmin создает администратора или обновляет хеш его пароля
func (r *Repository) UpsertAdmin(ctx context.Context, email, passwordHash string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("admin_users").
		Columns("email", "password_hash").
		Values(normalizeEmail(email), passwordHash).
		Suffix("ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertAdmin - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertAdmin - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetPasswordHash хеш пароля администратора
func (r *Repository) GetPasswordHash(ctx context.Context, email string) (string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("password_hash").
		From("admin_users").
		Where(squirrel.Eq{"email": normalizeEmail(email)}).
		ToSql()

	if err != nil {
		return "", fmt.Errorf("%w: GetPasswordHash - build select query: %v", ErrBuildQuery, err)
	}

	var hash string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", ErrAdminNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: GetPasswordHash - scan admin: %v", ErrScanRow, err)
	}

	return hash, nil
}

// Create сохраняет открытую сессию; id совпадает с jti токена
func (r *Repository) Create(ctx context.Context, id, email string, expiresAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("admin_sessions").
		Columns("id", "email", "expires_at").
		Values(id, normalizeEmail(email), expiresAt).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Revoke закрывает сессию; повторный вызов ничего не меняет
func (r *Repository) Revoke(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("admin_sessions").
		Set("revoked_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "revoked_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Revoke - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Revoke - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// IsActive сессия существует, не закрыта и не истекла к моменту now
func (r *Repository) IsActive(ctx context.Context, id string, now time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("admin_sessions").
		Where(squirrel.Eq{"id": id, "revoked_at": nil}).
		Where(squirrel.Gt{"expires_at": now}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsActive - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsActive - scan session: %v", ErrScanRow, err)
	}

	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
