package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/HappyStay-BookingService/internal/config"
	"github.com/m04kA/HappyStay-BookingService/internal/datalayer"
	"github.com/m04kA/HappyStay-BookingService/internal/datalayer/local"
	"github.com/m04kA/HappyStay-BookingService/internal/datalayer/remote"
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/infra/auth"
	"github.com/m04kA/HappyStay-BookingService/internal/infra/storage/blob"
	quoteRepo "github.com/m04kA/HappyStay-BookingService/internal/infra/storage/quote"
	reservationRepo "github.com/m04kA/HappyStay-BookingService/internal/infra/storage/reservation"
	sessionRepo "github.com/m04kA/HappyStay-BookingService/internal/infra/storage/session"
	slotRepo "github.com/m04kA/HappyStay-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/HappyStay-BookingService/pkg/dbmetrics"
	"github.com/m04kA/HappyStay-BookingService/pkg/logger"
	"github.com/m04kA/HappyStay-BookingService/pkg/metrics"
	"github.com/m04kA/HappyStay-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/HappyStay-BookingService/pkg/txmanager"
)

// backendDeps общие зависимости обеих реализаций слоя данных
type backendDeps struct {
	cfg      *config.Config
	schedule domain.Schedule
	photos   datalayer.PhotoStore
	tokens   *auth.TokenIssuer
	metrics  *metrics.Metrics
	stopCh   <-chan struct{}
	log      *logger.Logger
}

// adminPasswordHash хэш пароля администратора из конфигурации
func adminPasswordHash(cfg config.AuthConfig) (string, error) {
	if cfg.AdminPasswordHash != "" {
		return cfg.AdminPasswordHash, nil
	}
	if cfg.AdminPassword == "" {
		return "", nil
	}
	return auth.HashPassword(cfg.AdminPassword)
}

// newDataLayer выбирает реализацию слоя данных по backend.mode
func newDataLayer(ctx context.Context, deps backendDeps) (datalayer.DataLayer, error) {
	switch deps.cfg.Backend.Mode {
	case config.BackendRemote:
		return newRemoteDataLayer(ctx, deps)
	default:
		return newLocalDataLayer(deps)
	}
}

func newLocalDataLayer(deps backendDeps) (*local.Backend, error) {
	var store blob.Store
	if deps.cfg.Local.StorePath == "" {
		store = blob.NewMemory()
		deps.log.Warn("Local backend keeps data in memory only")
	} else {
		sqliteStore, err := blob.NewSQLite(deps.cfg.Local.StorePath)
		if err != nil {
			return nil, fmt.Errorf("open local store %s: %w", deps.cfg.Local.StorePath, err)
		}
		store = sqliteStore
		deps.log.Info("Local backend store: %s", deps.cfg.Local.StorePath)
	}

	hash, err := adminPasswordHash(deps.cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	return local.New(
		store,
		deps.schedule,
		deps.photos,
		deps.tokens,
		local.Credentials{Email: deps.cfg.Auth.AdminEmail, PasswordHash: hash},
		deps.log,
	), nil
}

func newRemoteDataLayer(ctx context.Context, deps backendDeps) (*remote.Backend, error) {
	cfg := deps.cfg

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	deps.log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозитории и менеджер транзакций (с метриками или без)
	var (
		executor  dbmetrics.DBExecutor
		txManager *txmanager.TransactionManager
	)
	if deps.metrics != nil {
		wrappedDB := dbmetrics.WrapWithDefault(db, deps.metrics, cfg.Metrics.ServiceName, deps.stopCh)
		deps.log.Info("Database metrics collection started")
		executor = wrappedDB
		txManager = txmanager.NewTransactionManager(wrappedDB)
	} else {
		executor = db
		txManager = simpletxmanager.NewTransactionManager(db)
	}

	sessions := sessionRepo.NewRepository(executor)

	hash, err := adminPasswordHash(cfg.Auth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	if hash != "" {
		if err := sessions.UpsertAdmin(ctx, cfg.Auth.AdminEmail, hash); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seed admin: %w", err)
		}
		deps.log.Info("Admin account %s is up to date", cfg.Auth.AdminEmail)
	}

	return remote.New(
		db,
		txManager,
		remote.Repositories{
			Reservations: reservationRepo.NewRepository(executor),
			Slots:        slotRepo.NewRepository(executor),
			Quotes:       quoteRepo.NewRepository(executor),
			Sessions:     sessions,
		},
		deps.schedule,
		deps.photos,
		deps.tokens,
		deps.log,
	), nil
}
