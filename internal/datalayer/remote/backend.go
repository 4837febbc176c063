package remote

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/datalayer"
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/infra/auth"
	"github.com/m04kA/HappyStay-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/HappyStay-BookingService/internal/infra/storage/session"
	"github.com/m04kA/HappyStay-BookingService/pkg/txmanager"
	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

// Repositories репозитории удаленного хранилища
type Repositories struct {
	Reservations ReservationRepository
	Slots        SlotRepository
	Quotes       QuoteRepository
	Sessions     SessionRepository
}

// Backend реализация слоя данных поверх PostgreSQL
type Backend struct {
	db           Database
	txManager    TransactionManager
	repos        Repositories
	schedule     domain.Schedule
	photos       datalayer.PhotoStore
	tokens       TokenIssuer
	timeProvider TimeProvider
	logger       Logger
}

var _ datalayer.DataLayer = (*Backend)(nil)

// New создает удаленный слой данных
func New(
	db Database,
	txManager TransactionManager,
	repos Repositories,
	schedule domain.Schedule,
	photos datalayer.PhotoStore,
	tokens TokenIssuer,
	logger Logger,
) *Backend {
	return &Backend{
		db:           db,
		txManager:    txManager,
		repos:        repos,
		schedule:     schedule,
		photos:       photos,
		tokens:       tokens,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (b *Backend) WithTimeProvider(tp TimeProvider) *Backend {
	b.timeProvider = tp
	return b
}

// GetSlotsForDate слоты дня со статусом
// При ошибке хранилища возвращает все слоты свободными, чтобы не блокировать запись
func (b *Backend) GetSlotsForDate(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	if b.schedule.IsDayOff(date) {
		return []domain.Slot{}, nil
	}

	var (
		blocked map[types.TimeString]bool
		active  map[types.TimeString]int
	)
	err := b.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if blocked, err = b.repos.Slots.GetBlockedByDate(txCtx, date); err != nil {
			return err
		}
		active, err = b.repos.Reservations.CountActiveByDate(txCtx, date)
		return err
	})
	if err != nil {
		b.logger.Error("RemoteStore: failed to load slots for %s, falling back to free slots: %v",
			date.Format(domain.DateFormat), err)
		return b.schedule.Slots(date, nil, nil), nil
	}

	return b.schedule.Slots(date, blocked, active), nil
}

// MarkSlotBlocked блокирует слот вручную
func (b *Backend) MarkSlotBlocked(ctx context.Context, date time.Time, t types.TimeString) error {
	return b.setSlotBlocked(ctx, date, t, true)
}

// MarkSlotFree снимает ручную блокировку; резервации не затрагиваются
func (b *Backend) MarkSlotFree(ctx context.Context, date time.Time, t types.TimeString) error {
	return b.setSlotBlocked(ctx, date, t, false)
}

func (b *Backend) setSlotBlocked(ctx context.Context, date time.Time, t types.TimeString, blocked bool) error {
	if err := datalayer.SlotTimeError(b.schedule, t); err != nil {
		return err
	}

	if err := b.repos.Slots.SetBlocked(ctx, date, t, blocked); err != nil {
		return datalayer.NewError(datalayer.CodeBackend, "update slot "+domain.SlotID(date, t), err)
	}

	b.logger.Info("RemoteStore: slot %s blocked=%t", domain.SlotID(date, t), blocked)
	return nil
}

// CreateReservation проверяет доступность и сохраняет резервацию в одной транзакции
func (b *Backend) CreateReservation(ctx context.Context, in *domain.NewReservation) (*domain.Reservation, error) {
	if err := datalayer.SlotTimeError(b.schedule, in.Time); err != nil {
		return nil, err
	}
	slotID := domain.SlotID(in.Date, in.Time)
	if b.schedule.IsDayOff(in.Date) {
		return nil, datalayer.Errorf(datalayer.CodeSlotUnavailable, "slot %s falls on the day off", slotID)
	}

	var created *domain.Reservation
	err := b.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Блокируем строку слота до конца транзакции
		blocked, err := b.repos.Slots.Lock(txCtx, in.Date, in.Time)
		if err != nil {
			return err
		}

		active, err := b.repos.Reservations.CountActive(txCtx, in.Date, in.Time)
		if err != nil {
			return err
		}

		slot := domain.NewSlot(in.Date, in.Time, b.schedule.Capacity, blocked, active)
		if !slot.IsFree() {
			return datalayer.Errorf(datalayer.CodeSlotUnavailable, "slot %s is %s", slotID, strings.ToLower(string(slot.Status)))
		}

		created, err = b.repos.Reservations.Create(txCtx, in)
		return err
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			b.logger.Warn("RemoteStore: slot %s lost a concurrent booking race: %v", slotID, err)
			return nil, datalayer.NewError(datalayer.CodeSlotUnavailable, "slot "+slotID+" was taken concurrently", err)
		}
		return nil, b.mapError("create reservation", err)
	}

	b.logger.Info("RemoteStore: created reservation %s for slot %s", created.ID, slotID)
	return created, nil
}

// GetReservationsOfDate резервации на дату вместе с отображаемыми сметами
func (b *Backend) GetReservationsOfDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	reservations, err := b.repos.Reservations.GetByDate(ctx, date)
	if err != nil {
		return nil, b.mapError("get reservations", err)
	}

	if err := b.attachQuotes(ctx, reservations...); err != nil {
		return nil, err
	}
	return reservations, nil
}

// GetReservationByID резервация по идентификатору
func (b *Backend) GetReservationByID(ctx context.Context, id string) (*domain.Reservation, error) {
	r, err := b.repos.Reservations.GetByID(ctx, id)
	if err != nil {
		return nil, b.mapError("get reservation "+id, err)
	}

	if err := b.attachQuotes(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// UpdateReservationStatus меняет статус; повторная отмена ничего не делает
func (b *Backend) UpdateReservationStatus(ctx context.Context, id string, status string) (*domain.Reservation, error) {
	var updated *domain.Reservation
	err := b.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		r, err := b.repos.Reservations.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		target, changed, err := datalayer.ResolveTransition(r.Status, status)
		if err != nil {
			return err
		}

		if changed {
			if err := b.repos.Reservations.UpdateStatus(txCtx, id, target); err != nil {
				return err
			}
			r.Status = target
			r.UpdatedAt = b.timeProvider.Now()
		}

		updated = r
		return nil
	})
	if err != nil {
		return nil, b.mapError("update reservation "+id, err)
	}

	if err := b.attachQuotes(ctx, updated); err != nil {
		return nil, err
	}

	b.logger.Info("RemoteStore: reservation %s status is %s", id, updated.Status)
	return updated, nil
}

// UploadPhotos сохраняет фото в общее файловое хранилище
func (b *Backend) UploadPhotos(ctx context.Context, files []domain.PhotoUpload) ([]domain.Photo, error) {
	return datalayer.UploadAll(ctx, b.photos, files)
}

// SaveQuote сохраняет новую версию сметы
func (b *Backend) SaveQuote(ctx context.Context, in *domain.NewQuote) (*domain.Quote, error) {
	if err := datalayer.ValidateQuote(in); err != nil {
		return nil, err
	}

	var saved *domain.Quote
	err := b.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := b.repos.Reservations.GetByID(txCtx, in.ReservationID); err != nil {
			return err
		}

		var err error
		saved, err = b.repos.Quotes.Create(txCtx, in)
		return err
	})
	if err != nil {
		return nil, b.mapError("save quote", err)
	}

	b.logger.Info("RemoteStore: saved quote %s (%s) for reservation %s, total=%s",
		saved.ID, saved.Status, saved.ReservationID, saved.Total.StringFixed(2))
	return saved, nil
}

// GetStats статистика по всем резервациям и по сегодняшнему дню
func (b *Backend) GetStats(ctx context.Context, today time.Time) (*domain.Stats, error) {
	stats, err := b.repos.Reservations.GetStats(ctx, today)
	if err != nil {
		return nil, b.mapError("get stats", err)
	}
	return stats, nil
}

// SignIn проверяет учетные данные по таблице администраторов и открывает сессию
func (b *Backend) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := b.repos.Sessions.GetPasswordHash(ctx, email)
	if errors.Is(err, session.ErrAdminNotFound) {
		return nil, datalayer.Errorf(datalayer.CodeUnauthorized, "invalid credentials")
	}
	if err != nil {
		return nil, datalayer.NewError(datalayer.CodeBackend, "load admin", err)
	}

	if err := auth.ComparePassword(hash, password); err != nil {
		return nil, datalayer.NewError(datalayer.CodeUnauthorized, "invalid credentials", err)
	}

	token, claims, err := b.tokens.Issue(email)
	if err != nil {
		return nil, datalayer.NewError(datalayer.CodeBackend, "issue token", err)
	}

	if err := b.repos.Sessions.Create(ctx, claims.SessionID(), email, claims.ExpiresAt.Time); err != nil {
		return nil, datalayer.NewError(datalayer.CodeBackend, "store session", err)
	}

	b.logger.Info("RemoteStore: admin %s signed in", email)
	return &domain.Session{Token: token, Email: email, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// SignOut закрывает сессию
func (b *Backend) SignOut(ctx context.Context, token string) error {
	claims, err := b.tokens.Parse(token)
	if err != nil {
		return datalayer.NewError(datalayer.CodeUnauthorized, "invalid session token", err)
	}

	if err := b.repos.Sessions.Revoke(ctx, claims.SessionID()); err != nil {
		return datalayer.NewError(datalayer.CodeBackend, "revoke session", err)
	}
	return nil
}

// IsAuthenticated токен валиден и его сессия активна в БД
func (b *Backend) IsAuthenticated(ctx context.Context, token string) bool {
	claims, err := b.tokens.Parse(token)
	if err != nil {
		return false
	}

	active, err := b.repos.Sessions.IsActive(ctx, claims.SessionID(), b.timeProvider.Now())
	if err != nil {
		b.logger.Error("RemoteStore: failed to check session: %v", err)
		return false
	}
	return active
}

func (b *Backend) Ping(ctx context.Context) error {
	if err := b.db.PingContext(ctx); err != nil {
		return datalayer.NewError(datalayer.CodeBackend, "ping database", err)
	}
	return nil
}

func (b *Backend) Close() error {
	return b.db.Close()
}

// attachQuotes подставляет каждой резервации отображаемую смету
func (b *Backend) attachQuotes(ctx context.Context, reservations ...*domain.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	ids := make([]string, 0, len(reservations))
	for _, r := range reservations {
		ids = append(ids, r.ID)
	}

	quotes, err := b.repos.Quotes.GetByReservationIDs(ctx, ids)
	if err != nil {
		return datalayer.NewError(datalayer.CodeBackend, "load quotes", err)
	}

	for _, r := range reservations {
		r.Quote = domain.DisplayQuote(quotes[r.ID])
	}
	return nil
}

// mapError переводит ошибки репозиториев в коды слоя данных
func (b *Backend) mapError(op string, err error) error {
	var dlErr *datalayer.Error
	switch {
	case errors.As(err, &dlErr):
		return dlErr
	case errors.Is(err, reservation.ErrReservationNotFound):
		return datalayer.NewError(datalayer.CodeNotFound, op, err)
	default:
		b.logger.Error("RemoteStore: %s failed: %v", op, err)
		return datalayer.NewError(datalayer.CodeBackend, op, err)
	}
}
