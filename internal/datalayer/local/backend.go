package local

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/datalayer"
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/infra/auth"
	"github.com/m04kA/HappyStay-BookingService/internal/infra/storage/blob"
	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

// Credentials единственная учетная запись администратора
type Credentials struct {
	Email        string
	PasswordHash string
}

// Backend локальная реализация слоя данных
// Все данные лежат одним JSON-снимком в blob.Store; мьютекс делает
// чтение-проверку-запись атомарными в пределах процесса
type Backend struct {
	mu           sync.Mutex
	blobs        blob.Store
	schedule     domain.Schedule
	photos       datalayer.PhotoStore
	tokens       TokenIssuer
	admin        Credentials
	sessions     map[string]time.Time
	timeProvider TimeProvider
	logger       Logger
}

var _ datalayer.DataLayer = (*Backend)(nil)

// New создает локальный слой данных
func New(
	blobs blob.Store,
	schedule domain.Schedule,
	photos datalayer.PhotoStore,
	tokens TokenIssuer,
	admin Credentials,
	logger Logger,
) *Backend {
	return &Backend{
		blobs:        blobs,
		schedule:     schedule,
		photos:       photos,
		tokens:       tokens,
		admin:        admin,
		sessions:     make(map[string]time.Time),
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
func (b *Backend) GetSlotsForDate(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	if b.schedule.IsDayOff(date) {
		return []domain.Slot{}, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	st, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	return b.slotsOf(st, date), nil
}

func (b *Backend) slotsOf(st *state, date time.Time) []domain.Slot {
	day := date.Format(domain.DateFormat)
	blocked := make(map[types.TimeString]bool)
	active := make(map[types.TimeString]int)
	for _, t := range b.schedule.TimeSlots {
		blocked[t] = st.isBlocked(day, t.String())
		active[t] = st.activeCount(day, t.String())
	}
	return b.schedule.Slots(date, blocked, active)
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

	b.mu.Lock()
	defer b.mu.Unlock()

	st, err := b.load(ctx)
	if err != nil {
		return err
	}

	day := date.Format(domain.DateFormat)
	if st.isBlocked(day, t.String()) == blocked {
		return nil
	}

	st.setBlocked(day, t.String(), blocked)
	if err := b.save(ctx, st); err != nil {
		return err
	}

	b.logger.Info("LocalStore: slot %s blocked=%t", domain.SlotID(date, t), blocked)
	return nil
}

// CreateReservation проверяет доступность и сохраняет резервацию под одним замком
func (b *Backend) CreateReservation(ctx context.Context, in *domain.NewReservation) (*domain.Reservation, error) {
	if err := datalayer.SlotTimeError(b.schedule, in.Time); err != nil {
		return nil, err
	}
	slotID := domain.SlotID(in.Date, in.Time)
	if b.schedule.IsDayOff(in.Date) {
		return nil, datalayer.Errorf(datalayer.CodeSlotUnavailable, "slot %s falls on the day off", slotID)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	st, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	day := in.Date.Format(domain.DateFormat)
	slot := domain.NewSlot(in.Date, in.Time, b.schedule.Capacity,
		st.isBlocked(day, in.Time.String()), st.activeCount(day, in.Time.String()))
	if !slot.IsFree() {
		b.logger.Warn("LocalStore: slot %s unavailable (status=%s, available=%d)", slotID, slot.Status, slot.Available)
		return nil, datalayer.Errorf(datalayer.CodeSlotUnavailable, "slot %s is %s", slotID, strings.ToLower(string(slot.Status)))
	}

	now := b.timeProvider.Now()
	record := reservationRecord{
		ID:        fmt.Sprintf("res_%d", st.NextReservationID),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		District:  in.District,
		Address:   in.Address,
		Date:      day,
		Time:      in.Time.String(),
		Items:     in.Items,
		Photos:    in.Photos,
		Comments:  in.Comments,
		Status:    string(domain.StatusPending),
		CreatedAt: now,
		UpdatedAt: now,
	}

	st.Reservations = append(st.Reservations, record)
	st.NextReservationID++

	if err := b.save(ctx, st); err != nil {
		return nil, err
	}

	b.logger.Info("LocalStore: created reservation %s for slot %s (%d/%d taken)",
		record.ID, slotID, b.schedule.Capacity-slot.Available+1, b.schedule.Capacity)
	return b.toDomain(st, record)
}

// GetReservationsOfDate резервации на дату, по времени и затем по дате создания
func (b *Backend) GetReservationsOfDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	day := date.Format(domain.DateFormat)
	result := make([]*domain.Reservation, 0)
	for _, record := range st.Reservations {
		if record.Date != day {
			continue
		}
		r, err := b.toDomain(st, record)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Time != result[j].Time {
			return result[i].Time.IsBefore(result[j].Time)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// GetReservationByID резервация по идентификатору
func (b *Backend) GetReservationByID(ctx context.Context, id string) (*domain.Reservation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	idx, ok := st.findReservation(id)
	if !ok {
		return nil, datalayer.Errorf(datalayer.CodeNotFound, "reservation %s not found", id)
	}
	return b.toDomain(st, st.Reservations[idx])
}

// UpdateReservationStatus меняет статус; повторная отмена ничего не делает
func (b *Backend) UpdateReservationStatus(ctx context.Context, id string, status string) (*domain.Reservation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	idx, ok := st.findReservation(id)
	if !ok {
		return nil, datalayer.Errorf(datalayer.CodeNotFound, "reservation %s not found", id)
	}

	record := &st.Reservations[idx]
	target, changed, err := datalayer.ResolveTransition(record.status(), status)
	if err != nil {
		return nil, err
	}

	if changed {
		record.Status = string(target)
		record.UpdatedAt = b.timeProvider.Now()
		if err := b.save(ctx, st); err != nil {
			return nil, err
		}
		b.logger.Info("LocalStore: reservation %s -> %s", id, target)
	}

	return b.toDomain(st, *record)
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

	b.mu.Lock()
	defer b.mu.Unlock()

	st, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := st.findReservation(in.ReservationID); !ok {
		return nil, datalayer.Errorf(datalayer.CodeNotFound, "reservation %s not found", in.ReservationID)
	}

	now := b.timeProvider.Now()
	record := quoteRecord{
		ID:            fmt.Sprintf("quote_%d", st.NextQuoteID),
		ReservationID: in.ReservationID,
		Status:        string(in.Status),
		Items:         in.Items,
		Total:         domain.QuoteTotal(in.Items),
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	st.Quotes = append(st.Quotes, record)
	st.NextQuoteID++

	if err := b.save(ctx, st); err != nil {
		return nil, err
	}

	b.logger.Info("LocalStore: saved quote %s (%s) for reservation %s, total=%s",
		record.ID, record.Status, record.ReservationID, record.Total.StringFixed(2))
	return record.toDomain(), nil
}

// GetStats статистика по всем резервациям и по сегодняшнему дню
func (b *Backend) GetStats(ctx context.Context, today time.Time) (*domain.Stats, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	day := today.Format(domain.DateFormat)
	stats := &domain.Stats{TotalReservations: len(st.Reservations)}
	for _, r := range st.Reservations {
		if r.Date != day {
			continue
		}
		stats.TodayReservations++
		switch r.status() {
		case domain.StatusPending:
			stats.PendingReservations++
		case domain.StatusConfirmed:
			stats.ConfirmedReservations++
		}
	}
	return stats, nil
}

// SignIn проверяет учетные данные администратора и открывает сессию
func (b *Backend) SignIn(_ context.Context, email, password string) (*domain.Session, error) {
	if !strings.EqualFold(strings.TrimSpace(email), b.admin.Email) {
		return nil, datalayer.Errorf(datalayer.CodeUnauthorized, "invalid credentials")
	}
	if err := auth.ComparePassword(b.admin.PasswordHash, password); err != nil {
		return nil, datalayer.NewError(datalayer.CodeUnauthorized, "invalid credentials", err)
	}

	token, claims, err := b.tokens.Issue(b.admin.Email)
	if err != nil {
		return nil, datalayer.NewError(datalayer.CodeBackend, "issue token", err)
	}

	b.mu.Lock()
	b.sessions[claims.SessionID()] = claims.ExpiresAt.Time
	b.mu.Unlock()

	b.logger.Info("LocalStore: admin %s signed in", b.admin.Email)
	return &domain.Session{Token: token, Email: b.admin.Email, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// SignOut закрывает сессию
func (b *Backend) SignOut(_ context.Context, token string) error {
	claims, err := b.tokens.Parse(token)
	if err != nil {
		return datalayer.NewError(datalayer.CodeUnauthorized, "invalid session token", err)
	}

	b.mu.Lock()
	delete(b.sessions, claims.SessionID())
	b.mu.Unlock()
	return nil
}

// IsAuthenticated токен валиден и его сессия не закрыта
func (b *Backend) IsAuthenticated(_ context.Context, token string) bool {
	claims, err := b.tokens.Parse(token)
	if err != nil {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	expiresAt, ok := b.sessions[claims.SessionID()]
	if !ok {
		return false
	}
	if !b.timeProvider.Now().Before(expiresAt) {
		delete(b.sessions, claims.SessionID())
		return false
	}
	return true
}

// ResetData удаляет все локальные данные
func (b *Backend) ResetData(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.blobs.Delete(ctx, StoreKey); err != nil {
		return datalayer.NewError(datalayer.CodeBackend, "reset local store", err)
	}
	b.logger.Warn("LocalStore: all data was reset")
	return nil
}

func (b *Backend) Ping(ctx context.Context) error {
	if p, ok := b.blobs.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(ctx); err != nil {
			return datalayer.NewError(datalayer.CodeBackend, "ping local store", err)
		}
	}
	return nil
}

func (b *Backend) Close() error {
	return b.blobs.Close()
}

func (b *Backend) toDomain(st *state, record reservationRecord) (*domain.Reservation, error) {
	r, err := record.toDomain()
	if err != nil {
		return nil, datalayer.NewError(datalayer.CodeBackend, "decode reservation", err)
	}
	r.Quote = domain.DisplayQuote(st.quotesOf(r.ID))
	return r, nil
}
