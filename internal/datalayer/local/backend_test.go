package local

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HappyStay-BookingService/internal/datalayer"
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/infra/auth"
	"github.com/m04kA/HappyStay-BookingService/internal/infra/storage/blob"
	"github.com/m04kA/HappyStay-BookingService/pkg/logger"
	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

var (
	monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type fakePhotoStore struct {
	err   error
	saved int
}

func (s *fakePhotoStore) Save(_ context.Context, file domain.PhotoUpload) (domain.Photo, error) {
	if s.err != nil {
		return domain.Photo{}, s.err
	}
	s.saved++
	return domain.Photo{URL: "/uploads/" + file.Name, Name: file.Name, Size: int64(len(file.Data))}, nil
}

type fixture struct {
	backend *Backend
	blobs   *blob.Memory
	clock   *fixedTime
	photos  *fakePhotoStore
	tokens  *auth.TokenIssuer
}

func newFixture(t *testing.T, capacity int) *fixture {
	t.Helper()

	schedule, err := domain.NewSchedule(domain.DefaultTimeSlots, "sunday", capacity, time.UTC)
	require.NoError(t, err)

	hash, err := auth.HashPassword("admin-pass")
	require.NoError(t, err)

	clock := &fixedTime{now: time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC)}
	tokens := auth.NewTokenIssuer("test-secret", time.Hour).WithClock(clock.Now)
	blobs := blob.NewMemory()
	photos := &fakePhotoStore{}

	backend := New(blobs, schedule, photos, tokens,
		Credentials{Email: "admin@happystay.com", PasswordHash: hash}, logger.NewNop()).
		WithTimeProvider(clock)

	return &fixture{backend: backend, blobs: blobs, clock: clock, photos: photos, tokens: tokens}
}

func newReservation(date time.Time, t string) *domain.NewReservation {
	return &domain.NewReservation{
		FirstName: "Amina",
		LastName:  "Benali",
		Phone:     "+212639887031",
		District:  "Maarif",
		Date:      date,
		Time:      types.TimeString(t),
		Items: []domain.ServiceItem{
			{Service: domain.ServiceMattress, Label: "Matelas 140 (1 face)", Quantity: 1, Format: "140", Faces: 1},
		},
		Photos: []domain.Photo{{URL: "/uploads/a.jpg", Name: "a.jpg"}, {URL: "/uploads/b.jpg", Name: "b.jpg"}},
	}
}

func slotAt(t *testing.T, slots []domain.Slot, tm string) domain.Slot {
	t.Helper()
	for _, s := range slots {
		if s.Time == types.TimeString(tm) {
			return s
		}
	}
	t.Fatalf("slot %s not found", tm)
	return domain.Slot{}
}

func TestGetSlotsForDate_DayOffIsEmpty(t *testing.T) {
	f := newFixture(t, 2)

	slots, err := f.backend.GetSlotsForDate(context.Background(), sunday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetSlotsForDate_FreshDay(t *testing.T) {
	f := newFixture(t, 2)

	slots, err := f.backend.GetSlotsForDate(context.Background(), monday)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	for _, s := range slots {
		assert.Equal(t, domain.SlotFree, s.Status)
		assert.Equal(t, 2, s.Available)
	}
}

func TestCreateReservation_CapacityAndCancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)

	first, err := f.backend.CreateReservation(ctx, newReservation(monday, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, "res_1", first.ID)
	assert.Equal(t, domain.StatusPending, first.Status)

	slots, err := f.backend.GetSlotsForDate(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, 1, slotAt(t, slots, "10:00").Available)
	assert.Equal(t, domain.SlotFree, slotAt(t, slots, "10:00").Status)

	_, err = f.backend.CreateReservation(ctx, newReservation(monday, "10:00"))
	require.NoError(t, err)

	slots, err = f.backend.GetSlotsForDate(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBooked, slotAt(t, slots, "10:00").Status)

	_, err = f.backend.CreateReservation(ctx, newReservation(monday, "10:00"))
	assert.ErrorIs(t, err, datalayer.ErrSlotUnavailable)

	// отмена освобождает ровно одно место, повторная отмена ничего не меняет
	for i := 0; i < 2; i++ {
		cancelled, err := f.backend.UpdateReservationStatus(ctx, first.ID, "canceled")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, cancelled.Status)

		slots, err = f.backend.GetSlotsForDate(ctx, monday)
		require.NoError(t, err)
		assert.Equal(t, 1, slotAt(t, slots, "10:00").Available)
	}
}

func TestCreateReservation_EndToEndCapacityOne(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)

	first, err := f.backend.CreateReservation(ctx, newReservation(monday, "10:00"))
	require.NoError(t, err)

	_, err = f.backend.CreateReservation(ctx, newReservation(monday, "10:00"))
	require.ErrorIs(t, err, datalayer.ErrSlotUnavailable)

	_, err = f.backend.UpdateReservationStatus(ctx, first.ID, "CANCELLED")
	require.NoError(t, err)

	third, err := f.backend.CreateReservation(ctx, newReservation(monday, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, "res_3", third.ID)
}

func TestCreateReservation_BlockedSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)

	require.NoError(t, f.backend.MarkSlotBlocked(ctx, monday, "13:30"))

	_, err := f.backend.CreateReservation(ctx, newReservation(monday, "13:30"))
	assert.ErrorIs(t, err, datalayer.ErrSlotUnavailable)

	stored, err := f.backend.GetReservationsOfDate(ctx, monday)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestCreateReservation_InvalidSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)

	_, err := f.backend.CreateReservation(ctx, newReservation(monday, "11:00"))
	assert.ErrorIs(t, err, datalayer.ErrInvalidInput)

	_, err = f.backend.CreateReservation(ctx, newReservation(sunday, "10:00"))
	assert.ErrorIs(t, err, datalayer.ErrSlotUnavailable)
}

func TestCreateReservation_ConcurrentRequestsRespectCapacity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.backend.CreateReservation(ctx, newReservation(monday, "15:00")); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, succeeded)
}

func TestMarkSlot_BlockAndFreeAreIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)

	for i := 0; i < 2; i++ {
		require.NoError(t, f.backend.MarkSlotBlocked(ctx, monday, "10:00"))
	}
	slots, err := f.backend.GetSlotsForDate(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBlocked, slotAt(t, slots, "10:00").Status)

	for i := 0; i < 2; i++ {
		require.NoError(t, f.backend.MarkSlotFree(ctx, monday, "10:00"))
	}
	slots, err = f.backend.GetSlotsForDate(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotFree, slotAt(t, slots, "10:00").Status)

	assert.ErrorIs(t, f.backend.MarkSlotBlocked(ctx, monday, "09:00"), datalayer.ErrInvalidInput)
}

func TestMarkSlotFree_KeepsReservations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)

	_, err := f.backend.CreateReservation(ctx, newReservation(monday, "10:00"))
	require.NoError(t, err)
	require.NoError(t, f.backend.MarkSlotBlocked(ctx, monday, "10:00"))
	require.NoError(t, f.backend.MarkSlotFree(ctx, monday, "10:00"))

	slots, err := f.backend.GetSlotsForDate(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBooked, slotAt(t, slots, "10:00").Status)
}

func TestUpdateReservationStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)

	r, err := f.backend.CreateReservation(ctx, newReservation(monday, "10:00"))
	require.NoError(t, err)

	confirmed, err := f.backend.UpdateReservationStatus(ctx, r.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, confirmed.Status)

	_, err = f.backend.UpdateReservationStatus(ctx, r.ID, "archived")
	assert.ErrorIs(t, err, datalayer.ErrInvalidStatus)

	_, err = f.backend.UpdateReservationStatus(ctx, r.ID, "cancelled")
	require.NoError(t, err)

	_, err = f.backend.UpdateReservationStatus(ctx, r.ID, "confirmed")
	assert.ErrorIs(t, err, datalayer.ErrInvalidTransition)

	_, err = f.backend.UpdateReservationStatus(ctx, "res_404", "confirmed")
	assert.ErrorIs(t, err, datalayer.ErrNotFound)
}

func TestGetReservationsOfDate_OrderedByTime(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)

	_, err := f.backend.CreateReservation(ctx, newReservation(monday, "15:00"))
	require.NoError(t, err)
	f.clock.now = f.clock.now.Add(time.Minute)
	_, err = f.backend.CreateReservation(ctx, newReservation(monday, "10:00"))
	require.NoError(t, err)
	_, err = f.backend.CreateReservation(ctx, newReservation(monday.AddDate(0, 0, 1), "10:00"))
	require.NoError(t, err)

	got, err := f.backend.GetReservationsOfDate(ctx, monday)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, types.TimeString("10:00"), got[0].Time)
	assert.Equal(t, types.TimeString("15:00"), got[1].Time)
}

func TestState_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)

	r, err := f.backend.CreateReservation(ctx, newReservation(monday, "10:00"))
	require.NoError(t, err)
	require.NoError(t, f.backend.MarkSlotBlocked(ctx, monday, "15:00"))

	reopened := New(f.blobs, f.backend.schedule, f.photos, f.tokens, f.backend.admin, logger.NewNop())

	got, err := reopened.GetReservationByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amina Benali", got.CustomerName())

	slots, err := reopened.GetSlotsForDate(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBlocked, slotAt(t, slots, "15:00").Status)

	next, err := reopened.CreateReservation(ctx, newReservation(monday, "13:30"))
	require.NoError(t, err)
	assert.Equal(t, "res_2", next.ID)

	require.NoError(t, reopened.ResetData(ctx))
	_, err = reopened.GetReservationByID(ctx, r.ID)
	assert.ErrorIs(t, err, datalayer.ErrNotFound)
}

func TestSaveQuote_DisplayQuote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)

	r, err := f.backend.CreateReservation(ctx, newReservation(monday, "10:00"))
	require.NoError(t, err)

	items := []domain.QuoteItem{{Label: "Matelas 140", Quantity: 1, UnitPrice: decimal.NewFromInt(100)}}

	sent, err := f.backend.SaveQuote(ctx, &domain.NewQuote{ReservationID: r.ID, Status: domain.QuoteSent, Items: items})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(sent.Total))

	f.clock.now = f.clock.now.Add(time.Hour)
	_, err = f.backend.SaveQuote(ctx, &domain.NewQuote{ReservationID: r.ID, Status: domain.QuoteDraft, Items: items})
	require.NoError(t, err)

	got, err := f.backend.GetReservationByID(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Quote)
	assert.Equal(t, sent.ID, got.Quote.ID)

	_, err = f.backend.SaveQuote(ctx, &domain.NewQuote{ReservationID: "res_404", Status: domain.QuoteDraft, Items: items})
	assert.ErrorIs(t, err, datalayer.ErrNotFound)

	_, err = f.backend.SaveQuote(ctx, &domain.NewQuote{ReservationID: r.ID, Status: domain.QuoteDraft})
	assert.ErrorIs(t, err, datalayer.ErrInvalidInput)
}

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)

	a, err := f.backend.CreateReservation(ctx, newReservation(monday, "10:00"))
	require.NoError(t, err)
	b, err := f.backend.CreateReservation(ctx, newReservation(monday, "13:30"))
	require.NoError(t, err)
	_, err = f.backend.CreateReservation(ctx, newReservation(monday, "15:00"))
	require.NoError(t, err)
	_, err = f.backend.CreateReservation(ctx, newReservation(monday.AddDate(0, 0, 1), "10:00"))
	require.NoError(t, err)

	_, err = f.backend.UpdateReservationStatus(ctx, a.ID, "confirmed")
	require.NoError(t, err)
	_, err = f.backend.UpdateReservationStatus(ctx, b.ID, "cancelled")
	require.NoError(t, err)

	stats, err := f.backend.GetStats(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{
		TotalReservations:     4,
		TodayReservations:     3,
		PendingReservations:   1,
		ConfirmedReservations: 1,
	}, *stats)
}

func TestUploadPhotos(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)

	got, err := f.backend.UploadPhotos(ctx, []domain.PhotoUpload{{Name: "a.jpg", Data: []byte("x")}, {Name: "b.jpg", Data: []byte("y")}})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = f.backend.UploadPhotos(ctx, nil)
	assert.ErrorIs(t, err, datalayer.ErrInvalidInput)

	f.photos.err = errors.New("disk full")
	_, err = f.backend.UploadPhotos(ctx, []domain.PhotoUpload{{Name: "c.jpg"}})
	assert.ErrorIs(t, err, datalayer.ErrBackend)
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)

	_, err := f.backend.SignIn(ctx, "admin@happystay.com", "wrong")
	assert.ErrorIs(t, err, datalayer.ErrUnauthorized)

	_, err = f.backend.SignIn(ctx, "intruder@example.com", "admin-pass")
	assert.ErrorIs(t, err, datalayer.ErrUnauthorized)

	session, err := f.backend.SignIn(ctx, "Admin@HappyStay.com", "admin-pass")
	require.NoError(t, err)
	assert.True(t, f.backend.IsAuthenticated(ctx, session.Token))
	assert.False(t, f.backend.IsAuthenticated(ctx, "forged"))

	require.NoError(t, f.backend.SignOut(ctx, session.Token))
	assert.False(t, f.backend.IsAuthenticated(ctx, session.Token))
}

func TestSession_ExpiresWithToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)

	session, err := f.backend.SignIn(ctx, "admin@happystay.com", "admin-pass")
	require.NoError(t, err)

	f.clock.now = f.clock.now.Add(2 * time.Hour)
	assert.False(t, f.backend.IsAuthenticated(ctx, session.Token))
}
