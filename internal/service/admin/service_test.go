package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HappyStay-BookingService/internal/datalayer"
	"github.com/m04kA/HappyStay-BookingService/internal/datalayer/local"
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

func (f fixedTime) Now() time.Time { return f.now }

type nopPhotos struct{}

func (nopPhotos) Save(_ context.Context, file domain.PhotoUpload) (domain.Photo, error) {
	return domain.Photo{URL: "/uploads/" + file.Name, Name: file.Name}, nil
}

type fakeNotifier struct {
	enabled bool
	err     error
	sent    []*domain.Quote
}

func (n *fakeNotifier) Enabled() bool { return n.enabled }

func (n *fakeNotifier) SendQuote(_ context.Context, _ *domain.Reservation, quote *domain.Quote) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, quote)
	return nil
}

type fakeMetrics struct {
	slotChanges map[string]int
	quotes      []string
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{slotChanges: map[string]int{}}
}

func (m *fakeMetrics) SlotStatusChanged(status string) { m.slotChanges[status]++ }

func (m *fakeMetrics) QuoteSaved(status string, notified bool) {
	if notified {
		status += "+notified"
	}
	m.quotes = append(m.quotes, status)
}

// flakyDataLayer отказывает в блокировке одного времени
type flakyDataLayer struct {
	*local.Backend
	failAt types.TimeString
}

func (f *flakyDataLayer) MarkSlotBlocked(ctx context.Context, date time.Time, t types.TimeString) error {
	if t == f.failAt {
		return datalayer.Errorf(datalayer.CodeBackend, "disk is full")
	}
	return f.Backend.MarkSlotBlocked(ctx, date, t)
}

type fixture struct {
	svc      *Service
	dl       *local.Backend
	schedule domain.Schedule
	notifier *fakeNotifier
	metrics  *fakeMetrics
}

func newFixture(t *testing.T, capacity int) *fixture {
	t.Helper()

	schedule, err := domain.NewSchedule([]string{"10:30", "13:30", "15:30"}, "sunday", capacity, time.UTC)
	require.NoError(t, err)

	clock := fixedTime{now: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)}
	dl := local.New(blob.NewMemory(), schedule, nopPhotos{},
		auth.NewTokenIssuer("secret", time.Hour), local.Credentials{Email: "admin@happystay.com"}, logger.NewNop()).
		WithTimeProvider(clock)

	notifier := &fakeNotifier{enabled: true}
	metrics := newFakeMetrics()
	svc := NewService(dl, schedule, notifier, metrics, logger.NewNop()).WithTimeProvider(clock)

	return &fixture{svc: svc, dl: dl, schedule: schedule, notifier: notifier, metrics: metrics}
}

func (f *fixture) book(t *testing.T, at, firstName string) *domain.Reservation {
	t.Helper()
	r, err := f.dl.CreateReservation(context.Background(), &domain.NewReservation{
		FirstName: firstName,
		LastName:  "Alaoui",
		Phone:     "+212639887031",
		District:  "Maarif",
		Date:      monday,
		Time:      types.MustTimeString(at),
		Items: []domain.ServiceItem{
			{Service: domain.ServiceSofa, Label: "Canapé/Fauteuil - 3 places", Size: "3 places", Quantity: 1},
		},
		Photos: []domain.Photo{{URL: "/uploads/a.jpg", Name: "a.jpg"}, {URL: "/uploads/b.jpg", Name: "b.jpg"}},
	})
	require.NoError(t, err)
	return r
}

func TestGetSlots_CardsWithReservationDetails(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	r := f.book(t, "10:30", "Yasmine")
	require.NoError(t, f.dl.MarkSlotBlocked(ctx, monday, types.MustTimeString("15:30")))

	cards, err := f.svc.GetSlots(ctx, monday)
	require.NoError(t, err)
	require.Len(t, cards, 3)

	assert.Equal(t, "2025-03-10-10:30", cards[0].ID)
	assert.Equal(t, CardReserved, cards[0].Status)
	assert.Equal(t, r.ID, cards[0].ReservationID)
	require.NotNil(t, cards[0].Reservation)
	assert.Equal(t, "Yasmine Alaoui", cards[0].Reservation.CustomerName)
	assert.Equal(t, "Canapé/Fauteuil - 3 places", cards[0].Reservation.Service)

	assert.Equal(t, CardAvailable, cards[1].Status)
	assert.Nil(t, cards[1].Reservation)

	assert.Equal(t, CardBlocked, cards[2].Status)
}

func TestGetSlots_FirstActiveReservationWins(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()

	first := f.book(t, "13:30", "Nadia")
	_, err := f.dl.UpdateReservationStatus(ctx, first.ID, "cancelled")
	require.NoError(t, err)
	second := f.book(t, "13:30", "Omar")
	f.book(t, "13:30", "Salma")

	cards, err := f.svc.GetSlots(ctx, monday)
	require.NoError(t, err)

	assert.Equal(t, CardReserved, cards[1].Status)
	assert.Equal(t, second.ID, cards[1].ReservationID)
	assert.Equal(t, "Omar Alaoui", cards[1].Reservation.CustomerName)
}

func TestGetSlots_DayOffIsEmpty(t *testing.T) {
	f := newFixture(t, 1)

	cards, err := f.svc.GetSlots(context.Background(), sunday)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestToggleSlotStatus(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	require.NoError(t, f.svc.ToggleSlotStatus(ctx, "2025-03-10-13:30", "blocked"))
	slots, err := f.dl.GetSlotsForDate(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBlocked, slots[1].Status)

	require.NoError(t, f.svc.ToggleSlotStatus(ctx, "2025-03-10-13:30", "AVAILABLE"))
	slots, err = f.dl.GetSlotsForDate(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotFree, slots[1].Status)

	assert.Equal(t, 1, f.metrics.slotChanges[ToggleBlocked])
	assert.Equal(t, 1, f.metrics.slotChanges[ToggleAvailable])
}

func TestToggleSlotStatus_Errors(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	tests := []struct {
		name   string
		slotID string
		status string
		want   error
	}{
		{"no hyphen", "2025031010:30", "blocked", ErrInvalidSlotID},
		{"bad date", "2025-13-10-10:30", "blocked", ErrInvalidSlotID},
		{"unknown status", "2025-03-10-10:30", "reserved", ErrUnsupportedSlotStatus},
		{"time outside fixed set", "2025-03-10-11:00", "blocked", ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, f.svc.ToggleSlotStatus(ctx, tt.slotID, tt.status), tt.want)
		})
	}
}

func TestBlockAndUnblockAllSlots(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	result := f.svc.BlockAllSlots(ctx, monday)
	assert.Equal(t, BatchResult{Succeeded: 3, Message: "3 créneau(x) bloqué(s)"}, result)

	slots, err := f.dl.GetSlotsForDate(ctx, monday)
	require.NoError(t, err)
	for _, slot := range slots {
		assert.Equal(t, domain.SlotBlocked, slot.Status)
	}

	result = f.svc.UnblockAllSlots(ctx, monday)
	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, "3 créneau(x) débloqué(s)", result.Message)

	slots, err = f.dl.GetSlotsForDate(ctx, monday)
	require.NoError(t, err)
	for _, slot := range slots {
		assert.Equal(t, domain.SlotFree, slot.Status)
	}
}

func TestBlockAllSlots_PartialFailure(t *testing.T) {
	f := newFixture(t, 1)
	flaky := &flakyDataLayer{Backend: f.dl, failAt: types.MustTimeString("13:30")}
	svc := NewService(flaky, f.schedule, f.notifier, f.metrics, logger.NewNop())

	result := svc.BlockAllSlots(context.Background(), monday)

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "2 créneau(x) bloqué(s), 1 créneau(x) ignoré(s)", result.Message)
}

func TestReservationTransitions(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	r := f.book(t, "10:30", "Imane")

	confirmed, err := f.svc.ConfirmReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, confirmed.Status)

	cancelled, err := f.svc.CancelReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	// отмена терминальна
	_, err = f.svc.ConfirmReservation(ctx, r.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// повторная отмена - no-op
	_, err = f.svc.CancelReservation(ctx, r.ID)
	assert.NoError(t, err)

	_, err = f.svc.UpdateReservationStatus(ctx, r.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.svc.CancelReservation(ctx, "res_404")
	assert.ErrorIs(t, err, ErrReservationNotFound)

	cards, err := f.svc.GetSlots(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, CardAvailable, cards[0].Status)
}

func TestGetDashboardStats(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()

	r := f.book(t, "10:30", "Hind")
	f.book(t, "13:30", "Karim")
	_, err := f.svc.ConfirmReservation(ctx, r.ID)
	require.NoError(t, err)

	stats, err := f.svc.GetDashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, &DashboardStats{
		TotalReservations:     2,
		TodayReservations:     2,
		PendingReservations:   1,
		ConfirmedReservations: 1,
		TotalSlots:            3,
	}, stats)
}

func TestSuggestQuote(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	r := f.book(t, "10:30", "Rania")

	items, err := f.svc.SuggestQuote(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Canapé/Fauteuil 3 places", items[0].Label)
	assert.True(t, decimal.NewFromInt(150).Equal(items[0].UnitPrice))

	saved := []domain.QuoteItem{{Label: "Forfait", Quantity: 1, UnitPrice: decimal.NewFromInt(180)}}
	_, err = f.svc.SaveQuote(ctx, r.ID, saved, "")
	require.NoError(t, err)

	items, err = f.svc.SuggestQuote(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Forfait", items[0].Label)

	_, err = f.svc.SuggestQuote(ctx, "res_404")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestSaveQuote_Draft(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	r := f.book(t, "10:30", "Leila")

	result, err := f.svc.SaveQuote(ctx, r.ID, []domain.QuoteItem{
		{Label: "Canapé", Quantity: 2, UnitPrice: decimal.NewFromInt(150)},
		{Label: "", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
	}, " Étage 3 ")
	require.NoError(t, err)

	assert.True(t, result.Saved)
	assert.False(t, result.Notified)
	assert.Equal(t, msgQuoteDraft, result.Message)
	assert.Equal(t, domain.QuoteDraft, result.Quote.Status)
	assert.Len(t, result.Quote.Items, 1)
	assert.Equal(t, "Étage 3", result.Quote.Notes)
	assert.True(t, decimal.NewFromInt(300).Equal(result.Quote.Total))
	assert.Empty(t, f.notifier.sent)

	_, err = f.svc.SaveQuote(ctx, r.ID, []domain.QuoteItem{{Label: "x", Quantity: 0}}, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSendQuote(t *testing.T) {
	items := []domain.QuoteItem{{Label: "Matelas 160", Quantity: 1, UnitPrice: decimal.NewFromInt(120)}}

	t.Run("delivered", func(t *testing.T) {
		f := newFixture(t, 1)
		r := f.book(t, "10:30", "Sofia")

		result, err := f.svc.SendQuote(context.Background(), r.ID, items, "")
		require.NoError(t, err)
		assert.True(t, result.Saved)
		assert.True(t, result.Notified)
		assert.Equal(t, msgQuoteSent, result.Message)
		assert.Len(t, f.notifier.sent, 1)
		assert.Equal(t, []string{"sent+notified"}, f.metrics.quotes)
	})

	t.Run("webhook failure keeps the quote", func(t *testing.T) {
		f := newFixture(t, 1)
		f.notifier.err = errors.New("connection refused")
		r := f.book(t, "10:30", "Sofia")

		result, err := f.svc.SendQuote(context.Background(), r.ID, items, "")
		require.NoError(t, err)
		assert.True(t, result.Saved)
		assert.False(t, result.Notified)
		assert.Equal(t, msgQuoteNotDelivered, result.Message)

		stored, err := f.svc.GetReservation(context.Background(), r.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.Quote)
		assert.Equal(t, domain.QuoteSent, stored.Quote.Status)
	})

	t.Run("webhook disabled", func(t *testing.T) {
		f := newFixture(t, 1)
		f.notifier.enabled = false
		r := f.book(t, "10:30", "Sofia")

		result, err := f.svc.SendQuote(context.Background(), r.ID, items, "")
		require.NoError(t, err)
		assert.False(t, result.Notified)
		assert.Equal(t, msgQuoteNoWebhook, result.Message)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newFixture(t, 1)

		_, err := f.svc.SendQuote(context.Background(), "res_404", items, "")
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}
