package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/HappyStay-BookingService/internal/datalayer"
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/infra/storage/blob"
	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

// StoreKey ключ, под которым лежит весь снимок данных
const StoreKey = "happystay_mock_data"

const blockedMark = "BLOCKED"

// state снимок данных, сериализуемый в один JSON
type state struct {
	Reservations      []reservationRecord          `json:"reservations"`
	Slots             map[string]map[string]string `json:"slots"` // дата -> время -> "BLOCKED"
	Quotes            []quoteRecord                `json:"quotes"`
	NextReservationID int                          `json:"nextReservationId"`
	NextQuoteID       int                          `json:"nextQuoteId"`
}

type reservationRecord struct {
	ID        string               `json:"id"`
	FirstName string               `json:"firstName"`
	LastName  string               `json:"lastName"`
	Phone     string               `json:"phone"`
	District  string               `json:"district"`
	Address   string               `json:"address,omitempty"`
	Date      string               `json:"date"`
	Time      string               `json:"time"`
	Items     []domain.ServiceItem `json:"items"`
	Photos    []domain.Photo       `json:"photos"`
	Comments  string               `json:"comments,omitempty"`
	Status    string               `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

type quoteRecord struct {
	ID            string             `json:"id"`
	ReservationID string             `json:"reservationId"`
	Status        string             `json:"status"`
	Items         []domain.QuoteItem `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

func emptyState() *state {
	return &state{
		Reservations:      []reservationRecord{},
		Slots:             map[string]map[string]string{},
		Quotes:            []quoteRecord{},
		NextReservationID: 1,
		NextQuoteID:       1,
	}
}

// load читает снимок; отсутствие ключа - пустые данные
// Вызывать под b.mu
func (b *Backend) load(ctx context.Context) (*state, error) {
	raw, err := b.blobs.Get(ctx, StoreKey)
	if errors.Is(err, blob.ErrNotFound) {
		return emptyState(), nil
	}
	if err != nil {
		return nil, datalayer.NewError(datalayer.CodeBackend, "load local store", err)
	}

	st := emptyState()
	if err := json.Unmarshal(raw, st); err != nil {
		return nil, datalayer.NewError(datalayer.CodeBackend, "decode local store", err)
	}
	if st.Slots == nil {
		st.Slots = map[string]map[string]string{}
	}
	if st.NextReservationID < 1 {
		st.NextReservationID = len(st.Reservations) + 1
	}
	if st.NextQuoteID < 1 {
		st.NextQuoteID = len(st.Quotes) + 1
	}
	return st, nil
}

// save записывает снимок целиком
// Вызывать под b.mu
func (b *Backend) save(ctx context.Context, st *state) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return datalayer.NewError(datalayer.CodeBackend, "encode local store", err)
	}
	if err := b.blobs.Put(ctx, StoreKey, raw); err != nil {
		return datalayer.NewError(datalayer.CodeBackend, "save local store", err)
	}
	return nil
}

func (st *state) isBlocked(date string, t string) bool {
	return st.Slots[date][t] == blockedMark
}

func (st *state) setBlocked(date, t string, blocked bool) {
	if blocked {
		if st.Slots[date] == nil {
			st.Slots[date] = map[string]string{}
		}
		st.Slots[date][t] = blockedMark
		return
	}

	delete(st.Slots[date], t)
	if len(st.Slots[date]) == 0 {
		delete(st.Slots, date)
	}
}

// activeCount число PENDING/CONFIRMED резерваций на слот
func (st *state) activeCount(date, t string) int {
	count := 0
	for _, r := range st.Reservations {
		if r.Date == date && r.Time == t && r.status().IsActive() {
			count++
		}
	}
	return count
}

func (st *state) findReservation(id string) (int, bool) {
	for i := range st.Reservations {
		if st.Reservations[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (st *state) quotesOf(reservationID string) []*domain.Quote {
	quotes := make([]*domain.Quote, 0)
	for _, q := range st.Quotes {
		if q.ReservationID == reservationID {
			quotes = append(quotes, q.toDomain())
		}
	}
	return quotes
}

// status статус записи; неизвестные значения считаем PENDING,
// чтобы запись не потеряла занятое место
func (r reservationRecord) status() domain.ReservationStatus {
	status, err := domain.ParseReservationStatus(r.Status)
	if err != nil {
		return domain.StatusPending
	}
	return status
}

func (r reservationRecord) toDomain() (*domain.Reservation, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("reservation %s: %w", r.ID, err)
	}
	t, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, fmt.Errorf("reservation %s: %w", r.ID, err)
	}

	return &domain.Reservation{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		District:  r.District,
		Address:   r.Address,
		Date:      date,
		Time:      t,
		Items:     r.Items,
		Photos:    r.Photos,
		Comments:  r.Comments,
		Status:    r.status(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func (q quoteRecord) toDomain() *domain.Quote {
	return &domain.Quote{
		ID:            q.ID,
		ReservationID: q.ReservationID,
		Status:        domain.QuoteStatus(q.Status),
		Items:         q.Items,
		Total:         q.Total,
		Notes:         q.Notes,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}
