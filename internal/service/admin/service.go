package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/datalayer"
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/service/quotes"
	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

// Сообщения для панели
const (
	msgQuoteDraft        = "Devis enregistré en brouillon"
	msgQuoteSent         = "Devis envoyé sur WhatsApp"
	msgQuoteNotDelivered = "Devis enregistré, l'envoi WhatsApp a échoué"
	msgQuoteNoWebhook    = "Devis enregistré, l'envoi WhatsApp n'est pas configuré"
)

// Service операции панели администратора над слотами, резервациями и сметами
type Service struct {
	dl           DataLayer
	schedule     domain.Schedule
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса панели
func NewService(
	dl DataLayer,
	schedule domain.Schedule,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		dl:           dl,
		schedule:     schedule,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Today текущая дата в часовом поясе бизнеса
func (s *Service) Today() time.Time {
	return s.schedule.Today(s.timeProvider.Now())
}

// GetSlots карточки фиксированных слотов дня
// Занятые карточки дополняются клиентом и услугой первой активной резервации на это время
func (s *Service) GetSlots(ctx context.Context, date time.Time) ([]SlotCard, error) {
	date = domain.DateOf(date)
	if s.schedule.IsDayOff(date) {
		return []SlotCard{}, nil
	}

	slots, err := s.dl.GetSlotsForDate(ctx, date)
	if err != nil {
		s.logger.Error("GetSlots: failed to fetch slots for %s: %v", date.Format(domain.DateFormat), err)
		return nil, s.mapError("GetSlots", err)
	}

	byTime := make(map[types.TimeString]domain.Slot, len(slots))
	for _, slot := range slots {
		byTime[slot.Time] = slot
	}

	cards := make([]SlotCard, 0, len(s.schedule.TimeSlots))
	hasReserved := false
	for _, t := range s.schedule.TimeSlots {
		slot, ok := byTime[t]
		if !ok {
			slot = domain.NewSlot(date, t, s.schedule.Capacity, false, 0)
		}
		card := SlotCard{
			ID:        domain.SlotID(date, t),
			Date:      date,
			Time:      t,
			Status:    cardStatus(slot.Status),
			Capacity:  slot.Capacity,
			Available: slot.Available,
		}
		if card.Status == CardReserved {
			hasReserved = true
		}
		cards = append(cards, card)
	}

	if !hasReserved {
		return cards, nil
	}

	reservations, err := s.dl.GetReservationsOfDate(ctx, date)
	if err != nil {
		// карточки без подробностей лучше, чем пустая панель
		s.logger.Warn("GetSlots: failed to fetch reservations for %s: %v", date.Format(domain.DateFormat), err)
		return cards, nil
	}

	byReservationTime := make(map[types.TimeString]*domain.Reservation)
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if _, seen := byReservationTime[r.Time]; !seen {
			byReservationTime[r.Time] = r
		}
	}

	for i := range cards {
		if cards[i].Status != CardReserved {
			continue
		}
		if r, ok := byReservationTime[cards[i].Time]; ok {
			cards[i].ReservationID = r.ID
			cards[i].Reservation = &SlotReservation{
				CustomerName: r.CustomerName(),
				Service:      r.ServiceSummary(),
			}
		}
	}

	return cards, nil
}

// ToggleSlotStatus блокирует или освобождает слот по идентификатору "YYYY-MM-DD-HH:MM"
func (s *Service) ToggleSlotStatus(ctx context.Context, slotID string, status string) error {
	date, t, err := domain.ParseSlotID(slotID)
	if err != nil {
		s.logger.Warn("ToggleSlotStatus: %v", err)
		return fmt.Errorf("%w: %q", ErrInvalidSlotID, slotID)
	}

	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case ToggleBlocked:
		err = s.dl.MarkSlotBlocked(ctx, date, t)
	case ToggleAvailable:
		err = s.dl.MarkSlotFree(ctx, date, t)
	default:
		s.logger.Warn("ToggleSlotStatus: unsupported status=%q for slot=%s", status, slotID)
		return fmt.Errorf("%w: %q", ErrUnsupportedSlotStatus, status)
	}
	if err != nil {
		s.logger.Error("ToggleSlotStatus: slot=%s status=%s failed: %v", slotID, status, err)
		return s.mapError("ToggleSlotStatus", err)
	}

	s.metrics.SlotStatusChanged(status)
	s.logger.Info("ToggleSlotStatus: slot=%s is now %s", slotID, status)
	return nil
}

// BlockAllSlots блокирует все фиксированные слоты дня
func (s *Service) BlockAllSlots(ctx context.Context, date time.Time) BatchResult {
	result := s.applyToAll(ctx, date, ToggleBlocked, s.dl.MarkSlotBlocked)
	result.Message = batchMessage(result, "bloqué(s)")
	return result
}

// UnblockAllSlots снимает блокировку со всех фиксированных слотов дня
func (s *Service) UnblockAllSlots(ctx context.Context, date time.Time) BatchResult {
	result := s.applyToAll(ctx, date, ToggleAvailable, s.dl.MarkSlotFree)
	result.Message = batchMessage(result, "débloqué(s)")
	return result
}

// applyToAll проходит все слоты до конца; ошибки по отдельным слотам только считаются
func (s *Service) applyToAll(
	ctx context.Context,
	date time.Time,
	status string,
	apply func(ctx context.Context, date time.Time, t types.TimeString) error,
) BatchResult {
	date = domain.DateOf(date)

	var result BatchResult
	for _, t := range s.schedule.TimeSlots {
		if err := apply(ctx, date, t); err != nil {
			s.logger.Warn("BatchSlots: %s %s -> %s skipped: %v", date.Format(domain.DateFormat), t, status, err)
			result.Skipped++
			continue
		}
		s.metrics.SlotStatusChanged(status)
		result.Succeeded++
	}

	s.logger.Info("BatchSlots: %s -> %s, succeeded=%d skipped=%d",
		date.Format(domain.DateFormat), status, result.Succeeded, result.Skipped)
	return result
}

func batchMessage(result BatchResult, verb string) string {
	msg := fmt.Sprintf("%d créneau(x) %s", result.Succeeded, verb)
	if result.Skipped > 0 {
		msg += fmt.Sprintf(", %d créneau(x) ignoré(s)", result.Skipped)
	}
	return msg
}

// ConfirmReservation PENDING -> CONFIRMED
func (s *Service) ConfirmReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.UpdateReservationStatus(ctx, id, string(domain.StatusConfirmed))
}

// CancelReservation PENDING|CONFIRMED -> CANCELLED, освобождает место в слоте
func (s *Service) CancelReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.UpdateReservationStatus(ctx, id, string(domain.StatusCancelled))
}

// UpdateReservationStatus меняет статус резервации
func (s *Service) UpdateReservationStatus(ctx context.Context, id string, status string) (*domain.Reservation, error) {
	s.logger.Info("UpdateReservationStatus: reservation=%s -> %s", id, status)

	reservation, err := s.dl.UpdateReservationStatus(ctx, id, status)
	if err != nil {
		s.logger.Warn("UpdateReservationStatus: reservation=%s -> %s failed: %v", id, status, err)
		return nil, s.mapError("UpdateReservationStatus", err)
	}

	return reservation, nil
}

// GetReservations резервации на дату
func (s *Service) GetReservations(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	reservations, err := s.dl.GetReservationsOfDate(ctx, domain.DateOf(date))
	if err != nil {
		s.logger.Error("GetReservations: %v", err)
		return nil, s.mapError("GetReservations", err)
	}
	return reservations, nil
}

// GetReservation резервация по ID
func (s *Service) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	reservation, err := s.dl.GetReservationByID(ctx, id)
	if err != nil {
		return nil, s.mapError("GetReservation", err)
	}
	return reservation, nil
}

// GetDashboardStats статистика на сегодня в часовом поясе бизнеса
func (s *Service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	today := s.Today()

	stats, err := s.dl.GetStats(ctx, today)
	if err != nil {
		s.logger.Error("GetDashboardStats: %v", err)
		return nil, s.mapError("GetDashboardStats", err)
	}

	return &DashboardStats{
		TotalReservations:     stats.TotalReservations,
		TodayReservations:     stats.TodayReservations,
		PendingReservations:   stats.PendingReservations,
		ConfirmedReservations: stats.ConfirmedReservations,
		TotalSlots:            len(s.schedule.TimeSlots),
	}, nil
}

// SuggestQuote строки сметы для формы администратора
// Если смета уже есть, возвращаются ее строки, иначе расчет по прайсу
func (s *Service) SuggestQuote(ctx context.Context, reservationID string) ([]domain.QuoteItem, error) {
	reservation, err := s.dl.GetReservationByID(ctx, reservationID)
	if err != nil {
		return nil, s.mapError("SuggestQuote", err)
	}

	if reservation.Quote != nil && len(reservation.Quote.Items) > 0 {
		return reservation.Quote.Items, nil
	}
	return quotes.Suggest(reservation.Items), nil
}

// SaveQuote сохраняет смету черновиком
func (s *Service) SaveQuote(ctx context.Context, reservationID string, items []domain.QuoteItem, notes string) (*QuoteResult, error) {
	quote, err := s.saveQuote(ctx, reservationID, items, notes, domain.QuoteDraft)
	if err != nil {
		return nil, err
	}

	s.metrics.QuoteSaved(string(domain.QuoteDraft), false)
	return &QuoteResult{Quote: quote, Saved: true, Message: msgQuoteDraft}, nil
}

// SendQuote сохраняет смету как отправленную и уведомляет клиента через вебхук
// Сбой вебхука не отменяет сохранение
func (s *Service) SendQuote(ctx context.Context, reservationID string, items []domain.QuoteItem, notes string) (*QuoteResult, error) {
	reservation, err := s.dl.GetReservationByID(ctx, reservationID)
	if err != nil {
		return nil, s.mapError("SendQuote", err)
	}

	quote, err := s.saveQuote(ctx, reservation.ID, items, notes, domain.QuoteSent)
	if err != nil {
		return nil, err
	}

	result := &QuoteResult{Quote: quote, Saved: true}
	switch {
	case s.notifier == nil || !s.notifier.Enabled():
		s.logger.Warn("SendQuote: webhook is not configured, quote=%s saved only", quote.ID)
		result.Message = msgQuoteNoWebhook
	default:
		if err := s.notifier.SendQuote(ctx, reservation, quote); err != nil {
			s.logger.Error("SendQuote: quote=%s saved but not delivered: %v", quote.ID, err)
			result.Message = msgQuoteNotDelivered
		} else {
			result.Notified = true
			result.Message = msgQuoteSent
		}
	}

	s.metrics.QuoteSaved(string(domain.QuoteSent), result.Notified)
	return result, nil
}

func (s *Service) saveQuote(
	ctx context.Context,
	reservationID string,
	items []domain.QuoteItem,
	notes string,
	status domain.QuoteStatus,
) (*domain.Quote, error) {
	items = quotes.Clean(items)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: quote has no valid items", ErrInvalidInput)
	}

	quote, err := s.dl.SaveQuote(ctx, &domain.NewQuote{
		ReservationID: reservationID,
		Status:        status,
		Items:         items,
		Notes:         strings.TrimSpace(notes),
	})
	if err != nil {
		s.logger.Error("SaveQuote: reservation=%s status=%s failed: %v", reservationID, status, err)
		return nil, s.mapError("SaveQuote", err)
	}

	s.logger.Info("SaveQuote: quote=%s for reservation=%s saved as %s, total=%s",
		quote.ID, reservationID, status, quote.Total.StringFixed(2))
	return quote, nil
}

// mapError переводит коды слоя данных в ошибки сервиса
func (s *Service) mapError(op string, err error) error {
	switch {
	case errors.Is(err, datalayer.ErrNotFound):
		return fmt.Errorf("%w: %s - %v", ErrReservationNotFound, op, err)
	case errors.Is(err, datalayer.ErrInvalidStatus):
		return fmt.Errorf("%w: %s - %v", ErrInvalidStatus, op, err)
	case errors.Is(err, datalayer.ErrInvalidTransition):
		return fmt.Errorf("%w: %s - %v", ErrInvalidTransition, op, err)
	case errors.Is(err, datalayer.ErrInvalidInput):
		return fmt.Errorf("%w: %s - %v", ErrInvalidInput, op, err)
	default:
		return fmt.Errorf("%w: %s - %v", ErrInternal, op, err)
	}
}
