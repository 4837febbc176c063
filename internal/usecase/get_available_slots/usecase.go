package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

// UseCase use case для получения слотов на дату для формы бронирования
type UseCase struct {
	dl           DataLayer
	schedule     domain.Schedule
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(dl DataLayer, schedule domain.Schedule, logger Logger) *UseCase {
	return &UseCase{
		dl:           dl,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := domain.DateOf(req.Date)
	uc.logger.Info("GetAvailableSlots: date=%s", date.Format(domain.DateFormat))

	resp := &Response{Date: date, Slots: []Slot{}}

	// В прошлое записаться нельзя
	if date.Before(uc.schedule.Today(uc.timeProvider.Now())) {
		resp.Past = true
		return resp, nil
	}

	if uc.schedule.IsDayOff(date) {
		resp.DayOff = true
		return resp, nil
	}

	slots, err := uc.dl.GetSlotsForDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slots for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	for _, slot := range slots {
		resp.Slots = append(resp.Slots, Slot{
			ID:        slot.ID(),
			Time:      slot.Time,
			Status:    slot.Status,
			Available: slot.Available,
			Capacity:  slot.Capacity,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d slots for %s", len(resp.Slots), date.Format(domain.DateFormat))
	return resp, nil
}
