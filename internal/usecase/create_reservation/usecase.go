package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HappyStay-BookingService/internal/datalayer"
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/service/cart"
	"github.com/m04kA/HappyStay-BookingService/internal/service/schema"
)

// Причины отказа для метрик
const (
	rejectValidation  = "validation"
	rejectUnavailable = "unavailable"
	rejectRace        = "race"
)

// CartLimits ограничения корзины
type CartLimits struct {
	MaxItems        int
	AllowedServices []string
}

// UseCase use case для отправки формы бронирования
type UseCase struct {
	dl         DataLayer
	validator  Validator
	cartLimits CartLimits
	metrics    Metrics
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	dl DataLayer,
	validator Validator,
	cartLimits CartLimits,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		dl:         dl,
		validator:  validator,
		cartLimits: cartLimits,
		metrics:    metrics,
		logger:     logger,
	}
}

// Execute выполняет use case создания резервации
// Ошибки формы возвращаются как *ValidationError
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: date=%s, time=%s, services=%d, photos=%d",
		req.Date, req.Time, len(req.Services), len(req.Photos))

	// 1. Собираем корзину заново: в резервацию идут только подтвержденные строки
	items, cartErr := uc.replayCart(req.Services)
	if cartErr != nil {
		uc.logger.Warn("CreateReservation: cart rejected: %s", cartErr.Message)
	}

	// 2. Проверяем форму; ошибка корзины встает на место ошибки поля services
	in, result := uc.validator.Build(&schema.Input{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		District:  req.District,
		Address:   req.Address,
		Date:      req.Date,
		Time:      req.Time,
		Items:     items,
		Photos:    req.Photos,
		Comments:  req.Comments,
	})
	if cartErr != nil {
		result = result.With(*cartErr)
	}
	if !result.IsValid {
		first := result.First()
		uc.logger.Warn("CreateReservation: validation failed on %s (%s), %d errors",
			first.Field, first.Code, len(result.Errors))
		uc.metrics.ReservationRejected(rejectValidation)
		return nil, &ValidationError{Result: result}
	}

	slotID := domain.SlotID(in.Date, in.Time)

	// 3. Повторно проверяем доступность слота перед записью
	fieldErr, err := schema.CheckAvailability(ctx, uc.dl, in.Date, in.Time)
	switch {
	case err != nil:
		// окончательное решение все равно принимает CreateReservation
		uc.logger.Warn("CreateReservation: availability re-check for %s failed: %v", slotID, err)
	case fieldErr != nil:
		uc.logger.Warn("CreateReservation: slot %s is no longer free", slotID)
		uc.metrics.ReservationRejected(rejectUnavailable)
		return nil, invalid(*fieldErr)
	}

	// 4. Атомарная запись; проигрыш гонки - та же ошибка поля time-slot
	reservation, err := uc.dl.CreateReservation(ctx, in)
	if err != nil {
		switch {
		case errors.Is(err, datalayer.ErrSlotUnavailable):
			uc.logger.Warn("CreateReservation: slot %s taken concurrently: %v", slotID, err)
			uc.metrics.ReservationRejected(rejectRace)
			return nil, invalid(*schema.SlotUnavailableError())
		case errors.Is(err, datalayer.ErrInvalidInput):
			uc.logger.Warn("CreateReservation: rejected by data layer: %v", err)
			uc.metrics.ReservationRejected(rejectValidation)
			return nil, invalid(schema.FieldError{Field: schema.FieldTimeSlot, Code: schema.CodeUnknownSlot, Message: "Ce créneau horaire n'existe pas"})
		default:
			uc.logger.Error("CreateReservation: failed to create reservation for %s: %v", slotID, err)
			return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}
	}

	uc.metrics.ReservationCreated(in.Time.String())
	uc.logger.Info("CreateReservation: successfully created reservation id=%s for %s", reservation.ID, slotID)
	return &Response{Reservation: reservation}, nil
}

// replayCart воспроизводит действия пользователя над корзиной
func (uc *UseCase) replayCart(lines []CartLine) ([]domain.ServiceItem, *schema.FieldError) {
	c := cart.New(uc.cartLimits.MaxItems, uc.cartLimits.AllowedServices)

	for i, line := range lines {
		id, err := c.Add(line.Type)
		if err != nil {
			return nil, cartFieldError(i, err)
		}
		if err := c.Update(id, line.Fields); err != nil {
			return nil, cartFieldError(i, err)
		}
		if !line.Validated {
			continue
		}
		if err := c.Validate(id); err != nil {
			// неполная строка не подтверждается и не попадает в резервацию
			uc.logger.Warn("CreateReservation: service %d (%s) is incomplete, dropped", i+1, line.Type)
		}
	}

	return c.Items(), nil
}

func cartFieldError(index int, err error) *schema.FieldError {
	switch {
	case errors.Is(err, cart.ErrCartFull):
		return &schema.FieldError{Field: schema.FieldServices, Code: schema.CodeTooMany, Message: "Trop de services dans la demande"}
	case errors.Is(err, cart.ErrUnknownService):
		return &schema.FieldError{Field: schema.FieldServices, Code: schema.CodeInvalidItem,
			Message: fmt.Sprintf("Service %d: type de service inconnu", index+1)}
	default:
		return &schema.FieldError{Field: schema.FieldServices, Code: schema.CodeInvalidItem,
			Message: fmt.Sprintf("Service %d invalide", index+1)}
	}
}
