package datalayer

import (
	"errors"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

// ResolveTransition разбирает целевой статус и проверяет переход
// Возвращает целевой статус и признак реального изменения
func ResolveTransition(current domain.ReservationStatus, rawTarget string) (domain.ReservationStatus, bool, error) {
	target, err := domain.ParseReservationStatus(rawTarget)
	if err != nil {
		return "", false, NewError(CodeInvalidStatus, "unknown reservation status", err)
	}

	changed, err := current.TransitionTo(target)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return "", false, NewError(CodeInvalidTransition, "status transition not allowed", err)
		}
		return "", false, NewError(CodeBackend, "status transition", err)
	}

	return target, changed, nil
}
