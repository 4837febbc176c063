package create_reservation

import (
	"errors"

	"github.com/m04kA/HappyStay-BookingService/internal/service/schema"
)

var (
	// ErrValidation возвращается, если форма не прошла проверку (см. ValidationError)
	ErrValidation = errors.New("create_reservation: validation failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// ValidationError ошибки формы; первая ошибка показывается пользователю
type ValidationError struct {
	Result schema.Result
}

func (e *ValidationError) Error() string {
	if first := e.Result.First(); first != nil {
		return ErrValidation.Error() + ": " + first.Field + ": " + first.Code
	}
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(errs ...schema.FieldError) *ValidationError {
	return &ValidationError{Result: schema.Result{IsValid: false, Errors: errs}}
}
