package datalayer

import (
	"errors"
	"fmt"
)

// Code код ошибки слоя данных
type Code string

const (
	CodeSlotUnavailable   Code = "SLOT_UNAVAILABLE"
	CodeNotFound          Code = "NOT_FOUND"
	CodeInvalidStatus     Code = "INVALID_STATUS"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeInvalidInput      Code = "INVALID_INPUT"
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeBackend           Code = "BACKEND"
)

// Error ошибка слоя данных с кодом
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("datalayer: %s: %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("datalayer: %s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is сравнивает ошибки по коду, чтобы работал errors.Is(err, datalayer.ErrNotFound)
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Эталонные ошибки для errors.Is
var (
	ErrSlotUnavailable   = &Error{Code: CodeSlotUnavailable}
	ErrNotFound          = &Error{Code: CodeNotFound}
	ErrInvalidStatus     = &Error{Code: CodeInvalidStatus}
	ErrInvalidTransition = &Error{Code: CodeInvalidTransition}
	ErrInvalidInput      = &Error{Code: CodeInvalidInput}
	ErrUnauthorized      = &Error{Code: CodeUnauthorized}
	ErrBackend           = &Error{Code: CodeBackend}
)

// NewError создает ошибку с кодом
func NewError(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Errorf создает ошибку с форматированным сообщением
func Errorf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf возвращает код ошибки; для чужих ошибок - CodeBackend
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var dlErr *Error
	if errors.As(err, &dlErr) {
		return dlErr.Code
	}
	return CodeBackend
}
