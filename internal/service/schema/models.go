package schema

import (
	"sort"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

// Поля формы в порядке приоритета показа ошибок
const (
	FieldFirstName = "first-name"
	FieldLastName  = "last-name"
	FieldPhone     = "phone"
	FieldDistrict  = "district"
	FieldAddress   = "address"
	FieldServices  = "services"
	FieldDate      = "date"
	FieldTimeSlot  = "time-slot"
	FieldPhotos    = "photos"
	FieldComments  = "comments"
)

var fieldPriority = map[string]int{
	FieldFirstName: 0,
	FieldLastName:  1,
	FieldPhone:     2,
	FieldDistrict:  3,
	FieldAddress:   4,
	FieldServices:  5,
	FieldDate:      6,
	FieldTimeSlot:  7,
	FieldPhotos:    8,
	FieldComments:  9,
}

// Коды ошибок
const (
	CodeRequired      = "required"
	CodeTooShort      = "too-short"
	CodeTooLong       = "too-long"
	CodeInvalidFormat = "invalid-format"
	CodePastDate      = "past-date"
	CodeDayOff        = "day-off"
	CodeUnknownSlot   = "unknown-slot"
	CodeUnavailable   = "unavailable"
	CodeInvalidItem   = "invalid-item"
	CodeTooFew        = "too-few"
	CodeTooMany       = "too-many"
)

// Input данные формы бронирования до разбора
type Input struct {
	FirstName string               `field:"first-name" validate:"required,min=2,max=100"`
	LastName  string               `field:"last-name" validate:"required,min=2,max=100"`
	Phone     string               `field:"phone" validate:"required,phone"`
	District  string               `field:"district" validate:"required,max=100"`
	Address   string               `field:"address" validate:"max=500"`
	Date      string               `field:"date" validate:"required"`
	Time      string               `field:"time-slot" validate:"required"`
	Items     []domain.ServiceItem `field:"services" validate:"required,min=1"`
	Photos    []domain.Photo       `field:"photos"`
	Comments  string               `field:"comments" validate:"max=1000"`
}

// FieldError ошибка конкретного поля формы
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result результат проверки; ошибки отсортированы по приоритету полей
type Result struct {
	IsValid bool         `json:"isValid"`
	Errors  []FieldError `json:"errors"`
}

// First ошибка, которую показываем пользователю
func (r Result) First() *FieldError {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

// With добавляет ошибку поля, заменяя прежнюю ошибку того же поля
func (r Result) With(fe FieldError) Result {
	errs := make([]FieldError, 0, len(r.Errors)+1)
	for _, e := range r.Errors {
		if e.Field != fe.Field {
			errs = append(errs, e)
		}
	}
	errs = append(errs, fe)
	sortByPriority(errs)
	return Result{IsValid: false, Errors: errs}
}

func sortByPriority(errs []FieldError) {
	sort.SliceStable(errs, func(i, j int) bool {
		return fieldPriority[errs[i].Field] < fieldPriority[errs[j].Field]
	})
}

// Limits ограничения формы из конфигурации
type Limits struct {
	MinPhotos       int
	MaxPhotos       int
	AllowedServices []string
}
