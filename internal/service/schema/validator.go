// Package schema проверяет данные резервации перед сохранением
package schema

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

var phonePattern = regexp.MustCompile(`^\+\d{8,15}$`)

// Validator проверка формы бронирования
type Validator struct {
	validate     *validator.Validate
	schedule     domain.Schedule
	limits       Limits
	allowed      map[string]bool
	timeProvider TimeProvider
}

// New создает валидатор для расписания и ограничений формы
func New(schedule domain.Schedule, limits Limits) *Validator {
	if limits.MinPhotos <= 0 {
		limits.MinPhotos = domain.DefaultMinPhotos
	}
	if limits.MaxPhotos <= 0 {
		limits.MaxPhotos = domain.DefaultMaxPhotos
	}
	if len(limits.AllowedServices) == 0 {
		limits.AllowedServices = domain.AllowedServices
	}

	allowed := make(map[string]bool, len(limits.AllowedServices))
	for _, s := range limits.AllowedServices {
		allowed[s] = true
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("field")
	})
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return &Validator{
		validate:     validate,
		schedule:     schedule,
		limits:       limits,
		allowed:      allowed,
		timeProvider: &RealTimeProvider{},
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (v *Validator) WithTimeProvider(tp TimeProvider) *Validator {
	v.timeProvider = tp
	return v
}

// Validate проверяет форму целиком и возвращает все ошибки
func (v *Validator) Validate(in *Input) Result {
	_, result := v.Build(in)
	return result
}

// Build проверяет форму и, если она корректна, собирает NewReservation
func (v *Validator) Build(in *Input) (*domain.NewReservation, Result) {
	normalized := normalize(in)
	errs := v.structErrors(normalized)

	date, dateErr := v.checkDate(normalized.Date)
	if dateErr != nil && !hasField(errs, FieldDate) {
		errs = append(errs, *dateErr)
	}

	t, timeErr := v.checkTime(normalized.Time)
	if timeErr != nil && !hasField(errs, FieldTimeSlot) {
		errs = append(errs, *timeErr)
	}

	if !hasField(errs, FieldServices) {
		if itemErr := v.checkItems(normalized.Items); itemErr != nil {
			errs = append(errs, *itemErr)
		}
	}

	if photoErr := v.checkPhotos(normalized.Photos); photoErr != nil {
		errs = append(errs, *photoErr)
	}

	sortByPriority(errs)

	result := Result{IsValid: len(errs) == 0, Errors: errs}
	if !result.IsValid {
		return nil, result
	}

	return &domain.NewReservation{
		FirstName: normalized.FirstName,
		LastName:  normalized.LastName,
		Phone:     normalized.Phone,
		District:  normalized.District,
		Address:   normalized.Address,
		Date:      date,
		Time:      t,
		Items:     normalized.Items,
		Photos:    normalized.Photos,
		Comments:  normalized.Comments,
	}, result
}

// CheckAvailability повторно запрашивает слот; nil, если он все еще свободен
func CheckAvailability(ctx context.Context, source SlotSource, date time.Time, t types.TimeString) (*FieldError, error) {
	slots, err := source.GetSlotsForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}

	for _, slot := range slots {
		if slot.Time == t && slot.IsFree() {
			return nil, nil
		}
	}
	return SlotUnavailableError(), nil
}

// SlotUnavailableError ошибка поля time-slot для занятого слота
func SlotUnavailableError() *FieldError {
	return &FieldError{Field: FieldTimeSlot, Code: CodeUnavailable, Message: "Ce créneau n'est plus disponible"}
}

func (v *Validator) structErrors(in *Input) []FieldError {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []FieldError{{Field: FieldServices, Code: CodeInvalidFormat, Message: "Formulaire invalide"}}
	}

	result := make([]FieldError, 0, len(validationErrs))
	seen := make(map[string]bool)
	for _, fe := range validationErrs {
		if seen[fe.Field()] {
			continue
		}
		seen[fe.Field()] = true
		result = append(result, toFieldError(fe, in))
	}
	return result
}

func toFieldError(fe validator.FieldError, in *Input) FieldError {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return FieldError{Field: field, Code: CodeRequired, Message: requiredMessages[field]}
	case "min":
		if field == FieldServices {
			return FieldError{Field: field, Code: CodeRequired, Message: requiredMessages[field]}
		}
		return FieldError{Field: field, Code: CodeTooShort, Message: tooShortMessages[field]}
	case "max":
		return FieldError{Field: field, Code: CodeTooLong, Message: fmt.Sprintf("Le champ %s est trop long (maximum %s caractères)", field, fe.Param())}
	case "phone":
		return FieldError{Field: field, Code: CodeInvalidFormat, Message: phoneMessage(in.Phone)}
	default:
		return FieldError{Field: field, Code: CodeInvalidFormat, Message: "Valeur invalide"}
	}
}

var requiredMessages = map[string]string{
	FieldFirstName: "Le prénom est obligatoire",
	FieldLastName:  "Le nom est obligatoire",
	FieldPhone:     "Le numéro de téléphone est obligatoire",
	FieldDistrict:  "Le quartier est obligatoire",
	FieldDate:      "La date est obligatoire",
	FieldTimeSlot:  "Le créneau horaire est obligatoire",
	FieldServices:  "Veuillez valider au moins un service",
}

var tooShortMessages = map[string]string{
	FieldFirstName: "Le prénom doit contenir au moins 2 caractères",
	FieldLastName:  "Le nom doit contenir au moins 2 caractères",
}

func phoneMessage(phone string) string {
	if !strings.HasPrefix(phone, "+") {
		return "Le numéro doit commencer par +"
	}
	digits := strings.TrimPrefix(phone, "+")
	switch {
	case len(digits) < 8:
		return "Le numéro est trop court (minimum 8 chiffres)"
	case len(digits) > 15:
		return "Le numéro est trop long (maximum 15 chiffres)"
	default:
		return "Veuillez saisir un numéro de téléphone valide"
	}
}

func (v *Validator) checkDate(raw string) (time.Time, *FieldError) {
	if raw == "" {
		return time.Time{}, &FieldError{Field: FieldDate, Code: CodeRequired, Message: requiredMessages[FieldDate]}
	}

	date, err := domain.ParseDate(raw)
	if err != nil {
		return time.Time{}, &FieldError{Field: FieldDate, Code: CodeInvalidFormat, Message: "La date est invalide (format attendu AAAA-MM-JJ)"}
	}

	if date.Before(v.schedule.Today(v.timeProvider.Now())) {
		return time.Time{}, &FieldError{Field: FieldDate, Code: CodePastDate, Message: "Impossible de réserver dans le passé"}
	}

	if v.schedule.IsDayOff(date) {
		return time.Time{}, &FieldError{Field: FieldDate, Code: CodeDayOff, Message: "Nous ne travaillons pas ce jour-là"}
	}

	return date, nil
}

func (v *Validator) checkTime(raw string) (types.TimeString, *FieldError) {
	if raw == "" {
		return "", &FieldError{Field: FieldTimeSlot, Code: CodeRequired, Message: requiredMessages[FieldTimeSlot]}
	}

	t, err := types.NewTimeStringFromString(raw)
	if err != nil || !v.schedule.HasTime(t) {
		return "", &FieldError{Field: FieldTimeSlot, Code: CodeUnknownSlot, Message: "Ce créneau horaire n'existe pas"}
	}
	return t, nil
}

func (v *Validator) checkItems(items []domain.ServiceItem) *FieldError {
	for i, item := range items {
		switch {
		case !v.allowed[item.Service]:
			return &FieldError{Field: FieldServices, Code: CodeInvalidItem, Message: fmt.Sprintf("Service %d: type de service inconnu", i+1)}
		case strings.TrimSpace(item.Label) == "":
			return &FieldError{Field: FieldServices, Code: CodeInvalidItem, Message: fmt.Sprintf("Service %d: description manquante", i+1)}
		case item.Quantity <= 0:
			return &FieldError{Field: FieldServices, Code: CodeInvalidItem, Message: fmt.Sprintf("Service %d: la quantité doit être positive", i+1)}
		}
	}
	return nil
}

func (v *Validator) checkPhotos(photos []domain.Photo) *FieldError {
	count := len(photos)
	if count < v.limits.MinPhotos {
		return &FieldError{Field: FieldPhotos, Code: CodeTooFew,
			Message: fmt.Sprintf("Minimum %d photos requises (%d actuellement)", v.limits.MinPhotos, count)}
	}
	if count > v.limits.MaxPhotos {
		return &FieldError{Field: FieldPhotos, Code: CodeTooMany,
			Message: fmt.Sprintf("Maximum %d photos autorisées (%d actuellement)", v.limits.MaxPhotos, count)}
	}
	for i, p := range photos {
		if p.URL == "" || p.Name == "" {
			return &FieldError{Field: FieldPhotos, Code: CodeInvalidItem, Message: fmt.Sprintf("Photo %d invalide", i+1)}
		}
	}
	return nil
}

func normalize(in *Input) *Input {
	out := *in
	out.FirstName = strings.TrimSpace(in.FirstName)
	out.LastName = strings.TrimSpace(in.LastName)
	out.Phone = strings.TrimSpace(in.Phone)
	out.District = strings.TrimSpace(in.District)
	out.Address = strings.TrimSpace(in.Address)
	out.Date = strings.TrimSpace(in.Date)
	out.Time = strings.TrimSpace(in.Time)
	out.Comments = strings.TrimSpace(in.Comments)
	return &out
}

func hasField(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
