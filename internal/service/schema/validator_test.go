package schema

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newValidator(t *testing.T) *Validator {
	t.Helper()
	schedule, err := domain.NewSchedule(domain.DefaultTimeSlots, "sunday", 2, time.UTC)
	require.NoError(t, err)

	// суббота 2025-03-08
	return New(schedule, Limits{MinPhotos: 2, MaxPhotos: 4}).
		WithTimeProvider(fixedTime{now: time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)})
}

func validInput() *Input {
	return &Input{
		FirstName: "Amina",
		LastName:  "Benali",
		Phone:     "+212639887031",
		District:  "Maarif",
		Date:      "2025-03-10",
		Time:      "10:00",
		Items: []domain.ServiceItem{
			{Service: domain.ServiceMattress, Label: "Matelas 140 (2 faces)", Quantity: 1, Format: "140", Faces: 2},
		},
		Photos: []domain.Photo{
			{URL: "/uploads/a.jpg", Name: "a.jpg"},
			{URL: "/uploads/b.jpg", Name: "b.jpg"},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	v := newValidator(t)

	reservation, result := v.Build(validInput())
	require.True(t, result.IsValid, "%+v", result.Errors)
	assert.Nil(t, result.First())
	require.NotNil(t, reservation)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), reservation.Date)
	assert.Equal(t, types.TimeString("10:00"), reservation.Time)
}

func TestValidate_Phone(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		phone   string
		valid   bool
		message string
	}{
		{"+212639887031", true, ""},
		{"0639887031", false, "Le numéro doit commencer par +"},
		{"+2126", false, "Le numéro est trop court (minimum 8 chiffres)"},
		{"+2126398870311234", false, "Le numéro est trop long (maximum 15 chiffres)"},
		{"+212 639 887", false, "Veuillez saisir un numéro de téléphone valide"},
		{"", false, "Le numéro de téléphone est obligatoire"},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			in := validInput()
			in.Phone = tt.phone

			result := v.Validate(in)
			assert.Equal(t, tt.valid, result.IsValid)
			if !tt.valid {
				require.NotNil(t, result.First())
				assert.Equal(t, FieldPhone, result.First().Field)
				assert.Equal(t, tt.message, result.First().Message)
			}
		})
	}
}

func TestValidate_Photos(t *testing.T) {
	v := newValidator(t)

	in := validInput()
	in.Photos = in.Photos[:1]

	result := v.Validate(in)
	require.False(t, result.IsValid)
	assert.Equal(t, FieldPhotos, result.First().Field)
	assert.Equal(t, CodeTooFew, result.First().Code)
	assert.Equal(t, "Minimum 2 photos requises (1 actuellement)", result.First().Message)

	in.Photos = make([]domain.Photo, 5)
	for i := range in.Photos {
		in.Photos[i] = domain.Photo{URL: "/u", Name: "n"}
	}
	result = v.Validate(in)
	assert.Equal(t, CodeTooMany, result.First().Code)

	in.Photos = []domain.Photo{{URL: "/u", Name: "a"}, {Name: "b"}}
	result = v.Validate(in)
	assert.Equal(t, CodeInvalidItem, result.First().Code)
}

func TestValidate_Date(t *testing.T) {
	v := newValidator(t)

	tests := map[string]string{
		"2025-03-07": CodePastDate,
		"2025-03-09": CodeDayOff,
		"10/03/2025": CodeInvalidFormat,
	}
	for date, code := range tests {
		t.Run(date, func(t *testing.T) {
			in := validInput()
			in.Date = date

			result := v.Validate(in)
			require.False(t, result.IsValid)
			assert.Equal(t, FieldDate, result.First().Field)
			assert.Equal(t, code, result.First().Code)
		})
	}

	// сегодняшняя дата допустима
	in := validInput()
	in.Date = "2025-03-08"
	assert.True(t, v.Validate(in).IsValid)
}

func TestValidate_TimeSlot(t *testing.T) {
	v := newValidator(t)

	in := validInput()
	in.Time = "11:00"
	result := v.Validate(in)
	assert.Equal(t, FieldTimeSlot, result.First().Field)
	assert.Equal(t, CodeUnknownSlot, result.First().Code)

	in.Time = "13:30:00"
	assert.True(t, v.Validate(in).IsValid)
}

func TestValidate_Items(t *testing.T) {
	v := newValidator(t)

	in := validInput()
	in.Items = nil
	result := v.Validate(in)
	assert.Equal(t, FieldServices, result.First().Field)
	assert.Equal(t, CodeRequired, result.First().Code)

	in.Items = []domain.ServiceItem{}
	assert.Equal(t, CodeRequired, v.Validate(in).First().Code)

	in.Items = []domain.ServiceItem{{Service: "Tapis", Label: "Tapis", Quantity: 1}}
	assert.Equal(t, CodeInvalidItem, v.Validate(in).First().Code)

	in.Items = []domain.ServiceItem{{Service: domain.ServiceChairs, Label: "4x Chaises", Quantity: 0}}
	assert.Equal(t, CodeInvalidItem, v.Validate(in).First().Code)
}

func TestValidate_Priority(t *testing.T) {
	v := newValidator(t)

	in := &Input{Phone: "123", Date: "2025-03-09"}
	result := v.Validate(in)
	require.False(t, result.IsValid)

	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{
		FieldFirstName, FieldLastName, FieldPhone, FieldDistrict,
		FieldServices, FieldDate, FieldTimeSlot, FieldPhotos,
	}, fields)
	assert.Equal(t, "Le prénom est obligatoire", result.First().Message)
}

func TestResult_WithReplacesSameField(t *testing.T) {
	v := newValidator(t)

	in := validInput()
	in.LastName = ""
	in.Items = nil
	result := v.Validate(in)
	require.Len(t, result.Errors, 2)
	require.Equal(t, CodeRequired, result.Errors[1].Code)

	cartErr := FieldError{Field: FieldServices, Code: CodeTooMany, Message: "Trop de services dans la demande"}
	merged := result.With(cartErr)
	assert.False(t, merged.IsValid)
	assert.Equal(t, []FieldError{result.Errors[0], cartErr}, merged.Errors)

	merged = Result{IsValid: true}.With(FieldError{Field: FieldPhotos, Code: CodeTooFew})
	assert.False(t, merged.IsValid)
	assert.Len(t, merged.Errors, 1)
}

type slotSource struct {
	slots []domain.Slot
	err   error
}

func (s slotSource) GetSlotsForDate(context.Context, time.Time) ([]domain.Slot, error) {
	return s.slots, s.err
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	free := domain.NewSlot(date, "10:00", 2, false, 1)
	booked := domain.NewSlot(date, "13:30", 2, false, 2)
	source := slotSource{slots: []domain.Slot{free, booked}}

	fieldErr, err := CheckAvailability(ctx, source, date, "10:00")
	require.NoError(t, err)
	assert.Nil(t, fieldErr)

	fieldErr, err = CheckAvailability(ctx, source, date, "13:30")
	require.NoError(t, err)
	require.NotNil(t, fieldErr)
	assert.Equal(t, FieldTimeSlot, fieldErr.Field)
	assert.Equal(t, CodeUnavailable, fieldErr.Code)

	_, err = CheckAvailability(ctx, slotSource{err: errors.New("down")}, date, "10:00")
	assert.Error(t, err)
}
