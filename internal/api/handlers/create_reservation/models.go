package create_reservation

import (
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/service/cart"
	"github.com/m04kA/HappyStay-BookingService/internal/service/schema"
	createReservation "github.com/m04kA/HappyStay-BookingService/internal/usecase/create_reservation"
)

// ServiceLine строка корзины
type ServiceLine struct {
	Type      string      `json:"type"`
	Fields    cart.Fields `json:"fields"`
	Validated bool        `json:"validated"`
}

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Phone     string         `json:"phone"`
	District  string         `json:"district"`
	Address   string         `json:"address"`
	Date      string         `json:"date"` // "2025-03-10"
	Time      string         `json:"time"` // "10:30"
	Services  []ServiceLine  `json:"services"`
	Photos    []domain.Photo `json:"photos"`
	Comments  string         `json:"comments"`
}

// ValidationErrorResponse ошибка формы: первая ошибка и полный список
type ValidationErrorResponse struct {
	Code   int                 `json:"code"`
	Error  *schema.FieldError  `json:"error"`
	Errors []schema.FieldError `json:"errors"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() *createReservation.Request {
	lines := make([]createReservation.CartLine, 0, len(r.Services))
	for _, s := range r.Services {
		lines = append(lines, createReservation.CartLine{
			Type:      s.Type,
			Fields:    s.Fields,
			Validated: s.Validated,
		})
	}

	return &createReservation.Request{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		District:  r.District,
		Address:   r.Address,
		Date:      r.Date,
		Time:      r.Time,
		Services:  lines,
		Photos:    r.Photos,
		Comments:  r.Comments,
	}
}
