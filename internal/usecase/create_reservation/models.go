package create_reservation

import (
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/service/cart"
)

// CartLine строка корзины в том виде, в каком ее прислала форма
type CartLine struct {
	Type      string      // Тип услуги
	Fields    cart.Fields // Параметры услуги
	Validated bool        // Пользователь подтвердил строку
}

// Request модель запроса на создание резервации
type Request struct {
	FirstName string
	LastName  string
	Phone     string
	District  string
	Address   string
	Date      string // YYYY-MM-DD
	Time      string // HH:MM
	Services  []CartLine
	Photos    []domain.Photo // Уже загруженные фото
	Comments  string
}

// Response созданная резервация
type Response struct {
	Reservation *domain.Reservation
}
