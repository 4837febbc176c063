// Package cart корзина услуг формы бронирования
//
// Строка корзины проходит состояния not-configured -> incomplete -> complete -> validated.
// В резервацию попадают только подтвержденные пользователем строки.
package cart

import (
	"fmt"
	"slices"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

// ItemState состояние строки корзины
type ItemState string

const (
	StateNotConfigured ItemState = "not-configured"
	StateIncomplete    ItemState = "incomplete"
	StateComplete      ItemState = "complete"
	StateValidated     ItemState = "validated"
)

// Fields параметры услуги, заполняемые пользователем
type Fields struct {
	Size             string   `json:"size,omitempty"`
	Material         string   `json:"material,omitempty"`
	Stains           string   `json:"stains,omitempty"`
	Quantity         int      `json:"quantity,omitempty"`
	Options          []string `json:"options,omitempty"`
	RemovableCushion bool     `json:"removableCushion,omitempty"`
	Format           string   `json:"format,omitempty"`
	Faces            int      `json:"faces,omitempty"`
	Note             string   `json:"note,omitempty"`
}

// Item строка корзины
type Item struct {
	ID        int
	Type      string
	Fields    Fields
	validated bool
}

// Cart корзина услуг; не потокобезопасна, живет в рамках одного запроса
type Cart struct {
	items    []*Item
	nextID   int
	maxItems int
	allowed  map[string]bool
}

// New создает пустую корзину
func New(maxItems int, allowedServices []string) *Cart {
	if maxItems <= 0 {
		maxItems = domain.DefaultMaxCartItems
	}
	if len(allowedServices) == 0 {
		allowedServices = domain.AllowedServices
	}

	allowed := make(map[string]bool, len(allowedServices))
	for _, s := range allowedServices {
		allowed[s] = true
	}

	return &Cart{nextID: 1, maxItems: maxItems, allowed: allowed}
}

// Add добавляет строку; тип может быть пустым и выбран позже
func (c *Cart) Add(serviceType string) (int, error) {
	if len(c.items) >= c.maxItems {
		return 0, fmt.Errorf("%w: at most %d services", ErrCartFull, c.maxItems)
	}
	if serviceType != "" && !c.allowed[serviceType] {
		return 0, fmt.Errorf("%w: %q", ErrUnknownService, serviceType)
	}

	item := &Item{ID: c.nextID, Type: serviceType}
	c.nextID++
	c.items = append(c.items, item)
	return item.ID, nil
}

// Remove удаляет строку
func (c *Cart) Remove(id int) error {
	for i, item := range c.items {
		if item.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: id=%d", ErrItemNotFound, id)
}

// SetType меняет тип услуги; поля и подтверждение сбрасываются
func (c *Cart) SetType(id int, serviceType string) error {
	item, err := c.find(id)
	if err != nil {
		return err
	}
	if serviceType != "" && !c.allowed[serviceType] {
		return fmt.Errorf("%w: %q", ErrUnknownService, serviceType)
	}

	item.Type = serviceType
	item.Fields = Fields{}
	item.validated = false
	return nil
}

// Update заменяет поля строки переданными; пустое значение очищает поле
// Изменение подтвержденной строки снимает подтверждение
func (c *Cart) Update(id int, fields Fields) error {
	item, err := c.find(id)
	if err != nil {
		return err
	}
	if fieldsEqual(item.Fields, fields) {
		return nil
	}

	item.Fields = fields
	item.validated = false
	return nil
}

// Validate подтверждает строку, если она заполнена на момент вызова
func (c *Cart) Validate(id int) error {
	item, err := c.find(id)
	if err != nil {
		return err
	}
	if !IsComplete(item.Type, item.Fields) {
		return fmt.Errorf("%w: id=%d (%s)", ErrItemIncomplete, id, item.Type)
	}

	item.validated = true
	return nil
}

// State текущее состояние строки
func (c *Cart) State(id int) (ItemState, error) {
	item, err := c.find(id)
	if err != nil {
		return "", err
	}
	return stateOf(item), nil
}

// Len количество строк
func (c *Cart) Len() int {
	return len(c.items)
}

// CanSubmit в корзине есть хотя бы одна подтвержденная строка
func (c *Cart) CanSubmit() bool {
	for _, item := range c.items {
		if stateOf(item) == StateValidated {
			return true
		}
	}
	return false
}

// Items подтвержденные строки в виде строк резервации с подписями
// Неподтвержденные строки отбрасываются
func (c *Cart) Items() []domain.ServiceItem {
	result := make([]domain.ServiceItem, 0, len(c.items))
	for _, item := range c.items {
		if stateOf(item) != StateValidated {
			continue
		}

		quantity := item.Fields.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		result = append(result, domain.ServiceItem{
			Service:          item.Type,
			Label:            Label(item.Type, item.Fields),
			Quantity:         quantity,
			Size:             item.Fields.Size,
			Material:         item.Fields.Material,
			Stains:           item.Fields.Stains,
			Options:          item.Fields.Options,
			RemovableCushion: item.Fields.RemovableCushion,
			Format:           item.Fields.Format,
			Faces:            item.Fields.Faces,
			Note:             item.Fields.Note,
		})
	}
	return result
}

func (c *Cart) find(id int) (*Item, error) {
	for _, item := range c.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, fmt.Errorf("%w: id=%d", ErrItemNotFound, id)
}

func stateOf(item *Item) ItemState {
	switch {
	case item.Type == "":
		return StateNotConfigured
	case !IsComplete(item.Type, item.Fields):
		return StateIncomplete
	case item.validated:
		return StateValidated
	default:
		return StateComplete
	}
}

// IsComplete обязательные поля услуги заполнены
func IsComplete(serviceType string, f Fields) bool {
	switch serviceType {
	case domain.ServiceSofa:
		return f.Size != "" && f.Quantity > 0
	case domain.ServiceChairs:
		return f.Quantity > 0 && f.Material != ""
	case domain.ServiceMattress:
		return f.Format != "" && (f.Faces == 1 || f.Faces == 2)
	default:
		return false
	}
}

func fieldsEqual(a, b Fields) bool {
	return a.Size == b.Size &&
		a.Material == b.Material &&
		a.Stains == b.Stains &&
		a.Quantity == b.Quantity &&
		slices.Equal(a.Options, b.Options) &&
		a.RemovableCushion == b.RemovableCushion &&
		a.Format == b.Format &&
		a.Faces == b.Faces &&
		a.Note == b.Note
}
