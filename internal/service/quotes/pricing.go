// Package quotes предварительный расчет сметы по услугам резервации
package quotes

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

// Цены в дирхамах
var (
	sofaPrices = map[string]int64{
		"1 place":     100,
		"2 places":    130,
		"3 places":    150,
		"Angle":       200,
		"Méridienne":  140,
		"Convertible": 180,
	}
	sofaDefaultPrice int64 = 120

	sofaOptionPrices = map[string]int64{
		domain.OptionAntiMites:      20,
		domain.OptionStainProtector: 30,
	}

	mattressPrices = map[string]int64{
		"90":   80,
		"140":  100,
		"160":  120,
		"180":  140,
		"King": 160,
	}
	mattressDefaultPrice   int64 = 100
	mattressDoubleFaceCost int64 = 40

	chairPrice        int64 = 25
	otherServicePrice int64 = 100
)

// SofaPrice цена за единицу дивана с учетом опций
func SofaPrice(size string, options []string) decimal.Decimal {
	price, ok := sofaPrices[size]
	if !ok {
		price = sofaDefaultPrice
	}
	for _, opt := range options {
		price += sofaOptionPrices[opt]
	}
	return decimal.NewFromInt(price)
}

// MattressPrice цена матраса по формату, двусторонняя чистка дороже
func MattressPrice(format string, faces int) decimal.Decimal {
	price, ok := mattressPrices[format]
	if !ok {
		price = mattressDefaultPrice
	}
	if faces == 2 {
		price += mattressDoubleFaceCost
	}
	return decimal.NewFromInt(price)
}

// Suggest строит строки сметы по услугам резервации
// Администратор правит их перед сохранением
func Suggest(items []domain.ServiceItem) []domain.QuoteItem {
	lines := make([]domain.QuoteItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, suggestLine(item))
	}
	return Clean(lines)
}

func suggestLine(item domain.ServiceItem) domain.QuoteItem {
	switch item.Service {
	case domain.ServiceSofa:
		label := strings.TrimSpace(strings.Join([]string{item.Service, item.Size, item.Material}, " "))
		label = strings.Join(strings.Fields(label), " ")
		if len(item.Options) > 0 {
			label += " + " + strings.Join(item.Options, ", ")
		}
		return domain.QuoteItem{
			Label:     label,
			Quantity:  quantityOrOne(item.Quantity),
			UnitPrice: SofaPrice(item.Size, item.Options),
		}
	case domain.ServiceChairs:
		label := strings.TrimSpace("Chaise " + item.Material)
		if item.RemovableCushion {
			label += " (coussin amovible)"
		}
		return domain.QuoteItem{
			Label:     label,
			Quantity:  quantityOrOne(item.Quantity),
			UnitPrice: decimal.NewFromInt(chairPrice),
		}
	case domain.ServiceMattress:
		return domain.QuoteItem{
			Label:     fmt.Sprintf("Matelas %s (%d face(s))", item.Format, item.Faces),
			Quantity:  1,
			UnitPrice: MattressPrice(item.Format, item.Faces),
		}
	default:
		return domain.QuoteItem{
			Label:     item.Service,
			Quantity:  quantityOrOne(item.Quantity),
			UnitPrice: decimal.NewFromInt(otherServicePrice),
		}
	}
}

// Clean отбрасывает строки без подписи или с неположительным количеством
func Clean(items []domain.QuoteItem) []domain.QuoteItem {
	out := make([]domain.QuoteItem, 0, len(items))
	for _, item := range items {
		item.Label = strings.TrimSpace(item.Label)
		if item.Label == "" || item.Quantity <= 0 {
			continue
		}
		out = append(out, item)
	}
	return out
}

func quantityOrOne(q int) int {
	if q > 0 {
		return q
	}
	return 1
}
