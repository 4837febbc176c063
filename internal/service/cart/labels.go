package cart

import (
	"fmt"
	"strings"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

// Label человекочитаемая подпись строки услуги
//
//	Canapé/Fauteuil 3 places Tissu (x2)
//	4x Chaises Similicuir
//	Matelas 140 (2 faces)
func Label(serviceType string, f Fields) string {
	var b strings.Builder

	switch serviceType {
	case domain.ServiceSofa:
		b.WriteString(serviceType)
		if f.Size != "" {
			b.WriteString(" " + f.Size)
		}
		if f.Material != "" {
			b.WriteString(" " + f.Material)
		}
		if f.Quantity > 1 {
			fmt.Fprintf(&b, " (x%d)", f.Quantity)
		}

	case domain.ServiceChairs:
		quantity := f.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		fmt.Fprintf(&b, "%dx Chaises", quantity)
		if f.Material != "" {
			b.WriteString(" " + f.Material)
		}

	case domain.ServiceMattress:
		b.WriteString("Matelas")
		if f.Format != "" {
			b.WriteString(" " + f.Format)
		}
		if f.Faces > 0 {
			suffix := ""
			if f.Faces > 1 {
				suffix = "s"
			}
			fmt.Fprintf(&b, " (%d face%s)", f.Faces, suffix)
		}

	default:
		b.WriteString(serviceType)
	}

	return b.String()
}
