package billing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// Invoice es la factura de venta armada desde un pedido: datos del cliente,
// líneas con precios congelados e IVA sobre el subtotal.
type Invoice struct {
	Number        string
	Date          time.Time
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Order         *entity.Order
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	GrandTotal    decimal.Decimal
}

// InvoicePDFGenerator renderiza la factura como PDF.
// Implementado en infrastructure/pdf con Maroto.
type InvoicePDFGenerator interface {
	Generate(inv *Invoice) ([]byte, error)
}
