package export

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Vivero-api/internal/application/dto"
)

// PurchaseOrder es la orden de compra armada desde la lista de reposición.
type PurchaseOrder struct {
	Number        string
	Date          time.Time
	Lines         []dto.ReplenishmentSuggestion
	TotalQuantity int64
	TotalCost     decimal.Decimal
}

// PurchaseOrderPDFGenerator renderiza la orden de compra como PDF.
// Implementado en infrastructure/pdf con Maroto.
type PurchaseOrderPDFGenerator interface {
	Generate(po *PurchaseOrder) ([]byte, error)
}
