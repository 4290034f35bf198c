package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Vivero-api/internal/domain"
)

// Tipos de movimiento del libro de inventario.
const (
	KindSold       = "sold"       // venta (resta stock)
	KindPurchased  = "purchased"  // compra a proveedor (suma stock)
	KindAdjustment = "adjustment" // ajuste con signo libre
	KindDamaged    = "damaged"    // merma o daño (resta stock)
	KindReturned   = "returned"   // devolución del cliente (suma stock)
)

// ValidKind verifica que el tipo de movimiento sea uno de los conocidos.
func ValidKind(k string) bool {
	switch k {
	case KindSold, KindPurchased, KindAdjustment, KindDamaged, KindReturned:
		return true
	}
	return false
}

// LedgerEntry es un asiento inmutable del libro de inventario: registra un cambio
// de stock con cantidades antes/después. Una vez escrito nunca se actualiza ni se
// borra; un error se corrige con un asiento compensatorio de tipo adjustment.
type LedgerEntry struct {
	ID             string
	PlantID        string
	Kind           string
	QuantityDelta  int64 // con signo: negativo resta stock, positivo suma
	QuantityBefore int64
	QuantityAfter  int64
	UnitCost       decimal.Decimal // precio de venta en sold, costo de compra en purchased
	TotalCost      decimal.Decimal // UnitCost * |QuantityDelta|
	OccurredAt     time.Time       // puede retrodatarse en ventas de mostrador
	Note           string
	PerformedBy    string
	OrderID        string // referencia al pedido cuando el asiento nace de uno
	CreatedAt      time.Time
}

// Validate verifica la aritmética del asiento antes de persistirlo:
// After = Before + Delta, sin cantidades negativas y con delta distinto de cero.
func (e *LedgerEntry) Validate() error {
	if e.PlantID == "" || !ValidKind(e.Kind) {
		return domain.ErrInvalidInput
	}
	if e.QuantityDelta == 0 {
		return domain.ErrInvalidInput
	}
	if e.QuantityAfter != e.QuantityBefore+e.QuantityDelta {
		return domain.ErrInvalidInput
	}
	if e.QuantityBefore < 0 || e.QuantityAfter < 0 {
		return domain.ErrInvalidInput
	}
	if e.UnitCost.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}
