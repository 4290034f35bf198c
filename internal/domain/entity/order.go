package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pedido.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Estados de pago.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Tipos de pedido.
const (
	OrderTypeShopPurchase    = "shopPurchase"    // venta de mostrador
	OrderTypeOnlineBooking   = "onlineBooking"   // reserva en línea
	OrderTypeOnsitePlantation = "onsitePlantation" // siembra a domicilio
)

// ValidOrderStatus verifica que el estado sea uno de los conocidos.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus verifica que el estado de pago sea uno de los conocidos.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// OrderItem es una línea de pedido con el precio congelado al momento de la compra.
type OrderItem struct {
	PlantID   string
	PlantName string
	Quantity  int64
	UnitPrice decimal.Decimal // precio vigente al crear el pedido
	Subtotal  decimal.Decimal // Quantity * UnitPrice
}

// Order representa un pedido de cliente. Cada línea genera exactamente un asiento
// sold en el libro de inventario dentro de la misma transacción que crea el pedido.
// Los pedidos no se borran: el libro conserva su referencia para siempre.
type Order struct {
	ID                   string
	Number               string // consecutivo legible: ORD-YYMM-NNNNN
	UserID               string
	Items                []OrderItem
	TotalAmount          decimal.Decimal
	PaymentStatus        string
	Status               string
	Type                 string
	ContactNumber        string
	DeliveryAddress      string
	Notes                string
	OrderDate            time.Time
	ExpectedDeliveryDate time.Time
	DeliveryDate         *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
