package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea solicitada por el cliente. El precio nunca viene del
// request: se toma del catálogo al momento de crear el pedido.
type OrderItemRequest struct {
	PlantID  string `json:"plant_id"`
	Quantity int64  `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	DeliveryAddress string             `json:"delivery_address,omitempty"`
	ContactNumber   string             `json:"contact_number"`
	Type            string             `json:"type,omitempty"`
	Notes           string             `json:"notes,omitempty"`
}

// UpdateOrderStatusRequest body para PUT /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status        string `json:"status,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
	DeliveryDate  string `json:"delivery_date,omitempty"` // YYYY-MM-DD
}

// OrderItemResponse línea de pedido con precios congelados.
type OrderItemResponse struct {
	PlantID   string          `json:"plant_id"`
	PlantName string          `json:"plant_name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse representación JSON de un pedido.
type OrderResponse struct {
	ID                   string              `json:"id"`
	Number               string              `json:"number"`
	UserID               string              `json:"user_id"`
	Items                []OrderItemResponse `json:"items"`
	TotalAmount          decimal.Decimal     `json:"total_amount"`
	PaymentStatus        string              `json:"payment_status"`
	Status               string              `json:"status"`
	Type                 string              `json:"type"`
	ContactNumber        string              `json:"contact_number"`
	DeliveryAddress      string              `json:"delivery_address,omitempty"`
	Notes                string              `json:"notes,omitempty"`
	OrderDate            time.Time           `json:"order_date"`
	ExpectedDeliveryDate time.Time           `json:"expected_delivery_date"`
	DeliveryDate         *time.Time          `json:"delivery_date,omitempty"`
	LedgerEntries        []LedgerEntryResponse `json:"ledger_entries,omitempty"`
}
