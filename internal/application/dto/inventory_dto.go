package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyMutationRequest body para POST /api/stock/mutations.
// Quantity es magnitud positiva salvo en adjustment, donde lleva el signo del ajuste.
// OccurredAt opcional: permite retrodatar ventas de mostrador (YYYY-MM-DD).
type ApplyMutationRequest struct {
	PlantID    string          `json:"plant_id"`
	Kind       string          `json:"kind"`
	Quantity   int64           `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Note       string          `json:"note,omitempty"`
	OccurredAt string          `json:"occurred_at,omitempty"`
}

// LedgerEntryResponse representación JSON de un asiento del libro.
type LedgerEntryResponse struct {
	ID             string          `json:"id"`
	PlantID        string          `json:"plant_id"`
	PlantName      string          `json:"plant_name,omitempty"`
	Kind           string          `json:"kind"`
	QuantityDelta  int64           `json:"quantity_delta"`
	QuantityBefore int64           `json:"quantity_before"`
	QuantityAfter  int64           `json:"quantity_after"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	OccurredAt     time.Time       `json:"occurred_at"`
	Note           string          `json:"note,omitempty"`
	PerformedBy    string          `json:"performed_by,omitempty"`
	OrderID        string          `json:"order_id,omitempty"`
}

// ReplenishmentSuggestion es una sugerencia de compra para una planta bajo su
// punto de reorden: reponer hasta el umbral más el colchón de seguridad.
type ReplenishmentSuggestion struct {
	PlantID           string          `json:"plant_id"`
	PlantName         string          `json:"plant_name"`
	Category          string          `json:"category"`
	CurrentStock      int64           `json:"current_stock"`
	ReorderThreshold  int64           `json:"reorder_threshold"`
	SuggestedQuantity int64           `json:"suggested_quantity"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
}
