package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePlantRequest body para POST /api/plants. El stock inicial no se acepta
// aquí: entra al sistema como un movimiento purchased para que el libro cuadre.
type CreatePlantRequest struct {
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	ReorderThreshold int64           `json:"reorder_threshold"`
	ImageURL         string          `json:"image_url,omitempty"`
}

// UpdatePlantRequest body para PUT /api/plants/:id. Campos nil no se tocan.
type UpdatePlantRequest struct {
	Name             *string          `json:"name,omitempty"`
	Category         *string          `json:"category,omitempty"`
	Description      *string          `json:"description,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	ReorderThreshold *int64           `json:"reorder_threshold,omitempty"`
	ImageURL         *string          `json:"image_url,omitempty"`
	IsAvailable      *bool            `json:"is_available,omitempty"`
}

// PlantResponse representación JSON de una planta del catálogo.
type PlantResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int64           `json:"quantity"`
	ReorderThreshold int64           `json:"reorder_threshold"`
	TotalSold        int64           `json:"total_sold"`
	StockStatus      string          `json:"stock_status"`
	ImageURL         string          `json:"image_url,omitempty"`
	IsAvailable      bool            `json:"is_available"`
	CreatedAt        time.Time       `json:"created_at"`
}
