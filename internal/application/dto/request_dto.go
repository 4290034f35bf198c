package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateServiceRequestRequest body para POST /api/requests. Si no viene
// contact_number se usa el teléfono del usuario.
type CreateServiceRequestRequest struct {
	Type          string `json:"type"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	PreferredDate string `json:"preferred_date,omitempty"` // YYYY-MM-DD
	Location      string `json:"location,omitempty"`
	ContactNumber string `json:"contact_number,omitempty"`
}

// UpdateServiceRequestRequest body para PUT /api/requests/:id/status (admin).
// Solo los campos enviados se actualizan.
type UpdateServiceRequestRequest struct {
	Status        string           `json:"status,omitempty"`
	Priority      string           `json:"priority,omitempty"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost,omitempty"`
	AdminNotes    string           `json:"admin_notes,omitempty"`
}

// ServiceRequestResponse representación JSON de una solicitud de servicio.
type ServiceRequestResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	UserName       string          `json:"user_name,omitempty"`
	Type           string          `json:"type"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	PreferredDate  *time.Time      `json:"preferred_date,omitempty"`
	Status         string          `json:"status"`
	Priority       string          `json:"priority"`
	EstimatedCost  decimal.Decimal `json:"estimated_cost"`
	Location       string          `json:"location,omitempty"`
	ContactNumber  string          `json:"contact_number,omitempty"`
	AdminNotes     string          `json:"admin_notes,omitempty"`
	ResponseDate   *time.Time      `json:"response_date,omitempty"`
	CompletionDate *time.Time      `json:"completion_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
