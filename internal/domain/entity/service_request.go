package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de solicitud de servicio.
const (
	RequestTypeNewVariety       = "newVariety"       // pedir una variedad que no está en catálogo
	RequestTypeOnsitePlantation = "onsitePlantation" // siembra a domicilio
	RequestTypeCustomOrder      = "customOrder"      // pedido a la medida
	RequestTypeConsultation     = "consultation"     // asesoría de jardinería
)

// Estados de solicitud.
const (
	RequestStatusPending    = "pending"
	RequestStatusApproved   = "approved"
	RequestStatusRejected   = "rejected"
	RequestStatusInProgress = "in-progress"
	RequestStatusCompleted  = "completed"
)

// Prioridades de atención.
const (
	RequestPriorityLow    = "low"
	RequestPriorityMedium = "medium"
	RequestPriorityHigh   = "high"
)

// ValidRequestType verifica que el tipo sea uno de los conocidos.
func ValidRequestType(t string) bool {
	switch t {
	case RequestTypeNewVariety, RequestTypeOnsitePlantation,
		RequestTypeCustomOrder, RequestTypeConsultation:
		return true
	}
	return false
}

// ValidRequestStatus verifica que el estado sea uno de los conocidos.
func ValidRequestStatus(s string) bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected,
		RequestStatusInProgress, RequestStatusCompleted:
		return true
	}
	return false
}

// ValidRequestPriority verifica que la prioridad sea una de las conocidas.
func ValidRequestPriority(p string) bool {
	switch p {
	case RequestPriorityLow, RequestPriorityMedium, RequestPriorityHigh:
		return true
	}
	return false
}

// ServiceRequest es una solicitud de servicio de un cliente: variedad nueva,
// siembra a domicilio, pedido a la medida o asesoría. Nace en pending con
// prioridad medium; el vivero la responde, cotiza y cierra.
type ServiceRequest struct {
	ID             string
	UserID         string
	UserName       string // denormalizado para los listados de administración
	Type           string
	Title          string
	Description    string
	PreferredDate  *time.Time
	Status         string
	Priority       string
	EstimatedCost  decimal.Decimal
	Location       string
	ContactNumber  string
	AdminNotes     string
	ResponseDate   *time.Time // se marca al aprobar o rechazar
	CompletionDate *time.Time // se marca al completar
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
