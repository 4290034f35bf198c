// Package request implementa las solicitudes de servicio del vivero: variedades
// nuevas, siembra a domicilio, pedidos a la medida y asesorías. El cliente las
// crea y consulta; el vivero las prioriza, cotiza y cierra.
package request

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// ServiceRequestUseCase casos de uso de solicitudes de servicio.
type ServiceRequestUseCase struct {
	requestRepo repository.ServiceRequestRepository
	userRepo    repository.UserRepository
}

// NewServiceRequestUseCase construye el caso de uso.
func NewServiceRequestUseCase(
	requestRepo repository.ServiceRequestRepository,
	userRepo repository.UserRepository,
) *ServiceRequestUseCase {
	return &ServiceRequestUseCase{requestRepo: requestRepo, userRepo: userRepo}
}

// CreateRequest registra la solicitud: nace en pending con prioridad medium.
// Si no viene teléfono de contacto se usa el del usuario.
func (uc *ServiceRequestUseCase) CreateRequest(ctx context.Context, userID string, in dto.CreateServiceRequestRequest) (*entity.ServiceRequest, error) {
	if !entity.ValidRequestType(in.Type) {
		return nil, fmt.Errorf("%w: tipo de solicitud desconocido", domain.ErrInvalidInput)
	}
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: título y descripción son obligatorios", domain.ErrInvalidInput)
	}

	var preferredDate *time.Time
	if in.PreferredDate != "" {
		d, err := time.Parse("2006-01-02", in.PreferredDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha preferida inválida", domain.ErrInvalidInput)
		}
		preferredDate = &d
	}

	contact := strings.TrimSpace(in.ContactNumber)
	if contact == "" {
		user, err := uc.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			contact = user.Phone
		}
	}

	now := time.Now()
	req := &entity.ServiceRequest{
		ID:            uuid.New().String(),
		UserID:        userID,
		Type:          in.Type,
		Title:         title,
		Description:   description,
		PreferredDate: preferredDate,
		Status:        entity.RequestStatusPending,
		Priority:      entity.RequestPriorityMedium,
		Location:      strings.TrimSpace(in.Location),
		ContactNumber: contact,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.requestRepo.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

// ListRequests lista solicitudes con filtros (admin) y el total para paginación.
func (uc *ServiceRequestUseCase) ListRequests(ctx context.Context, filter repository.ServiceRequestFilter) ([]*entity.ServiceRequest, int64, error) {
	if filter.Status != "" && !entity.ValidRequestStatus(filter.Status) {
		return nil, 0, domain.ErrInvalidInput
	}
	if filter.Type != "" && !entity.ValidRequestType(filter.Type) {
		return nil, 0, domain.ErrInvalidInput
	}
	if filter.Priority != "" && !entity.ValidRequestPriority(filter.Priority) {
		return nil, 0, domain.ErrInvalidInput
	}
	requests, err := uc.requestRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.requestRepo.Count(filter)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// UserRequests lista las solicitudes del usuario, más recientes primero.
func (uc *ServiceRequestUseCase) UserRequests(ctx context.Context, userID string) ([]*entity.ServiceRequest, error) {
	return uc.requestRepo.ListByUser(userID)
}

// UpdateRequest actualiza estado, prioridad, cotización o notas (admin).
// Aprobar o rechazar marca la fecha de respuesta; completar marca la de cierre.
func (uc *ServiceRequestUseCase) UpdateRequest(ctx context.Context, requestID string, in dto.UpdateServiceRequestRequest) (*entity.ServiceRequest, error) {
	req, err := uc.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}

	if in.Status != "" {
		if !entity.ValidRequestStatus(in.Status) {
			return nil, fmt.Errorf("%w: estado desconocido", domain.ErrInvalidInput)
		}
		req.Status = in.Status
		now := time.Now()
		switch in.Status {
		case entity.RequestStatusApproved, entity.RequestStatusRejected:
			req.ResponseDate = &now
		case entity.RequestStatusCompleted:
			req.CompletionDate = &now
		}
	}
	if in.Priority != "" {
		if !entity.ValidRequestPriority(in.Priority) {
			return nil, fmt.Errorf("%w: prioridad desconocida", domain.ErrInvalidInput)
		}
		req.Priority = in.Priority
	}
	if in.EstimatedCost != nil {
		if in.EstimatedCost.IsNegative() {
			return nil, fmt.Errorf("%w: la cotización no puede ser negativa", domain.ErrInvalidInput)
		}
		req.EstimatedCost = *in.EstimatedCost
	}
	if in.AdminNotes != "" {
		req.AdminNotes = in.AdminNotes
	}

	req.UpdatedAt = time.Now()
	if err := uc.requestRepo.Update(req); err != nil {
		return nil, err
	}
	return req, nil
}

// DeleteRequest borra la solicitud (admin).
func (uc *ServiceRequestUseCase) DeleteRequest(ctx context.Context, requestID string) error {
	req, err := uc.requestRepo.GetByID(requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	return uc.requestRepo.Delete(requestID)
}
