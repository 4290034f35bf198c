package order

import (
	"context"
	"time"

	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// GetOrder devuelve un pedido. Un cliente solo puede ver los suyos; admin ve todos.
func (uc *CreateOrderUseCase) GetOrder(ctx context.Context, requesterID string, isAdmin bool, orderID string) (*entity.Order, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	if !isAdmin && ord.UserID != requesterID {
		return nil, domain.ErrForbidden
	}
	return ord, nil
}

// ListOrders listado admin con filtros y total para paginación.
func (uc *CreateOrderUseCase) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, int64, error) {
	if filter.Status != "" && !entity.ValidOrderStatus(filter.Status) {
		return nil, 0, domain.ErrInvalidInput
	}
	orders, err := uc.orderRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.orderRepo.Count(filter)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListUserOrders pedidos del usuario, más recientes primero.
func (uc *CreateOrderUseCase) ListUserOrders(ctx context.Context, userID string) ([]*entity.Order, error) {
	return uc.orderRepo.ListByUser(userID)
}

// UpdateStatus actualiza estado, estado de pago y/o fecha de entrega.
// delivered sin fecha explícita fija la fecha de entrega en el momento actual.
// Cancelar NO repone stock automáticamente: la reposición es un movimiento
// returned manual, para que el libro registre quién y cuándo devolvió.
func (uc *CreateOrderUseCase) UpdateStatus(ctx context.Context, orderID string, in dto.UpdateOrderStatusRequest) (*entity.Order, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}

	if in.Status != "" {
		if !entity.ValidOrderStatus(in.Status) {
			return nil, domain.ErrInvalidInput
		}
		ord.Status = in.Status
	}
	if in.PaymentStatus != "" {
		if !entity.ValidPaymentStatus(in.PaymentStatus) {
			return nil, domain.ErrInvalidInput
		}
		ord.PaymentStatus = in.PaymentStatus
	}
	if in.DeliveryDate != "" {
		d, err := time.Parse("2006-01-02", in.DeliveryDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		ord.DeliveryDate = &d
	}
	if ord.Status == entity.OrderStatusDelivered && ord.DeliveryDate == nil {
		now := time.Now()
		ord.DeliveryDate = &now
	}
	ord.UpdatedAt = time.Now()

	if err := uc.orderRepo.Update(ord); err != nil {
		return nil, err
	}
	return ord, nil
}
