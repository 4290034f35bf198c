package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// Plazo de entrega estimado para pedidos en línea.
const expectedDeliveryDays = 7

// Reintentos ante choque del consecutivo diario entre pedidos simultáneos.
const orderNumberRetries = 3

// CreateOrderUseCase convierte un carrito validado en un pedido con descuento de
// inventario todo-o-nada: primero la verificación de admisión (todas las líneas
// satisfacibles o ninguna mutación), después una sola transacción que aplica las
// ventas línea a línea y persiste el pedido. Si cualquier línea falla dentro de
// la tx, todo se revierte: no quedan descuentos huérfanos.
type CreateOrderUseCase struct {
	txRunner    OrderTxRunner
	inventoryUC SaleApplier
	plantRepo   repository.PlantRepository
	orderRepo   repository.OrderRepository
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	txRunner OrderTxRunner,
	inventoryUC SaleApplier,
	plantRepo repository.PlantRepository,
	orderRepo repository.OrderRepository,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner:    txRunner,
		inventoryUC: inventoryUC,
		plantRepo:   plantRepo,
		orderRepo:   orderRepo,
	}
}

// CreateOrder crea el pedido. El precio de cada línea es el precio vigente de la
// planta al momento de descontar el stock, nunca uno enviado por el cliente.
// Devuelve el pedido valorizado con los asientos del libro que generó.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, userID string, in dto.CreateOrderRequest) (*entity.Order, []*entity.LedgerEntry, error) {
	if userID == "" || len(in.Items) == 0 || in.ContactNumber == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	orderType := in.Type
	if orderType == "" {
		orderType = entity.OrderTypeOnlineBooking
	}
	switch orderType {
	case entity.OrderTypeShopPurchase, entity.OrderTypeOnlineBooking, entity.OrderTypeOnsitePlantation:
	default:
		return nil, nil, domain.ErrInvalidInput
	}

	// Verificación de admisión: toda línea debe ser satisfacible antes de tocar
	// nada. El primer faltante rechaza el pedido completo con cero mutaciones.
	for _, item := range in.Items {
		if item.PlantID == "" || item.Quantity <= 0 {
			return nil, nil, domain.ErrInvalidInput
		}
		plant, err := uc.plantRepo.GetByID(item.PlantID)
		if err != nil {
			return nil, nil, err
		}
		if plant == nil {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrPlantNotFound, item.PlantID)
		}
		if plant.Quantity < item.Quantity {
			return nil, nil, fmt.Errorf("%w: %s disponible %d, solicitado %d",
				domain.ErrInsufficientStock, plant.Name, plant.Quantity, item.Quantity)
		}
	}

	now := time.Now()
	var (
		ord     *entity.Order
		entries []*entity.LedgerEntry
	)

	// Una sola transacción: consecutivo, ventas línea a línea (con bloqueo de fila
	// por planta) y cabecera más líneas del pedido. Cualquier error revierte todo,
	// incluido un faltante aparecido entre la admisión y el bloqueo. El consecutivo
	// se lee dentro de la tx; si dos pedidos simultáneos sacan el mismo número, el
	// índice único lo rechaza con ErrConflict y se reintenta con la tx limpia.
	for attempt := 0; attempt < orderNumberRetries; attempt++ {
		ord, entries = nil, nil
		orderID := uuid.New().String()
		err := uc.txRunner.RunOrder(ctx, func(
			plantRepo repository.PlantRepository,
			ledgerRepo repository.LedgerRepository,
			orderRepo repository.OrderRepository,
		) error {
			number, err := nextOrderNumber(orderRepo, now)
			if err != nil {
				return err
			}
			items := make([]entity.OrderItem, 0, len(in.Items))
			total := decimal.Zero
			for _, item := range in.Items {
				entry, err := uc.inventoryUC.ApplySaleInTx(
					plantRepo, ledgerRepo,
					item.PlantID, item.Quantity,
					now, userID, orderID,
				)
				if err != nil {
					return err
				}
				entries = append(entries, entry)

				// El asiento lleva el precio congelado al momento del bloqueo
				subtotal := entry.UnitCost.Mul(decimal.NewFromInt(item.Quantity))
				plant, err := plantRepo.GetByID(item.PlantID)
				if err != nil {
					return err
				}
				items = append(items, entity.OrderItem{
					PlantID:   item.PlantID,
					PlantName: plant.Name,
					Quantity:  item.Quantity,
					UnitPrice: entry.UnitCost,
					Subtotal:  subtotal,
				})
				total = total.Add(subtotal)
			}

			ord = &entity.Order{
				ID:                   orderID,
				Number:               number,
				UserID:               userID,
				Items:                items,
				TotalAmount:          total,
				PaymentStatus:        entity.PaymentStatusPending,
				Status:               entity.OrderStatusPending,
				Type:                 orderType,
				ContactNumber:        in.ContactNumber,
				DeliveryAddress:      in.DeliveryAddress,
				Notes:                in.Notes,
				OrderDate:            now,
				ExpectedDeliveryDate: now.AddDate(0, 0, expectedDeliveryDays),
				CreatedAt:            now,
				UpdatedAt:            now,
			}
			return orderRepo.Create(ord)
		})
		if errors.Is(err, domain.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		return ord, entries, nil
	}
	return nil, nil, fmt.Errorf("%w: no se pudo asignar número de pedido", domain.ErrConflict)
}

// nextOrderNumber genera el consecutivo legible ORD-YYMM-NNNNN con el conteo de
// pedidos creados hoy. Se llama con el repo de la transacción en curso; la
// unicidad real la garantiza el índice único sobre number.
func nextOrderNumber(orderRepo repository.OrderRepository, now time.Time) (string, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count, err := orderRepo.CountCreatedSince(startOfDay)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%02d%02d-%05d", now.Year()%100, int(now.Month()), count+1), nil
}
