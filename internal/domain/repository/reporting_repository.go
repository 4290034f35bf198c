package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// SalesTotals agrega las ventas de un período: pedidos no cancelados.
type SalesTotals struct {
	TotalSales  decimal.Decimal
	TotalOrders int64
}

// ShopSaleRow es una fila del export de ventas: asiento sold con el nombre de la planta.
type ShopSaleRow struct {
	Date      time.Time
	PlantName string
	Category  string
	Quantity  int64 // magnitud vendida (positiva)
	SalePrice decimal.Decimal
	Total     decimal.Decimal
	Note      string
}

// ReportingRepository define consultas de agregación de solo lectura sobre pedidos,
// libro de inventario y usuarios. Alimenta el informe mensual y los exports.
type ReportingRepository interface {
	// GetSalesTotals suma TotalAmount y cuenta pedidos no cancelados del período.
	GetSalesTotals(ctx context.Context, start, end time.Time) (SalesTotals, error)
	// GetPurchasesTotal suma TotalCost de los asientos purchased del período.
	GetPurchasesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	// GetTopSellers devuelve las plantas más vendidas del período por unidades.
	GetTopSellers(ctx context.Context, start, end time.Time, limit int) ([]entity.PlantSalesSummary, error)
	// GetShopSales lista los asientos sold del período con datos de planta, más recientes primero.
	GetShopSales(ctx context.Context, start, end time.Time) ([]ShopSaleRow, error)
	// CountNewCustomers cuenta usuarios con rol cliente creados en el período.
	CountNewCustomers(ctx context.Context, start, end time.Time) (int64, error)
}
