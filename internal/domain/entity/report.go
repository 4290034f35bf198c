package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlantSalesSummary resume las ventas de una planta en el período del informe.
type PlantSalesSummary struct {
	PlantID      string
	PlantName    string
	QuantitySold int64
	Revenue      decimal.Decimal
}

// LowStockItem es una planta por debajo de su punto de reorden al cierre del período.
type LowStockItem struct {
	PlantID      string
	PlantName    string
	CurrentStock int64
}

// DemandForecast es la proyección simple de demanda para el período siguiente.
type DemandForecast struct {
	PlantID           string
	PlantName         string
	PredictedQuantity int64
}

// MonthlyReport agrega las ventas, compras y alertas de stock de un mes calendario.
// Se genera una sola vez por (mes, año); regenerarlo devuelve el existente.
type MonthlyReport struct {
	ID                string
	Month             time.Month
	Year              int
	TotalSales        decimal.Decimal // suma de pedidos no cancelados
	TotalOrders       int64
	TotalPurchases    decimal.Decimal // suma de asientos purchased
	Profit            decimal.Decimal // TotalSales - TotalPurchases
	TopSellingPlants  []PlantSalesSummary
	LowStockItems     []LowStockItem
	ForecastedDemand  []DemandForecast
	NewCustomers      int64
	GeneratedAt       time.Time
}
