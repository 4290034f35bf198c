package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerateReportRequest body para POST /api/reports/generate.
type GenerateReportRequest struct {
	Month int `json:"month"` // 1..12
	Year  int `json:"year"`
}

// ReportPlantSales línea de ventas por planta dentro del informe.
type ReportPlantSales struct {
	PlantID      string          `json:"plant_id"`
	PlantName    string          `json:"plant_name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// ReportLowStock línea de alerta de stock dentro del informe.
type ReportLowStock struct {
	PlantID      string `json:"plant_id"`
	PlantName    string `json:"plant_name"`
	CurrentStock int64  `json:"current_stock"`
}

// ReportForecast proyección de demanda dentro del informe.
type ReportForecast struct {
	PlantID           string `json:"plant_id"`
	PlantName         string `json:"plant_name"`
	PredictedQuantity int64  `json:"predicted_quantity"`
}

// MonthlyReportResponse representación JSON del informe mensual.
type MonthlyReportResponse struct {
	ID               string             `json:"id"`
	Month            int                `json:"month"`
	Year             int                `json:"year"`
	TotalSales       decimal.Decimal    `json:"total_sales"`
	TotalOrders      int64              `json:"total_orders"`
	TotalPurchases   decimal.Decimal    `json:"total_purchases"`
	Profit           decimal.Decimal    `json:"profit"`
	TopSellingPlants []ReportPlantSales `json:"top_selling_plants"`
	LowStockItems    []ReportLowStock   `json:"low_stock_items"`
	ForecastedDemand []ReportForecast   `json:"forecasted_demand"`
	NewCustomers     int64              `json:"new_customers"`
	GeneratedAt      time.Time          `json:"generated_at"`
}
