package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Vivero-api/internal/application/inventory"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// ExportUseCase genera los documentos de exportación: ventas de mostrador en CSV
// y orden de compra (lista de reposición) en CSV o PDF. Solo lectura.
type ExportUseCase struct {
	replenishment *inventory.ReplenishmentUseCase
	reportingRepo repository.ReportingRepository
	pdfGen        PurchaseOrderPDFGenerator
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	replenishment *inventory.ReplenishmentUseCase,
	reportingRepo repository.ReportingRepository,
	pdfGen PurchaseOrderPDFGenerator,
) *ExportUseCase {
	return &ExportUseCase{
		replenishment: replenishment,
		reportingRepo: reportingRepo,
		pdfGen:        pdfGen,
	}
}

// ShopSalesCSV exporta las ventas del rango [from, to] como CSV.
// Las fechas se normalizan al día completo (00:00:00 a 23:59:59).
func (uc *ExportUseCase) ShopSalesCSV(ctx context.Context, from, to time.Time) ([]byte, error) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, to.Location())
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}

	sales, err := uc.reportingRepo.GetShopSales(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Fecha", "Planta", "Categoría", "Cantidad", "Precio Venta", "Total", "Descripción"})
	for _, s := range sales {
		_ = w.Write([]string{
			s.Date.Format("02/01/2006"),
			s.PlantName,
			s.Category,
			strconv.FormatInt(s.Quantity, 10),
			s.SalePrice.StringFixed(2),
			s.Total.StringFixed(2),
			s.Note,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("exportar ventas CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildPurchaseOrder arma la orden de compra desde la lista de reposición.
// ErrNotFound si no hay plantas bajo el punto de reorden (no hay nada que pedir).
func (uc *ExportUseCase) BuildPurchaseOrder(ctx context.Context) (*PurchaseOrder, error) {
	lines, err := uc.replenishment.GenerateReplenishmentList(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: ninguna planta bajo el punto de reorden", domain.ErrNotFound)
	}

	now := time.Now()
	po := &PurchaseOrder{
		Number:    fmt.Sprintf("PO-%d", now.Unix()),
		Date:      now,
		Lines:     lines,
		TotalCost: decimal.Zero,
	}
	for _, l := range lines {
		po.TotalQuantity += l.SuggestedQuantity
		po.TotalCost = po.TotalCost.Add(l.EstimatedCost)
	}
	return po, nil
}

// PurchaseOrderCSV genera la orden de compra como CSV con fila de totales.
func (uc *ExportUseCase) PurchaseOrderCSV(ctx context.Context) (*PurchaseOrder, []byte, error) {
	po, err := uc.BuildPurchaseOrder(ctx)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Fecha", "Planta", "Categoría", "Stock Actual", "Punto Reorden", "Cantidad Pedido", "Costo Estimado"})
	for _, l := range po.Lines {
		_ = w.Write([]string{
			po.Date.Format("02/01/2006"),
			l.PlantName,
			l.Category,
			strconv.FormatInt(l.CurrentStock, 10),
			strconv.FormatInt(l.ReorderThreshold, 10),
			strconv.FormatInt(l.SuggestedQuantity, 10),
			l.EstimatedCost.StringFixed(2),
		})
	}
	_ = w.Write([]string{"", "TOTAL", "", "", "", strconv.FormatInt(po.TotalQuantity, 10), po.TotalCost.StringFixed(2)})
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, nil, fmt.Errorf("exportar orden de compra CSV: %w", err)
	}
	return po, buf.Bytes(), nil
}

// PurchaseOrderPDF genera la orden de compra como PDF (Maroto).
func (uc *ExportUseCase) PurchaseOrderPDF(ctx context.Context) (*PurchaseOrder, []byte, error) {
	po, err := uc.BuildPurchaseOrder(ctx)
	if err != nil {
		return nil, nil, err
	}
	pdfBytes, err := uc.pdfGen.Generate(po)
	if err != nil {
		return nil, nil, err
	}
	return po, pdfBytes, nil
}
