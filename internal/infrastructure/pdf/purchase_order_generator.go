// Package pdf implementa la generación de la Orden de Compra de reposición
// para los proveedores del vivero.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del vivero  │  N° Orden + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Planta | Categoría | Stock | Reorden | Pedir | Costo│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Unidades a pedir / COSTO ESTIMADO                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTA: leyenda para el proveedor                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/application/export"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 27, Green: 94, Blue: 32} // verde vivero
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ export.PurchaseOrderPDFGenerator = (*PurchaseOrderGenerator)(nil)

// PurchaseOrderGenerator implementa export.PurchaseOrderPDFGenerator usando Maroto v2.
type PurchaseOrderGenerator struct {
	businessName string
}

// NewPurchaseOrderGenerator construye el generador con el nombre del negocio
// que encabeza el documento.
func NewPurchaseOrderGenerator(businessName string) *PurchaseOrderGenerator {
	return &PurchaseOrderGenerator{businessName: businessName}
}

// Generate genera el PDF de la orden de compra y devuelve sus bytes.
func (g *PurchaseOrderGenerator) Generate(po *export.PurchaseOrder) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Compra "+po.Number, true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(po))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(po.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(po))

	m.AddRows(line.NewRow(3))
	m.AddRows(noteRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y N° de orden + fecha (der).
func (g *PurchaseOrderGenerator) headerRow(po *export.PurchaseOrder) core.Row {
	fecha := po.Date.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reposición de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(po.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Planta", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 1, align.Center),
		h("Reorden", 1, align.Center),
		h("Pedir", 1, align.Center),
		h("Costo Est.", 3, align.Right),
	)
}

// tableLineRows: una fila por planta a reponer.
func tableLineRows(lines []dto.ReplenishmentSuggestion) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				l.PlantName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				l.Category,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.CurrentStock),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.ReorderThreshold),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.SuggestedQuantity),
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(l.EstimatedCost.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: unidades totales y costo estimado total.
func totalsRow(po *export.PurchaseOrder) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}
	return row.New(18).Add(
		col.New(4),
		col.New(4).Add(
			label("Unidades a pedir:"),
			label("COSTO ESTIMADO:"),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d", po.TotalQuantity), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			}),
			grand("$"+formatMoney(po.TotalCost.StringFixed(0))),
		),
	)
}

// noteRow: leyenda para el proveedor.
func noteRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"Los costos son estimados sobre el precio de venta. "+
				"Confirmar precios y disponibilidad con el proveedor antes de despachar.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
