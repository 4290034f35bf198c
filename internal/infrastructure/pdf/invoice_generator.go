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

	"github.com/jhoicas/Vivero-api/internal/application/billing"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

var _ billing.InvoicePDFGenerator = (*InvoiceGenerator)(nil)

// InvoiceGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
// Misma página A4 y paleta que la orden de compra.
type InvoiceGenerator struct {
	businessName string
}

// NewInvoiceGenerator construye el generador con el nombre del negocio que
// encabeza la factura.
func NewInvoiceGenerator(businessName string) *InvoiceGenerator {
	return &InvoiceGenerator{businessName: businessName}
}

// Generate genera el PDF de la factura y devuelve sus bytes.
func (g *InvoiceGenerator) Generate(inv *billing.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+inv.Number, true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.invoiceHeaderRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(customerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(invoiceTableHeaderRow())
	for _, r := range invoiceLineRows(inv.Order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(invoiceTotalsRow(inv))

	m.AddRows(line.NewRow(3))
	m.AddRows(invoiceNoteRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar factura: %w", err)
	}
	return doc.GetBytes(), nil
}

// invoiceHeaderRow: nombre del negocio (izq) y N° de factura + fecha (der).
func (g *InvoiceGenerator) invoiceHeaderRow(inv *billing.Invoice) core.Row {
	fecha := inv.Date.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Factura de venta", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente y referencia al pedido.
func customerRow(inv *billing.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 8, Top: top, Left: 1})
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New("Cliente", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Left: 1,
			}),
			label(inv.CustomerName, 6),
			label(inv.CustomerEmail, 11),
			label(inv.CustomerPhone, 16),
		),
		col.New(5).Add(
			text.New("Pedido", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary,
				Align: align.Right, Top: 1, Right: 1,
			}),
			text.New(inv.Order.Number, props.Text{
				Size: 8, Align: align.Right, Top: 6, Right: 1,
			}),
			text.New("Estado: "+inv.Order.Status, props.Text{
				Size: 8, Align: align.Right, Top: 11, Right: 1, Color: colorGray,
			}),
			text.New("Pago: "+inv.Order.PaymentStatus, props.Text{
				Size: 8, Align: align.Right, Top: 16, Right: 1, Color: colorGray,
			}),
		),
	)
}

// invoiceTableHeaderRow: cabecera de la tabla de líneas facturadas.
func invoiceTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Planta", 6, align.Left),
		h("Cant.", 1, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// invoiceLineRows: una fila por línea del pedido, precios congelados.
func invoiceLineRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				it.PlantName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(it.UnitPrice.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(it.Subtotal.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// invoiceTotalsRow: subtotal, IVA y total a pagar.
func invoiceTotalsRow(inv *billing.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:", 1),
			label("IVA (19%):", 7),
			label("TOTAL A PAGAR:", 13),
		),
		col.New(4).Add(
			value("$"+formatMoney(inv.Subtotal.StringFixed(0)), 1),
			value("$"+formatMoney(inv.Tax.StringFixed(0)), 7),
			text.New("$"+formatMoney(inv.GrandTotal.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 13,
			}),
		),
	)
}

// invoiceNoteRow: condiciones de la venta.
func invoiceNoteRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"Las plantas están sujetas a disponibilidad. Se aceptan devoluciones "+
				"dentro de los 7 días siguientes a la entrega con causa justificada.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}
