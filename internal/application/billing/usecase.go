// Package billing genera la factura de venta de un pedido como documento PDF.
package billing

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// Tarifa de IVA aplicada sobre el subtotal del pedido.
var taxRate = decimal.NewFromFloat(0.19)

// BillingUseCase arma y renderiza facturas de pedidos. Solo lectura: la factura
// se deriva del pedido, no se persiste.
type BillingUseCase struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	pdfGen    InvoicePDFGenerator
}

// NewBillingUseCase construye el caso de uso.
func NewBillingUseCase(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	pdfGen InvoicePDFGenerator,
) *BillingUseCase {
	return &BillingUseCase{orderRepo: orderRepo, userRepo: userRepo, pdfGen: pdfGen}
}

// BuildInvoice arma la factura del pedido. ErrNotFound si el pedido no existe.
func (uc *BillingUseCase) BuildInvoice(ctx context.Context, orderID string) (*Invoice, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}

	inv := &Invoice{
		// La factura hereda el consecutivo del pedido: ORD-YYMM-NNNNN → FAC-YYMM-NNNNN
		Number:   strings.Replace(ord.Number, "ORD", "FAC", 1),
		Date:     ord.OrderDate,
		Order:    ord,
		Subtotal: ord.TotalAmount,
	}
	inv.Tax = inv.Subtotal.Mul(taxRate).Round(0)
	inv.GrandTotal = inv.Subtotal.Add(inv.Tax)

	user, err := uc.userRepo.GetByID(ctx, ord.UserID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		inv.CustomerName = user.Name
		inv.CustomerEmail = user.Email
		inv.CustomerPhone = user.Phone
	}
	if inv.CustomerPhone == "" {
		inv.CustomerPhone = ord.ContactNumber
	}
	return inv, nil
}

// InvoicePDF arma la factura y la renderiza como PDF.
func (uc *BillingUseCase) InvoicePDF(ctx context.Context, orderID string) (*Invoice, []byte, error) {
	inv, err := uc.BuildInvoice(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	pdfBytes, err := uc.pdfGen.Generate(inv)
	if err != nil {
		return nil, nil, err
	}
	return inv, pdfBytes, nil
}
