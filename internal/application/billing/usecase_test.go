package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vivero-api/internal/application/billing"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// stubOrderRepo solo responde GetByID; el resto no se usa aquí.
type stubOrderRepo struct {
	orders map[string]*entity.Order
}

func (r *stubOrderRepo) Create(*entity.Order) error { return nil }
func (r *stubOrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.orders[id], nil
}
func (r *stubOrderRepo) List(repository.OrderFilter) ([]*entity.Order, error)  { return nil, nil }
func (r *stubOrderRepo) Count(repository.OrderFilter) (int64, error)           { return 0, nil }
func (r *stubOrderRepo) ListByUser(string) ([]*entity.Order, error)            { return nil, nil }
func (r *stubOrderRepo) Update(*entity.Order) error                            { return nil }
func (r *stubOrderRepo) CountCreatedSince(time.Time) (int64, error)            { return 0, nil }

type stubUserRepo struct {
	users map[string]*entity.User
}

func (r *stubUserRepo) Create(context.Context, *entity.User) error { return nil }
func (r *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *stubUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}

// stubPDFGen guarda la última factura renderizada y devuelve bytes fijos.
type stubPDFGen struct {
	last *billing.Invoice
}

func (g *stubPDFGen) Generate(inv *billing.Invoice) ([]byte, error) {
	g.last = inv
	return []byte("%PDF-stub"), nil
}

func sampleOrder() *entity.Order {
	return &entity.Order{
		ID:     "order-1",
		Number: "ORD-2608-00042",
		UserID: "user-1",
		Items: []entity.OrderItem{
			{PlantID: "p1", PlantName: "Orquídea cattleya", Quantity: 2, UnitPrice: decimal.NewFromInt(25_000), Subtotal: decimal.NewFromInt(50_000)},
			{PlantID: "p2", PlantName: "Helecho boston", Quantity: 1, UnitPrice: decimal.NewFromInt(18_000), Subtotal: decimal.NewFromInt(18_000)},
		},
		TotalAmount:   decimal.NewFromInt(68_000),
		Status:        entity.OrderStatusDelivered,
		PaymentStatus: entity.PaymentStatusPaid,
		ContactNumber: "6015550123",
		OrderDate:     time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	}
}

func buildBillingUC(orders map[string]*entity.Order, users map[string]*entity.User) (*billing.BillingUseCase, *stubPDFGen) {
	gen := &stubPDFGen{}
	uc := billing.NewBillingUseCase(
		&stubOrderRepo{orders: orders},
		&stubUserRepo{users: users},
		gen,
	)
	return uc, gen
}

func TestBuildInvoice_NumeroYTotalesConIVA(t *testing.T) {
	uc, _ := buildBillingUC(
		map[string]*entity.Order{"order-1": sampleOrder()},
		map[string]*entity.User{"user-1": {ID: "user-1", Name: "María Camila", Email: "maria@example.com", Phone: "3001234567"}},
	)

	inv, err := uc.BuildInvoice(context.Background(), "order-1")
	require.NoError(t, err)

	assert.Equal(t, "FAC-2608-00042", inv.Number, "la factura hereda el consecutivo del pedido")
	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(68_000)))
	assert.True(t, inv.Tax.Equal(decimal.NewFromInt(12_920)), "IVA del 19 por ciento sobre el subtotal")
	assert.True(t, inv.GrandTotal.Equal(decimal.NewFromInt(80_920)))
	assert.Equal(t, "María Camila", inv.CustomerName)
	assert.Equal(t, "3001234567", inv.CustomerPhone)
	assert.Equal(t, sampleOrder().OrderDate, inv.Date)
}

func TestBuildInvoice_TelefonoDelPedidoComoRespaldo(t *testing.T) {
	uc, _ := buildBillingUC(
		map[string]*entity.Order{"order-1": sampleOrder()},
		map[string]*entity.User{"user-1": {ID: "user-1", Name: "María Camila", Email: "maria@example.com"}},
	)

	inv, err := uc.BuildInvoice(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, "6015550123", inv.CustomerPhone, "sin teléfono de perfil se usa el del pedido")
}

func TestBuildInvoice_PedidoInexistente(t *testing.T) {
	uc, _ := buildBillingUC(map[string]*entity.Order{}, map[string]*entity.User{})

	_, err := uc.BuildInvoice(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoicePDF_RenderizaLaFacturaArmada(t *testing.T) {
	uc, gen := buildBillingUC(
		map[string]*entity.Order{"order-1": sampleOrder()},
		map[string]*entity.User{"user-1": {ID: "user-1", Name: "María Camila"}},
	)

	inv, pdfBytes, err := uc.InvoicePDF(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), pdfBytes)
	require.NotNil(t, gen.last)
	assert.Equal(t, inv.Number, gen.last.Number, "el generador recibe la misma factura que se devuelve")
}
