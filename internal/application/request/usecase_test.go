package request_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/application/request"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// memRequestRepo repositorio de solicitudes en memoria.
type memRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*entity.ServiceRequest
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{requests: make(map[string]*entity.ServiceRequest)}
}

func (r *memRequestRepo) Create(req *entity.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *memRequestRepo) GetByID(id string) (*entity.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *memRequestRepo) List(filter repository.ServiceRequestFilter) ([]*entity.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ServiceRequest
	for _, req := range r.requests {
		if requestMatches(req, filter) {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRequestRepo) Count(filter repository.ServiceRequestFilter) (int64, error) {
	list, _ := r.List(filter)
	return int64(len(list)), nil
}

func (r *memRequestRepo) ListByUser(userID string) ([]*entity.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ServiceRequest
	for _, req := range r.requests {
		if req.UserID == userID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRequestRepo) Update(req *entity.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[req.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *memRequestRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.requests, id)
	return nil
}

func requestMatches(req *entity.ServiceRequest, filter repository.ServiceRequestFilter) bool {
	if filter.Status != "" && req.Status != filter.Status {
		return false
	}
	if filter.Type != "" && req.Type != filter.Type {
		return false
	}
	if filter.Priority != "" && req.Priority != filter.Priority {
		return false
	}
	return true
}

// stubUserRepo solo responde GetByID; el resto no se usa aquí.
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

func buildRequestUC() (*request.ServiceRequestUseCase, *memRequestRepo) {
	repo := newMemRequestRepo()
	users := &stubUserRepo{users: map[string]*entity.User{
		"user-1": {ID: "user-1", Name: "María Camila", Phone: "3001234567"},
	}}
	return request.NewServiceRequestUseCase(repo, users), repo
}

func validRequest() dto.CreateServiceRequestRequest {
	return dto.CreateServiceRequestRequest{
		Type:        entity.RequestTypeOnsitePlantation,
		Title:       "Siembra de jardín vertical",
		Description: "Quiero sembrar un jardín vertical de 3x2 metros en la terraza.",
		Location:    "Chapinero, Bogotá",
	}
}

func TestCreateRequest_NaceEnPendingConPrioridadMedia(t *testing.T) {
	uc, _ := buildRequestUC()

	req, err := uc.CreateRequest(context.Background(), "user-1", validRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.RequestStatusPending, req.Status)
	assert.Equal(t, entity.RequestPriorityMedium, req.Priority)
	assert.Equal(t, "3001234567", req.ContactNumber, "sin contacto explícito se usa el teléfono del usuario")
	assert.NotEmpty(t, req.ID)
}

func TestCreateRequest_ContactoExplicitoTienePrecedencia(t *testing.T) {
	uc, _ := buildRequestUC()

	in := validRequest()
	in.ContactNumber = "3109876543"
	req, err := uc.CreateRequest(context.Background(), "user-1", in)
	require.NoError(t, err)
	assert.Equal(t, "3109876543", req.ContactNumber)
}

func TestCreateRequest_FechaPreferida(t *testing.T) {
	uc, _ := buildRequestUC()

	in := validRequest()
	in.PreferredDate = "2026-09-15"
	req, err := uc.CreateRequest(context.Background(), "user-1", in)
	require.NoError(t, err)
	require.NotNil(t, req.PreferredDate)
	assert.Equal(t, "2026-09-15", req.PreferredDate.Format("2006-01-02"))

	in.PreferredDate = "15/09/2026"
	_, err = uc.CreateRequest(context.Background(), "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateRequest_EntradaInvalida(t *testing.T) {
	uc, _ := buildRequestUC()
	ctx := context.Background()

	casos := []struct {
		nombre string
		mod    func(*dto.CreateServiceRequestRequest)
	}{
		{"tipo desconocido", func(in *dto.CreateServiceRequestRequest) { in.Type = "mudanza" }},
		{"sin título", func(in *dto.CreateServiceRequestRequest) { in.Title = "  " }},
		{"sin descripción", func(in *dto.CreateServiceRequestRequest) { in.Description = "" }},
	}
	for _, c := range casos {
		in := validRequest()
		c.mod(&in)
		_, err := uc.CreateRequest(ctx, "user-1", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, c.nombre)
	}
}

func TestUpdateRequest_AprobarMarcaFechaDeRespuesta(t *testing.T) {
	uc, _ := buildRequestUC()
	ctx := context.Background()

	req, err := uc.CreateRequest(ctx, "user-1", validRequest())
	require.NoError(t, err)

	cotizacion := decimal.NewFromInt(250_000)
	actualizada, err := uc.UpdateRequest(ctx, req.ID, dto.UpdateServiceRequestRequest{
		Status:        entity.RequestStatusApproved,
		Priority:      entity.RequestPriorityHigh,
		EstimatedCost: &cotizacion,
		AdminNotes:    "Confirmar disponibilidad de guadua",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RequestStatusApproved, actualizada.Status)
	assert.Equal(t, entity.RequestPriorityHigh, actualizada.Priority)
	assert.True(t, actualizada.EstimatedCost.Equal(cotizacion))
	require.NotNil(t, actualizada.ResponseDate, "aprobar marca la fecha de respuesta")
	assert.Nil(t, actualizada.CompletionDate)
}

func TestUpdateRequest_CompletarMarcaFechaDeCierre(t *testing.T) {
	uc, _ := buildRequestUC()
	ctx := context.Background()

	req, err := uc.CreateRequest(ctx, "user-1", validRequest())
	require.NoError(t, err)

	actualizada, err := uc.UpdateRequest(ctx, req.ID, dto.UpdateServiceRequestRequest{
		Status: entity.RequestStatusCompleted,
	})
	require.NoError(t, err)
	require.NotNil(t, actualizada.CompletionDate)
}

func TestUpdateRequest_Rechazos(t *testing.T) {
	uc, _ := buildRequestUC()
	ctx := context.Background()

	req, err := uc.CreateRequest(ctx, "user-1", validRequest())
	require.NoError(t, err)

	_, err = uc.UpdateRequest(ctx, "no-existe", dto.UpdateServiceRequestRequest{Status: entity.RequestStatusApproved})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateRequest(ctx, req.ID, dto.UpdateServiceRequestRequest{Status: "volando"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateRequest(ctx, req.ID, dto.UpdateServiceRequestRequest{Priority: "urgentísima"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negativa := decimal.NewFromInt(-1)
	_, err = uc.UpdateRequest(ctx, req.ID, dto.UpdateServiceRequestRequest{EstimatedCost: &negativa})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListRequests_FiltraPorEstado(t *testing.T) {
	uc, _ := buildRequestUC()
	ctx := context.Background()

	primera, err := uc.CreateRequest(ctx, "user-1", validRequest())
	require.NoError(t, err)
	_, err = uc.CreateRequest(ctx, "user-2", validRequest())
	require.NoError(t, err)
	_, err = uc.UpdateRequest(ctx, primera.ID, dto.UpdateServiceRequestRequest{Status: entity.RequestStatusApproved})
	require.NoError(t, err)

	pendientes, total, err := uc.ListRequests(ctx, repository.ServiceRequestFilter{Status: entity.RequestStatusPending})
	require.NoError(t, err)
	assert.Len(t, pendientes, 1)
	assert.Equal(t, int64(1), total)

	_, _, err = uc.ListRequests(ctx, repository.ServiceRequestFilter{Status: "volando"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteRequest(t *testing.T) {
	uc, repo := buildRequestUC()
	ctx := context.Background()

	req, err := uc.CreateRequest(ctx, "user-1", validRequest())
	require.NoError(t, err)

	require.NoError(t, uc.DeleteRequest(ctx, req.ID))
	got, _ := repo.GetByID(req.ID)
	assert.Nil(t, got)

	assert.ErrorIs(t, uc.DeleteRequest(ctx, req.ID), domain.ErrNotFound)
}

func TestUserRequests_SoloLasDelUsuario(t *testing.T) {
	uc, _ := buildRequestUC()
	ctx := context.Background()

	_, err := uc.CreateRequest(ctx, "user-1", validRequest())
	require.NoError(t, err)
	_, err = uc.CreateRequest(ctx, "user-2", validRequest())
	require.NoError(t, err)

	mias, err := uc.UserRequests(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mias, 1)
	assert.Equal(t, "user-1", mias[0].UserID)
}
