package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

var _ repository.ServiceRequestRepository = (*ServiceRequestRepo)(nil)

// Columnas de service_requests más el nombre del solicitante (join con users).
const serviceRequestColumns = `s.id, s.user_id, u.name, s.type, s.title, s.description, s.preferred_date, s.status, s.priority, s.estimated_cost, s.location, s.contact_number, s.admin_notes, s.response_date, s.completion_date, s.created_at, s.updated_at`

// ServiceRequestRepo implementación de ServiceRequestRepository sobre PostgreSQL.
type ServiceRequestRepo struct {
	q Querier
}

// NewServiceRequestRepository construye el adaptador de solicitudes.
func NewServiceRequestRepository(q Querier) *ServiceRequestRepo {
	return &ServiceRequestRepo{q: q}
}

// Create persiste la solicitud.
func (r *ServiceRequestRepo) Create(req *entity.ServiceRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	query := `
		INSERT INTO service_requests (id, user_id, type, title, description, preferred_date, status, priority, estimated_cost, location, contact_number, admin_notes, response_date, completion_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.UserID, req.Type, req.Title, req.Description,
		req.PreferredDate, req.Status, req.Priority, req.EstimatedCost,
		nullIfEmpty(req.Location), nullIfEmpty(req.ContactNumber),
		nullIfEmpty(req.AdminNotes), req.ResponseDate, req.CompletionDate,
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert service request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *ServiceRequestRepo) GetByID(id string) (*entity.ServiceRequest, error) {
	query := `SELECT ` + serviceRequestColumns + ` FROM service_requests s JOIN users u ON u.id = s.user_id WHERE s.id = $1`
	req, err := scanServiceRequestRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service request: %w", err)
	}
	return req, nil
}

// List lista solicitudes con filtros (admin), más recientes primero.
func (r *ServiceRequestRepo) List(filter repository.ServiceRequestFilter) ([]*entity.ServiceRequest, error) {
	query := `SELECT ` + serviceRequestColumns + ` FROM service_requests s JOIN users u ON u.id = s.user_id WHERE 1=1`
	var args []any
	query, args = serviceRequestFilters(query, args, filter)
	query += " ORDER BY s.created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return r.list(query, args, "list service requests")
}

// Count cuenta las solicitudes que cumplen el filtro.
func (r *ServiceRequestRepo) Count(filter repository.ServiceRequestFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM service_requests s WHERE 1=1`
	var args []any
	query, args = serviceRequestFilters(query, args, filter)
	var total int64
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count service requests: %w", err)
	}
	return total, nil
}

// ListByUser lista las solicitudes de un cliente, más recientes primero.
func (r *ServiceRequestRepo) ListByUser(userID string) ([]*entity.ServiceRequest, error) {
	query := `SELECT ` + serviceRequestColumns + ` FROM service_requests s JOIN users u ON u.id = s.user_id WHERE s.user_id = $1 ORDER BY s.created_at DESC`
	return r.list(query, []any{userID}, "list service requests by user")
}

// Update escribe estado, prioridad, cotización y notas. El contenido del
// cliente no se toca.
func (r *ServiceRequestRepo) Update(req *entity.ServiceRequest) error {
	query := `
		UPDATE service_requests
		SET status = $2, priority = $3, estimated_cost = $4, admin_notes = $5, response_date = $6, completion_date = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.Status, req.Priority, req.EstimatedCost,
		nullIfEmpty(req.AdminNotes), req.ResponseDate, req.CompletionDate,
		req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service request: %w", err)
	}
	return nil
}

// Delete borra la solicitud.
func (r *ServiceRequestRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM service_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service request: %w", err)
	}
	return nil
}

func serviceRequestFilters(query string, args []any, filter repository.ServiceRequestFilter) (string, []any) {
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND s.status = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND s.type = $%d", len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		query += fmt.Sprintf(" AND s.priority = $%d", len(args))
	}
	return query, args
}

func (r *ServiceRequestRepo) list(query string, args []any, op string) ([]*entity.ServiceRequest, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.ServiceRequest
	for rows.Next() {
		req, err := scanServiceRequestRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

func scanServiceRequestRow(row pgx.Row) (*entity.ServiceRequest, error) {
	var req entity.ServiceRequest
	var location, contactNumber, adminNotes *string
	var estimatedCost *decimal.Decimal
	err := row.Scan(
		&req.ID, &req.UserID, &req.UserName, &req.Type, &req.Title,
		&req.Description, &req.PreferredDate, &req.Status, &req.Priority,
		&estimatedCost, &location, &contactNumber, &adminNotes,
		&req.ResponseDate, &req.CompletionDate, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if estimatedCost != nil {
		req.EstimatedCost = *estimatedCost
	}
	if location != nil {
		req.Location = *location
	}
	if contactNumber != nil {
		req.ContactNumber = *contactNumber
	}
	if adminNotes != nil {
		req.AdminNotes = *adminNotes
	}
	return &req, nil
}
