package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

// Columnas de reviews más el nombre del autor (join con users).
const reviewColumns = `r.id, r.plant_id, r.user_id, u.name, r.order_id, r.rating, r.title, r.comment, r.is_verified_purchase, r.status, r.admin_response, r.created_at, r.updated_at`

// ReviewRepo implementación de ReviewRepository sobre PostgreSQL.
// El índice único (plant_id, user_id) garantiza una reseña por usuario y planta.
type ReviewRepo struct {
	q Querier
}

// NewReviewRepository construye el adaptador de reseñas.
func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

// Create persiste la reseña. ErrDuplicate si el usuario ya reseñó la planta.
func (r *ReviewRepo) Create(review *entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	query := `
		INSERT INTO reviews (id, plant_id, user_id, order_id, rating, title, comment, is_verified_purchase, status, admin_response, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		review.ID, review.PlantID, review.UserID, nullIfEmpty(review.OrderID),
		review.Rating, review.Title, review.Comment, review.IsVerifiedPurchase,
		review.Status, nullIfEmpty(review.AdminResponse),
		review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya reseñaste esta planta", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// GetByID obtiene una reseña por ID.
func (r *ReviewRepo) GetByID(id string) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews r JOIN users u ON u.id = r.user_id WHERE r.id = $1`
	rev, err := scanReviewRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return rev, nil
}

// GetByPlantAndUser obtiene la reseña de un usuario sobre una planta, si existe.
func (r *ReviewRepo) GetByPlantAndUser(plantID, userID string) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews r JOIN users u ON u.id = r.user_id WHERE r.plant_id = $1 AND r.user_id = $2`
	rev, err := scanReviewRow(r.q.QueryRow(context.Background(), query, plantID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review by plant and user: %w", err)
	}
	return rev, nil
}

// List lista reseñas con filtros, más recientes primero.
func (r *ReviewRepo) List(filter repository.ReviewFilter) ([]*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews r JOIN users u ON u.id = r.user_id WHERE 1=1`
	var args []any
	query, args = reviewFilters(query, args, filter)
	query += " ORDER BY r.created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()
	var list []*entity.Review
	for rows.Next() {
		rev, err := scanReviewRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, rev)
	}
	return list, rows.Err()
}

// Count cuenta las reseñas que cumplen el filtro.
func (r *ReviewRepo) Count(filter repository.ReviewFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews r WHERE 1=1`
	var args []any
	query, args = reviewFilters(query, args, filter)
	var total int64
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return total, nil
}

// RatingDistribution cuenta las reseñas aprobadas de una planta por calificación.
func (r *ReviewRepo) RatingDistribution(plantID string) (map[int]int64, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT rating, COUNT(*) FROM reviews WHERE plant_id = $1 AND status = $2 GROUP BY rating`,
		plantID, entity.ReviewStatusApproved,
	)
	if err != nil {
		return nil, fmt.Errorf("rating distribution: %w", err)
	}
	defer rows.Close()
	dist := make(map[int]int64, 5)
	for rows.Next() {
		var rating int
		var n int64
		if err := rows.Scan(&rating, &n); err != nil {
			return nil, fmt.Errorf("scan rating distribution: %w", err)
		}
		dist[rating] = n
	}
	return dist, rows.Err()
}

// Update escribe contenido, estado y respuesta del administrador.
func (r *ReviewRepo) Update(review *entity.Review) error {
	query := `
		UPDATE reviews
		SET rating = $2, title = $3, comment = $4, status = $5, admin_response = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		review.ID, review.Rating, review.Title, review.Comment,
		review.Status, nullIfEmpty(review.AdminResponse), review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	return nil
}

func reviewFilters(query string, args []any, filter repository.ReviewFilter) (string, []any) {
	if filter.PlantID != "" {
		args = append(args, filter.PlantID)
		query += fmt.Sprintf(" AND r.plant_id = $%d", len(args))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND r.user_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	return query, args
}

func scanReviewRow(row pgx.Row) (*entity.Review, error) {
	var rev entity.Review
	var orderID, adminResponse *string
	err := row.Scan(
		&rev.ID, &rev.PlantID, &rev.UserID, &rev.UserName, &orderID,
		&rev.Rating, &rev.Title, &rev.Comment, &rev.IsVerifiedPurchase,
		&rev.Status, &adminResponse, &rev.CreatedAt, &rev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if orderID != nil {
		rev.OrderID = *orderID
	}
	if adminResponse != nil {
		rev.AdminResponse = *adminResponse
	}
	return &rev, nil
}
