package repository

import (
	"time"

	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// ReportRepository define el puerto de persistencia para informes mensuales.
type ReportRepository interface {
	Create(report *entity.MonthlyReport) error
	Get(month time.Month, year int) (*entity.MonthlyReport, error)
	// List devuelve los informes más recientes primero (año, mes descendente).
	List(limit int) ([]*entity.MonthlyReport, error)
}
