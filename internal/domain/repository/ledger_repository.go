package repository

import (
	"time"

	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// LedgerRepository define el puerto del libro de inventario. El libro es solo-apéndice:
// la interfaz no expone Update ni Delete a propósito; corregir un asiento exige
// registrar un asiento compensatorio, nunca reescribir la historia.
type LedgerRepository interface {
	// Append persiste un asiento. Valida la aritmética (After = Before + Delta,
	// cantidades no negativas) y retorna ErrInvalidInput si no cuadra.
	Append(entry *entity.LedgerEntry) error
	GetByID(id string) (*entity.LedgerEntry, error)
	// List lista asientos filtrando por tipo, planta y rango de fechas (cualquier
	// filtro puede ir vacío), más recientes primero. Count cuenta con el mismo
	// predicado: lo que List pagina es exactamente lo que Count totaliza.
	List(kind, plantID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error)
	Count(kind, plantID string, from, to *time.Time) (int64, error)
}
