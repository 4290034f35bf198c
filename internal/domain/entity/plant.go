package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto del vivero.
const (
	CategoryFlowering  = "flowering"
	CategoryIndoor     = "indoor"
	CategoryOutdoor    = "outdoor"
	CategoryBonsai     = "bonsai"
	CategorySucculent  = "succulent"
	CategoryHerb       = "herb"
	CategoryTree       = "tree"
	CategoryShrub      = "shrub"
	CategoryPot        = "pot"
	CategoryFertilizer = "fertilizer"
	CategoryTool       = "tool"
)

// ValidCategory verifica que la categoría sea una de las conocidas.
func ValidCategory(c string) bool {
	switch c {
	case CategoryFlowering, CategoryIndoor, CategoryOutdoor, CategoryBonsai,
		CategorySucculent, CategoryHerb, CategoryTree, CategoryShrub,
		CategoryPot, CategoryFertilizer, CategoryTool:
		return true
	}
	return false
}

// Plant representa un producto del catálogo del vivero (planta, maceta, herramienta...).
// Quantity y TotalSold los escribe únicamente el motor de inventario (StockMutationUseCase);
// el catálogo gestiona el resto de campos. Quantity es siempre la suma de los deltas
// del libro de movimientos (LedgerEntry) de la planta.
type Plant struct {
	ID               string
	Name             string
	Category         string
	Description      string
	Price            decimal.Decimal // precio de venta
	Quantity         int64           // stock disponible, nunca negativo
	ReorderThreshold int64           // punto de reorden
	TotalSold        int64           // acumulado de unidades vendidas, nunca decrece
	ImageURL         string
	IsAvailable      bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StockStatus devuelve el estado del stock: out-of-stock, low-stock o in-stock.
func (p *Plant) StockStatus() string {
	switch {
	case p.Quantity == 0:
		return "out-of-stock"
	case p.Quantity <= p.ReorderThreshold:
		return "low-stock"
	default:
		return "in-stock"
	}
}
