// seed carga el catálogo inicial del vivero desde un CSV de proveedor y crea el
// usuario administrador. Los catálogos de proveedores locales llegan exportados
// de Excel en ISO-8859-1 con separador ';', de ahí la decodificación explícita.
//
// Uso: go run ./cmd/seed [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Columnas esperadas: nombre;categoria;descripcion;precio;umbral_reorden;stock_inicial
//
// Variables de entorno: SEED_ADMIN_NAME, SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Vivero-api/internal/application/catalog"
	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/application/inventory"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Vivero-api/pkg/config"
)

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	adminID, err := seedAdmin(ctx, pool)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear admin: %v\n", err)
		os.Exit(1)
	}

	created, stocked, err := seedCatalog(ctx, pool, cfg, csvPath, adminID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar catálogo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seed completado: %d plantas creadas, %d con stock inicial\n", created, stocked)
}

// seedAdmin crea el usuario administrador si no existe y devuelve su id.
func seedAdmin(ctx context.Context, pool *pgxpool.Pool) (string, error) {
	userRepo := postgres.NewUserRepository(pool)

	email := envOr("SEED_ADMIN_EMAIL", "admin@vivero.local")
	existing, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		fmt.Printf("Admin %s ya existe, se omite\n", email)
		return existing.ID, nil
	}

	password := envOr("SEED_ADMIN_PASSWORD", "")
	if password == "" {
		return "", fmt.Errorf("SEED_ADMIN_PASSWORD es obligatorio al crear el admin")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := time.Now()
	admin := &entity.User{
		ID:           uuid.NewString(),
		Name:         envOr("SEED_ADMIN_NAME", "Administrador"),
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return "", err
	}
	fmt.Printf("Admin %s creado\n", email)
	return admin.ID, nil
}

// seedCatalog lee el CSV del proveedor y crea cada planta con su stock inicial.
// El stock inicial entra como movimiento purchased para que el libro quede
// consistente desde el primer día.
func seedCatalog(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config, csvPath, adminID string) (created, stocked int, err error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = 6

	plantRepo := postgres.NewPlantRepository(pool)
	plantUC := catalog.NewPlantUseCase(plantRepo)
	mutationUC := inventory.NewStockMutationUseCase(postgres.NewTxRunner(pool))

	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return created, stocked, fmt.Errorf("línea %d: %w", line+1, err)
		}
		line++
		// Primera línea: encabezado
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "nombre") {
			continue
		}

		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(record[3]), ",", "."))
		if err != nil {
			return created, stocked, fmt.Errorf("línea %d: precio inválido %q", line, record[3])
		}
		threshold, err := strconv.ParseInt(strings.TrimSpace(record[4]), 10, 64)
		if err != nil {
			return created, stocked, fmt.Errorf("línea %d: umbral inválido %q", line, record[4])
		}
		initialStock, err := strconv.ParseInt(strings.TrimSpace(record[5]), 10, 64)
		if err != nil {
			return created, stocked, fmt.Errorf("línea %d: stock inválido %q", line, record[5])
		}

		plant, err := plantUC.CreatePlant(ctx, &dto.CreatePlantRequest{
			Name:             strings.TrimSpace(record[0]),
			Category:         strings.ToLower(strings.TrimSpace(record[1])),
			Description:      strings.TrimSpace(record[2]),
			Price:            price,
			ReorderThreshold: threshold,
		})
		if err != nil {
			return created, stocked, fmt.Errorf("línea %d (%s): %w", line, record[0], err)
		}
		created++

		if initialStock > 0 {
			unitCost := price.Mul(decimal.NewFromFloat(cfg.Inventory.AssumedCostRatio)).Round(2)
			_, err := mutationUC.ApplyMutation(ctx, inventory.MutationInput{
				PlantID:     plant.ID,
				Kind:        entity.KindPurchased,
				Quantity:    initialStock,
				UnitCost:    unitCost,
				Note:        "carga inicial de catálogo",
				PerformedBy: adminID,
			})
			if err != nil {
				return created, stocked, fmt.Errorf("línea %d (%s): stock inicial: %w", line, record[0], err)
			}
			stocked++
		}
	}

	return created, stocked, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
