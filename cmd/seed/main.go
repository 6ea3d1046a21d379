// seed puebla la base de datos con datos de demostración: operadores (uno por
// rol), categorías y productos con stock inicial. Idempotente: si el email o
// el SKU ya existen, la fila se omite.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-api/pkg/config"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     string
}

type seedProduct struct {
	sku       string
	name      string
	price     string
	stock     int
	threshold int
	category  string
}

var users = []seedUser{
	{"Admin", "admin@pos.com", "admin123456", entity.RoleAdministrator},
	{"Cajero", "cashier@pos.com", "cashier12345", entity.RoleCashier},
	{"Inventario", "inventory@pos.com", "inventory123", entity.RoleInventoryManager},
}

var categories = []string{"Bebidas", "Snacks", "Abarrotes"}

var products = []seedProduct{
	{"BEB-001", "Agua mineral 600ml", "1.50", 120, 20, "Bebidas"},
	{"BEB-002", "Refresco cola 355ml", "2.00", 80, 15, "Bebidas"},
	{"SNK-001", "Papas fritas 45g", "1.25", 60, 10, "Snacks"},
	{"SNK-002", "Barra de chocolate", "1.75", 40, 10, "Snacks"},
	{"ABA-001", "Arroz 1kg", "3.20", 50, 8, "Abarrotes"},
	{"ABA-002", "Aceite vegetal 1L", "5.90", 30, 5, "Abarrotes"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	ledger := inventory.NewStockLedger()

	now := time.Now()

	var adminID string
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
			os.Exit(1)
		}
		user := &entity.User{
			ID:           uuid.New().String(),
			Name:         u.name,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		err = userRepo.Create(user)
		switch {
		case err == nil:
			fmt.Printf("usuario %s (%s) creado\n", u.email, u.role)
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			fmt.Printf("usuario %s ya existe, omitido\n", u.email)
			existing, err := userRepo.GetByEmail(u.email)
			if err == nil && existing != nil {
				user.ID = existing.ID
			}
		default:
			fmt.Fprintf(os.Stderr, "crear usuario %s: %v\n", u.email, err)
			os.Exit(1)
		}
		if u.role == entity.RoleAdministrator {
			adminID = user.ID
		}
	}

	categoryIDs := make(map[string]string, len(categories))
	for _, name := range categories {
		category := &entity.Category{
			ID:        uuid.New().String(),
			Name:      name,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err := categoryRepo.Create(category)
		switch {
		case err == nil:
			fmt.Printf("categoría %s creada\n", name)
			categoryIDs[name] = category.ID
		case errors.Is(err, domain.ErrDuplicate):
			fmt.Printf("categoría %s ya existe, omitida\n", name)
		default:
			fmt.Fprintf(os.Stderr, "crear categoría %s: %v\n", name, err)
			os.Exit(1)
		}
	}

	for _, p := range products {
		existing, err := productRepo.GetBySKU(p.sku)
		if err != nil {
			fmt.Fprintf(os.Stderr, "consultar SKU %s: %v\n", p.sku, err)
			os.Exit(1)
		}
		if existing != nil {
			fmt.Printf("producto %s ya existe, omitido\n", p.sku)
			continue
		}
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			fmt.Fprintf(os.Stderr, "precio de %s: %v\n", p.sku, err)
			os.Exit(1)
		}
		product := &entity.Product{
			ID:                uuid.New().String(),
			SKU:               p.sku,
			Name:              p.name,
			Price:             price,
			StockQuantity:     0,
			LowStockThreshold: p.threshold,
			CategoryID:        categoryIDs[p.category],
			IsActive:          true,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		// El stock inicial entra como movimiento stock_in en la misma tx, igual
		// que el alta por API: el ledger reproduce el stock desde cero.
		stock := p.stock
		err = txRunner.Run(ctx, func(
			txProductRepo repository.ProductRepository,
			txMovRepo repository.InventoryMovementRepository,
		) error {
			if err := txProductRepo.Create(product); err != nil {
				return err
			}
			if stock > 0 {
				_, err := ledger.Apply(txProductRepo, txMovRepo, inventory.MovementInput{
					ProductID:      product.ID,
					UserID:         adminID,
					Type:           entity.MovementTypeStockIn,
					QuantityChange: stock,
					Reason:         "Initial stock",
				}, now)
				return err
			}
			return nil
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "crear producto %s: %v\n", p.sku, err)
			os.Exit(1)
		}
		fmt.Printf("producto %s creado con stock %d\n", p.sku, p.stock)
	}
}
